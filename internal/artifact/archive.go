// Package artifact stores the per-run output of the offline scorer: the
// learned weights and one Artifact per evaluated (query, document) pair.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/DjordjeVuckovic/ir-explorer/internal/apperr"
	"github.com/DjordjeVuckovic/ir-explorer/internal/domain"
	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
)

const zstdExt = ".zst"

var ErrEmptyArchive = errors.New("archive has no model data")

// Archive is the on-disk layout of a run's secondary output.
type Archive struct {
	Model domain.ModelWeights                     `cbor:"model_data" json:"model_data"`
	QD    map[string]map[string]domain.Artifact `cbor:"qd_data" json:"qd_data"`
}

var decMode = func() cbor.DecMode {
	dm, err := cbor.DecOptions{
		MaxArrayElements: 1 << 27,
		MaxMapPairs:      1 << 27,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}()

// ReadArchive decodes a CBOR archive, zstd-compressed when path ends in .zst.
func ReadArchive(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, zstdExt) {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open zstd stream: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	a, err := DecodeArchive(r)
	if err != nil {
		return nil, apperr.NewMalformedInput(path, 0, "", err)
	}
	return a, nil
}

func DecodeArchive(r io.Reader) (*Archive, error) {
	var a Archive
	if err := decMode.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode archive: %w", err)
	}
	if len(a.Model.Weights) == 0 {
		return nil, ErrEmptyArchive
	}
	if a.QD == nil {
		a.QD = make(map[string]map[string]domain.Artifact)
	}
	return &a, nil
}

// ReadJSONArchive reads the JSON dump produced by the offline scorer.
func ReadJSONArchive(r io.Reader) (*Archive, error) {
	var a Archive
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode json archive: %w", err)
	}
	if len(a.Model.Weights) == 0 {
		return nil, ErrEmptyArchive
	}
	return &a, nil
}

// WriteArchive encodes a to path, compressing when path ends in .zst.
func WriteArchive(path string, a *Archive) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	var w io.Writer = f
	if strings.HasSuffix(path, zstdExt) {
		zw, zerr := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if zerr != nil {
			return fmt.Errorf("open zstd stream: %w", zerr)
		}
		defer func() {
			if cerr := zw.Close(); err == nil {
				err = cerr
			}
		}()
		w = zw
	}

	return EncodeArchive(w, a)
}

func EncodeArchive(w io.Writer, a *Archive) error {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return err
	}
	if err := em.NewEncoder(w).Encode(a); err != nil {
		return fmt.Errorf("encode archive: %w", err)
	}
	return nil
}

// PairCount is the number of (query, document) artifacts in the archive.
func (a *Archive) PairCount() int {
	n := 0
	for _, docs := range a.QD {
		n += len(docs)
	}
	return n
}
