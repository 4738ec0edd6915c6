package runconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DjordjeVuckovic/ir-explorer/internal/apperr"
	"github.com/DjordjeVuckovic/ir-explorer/internal/collection"
	"github.com/DjordjeVuckovic/ir-explorer/internal/domain"
	"gopkg.in/yaml.v3"
)

func LoadFromFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run config: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	f.Dir = filepath.Dir(path)
	return f, nil
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse run config YAML: %w", err)
	}
	if err := validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Resolve makes a source path from the run file absolute with respect to
// the run file's directory.
func (f *File) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || f.Dir == "" {
		return path
	}
	return filepath.Join(f.Dir, path)
}

func validate(f *File) error {
	if len(f.Runs) == 0 {
		return apperr.NewConfiguration(-1, "runs", "no runs configured")
	}
	if f.MaxDocCharLength <= 0 {
		f.MaxDocCharLength = collection.DefaultMaxDocChars
	}

	for i := range f.Runs {
		r := &f.Runs[i]

		kind, err := domain.ParseScoreType(r.Info.ScoreType)
		if err != nil {
			return apperr.NewConfiguration(i, "score_type", err.Error())
		}
		r.Kind = kind

		if len(r.Info.KernelMus) == 0 {
			return apperr.NewConfiguration(i, "kernels_mus", "must not be empty")
		}
		if r.Info.TailKernels < 0 || r.Info.TailKernels > len(r.Info.KernelMus) {
			return apperr.NewConfiguration(i, "rest-kernels-last",
				fmt.Sprintf("%d not in [0, %d]", r.Info.TailKernels, len(r.Info.KernelMus)))
		}
		if r.Info.Sigma == 0 {
			r.Info.Sigma = domain.DefaultKernelSigma
		}
		if r.Info.Sigma < 0 {
			return apperr.NewConfiguration(i, "kernels_sigma", "must be positive")
		}

		for _, src := range []struct{ field, value string }{
			{"qrels", r.Qrels},
			{"queries", r.Queries},
			{"cluster-stats", r.ClusterStats},
			{"secondary-output", r.SecondaryOutput},
		} {
			if src.value == "" {
				return apperr.NewConfiguration(i, src.field, "must be set")
			}
		}
	}
	return nil
}
