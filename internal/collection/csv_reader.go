package collection

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/DjordjeVuckovic/ir-explorer/internal/domain"
)

// CSVReader reads a headed CSV file into records keyed by header.
type CSVReader struct {
	reader io.Reader
	source string
}

func NewCSVReader(reader io.Reader, source string) *CSVReader {
	return &CSVReader{
		reader: reader,
		source: source,
	}
}

func (cr *CSVReader) Read() ([]domain.Record, error) {
	csvReader := csv.NewReader(cr.reader)

	headers, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", cr.source, err)
	}

	var records []domain.Record
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", cr.source, err)
		}

		record := make(domain.Record, len(headers))
		for i, h := range headers {
			record[h] = row[i]
		}
		records = append(records, record)
	}

	return records, nil
}
