package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"listings-eda/models"
)

// CSVReader loads a delimited text file whose first record is the header.
type CSVReader struct {
	file   *os.File
	reader *csv.Reader
}

// NewCSVReader opens the file at path. comma is the field delimiter.
func NewCSVReader(path string, comma rune) (*CSVReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open file %q: %w", path, err)
	}

	r := csv.NewReader(f)
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	return &CSVReader{file: f, reader: r}, nil
}

// Read consumes the whole file.
func (c *CSVReader) Read(ctx context.Context) (*models.Table, error) {
	header, err := c.reader.Read()
	if errors.Is(err, io.EOF) {
		return models.NewTable(nil, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = trimBOM(header[0])
	}

	var records [][]string
	for {
		rec, err := c.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row: %w", err)
		}
		records = append(records, rec)
		if len(records)%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}

	return tableFromRecords(header, records, nil), nil
}

// Close closes the underlying file.
func (c *CSVReader) Close() error {
	return c.file.Close()
}

func trimBOM(s string) string {
	const bom = "\ufeff"
	if len(s) >= len(bom) && s[:len(bom)] == bom {
		return s[len(bom):]
	}
	return s
}
