package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Format is a supported tabular file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeXLS  = "application/vnd.ms-excel"
)

// ErrUnsupportedFormat is returned for files no reader can handle.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// DetectFormat sniffs the file content and falls back on the extension when
// the content is ambiguous.
func DetectFormat(path string) (Format, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detect: %q: %w", path, err)
	}

	switch {
	case mtype.Is(mimeXLSX):
		return FormatXLSX, nil
	case mtype.Is(mimeXLS):
		return "", fmt.Errorf("detect: %q: legacy .xls workbooks are not readable, save as .xlsx: %w",
			path, ErrUnsupportedFormat)
	case mtype.Is("text/tab-separated-values"):
		return FormatTSV, nil
	case mtype.Is("text/csv"):
		return FormatCSV, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	case ".csv", ".txt":
		if mtype.Is("text/plain") {
			return FormatCSV, nil
		}
	}
	return "", fmt.Errorf("detect: %q is %s: %w", path, mtype.String(), ErrUnsupportedFormat)
}
