package storage

import (
	"context"
	"fmt"

	"listings-eda/config"
	"listings-eda/utils"
)

// Open returns the reader selected by cfg and a label describing the source.
// A configured SQL driver takes precedence over a file path.
func Open(ctx context.Context, cfg *config.Config, logger *utils.Logger) (TableReader, string, error) {
	if cfg.SourceDriver != "" {
		retry := &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   cfg.RetryBackoff,
			Logger:      logger,
		}
		r, err := NewSQLReader(ctx, cfg.SourceDriver, cfg.DSN(), cfg.SourceTable, retry)
		if err != nil {
			return nil, "", err
		}
		return r, cfg.SourceDriver + ":" + cfg.SourceTable, nil
	}

	format, err := DetectFormat(cfg.InputPath)
	if err != nil {
		return nil, "", err
	}
	logger.Debug("[storage] %s detected as %s", cfg.InputPath, format)

	var r TableReader
	switch format {
	case FormatXLSX:
		r, err = NewXLSXReader(cfg.InputPath, cfg.Sheet)
	case FormatTSV:
		r, err = NewCSVReader(cfg.InputPath, '\t')
	case FormatCSV:
		r, err = NewCSVReader(cfg.InputPath, ',')
	default:
		err = fmt.Errorf("open: %q: %w", cfg.InputPath, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, "", err
	}
	return r, cfg.InputPath, nil
}
