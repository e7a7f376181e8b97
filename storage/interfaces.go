package storage

import (
	"context"

	"listings-eda/models"
)

// TableReader is the interface any dataset source must satisfy.
type TableReader interface {
	Read(ctx context.Context) (*models.Table, error)
	Close() error
}

// SummaryWriter persists the end-of-run summary.
type SummaryWriter interface {
	Write(summary *models.Summary) error
}

var (
	_ TableReader   = (*XLSXReader)(nil)
	_ TableReader   = (*CSVReader)(nil)
	_ TableReader   = (*SQLReader)(nil)
	_ SummaryWriter = (*YAMLSummaryWriter)(nil)
)
