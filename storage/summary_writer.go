package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"listings-eda/models"
)

// YAMLSummaryWriter writes the run summary as YAML. Intermediate directories
// are created automatically.
type YAMLSummaryWriter struct {
	path string
}

// NewYAMLSummaryWriter returns a writer targeting path.
func NewYAMLSummaryWriter(path string) *YAMLSummaryWriter {
	return &YAMLSummaryWriter{path: path}
}

// Path returns the output file path.
func (w *YAMLSummaryWriter) Path() string { return w.path }

// Write serialises summary, replacing any previous file.
func (w *YAMLSummaryWriter) Write(summary *models.Summary) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("summary: create output dir: %w", err)
	}

	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("summary: marshal: %w", err)
	}

	if err := os.WriteFile(w.path, data, 0644); err != nil {
		return fmt.Errorf("summary: write %q: %w", w.path, err)
	}
	return nil
}
