// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/pkgconflict/internal/core/conflict"
	"github.com/example/pkgconflict/internal/ports/secondary"
)

// batchFile is the on-disk layout of a solver error result list.
type batchFile struct {
	Conflicts []conflict.Record `yaml:"conflicts" json:"conflicts"`
}

// BatchFileSource implements secondary.ConflictSource for YAML and JSON files.
type BatchFileSource struct {
	path string
}

// NewBatchFileSource creates a source reading path. Files ending in .json are
// decoded as JSON, everything else as YAML.
func NewBatchFileSource(path string) *BatchFileSource {
	return &BatchFileSource{path: path}
}

// Describe names the source for logs and output.
func (s *BatchFileSource) Describe() string {
	return s.path
}

// Load reads and validates the batch.
func (s *BatchFileSource) Load(ctx context.Context) ([]conflict.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read conflict batch: %w", err)
	}

	var batch batchFile
	if strings.EqualFold(filepath.Ext(s.path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&batch)
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&batch)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse conflict batch %s: %w", s.path, err)
	}

	for i := range batch.Conflicts {
		if err := normalizeRecord(&batch.Conflicts[i]); err != nil {
			return nil, fmt.Errorf("conflict #%d in %s: %w", i+1, s.path, err)
		}
	}

	return batch.Conflicts, nil
}

// normalizeRecord checks required fields and fills the status default.
func normalizeRecord(rec *conflict.Record) error {
	if rec.Package.ID == "" {
		return fmt.Errorf("package id is required")
	}
	switch {
	case rec.Status == "" && rec.Installed:
		rec.Status = conflict.StatusKeepInstalled
	case rec.Status == "":
		rec.Status = conflict.StatusNoInst
	default:
		if _, err := conflict.ParseStatus(string(rec.Status)); err != nil {
			return err
		}
	}
	for _, list := range [][]conflict.RelInfo{rec.Unresolvable, rec.ConflictsWith, rec.Alternatives, rec.RemoveToSolve, rec.Referers} {
		for _, rel := range list {
			if rel.Package.ID == "" {
				return fmt.Errorf("relation of %s without package id", rec.Package.ID)
			}
		}
	}
	return nil
}

// Ensure BatchFileSource implements the interface
var _ secondary.ConflictSource = (*BatchFileSource)(nil)
