// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 100000

// ExportYAML writes every recorded entry to w as a YAML list, newest first.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	entries, err := s.Recent(ctx, exportLimit)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}
