// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus records how a conversion ended.
type ConversionStatus string

const (
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// HistoryEntry is one row of the CLI conversion journal.
type HistoryEntry struct {
	// ID is assigned by the store on insert.
	ID int64 `json:"id" yaml:"id"`

	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  time.Duration `json:"duration" yaml:"duration"`

	Input  Input  `json:"input" yaml:"input"`
	Output Output `json:"output" yaml:"output"`

	// Bytes is the size of the rendered image, zero on failure.
	Bytes int64 `json:"bytes" yaml:"bytes"`

	// MIMEType is the sniffed type of the rendered image, if known.
	MIMEType string `json:"mime_type,omitempty" yaml:"mime_type,omitempty"`

	Status ConversionStatus `json:"status" yaml:"status"`
	Error  string           `json:"error,omitempty" yaml:"error,omitempty"`
}
