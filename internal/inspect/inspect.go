// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inspect sniffs documents and rendered images for CLI reporting.
package inspect

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

// wordTypes lists the document types the conversion service renders.
var wordTypes = []string{
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.oasis.opendocument.text",
	"text/rtf",
}

// Summary describes a blob by its detected type and size.
type Summary struct {
	MIMEType  string
	Extension string
	Size      int64
}

// String renders the summary as "image/png, 12 kB".
func (s Summary) String() string {
	return fmt.Sprintf("%s, %s", s.MIMEType, humanize.Bytes(uint64(s.Size)))
}

// IsImage reports whether the detected type is an image.
func (s Summary) IsImage() bool {
	return len(s.MIMEType) > 6 && s.MIMEType[:6] == "image/"
}

// DescribeFile sniffs the file at path.
func DescribeFile(path string) (Summary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Summary{}, fmt.Errorf("inspecting %s: %w", path, err)
	}
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return Summary{}, fmt.Errorf("detecting type of %s: %w", path, err)
	}
	return Summary{MIMEType: m.String(), Extension: m.Extension(), Size: info.Size()}, nil
}

// DescribeBytes sniffs an in-memory blob.
func DescribeBytes(data []byte) Summary {
	m := mimetype.Detect(data)
	return Summary{MIMEType: m.String(), Extension: m.Extension(), Size: int64(len(data))}
}

// IsWordDocument reports whether the file at path looks like a document the
// service accepts. It is advisory; the service has the final say.
func IsWordDocument(path string) (bool, string, error) {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return false, "", fmt.Errorf("detecting type of %s: %w", path, err)
	}
	for _, t := range wordTypes {
		if m.Is(t) {
			return true, m.String(), nil
		}
	}
	return false, m.String(), nil
}
