// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// InputType identifies where the source Word document comes from.
type InputType string

const (
	// InputFile is a document on the local filesystem.
	InputFile InputType = "file"
	// InputURL is a document the conversion service fetches itself.
	InputURL InputType = "url"
)

// OutputType identifies what happens to the rendered image.
type OutputType string

const (
	// OutputFile writes the image to a local path.
	OutputFile OutputType = "file"
	// OutputBase64String returns the image as a base64-encoded string.
	OutputBase64String OutputType = "base64"
)

// ImageFormat is the image encoding requested from the conversion service.
// The zero value selects DefaultImageFormat.
type ImageFormat string

const (
	FormatPNG  ImageFormat = "png"
	FormatJPEG ImageFormat = "jpeg"
	FormatGIF  ImageFormat = "gif"

	DefaultImageFormat = FormatPNG
)

// ImageFormats lists every format the service accepts.
var ImageFormats = []ImageFormat{FormatPNG, FormatJPEG, FormatGIF}

// ParseImageFormat normalizes s into an ImageFormat. An empty string yields
// DefaultImageFormat; "jpg" is accepted as an alias for jpeg.
func ParseImageFormat(s string) (ImageFormat, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return DefaultImageFormat, nil
	case "jpg":
		return FormatJPEG, nil
	}
	for _, f := range ImageFormats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported image format %q (want one of %v)", s, ImageFormats)
}

// Input describes the source document of a conversion.
type Input struct {
	Type  InputType `json:"type" yaml:"type"`
	Value string    `json:"value" yaml:"value"`
}

// Output describes where and how the rendered image is delivered. Value is
// the destination path and is only meaningful when Type is OutputFile.
type Output struct {
	Type   OutputType  `json:"type" yaml:"type"`
	Format ImageFormat `json:"format" yaml:"format"`
	Value  string      `json:"value,omitempty" yaml:"value,omitempty"`
}
