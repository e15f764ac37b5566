// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package msword2image converts Word documents to images through the
// msword2image HTTP service.
//
// A Converter holds one input (a local file or a URL the service fetches)
// and one output (a local file or a base64 string). Setting an output runs
// the conversion: one POST to the service, no retries.
//
//	c := msword2image.New(user, key)
//	c.FromURL("https://example.com/report.docx")
//	err := c.ToFile(ctx, "report.png", types.FormatPNG)
package msword2image

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"slices"

	"github.com/pdiddy/msword2image/internal/httputil"
	"github.com/pdiddy/msword2image/pkg/types"
)

const (
	// fieldURL carries a remote document URL in a form-encoded body.
	fieldURL = "url"
	// fieldFile carries the document bytes in a multipart body.
	fieldFile = "file_contents"
	// queryFormat selects the rendered image format.
	queryFormat = "format"
)

// Converter submits one Word document to the conversion service. It is not
// safe for concurrent use.
type Converter struct {
	// apiUser and apiKey identify the account. The service does not
	// receive them yet.
	apiUser string
	apiKey  string

	endpoint  string
	client    *http.Client
	userAgent string

	input  *types.Input
	output *types.Output
}

// New returns a Converter for the given account.
func New(apiUser, apiKey string, funcs ...OptionFunc) *Converter {
	opts := NewOptions(funcs...)
	return &Converter{
		apiUser:   apiUser,
		apiKey:    apiKey,
		endpoint:  opts.Endpoint,
		client:    opts.HTTPClient,
		userAgent: opts.UserAgent,
	}
}

// APIUser returns the account identifier given to New.
func (c *Converter) APIUser() string {
	return c.apiUser
}

// HasCredentials reports whether both the account identifier and key are set.
func (c *Converter) HasCredentials() bool {
	return c.apiUser != "" && c.apiKey != ""
}

// FromFile sets the input to the Word document at path, replacing any
// previous input. The path is not checked until a conversion runs.
func (c *Converter) FromFile(path string) {
	c.input = &types.Input{Type: types.InputFile, Value: path}
}

// FromURL sets the input to a document the service downloads itself,
// replacing any previous input.
func (c *Converter) FromURL(rawURL string) {
	c.input = &types.Input{Type: types.InputURL, Value: rawURL}
}

// Input returns the current input and whether one is set.
func (c *Converter) Input() (types.Input, bool) {
	if c.input == nil {
		return types.Input{}, false
	}
	return *c.input, true
}

// Output returns the output of the last conversion attempt and whether one
// is set.
func (c *Converter) Output() (types.Output, bool) {
	if c.output == nil {
		return types.Output{}, false
	}
	return *c.output, true
}

// ToFile converts the input and writes the image to path. An empty format
// selects PNG. The destination is replaced only when the whole image has
// been received.
func (c *Converter) ToFile(ctx context.Context, path string, format types.ImageFormat) error {
	c.output = &types.Output{Type: types.OutputFile, Format: defaultFormat(format), Value: path}
	_, err := c.convert(ctx)
	return err
}

// ToBase64EncodedString converts the input and returns the image encoded
// with standard base64. An empty format selects PNG.
func (c *Converter) ToBase64EncodedString(ctx context.Context, format types.ImageFormat) (string, error) {
	c.output = &types.Output{Type: types.OutputBase64String, Format: defaultFormat(format)}
	return c.convert(ctx)
}

func defaultFormat(format types.ImageFormat) types.ImageFormat {
	if format == "" {
		return types.DefaultImageFormat
	}
	return format
}

// convert checks the preconditions and dispatches on the input/output pair.
// The string result is only meaningful for base64 outputs.
func (c *Converter) convert(ctx context.Context) (string, error) {
	if c.input == nil {
		return "", usageError(ErrInputNotSet, "")
	}
	if c.output == nil {
		return "", usageError(ErrOutputNotSet, "")
	}
	if c.client == nil {
		return "", usageError(ErrNoHTTPClient, "")
	}
	if !slices.Contains(types.ImageFormats, c.output.Format) {
		return "", usageError(ErrInvalidFormat, fmt.Sprintf("format %q", c.output.Format))
	}

	in, out := c.input.Type, c.output.Type
	switch {
	case in == types.InputURL && out == types.OutputFile:
		return "", c.convertURLToFile(ctx)
	case in == types.InputURL && out == types.OutputBase64String:
		return c.convertURLToBase64(ctx)
	case in == types.InputFile && out == types.OutputFile:
		return "", c.convertFileToFile(ctx)
	case in == types.InputFile && out == types.OutputBase64String:
		return c.convertFileToBase64(ctx)
	default:
		return "", usageError(ErrInvalidCombination,
			fmt.Sprintf("cannot convert from input type %q to output type %q", in, out))
	}
}

func (c *Converter) convertURLToFile(ctx context.Context) error {
	dest, err := c.openDestination()
	if err != nil {
		return err
	}
	return dest.finish(c.post(ctx, c.urlBody(), dest))
}

func (c *Converter) convertURLToBase64(ctx context.Context) (string, error) {
	var buf bytes.Buffer
	if err := c.post(ctx, c.urlBody(), &buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (c *Converter) convertFileToFile(ctx context.Context) error {
	body, err := c.fileBody()
	if err != nil {
		return err
	}
	dest, err := c.openDestination()
	if err != nil {
		return err
	}
	return dest.finish(c.post(ctx, body, dest))
}

func (c *Converter) convertFileToBase64(ctx context.Context) (string, error) {
	body, err := c.fileBody()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := c.post(ctx, body, &buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (c *Converter) urlBody() httputil.Body {
	return httputil.FormBody(url.Values{fieldURL: {c.input.Value}})
}

// fileBody resolves the input to its canonical path. A missing file fails
// here, before any destination is opened or request sent.
func (c *Converter) fileBody() (httputil.Body, error) {
	path, err := canonicalPath(c.input.Value)
	if err != nil {
		return nil, filesystemError(err, fmt.Sprintf("cannot resolve input file %q", c.input.Value))
	}
	return httputil.MultipartFileBody{Field: fieldFile, Path: path}, nil
}

func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", resolved)
	}
	return resolved, nil
}

func (c *Converter) openDestination() (*destination, error) {
	if c.output.Value == "" {
		return nil, usageError(nil, "output file path is empty")
	}
	dest, err := openDestination(c.output.Value)
	if err != nil {
		return nil, filesystemError(err, fmt.Sprintf("couldn't open output file %q", c.output.Value))
	}
	return dest, nil
}

// post sends body with the output format and copies the image into sink.
func (c *Converter) post(ctx context.Context, body httputil.Body, sink io.Writer) error {
	_, err := httputil.Post(ctx, c.client, c.endpoint, body,
		httputil.WithQuery(queryFormat, string(c.output.Format)),
		httputil.WithHeader("User-Agent", c.userAgent),
		httputil.WithSink(sink),
	)
	if err == nil {
		return nil
	}

	var bodyErr *httputil.BodyError
	if errors.As(err, &bodyErr) {
		return filesystemError(bodyErr.Err, "reading input file")
	}
	return transportError(err)
}
