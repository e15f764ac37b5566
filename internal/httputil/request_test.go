// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost_FormBody(t *testing.T) {
	var gotMethod, gotContentType, gotFormat, gotURL string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotFormat = r.URL.Query().Get("format")
		assert.NoError(t, r.ParseForm())
		gotURL = r.PostForm.Get("url")
		w.Write([]byte("image-bytes"))
	}))
	defer ts.Close()

	var sink bytes.Buffer
	n, err := Post(context.Background(), ts.Client(), ts.URL+"/convert",
		FormBody{"url": {"https://example.com/a doc.docx?x=1&y=2"}},
		WithQuery("format", "png"),
		WithSink(&sink),
	)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "png", gotFormat)
	assert.Equal(t, "https://example.com/a doc.docx?x=1&y=2", gotURL)
	assert.Equal(t, "image-bytes", sink.String())
	assert.Equal(t, int64(len("image-bytes")), n)
}

func TestPost_MultipartFileBody(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "report.docx")
	require.NoError(t, os.WriteFile(docPath, []byte("fake docx"), 0o644))

	var gotName, gotContent, gotExtra string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file_contents")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		gotName = hdr.Filename
		gotContent = string(data)
		gotExtra = r.FormValue("extra")
	}))
	defer ts.Close()

	body := MultipartFileBody{
		Field:  "file_contents",
		Path:   docPath,
		Fields: url.Values{"extra": {"1"}},
	}
	_, err := Post(context.Background(), ts.Client(), ts.URL, body)
	require.NoError(t, err)

	assert.Equal(t, "report.docx", gotName)
	assert.Equal(t, "fake docx", gotContent)
	assert.Equal(t, "1", gotExtra)
}

func TestPost_MultipartMissingFileSendsNothing(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	body := MultipartFileBody{Field: "file_contents", Path: filepath.Join(t.TempDir(), "missing.docx")}
	_, err := Post(context.Background(), ts.Client(), ts.URL, body)
	require.Error(t, err)

	var bodyErr *BodyError
	assert.ErrorAs(t, err, &bodyErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestPost_QueryMergesWithEndpoint(t *testing.T) {
	var gotQuery url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
	}))
	defer ts.Close()

	_, err := Post(context.Background(), ts.Client(), ts.URL+"/convert?format=gif&keep=yes",
		FormBody{}, WithQuery("format", "jpeg"))
	require.NoError(t, err)

	assert.Equal(t, "jpeg", gotQuery.Get("format"))
	assert.Equal(t, "yes", gotQuery.Get("keep"))
}

func TestPost_Headers(t *testing.T) {
	var gotUA, gotCustom string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCustom = r.Header.Get("X-Custom")
	}))
	defer ts.Close()

	_, err := Post(context.Background(), ts.Client(), ts.URL, FormBody{},
		WithHeader("User-Agent", "msword2image/test"),
		WithHeader("X-Custom", ""),
	)
	require.NoError(t, err)

	assert.Equal(t, "msword2image/test", gotUA)
	assert.Empty(t, gotCustom)
}

func TestPost_StatusErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"ok", http.StatusOK, false},
		{"created", http.StatusCreated, false},
		{"bad request", http.StatusBadRequest, true},
		{"server error", http.StatusInternalServerError, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte("body"))
			}))
			defer ts.Close()

			var sink bytes.Buffer
			_, err := Post(context.Background(), ts.Client(), ts.URL, FormBody{}, WithSink(&sink))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "HTTP")
				assert.Empty(t, sink.String(), "error responses must not reach the sink")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "body", sink.String())
		})
	}
}

func TestPost_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	endpoint := ts.URL
	ts.Close()

	_, err := Post(context.Background(), http.DefaultClient, endpoint, FormBody{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP request")
}

func TestPost_BadEndpoint(t *testing.T) {
	_, err := Post(context.Background(), http.DefaultClient, "://nope", FormBody{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing endpoint")
}

func TestNewRequestOptions_Defaults(t *testing.T) {
	opts := NewRequestOptions()
	assert.Empty(t, opts.Query)
	assert.Empty(t, opts.Header)
	assert.Equal(t, io.Discard, opts.Sink)
}
