// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/msword2image/pkg/types"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  map[string]string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, KeyAPIUser, "  acct-42  \n")
				writeFile(t, dir, KeyAPIKey, "k_abc123\n")
				return dir
			},
			want: map[string]string{
				KeyAPIUser: "acct-42",
				KeyAPIKey:  "k_abc123",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, KeyAPIUser, "acct-1")
				writeFile(t, dir, KeyAPIKey, "   \n\t  ")
				return dir
			},
			want: map[string]string{
				KeyAPIUser: "acct-1",
			},
		},
		{
			name: "skips dotfiles and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, KeyAPIKey, "k_real")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{
				KeyAPIKey: "k_real",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read files without permission bits")
	}
	dir := t.TempDir()
	writeFile(t, dir, KeyAPIUser, "acct-7")

	badPath := filepath.Join(dir, KeyAPIKey)
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "acct-7", got[KeyAPIUser])
	_, hasBad := got[KeyAPIKey]
	assert.False(t, hasBad, "unreadable file should not appear in result")
}

func TestCredentials(t *testing.T) {
	loaded := map[string]string{KeyAPIUser: "from-secrets", KeyAPIKey: "key-from-secrets"}

	tests := []struct {
		name string
		acct types.AccountConfig
		want types.AccountConfig
	}{
		{
			name: "fills empty fields",
			acct: types.AccountConfig{},
			want: types.AccountConfig{APIUser: "from-secrets", APIKey: "key-from-secrets"},
		},
		{
			name: "keeps configured values",
			acct: types.AccountConfig{APIUser: "flag-user"},
			want: types.AccountConfig{APIUser: "flag-user", APIKey: "key-from-secrets"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Credentials(tt.acct, loaded))
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
