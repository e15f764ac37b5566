// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads the msword2image account credentials from a
// directory of plain-text files. Each file holds one secret: the filename
// is the key and the trimmed contents are the value.
//
// Recognized keys: msword2image-api-user, msword2image-api-key.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/msword2image/pkg/types"
)

const (
	KeyAPIUser = "msword2image-api-user"
	KeyAPIKey  = "msword2image-api-key"
)

// Load reads every regular, non-hidden file in dir. A missing directory is
// not an error and yields an empty map. Unreadable files are logged and
// skipped.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			slog.Warn("could not read secret", slog.String("name", name), slog.Any("error", err))
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Credentials fills the empty fields of acct from the loaded secrets.
// Values already present in acct win.
func Credentials(acct types.AccountConfig, secrets map[string]string) types.AccountConfig {
	if acct.APIUser == "" {
		acct.APIUser = secrets[KeyAPIUser]
	}
	if acct.APIKey == "" {
		acct.APIKey = secrets[KeyAPIKey]
	}
	return acct
}
