// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file is one secret: the filename is the name and the trimmed
// contents are the value.
//
// Known secrets: unidoc-license-key (unipdf metered license).
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/pdfconv/internal/logging"
)

// DefaultDir is the secrets directory, relative to the working directory.
const DefaultDir = ".secrets"

// configKeys maps secret file names to the configuration keys they fill.
var configKeys = map[string]string{
	"unidoc-license-key": "unidoc.license_key",
}

// Load reads all files in dir. A missing directory is not an error and
// yields an empty map. Unreadable files are logged and skipped.
func Load(dir string, log *zap.Logger) (map[string]string, error) {
	log = logging.OrNop(log)

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
			log.Warn("could not read secret", zap.String("name", name), zap.Error(err))
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}
	return secrets, nil
}

// Setter is the part of a configuration store Apply needs.
type Setter interface {
	GetString(key string) string
	Set(key string, value any)
}

// Apply copies known secrets into cfg for keys that have no value yet and
// returns the keys it filled, sorted.
func Apply(cfg Setter, secrets map[string]string) []string {
	var filled []string
	for name, value := range secrets {
		key, ok := configKeys[name]
		if !ok || cfg.GetString(key) != "" {
			continue
		}
		cfg.Set(key, value)
		filled = append(filled, key)
	}
	sort.Strings(filled)
	return filled
}
