// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads registry credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: crossref-mailto, crossref-plus-token.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"

	"github.com/pdiddy/doi-fetch/pkg/types"
)

// Key names understood by Apply.
const (
	KeyCrossrefMailto    = "crossref-mailto"
	KeyCrossrefPlusToken = "crossref-plus-token"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged as warnings but do not abort. A nil logger
// discards the warnings.
func Load(dir string, logger *charmlog.Logger) (map[string]string, error) {
	if logger == nil {
		logger = charmlog.New(io.Discard)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret", "name", name, "err", err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Apply fills registry credentials from secrets. Values already set in cfg
// (from the config file or environment) take precedence.
func Apply(cfg *types.RegistryConfig, secrets map[string]string) {
	if v := secrets[KeyCrossrefMailto]; v != "" && cfg.Mailto == "" {
		cfg.Mailto = v
	}
	if v := secrets[KeyCrossrefPlusToken]; v != "" && cfg.PlusToken == "" {
		cfg.PlusToken = v
	}
}
