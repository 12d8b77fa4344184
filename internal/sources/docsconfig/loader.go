package docsconfig

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Loader reads a configuration payload from disk.
//
// The payload is JSON or YAML, optionally wrapped in a script assignment
// such as `var __DOCS_CONFIG__ = {...};`.
type Loader struct {
	filePath string
}

// NewLoader creates a new configuration loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Path returns the file the loader reads.
func (l *Loader) Path() string {
	return l.filePath
}

// Load reads and decodes the payload. The fingerprint is the sha256 of the
// raw file bytes, so an unchanged file always yields the same fingerprint.
func (l *Loader) Load() (*RawConfig, string, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read config file: %w", err)
	}

	raw, err := Decode(data)
	if err != nil {
		return nil, "", err
	}
	return raw, Fingerprint(data), nil
}

// Decode parses a payload held in memory.
func Decode(data []byte) (*RawConfig, error) {
	data = stripScriptWrapper(data)

	var raw RawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config payload: %w", err)
	}
	return &raw, nil
}

// Fingerprint hashes a payload.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FingerprintFiles hashes several files together. Blank paths are skipped.
// It lets a reloader detect that nothing changed without decoding anything.
func FingerprintFiles(paths ...string) (string, error) {
	h := sha256.New()
	for _, p := range paths {
		if p == "" {
			continue
		}
		f, err := os.Open(p)
		if err != nil {
			return "", fmt.Errorf("failed to open %s: %w", p, err)
		}
		_, _ = io.WriteString(h, p+"\x00")
		_, err = io.Copy(h, f)
		_ = f.Close()
		if err != nil {
			return "", fmt.Errorf("failed to hash %s: %w", p, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

var scriptWrapper = regexp.MustCompile(`(?s)^\s*(?:(?:var|let|const)\s+|window\.)[A-Za-z_$][\w$]*\s*=\s*(.*?)\s*;?\s*$`)

// stripScriptWrapper removes a JS assignment around the object literal
// Example: var __DOCS_CONFIG__ = {"id":"x"}; -> {"id":"x"}
func stripScriptWrapper(data []byte) []byte {
	m := scriptWrapper.FindSubmatch(data)
	if m == nil {
		return data
	}
	return m[1]
}
