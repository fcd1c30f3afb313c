// SPDX-License-Identifier: EPL-2.0

package modelfile

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/argonaut-cli/argonaut/internal/cueparse"
)

//go:embed schema.cue
var modelSchema []byte

// ErrUnsupportedFormat is returned by Load for file extensions other than
// .cue and .toml.
var ErrUnsupportedFormat = errors.New("unsupported model file format")

// Load reads and parses a model file, choosing the parser by extension.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return ParseCUE(data, path)
	case ".toml":
		return ParseTOML(data, path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ParseCUE validates data against the embedded schema and decodes it.
func ParseCUE(data []byte, filename string) (*Document, error) {
	return cueparse.DecodeWithSchema[Document](modelSchema, data, "#Modelfile", filename)
}

// ParseTOML decodes data strictly: unknown keys are an error, so typos in
// hand-written documents surface instead of silently dropping structure.
func ParseTOML(data []byte, filename string) (*Document, error) {
	var doc Document
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%s: %s", filename, strict.String())
		}
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &doc, nil
}
