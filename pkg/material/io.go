package material

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/railreport/pkg/errors"
)

// Format identifies a record file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the record format from a file extension.
func FormatFromPath(path string) (Format, error) {
	if err := errors.ValidateRecordFilename(path); err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return FormatJSON, nil
	}
}

// Decode reads a single record in the given format from r.
//
// Unknown keys are ignored in every format. Type mismatches on known keys
// (e.g. a string where failureCount expects a number) are reported as
// INVALID_FORMAT errors. Decode does not close r.
func Decode(r io.Reader, format Format) (*Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}

	var rec Record
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &rec)
	case FormatYAML:
		err = yaml.Unmarshal(data, &rec)
	case FormatTOML:
		_, err = toml.NewDecoder(bytes.NewReader(data)).Decode(&rec)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown record format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s record", format)
	}
	return &rec, nil
}

// Load reads the record file at path, choosing the decoder by extension.
func Load(path string) (*Record, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "record file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rec, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// WriteJSON encodes r as indented JSON.
func WriteJSON(w io.Writer, r *Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
