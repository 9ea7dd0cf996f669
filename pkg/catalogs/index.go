package catalogs

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/StreamMUSE/streammuse/pkg/errors"
)

// Format is an on-disk encoding of the catalog index.
type Format string

// Supported index formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the index format from a file extension.
// Anything that is not .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// EncodeIndex writes groups to w as a top-level sequence of card groups.
func EncodeIndex(w io.Writer, format Format, groups []CardGroup) error {
	if groups == nil {
		groups = []CardGroup{}
	}

	switch format {
	case FormatYAML:
		data, err := yaml.MarshalWithOptions(groups, yaml.Indent(2), yaml.IndentSequence(true))
		if err != nil {
			return errors.WrapParse("yaml", "", err)
		}
		_, err = w.Write(data)
		return errors.WrapIO("write", "", err)
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(groups); err != nil {
			return errors.WrapParse("json", "", err)
		}
		return nil
	default:
		return errors.NewValidationError("format", format, "unsupported index format")
	}
}

// DecodeIndex reads a sequence of card groups from data.
// An empty document decodes to an empty catalog.
func DecodeIndex(data []byte, format Format) ([]CardGroup, error) {
	groups := []CardGroup{}
	if len(bytes.TrimSpace(data)) == 0 {
		return groups, nil
	}

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &groups); err != nil {
			return nil, errors.WrapParse("yaml", "", err)
		}
	case FormatJSON, "":
		if err := json.Unmarshal(data, &groups); err != nil {
			return nil, errors.WrapParse("json", "", err)
		}
	default:
		return nil, errors.NewValidationError("format", format, "unsupported index format")
	}

	if groups == nil {
		groups = []CardGroup{}
	}
	return groups, nil
}
