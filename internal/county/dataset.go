package county

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"explore-islands/pkg/model"
)

// Format identifies the encoding of a dataset file
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the dataset format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported dataset extension %q", filepath.Ext(path))
	}
}

// LoadFile reads a dataset file and returns its counties in file order
func LoadFile(path string) ([]model.County, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	counties, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("invalid dataset %s: %w", path, err)
	}
	return counties, nil
}

// Parse decodes a dataset. JSON records are kept byte for byte; YAML records
// are converted to JSON objects.
func Parse(data []byte, format Format) ([]model.County, error) {
	var raws []json.RawMessage

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("failed to decode JSON: %w", err)
		}
	case FormatYAML:
		var docs []interface{}
		if err := yaml.Unmarshal(data, &docs); err != nil {
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
		var errs error
		skip := make(map[int]bool)
		raws = make([]json.RawMessage, len(docs))
		for i, doc := range docs {
			raw, err := json.Marshal(doc)
			if err != nil {
				errs = multierr.Append(errs, &ValidationError{Index: i, Message: fmt.Sprintf("cannot convert to JSON: %v", err)})
				skip[i] = true
				continue
			}
			raws[i] = raw
		}
		return build(raws, skip, errs)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", format)
	}

	return Build(raws)
}

// Build validates raw records and turns them into counties.
// All problems are reported together.
func Build(raws []json.RawMessage) ([]model.County, error) {
	return build(raws, nil, nil)
}

// build validates raws, leaving out the indexes in skip, and appends the
// problems it finds to errs.
func build(raws []json.RawMessage, skip map[int]bool, errs error) ([]model.County, error) {
	if len(raws) == 0 {
		return nil, ErrEmptyDataset
	}

	counties := make([]model.County, 0, len(raws))
	seen := make(map[string]int, len(raws))

	for i, raw := range raws {
		if skip[i] {
			continue
		}

		slug, err := extractSlug(i, raw)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		if first, ok := seen[slug]; ok {
			errs = multierr.Append(errs, &ValidationError{
				Index:   i,
				Message: fmt.Sprintf("duplicate slug %q (first seen in record %d)", slug, first),
			})
			continue
		}
		seen[slug] = i

		counties = append(counties, model.NewCounty(slug, raw))
	}

	if errs != nil {
		return nil, errs
	}
	return counties, nil
}

func extractSlug(index int, raw json.RawMessage) (string, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return "", &ValidationError{Index: index, Message: "record is not an object"}
	}

	rawSlug, ok := obj["slug"]
	if !ok {
		return "", &ValidationError{Index: index, Message: "missing slug"}
	}

	var slug string
	if err := json.Unmarshal(rawSlug, &slug); err != nil {
		return "", &ValidationError{Index: index, Message: "slug must be a string"}
	}
	if slug == "" {
		return "", &ValidationError{Index: index, Message: "slug is empty"}
	}

	return slug, nil
}
