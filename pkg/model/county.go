package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
)

// County represents a county record from the static dataset.
// Raw holds the record exactly as it was read and is what gets served.
type County struct {
	Slug string
	Raw  json.RawMessage

	Name          string
	Province      string
	PrimaryColour string
	Colours       []string
}

// countyFields is the subset of fields the pages render
type countyFields struct {
	Name          string   `json:"name"`
	Province      string   `json:"province"`
	PrimaryColour string   `json:"primary_colour"`
	Colours       []string `json:"colours"`
}

// NewCounty builds a County from a raw JSON object. The slug must already be validated.
func NewCounty(slug string, raw json.RawMessage) County {
	c := County{Slug: slug, Raw: raw}

	// Descriptive fields are optional and may have any shape
	var f countyFields
	if err := json.Unmarshal(raw, &f); err == nil {
		c.Name = f.Name
		c.Province = f.Province
		c.PrimaryColour = f.PrimaryColour
		c.Colours = f.Colours
	}
	return c
}

// Clone returns a copy that shares no memory with c
func (c County) Clone() County {
	c.Raw = bytes.Clone(c.Raw)
	c.Colours = slices.Clone(c.Colours)
	return c
}

// MarshalJSON returns the record verbatim
func (c County) MarshalJSON() ([]byte, error) {
	if len(c.Raw) == 0 {
		return nil, errors.New("county has no data")
	}
	return c.Raw, nil
}

// DisplayName returns the county name, falling back to the slug
func (c County) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Slug
}
