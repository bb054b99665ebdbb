package county

import (
	"fmt"

	"explore-islands/pkg/model"
)

// Service serves lookups over counties loaded once at start.
// It holds no writer after construction, so it is safe for concurrent use.
type Service struct {
	counties map[string]model.County
	order    []string
}

// NewService creates a new county service from validated records
func NewService(counties []model.County) (*Service, error) {
	if len(counties) == 0 {
		return nil, ErrEmptyDataset
	}

	s := &Service{
		counties: make(map[string]model.County, len(counties)),
		order:    make([]string, 0, len(counties)),
	}

	for i, c := range counties {
		if c.Slug == "" {
			return nil, &ValidationError{Index: i, Message: "slug is empty"}
		}
		if _, ok := s.counties[c.Slug]; ok {
			return nil, &ValidationError{Index: i, Message: fmt.Sprintf("duplicate slug %q", c.Slug)}
		}

		// Own the record so later changes to the caller's slices do not leak in
		s.counties[c.Slug] = c.Clone()
		s.order = append(s.order, c.Slug)
	}

	return s, nil
}

// List returns copies of all counties in source order
func (s *Service) List() []model.County {
	counties := make([]model.County, 0, len(s.order))
	for _, slug := range s.order {
		counties = append(counties, s.counties[slug].Clone())
	}
	return counties
}

// Get returns a copy of the county with the given slug
func (s *Service) Get(slug string) (model.County, error) {
	c, ok := s.counties[slug]
	if !ok {
		return model.County{}, &NotFoundError{Slug: slug}
	}
	return c.Clone(), nil
}

// Len returns the number of loaded counties
func (s *Service) Len() int {
	return len(s.order)
}
