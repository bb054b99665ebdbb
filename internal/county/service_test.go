package county

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"explore-islands/pkg/model"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	counties, err := Parse([]byte(twoCounties), FormatJSON)
	require.NoError(t, err)
	s, err := NewService(counties)
	require.NoError(t, err)
	return s
}

func TestServiceGet(t *testing.T) {
	s := newTestService(t)

	c, err := s.Get("cork")
	require.NoError(t, err)
	assert.Equal(t, "cork", c.Slug)
	assert.Equal(t, "Cork", c.Name)

	c, err = s.Get("dublin")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, model.County{}, c)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "dublin", nf.Slug)
}

func TestServiceGetReturnsLoadedRecord(t *testing.T) {
	counties, err := Parse([]byte(twoCounties), FormatJSON)
	require.NoError(t, err)
	s, err := NewService(counties)
	require.NoError(t, err)

	for _, want := range counties {
		got, err := s.Get(want.Slug)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		out, err := json.Marshal(got)
		require.NoError(t, err)
		assert.JSONEq(t, string(want.Raw), string(out))
	}
}

func TestServiceGetIsCaseSensitive(t *testing.T) {
	s := newTestService(t)

	for _, slug := range []string{"Cork", "CORK", " cork", ""} {
		_, err := s.Get(slug)
		assert.ErrorIs(t, err, ErrCountyNotFound, slug)
	}
}

func TestServiceList(t *testing.T) {
	s := newTestService(t)

	counties := s.List()
	require.Len(t, counties, 2)
	assert.Equal(t, "donegal", counties[0].Slug)
	assert.Equal(t, "cork", counties[1].Slug)
	assert.Equal(t, 2, s.Len())

	// Mutating the returned slice does not affect the service
	counties[0] = model.County{Slug: "dublin"}
	assert.Equal(t, "donegal", s.List()[0].Slug)
	_, err := s.Get("dublin")
	assert.ErrorIs(t, err, ErrCountyNotFound)
}

func TestNewServiceOwnsRecords(t *testing.T) {
	raw := json.RawMessage(`{"slug":"cork"}`)
	s, err := NewService([]model.County{model.NewCounty("cork", raw)})
	require.NoError(t, err)

	raw[2] = 'X'
	c, err := s.Get("cork")
	require.NoError(t, err)
	assert.Equal(t, `{"slug":"cork"}`, string(c.Raw))
}

func TestServiceResultsDoNotAliasState(t *testing.T) {
	s := newTestService(t)

	c, err := s.Get("cork")
	require.NoError(t, err)
	c.Raw[2] = 'X'
	c.Colours[0] = "purple"
	s.List()[0].Colours[1] = "pink"
	s.List()[1].Raw[3] = 'Y'

	cork, err := s.Get("cork")
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "white"}, cork.Colours)
	assert.True(t, json.Valid(cork.Raw))
	assert.Contains(t, string(cork.Raw), `"slug": "cork"`)

	donegal, err := s.Get("donegal")
	require.NoError(t, err)
	assert.Equal(t, []string{"green", "gold"}, donegal.Colours)
}

func TestNewServiceOwnsColours(t *testing.T) {
	counties, err := Parse([]byte(twoCounties), FormatJSON)
	require.NoError(t, err)
	s, err := NewService(counties)
	require.NoError(t, err)

	counties[1].Colours[0] = "purple"
	c, err := s.Get("cork")
	require.NoError(t, err)
	assert.Equal(t, "red", c.Colours[0])
}

func TestNewServiceRejectsInvalidInput(t *testing.T) {
	_, err := NewService(nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = NewService([]model.County{
		model.NewCounty("cork", json.RawMessage(`{"slug":"cork"}`)),
		model.NewCounty("cork", json.RawMessage(`{"slug":"cork"}`)),
	})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = NewService([]model.County{{Raw: json.RawMessage(`{}`)}})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestServiceConcurrentReads(t *testing.T) {
	s := newTestService(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, err := s.Get("donegal")
				assert.NoError(t, err)
				assert.Len(t, s.List(), 2)
			}
		}()
	}
	wg.Wait()
}
