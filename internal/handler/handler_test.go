package handler

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"explore-islands/internal/county"
	"explore-islands/internal/geo"
	"explore-islands/pkg/model"
)

const testCounties = `[
  {"slug": "donegal", "name": "Donegal", "province": "Ulster", "colours": ["green", "gold"]},
  {"slug": "cork", "name": "Cork", "province": "Munster", "colours": ["red", "white"]}
]`

func init() {
	gin.SetMode(gin.TestMode)
}

func newCountyService(t *testing.T) *county.Service {
	t.Helper()
	counties, err := county.Parse([]byte(testCounties), county.FormatJSON)
	require.NoError(t, err)
	s, err := county.NewService(counties)
	require.NoError(t, err)
	return s
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestCountyHandlerList(t *testing.T) {
	h := NewCountyHandler(newCountyService(t))
	r := gin.New()
	r.GET("/api/counties/", h.List)

	w := get(r, "/api/counties/")
	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "donegal", body[0]["slug"])
	assert.Equal(t, "cork", body[1]["slug"])
}

func TestCountyHandlerGet(t *testing.T) {
	h := NewCountyHandler(newCountyService(t))
	r := gin.New()
	r.GET("/api/counties/:slug", h.Get)

	w := get(r, "/api/counties/cork")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"slug": "cork", "name": "Cork", "province": "Munster", "colours": ["red", "white"]}`, w.Body.String())

	w = get(r, "/api/counties/dublin")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail": "County not found"}`, w.Body.String())
}

func TestGeoHandlerMe(t *testing.T) {
	r := gin.New()
	r.GET("/api/geo/me", NewGeoHandler(geo.NewLocator("donegal", 0.2)).Me)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/geo/me", nil)
	req.RemoteAddr = "198.51.100.4:51234"
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ip": "198.51.100.4", "guessed_county": "donegal", "confidence": 0.2}`, w.Body.String())
}

func TestHealthHandler(t *testing.T) {
	r := gin.New()
	r.GET("/healthz", NewHealthHandler(newCountyService(t)).Health)

	w := get(r, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok", "counties": 2}`, w.Body.String())
}

func TestPageHandler(t *testing.T) {
	tmpl := template.Must(template.New("index.html").Parse(`{{range .Counties}}{{.Slug}};{{end}}`))
	template.Must(tmpl.New("county.html").Parse(`{{.Title}}|{{with .County}}{{.Province}}{{else}}missing {{.Slug}}{{end}}`))

	h := NewPageHandler(newCountyService(t))
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.GET("/", h.Home)
	r.GET("/county/:slug", h.County)

	w := get(r, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "donegal;cork;", w.Body.String())

	w = get(r, "/county/cork")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cork|Munster", w.Body.String())

	w = get(r, "/county/dublin")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "County not found|missing dublin", w.Body.String())
}

func TestPageHandlerHomeProvinces(t *testing.T) {
	tmpl := template.Must(template.New("index.html").Parse(`{{range .Provinces}}{{.}};{{end}}`))

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.GET("/", NewPageHandler(newCountyService(t)).Home)

	w := get(r, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Munster;Ulster;", w.Body.String())
}

func TestProvinces(t *testing.T) {
	counties := []model.County{
		{Slug: "kerry", Province: "Munster"},
		{Slug: "dublin", Province: "Leinster"},
		{Slug: "cork", Province: "Munster"},
		{Slug: "nowhere"},
	}
	assert.Equal(t, []string{"Leinster", "Munster"}, provinces(counties))
	assert.Empty(t, provinces(nil))
}
