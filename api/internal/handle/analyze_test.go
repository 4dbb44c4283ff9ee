package handle

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"img-analysis/api/internal/analysis"
)

func TestAnalyzeHTTP(t *testing.T) {
	h, _ := newHandle(&stubFetcher{img: jpeg},
		&stubLabeler{labels: []analysis.Label{{Name: "Cat", Confidence: 95.5}, {Name: "Dog", Confidence: 88.25}}},
		&stubTranslator{text: "Gato e Cachorro"})

	r := httptest.NewRequest(http.MethodGet, "/analyze?imageUrl="+url.QueryEscape("https://x/img.png"), nil)
	w := httptest.NewRecorder()
	h.Analyze(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "A imagem tem: 95.50% de ser do tipo Gato\n88.25% de ser do tipo Cachorro", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestAnalyzeHTTPMissingParam(t *testing.T) {
	h, _ := newHandle(&stubFetcher{img: jpeg}, &stubLabeler{}, &stubTranslator{})

	w := httptest.NewRecorder()
	h.Analyze(w, httptest.NewRequest(http.MethodGet, "/analyze", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", w.Body.String())
}

func TestInvokeEventHTTP(t *testing.T) {
	h, _ := newHandle(&stubFetcher{img: jpeg},
		&stubLabeler{labels: []analysis.Label{{Name: "Cat", Confidence: 81}}},
		&stubTranslator{text: "Gato"})

	body := `{"queryStringParameters":{"imageUrl":"https://x/img.png"}}`
	w := httptest.NewRecorder()
	h.InvokeEvent(w, httptest.NewRequest(http.MethodPost, "/invoke", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)
	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, Response{StatusCode: 200, Body: "A imagem tem: 81.00% de ser do tipo Gato"}, resp)
}

func TestInvokeEventHTTPBadJSON(t *testing.T) {
	h, _ := newHandle(&stubFetcher{img: jpeg}, &stubLabeler{}, &stubTranslator{})

	w := httptest.NewRecorder()
	h.InvokeEvent(w, httptest.NewRequest(http.MethodPost, "/invoke", strings.NewReader("{")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	b, _ := io.ReadAll(w.Body)
	assert.JSONEq(t, `{"statusCode":500,"body":"Internal Server Error"}`, string(b))
}
