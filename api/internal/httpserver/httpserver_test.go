package httpserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"img-analysis/api/internal/analysis"
	"img-analysis/api/internal/handle"
)

type imageServer struct{}

func (imageServer) Fetch(_ context.Context, _ string) ([]byte, error) {
	return []byte{0xFF, 0xD8, 0xFF}, nil
}

type oneLabel struct{}

func (oneLabel) Name() string { return "one" }

func (oneLabel) DetectLabels(_ context.Context, _ analysis.LabelsInput) (analysis.LabelsOutput, error) {
	return analysis.LabelsOutput{Labels: []analysis.Label{{Name: "Cat", Confidence: 99}}}, nil
}

func (oneLabel) Translate(_ context.Context, _ analysis.TranslateInput) (analysis.TranslateOutput, error) {
	return analysis.TranslateOutput{TranslatedText: "Gato"}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log, _ := test.NewNullLogger()
	p := analysis.NewPipeline(imageServer{},
		analysis.NewLabelDetector(oneLabel{}, analysis.DefaultMinConfidence),
		analysis.NewTranslator(oneLabel{}, analysis.TranslatorOptions{SourceLanguage: "en", TargetLanguage: "pt"}),
		time.Second)
	ts := httptest.NewServer(NewRouter(handle.New(p, log), log))
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, u string) (int, string) {
	t.Helper()
	resp, err := http.Get(u)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestRoutes(t *testing.T) {
	ts := newTestServer(t)

	code, body := get(t, ts.URL+"/analyze?imageUrl="+url.QueryEscape("https://x/img.png"))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "A imagem tem: 99.00% de ser do tipo Gato", body)

	code, _ = get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, code)

	code, _ = get(t, ts.URL+"/invoke")
	assert.Equal(t, http.StatusMethodNotAllowed, code)
}

func TestNew(t *testing.T) {
	log, _ := test.NewNullLogger()
	srv := New(":0", nil, log)
	assert.Equal(t, ":0", srv.Addr)
	assert.Equal(t, ReadHeaderTimeout, srv.ReadHeaderTimeout)
}
