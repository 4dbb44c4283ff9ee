package handle

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"img-analysis/api/internal/analysis"
)

const internalServerError = "Internal Server Error"

type Handle struct {
	pipeline *analysis.Pipeline
	log      logrus.FieldLogger
	validate *validator.Validate
}

func New(pipeline *analysis.Pipeline, log logrus.FieldLogger) *Handle {
	return &Handle{
		pipeline: pipeline,
		log:      log,
		validate: validator.New(),
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}
