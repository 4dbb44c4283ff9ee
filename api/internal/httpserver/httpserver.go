package httpserver

import (
	"net/http"
	"time"

	httpLogger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"img-analysis/api/internal/handle"
)

const ReadHeaderTimeout = 5 * time.Second

// New builds the HTTP server around the request handler.
func New(addr string, h *handle.Handle, log *logrus.Logger) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(h, log),
		ReadHeaderTimeout: ReadHeaderTimeout,
	}
}

func NewRouter(h *handle.Handle, log *logrus.Logger) *chi.Mux {
	router := chi.NewRouter()
	router.Use(httpLogger.Logger("router", log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Heartbeat("/healthz"))

	router.Get("/analyze", h.Analyze)
	router.Post("/invoke", h.InvokeEvent)
	return router
}
