package handle

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"img-analysis/api/internal/analysis"
)

// Event is the invocation event. Only the imageUrl query parameter is read.
type Event struct {
	QueryStringParameters map[string]string `json:"queryStringParameters"`
}

type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type imageRequest struct {
	ImageURL string `validate:"required,http_url"`
}

// Invoke runs one request through the pipeline. Every failure, including a
// panic in a stage, becomes the same 500 response; the cause is only logged.
func (h *Handle) Invoke(ctx context.Context, ev Event) (resp Response) {
	reqID := middleware.GetReqID(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	log := h.log.WithField("request_id", reqID)

	defer func() {
		if p := recover(); p != nil {
			log.WithField("panic", p).Error("pipeline panicked")
			resp = Response{StatusCode: http.StatusInternalServerError, Body: internalServerError}
		}
	}()

	req, err := h.parseEvent(ev)
	if err != nil {
		return h.fail(log, err)
	}
	log = log.WithField("image_url", req.ImageURL)

	res, err := h.pipeline.Run(ctx, log, req.ImageURL)
	if err != nil {
		return h.fail(log, err)
	}

	log.WithField("labels", len(res.WorkingSet)).Info("finishing")
	return Response{StatusCode: http.StatusOK, Body: analysis.SummaryPrefix + res.Text}
}

func (h *Handle) parseEvent(ev Event) (imageRequest, error) {
	if ev.QueryStringParameters == nil {
		return imageRequest{}, analysis.NewMalformedRequestError("missing queryStringParameters")
	}
	req := imageRequest{ImageURL: ev.QueryStringParameters["imageUrl"]}
	if err := h.validate.Struct(req); err != nil {
		return imageRequest{}, analysis.NewMalformedRequestError("imageUrl: %v", err)
	}
	return req, nil
}

func (h *Handle) fail(log *logrus.Entry, err error) Response {
	log.WithError(err).WithField("kind", analysis.KindOf(err).String()).Error("request failed")
	return Response{StatusCode: http.StatusInternalServerError, Body: internalServerError}
}
