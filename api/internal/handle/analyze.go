package handle

import (
	"encoding/json"
	"net/http"
)

// Analyze serves GET /analyze?imageUrl=...; the body is the summary text.
func (h *Handle) Analyze(w http.ResponseWriter, r *http.Request) {
	params := map[string]string{}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	resp := h.Invoke(r.Context(), Event{QueryStringParameters: params})
	writeText(w, resp.StatusCode, resp.Body)
}

// InvokeEvent serves POST /invoke with an event document and answers with
// the {statusCode, body} envelope.
func (h *Handle) InvokeEvent(w http.ResponseWriter, r *http.Request) {
	var ev Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		h.log.WithError(err).Warn("bad event json")
		ev = Event{}
	}
	resp := h.Invoke(r.Context(), ev)
	writeJSON(w, resp.StatusCode, resp)
}
