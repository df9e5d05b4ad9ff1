package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

type askRequest struct {
	Q string `json:"q"`
}

// handleAsk answers POST /v1/nlq. A missing or empty question still runs the
// translation pipeline, which falls back to a plain order count.
func handleAsk(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Queries == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "NLQ_NOT_CONFIGURED", "query dependencies are not configured")
		return
	}
	if err := requireRole(r, "query_reader"); err != nil {
		writeError(r.Context(), w, http.StatusForbidden, "FORBIDDEN", err.Error())
		return
	}

	var request askRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_JSON", "invalid nlq request body")
		return
	}

	result, err := deps.Queries.TranslateAndRun(r.Context(), request.Q)
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "QUERY_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}
