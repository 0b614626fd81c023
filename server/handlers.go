package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/rustyeddy/riskgate/risk"
	"github.com/rustyeddy/riskgate/store"
)

// validateRequest is the wire shape of POST /v1/validate.
type validateRequest struct {
	AccountID string            `json:"accountId"`
	Trade     risk.TradeRequest `json:"tradeRequest"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResult(w, http.StatusBadRequest, risk.Deny("malformed request: invalid JSON body"))
		return
	}
	if req.AccountID == "" {
		writeResult(w, http.StatusBadRequest, risk.Deny("malformed request: accountId is required"))
		return
	}
	if err := req.Trade.Validate(); err != nil {
		writeResult(w, http.StatusBadRequest, risk.Deny(err.Error()))
		return
	}

	result, err := s.svc.ValidateTrade(r.Context(), req.AccountID, req.Trade)
	switch {
	case errors.Is(err, store.ErrAccountNotFound):
		writeResult(w, http.StatusNotFound, risk.Deny("account "+req.AccountID+" not found"))
		return
	case err != nil:
		// Account/position lookup failure is unrecoverable for this
		// decision: deny rather than guess.
		log.Error().Err(err).Str("account", req.AccountID).Msg("snapshot lookup failed")
		writeResult(w, http.StatusInternalServerError, risk.Deny("account state unavailable"))
		return
	}

	writeResult(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func writeResult(w http.ResponseWriter, status int, result risk.ValidationResult) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Error().Err(err).Msg("encode response failed")
	}
}

// recoverMiddleware converts a panic anywhere below the handler into a
// fail-closed denial. An un-validated trade is the higher-risk outcome,
// so unexpected errors never fail open.
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("recovered panic")
				writeResult(w, http.StatusInternalServerError,
					risk.Deny("internal error: trade denied"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
