package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vncsmyrnk/stv/internal/core/domain"
	"github.com/vncsmyrnk/stv/internal/core/services"
)

var badRequestErrors = []error{
	domain.ErrInvalidElectionID,
	domain.ErrTitleRequired,
	domain.ErrNoCandidates,
	domain.ErrBlankCandidate,
	domain.ErrDuplicateCandidate,
	domain.ErrInvalidSeats,
	domain.ErrInvalidQuotaRule,
	domain.ErrInvalidPreference,
	domain.ErrDuplicatePreference,
	domain.ErrEmptyBallot,
	domain.ErrInvalidWeight,
}

type tieResponse struct {
	Error string      `json:"error"`
	Tie   *domain.Tie `json:"tie,omitempty"`
}

// writeError maps service errors to status codes. Ties get a JSON body naming
// the tied candidates so the caller can resubmit with a decision.
func writeError(w http.ResponseWriter, err error) {
	var tieErr *domain.TieError
	switch {
	case errors.As(err, &tieErr):
		writeJSON(w, http.StatusConflict, tieResponse{Error: err.Error(), Tie: &tieErr.Tie})
		return
	case errors.Is(err, services.ErrNoTieDecision), errors.Is(err, domain.ErrInvalidTieChoice):
		writeJSON(w, http.StatusConflict, tieResponse{Error: err.Error()})
		return
	case errors.Is(err, domain.ErrElectionNotFound), errors.Is(err, domain.ErrResultNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
