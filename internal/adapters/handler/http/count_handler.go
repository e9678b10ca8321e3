package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/stv/internal/core/ports"
	"github.com/vncsmyrnk/stv/internal/core/services"
)

type CountHandler struct {
	service ports.CountService
}

func NewCountHandler(service ports.CountService) *CountHandler {
	return &CountHandler{
		service: service,
	}
}

type countRequest struct {
	TieBreakOrder []string `json:"tie_break_order"`
}

// tieBreaker is nil without an order, so a tie comes back as a conflict the
// caller can answer by resubmitting with tie_break_order.
func (req countRequest) tieBreaker() ports.TieBreaker {
	if len(req.TieBreakOrder) == 0 {
		return nil
	}
	return services.NewOrderTieBreaker(req.TieBreakOrder)
}

func (h *CountHandler) CountElection(w http.ResponseWriter, r *http.Request) {
	var req countRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Count(r.Context(), chi.URLParam(r, "id"), req.tieBreaker())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *CountHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetResult(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type tallyRequest struct {
	countRequest
	Candidates []string `json:"candidates"`
	Ballots    []struct {
		Ranking []int  `json:"ranking"`
		Weight  *int64 `json:"weight"`
	} `json:"ballots"`
	Seats int    `json:"seats"`
	Quota string `json:"quota"`
}

func (h *CountHandler) Tally(w http.ResponseWriter, r *http.Request) {
	var req tallyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.TallyInput{
		Candidates: req.Candidates,
		Seats:      req.Seats,
		Quota:      req.Quota,
	}
	for _, b := range req.Ballots {
		weight := int64(1)
		if b.Weight != nil {
			weight = *b.Weight
		}
		input.Rankings = append(input.Rankings, ports.WeightedRanking{Ranking: b.Ranking, Weight: weight})
	}

	result, err := h.service.Tally(r.Context(), input, req.tieBreaker())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
