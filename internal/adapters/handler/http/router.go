package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(electionHandler *ElectionHandler, countHandler *CountHandler, jwtSecret []byte) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	authenticated := Authenticate(jwtSecret)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome"))
		})

		r.Route("/elections", func(r chi.Router) {
			r.With(authenticated).Post("/", electionHandler.CreateElection)
			r.Get("/{id}", electionHandler.GetElection)
			r.Post("/{id}/ballots", electionHandler.CastBallot)
			r.With(authenticated).Post("/{id}/count", countHandler.CountElection)
			r.Get("/{id}/result", countHandler.GetResult)
		})

		r.Post("/tally", countHandler.Tally)
	})

	return r
}
