package server

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/quizmcp/handlers"
)

func SetupRoutes(api *handlers.API, rpc http.HandlerFunc) *chi.Mux {
	r := chi.NewRouter()

	// standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quizmcp"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/mcp", rpc)
		r.Post("/tests/generate", api.GenerateTest)
		r.Post("/tests/grade", api.GradeTest)
		r.Post("/explain", api.ExplainConcept)
		r.Post("/explain-wrong", api.ExplainWrong)
		r.Route("/progress/{userID}", func(r chi.Router) {
			r.Get("/", api.GetProgress)
			r.Post("/", api.TrackProgress)
		})
	})

	return r
}
