package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/light-bringer/price-resolver/internal/obs"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(prices *PriceHandler) http.Handler {
	mux := http.NewServeMux()
	prices.Register(mux)
	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("/", notFoundHandler)

	return chi.Chain(
		middleware.RequestID,
		echoRequestID,
		newRequestLogger(obs.Logger),
		middleware.Recoverer,
	).Handler(mux)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSONError(w, http.StatusNotFound, CodeNotFound, msgNoResource, r.Method+" "+r.URL.Path)
}
