package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/im-vetri/Useful-APIs/internal/api/handlers"
	"github.com/im-vetri/Useful-APIs/internal/domain"
	"github.com/im-vetri/Useful-APIs/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(log *zap.Logger, engine *services.Engine, base domain.Options) http.Handler {
	mux := http.NewServeMux()

	routing := &handlers.RoutingHandler{
		Engine: engine,
		Log:    log,
		Base:   base,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/distance", routing.Distance)
	mux.HandleFunc("/matrix", routing.Matrix)
	mux.HandleFunc("/routes/optimize", routing.Optimize)
	mux.HandleFunc("/eta", routing.ETA)

	return requestIDMiddleware(loggingMiddleware(log, mux))
}
