// Package httpapi binds the gateway operations to a REST surface. Handlers
// stay thin: parse the request, call the gateway, map the error kind to a
// status code. All resource semantics live in the gateway package.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/awsgate/awsgate/gateway"
)

// Handler holds the dependencies shared by every route.
type Handler struct {
	gw       *gateway.Gateway
	logger   *zap.Logger
	validate *validator.Validate
}

// New creates the handler set over a gateway.
func New(gw *gateway.Gateway, logger *zap.Logger) *Handler {
	return &Handler{
		gw:       gw,
		logger:   logger,
		validate: validator.New(),
	}
}

// Router assembles the route tree with the shared middleware chain.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(RequestID)
	r.Use(Logging(h.logger))

	r.Get("/health", h.health)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/sns", func(r chi.Router) {
			r.Post("/topics", h.createTopic)
			r.Get("/topics", h.listTopics)
			r.Post("/publish", h.publish)
			r.Post("/subscriptions", h.subscribe)
		})

		r.Route("/sqs", func(r chi.Router) {
			r.Post("/send", h.send)
			r.Get("/messages", h.receive)
			r.Delete("/messages", h.deleteMessage)
			r.Delete("/messages/all", h.purge)
			r.Get("/queues", h.listQueues)
		})

		r.Route("/dynamodb", func(r chi.Router) {
			r.Get("/all", h.scanAll)
			r.Get("/item", h.getItem)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
