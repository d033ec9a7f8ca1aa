package rest

import (
	"net/http"

	"flowcanvas/application/services"
	"flowcanvas/interfaces/http/rest/handlers"
	"flowcanvas/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	editor        *services.EditorService
	logger        *zap.Logger
	enableMetrics bool
	enableCORS    bool
}

// NewRouter creates a new router instance
func NewRouter(editor *services.EditorService, logger *zap.Logger, enableMetrics, enableCORS bool) *Router {
	return &Router{
		editor:        editor,
		logger:        logger,
		enableMetrics: enableMetrics,
		enableCORS:    enableCORS,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.enableCORS {
		router.Use(middleware.CORS())
	}

	// Health check
	router.Get("/health", rt.healthCheck)

	if rt.enableMetrics {
		router.Handle("/metrics", promhttp.Handler())
	}

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		nodeHandler := handlers.NewNodeHandler(rt.editor, rt.logger)
		r.Route("/nodes", func(r chi.Router) {
			r.Post("/", nodeHandler.CreateNode)
			r.Post("/bulk-delete", nodeHandler.BulkDeleteNodes)
			r.Put("/{legacyID}/position", nodeHandler.MoveNode)
			r.Post("/{legacyID}/click", nodeHandler.ClickNode)
			r.Post("/{legacyID}/hover", nodeHandler.HoverNode)
			r.Put("/{legacyID}/hint", nodeHandler.UpdateHint)
			r.Post("/{legacyID}/edit-window", nodeHandler.OpenEditWindow)
		})

		edgeHandler := handlers.NewEdgeHandler(rt.editor, rt.logger)
		r.Route("/edges", func(r chi.Router) {
			r.Post("/", edgeHandler.CreateEdge)
			r.Delete("/{edgeID}", edgeHandler.DeleteEdge)
		})

		flowHandler := handlers.NewFlowHandler(rt.editor, rt.logger)
		r.Route("/flow", func(r chi.Router) {
			r.Get("/", flowHandler.GetFlow)
			r.Get("/order", flowHandler.GetOrder)
			r.Get("/messages", flowHandler.GetMessages)
			r.Put("/test-mode", flowHandler.SetTestMode)
			r.Post("/edit-window/close", flowHandler.CloseEditWindow)
		})

		selectionHandler := handlers.NewSelectionHandler(rt.editor, rt.logger)
		r.Route("/selection", func(r chi.Router) {
			r.Post("/background-click", selectionHandler.BackgroundClick)
			r.Get("/delete-request", selectionHandler.DeleteRequest)
			r.Post("/delete", selectionHandler.ConfirmDelete)
		})

		contentHandler := handlers.NewContentHandler(rt.editor, rt.logger)
		r.Route("/contents", func(r chi.Router) {
			r.Post("/", contentHandler.CreateContent)
			r.Get("/", contentHandler.ListContents)
			r.Get("/{contentID}", contentHandler.GetContent)
			r.Put("/{contentID}", contentHandler.UpdateContent)
			r.Delete("/{contentID}", contentHandler.DeleteContent)
		})

		searchHandler := handlers.NewSearchHandler(rt.editor, rt.logger)
		r.Get("/search", searchHandler.Search)
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
