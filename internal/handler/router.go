package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	authHandler "github.com/lukemarsh/sentichat/internal/handler/auth"
	chatHandler "github.com/lukemarsh/sentichat/internal/handler/chat"
	healthHandler "github.com/lukemarsh/sentichat/internal/handler/health"
	uploadHandler "github.com/lukemarsh/sentichat/internal/handler/upload"
	wsHandler "github.com/lukemarsh/sentichat/internal/handler/ws"
	"github.com/lukemarsh/sentichat/internal/hub"
	middlewarePkg "github.com/lukemarsh/sentichat/internal/middleware"
	authService "github.com/lukemarsh/sentichat/internal/service/auth"
	chatService "github.com/lukemarsh/sentichat/internal/service/chat"
	uploadService "github.com/lukemarsh/sentichat/internal/service/upload"
)

// StaticDirs names the filesystem roots served to browsers.
type StaticDirs struct {
	// Client is the root of the client application bundle, served at /.
	Client string
	// Uploads is the uploaded-asset directory, served at /uploads.
	Uploads string
}

// NewRouter wires HTTP routes to core services.
func NewRouter(authSvc *authService.Service, chatSvc *chatService.Service, uploadStore *uploadService.Store, h *hub.Hub, dirs StaticDirs) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		authHandler.New(authSvc).RegisterRoutes(api)
		chatHandler.New(chatSvc).RegisterRoutes(api)
		uploadHandler.New(uploadStore).RegisterRoutes(api)
		healthHandler.New(h).RegisterRoutes(api)
	})

	wsHandler.New(h).RegisterRoutes(r)

	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(dirs.Uploads))))
	r.Handle("/*", http.FileServer(http.Dir(dirs.Client)))

	return r
}
