package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dtroode/tasktracker-server/internal/api/http/handler"
	"github.com/dtroode/tasktracker-server/internal/api/http/middleware"
	"github.com/dtroode/tasktracker-server/internal/api/http/response"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

// Options tunes the HTTP surface.
type Options struct {
	// AllowedOrigins is the CORS origin allow-list.
	AllowedOrigins []string
	// TrustProxy makes X-Forwarded-For and X-Real-IP the client address.
	TrustProxy bool
}

// Router wires handlers and middleware into a chi mux.
type Router struct {
	authService    handler.AuthService
	userService    handler.UserService
	taskService    handler.TaskService
	tokenVerifier  middleware.TokenVerifier
	rateLimiter    model.RateLimiter
	pinger         model.Pinger
	contextManager model.ContextManager
	options        Options
	logger         *logger.Logger
}

// New creates new Router instance. rateLimiter may be nil, which disables
// throttling of the credential endpoints.
func New(
	authService handler.AuthService,
	userService handler.UserService,
	taskService handler.TaskService,
	tokenVerifier middleware.TokenVerifier,
	rateLimiter model.RateLimiter,
	pinger model.Pinger,
	contextManager model.ContextManager,
	options Options,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		userService:    userService,
		taskService:    taskService,
		tokenVerifier:  tokenVerifier,
		rateLimiter:    rateLimiter,
		pinger:         pinger,
		contextManager: contextManager,
		options:        options,
		logger:         logger,
	}
}

// Register builds the handler tree.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenVerifier, r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(chimiddleware.RequestID)
	if r.options.TrustProxy {
		mux.Use(chimiddleware.RealIP)
	}
	mux.Use(logging.Handle)
	mux.Use(chimiddleware.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.options.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Retry-After", "X-Export-Key", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusNotFound, response.ErrorBody{Detail: "Not Found"})
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusMethodNotAllowed, response.ErrorBody{Detail: "Method Not Allowed"})
	})

	r.registerHealthRoutes(mux, authenticate)
	mux.Route("/api", func(api chi.Router) {
		r.registerAuthRoutes(api, authenticate)
		api.Group(func(protected chi.Router) {
			protected.Use(authenticate.Require)
			r.registerUserRoutes(protected)
			r.registerTaskRoutes(protected)
		})
	})

	return mux
}

func (r *Router) registerHealthRoutes(mux chi.Router, authenticate *middleware.Authenticate) {
	healthHandler := handler.NewHealth(r.pinger, r.contextManager, r.logger)
	mux.With(authenticate.Optional).Get("/", healthHandler.Banner)
	mux.Get("/health", healthHandler.Check)
}

func (r *Router) registerAuthRoutes(api chi.Router, authenticate *middleware.Authenticate) {
	authHandler := handler.NewAuth(r.authService, r.userService, r.contextManager, r.logger)

	api.Route("/auth", func(auth chi.Router) {
		auth.With(r.throttle("signup")...).Post("/signup", authHandler.Signup)
		auth.With(r.throttle("signin")...).Post("/signin", authHandler.Signin)
		auth.Post("/logout", authHandler.Logout)
		auth.With(authenticate.Require).Get("/me", authHandler.Me)
	})
}

func (r *Router) registerUserRoutes(api chi.Router) {
	userHandler := handler.NewUser(r.userService, r.contextManager, r.logger)
	api.Delete("/users/{user_id}", userHandler.Delete)
}

func (r *Router) registerTaskRoutes(api chi.Router) {
	taskHandler := handler.NewTask(r.taskService, r.contextManager, r.logger)

	tasks := func(t chi.Router) {
		t.Post("/", taskHandler.Create)
		t.Get("/", taskHandler.List)
		t.Get("/export", taskHandler.Export)
		t.Get("/{task_id}", taskHandler.Get)
		t.Put("/{task_id}", taskHandler.Update)
		t.Delete("/{task_id}", taskHandler.Delete)
		t.Patch("/{task_id}/complete", taskHandler.ToggleCompletion)
	}

	api.Route("/tasks", tasks)
	api.Route("/{user_id}/tasks", tasks)
}

func (r *Router) throttle(scope string) []func(http.Handler) http.Handler {
	if r.rateLimiter == nil {
		return nil
	}
	return []func(http.Handler) http.Handler{middleware.NewRateLimit(r.rateLimiter, scope, r.logger).Handle}
}
