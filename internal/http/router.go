package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-course-api/internal/http/handlers"
	"github.com/pribylovaa/go-course-api/internal/http/middleware"
	"github.com/pribylovaa/go-course-api/internal/service"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	// Зависимости хендлеров.
	h := handlers.New(svc)

	// Регистрация маршрутов.
	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, svc)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, svc)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
// Гейты аутентификации двух поколений различаются только ResolveFunc:
// v1 резолвит opaque-токен через хранилище, v2 верифицирует подпись и denylist.
func registerRoutes(r chi.Router, h *handlers.Handlers, svc *service.Service) {
	sessionGate := middleware.RequireAuth(svc.ResolveSessionToken)
	accessGate := middleware.RequireAuth(svc.VerifyAccessToken)

	// auth v1 (opaque-токены)
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Group(func(r chi.Router) {
		r.Use(sessionGate)
		r.Post("/logout", h.Logout)

		// courses (за гейтом v1)
		r.Post("/course", h.CreateCourse)
		r.Get("/courses", h.ListCourses)
		r.Get("/courses/{id}", h.GetCourse)
		r.Put("/courses/{id}", h.UpdateCourse)
		r.Delete("/courses/{id}", h.DeleteCourse)
	})

	// auth v2 (подписанные токены)
	r.Route("/v2", func(r chi.Router) {
		r.Post("/register", h.RegisterV2)
		r.Post("/login", h.LoginV2)
		r.Group(func(r chi.Router) {
			r.Use(accessGate)
			r.Post("/logout", h.LogoutV2)
		})
	})
}
