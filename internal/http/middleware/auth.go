package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pribylovaa/go-course-api/internal/http/httperr"
	"github.com/pribylovaa/go-course-api/internal/models"
	"github.com/pribylovaa/go-course-api/internal/service"
)

// ResolveFunc резолвит предъявленный bearer-токен в пользователя.
// Обе реализации сессионного бэкенда (opaque v1 и подписанные токены v2)
// подставляются сюда одинаково — хендлеры не знают, какое поколение
// обслуживает данный маршрут.
type ResolveFunc func(ctx context.Context, token string) (*models.User, error)

type userKey struct{}
type tokenKey struct{}

// UserFrom достаёт аутентифицированного пользователя из контекста запроса.
// Пользователь кладётся туда только мидлваром RequireAuth, явно — никакого
// глобального "текущего пользователя" в сервисе нет.
func UserFrom(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey{}).(*models.User)
	return u, ok
}

// TokenFrom достаёт исходный bearer-токен из контекста запроса
// (нужен logout-у v2 для отзыва предъявленного токена).
func TokenFrom(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey{}).(string)
	return t, ok
}

// RequireAuth — гейт защищённых маршрутов: извлекает bearer-токен,
// резолвит его в пользователя и кладёт пользователя и токен в контекст.
// Отсутствующий/нерезолвящийся токен — 401 с единым сообщением.
func RequireAuth(resolve ResolveFunc) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				httperr.WriteError(w, r, service.ErrInvalidToken)
				return
			}

			user, err := resolve(r.Context(), token)
			if err != nil {
				httperr.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), userKey{}, user)
			ctx = context.WithValue(ctx, tokenKey{}, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken извлекает токен из заголовка Authorization ("Bearer <token>").
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) || len(auth) <= len(prefix) {
		return ""
	}

	return strings.TrimSpace(auth[len(prefix):])
}
