// httperr стандартизирует ответы об ошибках HTTP-слоя.
// На вход он принимает доменную ошибку (сентинелы пакета service),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Политика распространения:
//   - ошибки валидации отдаются с пополевой детализацией (fields) — это
//     осознанно, для клиентских форм;
//   - ошибки аутентификации едины и без деталей (защита от перечисления
//     аккаунтов и зондирования токенов);
//   - внутренние ошибки схлопываются в generic 500: причина логируется
//     на сервере, наружу текст БД/токен-подсистемы не утекает.
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/go-course-api/internal/service"
)

// ErrBadRequest — синтаксически некорректное тело запроса (битый JSON,
// неизвестные поля). HTTP 400.
var ErrBadRequest = errors.New("bad request")

// APIError — единый формат ошибки для фронта.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// Fields — пополевые сообщения валидации (только для 422).
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует доменную ошибку в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil — это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг;
//   - ValidationErrors -> 422 c fields;
//   - ошибки кредов/токенов -> 401 с единым сообщением;
//   - ErrCourseNotFound -> 404;
//   - прочее -> 500/internal (без утечки деталей).
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, envelope("internal", "internal error", nil)
	}

	if ve, ok := service.AsValidationErrors(err); ok {
		return http.StatusUnprocessableEntity, envelope("validation_failed", "the given data was invalid", ve)
	}

	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, envelope("bad_request", "invalid request body", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, envelope("unauthenticated", "invalid login details", nil)
	case errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenExpired),
		errors.Is(err, service.ErrTokenRevoked):
		return http.StatusUnauthorized, envelope("unauthenticated", "unauthenticated", nil)
	case errors.Is(err, service.ErrCourseNotFound):
		return http.StatusNotFound, envelope("not_found", "not found", nil)
	default:
		return http.StatusInternalServerError, envelope("internal", "internal error", nil)
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func envelope(code, msg string, fields map[string]string) ErrorResponse {
	return ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
			Fields:  fields,
		},
	}
}
