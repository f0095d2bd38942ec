// errors стандартизирует ответы об ошибках HTTP-слоя портала.
// На вход он принимает ошибку сервисного слоя, а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Сообщения для посетителя (невалидный email, сбой отправки лида)
// переводятся на язык региона запроса.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/go-content-portal/internal/models"
	"github.com/pribylovaa/go-content-portal/internal/region"
	"github.com/pribylovaa/go-content-portal/internal/service"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// Field — поле формы для ошибок валидации.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и ответ для фронта.
//
// Поведение:
//   - err == nil — программная ошибка вызова: 500/internal;
//   - ErrInvalidArgument, неизвестный регион/вид — 400;
//   - ErrValidation — 422 с полем и переводом на язык региона r;
//   - ErrNotFound — 404 (чужой регион неотличим от отсутствия);
//   - ErrUnavailable — 503, повтор по инициативе пользователя;
//   - context.Canceled — 499, context.DeadlineExceeded — 504;
//   - прочее — 500/internal.
func ToHTTP(err error, r region.Region) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, internal()
	}

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		msg := "validation failed"
		if verr.Field == "email" {
			msg = r.Translate(region.KeyEmailInvalid)
		}
		return http.StatusUnprocessableEntity, ErrorResponse{Error: APIError{
			Code:    "validation_failed",
			Message: msg,
			Field:   verr.Field,
		}}
	case errors.Is(err, service.ErrValidation):
		return http.StatusUnprocessableEntity, resp("validation_failed", "validation failed")
	case errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, region.ErrUnknown),
		errors.Is(err, models.ErrUnknownKind):
		return http.StatusBadRequest, resp("invalid_argument", "invalid argument")
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, resp("not_found", "not found")
	case errors.Is(err, service.ErrStale):
		return http.StatusConflict, resp("stale", "stale response")
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, resp("canceled", "canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, resp("deadline_exceeded", "deadline exceeded")
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable, resp("unavailable", r.Translate(region.KeyLeadFailed))
	default:
		return http.StatusInternalServerError, internal()
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	reg, ok := region.From(r.Context())
	if !ok {
		reg = region.Default
	}

	status, body := ToHTTP(err, reg)

	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		body.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func resp(code, msg string) ErrorResponse {
	return ErrorResponse{Error: APIError{Code: code, Message: msg}}
}

func internal() ErrorResponse {
	return resp("internal", "internal error")
}
