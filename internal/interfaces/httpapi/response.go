package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/scouting-platform/internal/domain/statistics"
	"github.com/riskibarqy/scouting-platform/internal/usecase"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	genericErrorMessage = "Something went wrong"
)

type responseEnvelope struct {
	Status     string         `json:"status"`
	Message    string         `json:"message,omitempty"`
	Data       any            `json:"data,omitempty"`
	Pagination *paginationDTO `json:"pagination,omitempty"`
	Error      any            `json:"error,omitempty"`
}

type paginationDTO struct {
	HasNextPage bool    `json:"hasNextPage"`
	NextCursor  *string `json:"nextCursor"`
	Limit       int     `json:"limit"`
}

type mappedError struct {
	HTTPStatus int
	Message    string
	// Detail is exposed in the "error" field; empty omits it.
	Detail any
}

// writeJSON encodes into a pooled buffer first so an encoding failure still
// produces a well-formed 500 instead of a truncated body.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":"error","message":"Something went wrong","error":"encode response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, message string, data any) {
	writeJSON(ctx, w, status, responseEnvelope{
		Status:  statusSuccess,
		Message: message,
		Data:    data,
	})
}

func writePage(ctx context.Context, w http.ResponseWriter, message string, data any, page paginationDTO) {
	writeJSON(ctx, w, http.StatusOK, responseEnvelope{
		Status:     statusSuccess,
		Message:    message,
		Data:       data,
		Pagination: &page,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	writeJSON(ctx, w, mapped.HTTPStatus, responseEnvelope{
		Status:  statusError,
		Message: mapped.Message,
		Error:   mapped.Detail,
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, http.StatusInternalServerError, responseEnvelope{
		Status:  statusError,
		Message: genericErrorMessage,
		Error:   "internal server error",
	})
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	public, hasPublic := usecase.PublicMessage(err)
	pick := func(fallback string) string {
		if hasPublic {
			return public
		}
		return fallback
	}

	var tableErr *statistics.TableNotFoundError
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Message: pick("Invalid request"), Detail: detailUnlessPublic(err, hasPublic)}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{HTTPStatus: http.StatusNotFound, Message: pick("Resource not found")}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{HTTPStatus: http.StatusUnauthorized, Message: pick("Unauthorized"), Detail: detailUnlessPublic(err, hasPublic)}
	case errors.Is(err, usecase.ErrForbidden):
		return mappedError{HTTPStatus: http.StatusForbidden, Message: pick("Forbidden")}
	case errors.Is(err, usecase.ErrConflict):
		return mappedError{HTTPStatus: http.StatusConflict, Message: pick("Conflict")}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Message: pick("Service temporarily unavailable"), Detail: err.Error()}
	case errors.As(err, &tableErr):
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Message:    "Statistics table '" + tableErr.Table + "' not found in any probed schema",
			Detail: map[string]any{
				"tried":           tableErr.Tried,
				"availableTables": tableErr.Available,
			},
		}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Message: genericErrorMessage, Detail: err.Error()}
	}
}

func detailUnlessPublic(err error, hasPublic bool) any {
	if hasPublic {
		return nil
	}
	return err.Error()
}
