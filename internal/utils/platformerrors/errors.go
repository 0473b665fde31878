package platformerrors

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// requestIDKey matches the key set by the HTTP request-id middleware.
type ctxKey string

const requestIDKey ctxKey = "requestID"

// WithRequestID stores the request id for error enrichment.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ErrorType represents the category of error.
type ErrorType string

const (
	ErrorTypeUnauthenticated      ErrorType = "UNAUTHENTICATED"
	ErrorTypeUnauthorized         ErrorType = "UNAUTHORIZED"
	ErrorTypeNotFound             ErrorType = "NOT_FOUND"
	ErrorTypeNoActiveSubscription ErrorType = "NO_ACTIVE_SUBSCRIPTION"
	ErrorTypeQuotaExceeded        ErrorType = "QUOTA_EXCEEDED"
	ErrorTypeInvalidContent       ErrorType = "INVALID_CONTENT"
	ErrorTypeMissingContentType   ErrorType = "MISSING_CONTENT_TYPE"
	ErrorTypeContractError        ErrorType = "CONTRACT_ERROR"
	ErrorTypeTransportError       ErrorType = "TRANSPORT_ERROR"
	ErrorTypePersistence          ErrorType = "PERSISTENCE_ERROR"
	ErrorTypeValidation           ErrorType = "VALIDATION"
	ErrorTypeConflict             ErrorType = "CONFLICT"
	ErrorTypeInternal             ErrorType = "INTERNAL"
)

// Layer represents the application layer where the error occurred.
type Layer string

const (
	LayerRepository     Layer = "repository"
	LayerDomain         Layer = "domain"
	LayerHandler        Layer = "handler"
	LayerRoute          Layer = "route"
	LayerInfrastructure Layer = "infrastructure"
)

// PlatformError carries the error category, originating layer and request
// metadata alongside the wrapped cause.
type PlatformError struct {
	UUID      string
	Type      ErrorType
	Message   string
	Err       error
	Context   map[string]any
	RequestID string
	Layer     Layer
	Timestamp time.Time
}

func (e *PlatformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s][%s][%s] %s: %v", e.Layer, e.Type, e.UUID, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s][%s][%s] %s", e.Layer, e.Type, e.UUID, e.Message)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// GetErrorType returns the error type.
func (e *PlatformError) GetErrorType() ErrorType {
	return e.Type
}

// GetRequestID returns the request ID.
func (e *PlatformError) GetRequestID() string {
	return e.RequestID
}

// GetUUID returns the error UUID.
func (e *PlatformError) GetUUID() string {
	return e.UUID
}

// NewError creates a PlatformError without extra context fields.
func NewError(ctx context.Context, layer Layer, errorType ErrorType, message string, err error) *PlatformError {
	return NewErrorWithContext(ctx, layer, errorType, message, err, nil)
}

// NewErrorWithContext creates a PlatformError with additional context fields.
func NewErrorWithContext(ctx context.Context, layer Layer, errorType ErrorType, message string, err error, contextFields map[string]any) *PlatformError {
	errorContext := make(map[string]any, len(contextFields))
	for k, v := range contextFields {
		errorContext[k] = v
	}

	return &PlatformError{
		UUID:      uuid.NewString(),
		Type:      errorType,
		Message:   message,
		Err:       err,
		RequestID: requestIDFromContext(ctx),
		Layer:     layer,
		Timestamp: time.Now().UTC(),
		Context:   errorContext,
	}
}

// ErrorTypeToHTTPStatus maps an error category to the HTTP status returned by
// the API surface.
func ErrorTypeToHTTPStatus(errorType ErrorType) int {
	switch errorType {
	case ErrorTypeUnauthenticated:
		return http.StatusUnauthorized
	case ErrorTypeUnauthorized:
		return http.StatusForbidden
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeNoActiveSubscription:
		return http.StatusPaymentRequired
	case ErrorTypeQuotaExceeded:
		return http.StatusRequestEntityTooLarge
	case ErrorTypeInvalidContent:
		return http.StatusUnsupportedMediaType
	case ErrorTypeMissingContentType:
		return http.StatusUnprocessableEntity
	case ErrorTypeContractError, ErrorTypeTransportError:
		return http.StatusBadGateway
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
