package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Kind classifies a failure so callers can tell "already voted" apart from
// "not authorized" apart from "not found".
type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindForbidden           Kind = "forbidden"
	KindInvalidState        Kind = "invalid_state"
	KindResourceUnavailable Kind = "resource_unavailable"
	KindBadRequest          Kind = "bad_request"
	KindUnauthorized        Kind = "unauthorized"
	KindInternal            Kind = "internal"
)

// Error is the typed failure returned by services and rendered by handlers.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Code    Kind   `json:"code"`
}

func (e *Error) Error() string {
	return e.Message
}

// New keeps the old (message, status) call shape; the kind is derived from the status.
func New(message string, status int) *Error {
	return &Error{Message: message, Status: status, Code: kindForStatus(status)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Status: http.StatusNotFound, Code: KindNotFound}
}

func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Status: http.StatusForbidden, Code: KindForbidden}
}

func InvalidState(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Status: http.StatusConflict, Code: KindInvalidState}
}

func Unavailable(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Status: http.StatusServiceUnavailable, Code: KindResourceUnavailable}
}

func BadRequest(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Status: http.StatusBadRequest, Code: KindBadRequest}
}

var (
	ErrNotFound            = New("not found", http.StatusNotFound)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)

	ErrReportNotFound  = NotFound("report not found")
	ErrUserNotFound    = NotFound("user not found")
	ErrOwnReportVote   = Forbidden("you cannot vote on your own report")
	ErrAlreadyVoted    = InvalidState("you have already voted on this report")
	ErrNotCreator      = Forbidden("only the citizen who created this report can withdraw it")
	ErrAdminOnly       = Forbidden("this action requires an admin")
	ErrWorkerOnly      = Forbidden("this action requires a field worker")
	ErrNotAssigned     = Forbidden("you are not the worker assigned to this report")
	ErrEvidenceMissing = InvalidState("upload resolution evidence before marking the report resolved")
	ErrAlreadyResolved = InvalidState("report is already resolved")
	ErrInfraRequest    = InvalidState("bin and toilet requests are not dispatched to workers; use start-working instead")
	ErrNotInfraRequest = InvalidState("only bin and toilet requests can be started directly by an admin")
	ErrNoWorkers       = Unavailable("no workers available")
)

// KindOf reports the kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return KindInternal
}

// Status reports the HTTP status for err.
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusConflict:
		return KindInvalidState
	case http.StatusServiceUnavailable:
		return KindResourceUnavailable
	case http.StatusBadRequest, http.StatusTooManyRequests:
		return KindBadRequest
	case http.StatusUnauthorized:
		return KindUnauthorized
	default:
		return KindInternal
	}
}

// ErrorHandler renders rate limiter rejections.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"message": "Too many requests. Try again in " + time.Until(info.ResetTime).Round(time.Second).String(),
		"code":    KindBadRequest,
	})
}
