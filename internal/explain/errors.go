package explain

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

var (
	ErrInvalidCredential = errors.New("invalid api key")
	ErrEmptyQuestion     = errors.New("question text is required")
	ErrEmptyResponse     = errors.New("empty response from model")
	ErrAccessDenied      = errors.New("api access denied or quota exhausted")
	ErrModelNotFound     = errors.New("configured model is not available")
	ErrRateLimited       = errors.New("too many requests, try again later")
	ErrUnavailable       = errors.New("model service temporarily unavailable")
)

// classify maps Gemini API status codes onto the sentinel errors above.
func classify(err error) error {
	code, msg, ok := apiErrorCode(err)
	if !ok {
		return fmt.Errorf("explanation request failed: %w", err)
	}

	switch code {
	case http.StatusBadRequest, http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrInvalidCredential, msg)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrAccessDenied, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrModelNotFound, msg)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, msg)
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", ErrUnavailable, msg)
	default:
		return fmt.Errorf("api error (%d): %s", code, msg)
	}
}

func apiErrorCode(err error) (int, string, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.Message, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, apiErrPtr.Message, true
	}
	return 0, "", false
}

// StatusCode is the HTTP status a handler should answer with for err.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidCredential), errors.Is(err, ErrEmptyQuestion):
		return http.StatusBadRequest
	case errors.Is(err, ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrModelNotFound), errors.Is(err, ErrUnavailable), errors.Is(err, ErrEmptyResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
