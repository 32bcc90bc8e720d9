package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/obafemitayor/user-snack/pkg/errors"
)

// detailResponse mirrors the error body shape of the pizzeria backend:
// {"detail": "..."} for plain failures, or {"detail": [{"msg": ...}, ...]}
// for request validation failures.
type detailResponse struct {
	Detail json.RawMessage `json:"detail"`
}

type detailEntry struct {
	Msg string `json:"msg"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an appropriate AppError. If the body matches the backend's detail
// format, the message is preserved. Otherwise a generic error is returned
// with the status code and raw body.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, operation string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", operation, resp.StatusCode, err)
	}

	if msg := extractDetail(bodyBytes); msg != "" {
		return mapStatusError(resp.StatusCode, msg, operation)
	}

	// Fallback: unstructured error body.
	return mapStatusError(resp.StatusCode, strings.TrimSpace(string(bodyBytes)), operation)
}

// extractDetail pulls a human-readable message out of a backend detail body.
// Returns "" when the body does not match the detail format.
func extractDetail(body []byte) string {
	var dr detailResponse
	if json.Unmarshal(body, &dr) != nil || len(dr.Detail) == 0 {
		return ""
	}

	var msg string
	if json.Unmarshal(dr.Detail, &msg) == nil {
		return msg
	}

	var entries []detailEntry
	if json.Unmarshal(dr.Detail, &entries) == nil && len(entries) > 0 {
		msgs := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.Msg != "" {
				msgs = append(msgs, e.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}

// mapStatusError translates an HTTP status code and message into an AppError
// that preserves the error semantics for errors.Is branching upstream.
func mapStatusError(status int, message, operation string) error {
	qualifiedMsg := fmt.Sprintf("%s: %s", operation, message)

	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(operation, message)
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return apperrors.InvalidInput(qualifiedMsg)
	case status == http.StatusConflict:
		return apperrors.Conflict(qualifiedMsg)
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(qualifiedMsg)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(qualifiedMsg)
	case status == http.StatusServiceUnavailable:
		return apperrors.Unavailable(qualifiedMsg)
	case status >= 500:
		return fmt.Errorf("%s server error (%d): %s", operation, status, message)
	default:
		return &apperrors.AppError{
			Code:    "UPSTREAM_ERROR",
			Message: qualifiedMsg,
			Status:  status,
		}
	}
}
