package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	fiber "github.com/gofiber/fiber/v2"
)

// validationIssue is one entry of a FastAPI-style 422 detail list
type validationIssue struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// newAPIError turns a non-2xx response into a *fiber.Error whose message is
// the server's detail when it sent one
func newAPIError(status int, body []byte) *fiber.Error {
	return &fiber.Error{
		Code:    status,
		Message: detailFromBody(status, body),
	}
}

func detailFromBody(status int, body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Detail) > 0 {
		var s string
		if err := json.Unmarshal(envelope.Detail, &s); err == nil && s != "" {
			return s
		}

		var issues []validationIssue
		if err := json.Unmarshal(envelope.Detail, &issues); err == nil && len(issues) > 0 {
			msgs := make([]string, 0, len(issues))
			for _, issue := range issues {
				msgs = append(msgs, formatIssue(issue))
			}
			return strings.Join(msgs, "; ")
		}
	}

	if raw := strings.TrimSpace(string(body)); raw != "" {
		return raw
	}
	return http.StatusText(status)
}

func formatIssue(issue validationIssue) string {
	// loc is ["body", "field", ...]; the leading location kind is noise
	parts := make([]string, 0, len(issue.Loc))
	for i, p := range issue.Loc {
		if i == 0 && len(issue.Loc) > 1 {
			continue
		}
		parts = append(parts, fmt.Sprint(p))
	}
	if len(parts) == 0 {
		return issue.Msg
	}
	return strings.Join(parts, ".") + ": " + issue.Msg
}

// StatusCode returns the HTTP status the API answered with, or 0 when err did
// not come from an API response
func StatusCode(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return 0
}

// IsNotFound reports whether the API answered 404
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// Detail returns the server-provided message for err, or fallback when the
// failure never reached the server
func Detail(err error, fallback string) string {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Message != "" {
		return fe.Message
	}
	return fallback
}

// Message is Detail, but surfaces transport errors too; fallback is used only
// when there is nothing to say
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if d := Detail(err, ""); d != "" {
		return d
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
