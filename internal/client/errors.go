package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const valueErrorPrefix = "Value error, "

// APIError is a non-2xx answer from the backend. Detail keeps the raw `detail`
// member, which the backend sends as a string, a list of {loc,msg} or an object.
type APIError struct {
	Status int
	Detail json.RawMessage
}

type validationItem struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func newAPIError(status int, body []byte) *APIError {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Detail) > 0 {
		return &APIError{Status: status, Detail: envelope.Detail}
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte(http.StatusText(status))
	}
	if json.Valid(body) {
		return &APIError{Status: status, Detail: body}
	}
	quoted, _ := json.Marshal(string(body))
	return &APIError{Status: status, Detail: quoted}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message())
}

func (e *APIError) HTTPStatus() int {
	return e.Status
}

func (e *APIError) IsValidation() bool {
	return len(e.FieldErrors()) > 0
}

// FieldErrors maps a 422 list of {loc,msg} to field -> message, keyed by the
// last segment of loc.
func (e *APIError) FieldErrors() map[string]string {
	var items []validationItem
	if err := json.Unmarshal(e.Detail, &items); err != nil || len(items) == 0 {
		return nil
	}
	fields := make(map[string]string, len(items))
	for _, item := range items {
		if len(item.Loc) == 0 {
			continue
		}
		field := fmt.Sprint(item.Loc[len(item.Loc)-1])
		if _, seen := fields[field]; seen {
			continue
		}
		fields[field] = strings.TrimPrefix(item.Msg, valueErrorPrefix)
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Message collapses every detail shape into one display string.
func (e *APIError) Message() string {
	if len(e.Detail) == 0 {
		return http.StatusText(e.Status)
	}
	return NormalizeDetail(e.Detail)
}

// NormalizeDetail renders a backend `detail` value for display.
func NormalizeDetail(detail json.RawMessage) string {
	var s string
	if err := json.Unmarshal(detail, &s); err == nil {
		return s
	}

	var items []validationItem
	if err := json.Unmarshal(detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, strings.TrimPrefix(item.Msg, valueErrorPrefix))
			}
		}
		return strings.Join(msgs, ", ")
	}

	var obj map[string]any
	if err := json.Unmarshal(detail, &obj); err == nil {
		for _, key := range []string{"message", "msg", "error"} {
			if v, ok := obj[key].(string); ok && v != "" {
				return v
			}
		}
	}
	return string(detail)
}

// ErrorMessage returns the display string for any error a client call produced.
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return err.Error()
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
