package garageclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Kevrnd/car-garage/internal/model"
)

const maxErrorBody = 64 << 10

func readAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return parseAPIError(resp.StatusCode, resp.Header.Get("Content-Type"), body)
}

// parseAPIError builds the user facing message the way the backend means it to be read:
// "detail" first, then "error", then one "field: m1, m2" line per field in body order.
func parseAPIError(status int, contentType string, body []byte) *model.APIError {
	apiErr := &model.APIError{Status: status}

	if strings.Contains(contentType, "application/json") {
		apiErr.Message, apiErr.Fields = messageFromJSON(body)
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
	}

	return apiErr
}

func messageFromJSON(body []byte) (string, []model.FieldError) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return "", nil
	}

	if body[0] == '[' {
		return strings.Join(messages(body), "\n"), nil
	}
	if body[0] != '{' {
		return text(body), nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	if _, err := dec.Token(); err != nil {
		return "", nil
	}

	var (
		detail, errText string
		fields          []model.FieldError
	)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			break
		}

		switch key {
		case "detail":
			detail = text(raw)
		case "error":
			errText = text(raw)
		default:
			fields = append(fields, model.FieldError{Field: key, Messages: messages(raw)})
		}
	}

	switch {
	case detail != "":
		return detail, fields
	case errText != "":
		return errText, fields
	}

	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, f.Field+": "+strings.Join(f.Messages, ", "))
	}

	return strings.Join(lines, "\n"), fields
}

func messages(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []string{text(raw)}
	}

	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, text(it))
	}
	return out
}

func text(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
