// Package codec serializes the full application state to and from the
// interchange format and renders tabular exports.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cardledger/internal/model"
)

// Version tags every export envelope.
const Version = "1.0.0"

// AppData is a point-in-time snapshot of the whole application state,
// never a live view.
type AppData struct {
	Expenses   []model.Expense  `json:"expenses"`
	Categories []model.Category `json:"categories"`
	Version    string           `json:"version"`
	ExportDate time.Time        `json:"exportDate"`
}

// FormatError reports an import file whose top-level shape is unusable.
type FormatError struct {
	Err    error
	Reason string
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid export file: %s: %v", e.Reason, e.Err)
	}
	return "invalid export file: " + e.Reason
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Serialize wraps the current state in a versioned, timestamped
// envelope. The result is a deep copy: mutating it cannot affect the
// live store.
func Serialize(expenses []model.Expense, categories []model.Category) AppData {
	return AppData{
		Expenses:   model.CloneExpenses(expenses),
		Categories: model.CloneCategories(categories),
		Version:    Version,
		ExportDate: time.Now().UTC(),
	}
}

// Marshal renders an AppData envelope as indented JSON.
func Marshal(data AppData) ([]byte, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export data: %w", err)
	}
	return out, nil
}

// Deserialize parses an interchange document. The only structural check
// is that the top level carries an array-typed "expenses" field; field
// contents are deliberately not validated, so malformed records pass
// through. A record whose field has the wrong JSON type decodes to the
// zero value for that field rather than rejecting the whole file.
func Deserialize(raw []byte) (AppData, error) {
	var probe struct {
		Expenses json.RawMessage `json:"expenses"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return AppData{}, &FormatError{Reason: "not a JSON document", Err: err}
	}
	if !isJSONArray(probe.Expenses) {
		return AppData{}, &FormatError{Reason: `"expenses" must be an array`}
	}

	var data AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return AppData{}, &FormatError{Reason: "could not decode export file", Err: err}
		}
		slog.Warn("import contains mistyped fields, keeping decodable values",
			"field", typeErr.Field, "got", typeErr.Value)
	}
	return data, nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
