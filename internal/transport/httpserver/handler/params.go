package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"church-app-go/internal/domain/validation"
)

const dateLayout = "2006-01-02"

var jsonNull = []byte("null")

// flexField remembers whether a key was present in the body and its raw
// value. Parsing happens later so errors can name the field.
type flexField struct {
	present bool
	raw     json.RawMessage
}

func (f *flexField) UnmarshalJSON(data []byte) error {
	f.present = true
	f.raw = append(f.raw[:0], data...)
	return nil
}

// text returns the trimmed string value. cleared is true for null and "".
func (f flexField) text() (value string, cleared bool, isString bool) {
	raw := bytes.TrimSpace(f.raw)
	if bytes.Equal(raw, jsonNull) {
		return "", true, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false, false
	}
	s = strings.TrimSpace(s)
	return s, s == "", true
}

// FlexBool accepts JSON booleans and the strings "true" and "false".
type FlexBool struct{ flexField }

// Parse returns set=false when the key was absent. A null or empty value is
// set with a nil result.
func (b FlexBool) Parse(field string) (value *bool, set bool, err error) {
	if !b.present {
		return nil, false, nil
	}
	raw := bytes.TrimSpace(b.raw)
	switch string(raw) {
	case "true":
		v := true
		return &v, true, nil
	case "false":
		v := false
		return &v, true, nil
	}

	s, cleared, isString := b.text()
	if !isString {
		return nil, true, validation.Field(field, fmt.Sprintf("%s must be true or false", field))
	}
	if cleared {
		return nil, true, nil
	}
	switch strings.ToLower(s) {
	case "true":
		v := true
		return &v, true, nil
	case "false":
		v := false
		return &v, true, nil
	}
	return nil, true, validation.Field(field, fmt.Sprintf("%s must be true or false", field))
}

// FlexDate accepts YYYY-MM-DD or RFC 3339 strings.
type FlexDate struct{ flexField }

func (d FlexDate) Parse(field string) (value *time.Time, set bool, err error) {
	if !d.present {
		return nil, false, nil
	}
	s, cleared, isString := d.text()
	if !isString {
		return nil, true, validation.Field(field, fmt.Sprintf("%s must be a date string", field))
	}
	if cleared {
		return nil, true, nil
	}
	parsed, err := parseDate(s)
	if err != nil {
		return nil, true, validation.Field(field, fmt.Sprintf("%s must be a date in YYYY-MM-DD or RFC 3339 format", field))
	}
	return &parsed, true, nil
}

// FlexString is an optional reference such as a family id. Null and "" both
// clear it.
type FlexString struct{ flexField }

func (s FlexString) Parse(field string) (value *string, set bool, err error) {
	if !s.present {
		return nil, false, nil
	}
	text, cleared, isString := s.text()
	if !isString {
		return nil, true, validation.Field(field, fmt.Sprintf("%s must be a string", field))
	}
	if cleared {
		return nil, true, nil
	}
	return &text, true, nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse(dateLayout, value); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}

func formatDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	s := value.UTC().Format(time.RFC3339)
	return &s
}
