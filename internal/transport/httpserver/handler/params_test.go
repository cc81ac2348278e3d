package handler

import (
	"encoding/json"
	"testing"
	"time"

	"church-app-go/internal/domain/validation"
)

type flexBody struct {
	Active FlexBool   `json:"isActive"`
	Born   FlexDate   `json:"dateOfBirth"`
	Family FlexString `json:"family"`
}

func decodeFlex(t *testing.T, raw string) flexBody {
	t.Helper()
	var body flexBody
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		t.Fatalf("unmarshal %s: %v", raw, err)
	}
	return body
}

func TestFlexBool(t *testing.T) {
	cases := []struct {
		raw     string
		want    *bool
		set     bool
		wantErr bool
	}{
		{raw: `{}`},
		{raw: `{"isActive":true}`, want: ptr(true), set: true},
		{raw: `{"isActive":"FALSE"}`, want: ptr(false), set: true},
		{raw: `{"isActive":null}`, set: true},
		{raw: `{"isActive":""}`, set: true},
		{raw: `{"isActive":"yes"}`, set: true, wantErr: true},
		{raw: `{"isActive":1}`, set: true, wantErr: true},
	}
	for _, tc := range cases {
		value, set, err := decodeFlex(t, tc.raw).Active.Parse("isActive")
		if tc.wantErr {
			verr, ok := validation.As(err)
			if !ok || verr.Fields[0].Field != "isActive" {
				t.Fatalf("%s: expected isActive validation error, got %v", tc.raw, err)
			}
			continue
		}
		if err != nil || set != tc.set {
			t.Fatalf("%s: expected set=%v, got set=%v err=%v", tc.raw, tc.set, set, err)
		}
		if (value == nil) != (tc.want == nil) || (value != nil && *value != *tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.raw, tc.want, value)
		}
	}
}

func TestFlexDate(t *testing.T) {
	value, set, err := decodeFlex(t, `{"dateOfBirth":"1990-05-01"}`).Born.Parse("dateOfBirth")
	if err != nil || !set || !value.Equal(time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected 1990-05-01, got %v %v %v", value, set, err)
	}

	value, _, err = decodeFlex(t, `{"dateOfBirth":"1990-05-01T10:00:00+02:00"}`).Born.Parse("dateOfBirth")
	if err != nil || value.Hour() != 8 || value.Location() != time.UTC {
		t.Fatalf("expected RFC 3339 value in UTC, got %v %v", value, err)
	}

	if _, _, err := decodeFlex(t, `{"dateOfBirth":"01/05/1990"}`).Born.Parse("dateOfBirth"); err == nil {
		t.Fatalf("expected error for an unsupported layout")
	}

	value, set, err = decodeFlex(t, `{"dateOfBirth":null}`).Born.Parse("dateOfBirth")
	if err != nil || !set || value != nil {
		t.Fatalf("expected null to clear the date, got %v %v %v", value, set, err)
	}
}

func TestFlexString(t *testing.T) {
	value, set, err := decodeFlex(t, `{"family":"  f-1 "}`).Family.Parse("family")
	if err != nil || !set || *value != "f-1" {
		t.Fatalf("expected trimmed id, got %v %v %v", value, set, err)
	}
	value, set, _ = decodeFlex(t, `{"family":""}`).Family.Parse("family")
	if !set || value != nil {
		t.Fatalf("expected empty string to clear the reference, got %v %v", value, set)
	}
	if _, _, err := decodeFlex(t, `{"family":{"id":"f-1"}}`).Family.Parse("family"); err == nil {
		t.Fatalf("expected error for a non-string reference")
	}
}

func TestFormatDate(t *testing.T) {
	if formatDate(nil) != nil {
		t.Fatalf("expected nil for nil date")
	}
	in := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	if got := formatDate(&in); *got != "2026-04-10T00:00:00Z" {
		t.Fatalf("unexpected format %q", *got)
	}
}

func ptr[T any](v T) *T { return &v }
