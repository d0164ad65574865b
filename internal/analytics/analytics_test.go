package analytics

import (
	"context"
	"net/http/httptest"
	"testing"
)

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("POST", "/", nil)
	r.Header.Set("X-Platform", " iOS ")
	r.Header.Set("X-App-Version", "1.4.0")
	r.Header.Set("X-Device-Locale", "en-GB")
	r.Header.Set("X-Session-Id", "s-1")
	r.Header.Set("X-Request-Id", "req-9")

	env := FromRequest(r)
	if env.Platform != "ios" {
		t.Errorf("Platform = %q, want ios", env.Platform)
	}
	if env.DeviceLocale != "en-GB" {
		t.Errorf("DeviceLocale = %q", env.DeviceLocale)
	}
	if env.AppVersion != "1.4.0" || env.SessionID != "s-1" || env.RequestID != "req-9" {
		t.Errorf("env = %+v", env)
	}

	r.Header.Set("X-Platform", "windows-phone")
	r.Header.Set("Accept-Language", "fr")
	env = FromRequest(r)
	if env.Platform != "unknown" {
		t.Errorf("Platform = %q, want unknown", env.Platform)
	}
	if env.DeviceLocale != "fr" {
		t.Errorf("Accept-Language should win, got %q", env.DeviceLocale)
	}
}

func TestSourceEventKeyFromRequest(t *testing.T) {
	r := httptest.NewRequest("POST", "/", nil)
	if k := SourceEventKeyFromRequest(r); k != "" {
		t.Errorf("key = %q, want empty", k)
	}
	r.Header.Set("X-Source-Event-Key", "fallback")
	if k := SourceEventKeyFromRequest(r); k != "fallback" {
		t.Errorf("key = %q", k)
	}
	r.Header.Set("Idempotency-Key", "primary")
	if k := SourceEventKeyFromRequest(r); k != "primary" {
		t.Errorf("key = %q", k)
	}
}

func TestNopSink(t *testing.T) {
	var s Sink = Nop{}
	if err := s.Log(context.Background(), Envelope{}, "insight_generated", nil, ""); err != nil {
		t.Fatal(err)
	}
}
