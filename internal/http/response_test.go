package http

import (
	"net/http"
	"testing"
	"time"
)

func TestResponse_MediaType(t *testing.T) {
	tests := []struct {
		header   string
		expected string
	}{
		{"application/json; charset=utf-8", "application/json"},
		{"application/json", "application/json"},
		{"", ""},
	}

	for _, tt := range tests {
		resp := &Response{Headers: http.Header{}}
		if tt.header != "" {
			resp.Headers.Set("Content-Type", tt.header)
		}
		if got := resp.MediaType(); got != tt.expected {
			t.Errorf("MediaType(%q) = %q, want %q", tt.header, got, tt.expected)
		}
	}
}

func TestResponse_StatusMethods(t *testing.T) {
	tests := []struct {
		statusCode    int
		isSuccess     bool
		isClientError bool
		isServerError bool
	}{
		{200, true, false, false},
		{201, true, false, false},
		{301, false, false, false},
		{404, false, true, false},
		{500, false, false, true},
	}

	for _, tt := range tests {
		resp := &Response{StatusCode: tt.statusCode}

		if resp.IsSuccess() != tt.isSuccess {
			t.Errorf("IsSuccess() for status %d: expected %v", tt.statusCode, tt.isSuccess)
		}
		if resp.IsClientError() != tt.isClientError {
			t.Errorf("IsClientError() for status %d: expected %v", tt.statusCode, tt.isClientError)
		}
		if resp.IsServerError() != tt.isServerError {
			t.Errorf("IsServerError() for status %d: expected %v", tt.statusCode, tt.isServerError)
		}
	}
}

func TestResponse_Duration(t *testing.T) {
	resp := &Response{Timing: TimingInfo{TotalTime: 150 * time.Millisecond}}
	if resp.Duration() != 150*time.Millisecond {
		t.Errorf("Expected 150ms, got %v", resp.Duration())
	}
	if resp.GetHeader("X-Missing") != "" {
		t.Error("Expected empty header for nil header map")
	}
}
