package http

import (
	"mime"
	"net/http"
	"time"
)

// TimingInfo holds the timing of one request
type TimingInfo struct {
	StartTime       time.Time
	ConnectTime     time.Duration
	TimeToFirstByte time.Duration
	TotalTime       time.Duration
}

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       []byte
	Timing     TimingInfo
}

// BodyString returns the response body as a string
func (r *Response) BodyString() string {
	return string(r.Body)
}

// GetHeader returns the value of the specified header
func (r *Response) GetHeader(key string) string {
	return r.Headers.Get(key)
}

// MediaType returns the Content-Type without parameters, or "" when absent
func (r *Response) MediaType() string {
	ct := r.GetHeader("Content-Type")
	if ct == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ct
	}
	return mediaType
}

// IsSuccess returns true if the response status code is in the 2xx range
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsClientError returns true if the response status code is in the 4xx range
func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

// IsServerError returns true if the response status code is in the 5xx range
func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode < 600
}

// Duration returns the total time from sending the request to reading the body
func (r *Response) Duration() time.Duration {
	return r.Timing.TotalTime
}
