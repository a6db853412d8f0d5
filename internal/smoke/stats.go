package smoke

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Histogram bounds, in microseconds: 1µs to 1h at 3 significant figures
const (
	histogramMin     int64 = 1
	histogramMax     int64 = 3600000000
	histogramSigFigs       = 3
)

// LatencySummary describes the response times observed for one check
type LatencySummary struct {
	Count  int64   `json:"count" yaml:"count"`
	MinMs  float64 `json:"minMs" yaml:"minMs"`
	MeanMs float64 `json:"meanMs" yaml:"meanMs"`
	P50Ms  float64 `json:"p50Ms" yaml:"p50Ms"`
	P95Ms  float64 `json:"p95Ms" yaml:"p95Ms"`
	P99Ms  float64 `json:"p99Ms" yaml:"p99Ms"`
	MaxMs  float64 `json:"maxMs" yaml:"maxMs"`
}

// PhaseSummary is the mean connection setup time and time to first byte
// over the attempts that got a response. Reused connections add a zero connect time.
type PhaseSummary struct {
	ConnectMs float64 `json:"connectMs" yaml:"connectMs"`
	TTFBMs    float64 `json:"ttfbMs" yaml:"ttfbMs"`
}

// latencyRecorder accumulates response times in an HDR histogram.
// It is used by a single check run and is not safe for concurrent use.
type latencyRecorder struct {
	hist       *hdrhistogram.Histogram
	connectSum time.Duration
	ttfbSum    time.Duration
	phases     int64
}

func newLatencyRecorder() *latencyRecorder {
	return &latencyRecorder{
		hist: hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs),
	}
}

// Record adds one observation, clamped to the histogram range
func (l *latencyRecorder) Record(d time.Duration) {
	us := d.Microseconds()
	if us < histogramMin {
		us = histogramMin
	}
	if us > histogramMax {
		us = histogramMax
	}
	_ = l.hist.RecordValue(us)
}

// RecordPhases adds the connect time and time to first byte of one response
func (l *latencyRecorder) RecordPhases(connect, ttfb time.Duration) {
	l.connectSum += connect
	l.ttfbSum += ttfb
	l.phases++
}

// Phases returns the mean phase timings in milliseconds
func (l *latencyRecorder) Phases() PhaseSummary {
	if l.phases == 0 {
		return PhaseSummary{}
	}
	return PhaseSummary{
		ConnectMs: usToMs(float64(l.connectSum.Microseconds()) / float64(l.phases)),
		TTFBMs:    usToMs(float64(l.ttfbSum.Microseconds()) / float64(l.phases)),
	}
}

// Summary returns the recorded distribution in milliseconds
func (l *latencyRecorder) Summary() LatencySummary {
	count := l.hist.TotalCount()
	if count == 0 {
		return LatencySummary{}
	}

	return LatencySummary{
		Count:  count,
		MinMs:  usToMs(float64(l.hist.Min())),
		MeanMs: usToMs(l.hist.Mean()),
		P50Ms:  usToMs(float64(l.hist.ValueAtQuantile(50))),
		P95Ms:  usToMs(float64(l.hist.ValueAtQuantile(95))),
		P99Ms:  usToMs(float64(l.hist.ValueAtQuantile(99))),
		MaxMs:  usToMs(float64(l.hist.Max())),
	}
}

func usToMs(us float64) float64 {
	return us / 1000.0
}
