package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	tailorStartedTotal       atomic.Uint64
	tailorFailedTotal        atomic.Uint64
	tailorStorageFailedTotal atomic.Uint64
	enrichmentFailedTotal    atomic.Uint64
	pdfSupersededTotal       atomic.Uint64

	tailorDuration = newHistogram([]float64{500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncTailorStarted counts tailoring requests that passed validation.
func IncTailorStarted() {
	tailorStartedTotal.Add(1)
}

// IncTailorFailed counts tailoring requests that returned an error.
func IncTailorFailed() {
	tailorFailedTotal.Add(1)
}

// IncTailorStorageFailed counts tailored envelopes that could not be persisted.
func IncTailorStorageFailed() {
	tailorStorageFailedTotal.Add(1)
}

// IncEnrichmentFailed counts listing items whose metadata could not be read.
func IncEnrichmentFailed() {
	enrichmentFailedTotal.Add(1)
}

// IncPDFSuperseded counts PDF renders discarded in favour of a newer request.
func IncPDFSuperseded() {
	pdfSupersededTotal.Add(1)
}

// ObserveTailorDuration records a tailoring duration.
func ObserveTailorDuration(d time.Duration) {
	value := float64(d) / float64(time.Millisecond)
	if value < 0 {
		value = 0
	}
	tailorDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "resume_tailor_started_total", "Tailoring requests started", tailorStartedTotal.Load())
	writeCounter(&buf, "resume_tailor_failed_total", "Tailoring requests failed", tailorFailedTotal.Load())
	writeCounter(&buf, "resume_tailor_storage_failed_total", "Tailored envelopes not persisted", tailorStorageFailedTotal.Load())
	writeCounter(&buf, "document_enrichment_failed_total", "Listing metadata enrichment failures", enrichmentFailedTotal.Load())
	writeCounter(&buf, "pdf_render_superseded_total", "PDF renders superseded by a newer request", pdfSupersededTotal.Load())
	writeHistogram(&buf, "resume_tailor_duration_ms", "Tailoring duration in milliseconds", tailorDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe places value in the first bucket whose bound it does not exceed.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
