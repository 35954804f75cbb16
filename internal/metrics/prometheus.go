// Package metrics defines the Prometheus instrumentation for the speechkit
// tool: codec throughput, VAD activity, and monitoring endpoint usage.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the speechkit tool
type Metrics struct {
	// Codec metrics
	FilesDecoded   prometheus.Counter
	DecodeErrors   prometheus.Counter
	SamplesDecoded prometheus.Counter
	SamplesWritten prometheus.Counter
	EncodeErrors   prometheus.Counter

	// VAD metrics
	VADWindowsProcessed prometheus.Counter
	VADSpeechWindows    prometheus.Counter
	SegmentsCreated     prometheus.Counter
	SegmentDuration     prometheus.Histogram
	FileProcessingTime  prometheus.Histogram

	// HTTP API metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		FilesDecoded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "speechkit_files_decoded_total",
			Help: "Total number of WAV files successfully decoded",
		}),
		DecodeErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "speechkit_decode_errors_total",
			Help: "Total number of WAV decode failures",
		}),
		SamplesDecoded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "speechkit_samples_decoded_total",
			Help: "Total number of PCM samples produced by the decoder",
		}),
		SamplesWritten: promauto.NewCounter(prometheus.CounterOpts{
			Name: "speechkit_samples_written_total",
			Help: "Total number of PCM samples written to segment WAV files",
		}),
		EncodeErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "speechkit_encode_errors_total",
			Help: "Total number of WAV encode failures",
		}),

		VADWindowsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "speechkit_vad_windows_processed_total",
			Help: "Total number of VAD windows classified",
		}),
		VADSpeechWindows: promauto.NewCounter(prometheus.CounterOpts{
			Name: "speechkit_vad_speech_windows_total",
			Help: "Total number of VAD windows classified as speech",
		}),
		SegmentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "speechkit_segments_created_total",
			Help: "Total number of speech segments emitted",
		}),
		SegmentDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "speechkit_segment_duration_seconds",
			Help:    "Duration of emitted speech segments",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		}),
		FileProcessingTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "speechkit_file_processing_seconds",
			Help:    "Wall time spent decoding and segmenting one input file",
			Buckets: prometheus.DefBuckets,
		}),

		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "speechkit_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		}, []string{"endpoint", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "speechkit_http_request_duration_seconds",
			Help:    "HTTP request latency by endpoint",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}
