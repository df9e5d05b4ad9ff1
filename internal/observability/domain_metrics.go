package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	translationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxsql_translations_total",
			Help: "Total number of natural-language translations by select kind.",
		},
		[]string{"select_kind"},
	)
	translationDurationMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "voxsql_translation_duration_ms",
			Help:    "End-to-end translate-and-run latency in milliseconds.",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		},
	)
	executionFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "voxsql_execution_failures_total",
			Help: "Total number of SQL execution failures propagated to callers.",
		},
	)
	sttRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "voxsql_stt_requests_total",
			Help: "Total number of transcription requests.",
		},
	)
	sttFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "voxsql_stt_failures_total",
			Help: "Total number of failed transcription requests.",
		},
	)
	sttLatencyMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "voxsql_stt_latency_ms",
			Help:    "Transcription provider latency in milliseconds.",
			Buckets: []float64{50, 100, 250, 500, 1000, 2000, 5000, 10000},
		},
	)
	archivedAudioBytesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "voxsql_archived_audio_bytes_total",
			Help: "Total bytes of uploaded audio written to the archive store.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		translationsTotal,
		translationDurationMs,
		executionFailuresTotal,
		sttRequestsTotal,
		sttFailuresTotal,
		sttLatencyMs,
		archivedAudioBytesTotal,
	)
}

func ObserveTranslation(selectKind string, elapsed time.Duration) {
	translationsTotal.WithLabelValues(selectKind).Inc()
	translationDurationMs.Observe(float64(elapsed.Milliseconds()))
}

func IncrementExecutionFailure() {
	executionFailuresTotal.Inc()
}

func ObserveTranscription(elapsed time.Duration, failed bool) {
	sttRequestsTotal.Inc()
	if failed {
		sttFailuresTotal.Inc()
		return
	}
	sttLatencyMs.Observe(float64(elapsed.Milliseconds()))
}

func AddArchivedAudioBytes(n int64) {
	if n > 0 {
		archivedAudioBytesTotal.Add(float64(n))
	}
}
