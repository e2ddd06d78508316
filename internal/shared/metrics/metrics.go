package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()

	transcriptionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "audio_transcriptions_total",
		Help: "Audio transcriptions by source (backend or reused)",
	}, []string{"source"})

	audioFailedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "audio_failed_total",
		Help: "Audios with no recognized speech",
	})

	analysisRecordsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "analysis_records_total",
		Help: "Analysis records persisted",
	})

	analyzeRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "analyze_requests_total",
		Help: "Analyze requests by response status",
	}, []string{"status"})

	analyzeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "analyze_duration_ms",
		Help:    "Analyze request duration in milliseconds",
		Buckets: []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000},
	})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		transcriptionsTotal,
		audioFailedTotal,
		analysisRecordsTotal,
		analyzeRequestsTotal,
		analyzeDuration,
	)
}

// IncTranscription counts a transcription served by the backend or reused from the store.
func IncTranscription(reused bool) {
	source := "backend"
	if reused {
		source = "reused"
	}
	transcriptionsTotal.WithLabelValues(source).Inc()
}

// IncAudioFailed increments the failed audio counter.
func IncAudioFailed() {
	audioFailedTotal.Inc()
}

// AddAnalysisRecords adds n persisted analysis records.
func AddAnalysisRecords(n int) {
	if n <= 0 {
		return
	}
	analysisRecordsTotal.Add(float64(n))
}

// ObserveAnalyze records one finished analyze request.
func ObserveAnalyze(status int, durationMs float64) {
	if durationMs < 0 {
		durationMs = 0
	}
	analyzeRequestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	analyzeDuration.Observe(durationMs)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
