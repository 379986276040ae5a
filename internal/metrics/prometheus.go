package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TurnDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "voxhire_turn_duration_seconds",
			Help:    "Interview turn processing duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
	)

	TurnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxhire_turns_total",
			Help: "Total number of interview turns processed",
		},
		[]string{"status"},
	)

	SessionsStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "voxhire_sessions_started_total",
			Help: "Total number of interview sessions started",
		},
	)

	LLMTokensUsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxhire_llm_tokens_used",
			Help: "Total LLM tokens used",
		},
		[]string{"model", "type"},
	)

	QARecordsSaved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxhire_qa_records_saved_total",
			Help: "Total QA records written to the transcript store",
		},
		[]string{"outcome"},
	)

	EvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxhire_evaluations_total",
			Help: "Total transcript evaluations",
		},
		[]string{"outcome"},
	)

	EvaluationScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "voxhire_evaluation_score",
			Help:    "Distribution of evaluation scores",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		},
	)
)

func Init() {
	prometheus.MustRegister(TurnDuration)
	prometheus.MustRegister(TurnsTotal)
	prometheus.MustRegister(SessionsStarted)
	prometheus.MustRegister(LLMTokensUsed)
	prometheus.MustRegister(QARecordsSaved)
	prometheus.MustRegister(EvaluationsTotal)
	prometheus.MustRegister(EvaluationScore)
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
