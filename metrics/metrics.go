// Package metrics 는 외부 API 호출과 추천 파이프라인의 Prometheus 지표입니다.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequestsTotal은 외부 API 호출 수(결과별)입니다.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "outfit",
			Name:      "upstream_requests_total",
			Help:      "Total number of provider requests",
		},
		[]string{"provider", "outcome"},
	)

	// UpstreamRequestDuration은 외부 API 응답 시간입니다.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "outfit",
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of provider requests in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8},
		},
		[]string{"provider"},
	)

	// RecommendationsTotal은 종료 상태별 추천 실행 수입니다.
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "outfit",
			Name:      "recommendations_total",
			Help:      "Total number of recommendation runs by terminal state",
		},
		[]string{"state"},
	)
)

// RecordUpstream은 외부 API 호출 한 번을 기록합니다.
func RecordUpstream(provider, outcome string, seconds float64) {
	UpstreamRequestsTotal.WithLabelValues(provider, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(provider).Observe(seconds)
}

// RecordRecommendation은 끝난 추천 실행 한 번을 기록합니다.
func RecordRecommendation(state string) {
	RecommendationsTotal.WithLabelValues(state).Inc()
}
