// Package metrics はアプリケーション固有の Prometheus メトリクスを定義します。
// HTTP リクエストのメトリクスは handlers のルーターで go-http-metrics が記録します。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "review"

var (
	// GenerationRequests は外部生成APIの呼び出し回数 (kind, outcome)
	GenerationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generation_requests_total",
		Help:      "Number of calls to the text generation API by kind and outcome.",
	}, []string{"kind", "outcome"})

	// GenerationFallbacks はフォールバック文言に置き換えた回数 (kind)
	GenerationFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generation_fallbacks_total",
		Help:      "Number of generated fields replaced by the deterministic fallback text.",
	}, []string{"kind"})

	// GenerationDuration は外部生成APIの所要時間
	GenerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "generation_duration_seconds",
		Help:      "Latency of text generation API calls.",
		Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 25},
	}, []string{"kind"})

	// SubmissionsCreated は保存したレビュー数 (rating)
	SubmissionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_created_total",
		Help:      "Number of stored submissions by rating.",
	}, []string{"rating"})
)
