package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome ラベルの値です。
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics はサービスが公開する Prometheus メトリクスです。
// nil レシーバでも安全に呼び出せます。
type Metrics struct {
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	autoScheduleRuns *prometheus.CounterVec
	shiftsGenerated  prometheus.Counter
}

// New はメトリクスを生成し、reg に登録します。reg が nil の場合は何も記録しません。
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shift_scheduler",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status"})
	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "shift_scheduler",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
	autoScheduleRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shift_scheduler",
		Name:      "auto_schedule_runs_total",
		Help:      "Auto-schedule invocations by outcome.",
	}, []string{"outcome"})
	shiftsGenerated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "shift_scheduler",
		Name:      "auto_schedule_shifts_generated_total",
		Help:      "Shifts created by the round-robin scheduler.",
	})

	reg.MustRegister(requests, requestDuration, autoScheduleRuns, shiftsGenerated)

	return &Metrics{
		requests:         requests,
		requestDuration:  requestDuration,
		autoScheduleRuns: autoScheduleRuns,
		shiftsGenerated:  shiftsGenerated,
	}
}

// ObserveRequest は HTTP リクエストの結果を記録します。
func (m *Metrics) ObserveRequest(route, method string, status int, duration time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	route = normalizeRoute(route)
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// ObserveAutoSchedule は自動スケジュールの実行結果を記録します。
func (m *Metrics) ObserveAutoSchedule(created int, err error) {
	if m == nil || m.autoScheduleRuns == nil {
		return
	}
	if err != nil {
		m.autoScheduleRuns.WithLabelValues(OutcomeFailure).Inc()
		return
	}
	m.autoScheduleRuns.WithLabelValues(OutcomeSuccess).Inc()
	m.shiftsGenerated.Add(float64(created))
}

func normalizeRoute(route string) string {
	if route == "" {
		return "unmatched"
	}
	return route
}
