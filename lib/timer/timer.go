package timer

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

var fnDuration = promauto.NewSummaryVec(prometheus.SummaryOpts{
	Name: "aws_call_duration_seconds",
	Help: "Duration of individual AWS provider calls",
	Objectives: map[float64]float64{
		0.50: 0.05,
		0.90: 0.05,
		0.99: 0.01,
	},
}, []string{"function_name"})

type MetricsArgs struct {
	Pushgateway string `arg:"--pushgateway,env:PUSHGATEWAY_URL" help:"Prometheus pushgateway to push call durations to on exit" default:""`
}

type Timer struct {
	timer *prometheus.Timer
}

func (t Timer) Stop() {
	t.timer.ObserveDuration()
}

func Start(funcName string) Timer {
	return Timer{
		timer: prometheus.NewTimer(fnDuration.WithLabelValues(funcName)),
	}
}

// Push sends everything recorded by this process to the pushgateway under the
// given job. A CLI run is too short-lived to be scraped.
func Push(url, job string) error {
	if err := push.New(url, job).Collector(fnDuration).Push(); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}
