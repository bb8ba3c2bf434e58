// Package metrics exports countdown activity as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/countdown/internal/countdown"
)

const (
	namespace       = "countdown"
	shutdownTimeout = 2 * time.Second
	readTimeout     = 5 * time.Second
)

// Observer records every notification before forwarding it to the wrapped observer.
type Observer struct {
	next countdown.Observer

	ticks     prometheus.Counter
	finishes  prometheus.Counter
	remaining prometheus.Gauge
}

// NewObserver registers the countdown collectors on reg and wraps next, which may be nil.
func NewObserver(reg prometheus.Registerer, next countdown.Observer) (*Observer, error) {
	o := &Observer{
		next: next,
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Tick notifications delivered while a countdown was running.",
		}),
		finishes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "finished_total",
			Help:      "Countdowns that reached zero.",
		}),
		remaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "remaining_seconds",
			Help:      "Time left on the running countdown.",
		}),
	}
	for _, c := range []prometheus.Collector{o.ticks, o.finishes, o.remaining} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *Observer) OnTick(remaining time.Duration) {
	o.ticks.Inc()
	o.remaining.Set(remaining.Seconds())
	if o.next != nil {
		o.next.OnTick(remaining)
	}
}

func (o *Observer) OnFinish() {
	o.finishes.Inc()
	o.remaining.Set(0)
	if o.next != nil {
		o.next.OnFinish()
	}
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: readTimeout}

	errCh := make(chan error, 1)
	go func() {
		logrus.Debugf("serving metrics on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
