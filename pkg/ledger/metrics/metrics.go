/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package metrics holds the prometheus collectors of the command executor.
// A nil *ExecutorMetrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystem = "executor"

var (
	commandsReceived = prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "commands_received",
		Help:      "The number of commands received by the executor.",
	}
	commandsFailed = prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "commands_failed",
		Help:      "The number of commands completed with an error.",
	}
	commandDuration = prometheus.HistogramOpts{
		Subsystem: subsystem,
		Name:      "command_duration_seconds",
		Help:      "The time spent dispatching a command.",
		Buckets:   prometheus.DefBuckets,
	}
	pendingSubmissions = prometheus.GaugeOpts{
		Subsystem: subsystem,
		Name:      "pending_submissions",
		Help:      "The number of submissions waiting for an acknowledgement.",
	}
	acksReceived = prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "acks_received",
		Help:      "The number of submission acknowledgements received.",
	}
	orphanAcks = prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "orphan_acks",
		Help:      "The number of acknowledgements for unknown submissions.",
	}
)

// Outcome labels
const (
	Success = "success"
	Failure = "failure"
)

// ExecutorMetrics contains the metrics used by the command executor
type ExecutorMetrics struct {
	CommandsReceived   *prometheus.CounterVec
	CommandsFailed     *prometheus.CounterVec
	CommandDuration    *prometheus.HistogramVec
	PendingSubmissions prometheus.Gauge
	AcksReceived       *prometheus.CounterVec
	OrphanAcks         prometheus.Counter
}

// New creates the executor metrics under namespace and registers them with
// registerer. A nil registerer leaves them unregistered.
func New(registerer prometheus.Registerer, namespace string) (*ExecutorMetrics, error) {
	m := &ExecutorMetrics{
		CommandsReceived:   prometheus.NewCounterVec(withNamespace(commandsReceived, namespace), []string{"command"}),
		CommandsFailed:     prometheus.NewCounterVec(withNamespace(commandsFailed, namespace), []string{"command"}),
		CommandDuration:    prometheus.NewHistogramVec(histogramWithNamespace(commandDuration, namespace), []string{"command"}),
		PendingSubmissions: prometheus.NewGauge(gaugeWithNamespace(pendingSubmissions, namespace)),
		AcksReceived:       prometheus.NewCounterVec(withNamespace(acksReceived, namespace), []string{"outcome"}),
		OrphanAcks:         prometheus.NewCounter(withNamespace(orphanAcks, namespace)),
	}

	if registerer == nil {
		return m, nil
	}
	for _, c := range m.collectors() {
		if err := registerer.Register(c); err != nil {
			return nil, errors.Wrap(err, "registering executor metrics failed")
		}
	}
	return m, nil
}

func (m *ExecutorMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.CommandsReceived, m.CommandsFailed, m.CommandDuration, m.PendingSubmissions, m.AcksReceived, m.OrphanAcks}
}

// CommandReceived records the dispatch of a command
func (m *ExecutorMetrics) CommandReceived(command string) {
	if m == nil {
		return
	}
	m.CommandsReceived.WithLabelValues(command).Inc()
}

// CommandDone records the dispatch duration and, when err is set, the failure
func (m *ExecutorMetrics) CommandDone(command string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.CommandDuration.WithLabelValues(command).Observe(time.Since(started).Seconds())
	if err != nil {
		m.CommandsFailed.WithLabelValues(command).Inc()
	}
}

// SetPending records the number of pending submissions
func (m *ExecutorMetrics) SetPending(n int) {
	if m == nil {
		return
	}
	m.PendingSubmissions.Set(float64(n))
}

// AckReceived records an acknowledgement delivered to its caller
func (m *ExecutorMetrics) AckReceived(err error) {
	if m == nil {
		return
	}
	outcome := Success
	if err != nil {
		outcome = Failure
	}
	m.AcksReceived.WithLabelValues(outcome).Inc()
}

// OrphanAck records an acknowledgement that matched no submission
func (m *ExecutorMetrics) OrphanAck() {
	if m == nil {
		return
	}
	m.OrphanAcks.Inc()
}

func withNamespace(opts prometheus.CounterOpts, namespace string) prometheus.CounterOpts {
	opts.Namespace = namespace
	return opts
}

func gaugeWithNamespace(opts prometheus.GaugeOpts, namespace string) prometheus.GaugeOpts {
	opts.Namespace = namespace
	return opts
}

func histogramWithNamespace(opts prometheus.HistogramOpts, namespace string) prometheus.HistogramOpts {
	opts.Namespace = namespace
	return opts
}
