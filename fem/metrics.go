// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// status of solver runs; also labels of the runs counter
const (
	StatusOk       = "ok"       // report has a value
	StatusMissing  = "missing"  // report has no result row
	StatusNoReport = "noreport" // solver ran but there is no report
	StatusFailed   = "failed"   // solver could not run
	StatusTimeout  = "timeout"  // solver was killed
)

// Metrics holds the metrics of a study in a private registry
type Metrics struct {
	Registry  *prometheus.Registry
	Runs      *prometheus.CounterVec // solver runs by status
	Duration  prometheus.Histogram   // wall time of solver runs
	Iteration prometheus.Gauge       // index of current element size
	ElemSize  prometheus.Gauge       // current element size
	Value     *prometheus.GaugeVec   // monitored value by job
	RelError  *prometheus.GaugeVec   // error with respect to the reference solution by job
}

// NewMetrics allocates and registers all metrics
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		Runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "meshconv_solver_runs_total",
			Help: "The total number of solver runs",
		}, []string{"status"}),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "meshconv_solver_run_duration_seconds",
			Help:    "Wall time of solver runs",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		Iteration: f.NewGauge(prometheus.GaugeOpts{
			Name: "meshconv_iteration",
			Help: "Index of the element size being processed",
		}),
		ElemSize: f.NewGauge(prometheus.GaugeOpts{
			Name: "meshconv_element_size",
			Help: "Element size being processed",
		}),
		Value: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "meshconv_monitored_value",
			Help: "Monitored value extracted from the status report",
		}, []string{"job"}),
		RelError: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "meshconv_relative_error",
			Help: "Relative error of the monitored value with respect to the reference solution",
		}, []string{"job"}),
	}
}

// WriteFile writes all metrics to fn in the text exposition format
func (o *Metrics) WriteFile(fn string) error {
	if err := prometheus.WriteToTextfile(fn, o.Registry); err != nil {
		return chk.Err("cannot write metrics:\n%v", err)
	}
	return nil
}
