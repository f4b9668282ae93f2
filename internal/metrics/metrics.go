package metrics

import (
	prom "github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the tracker's Prometheus collectors. A nil *Recorder is
// valid and records nothing.
type Recorder struct {
	recordsWritten prom.Counter
	recordsPruned  prom.Counter
	pruneSkipped   *prom.CounterVec
	invalidInput   prom.Counter
	storageErrors  *prom.CounterVec
	latestLevel    prom.Gauge
}

// NewRecorder constructs the collectors and registers them on reg. A nil reg
// gets a private registry.
func NewRecorder(reg prom.Registerer) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	r := &Recorder{
		recordsWritten: prom.NewCounter(prom.CounterOpts{
			Namespace: "leveltrack",
			Name:      "records_written_total",
			Help:      "Daily records inserted or replaced",
		}),
		recordsPruned: prom.NewCounter(prom.CounterOpts{
			Namespace: "leveltrack",
			Name:      "records_pruned_total",
			Help:      "Records removed by retention pruning",
		}),
		pruneSkipped: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "leveltrack",
			Name:      "prune_skipped_total",
			Help:      "Prune passes that deleted nothing on purpose, by reason",
		}, []string{"reason"}),
		invalidInput: prom.NewCounter(prom.CounterOpts{
			Namespace: "leveltrack",
			Name:      "invalid_input_total",
			Help:      "Record requests rejected before reaching the store",
		}),
		storageErrors: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "leveltrack",
			Name:      "storage_errors_total",
			Help:      "Store failures by operation",
		}, []string{"op"}),
		latestLevel: prom.NewGauge(prom.GaugeOpts{
			Namespace: "leveltrack",
			Name:      "latest_level",
			Help:      "Level of the most recently written record",
		}),
	}
	reg.MustRegister(r.recordsWritten, r.recordsPruned, r.pruneSkipped, r.invalidInput, r.storageErrors, r.latestLevel)
	return r
}

func (r *Recorder) RecordWritten(level int) {
	if r == nil {
		return
	}
	r.recordsWritten.Inc()
	r.latestLevel.Set(float64(level))
}

func (r *Recorder) Pruned(n int64) {
	if r == nil || n <= 0 {
		return
	}
	r.recordsPruned.Add(float64(n))
}

func (r *Recorder) PruneSkipped(reason string) {
	if r == nil || reason == "" {
		return
	}
	r.pruneSkipped.WithLabelValues(reason).Inc()
}

func (r *Recorder) InvalidInput() {
	if r == nil {
		return
	}
	r.invalidInput.Inc()
}

func (r *Recorder) StorageError(op string) {
	if r == nil {
		return
	}
	r.storageErrors.WithLabelValues(op).Inc()
}
