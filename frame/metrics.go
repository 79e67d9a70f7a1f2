package frame

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// framesTotal counts frames by result: rendered, skipped or failed
	framesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "revue_frames_total",
		Help: "Total frames by result",
	}, []string{"result"})

	frameDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "revue_frame_duration_seconds",
		Help:    "Duration of rendered frames in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12), // 0.1ms to ~400ms
	})

	changedNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "revue_changed_nodes",
		Help:    "Nodes changed or inserted per rendered frame",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100, 500},
	})

	commandsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "revue_commands_written_total",
		Help: "Total terminal write commands emitted",
	})

	cellsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "revue_cells_written_total",
		Help: "Total terminal cells rewritten",
	})

	effectRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "revue_effect_runs_total",
		Help: "Total effect executions during frame flushes",
	})
)
