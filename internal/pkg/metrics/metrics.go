package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultAccepted  = "accepted"
	ResultDuplicate = "duplicate"
)

var (
	IngestRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "camtrap",
		Name:      "ingest_rows_total",
		Help:      "Annotation rows processed by table ingestion.",
	}, []string{"result"})

	SpeciesAutoCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "camtrap",
		Name:      "species_autocreated_total",
		Help:      "Species created automatically during ingestion.",
	})

	OccurrenceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "camtrap",
		Name:      "occurrence_duration_seconds",
		Help:      "Time spent computing occurrence reports.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"mode"})
)
