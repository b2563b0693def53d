package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsroom_pipeline_runs_total",
		Help: "Pipeline runs by outcome.",
	}, []string{"outcome"})

	articlesCollected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsroom_articles_collected_total",
		Help: "Articles collected across all runs.",
	})

	visitsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsroom_visits_recorded_total",
		Help: "Visits recorded through the shell.",
	})
)
