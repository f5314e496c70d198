package api

import (
	"chartd/core/journal"
	"chartd/core/render"
	"github.com/prometheus/client_golang/prometheus"
)

type renderMetricsCollector struct {
	stats  *render.Stats
	pruner *journal.Pruner

	jobsTotalDesc       *prometheus.Desc
	skippedTotalDesc    *prometheus.Desc
	durationSecondsDesc *prometheus.Desc
	lastJobDesc         *prometheus.Desc
	pruneRunsDesc       *prometheus.Desc
	pruneErrorsDesc     *prometheus.Desc
	prunedRowsDesc      *prometheus.Desc
}

func newRenderMetricsCollector(stats *render.Stats, pruner *journal.Pruner) prometheus.Collector {
	return &renderMetricsCollector{
		stats:  stats,
		pruner: pruner,
		jobsTotalDesc: prometheus.NewDesc(
			"chartd_render_jobs_total",
			"Total number of render jobs by top-level kind and outcome.",
			[]string{"kind", "outcome"},
			nil,
		),
		skippedTotalDesc: prometheus.NewDesc(
			"chartd_render_skipped_items_total",
			"Total number of chart items skipped for an unsupported subtype.",
			nil,
			nil,
		),
		durationSecondsDesc: prometheus.NewDesc(
			"chartd_render_duration_seconds_total",
			"Total time spent rendering jobs.",
			nil,
			nil,
		),
		lastJobDesc: prometheus.NewDesc(
			"chartd_render_last_job_timestamp",
			"Unix timestamp of the last finished render job.",
			nil,
			nil,
		),
		pruneRunsDesc: prometheus.NewDesc(
			"chartd_journal_prune_runs_total",
			"Total number of journal retention runs.",
			nil,
			nil,
		),
		pruneErrorsDesc: prometheus.NewDesc(
			"chartd_journal_prune_errors_total",
			"Total number of failed journal retention runs.",
			nil,
			nil,
		),
		prunedRowsDesc: prometheus.NewDesc(
			"chartd_journal_pruned_entries_total",
			"Total number of journal entries removed by retention.",
			nil,
			nil,
		),
	}
}

func (c *renderMetricsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.jobsTotalDesc
	ch <- c.skippedTotalDesc
	ch <- c.durationSecondsDesc
	ch <- c.lastJobDesc
	ch <- c.pruneRunsDesc
	ch <- c.pruneErrorsDesc
	ch <- c.prunedRowsDesc
}

func (c *renderMetricsCollector) Collect(ch chan<- prometheus.Metric) {
	if c == nil {
		return
	}
	snap := c.stats.StatsSnapshot()
	for _, k := range snap.Keys() {
		ch <- prometheus.MustNewConstMetric(c.jobsTotalDesc, prometheus.CounterValue, float64(snap.Jobs[k]), k.Kind, string(k.Outcome))
	}
	ch <- prometheus.MustNewConstMetric(c.skippedTotalDesc, prometheus.CounterValue, float64(snap.SkippedTotal))
	ch <- prometheus.MustNewConstMetric(c.durationSecondsDesc, prometheus.CounterValue, snap.DurationSeconds)
	if snap.LastJobAtUTC != nil {
		ch <- prometheus.MustNewConstMetric(c.lastJobDesc, prometheus.GaugeValue, float64(snap.LastJobAtUTC.Unix()))
	}
	if c.pruner != nil {
		ps := c.pruner.StatsSnapshot()
		ch <- prometheus.MustNewConstMetric(c.pruneRunsDesc, prometheus.CounterValue, float64(ps.RunsTotal))
		ch <- prometheus.MustNewConstMetric(c.pruneErrorsDesc, prometheus.CounterValue, float64(ps.RunErrorsTotal))
		ch <- prometheus.MustNewConstMetric(c.prunedRowsDesc, prometheus.CounterValue, float64(ps.PrunedTotal))
	}
}
