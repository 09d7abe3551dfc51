package models

import "time"

// ChangeEvent records one detected content change within a run. Events are
// ephemeral: they feed the notification message and the run summary, then
// are discarded.
type ChangeEvent struct {
	// Name is the PageRecord name of the changed URL.
	Name string
	// Title is the display title used in notifications: the slug-derived
	// event title for discovered ticket pages, otherwise Name.
	Title string
	// URL is the monitored page URL.
	URL string
	// PreviousCheck is the display form of the prior observation time,
	// "Unknown" when the prior record carried no timestamp.
	PreviousCheck string
	// Diff holds the unified diff between the prior and current snapshots,
	// empty when no snapshot was available for comparison.
	Diff string
}

// RunSummary aggregates counters for a single monitoring pass.
type RunSummary struct {
	StartedAt   time.Time
	Duration    time.Duration
	Targets     int
	Checked     int
	NotModified int
	Skipped     int
	Changes     int
	Notified    bool
}
