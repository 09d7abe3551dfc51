package models

import "time"

// PageTarget is the concrete unit of monitoring for one run: either a
// configured site directly, or one page produced by expanding a
// discovery-enabled site. Targets are built fresh each run and discarded
// afterwards.
type PageTarget struct {
	URL      string
	Name     string
	Selector string
	// LinkPattern is carried over from the parent site config so the
	// notifier can decide whether the URL slug encodes an event title.
	LinkPattern string
}

// PageRecord is the persisted observation for a single URL.
// Invariant: Hash is always the fingerprint of Snapshot, both produced
// from the same capped normalized text.
type PageRecord struct {
	Name         string    `json:"name"`
	Hash         string    `json:"hash"`
	LastChecked  time.Time `json:"last_checked"`
	Selector     string    `json:"selector,omitempty"`
	Snapshot     string    `json:"snapshot,omitempty"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
}

// MonitoringState maps URL to its most recent PageRecord. The whole map is
// replaced at the end of every run, so URLs that drop out of the target
// list disappear without extra bookkeeping.
type MonitoringState map[string]PageRecord
