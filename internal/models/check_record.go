package models

// CheckRecord defines the Parquet schema for the per-run check history
// archive. Optional fields use pointers and ',optional' tags following
// parquet-go/parquet-go conventions.
type CheckRecord struct {
	URL           string  `parquet:"url"` // REQUIRED by default
	Name          string  `parquet:"name"`
	ContentHash   *string `parquet:"content_hash,optional"`
	ContentLength *int64  `parquet:"content_length,optional"`
	Changed       bool    `parquet:"changed"`
	NotModified   bool    `parquet:"not_modified"`
	CheckError    *string `parquet:"check_error,optional"`
	CheckedAt     int64   `parquet:"checked_at"` // epoch millis (TIMESTAMP_MILLIS)
}
