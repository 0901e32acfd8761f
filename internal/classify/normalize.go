package classify

import (
	"strings"
	"time"

	"binance-preproc/internal/domain"
)

const (
	// SourceTimeLayout is the UTC_Time format of the Binance export.
	SourceTimeLayout = "2006-01-02 15:04:05"
	// LedgerTimeLayout is the ISO 8601 format DaLI expects.
	LedgerTimeLayout = "2006-01-02T15:04:05Z"
)

// NormalizeTimestamp converts an export timestamp to the ledger representation.
func NormalizeTimestamp(ts string) (string, error) {
	t, err := time.ParseInLocation(SourceTimeLayout, ts, time.UTC)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(LedgerTimeLayout), nil
}

// mustNormalize is only called on timestamps that passed validateRecords.
func mustNormalize(ts string) string {
	normalized, err := NormalizeTimestamp(ts)
	if err != nil {
		panic(err)
	}
	return normalized
}

// validateRecords rejects the whole input on the first malformed row.
func validateRecords(records []domain.RawRecord) error {
	for i, rec := range records {
		if strings.TrimSpace(rec.Operation) == "" {
			return &domain.RecordError{Index: i, Field: "Operation", Value: rec.Operation}
		}
		if strings.TrimSpace(rec.Asset) == "" {
			return &domain.RecordError{Index: i, Field: "Coin", Value: rec.Asset}
		}
		if _, err := NormalizeTimestamp(rec.Timestamp); err != nil {
			return &domain.RecordError{Index: i, Field: "UTC_Time", Value: rec.Timestamp, Err: err}
		}
	}
	return nil
}
