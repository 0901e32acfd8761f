package classify

import "binance-preproc/internal/domain"

// Result is the outcome of partitioning a full export.
type Result struct {
	Ledgers        domain.Ledgers
	RebrandedPairs int
	Groups         int
	// UnrecognizedGroups counts groups that produced no record at all.
	UnrecognizedGroups int
}

// Partition classifies a full export into the three ledgers.
// Rebranding transfers come first in the intra ledger, followed by the
// output of every timestamp group in order of first appearance.
// A malformed row aborts the run before anything is classified.
func (c *Classifier) Partition(records []domain.RawRecord) (*Result, error) {
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	matches, remaining := MatchRebrandings(records)

	result := &Result{RebrandedPairs: len(matches)}
	result.Ledgers.Intra = make([]domain.Transfer, 0, len(matches))
	for _, m := range matches {
		result.Ledgers.Intra = append(result.Ledgers.Intra, c.rebrandingTransfer(m))
	}

	groups := GroupByTimestamp(remaining)
	result.Groups = len(groups)
	for _, group := range groups {
		emitted := c.ClassifyGroup(group)
		if len(emitted.In)+len(emitted.Out)+len(emitted.Intra) == 0 {
			result.UnrecognizedGroups++
		}
		result.Ledgers.Append(emitted)
	}
	return result, nil
}
