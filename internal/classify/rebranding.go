package classify

import (
	"fmt"
	"strings"

	"binance-preproc/internal/domain"
)

const rebrandSeparator = " to "

// RebrandingMatch pairs a token swap row with the distribution row that names it.
type RebrandingMatch struct {
	Swap         domain.RawRecord
	Distribution domain.RawRecord
	OldAsset     string
	NewAsset     string
}

func isRebrandingRow(rec domain.RawRecord) bool {
	switch rec.Kind() {
	case domain.OperationTokenSwap:
		return true
	case domain.OperationDistribution:
		return strings.Contains(rec.Remark, rebrandSeparator)
	default:
		return false
	}
}

// MatchRebrandings pairs every eligible distribution row with the first swap
// row of its old asset, regardless of timestamp. All eligible rows are left
// out of remaining, matched or not.
func MatchRebrandings(records []domain.RawRecord) (matches []RebrandingMatch, remaining []domain.RawRecord) {
	swapsByAsset := make(map[string]domain.RawRecord)
	var distributions []domain.RawRecord

	for _, rec := range records {
		if !isRebrandingRow(rec) {
			remaining = append(remaining, rec)
			continue
		}
		if rec.Kind() == domain.OperationTokenSwap {
			if _, seen := swapsByAsset[rec.Asset]; !seen {
				swapsByAsset[rec.Asset] = rec
			}
			continue
		}
		distributions = append(distributions, rec)
	}

	for _, dist := range distributions {
		// Asset names containing the separator are split at its first occurrence.
		oldAsset, newAsset, _ := strings.Cut(dist.Remark, rebrandSeparator)
		swap, ok := swapsByAsset[oldAsset]
		if !ok {
			continue
		}
		matches = append(matches, RebrandingMatch{
			Swap:         swap,
			Distribution: dist,
			OldAsset:     oldAsset,
			NewAsset:     newAsset,
		})
	}
	return matches, remaining
}

// rebrandingTransfer models the rename as a same-account transfer of the old asset.
func (c *Classifier) rebrandingTransfer(m RebrandingMatch) domain.Transfer {
	amount := m.Swap.Change.Abs()
	return domain.Transfer{
		UniqueID:       c.ids.NewID(),
		Timestamp:      mustNormalize(m.Swap.Timestamp),
		Asset:          m.OldAsset,
		FromExchange:   c.account.Exchange,
		FromHolder:     c.account.Holder,
		ToExchange:     c.account.Exchange,
		ToHolder:       c.account.Holder,
		SpotPrice:      domain.UnknownSpotPrice,
		CryptoSent:     amount,
		CryptoReceived: amount,
		Notes:          fmt.Sprintf("Rebranding from %s to %s", m.OldAsset, m.NewAsset),
	}
}
