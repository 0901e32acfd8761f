package classify

import (
	"sort"

	"github.com/shopspring/decimal"

	"binance-preproc/internal/domain"
)

type roleKey struct {
	kind  domain.OperationKind
	asset string
}

// groupIndex keys a group's rows by operation kind and by (kind, asset).
// Row order within every bucket is source order.
type groupIndex struct {
	byKind map[domain.OperationKind][]domain.RawRecord
	byRole map[roleKey][]domain.RawRecord
}

func indexGroup(records []domain.RawRecord) groupIndex {
	idx := groupIndex{
		byKind: make(map[domain.OperationKind][]domain.RawRecord),
		byRole: make(map[roleKey][]domain.RawRecord),
	}
	for _, rec := range records {
		kind := rec.Kind()
		idx.byKind[kind] = append(idx.byKind[kind], rec)
		key := roleKey{kind: kind, asset: rec.Asset}
		idx.byRole[key] = append(idx.byRole[key], rec)
	}
	return idx
}

// kinds returns the kinds present in the group in declaration order.
func (g groupIndex) kinds() []domain.OperationKind {
	kinds := make([]domain.OperationKind, 0, len(g.byKind))
	for kind := range g.byKind {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func (g groupIndex) rows(kind domain.OperationKind) []domain.RawRecord {
	return g.byKind[kind]
}

func (g groupIndex) rowsFor(kind domain.OperationKind, asset string) []domain.RawRecord {
	return g.byRole[roleKey{kind: kind, asset: asset}]
}

func sum(rows []domain.RawRecord) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range rows {
		total = total.Add(rec.Change)
	}
	return total
}

func sumAbs(rows []domain.RawRecord) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range rows {
		total = total.Add(rec.Change.Abs())
	}
	return total
}

func negative(rows []domain.RawRecord) []domain.RawRecord {
	var out []domain.RawRecord
	for _, rec := range rows {
		if rec.Change.IsNegative() {
			out = append(out, rec)
		}
	}
	return out
}

func firstAsset(rows []domain.RawRecord) string {
	if len(rows) == 0 {
		return ""
	}
	return rows[0].Asset
}

func lastAsset(rows []domain.RawRecord, fallback string) string {
	if len(rows) == 0 {
		return fallback
	}
	return rows[len(rows)-1].Asset
}
