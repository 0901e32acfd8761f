package classify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binance-preproc/internal/domain"
)

const tokenSwap = "Token Swap - Redenomination/Rebranding"

func TestMatchRebrandings(t *testing.T) {
	tests := []struct {
		name          string
		records       []domain.RawRecord
		wantMatches   []string // "old->new@swapTimestamp"
		wantRemaining int
	}{
		{
			name: "same timestamp pair",
			records: []domain.RawRecord{
				row("2021-05-01 00:00:00", tokenSwap, "OLD", "-100", ""),
				row("2021-05-01 00:00:00", "Distribution", "NEW", "100", "OLD to NEW"),
			},
			wantMatches:   []string{"OLD->NEW@2021-05-01 00:00:00"},
			wantRemaining: 0,
		},
		{
			name: "pair across timestamps",
			records: []domain.RawRecord{
				row("2021-05-01 00:00:00", tokenSwap, "OLD", "-100", ""),
				row("2021-05-03 12:00:00", "Distribution", "NEW", "100", "OLD to NEW"),
			},
			wantMatches:   []string{"OLD->NEW@2021-05-01 00:00:00"},
			wantRemaining: 0,
		},
		{
			name: "first swap of the asset wins",
			records: []domain.RawRecord{
				row("2021-05-01 00:00:00", tokenSwap, "OLD", "-100", ""),
				row("2021-05-02 00:00:00", tokenSwap, "OLD", "-5", ""),
				row("2021-05-03 00:00:00", "Distribution", "NEW", "100", "OLD to NEW"),
			},
			wantMatches:   []string{"OLD->NEW@2021-05-01 00:00:00"},
			wantRemaining: 0,
		},
		{
			name: "unmatched eligible rows are dropped",
			records: []domain.RawRecord{
				row("2021-05-01 00:00:00", tokenSwap, "LONELY", "-100", ""),
				row("2021-05-01 00:00:00", "Distribution", "NEW", "100", "OTHER to NEW"),
				row("2021-05-01 00:00:00", "Deposit", "BTC", "1", ""),
			},
			wantMatches:   nil,
			wantRemaining: 1,
		},
		{
			name: "distribution without separator is not eligible",
			records: []domain.RawRecord{
				row("2021-05-01 00:00:00", "Distribution", "BNB", "1", "Airdrop"),
			},
			wantMatches:   nil,
			wantRemaining: 1,
		},
		{
			name: "split at first separator",
			records: []domain.RawRecord{
				row("2021-05-01 00:00:00", tokenSwap, "A", "-1", ""),
				row("2021-05-01 00:00:00", "Distribution", "B to C", "1", "A to B to C"),
			},
			wantMatches:   []string{"A->B to C@2021-05-01 00:00:00"},
			wantRemaining: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, remaining := MatchRebrandings(tt.records)

			var got []string
			for _, m := range matches {
				got = append(got, m.OldAsset+"->"+m.NewAsset+"@"+m.Swap.Timestamp)
			}
			assert.Equal(t, tt.wantMatches, got)
			assert.Len(t, remaining, tt.wantRemaining)
			for _, rec := range remaining {
				assert.False(t, isRebrandingRow(rec))
			}
		})
	}
}

func TestGroupByTimestamp(t *testing.T) {
	records := []domain.RawRecord{
		row("2021-01-02 00:00:00", "Deposit", "BTC", "1", ""),
		row("2021-01-01 00:00:00", "Deposit", "ETH", "1", ""),
		row("2021-01-02 00:00:00", "Deposit", "BNB", "1", ""),
		row("2021-01-03 00:00:00", "Deposit", "ADA", "1", ""),
	}

	groups := GroupByTimestamp(records)

	require.Len(t, groups, 3)
	assert.Equal(t, "2021-01-02 00:00:00", groups[0].Timestamp)
	assert.Equal(t, "2021-01-01 00:00:00", groups[1].Timestamp)
	assert.Equal(t, "2021-01-03 00:00:00", groups[2].Timestamp)
	require.Len(t, groups[0].Records, 2)
	assert.Equal(t, "BTC", groups[0].Records[0].Asset)
	assert.Equal(t, "BNB", groups[0].Records[1].Asset)
}

func TestGroupByTimestamp_Empty(t *testing.T) {
	assert.Empty(t, GroupByTimestamp(nil))
}

func sampleExport() []domain.RawRecord {
	return []domain.RawRecord{
		row("2021-01-01 10:00:00", "Deposit", "BTC", "0.5", ""),
		row("2021-01-02 11:00:00", "Transaction Buy", "ETH", "1.0", ""),
		row("2021-01-02 11:00:00", "Transaction Spend", "USDT", "-3000", ""),
		row("2021-01-02 11:00:00", "Transaction Fee", "ETH", "-0.001", ""),
		row("2021-01-03 12:00:00", tokenSwap, "OLD", "-100", ""),
		row("2021-01-04 12:00:00", "Distribution", "NEW", "100", "OLD to NEW"),
		row("2021-01-05 09:00:00", "Withdraw", "BTC", "-0.1", ""),
		row("2021-01-06 09:00:00", "Binance Convert", "XRP", "-50", ""),
		row("2021-01-06 09:00:00", "Binance Convert", "ADA", "10", ""),
		row("2021-01-07 09:00:00", "Transaction Sold", "ETH", "-0.5", ""),
		row("2021-01-07 09:00:00", "Transaction Revenue", "USDT", "1500", ""),
		row("2021-01-07 09:00:00", "Transaction Fee", "USDT", "-1.5", ""),
		row("2021-01-08 09:00:00", "Savings Interest", "USDT", "0.01", ""),
		row("2021-01-09 09:00:00", tokenSwap, "ORPHAN", "-7", ""),
	}
}

func TestPartition(t *testing.T) {
	c := NewClassifier(testAccount, sequentialIDs())

	result, err := c.Partition(sampleExport())
	require.NoError(t, err)

	assert.Equal(t, 1, result.RebrandedPairs)
	assert.Equal(t, 6, result.Groups)
	assert.Equal(t, 1, result.UnrecognizedGroups)

	ledgers := result.Ledgers
	require.Len(t, ledgers.Intra, 2)
	require.Len(t, ledgers.In, 2)
	require.Len(t, ledgers.Out, 3)

	// Rebranding transfers are seeded ahead of group output.
	rebrand := ledgers.Intra[0]
	assert.Equal(t, "id-1", rebrand.UniqueID)
	assert.Equal(t, "OLD", rebrand.Asset)
	assert.Equal(t, "2021-01-03T12:00:00Z", rebrand.Timestamp)
	assert.Equal(t, "Binance", rebrand.FromExchange)
	assert.Equal(t, "Binance", rebrand.ToExchange)
	assert.Equal(t, "Alice", rebrand.FromHolder)
	assert.Equal(t, "Alice", rebrand.ToHolder)
	assert.Contains(t, rebrand.Notes, "OLD")
	assert.Contains(t, rebrand.Notes, "NEW")
	assertDecimal(t, "100", rebrand.CryptoSent)

	assert.Equal(t, "BTC", ledgers.Intra[1].Asset)
	assert.Equal(t, domain.ExternalExchange, ledgers.Intra[1].FromExchange)

	assert.Equal(t, "ETH", ledgers.In[0].Asset)
	assertDecimal(t, "0.999", ledgers.In[0].CryptoIn)
	assert.Equal(t, "ADA", ledgers.In[1].Asset)

	assert.Equal(t, "BTC", ledgers.Out[0].Asset)
	assert.Equal(t, "XRP", ledgers.Out[1].Asset)
	assert.Equal(t, "ETH", ledgers.Out[2].Asset)
	assertDecimal(t, "1498.5", ledgers.Out[2].FiatOutNoFee.Decimal)

	for _, tr := range ledgers.Intra {
		assert.NotEqual(t, "ORPHAN", tr.Asset)
	}
	for _, d := range ledgers.Out {
		assert.NotEqual(t, "ORPHAN", d.Asset)
	}
}

func TestPartition_Invariants(t *testing.T) {
	c := NewClassifier(testAccount, sequentialIDs())

	result, err := c.Partition(sampleExport())
	require.NoError(t, err)

	seen := make(map[string]bool)
	checkID := func(id string) {
		assert.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}

	for _, a := range result.Ledgers.In {
		checkID(a.UniqueID)
		assert.False(t, a.CryptoIn.IsNegative())
		assert.False(t, a.CryptoFee.IsNegative())
	}
	for _, d := range result.Ledgers.Out {
		checkID(d.UniqueID)
		assert.False(t, d.CryptoOutNoFee.IsNegative())
		assert.False(t, d.CryptoOutWithFee.IsNegative())
		assert.False(t, d.CryptoFee.IsNegative())
	}
	for _, tr := range result.Ledgers.Intra {
		checkID(tr.UniqueID)
		assert.True(t, tr.CryptoSent.Equal(tr.CryptoReceived))
		assert.False(t, tr.CryptoSent.IsNegative())
	}
}

func TestPartition_Deterministic(t *testing.T) {
	first, err := NewClassifier(testAccount, sequentialIDs()).Partition(sampleExport())
	require.NoError(t, err)
	second, err := NewClassifier(testAccount, sequentialIDs()).Partition(sampleExport())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPartition_MalformedRecord(t *testing.T) {
	tests := []struct {
		name      string
		records   []domain.RawRecord
		wantIndex int
		wantField string
	}{
		{
			name: "bad timestamp",
			records: []domain.RawRecord{
				row("2021-01-01 10:00:00", "Deposit", "BTC", "1", ""),
				row("01/02/2021 10:00", "Deposit", "BTC", "1", ""),
			},
			wantIndex: 1,
			wantField: "UTC_Time",
		},
		{
			name: "missing operation",
			records: []domain.RawRecord{
				row("2021-01-01 10:00:00", "", "BTC", "1", ""),
			},
			wantIndex: 0,
			wantField: "Operation",
		},
		{
			name: "missing asset",
			records: []domain.RawRecord{
				row("2021-01-01 10:00:00", "Deposit", "BTC", "1", ""),
				row("2021-01-01 10:00:00", "Deposit", "ETH", "1", ""),
				row("2021-01-01 10:00:00", "Deposit", " ", "1", ""),
			},
			wantIndex: 2,
			wantField: "Coin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			c := NewClassifier(testAccount, IDGeneratorFunc(func() string {
				calls++
				return "unused"
			}))

			result, err := c.Partition(tt.records)

			assert.Nil(t, result)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMalformedRecord))

			var recErr *domain.RecordError
			require.True(t, errors.As(err, &recErr))
			assert.Equal(t, tt.wantIndex, recErr.Index)
			assert.Equal(t, tt.wantField, recErr.Field)
			assert.Zero(t, calls, "no record may be produced before validation passes")
		})
	}
}

func TestPartition_Empty(t *testing.T) {
	result, err := NewClassifier(testAccount, sequentialIDs()).Partition(nil)
	require.NoError(t, err)
	assert.Empty(t, result.Ledgers.In)
	assert.Empty(t, result.Ledgers.Out)
	assert.Empty(t, result.Ledgers.Intra)
	assert.Zero(t, result.Groups)
}
