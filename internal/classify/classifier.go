package classify

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"binance-preproc/internal/domain"
)

const (
	tradeFiatTicker    = "USDT"
	withdrawFiatTicker = "USD"
)

// IDGenerator produces a fresh unique identifier per ledger record.
type IDGenerator interface {
	NewID() string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() string

func (f IDGeneratorFunc) NewID() string { return f() }

// Classifier turns raw export rows into ledger records for one account.
type Classifier struct {
	account domain.Account
	ids     IDGenerator
}

// NewClassifier creates a classifier emitting records for account.
func NewClassifier(account domain.Account, ids IDGenerator) *Classifier {
	return &Classifier{account: account, ids: ids}
}

// ClassifyGroup emits the records of every pattern present in a timestamp group.
// Patterns are not exclusive. A group matching none of them yields empty ledgers.
// The group timestamp must be a valid export timestamp; Partition checks this up front.
func (c *Classifier) ClassifyGroup(group Group) domain.Ledgers {
	var out domain.Ledgers
	if len(group.Records) == 0 {
		return out
	}

	instant := mustNormalize(group.Timestamp)
	idx := indexGroup(group.Records)

	for _, kind := range idx.kinds() {
		switch kind {
		case domain.OperationConvert:
			for _, rec := range idx.rows(kind) {
				c.convert(&out, instant, rec)
			}
		case domain.OperationDeposit:
			for _, rec := range idx.rows(kind) {
				if rec.Change.IsPositive() {
					out.Intra = append(out.Intra, c.deposit(instant, rec))
				}
			}
		case domain.OperationWithdraw:
			for _, rec := range idx.rows(kind) {
				out.Out = append(out.Out, c.withdraw(instant, rec))
			}
		case domain.OperationBuy:
			out.In = append(out.In, c.buy(instant, idx))
		case domain.OperationSold:
			out.Out = append(out.Out, c.sell(instant, idx))
		case domain.OperationSpend, domain.OperationRevenue, domain.OperationFee:
			// Trade legs, consumed by the Buy and Sold patterns.
		case domain.OperationTokenSwap, domain.OperationDistribution, domain.OperationUnrecognized:
			// No output.
		}
	}
	return out
}

func (c *Classifier) convert(out *domain.Ledgers, instant string, rec domain.RawRecord) {
	switch {
	case rec.Change.IsPositive():
		out.In = append(out.In, domain.Acquisition{
			UniqueID:        c.ids.NewID(),
			Timestamp:       instant,
			Asset:           rec.Asset,
			Exchange:        c.account.Exchange,
			Holder:          c.account.Holder,
			TransactionType: domain.TransactionTypeBuy,
			SpotPrice:       domain.UnknownSpotPrice,
			CryptoIn:        rec.Change,
			CryptoFee:       decimal.Zero,
			Notes:           fmt.Sprintf("Converted to %s %s", rec.Change, rec.Asset),
		})
	case rec.Change.IsNegative():
		amount := rec.Change.Abs()
		out.Out = append(out.Out, domain.Disposal{
			UniqueID:         c.ids.NewID(),
			Timestamp:        instant,
			Asset:            rec.Asset,
			Exchange:         c.account.Exchange,
			Holder:           c.account.Holder,
			TransactionType:  domain.TransactionTypeSell,
			SpotPrice:        domain.UnknownSpotPrice,
			CryptoOutNoFee:   amount,
			CryptoFee:        decimal.Zero,
			CryptoOutWithFee: amount,
			Notes:            fmt.Sprintf("Converted %s %s", amount, rec.Asset),
		})
	}
}

func (c *Classifier) deposit(instant string, rec domain.RawRecord) domain.Transfer {
	notes := "Deposit of " + rec.Asset
	if strings.Contains(rec.Remark, "Mining") {
		notes += " (Mining)"
	}
	return domain.Transfer{
		UniqueID:       c.ids.NewID(),
		Timestamp:      instant,
		Asset:          rec.Asset,
		FromExchange:   domain.ExternalExchange,
		FromHolder:     c.account.Holder,
		ToExchange:     c.account.Exchange,
		ToHolder:       c.account.Holder,
		SpotPrice:      domain.UnknownSpotPrice,
		CryptoSent:     rec.Change,
		CryptoReceived: rec.Change,
		Notes:          notes,
	}
}

// withdraw tags every withdrawal as a SELL. Binance reports the amount with the fee included.
func (c *Classifier) withdraw(instant string, rec domain.RawRecord) domain.Disposal {
	amount := rec.Change.Abs()
	notes := rec.Remark
	if notes == "" {
		notes = "Withdrawal"
	}
	return domain.Disposal{
		UniqueID:         c.ids.NewID(),
		Timestamp:        instant,
		Asset:            rec.Asset,
		Exchange:         c.account.Exchange,
		Holder:           c.account.Holder,
		TransactionType:  domain.TransactionTypeSell,
		SpotPrice:        domain.UnknownSpotPrice,
		CryptoOutNoFee:   amount,
		CryptoFee:        decimal.Zero,
		CryptoOutWithFee: amount,
		FiatTicker:       withdrawFiatTicker,
		Notes:            notes,
	}
}

// buy aggregates the Buy, Spend and Fee legs of a group into one acquisition.
func (c *Classifier) buy(instant string, idx groupIndex) domain.Acquisition {
	asset := firstAsset(idx.rows(domain.OperationBuy))
	bought := sum(idx.rowsFor(domain.OperationBuy, asset))
	fee := sumAbs(negative(idx.rowsFor(domain.OperationFee, asset)))
	spent := sumAbs(idx.rows(domain.OperationSpend))
	received := bought.Sub(fee)

	return domain.Acquisition{
		UniqueID:        c.ids.NewID(),
		Timestamp:       instant,
		Asset:           asset,
		Exchange:        c.account.Exchange,
		Holder:          c.account.Holder,
		TransactionType: domain.TransactionTypeBuy,
		SpotPrice:       domain.UnknownSpotPrice,
		CryptoIn:        received,
		CryptoFee:       fee,
		FiatInNoFee:     decimal.NewNullDecimal(spent),
		FiatInWithFee:   decimal.NewNullDecimal(spent),
		FiatTicker:      tradeFiatTicker,
		Notes:           fmt.Sprintf("Bought %s %s for %s %s", received, asset, spent, tradeFiatTicker),
	}
}

// sell aggregates the Sold, Revenue and Fee legs of a group into one disposal.
// The fee is taken from the revenue asset, so the fiat proceeds are net of it.
func (c *Classifier) sell(instant string, idx groupIndex) domain.Disposal {
	asset := firstAsset(idx.rows(domain.OperationSold))
	sold := sumAbs(idx.rowsFor(domain.OperationSold, asset))
	revenueRows := idx.rows(domain.OperationRevenue)
	revenue := sum(revenueRows)
	ticker := lastAsset(revenueRows, tradeFiatTicker)
	fee := sumAbs(negative(idx.rowsFor(domain.OperationFee, ticker)))
	proceeds := revenue.Sub(fee)

	return domain.Disposal{
		UniqueID:         c.ids.NewID(),
		Timestamp:        instant,
		Asset:            asset,
		Exchange:         c.account.Exchange,
		Holder:           c.account.Holder,
		TransactionType:  domain.TransactionTypeSell,
		SpotPrice:        domain.UnknownSpotPrice,
		CryptoOutNoFee:   sold,
		CryptoFee:        decimal.Zero,
		CryptoOutWithFee: sold,
		FiatOutNoFee:     decimal.NewNullDecimal(proceeds),
		FiatFee:          decimal.NewNullDecimal(fee),
		FiatTicker:       ticker,
		Notes:            fmt.Sprintf("Sold %s %s for %s %s", sold, asset, proceeds, ticker),
	}
}
