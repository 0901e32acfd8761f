package domain

import "github.com/shopspring/decimal"

// TransactionType is the DaLI transaction tag of an in/out ledger row.
type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "BUY"
	TransactionTypeSell TransactionType = "SELL"
)

const (
	// UnknownSpotPrice tells DaLI to look the price up itself.
	UnknownSpotPrice = "__unknown"

	// ExternalExchange is the source of deposits coming from outside the exchange.
	ExternalExchange = "External"
)

// Account identifies the exchange and holder the export belongs to.
type Account struct {
	Exchange string `json:"exchange"`
	Holder   string `json:"holder"`
}

// Acquisition is a row of the "in" ledger.
type Acquisition struct {
	UniqueID        string              `json:"unique_id"`
	Timestamp       string              `json:"timestamp"`
	Asset           string              `json:"asset"`
	Exchange        string              `json:"exchange"`
	Holder          string              `json:"holder"`
	TransactionType TransactionType     `json:"transaction_type"`
	SpotPrice       string              `json:"spot_price"`
	CryptoIn        decimal.Decimal     `json:"crypto_in"`
	CryptoFee       decimal.Decimal     `json:"crypto_fee"`
	FiatInNoFee     decimal.NullDecimal `json:"fiat_in_no_fee"`
	FiatInWithFee   decimal.NullDecimal `json:"fiat_in_with_fee"`
	FiatFee         decimal.NullDecimal `json:"fiat_fee"`
	FiatTicker      string              `json:"fiat_ticker,omitempty"` // Not a DaLI in-table column
	Notes           string              `json:"notes"`
}

// Disposal is a row of the "out" ledger.
type Disposal struct {
	UniqueID         string              `json:"unique_id"`
	Timestamp        string              `json:"timestamp"`
	Asset            string              `json:"asset"`
	Exchange         string              `json:"exchange"`
	Holder           string              `json:"holder"`
	TransactionType  TransactionType     `json:"transaction_type"`
	SpotPrice        string              `json:"spot_price"`
	CryptoOutNoFee   decimal.Decimal     `json:"crypto_out_no_fee"`
	CryptoFee        decimal.Decimal     `json:"crypto_fee"`
	CryptoOutWithFee decimal.Decimal     `json:"crypto_out_with_fee"`
	FiatOutNoFee     decimal.NullDecimal `json:"fiat_out_no_fee"`
	FiatFee          decimal.NullDecimal `json:"fiat_fee"`
	FiatTicker       string              `json:"fiat_ticker"`
	Notes            string              `json:"notes"`
}

// Transfer is a row of the "intra" ledger. Transfer fees are not modeled,
// so CryptoSent and CryptoReceived are always equal.
type Transfer struct {
	UniqueID       string          `json:"unique_id"`
	Timestamp      string          `json:"timestamp"`
	Asset          string          `json:"asset"`
	FromExchange   string          `json:"from_exchange"`
	FromHolder     string          `json:"from_holder"`
	ToExchange     string          `json:"to_exchange"`
	ToHolder       string          `json:"to_holder"`
	SpotPrice      string          `json:"spot_price"`
	CryptoSent     decimal.Decimal `json:"crypto_sent"`
	CryptoReceived decimal.Decimal `json:"crypto_received"`
	Notes          string          `json:"notes"`
}

// Ledgers holds the three normalized output sequences, in emission order.
type Ledgers struct {
	In    []Acquisition `json:"in"`
	Out   []Disposal    `json:"out"`
	Intra []Transfer    `json:"intra"`
}

// Append concatenates other's records after the receiver's.
func (l *Ledgers) Append(other Ledgers) {
	l.In = append(l.In, other.In...)
	l.Out = append(l.Out, other.Out...)
	l.Intra = append(l.Intra, other.Intra...)
}

// LedgerFiles lists the paths a set of ledgers was written to.
type LedgerFiles struct {
	In    string `json:"in"`
	Out   string `json:"out"`
	Intra string `json:"intra"`
}

// ConversionSummary is the top-level structure printed after a successful run.
type ConversionSummary struct {
	InputFile      string      `json:"input_file"`
	RecordsRead    int         `json:"records_read"`
	InRecords      int         `json:"in_records"`
	OutRecords     int         `json:"out_records"`
	IntraRecords   int         `json:"intra_records"`
	RebrandedPairs int         `json:"rebranded_pairs"`
	Groups         int         `json:"groups"`
	Files          LedgerFiles `json:"files"`
}
