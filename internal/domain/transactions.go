package domain

import "github.com/shopspring/decimal"

// OperationKind is the closed set of Binance operation labels the converter understands.
// Declaration order is the order in which a group's patterns are evaluated.
type OperationKind int

const (
	OperationUnrecognized OperationKind = iota
	OperationConvert
	OperationDeposit
	OperationWithdraw
	OperationBuy
	OperationSold
	OperationSpend
	OperationRevenue
	OperationFee
	OperationTokenSwap
	OperationDistribution
)

var operationLabels = map[OperationKind]string{
	OperationDeposit:      "Deposit",
	OperationWithdraw:     "Withdraw",
	OperationConvert:      "Binance Convert",
	OperationBuy:          "Transaction Buy",
	OperationSpend:        "Transaction Spend",
	OperationSold:         "Transaction Sold",
	OperationRevenue:      "Transaction Revenue",
	OperationFee:          "Transaction Fee",
	OperationTokenSwap:    "Token Swap - Redenomination/Rebranding",
	OperationDistribution: "Distribution",
}

var operationsByLabel = func() map[string]OperationKind {
	m := make(map[string]OperationKind, len(operationLabels))
	for kind, label := range operationLabels {
		m[label] = kind
	}
	return m
}()

// ParseOperation maps an exchange label to its kind. Unknown labels map to OperationUnrecognized.
func ParseOperation(label string) OperationKind {
	return operationsByLabel[label]
}

// String returns the exchange label, or "unrecognized".
func (k OperationKind) String() string {
	if label, ok := operationLabels[k]; ok {
		return label
	}
	return "unrecognized"
}

// RawRecord represents one row of the Binance transaction export.
type RawRecord struct {
	Timestamp string          `json:"utc_time"` // "2006-01-02 15:04:05", UTC
	Operation string          `json:"operation"`
	Asset     string          `json:"coin"`
	Change    decimal.Decimal `json:"change"` // Signed
	Remark    string          `json:"remark"`
}

// Kind returns the parsed operation kind of the row.
func (r RawRecord) Kind() OperationKind {
	return ParseOperation(r.Operation)
}
