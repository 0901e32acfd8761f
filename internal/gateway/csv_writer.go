package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"binance-preproc/internal/domain"
)

// File names of the DaLI manual plugin ledgers.
const (
	InFileName    = "in_csv_file.csv"
	OutFileName   = "out_csv_file.csv"
	IntraFileName = "intra_csv_file.csv"
)

var (
	inHeader = []string{
		"Unique ID", "Timestamp", "Asset", "Exchange", "Holder", "Transaction Type",
		"Spot Price", "Crypto In", "Crypto Fee", "Fiat In No Fee", "Fiat In With Fee",
		"Fiat Fee", "Notes",
	}
	outHeader = []string{
		"Unique ID", "Timestamp", "Asset", "Exchange", "Holder", "Transaction Type",
		"Spot Price", "Crypto Out No Fee", "Crypto Fee", "Crypto Out With Fee",
		"Fiat Out No Fee", "Fiat Fee", "Fiat Ticker", "Notes",
	}
	intraHeader = []string{
		"Unique ID", "Timestamp", "Asset", "From Exchange", "From Holder",
		"To Exchange", "To Holder", "Spot Price", "Crypto Sent", "Crypto Received", "Notes",
	}
)

// CSVLedgerWriter implements the LedgerWriter interface with DaLI manual CSV files.
type CSVLedgerWriter struct{}

// NewCSVLedgerWriter creates a new writer instance.
func NewCSVLedgerWriter() *CSVLedgerWriter {
	return &CSVLedgerWriter{}
}

type ledgerFile struct {
	name   string
	header []string
	rows   [][]string
}

// WriteLedgers writes the three ledgers into dir, creating it if needed.
// Either all three files are replaced or none is: each ledger goes to a
// temporary file first and is renamed once all of them are complete.
func (w *CSVLedgerWriter) WriteLedgers(ctx context.Context, dir string, ledgers domain.Ledgers) (*domain.LedgerFiles, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	files := []ledgerFile{
		{name: InFileName, header: inHeader, rows: acquisitionRows(ledgers.In)},
		{name: OutFileName, header: outHeader, rows: disposalRows(ledgers.Out)},
		{name: IntraFileName, header: intraHeader, rows: transferRows(ledgers.Intra)},
	}

	temps := make([]string, 0, len(files))
	cleanup := func() {
		for _, tmp := range temps {
			os.Remove(tmp)
		}
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			cleanup()
			return nil, err
		}
		tmp, err := writeTemp(dir, f)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("failed to write %s: %w", f.name, err)
		}
		temps = append(temps, tmp)
	}

	for i, f := range files {
		if err := os.Rename(temps[i], filepath.Join(dir, f.name)); err != nil {
			cleanup()
			return nil, fmt.Errorf("failed to move %s into place: %w", f.name, err)
		}
	}

	return &domain.LedgerFiles{
		In:    filepath.Join(dir, InFileName),
		Out:   filepath.Join(dir, OutFileName),
		Intra: filepath.Join(dir, IntraFileName),
	}, nil
}

func writeTemp(dir string, f ledgerFile) (string, error) {
	tmp, err := os.CreateTemp(dir, f.name+".*.tmp")
	if err != nil {
		return "", err
	}

	writer := csv.NewWriter(tmp)
	if err := writer.Write(f.header); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := writer.WriteAll(f.rows); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func formatNull(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

func acquisitionRows(in []domain.Acquisition) [][]string {
	rows := make([][]string, 0, len(in))
	for _, tx := range in {
		rows = append(rows, []string{
			tx.UniqueID, tx.Timestamp, tx.Asset, tx.Exchange, tx.Holder,
			string(tx.TransactionType), tx.SpotPrice, tx.CryptoIn.String(), tx.CryptoFee.String(),
			formatNull(tx.FiatInNoFee), formatNull(tx.FiatInWithFee), formatNull(tx.FiatFee), tx.Notes,
		})
	}
	return rows
}

func disposalRows(out []domain.Disposal) [][]string {
	rows := make([][]string, 0, len(out))
	for _, tx := range out {
		rows = append(rows, []string{
			tx.UniqueID, tx.Timestamp, tx.Asset, tx.Exchange, tx.Holder,
			string(tx.TransactionType), tx.SpotPrice, tx.CryptoOutNoFee.String(),
			tx.CryptoFee.String(), tx.CryptoOutWithFee.String(), formatNull(tx.FiatOutNoFee),
			formatNull(tx.FiatFee), tx.FiatTicker, tx.Notes,
		})
	}
	return rows
}

func transferRows(intra []domain.Transfer) [][]string {
	rows := make([][]string, 0, len(intra))
	for _, tx := range intra {
		rows = append(rows, []string{
			tx.UniqueID, tx.Timestamp, tx.Asset, tx.FromExchange,
			tx.FromHolder, tx.ToExchange, tx.ToHolder, tx.SpotPrice,
			tx.CryptoSent.String(), tx.CryptoReceived.String(), tx.Notes,
		})
	}
	return rows
}
