package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"binance-preproc/internal/domain"
)

// Column names of the Binance transaction history export.
const (
	columnTime      = "UTC_Time"
	columnOperation = "Operation"
	columnCoin      = "Coin"
	columnChange    = "Change"
	columnRemark    = "Remark"
)

var requiredColumns = []string{columnTime, columnOperation, columnCoin, columnChange}

// CSVRecordRepository implements the RecordRepository interface for Binance CSV exports.
type CSVRecordRepository struct{}

// NewCSVRecordRepository creates a new repository instance.
func NewCSVRecordRepository() *CSVRecordRepository {
	return &CSVRecordRepository{}
}

// GetRecords reads and parses a Binance export file.
// Rows with a blank UTC_Time are skipped.
func (r *CSVRecordRepository) GetRecords(ctx context.Context, path string) ([]domain.RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export file %s: %w", path, err)
	}
	defer file.Close()

	records, err := ParseRecords(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// ParseRecords reads a Binance export from r. Columns are located by header
// name; extra columns such as User_ID or Account are ignored.
func ParseRecords(r io.Reader) ([]domain.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	columns, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var records []domain.RawRecord
	index := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record: %w", err)
		}

		field := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		if field(columnTime) == "" {
			continue
		}

		change, err := decimal.NewFromString(field(columnChange))
		if err != nil {
			return nil, &domain.RecordError{Index: index, Field: columnChange, Value: field(columnChange), Err: err}
		}

		records = append(records, domain.RawRecord{
			Timestamp: field(columnTime),
			Operation: field(columnOperation),
			Asset:     field(columnCoin),
			Change:    change,
			Remark:    field(columnRemark),
		})
		index++
	}
	return records, nil
}

func indexColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		// Excel exports may prefix the first column with a byte order mark.
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing column %q in header: %w", name, domain.ErrMalformedRecord)
		}
	}
	return columns, nil
}
