package usecase

import (
	"context"
	"fmt"

	"binance-preproc/internal/classify"
	"binance-preproc/internal/domain"
	"binance-preproc/internal/logger"
)

// ConversionUseCase orchestrates the conversion of one export into DaLI ledgers.
type ConversionUseCase struct {
	repo   RecordRepository
	writer LedgerWriter
	ids    classify.IDGenerator
}

// NewConversionUseCase creates a new instance of the usecase.
func NewConversionUseCase(repo RecordRepository, writer LedgerWriter, ids classify.IDGenerator) *ConversionUseCase {
	return &ConversionUseCase{repo: repo, writer: writer, ids: ids}
}

// Convert reads inputPath, classifies its rows for account and writes the
// three ledgers into outDir. Nothing is written when the input is malformed.
func (uc *ConversionUseCase) Convert(ctx context.Context, inputPath, outDir string, account domain.Account) (*domain.ConversionSummary, error) {
	log := logger.FromContext(ctx)

	// Step 1: Data Ingestion
	records, err := uc.repo.GetRecords(ctx, inputPath)
	if err != nil {
		return nil, fmt.Errorf("could not get export records: %w", err)
	}
	log.Info("Read export records", "file", inputPath, "records", len(records))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 2: Classification
	result, err := classify.NewClassifier(account, uc.ids).Partition(records)
	if err != nil {
		return nil, fmt.Errorf("could not classify export records: %w", err)
	}
	log.Info("Grouped export records",
		"groups", result.Groups,
		"rebranded_pairs", result.RebrandedPairs,
	)
	if result.UnrecognizedGroups > 0 {
		log.Debug("Groups without a recognized operation were skipped", "groups", result.UnrecognizedGroups)
	}

	// Step 3: Ledger Output
	files, err := uc.writer.WriteLedgers(ctx, outDir, result.Ledgers)
	if err != nil {
		return nil, fmt.Errorf("could not write ledgers: %w", err)
	}

	summary := &domain.ConversionSummary{
		InputFile:      inputPath,
		RecordsRead:    len(records),
		InRecords:      len(result.Ledgers.In),
		OutRecords:     len(result.Ledgers.Out),
		IntraRecords:   len(result.Ledgers.Intra),
		RebrandedPairs: result.RebrandedPairs,
		Groups:         result.Groups,
		Files:          *files,
	}
	log.Info("Generated ledgers",
		"in", summary.InRecords,
		"out", summary.OutRecords,
		"intra", summary.IntraRecords,
	)
	return summary, nil
}
