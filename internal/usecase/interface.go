package usecase

import (
	"context"

	"binance-preproc/internal/domain"
)

// RecordRepository defines the interface for fetching raw export rows.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go
type RecordRepository interface {
	GetRecords(ctx context.Context, path string) ([]domain.RawRecord, error)
}

// LedgerWriter persists the three normalized ledgers.
type LedgerWriter interface {
	WriteLedgers(ctx context.Context, dir string, ledgers domain.Ledgers) (*domain.LedgerFiles, error)
}
