package ports

import (
	"context"
	"time"

	"github.com/softtronics/msw-portal/internal/core/domain"
)

// ERPClient fetches BAQ report rows from the upstream ERP API.
type ERPClient interface {
	FetchInventory(ctx context.Context) ([]domain.InventoryRow, error)
	FetchTransactions(ctx context.Context) ([]domain.TransactionRow, error)
}

// MirrorRepository persists mirrored ERP data and its archival snapshots.
type MirrorRepository interface {
	// ReplaceInventory atomically swaps the inventory mirror for rows.
	ReplaceInventory(ctx context.Context, rows []domain.InventoryRow) error
	ReplaceTransactions(ctx context.Context, rows []domain.TransactionRow) error
	// ArchiveInventory copies the current mirror into the archive collection,
	// stamped with the snapshot date.
	ArchiveInventory(ctx context.Context, date time.Time) error
	ArchiveTransactions(ctx context.Context, date time.Time) error
}

// MirrorService runs the scheduled mirror and archive jobs.
type MirrorService interface {
	RefreshInventory(ctx context.Context) error
	RefreshTransactions(ctx context.Context) error
	ArchiveInventory(ctx context.Context) error
	ArchiveTransactions(ctx context.Context) error
}
