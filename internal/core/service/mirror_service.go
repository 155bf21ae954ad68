package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/softtronics/msw-portal/internal/api/metrics"
	"github.com/softtronics/msw-portal/internal/core/ports"
)

// MirrorSvc mirrors ERP inventory and transaction data into the local store
// and writes daily archival snapshots. It runs off the request path on cron
// timers; failures are logged and the next run proceeds normally.
type MirrorSvc struct {
	erp  ports.ERPClient
	repo ports.MirrorRepository
	log  zerolog.Logger
}

func NewMirrorService(erp ports.ERPClient, repo ports.MirrorRepository, log zerolog.Logger) *MirrorSvc {
	return &MirrorSvc{erp: erp, repo: repo, log: log}
}

func (s *MirrorSvc) RefreshInventory(ctx context.Context) error {
	rows, err := s.erp.FetchInventory(ctx)
	if err != nil {
		metrics.MirrorRunsTotal.WithLabelValues("inventory", "error").Inc()
		return fmt.Errorf("fetch inventory: %w", err)
	}
	if err := s.repo.ReplaceInventory(ctx, rows); err != nil {
		metrics.MirrorRunsTotal.WithLabelValues("inventory", "error").Inc()
		return fmt.Errorf("replace inventory: %w", err)
	}

	metrics.MirrorRunsTotal.WithLabelValues("inventory", "success").Inc()
	metrics.MirrorRows.WithLabelValues("inventory").Set(float64(len(rows)))
	s.log.Info().Int("rows", len(rows)).Msg("inventory mirror refreshed")
	return nil
}

func (s *MirrorSvc) RefreshTransactions(ctx context.Context) error {
	rows, err := s.erp.FetchTransactions(ctx)
	if err != nil {
		metrics.MirrorRunsTotal.WithLabelValues("transactions", "error").Inc()
		return fmt.Errorf("fetch transactions: %w", err)
	}
	if err := s.repo.ReplaceTransactions(ctx, rows); err != nil {
		metrics.MirrorRunsTotal.WithLabelValues("transactions", "error").Inc()
		return fmt.Errorf("replace transactions: %w", err)
	}

	metrics.MirrorRunsTotal.WithLabelValues("transactions", "success").Inc()
	metrics.MirrorRows.WithLabelValues("transactions").Set(float64(len(rows)))
	s.log.Info().Int("rows", len(rows)).Msg("transaction mirror refreshed")
	return nil
}

func (s *MirrorSvc) ArchiveInventory(ctx context.Context) error {
	date := snapshotDate()
	if err := s.repo.ArchiveInventory(ctx, date); err != nil {
		metrics.MirrorRunsTotal.WithLabelValues("inventory_archive", "error").Inc()
		return fmt.Errorf("archive inventory: %w", err)
	}
	metrics.MirrorRunsTotal.WithLabelValues("inventory_archive", "success").Inc()
	s.log.Info().Time("date", date).Msg("inventory archived")
	return nil
}

func (s *MirrorSvc) ArchiveTransactions(ctx context.Context) error {
	date := snapshotDate()
	if err := s.repo.ArchiveTransactions(ctx, date); err != nil {
		metrics.MirrorRunsTotal.WithLabelValues("transaction_archive", "error").Inc()
		return fmt.Errorf("archive transactions: %w", err)
	}
	metrics.MirrorRunsTotal.WithLabelValues("transaction_archive", "success").Inc()
	s.log.Info().Time("date", date).Msg("transactions archived")
	return nil
}

// snapshotDate truncates to the calendar day, matching the DATE column the
// upstream archive tables used.
func snapshotDate() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
