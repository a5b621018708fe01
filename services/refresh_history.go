package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"
)

const maxMemoryRuns = 100

// RefreshHistory persists scheduler runs.
type RefreshHistory interface {
	Record(ctx context.Context, run *models.RefreshRun) error
	List(ctx context.Context, limit int) ([]models.RefreshRun, error)
}

// PostgresRefreshHistory inserts through pgx and reads through gorm.
type PostgresRefreshHistory struct {
	pool *pgxpool.Pool
	db   *gorm.DB
}

func NewPostgresRefreshHistory(pool *pgxpool.Pool, db *gorm.DB) *PostgresRefreshHistory {
	return &PostgresRefreshHistory{pool: pool, db: db}
}

// Migrate creates the refresh_runs table when missing.
func (h *PostgresRefreshHistory) Migrate() error {
	if err := h.db.AutoMigrate(&models.RefreshRun{}); err != nil {
		return fmt.Errorf("failed to migrate refresh_runs: %w", err)
	}
	return nil
}

func (h *PostgresRefreshHistory) Record(ctx context.Context, run *models.RefreshRun) error {
	_, err := h.pool.Exec(ctx, `
		INSERT INTO refresh_runs (id, start_date, end_date, order_count, source, error, summary, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		run.ID, run.StartDate, run.EndDate, run.OrderCount, run.Source, run.Error,
		[]byte(run.Summary), run.StartedAt, run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert refresh run: %w", err)
	}
	return nil
}

func (h *PostgresRefreshHistory) List(ctx context.Context, limit int) ([]models.RefreshRun, error) {
	var runs []models.RefreshRun
	if err := h.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list refresh runs: %w", err)
	}
	return runs, nil
}

// MemoryRefreshHistory keeps the latest runs when no database is configured.
type MemoryRefreshHistory struct {
	mu   sync.Mutex
	runs []models.RefreshRun
}

func NewMemoryRefreshHistory() *MemoryRefreshHistory {
	return &MemoryRefreshHistory{}
}

func (h *MemoryRefreshHistory) Record(_ context.Context, run *models.RefreshRun) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.runs = append(h.runs, *run)
	if len(h.runs) > maxMemoryRuns {
		h.runs = h.runs[len(h.runs)-maxMemoryRuns:]
	}
	return nil
}

// List returns newest first.
func (h *MemoryRefreshHistory) List(_ context.Context, limit int) ([]models.RefreshRun, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]models.RefreshRun, 0, min(limit, len(h.runs)))
	for i := len(h.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, h.runs[i])
	}
	return out, nil
}
