package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	DefaultRefreshInterval = 20 * time.Minute
	refreshRunTimeout      = 3 * time.Minute
)

// Refresher is implemented by OrderService.
type Refresher interface {
	Refresh(ctx context.Context, r models.DateRange) (*LoadResult, error)
	Today() string
}

// RefreshScheduler re-fetches one date range on a fixed period until stopped.
type RefreshScheduler struct {
	refresher Refresher
	history   RefreshHistory
	notifier  Notifier
	interval  time.Duration

	// ctrl serializes Start and Stop; mu guards the fields below.
	ctrl      sync.Mutex
	mu        sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
	rng       *models.DateRange
	lastRunAt *time.Time
	nextRunAt *time.Time
	lastCount int
	lastErr   string
	runs      int
}

// NewRefreshScheduler builds a stopped scheduler. notifier may be nil.
func NewRefreshScheduler(refresher Refresher, history RefreshHistory, notifier Notifier, interval time.Duration) *RefreshScheduler {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if history == nil {
		history = NewMemoryRefreshHistory()
	}
	return &RefreshScheduler{
		refresher: refresher,
		history:   history,
		notifier:  notifier,
		interval:  interval,
	}
}

// Start validates r, runs one refresh immediately and then every interval. Starting while
// running replaces the previous range.
func (s *RefreshScheduler) Start(r models.DateRange) error {
	if err := r.Validate(s.refresher.Today()); err != nil {
		return err
	}

	s.ctrl.Lock()
	defer s.ctrl.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		log.Printf("[auto-refresh] replacing range=%s with %s", s.rng, r)
		s.stopLocked()
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	rc := r
	s.cancel = cancel
	s.done = done
	s.rng = &rc
	s.runs = 0
	s.lastErr = ""
	next := time.Now()
	s.nextRunAt = &next

	go s.loop(ctx, rc, done)
	log.Printf("[auto-refresh] started range=%s interval=%s", r, s.interval)
	return nil
}

// Stop cancels the loop and waits for an in-flight run to return.
func (s *RefreshScheduler) Stop() error {
	s.ctrl.Lock()
	defer s.ctrl.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return models.ErrSchedulerStopped
	}
	s.stopLocked()
	log.Printf("[auto-refresh] stopped")
	return nil
}

func (s *RefreshScheduler) stopLocked() {
	s.cancel()
	done := s.done
	s.cancel = nil
	s.done = nil
	s.nextRunAt = nil

	// the loop takes s.mu to record results
	s.mu.Unlock()
	<-done
	s.mu.Lock()
}

func (s *RefreshScheduler) Status() models.RefreshStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.RefreshStatus{
		Running:        s.cancel != nil,
		Range:          s.rng,
		Interval:       s.interval.String(),
		LastRunAt:      s.lastRunAt,
		NextRunAt:      s.nextRunAt,
		LastOrderCount: s.lastCount,
		LastError:      s.lastErr,
		Runs:           s.runs,
	}
}

// History returns up to limit runs, newest first.
func (s *RefreshScheduler) History(ctx context.Context, limit int) ([]models.RefreshRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.history.List(ctx, limit)
}

func (s *RefreshScheduler) loop(ctx context.Context, r models.DateRange, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runOnce(ctx, r)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, r)
		}
	}
}

func (s *RefreshScheduler) runOnce(ctx context.Context, r models.DateRange) {
	runCtx, cancel := context.WithTimeout(ctx, refreshRunTimeout)
	defer cancel()

	run := &models.RefreshRun{
		ID:        uuid.New(),
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		StartedAt: time.Now().UTC(),
	}

	res, err := s.refresher.Refresh(runCtx, r)
	run.FinishedAt = time.Now().UTC()
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		msg := err.Error()
		run.Error = &msg
		log.Printf("[auto-refresh] ERROR range=%s err=%v", r, err)
	} else {
		run.OrderCount = len(res.Orders)
		run.Source = res.Source
		if summary, mErr := json.Marshal(BuildRetailerReport(res.Orders, &r).Totals); mErr == nil {
			run.Summary = datatypes.JSON(summary)
		}
		log.Printf("[auto-refresh] range=%s orders=%d source=%s", r, run.OrderCount, run.Source)
	}

	if err := s.history.Record(runCtx, run); err != nil {
		log.Printf("[auto-refresh] WARN history record failed err=%v", err)
	}
	s.notify(runCtx, run)

	s.mu.Lock()
	defer s.mu.Unlock()
	finished := run.FinishedAt
	s.lastRunAt = &finished
	s.runs++
	s.lastCount = run.OrderCount
	s.lastErr = ""
	if run.Error != nil {
		s.lastErr = *run.Error
	}
	if s.cancel != nil {
		next := finished.Add(s.interval)
		s.nextRunAt = &next
	}
}

func (s *RefreshScheduler) notify(ctx context.Context, run *models.RefreshRun) {
	if s.notifier == nil {
		return
	}
	text := fmt.Sprintf("🔄 Orders refreshed %s..%s: %d orders (%s)", run.StartDate, run.EndDate, run.OrderCount, run.Source)
	if run.Error != nil {
		text = fmt.Sprintf("❌ Order refresh %s..%s failed: %s", run.StartDate, run.EndDate, *run.Error)
	}
	if err := s.notifier.Notify(ctx, text); err != nil {
		log.Printf("[auto-refresh] WARN notify failed err=%v", err)
	}
}
