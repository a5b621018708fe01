package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
)

type fakeFetcher struct {
	csv   string
	err   error
	calls int
}

func (f *fakeFetcher) FetchOrdersCSV(_ context.Context, _ models.DateRange) (string, error) {
	f.calls++
	return f.csv, f.err
}

const twoOrderCSV = "OrderNumber,Date,CustomerName,RetailerName,Status,Revenue\n" +
	"A-1,10/02/2026,NetJets,Freshco,Delivered,100.00\n" +
	"A-2,10/03/2026,VistaJet,Harbor Deli,Pending,50.00\n"

func newTestOrderService(f *fakeFetcher, allowSample bool) *OrderService {
	s := NewOrderService(f, NewOrderNormalizer(time.UTC), NewMemoryOrderCache(time.Minute), allowSample, time.UTC)
	s.now = func() time.Time { return time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestLoadOrdersUsesCache(t *testing.T) {
	f := &fakeFetcher{csv: twoOrderCSV}
	s := newTestOrderService(f, false)

	first, err := s.LoadOrders(context.Background(), octRange)
	if err != nil {
		t.Fatalf("LoadOrders: %v", err)
	}
	if first.Source != SourceAPI || len(first.Orders) != 2 {
		t.Fatalf("first load = %s/%d orders", first.Source, len(first.Orders))
	}

	second, err := s.LoadOrders(context.Background(), octRange)
	if err != nil {
		t.Fatalf("LoadOrders: %v", err)
	}
	if second.Source != SourceCache || f.calls != 1 {
		t.Errorf("second load source=%s calls=%d, want cache and 1 call", second.Source, f.calls)
	}

	if _, err := s.Refresh(context.Background(), octRange); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if f.calls != 2 {
		t.Errorf("Refresh did not reach upstream, calls=%d", f.calls)
	}
}

func TestLoadOrdersRejectsBadRanges(t *testing.T) {
	f := &fakeFetcher{csv: twoOrderCSV}
	s := newTestOrderService(f, false)

	tests := []struct {
		name string
		r    models.DateRange
		want error
	}{
		{"future end", models.DateRange{StartDate: "2026-10-01", EndDate: "2026-10-17"}, models.ErrFutureDate},
		{"start after end", models.DateRange{StartDate: "2026-10-10", EndDate: "2026-10-01"}, models.ErrInvalidDateRange},
		{"malformed", models.DateRange{StartDate: "10/01/2026", EndDate: "2026-10-02"}, models.ErrInvalidDateRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.LoadOrders(context.Background(), tt.r); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if f.calls != 0 {
		t.Errorf("upstream called %d times for invalid ranges", f.calls)
	}
}

func TestLoadOrdersSampleFallbackIsOptIn(t *testing.T) {
	f := &fakeFetcher{csv: "OrderNumber,Total\n"}

	res, err := newTestOrderService(f, false).LoadOrders(context.Background(), octRange)
	if err != nil {
		t.Fatalf("LoadOrders: %v", err)
	}
	if len(res.Orders) != 0 || res.Source != SourceAPI {
		t.Errorf("without fallback got %d orders from %s", len(res.Orders), res.Source)
	}

	res, err = newTestOrderService(f, true).LoadOrders(context.Background(), octRange)
	if err != nil {
		t.Fatalf("LoadOrders: %v", err)
	}
	if res.Source != SourceSample || len(res.Orders) != len(SampleOrders(octRange.StartDate)) {
		t.Errorf("with fallback got %d orders from %s", len(res.Orders), res.Source)
	}
}

func TestLoadOrdersSurfacesUpstreamError(t *testing.T) {
	upErr := &models.UpstreamError{Status: 503, Attempts: 3, Err: errors.New("unavailable")}
	f := &fakeFetcher{err: upErr}

	_, err := newTestOrderService(f, true).LoadOrders(context.Background(), octRange)
	var got *models.UpstreamError
	if !errors.As(err, &got) || got.Status != 503 {
		t.Errorf("err = %v, want upstream error", err)
	}
}
