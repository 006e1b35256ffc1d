package receipt

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service validates, scores and stores receipts
type Service struct {
	store      Store
	metrics    *Metrics
	timeSource TimeSource
}

// NewService creates a new Service with the system clock
func NewService(store Store, metrics *Metrics) *Service {
	return NewServiceWithDeps(store, metrics, &defaultTimeSource{})
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(store Store, metrics *Metrics, timeSrc TimeSource) *Service {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Service{
		store:      store,
		metrics:    metrics,
		timeSource: timeSrc,
	}
}

// Submit validates a submission, computes its points once and stores both.
// Nothing is stored when validation fails.
func (s *Service) Submit(sub *Submission) (string, error) {
	receipt, err := Validate(sub, s.timeSource.Now())
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			slog.Warn("Rejected receipt", "violations", verr.Violations)
		}
		s.metrics.submitted(outcomeRejected)
		return "", err
	}

	points := Points(receipt)
	slog.Debug("Scored receipt", "retailer", receipt.Retailer, "points", points, "breakdown", Breakdown(receipt))

	id, err := s.store.Put(receipt, points)
	if err != nil {
		s.metrics.submitted(outcomeFailed)
		return "", fmt.Errorf("storing receipt: %w", err)
	}

	s.metrics.submitted(outcomeAccepted)
	s.metrics.awarded(points)
	return id, nil
}

// Points returns the points awarded to a receipt
func (s *Service) Points(id string) (int, error) {
	points, ok, err := s.store.Points(id)
	if err != nil {
		return 0, fmt.Errorf("getting points: %w", err)
	}
	if !ok {
		s.metrics.lookedUp(outcomeNotFound)
		return 0, ErrNotFound
	}
	s.metrics.lookedUp(outcomeFound)
	return points, nil
}

// Receipt returns a stored receipt with its points
func (s *Service) Receipt(id string) (*ScoredReceipt, error) {
	scored, ok, err := s.store.Get(id)
	if err != nil {
		return nil, fmt.Errorf("getting receipt: %w", err)
	}
	if !ok {
		s.metrics.lookedUp(outcomeNotFound)
		return nil, ErrNotFound
	}
	s.metrics.lookedUp(outcomeFound)
	return scored, nil
}
