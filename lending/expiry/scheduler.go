package expiry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shelfwise/lending-lifecycle-go/lending"
	"github.com/shelfwise/lending-lifecycle-go/lending/lifecycle"
)

const (
	logMsgSweepFinished  = "expiry sweep finished"
	logMsgSweepFailed    = "expiry sweep failed"
	logMsgLoanCheckError = "expiry check failed for loan"
	logAttrError         = "error"
	logAttrLoanID        = "loan_id"
	logAttrSummary       = "summary"

	metricSweepDuration  = "lending_sweep_duration_seconds"
	metricSweepLoanError = "lending_sweep_loan_errors_total"
)

var (
	// ErrNilLoanStore is returned when the scheduler is built without a loan store.
	ErrNilLoanStore = errors.New("loan store must not be nil")

	// ErrNilChecker is returned when the scheduler is built without a checker.
	ErrNilChecker = errors.New("expiry checker must not be nil")

	// ErrInvalidInterval is returned when the sweep interval is not positive.
	ErrInvalidInterval = errors.New("sweep interval must be positive")
)

// ExpiryChecker runs the expiry check for a single loan.
// *lifecycle.Engine satisfies this.
type ExpiryChecker interface {
	CheckExpiry(ctx context.Context, loanID uuid.UUID) (lifecycle.ExpiryCounts, bool, error)
}

// Report aggregates the outcome of one sweep over all ongoing loans.
// LoansActive counts every loan the sweep examined and LeasesActive every
// lease that was active when its loan's check started, so a loan that
// expired during the sweep still contributes to both alongside
// LoansExpired and LeasesExpired.
type Report struct {
	LoansActive   int
	LoansExpired  int
	LeasesActive  int
	LeasesExpired int
	Failed        int
}

// Summary renders the report in a compact single-line form for logs.
func (r Report) Summary() string {
	return fmt.Sprintf(
		"loans_active=%d loans_expired=%d leases_active=%d leases_expired=%d failed=%d",
		r.LoansActive, r.LoansExpired, r.LeasesActive, r.LeasesExpired, r.Failed,
	)
}

// Scheduler periodically sweeps all ongoing loans through the expiry check.
type Scheduler struct {
	loans    lending.LoanStore
	checker  ExpiryChecker
	interval time.Duration
	logger   lending.ContextualLogger
	metrics  lending.MetricsCollector
}

// Option configures a Scheduler.
type Option func(*Scheduler) error

// WithInterval sets the sweep interval; defaults to lending.DefaultSweepInterval.
func WithInterval(interval time.Duration) Option {
	return func(s *Scheduler) error {
		if interval <= 0 {
			return ErrInvalidInterval
		}

		s.interval = interval

		return nil
	}
}

// WithLogger sets the contextual logger for sweep runs.
func WithLogger(logger lending.ContextualLogger) Option {
	return func(s *Scheduler) error {
		s.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for sweep runs.
func WithMetrics(collector lending.MetricsCollector) Option {
	return func(s *Scheduler) error {
		s.metrics = collector
		return nil
	}
}

// NewScheduler creates a Scheduler with optional configuration.
func NewScheduler(loans lending.LoanStore, checker ExpiryChecker, options ...Option) (*Scheduler, error) {
	if loans == nil {
		return nil, ErrNilLoanStore
	}

	if checker == nil {
		return nil, ErrNilChecker
	}

	scheduler := &Scheduler{
		loans:    loans,
		checker:  checker,
		interval: lending.DefaultSweepInterval,
	}

	for _, option := range options {
		if err := option(scheduler); err != nil {
			return nil, err
		}
	}

	return scheduler, nil
}

// Sweep runs one pass over all ongoing loans. Per-loan check failures are
// counted and logged but do not abort the sweep; only the initial listing
// of ongoing loans can fail the whole pass.
func (s *Scheduler) Sweep(ctx context.Context) (Report, error) {
	start := time.Now()

	ongoing, listErr := s.loans.ListOngoing(ctx)
	if listErr != nil {
		return Report{}, listErr
	}

	var report Report

	for _, loan := range ongoing {
		counts, transitioned, checkErr := s.checker.CheckExpiry(ctx, loan.ID)
		if checkErr != nil {
			report.Failed++

			if s.logger != nil {
				s.logger.ErrorContext(ctx, logMsgLoanCheckError,
					logAttrError, checkErr.Error(),
					logAttrLoanID, loan.ID.String())
			}

			if s.metrics != nil {
				s.metrics.IncrementCounter(metricSweepLoanError, nil)
			}

			continue
		}

		report.LoansActive++
		report.LeasesActive += counts.Active
		report.LeasesExpired += counts.Expired

		if transitioned {
			report.LoansExpired++
		}
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, logMsgSweepFinished, logAttrSummary, report.Summary())
	}

	if s.metrics != nil {
		s.metrics.RecordDuration(metricSweepDuration, time.Since(start), nil)
	}

	return report, nil
}

// Run sweeps on the configured interval until the context is cancelled.
// It returns the context error once cancelled. Sweep errors are logged and
// the loop carries on; a transiently unavailable store should not stop the
// scheduler.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			if _, sweepErr := s.Sweep(ctx); sweepErr != nil && s.logger != nil {
				s.logger.ErrorContext(ctx, logMsgSweepFailed, logAttrError, sweepErr.Error())
			}
		}
	}
}
