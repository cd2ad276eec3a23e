package ordersync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sominastock/ordersync/internal/domain/ordersync"
)

// RunLock serializes sync runs across processes. Acquire returns false when
// another run holds the lock.
type RunLock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// RunLogSink records the wall-clock time of each run start.
type RunLogSink interface {
	Record(t time.Time) error
}

// RunResult summarizes one sync run.
type RunResult struct {
	// RunID identifies this run
	RunID uuid.UUID
	// Window is the polled creation-time range
	Window ordersync.Window
	// FetchedCount is how many marketplace orders the window returned
	FetchedCount int
	// DedupedCount is how many fetched orders the ledger had already seen
	DedupedCount int
	// SkippedOrderIDs lists orders where no line item resolved
	SkippedOrderIDs []string
	// Submission is set when a storefront order was created
	Submission *SubmissionResult
}

// Submitted reports whether the run produced a storefront order.
func (r *RunResult) Submitted() bool {
	return r.Submission != nil
}

// Orchestrator drives one sync run end to end: compute the lookback window,
// fetch the marketplace orders, aggregate them into one storefront payload
// and submit it.
type Orchestrator struct {
	marketplace ordersync.Marketplace
	aggregator  *Aggregator
	submitter   *Submitter
	logger      *zap.Logger

	lookback time.Duration
	now      func() time.Time

	// Optional safeguards, nil when disabled
	runLock RunLock
	runLog  RunLogSink
	ledger  ordersync.SyncRecordRepository
}

// OrchestratorOption configures optional orchestrator behavior
type OrchestratorOption func(*Orchestrator)

// WithRunLock enables cross-process run serialization
func WithRunLock(lock RunLock) OrchestratorOption {
	return func(o *Orchestrator) { o.runLock = lock }
}

// WithRunLog enables the run start time log
func WithRunLog(sink RunLogSink) OrchestratorOption {
	return func(o *Orchestrator) { o.runLog = sink }
}

// WithLedger enables the processed-order dedup ledger
func WithLedger(ledger ordersync.SyncRecordRepository) OrchestratorOption {
	return func(o *Orchestrator) { o.ledger = ledger }
}

// WithClock overrides the time source, for tests
func WithClock(now func() time.Time) OrchestratorOption {
	return func(o *Orchestrator) { o.now = now }
}

// NewOrchestrator creates a new Orchestrator
func NewOrchestrator(
	marketplace ordersync.Marketplace,
	aggregator *Aggregator,
	submitter *Submitter,
	lookback time.Duration,
	logger *zap.Logger,
	opts ...OrchestratorOption,
) *Orchestrator {
	o := &Orchestrator{
		marketplace: marketplace,
		aggregator:  aggregator,
		submitter:   submitter,
		logger:      logger,
		lookback:    lookback,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes one sync pass over the lookback window ending now.
func (o *Orchestrator) Run(ctx context.Context) (*RunResult, error) {
	startedAt := o.now()

	if o.runLock != nil {
		acquired, err := o.runLock.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		if !acquired {
			return nil, ordersync.ErrRunInProgress
		}
		defer func() {
			if err := o.runLock.Release(ctx); err != nil {
				o.logger.Warn("failed to release run lock", zap.Error(err))
			}
		}()
	}

	if o.runLog != nil {
		if err := o.runLog.Record(startedAt); err != nil {
			o.logger.Warn("failed to record run start", zap.Error(err))
		}
	}

	result := &RunResult{
		RunID:  uuid.New(),
		Window: ordersync.NewLookbackWindow(startedAt, o.lookback),
	}

	o.logger.Info("sync run started",
		zap.String("run_id", result.RunID.String()),
		zap.String("window_from", result.Window.FromParam()),
		zap.String("window_to", result.Window.ToParam()))

	orders, err := o.marketplace.SearchOrders(ctx, result.Window)
	if err != nil {
		return nil, err
	}
	result.FetchedCount = len(orders)

	if len(orders) == 0 {
		o.logger.Info("no marketplace orders in window",
			zap.String("run_id", result.RunID.String()))
		return result, nil
	}

	orders, result.DedupedCount, err = o.filterProcessed(ctx, orders)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		o.logger.Info("all fetched orders already processed",
			zap.String("run_id", result.RunID.String()),
			zap.Int("deduped", result.DedupedCount))
		return result, nil
	}

	aggregation, err := o.aggregator.Aggregate(ctx, orders)
	if err != nil {
		return nil, err
	}
	result.SkippedOrderIDs = aggregation.SkippedOrderIDs

	if aggregation.Empty() {
		o.logger.Info("no line items resolved, nothing to submit",
			zap.String("run_id", result.RunID.String()),
			zap.Int("fetched", result.FetchedCount))
		o.recordOutcomes(ctx, result.RunID, aggregation, nil, nil)
		return result, nil
	}

	submission, err := o.submitter.Submit(ctx, aggregation)
	if err != nil {
		o.recordOutcomes(ctx, result.RunID, aggregation, nil, err)
		return nil, err
	}
	result.Submission = submission

	o.recordOutcomes(ctx, result.RunID, aggregation, submission, nil)

	o.logger.Info("sync run finished",
		zap.String("run_id", result.RunID.String()),
		zap.Int("fetched", result.FetchedCount),
		zap.Int64("storefront_order_id", submission.StorefrontOrderID),
		zap.Bool("held", submission.HeldStatusApplied))

	return result, nil
}

// filterProcessed drops orders the ledger already recorded. Without a
// ledger every fetched order passes through, matching the historical
// behavior where overlapping windows may resubmit.
func (o *Orchestrator) filterProcessed(ctx context.Context, orders []ordersync.MarketplaceOrder) ([]ordersync.MarketplaceOrder, int, error) {
	if o.ledger == nil {
		return orders, 0, nil
	}

	kept := make([]ordersync.MarketplaceOrder, 0, len(orders))
	deduped := 0
	for _, order := range orders {
		seen, err := o.ledger.Exists(ctx, order.ID)
		if err != nil {
			return nil, 0, err
		}
		if seen {
			deduped++
			continue
		}
		kept = append(kept, order)
	}
	return kept, deduped, nil
}

// recordOutcomes writes one ledger record per processed marketplace order.
// Ledger write failures are logged, never fatal.
func (o *Orchestrator) recordOutcomes(ctx context.Context, runID uuid.UUID, aggregation *AggregationResult, submission *SubmissionResult, submitErr error) {
	if o.ledger == nil {
		return
	}

	for _, orderID := range aggregation.ContributingOrderIDs {
		record := ordersync.NewSyncRecord(runID, orderID, ordersync.SyncOutcomeSubmitted)
		if submitErr != nil {
			record.Outcome = ordersync.SyncOutcomeFailed
			record.ErrorMessage = submitErr.Error()
		} else if submission != nil {
			record.StorefrontOrderID = &submission.StorefrontOrderID
		}
		o.saveRecord(ctx, record)
	}

	for _, orderID := range aggregation.SkippedOrderIDs {
		o.saveRecord(ctx, ordersync.NewSyncRecord(runID, orderID, ordersync.SyncOutcomeSkipped))
	}
}

func (o *Orchestrator) saveRecord(ctx context.Context, record *ordersync.SyncRecord) {
	if err := o.ledger.Save(ctx, record); err != nil {
		o.logger.Warn("failed to persist sync record",
			zap.String("marketplace_order_id", record.MarketplaceOrderID),
			zap.Error(err))
	}
}
