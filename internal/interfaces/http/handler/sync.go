package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	syncapp "github.com/sominastock/ordersync/internal/application/ordersync"
	"github.com/sominastock/ordersync/internal/domain/ordersync"
	"github.com/sominastock/ordersync/internal/interfaces/http/dto"
)

// SyncHandler exposes the admin surface: health, manual run trigger and
// the processed-order ledger.
type SyncHandler struct {
	orchestrator *syncapp.Orchestrator
	ledger       ordersync.SyncRecordRepository // nil when the ledger is disabled
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(orchestrator *syncapp.Orchestrator, ledger ordersync.SyncRecordRepository) *SyncHandler {
	return &SyncHandler{
		orchestrator: orchestrator,
		ledger:       ledger,
	}
}

// RunResponse is the JSON view of a finished sync run
type RunResponse struct {
	RunID             string   `json:"run_id"`
	WindowFrom        string   `json:"window_from"`
	WindowTo          string   `json:"window_to"`
	FetchedCount      int      `json:"fetched_count"`
	DedupedCount      int      `json:"deduped_count"`
	SkippedOrderIDs   []string `json:"skipped_order_ids,omitempty"`
	StorefrontOrderID *int64   `json:"storefront_order_id,omitempty"`
	HeldStatusApplied *bool    `json:"held_status_applied,omitempty"`
}

// SyncRecordResponse is the JSON view of one ledger record
type SyncRecordResponse struct {
	MarketplaceOrderID string    `json:"marketplace_order_id"`
	StorefrontOrderID  *int64    `json:"storefront_order_id,omitempty"`
	Outcome            string    `json:"outcome"`
	ErrorMessage       string    `json:"error_message,omitempty"`
	SyncedAt           time.Time `json:"synced_at"`
}

// Health reports process liveness
// GET /healthz
func (h *SyncHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
}

// TriggerRun executes one sync pass synchronously
// POST /api/v1/sync/runs
func (h *SyncHandler) TriggerRun(c *gin.Context) {
	result, err := h.orchestrator.Run(c.Request.Context())
	if err != nil {
		status, code := runErrorStatus(err)
		c.JSON(status, dto.NewErrorResponse(code, err.Error()))
		return
	}

	resp := RunResponse{
		RunID:           result.RunID.String(),
		WindowFrom:      result.Window.FromParam(),
		WindowTo:        result.Window.ToParam(),
		FetchedCount:    result.FetchedCount,
		DedupedCount:    result.DedupedCount,
		SkippedOrderIDs: result.SkippedOrderIDs,
	}
	if result.Submitted() {
		resp.StorefrontOrderID = &result.Submission.StorefrontOrderID
		resp.HeldStatusApplied = &result.Submission.HeldStatusApplied
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ListRecords returns the most recent ledger records
// GET /api/v1/sync/records?limit=50
func (h *SyncHandler) ListRecords(c *gin.Context) {
	if h.ledger == nil {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("LEDGER_DISABLED", "sync ledger is not enabled"))
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 500 {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("INVALID_LIMIT", "limit must be between 1 and 500"))
			return
		}
		limit = parsed
	}

	records, err := h.ledger.FindRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("LEDGER_ERROR", err.Error()))
		return
	}

	out := make([]SyncRecordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, SyncRecordResponse{
			MarketplaceOrderID: record.MarketplaceOrderID,
			StorefrontOrderID:  record.StorefrontOrderID,
			Outcome:            record.Outcome.String(),
			ErrorMessage:       record.ErrorMessage,
			SyncedAt:           record.SyncedAt,
		})
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(out))
}

// runErrorStatus maps run failures to HTTP statuses
func runErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ordersync.ErrRunInProgress):
		return http.StatusConflict, "RUN_IN_PROGRESS"
	case errors.Is(err, ordersync.ErrMarketplaceUnavailable),
		errors.Is(err, ordersync.ErrStorefrontUnavailable):
		return http.StatusBadGateway, "UPSTREAM_UNAVAILABLE"
	case errors.Is(err, ordersync.ErrMarketplaceInvalidResponse):
		return http.StatusBadGateway, "UPSTREAM_INVALID_RESPONSE"
	default:
		return http.StatusInternalServerError, "SYNC_FAILED"
	}
}
