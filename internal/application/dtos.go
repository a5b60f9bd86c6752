package application

import (
	"context"

	"github.com/mostafa-azimi/touring-app-sub000/internal/domain"
	"github.com/mostafa-azimi/touring-app-sub000/internal/shiphero"
)

// OrderSubmitter is the slice of the external API client the orchestrators
// need. The shiphero client satisfies it; tests substitute fakes.
type OrderSubmitter interface {
	CreateOrder(ctx context.Context, input shiphero.OrderCreateInput) (*shiphero.SubmitResult, error)
	CancelOrder(ctx context.Context, orderID string) error
	CreatePurchaseOrder(ctx context.Context, input shiphero.PurchaseOrderCreateInput) (*shiphero.SubmitResult, error)
	CancelPurchaseOrder(ctx context.Context, poID string) error
}

// FinalizeResult is the aggregate outcome of a finalization run. Success is
// true only when no workflow and no order failed; the tour is finalized
// either way.
type FinalizeResult struct {
	Success        bool                 `json:"success"`
	TourID         string               `json:"tourId"`
	SalesOrders    []domain.OrderRecord `json:"salesOrders"`
	PurchaseOrders []domain.OrderRecord `json:"purchaseOrders"`
	Errors         []string             `json:"errors"`
}

// CancelResult is the aggregate outcome of a cancellation run
type CancelResult struct {
	TourID          string   `json:"tourId"`
	Canceled        int      `json:"canceled"`
	Failed          int      `json:"failed"`
	Skipped         int      `json:"skipped"`
	CanceledNumbers []string `json:"canceledNumbers"`
	Errors          []string `json:"errors"`
	TourCanceled    bool     `json:"tourCanceled"`
}

// CSVImportResult reports a bulk participant import
type CSVImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
