package planning

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mostafa-azimi/touring-app-sub000/internal/domain"
)

func fixedClock() func() time.Time {
	at := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func testWarehouse() *domain.Warehouse {
	return &domain.Warehouse{
		Name:       "Main DC",
		Code:       "MAINDC",
		Address1:   "500 Dock Rd",
		City:       "Columbus",
		State:      "OH",
		Zip:        "43004",
		Country:    "US",
		Phone:      "614-555-0100",
		ExternalID: "wh-ext-9",
	}
}

func testTour() *domain.Tour {
	return &domain.Tour{TourID: "tour-1", TourNumber: 42}
}

func testBuilder() *Builder {
	return NewBuilder("Demo Shop", "vendor-7", "pending", map[string]string{
		"WIDGET-1": "Widget One",
	}).WithClock(fixedClock())
}

func TestSalesOrderPayload(t *testing.T) {
	builder := testBuilder()
	recipient := domain.Recipient{
		FirstName: "Pat",
		LastName:  "Visitor",
		Email:     "pat@example.com",
		Company:   "Acme",
		Type:      domain.RecipientParticipant,
	}
	items := []PlannedItem{{SKU: "WIDGET-1", Quantity: 1}, {SKU: "GADGET-2", Quantity: 2}}

	payload := builder.SalesOrder(recipient, items, testTour(), testWarehouse(), domain.WorkflowBulkShipping, 0)

	assert.Equal(t, "BULK-42-001", payload.OrderNumber)
	assert.Equal(t, "Demo Shop", payload.ShopName)
	assert.Equal(t, "pending", payload.FulfillmentStatus)
	assert.Equal(t, "2025-06-15T10:30:00Z", payload.OrderDate)
	assert.Equal(t, "0.00", payload.TotalPrice)
	assert.Equal(t, "0.00", payload.SubTotal)

	// Shipping == billing == warehouse address with the recipient's identity
	assert.Equal(t, payload.ShippingAddress, payload.BillingAddress)
	assert.Equal(t, "Pat", payload.ShippingAddress.FirstName)
	assert.Equal(t, "pat@example.com", payload.ShippingAddress.Email)
	assert.Equal(t, "500 Dock Rd", payload.ShippingAddress.Address1)
	assert.Equal(t, "Columbus", payload.ShippingAddress.City)

	require.Len(t, payload.LineItems, 2)
	assert.Equal(t, "BULK-42-001-0", payload.LineItems[0].PartnerLineItemID)
	assert.Equal(t, "BULK-42-001-1", payload.LineItems[1].PartnerLineItemID)
	assert.Equal(t, "Widget One", payload.LineItems[0].ProductName)
	// Unknown SKU falls back to the SKU itself
	assert.Equal(t, "GADGET-2", payload.LineItems[1].ProductName)
	assert.Equal(t, "wh-ext-9", payload.LineItems[0].WarehouseID)
	assert.Equal(t, "0.00", payload.LineItems[0].Price)

	assert.Equal(t, []string{"tour-42", "workflow-bulk", "recipient-participant", "MAINDC"}, payload.Tags)
}

func TestSalesOrderPayloadIdempotent(t *testing.T) {
	builder := testBuilder()
	recipient := domain.Recipient{FirstName: "Pat", LastName: "Visitor", Email: "pat@example.com", Type: domain.RecipientHost}
	items := []PlannedItem{{SKU: "WIDGET-1", Quantity: 1}}

	first := builder.SalesOrder(recipient, items, testTour(), testWarehouse(), domain.WorkflowSingleItemBatch, 4)
	second := builder.SalesOrder(recipient, items, testTour(), testWarehouse(), domain.WorkflowSingleItemBatch, 4)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)

	assert.Equal(t, firstJSON, secondJSON)
	assert.Equal(t, "SIB-42-005", first.OrderNumber)
}

func TestSalesOrderTagsStripEmpties(t *testing.T) {
	builder := testBuilder()
	warehouse := testWarehouse()
	warehouse.Code = ""
	recipient := domain.Recipient{FirstName: "Pat", LastName: "Visitor", Type: domain.RecipientExtra}

	payload := builder.SalesOrder(recipient, []PlannedItem{{SKU: "WIDGET-1", Quantity: 1}}, testTour(), warehouse, domain.WorkflowPackToLight, 0)

	assert.Equal(t, []string{"tour-42", "workflow-ptl", "recipient-extra"}, payload.Tags)
}

func TestSalesOrderTagsOmitUntypedRecipient(t *testing.T) {
	builder := testBuilder()
	recipient := domain.Recipient{FirstName: "Pat", LastName: "Visitor"}

	payload := builder.SalesOrder(recipient, []PlannedItem{{SKU: "WIDGET-1", Quantity: 1}}, testTour(), testWarehouse(), domain.WorkflowBulkShipping, 0)

	assert.Equal(t, []string{"tour-42", "workflow-bulk", "MAINDC"}, payload.Tags)
}

func TestPurchaseOrderPayload(t *testing.T) {
	builder := testBuilder()
	items := []PlannedItem{{SKU: "SKU-A", Quantity: 5}, {SKU: "SKU-C", Quantity: 3}}

	payload := builder.PurchaseOrder(items, testTour(), testWarehouse(), "Host")

	assert.Equal(t, "Host-06/15/2025", payload.PONumber)
	assert.Equal(t, "2025-06-15", payload.PODate)
	assert.Equal(t, "vendor-7", payload.VendorID)
	assert.Equal(t, "wh-ext-9", payload.WarehouseID)
	assert.Equal(t, "0.00", payload.TotalPrice)

	require.Len(t, payload.LineItems, 2)
	for _, line := range payload.LineItems {
		assert.Equal(t, 0, line.QuantityReceived)
		assert.Equal(t, 0, line.QuantityRejected)
		assert.Equal(t, 0, line.SellAhead)
		assert.Equal(t, "1.00", line.ExpectedWeightInLbs)
	}
	assert.Equal(t, "SKU-A", payload.LineItems[0].SKU)
	assert.Equal(t, 5, payload.LineItems[0].Quantity)
}

func TestBuilderDefaultsFulfillmentStatus(t *testing.T) {
	builder := NewBuilder("Demo Shop", "vendor-7", "", nil).WithClock(fixedClock())
	recipient := domain.Recipient{FirstName: "Pat", LastName: "Visitor", Type: domain.RecipientParticipant}

	payload := builder.SalesOrder(recipient, []PlannedItem{{SKU: "X", Quantity: 1}}, testTour(), testWarehouse(), domain.WorkflowBulkShipping, 0)

	assert.Equal(t, "pending", payload.FulfillmentStatus)
}
