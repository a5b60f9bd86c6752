package planning

import (
	"fmt"
	"time"

	"github.com/mostafa-azimi/touring-app-sub000/internal/domain"
	"github.com/mostafa-azimi/touring-app-sub000/internal/shiphero"
)

const zeroMoney = "0.00"

// Builder assembles external API payloads from a recipient, a SKU plan, and
// tour/warehouse context. It performs no I/O; given a fixed clock its output
// is byte-stable.
type Builder struct {
	Shop              string
	VendorID          string
	FulfillmentStatus string

	// ProductNames maps SKU to catalog product name; missing entries fall
	// back to the SKU itself.
	ProductNames map[string]string

	now func() time.Time
}

// NewBuilder creates a payload builder with the tenant's order settings
func NewBuilder(shop, vendorID, fulfillmentStatus string, productNames map[string]string) *Builder {
	if fulfillmentStatus == "" {
		fulfillmentStatus = "pending"
	}
	return &Builder{
		Shop:              shop,
		VendorID:          vendorID,
		FulfillmentStatus: fulfillmentStatus,
		ProductNames:      productNames,
		now:               time.Now,
	}
}

// WithClock overrides the builder's clock. Tests use this for byte-stable
// output.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// OrderNumber generates the display number for order index (zero-based)
// within a workflow: {PREFIX}-{tourNumber}-{3-digit sequence}.
func OrderNumber(kind domain.WorkflowKind, tourNumber, index int) string {
	return fmt.Sprintf("%s-%d-%03d", kind.Prefix(), tourNumber, index+1)
}

// SalesOrder builds an order_create payload for one recipient. Shipping and
// billing both carry the warehouse address with the recipient's name and
// email, so demo deliveries never leave the building.
func (b *Builder) SalesOrder(
	recipient domain.Recipient,
	items []PlannedItem,
	tour *domain.Tour,
	warehouse *domain.Warehouse,
	kind domain.WorkflowKind,
	index int,
) shiphero.OrderCreateInput {
	orderNumber := OrderNumber(kind, tour.TourNumber, index)
	address := b.warehouseAddress(recipient, warehouse)

	lineItems := make([]shiphero.LineItemInput, 0, len(items))
	for i, item := range items {
		lineItems = append(lineItems, shiphero.LineItemInput{
			SKU:               item.SKU,
			PartnerLineItemID: fmt.Sprintf("%s-%d", orderNumber, i),
			Quantity:          item.Quantity,
			Price:             zeroMoney,
			ProductName:       b.productName(item.SKU),
			WarehouseID:       warehouse.ExternalID,
		})
	}

	return shiphero.OrderCreateInput{
		OrderNumber:       orderNumber,
		ShopName:          b.Shop,
		FulfillmentStatus: b.FulfillmentStatus,
		OrderDate:         b.now().UTC().Format(time.RFC3339),
		TotalTax:          zeroMoney,
		SubTotal:          zeroMoney,
		TotalDiscounts:    zeroMoney,
		TotalPrice:        zeroMoney,
		ShippingAddress:   address,
		BillingAddress:    address,
		LineItems:         lineItems,
		Tags:              b.tags(tour, kind, recipient.Type, warehouse.Code),
	}
}

// PurchaseOrder builds a purchase_order_create payload for a receiving
// workflow. PO numbers follow the host-name-plus-date convention.
func (b *Builder) PurchaseOrder(
	items []PlannedItem,
	tour *domain.Tour,
	warehouse *domain.Warehouse,
	hostLastName string,
) shiphero.PurchaseOrderCreateInput {
	now := b.now().UTC()

	lineItems := make([]shiphero.POLineItemInput, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, shiphero.POLineItemInput{
			SKU:                 item.SKU,
			Quantity:            item.Quantity,
			ExpectedWeightInLbs: "1.00",
			Price:               zeroMoney,
			ProductName:         b.productName(item.SKU),
			QuantityReceived:    0,
			QuantityRejected:    0,
			SellAhead:           0,
		})
	}

	return shiphero.PurchaseOrderCreateInput{
		PONumber:      fmt.Sprintf("%s-%s", hostLastName, now.Format("01/02/2006")),
		PODate:        now.Format("2006-01-02"),
		VendorID:      b.VendorID,
		WarehouseID:   warehouse.ExternalID,
		SubTotal:      zeroMoney,
		ShippingPrice: zeroMoney,
		TotalPrice:    zeroMoney,
		LineItems:     lineItems,
	}
}

// warehouseAddress builds the shared shipping/billing address: warehouse
// street fields with the recipient's identity on top.
func (b *Builder) warehouseAddress(recipient domain.Recipient, warehouse *domain.Warehouse) shiphero.Address {
	return shiphero.Address{
		FirstName: recipient.FirstName,
		LastName:  recipient.LastName,
		Company:   recipient.Company,
		Address1:  warehouse.Address1,
		Address2:  warehouse.Address2,
		City:      warehouse.City,
		State:     warehouse.State,
		Zip:       warehouse.Zip,
		Country:   warehouse.Country,
		Phone:     warehouse.Phone,
		Email:     recipient.Email,
	}
}

// tags builds the order tag set with empty entries stripped
func (b *Builder) tags(tour *domain.Tour, kind domain.WorkflowKind, recipientType domain.RecipientType, warehouseCode string) []string {
	candidates := []string{
		fmt.Sprintf("tour-%d", tour.TourNumber),
		kind.Tag(),
	}
	if recipientType != "" {
		candidates = append(candidates, "recipient-"+string(recipientType))
	}
	candidates = append(candidates, warehouseCode)

	tags := make([]string, 0, len(candidates))
	for _, tag := range candidates {
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (b *Builder) productName(sku string) string {
	if name, ok := b.ProductNames[sku]; ok && name != "" {
		return name
	}
	return sku
}
