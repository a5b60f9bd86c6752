// Package shiphero implements the client for the external warehouse
// management API: a single GraphQL endpoint authenticated with a bearer
// token. Only the mutations and queries the touring flows need are modeled.
package shiphero

import "encoding/json"

// Address is the shipping/billing address shape used by order mutations
type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company,omitempty"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
}

// LineItemInput is one line of an order_create mutation
type LineItemInput struct {
	SKU               string `json:"sku"`
	PartnerLineItemID string `json:"partner_line_item_id"`
	Quantity          int    `json:"quantity"`
	Price             string `json:"price"`
	ProductName       string `json:"product_name"`
	WarehouseID       string `json:"warehouse_id"`
}

// OrderCreateInput is the payload for the order_create mutation
type OrderCreateInput struct {
	OrderNumber       string          `json:"order_number"`
	ShopName          string          `json:"shop_name"`
	FulfillmentStatus string          `json:"fulfillment_status"`
	OrderDate         string          `json:"order_date"`
	TotalTax          string          `json:"total_tax"`
	SubTotal          string          `json:"subtotal"`
	TotalDiscounts    string          `json:"total_discounts"`
	TotalPrice        string          `json:"total_price"`
	ShippingAddress   Address         `json:"shipping_address"`
	BillingAddress    Address         `json:"billing_address"`
	LineItems         []LineItemInput `json:"line_items"`
	Tags              []string        `json:"tags"`
}

// POLineItemInput is one line of a purchase_order_create mutation
type POLineItemInput struct {
	SKU                 string `json:"sku"`
	Quantity            int    `json:"quantity"`
	ExpectedWeightInLbs string `json:"expected_weight_in_lbs"`
	Price               string `json:"price"`
	ProductName         string `json:"product_name"`
	QuantityReceived    int    `json:"quantity_received"`
	QuantityRejected    int    `json:"quantity_rejected"`
	SellAhead           int    `json:"sell_ahead"`
}

// PurchaseOrderCreateInput is the payload for the purchase_order_create mutation
type PurchaseOrderCreateInput struct {
	PONumber      string            `json:"po_number"`
	PODate        string            `json:"po_date"`
	VendorID      string            `json:"vendor_id"`
	WarehouseID   string            `json:"warehouse_id"`
	SubTotal      string            `json:"subtotal"`
	ShippingPrice string            `json:"shipping_price"`
	TotalPrice    string            `json:"total_price"`
	LineItems     []POLineItemInput `json:"line_items"`
}

// CreatedOrder is the order object extracted from a create mutation response
type CreatedOrder struct {
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`
	LegacyID    int64  `json:"legacy_id"`
}

// CreatedPurchaseOrder is the purchase order object extracted from a create
// mutation response
type CreatedPurchaseOrder struct {
	ID       string `json:"id"`
	PONumber string `json:"po_number"`
	LegacyID int64  `json:"legacy_id"`
}

// SubmitResult is the classified outcome of a create call
type SubmitResult struct {
	ExternalID  string
	OrderNumber string
	LegacyID    int64
}

// graphQLRequest is the wire shape of every call
type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// graphQLError is one entry of a GraphQL errors array
type graphQLError struct {
	Message string `json:"message"`
}

// graphQLResponse is the wire shape of every response. Data stays raw until
// the caller knows which mutation shape to decode.
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// WarehouseInfo is a warehouse row from the warehouses query
type WarehouseInfo struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Address    struct {
		Name    string `json:"name"`
		Address string `json:"address1"`
		City    string `json:"city"`
		State   string `json:"state"`
		Zip     string `json:"zip"`
		Country string `json:"country"`
	} `json:"address"`
}

// ProductInfo is a product row from the products query
type ProductInfo struct {
	ID   string `json:"id"`
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// AccountInfo is the account query response
type AccountInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Company string `json:"company"`
}
