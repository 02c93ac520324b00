package woo

// Wire types for the WooCommerce REST API (wc/v3). Prices travel as strings
// on the wire; the catalog sync converts them to floats for the cache.

type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
	Slug string `json:"slug,omitempty"`
}

type Image struct {
	ID  int64  `json:"id,omitempty"`
	Src string `json:"src"`
}

type Product struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	Description   string        `json:"description"`
	Price         string        `json:"price"`
	RegularPrice  string        `json:"regular_price"`
	SalePrice     string        `json:"sale_price"`
	StockQuantity *int          `json:"stock_quantity"`
	StockStatus   string        `json:"stock_status"`
	Status        string        `json:"status"`
	Featured      bool          `json:"featured"`
	Categories    []CategoryRef `json:"categories"`
	Images        []Image       `json:"images"`
}

type Category struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Parent int64  `json:"parent"`
	Count  int    `json:"count"`
}

type Attribute struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ── Order creation ───────────────────────────────────────────────────────────

type OrderAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address1  string `json:"address_1"`
	City      string `json:"city"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type OrderLineItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type OrderShippingLine struct {
	MethodID    string `json:"method_id"`
	MethodTitle string `json:"method_title"`
	Total       string `json:"total"`
}

type OrderMeta struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type OrderRequest struct {
	PaymentMethod      string              `json:"payment_method"`
	PaymentMethodTitle string              `json:"payment_method_title"`
	SetPaid            bool                `json:"set_paid"`
	Status             string              `json:"status,omitempty"`
	Billing            OrderAddress        `json:"billing"`
	Shipping           OrderAddress        `json:"shipping"`
	LineItems          []OrderLineItem     `json:"line_items"`
	ShippingLines      []OrderShippingLine `json:"shipping_lines"`
	MetaData           []OrderMeta         `json:"meta_data,omitempty"`
}

type Order struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
	Total  string `json:"total"`
}
