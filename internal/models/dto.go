package models

import "time"

// DTOs mirrored from backend JSON payloads. No client-side invariants are
// enforced on these; validation and consistency live in the backend.

// Product represents a catalog product as served by the products API.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency,omitempty"`
	VendorID    string   `json:"vendorId,omitempty"`
	VendorName  string   `json:"vendorName,omitempty"`
	Category    string   `json:"category,omitempty"`
	Images      []string `json:"images,omitempty"`
	InStock     bool     `json:"inStock"`
	Stock       int      `json:"stock,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	ReviewCount int      `json:"reviewCount,omitempty"`
}

// ProductList is a paginated product listing response.
type ProductList struct {
	Products   []Product `json:"products"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalPages int       `json:"totalPages"`
}

// OrderItem is a line on a placed order.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	VendorID  string  `json:"vendorId,omitempty"`
}

// Order represents an order as served by the orders API.
type Order struct {
	ID              string      `json:"id"`
	OrderNumber     string      `json:"orderNumber,omitempty"`
	Status          string      `json:"status"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	Currency        string      `json:"currency,omitempty"`
	ShippingAddress *Address    `json:"shippingAddress,omitempty"`
	PaymentID       string      `json:"paymentId,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// Address is a shipping or billing address payload.
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// Payment represents a payment record as served by the payments API.
type Payment struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"orderId"`
	Status      string    `json:"status"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency,omitempty"`
	Method      string    `json:"method,omitempty"`
	RedirectURL string    `json:"redirectUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ShippingRate is a shipping quote for a checkout.
type ShippingRate struct {
	Carrier       string  `json:"carrier"`
	Service       string  `json:"service"`
	Cost          float64 `json:"cost"`
	Currency      string  `json:"currency,omitempty"`
	EstimatedDays int     `json:"estimatedDays,omitempty"`
}

// Shipment represents tracking info for a shipped order.
type Shipment struct {
	TrackingID        string     `json:"trackingId"`
	OrderID           string     `json:"orderId,omitempty"`
	Carrier           string     `json:"carrier,omitempty"`
	Status            string     `json:"status"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
	Events            []struct {
		Timestamp   time.Time `json:"timestamp"`
		Location    string    `json:"location,omitempty"`
		Description string    `json:"description"`
	} `json:"events,omitempty"`
}

// SearchResult is the response of the search API.
type SearchResult struct {
	Query    string    `json:"query"`
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
}

// Recommendation is a single AI-recommended product.
type Recommendation struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Score     float64 `json:"score,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

// DashboardStats is the analytics payload backing the dashboard widgets.
// A zero value renders as an empty dashboard, which is the degrade-safe
// fallback when the analytics API is unavailable.
type DashboardStats struct {
	TotalOrders    int64              `json:"totalOrders"`
	TotalSpent     float64            `json:"totalSpent"`
	TotalRevenue   float64            `json:"totalRevenue,omitempty"`
	PendingOrders  int64              `json:"pendingOrders"`
	RecentOrders   []Order            `json:"recentOrders,omitempty"`
	SalesByDay     map[string]float64 `json:"salesByDay,omitempty"`
	TopProducts    []Product          `json:"topProducts,omitempty"`
	ActiveVendors  int64              `json:"activeVendors,omitempty"`
	ActiveUsers    int64              `json:"activeUsers,omitempty"`
	ConversionRate float64            `json:"conversionRate,omitempty"`
}

// WishlistItem is a single saved product in the session wishlist.
type WishlistItem struct {
	ProductID string     `json:"productId"`
	Name      string     `json:"name"`
	Price     float64    `json:"price"`
	Image     string     `json:"image,omitempty"`
	AddedAt   *time.Time `json:"addedAt,omitempty"`
}
