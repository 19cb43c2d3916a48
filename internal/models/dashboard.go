package models

import "time"

// ExpiringItem is one near-expiry purchase listed on the dashboard.
type ExpiringItem struct {
	ID             int       `json:"code"`
	ProductName    string    `json:"name"`
	ExpirationDate time.Time `json:"expiration"`
}

// DashboardSummary holds the dashboard statistics. Every count is zero, never absent,
// when there is nothing to count.
type DashboardSummary struct {
	TotalStock        int            `json:"total_stocks"`
	Medicines         int            `json:"medicines"`
	Supplies          int            `json:"supplies"`
	StockInMedicines  int            `json:"stockins_medicines"`
	StockInSupplies   int            `json:"stockins_supplies"`
	StockOutMedicines int            `json:"stockouts_medicines"`
	StockOutSupplies  int            `json:"stockouts_supplies"`
	OutOfStock        int            `json:"out_of_stocks"`
	TotalOrders       int            `json:"total_orders"`
	ExpiringSoonCount int            `json:"total_expiring_soon"`
	ExpiringSoon      []ExpiringItem `json:"expiring_soon"`
}

// EmptyDashboardSummary is the all-zero summary rendered when aggregation fails.
func EmptyDashboardSummary() DashboardSummary {
	return DashboardSummary{ExpiringSoon: []ExpiringItem{}}
}
