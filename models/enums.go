package models

type UserRole string

const (
	UserRoleAdmin UserRole = "A"
	UserRoleOwner UserRole = "O"
	UserRoleClerk UserRole = "C"
)

// StockAlertLevel is computed by the stock-level job and consumed as an
// input by the insights engine (critical-alert recommendations).
type StockAlertLevel string

const (
	StockAlertLevelNone     StockAlertLevel = "None"
	StockAlertLevelLow      StockAlertLevel = "Low"
	StockAlertLevelCritical StockAlertLevel = "Critical"
	StockAlertLevelStockout StockAlertLevel = "Stockout"
)
