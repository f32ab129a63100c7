package models

// RoleType defines the role carried in access tokens
type RoleType string

const (
	RoleAdmin RoleType = "ADMIN"
)

// DefaultCurrency is used when a course is created without a currency.
const DefaultCurrency = "USD"
