package constants

// Cargo status constants
const (
	CargoStatusNewRequest           = "new_request"
	CargoStatusAwaitingPickup       = "awaiting_pickup"
	CargoStatusReceived             = "received"
	CargoStatusAwaitingShipment     = "awaiting_shipment"
	CargoStatusShipped              = "shipped"
	CargoStatusArrivedAtDestination = "arrived_at_destination"
	CargoStatusAwaitingDelivery     = "awaiting_delivery"
	CargoStatusDelivered            = "delivered"
	CargoStatusCancelled            = "cancelled"
	CargoStatusRejected             = "rejected"
)

// Cargo method constants
const (
	CargoMethodPlane = "plane"
	CargoMethodTruck = "truck"
	CargoMethodShip  = "ship"
)

// Pricing mode constants
const (
	PricingModePerWeight = "per_weight"
	PricingModePerItem   = "per_item"
)

// Coupon type constants
const (
	CouponTypeUniversal = "universal"
	CouponTypeCompany   = "company"
)

// Coupon discount type constants
const (
	DiscountTypeFixed      = "fixed"
	DiscountTypePercentage = "percentage"
)

// Supplier payment status constants
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// User role constants
const (
	RoleCustomer = "customer"
	RoleSupplier = "supplier"
	RoleAdmin    = "admin"
)

// Queue and task name constants
const (
	QueueDefault = "default"

	TaskCargoCreated         = "cargo:created"
	TaskCargoCreatedSupplier = "cargo:created:supplier"
	TaskCargoStatusUpdated   = "cargo:status:updated"
	TaskApplyCommissions     = "cargo:apply:commissions"
	TaskSupplierReview       = "cargo:supplier:review"
)
