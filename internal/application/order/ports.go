package order

// IDGenerator supplies identifiers for finalized orders.
type IDGenerator interface {
	NewID() string
}
