package offer

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("offer: not found")
	ErrInvalidName        = errors.New("offer: name is required")
	ErrInvalidDiscount    = errors.New("offer: discount percentage must be between 0 and 100")
	ErrInvalidMinQuantity = errors.New("offer: minimum quantity must be greater than zero")
)

// Offer is a promotional entry matched to items by category text only.
// It is advisory data: order submissions never read or enforce offers, and the
// expiry date is kept as the client-supplied string.
type Offer struct {
	ID                 string
	Name               string
	Description        string
	Category           string
	DiscountPercentage float64
	MinQuantity        int
	ValidUntil         string
	UpdatedAt          time.Time
}

func New(id, name, description, category string, discountPercentage float64, minQuantity int, validUntil string) (*Offer, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if discountPercentage < 0 || discountPercentage > 100 {
		return nil, ErrInvalidDiscount
	}
	if minQuantity <= 0 {
		return nil, ErrInvalidMinQuantity
	}
	return &Offer{
		ID:                 id,
		Name:               name,
		Description:        description,
		Category:           category,
		DiscountPercentage: discountPercentage,
		MinQuantity:        minQuantity,
		ValidUntil:         validUntil,
		UpdatedAt:          time.Now().UTC(),
	}, nil
}
