package entity

import (
	"github.com/shopspring/decimal"
)

// Course is managed outside this service; rows are only read here.
type Course struct {
	BaseSimple
	ID          string          `db:"id" json:"_id"`
	Title       string          `db:"title" json:"title"`
	Description *string         `db:"description" json:"description,omitempty"`
	Price       decimal.Decimal `db:"price" json:"price"`
	OfferPrice  decimal.Decimal `db:"offer_price" json:"offerPrice"`
	Active      bool            `db:"active" json:"active"`
}

// IsFree reports whether a registration for this course is paid on creation.
func (c *Course) IsFree() bool {
	return c.OfferPrice.IsZero()
}

type CourseFilter struct {
	ID         *string
	IncludeAll bool
}
