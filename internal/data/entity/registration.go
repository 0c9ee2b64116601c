package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodPhysical PaymentMethod = "physical"
	PaymentMethodBkash    PaymentMethod = "bkash"
)

// RegistrantDetails is what the student submits at checkout.
// Extra holds any contact fields beyond the known ones.
type RegistrantDetails struct {
	Name    string
	Phone   string
	Email   *string
	Address *string
	Extra   map[string]any
}

type Registration struct {
	BaseSimple
	ID            uuid.UUID       `db:"id" json:"_id"`
	UID           string          `db:"uid" json:"uid"`
	CourseID      string          `db:"course_id" json:"course"`
	Name          string          `db:"name" json:"name"`
	Phone         string          `db:"phone" json:"phone"`
	Email         *string         `db:"email" json:"email,omitempty"`
	Address       *string         `db:"address" json:"address,omitempty"`
	Extra         map[string]any  `db:"extra" json:"extra,omitempty"`
	Paid          bool            `db:"paid" json:"paid"`
	PaymentMethod PaymentMethod   `db:"payment_method" json:"paymentMethod"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	PaymentID     *string         `db:"payment_id" json:"paymentID,omitempty"`
	TrxID         *string         `db:"trx_id" json:"trxID,omitempty"`
}

func NewRegistration(courseID string, details RegistrantDetails) *Registration {
	return &Registration{
		ID:       uuid.New(),
		CourseID: courseID,
		Name:     details.Name,
		Phone:    details.Phone,
		Email:    details.Email,
		Address:  details.Address,
		Extra:    details.Extra,
	}
}
