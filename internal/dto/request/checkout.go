package request

import (
	"encoding/json"

	"brave-registration/internal/data/entity"
)

// CheckoutRequest is the body of both physical and bKash checkout.
type CheckoutRequest struct {
	CourseID string         `json:"courseId" validate:"required"`
	Details  DetailsRequest `json:"details"`
}

// DetailsRequest keeps every field the form sends; unknown ones land in Extra.
type DetailsRequest struct {
	Name    string         `json:"name" validate:"required,max=120"`
	Phone   string         `json:"phone" validate:"required,min=6,max=20"`
	Email   *string        `json:"email,omitempty" validate:"omitempty,email"`
	Address *string        `json:"address,omitempty" validate:"omitempty,max=255"`
	Extra   map[string]any `json:"-"`
}

func (d *DetailsRequest) UnmarshalJSON(data []byte) error {
	type known DetailsRequest
	var k known
	if err := json.Unmarshal(data, &k); err != nil {
		return err
	}

	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, key := range []string{"name", "phone", "email", "address"} {
		delete(all, key)
	}
	if len(all) > 0 {
		k.Extra = all
	}

	*d = DetailsRequest(k)
	return nil
}

func (d DetailsRequest) ToEntity() entity.RegistrantDetails {
	return entity.RegistrantDetails{
		Name:    d.Name,
		Phone:   d.Phone,
		Email:   d.Email,
		Address: d.Address,
		Extra:   d.Extra,
	}
}

// CallbackRequest is the query string bKash appends when redirecting back.
type CallbackRequest struct {
	Status    string
	PaymentID string
}
