package customer

import (
	"bytes"
	"encoding/json"
)

// Amount is a decimal as typed into a form. Clients may send it as a JSON
// string or a JSON number; both keep their literal text.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Amount(n)
	return nil
}

// CreateCustomerRequest is the customer form as submitted. OrderValue and
// Tags arrive as raw text: a decimal and a comma separated list.
type CreateCustomerRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,mailbox"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	Address    string `json:"address"`
	Status     Status `json:"status" validate:"omitempty,oneof=Lead Active Inactive"`
	Source     string `json:"source"`
	OrderValue Amount `json:"orderValue" validate:"omitempty,amount"`
	Tags       string `json:"tags"`
}

// UpdateCustomerRequest is a partial update; nil fields are left alone.
type UpdateCustomerRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Email       *string `json:"email" validate:"omitempty,mailbox"`
	Phone       *string `json:"phone"`
	Company     *string `json:"company"`
	Address     *string `json:"address"`
	Status      *Status `json:"status" validate:"omitempty,oneof=Lead Active Inactive"`
	Source      *string `json:"source"`
	OrderValue  *Amount `json:"orderValue" validate:"omitempty,amount"`
	Tags        *string `json:"tags"`
	LastContact *string `json:"lastContact" validate:"omitempty,datetime=2006-01-02"`
}

type CustomerListFilters struct {
	Status Status `form:"status"`
	Search string `form:"search"`
}
