package customer

import "crm-client/internal/pkg/calendar"

type Status string

const (
	StatusLead     Status = "Lead"
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// SourceManual marks customers entered through the console.
const SourceManual = "Manual"

type Customer struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	Company     string        `json:"company"`
	Address     string        `json:"address"`
	Status      Status        `json:"status"`
	Source      string        `json:"source"`
	OrderValue  float64       `json:"orderValue"`
	Tags        []string      `json:"tags"`
	Created     calendar.Date `json:"created"`
	LastContact calendar.Date `json:"lastContact"`
}

func (c Customer) GetID() int64 { return c.ID }

type CustomerStats struct {
	Total          int     `json:"total"`
	Active         int     `json:"active"`
	Leads          int     `json:"leads"`
	Inactive       int     `json:"inactive"`
	TotalRevenue   float64 `json:"totalRevenue"`
	AverageRevenue float64 `json:"averageRevenue"`
}
