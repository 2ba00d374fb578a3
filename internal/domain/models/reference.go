package models

import (
	"time"

	"courierdesk/internal/domain"
	"courierdesk/internal/utils"
)

// Coloader is a partner carrier bookings can be consigned through.
type Coloader struct {
	ID            domain.ID `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contactPerson"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email,omitempty"`
	GSTNumber     string    `json:"gstNumber,omitempty"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Employee struct {
	ID        domain.ID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`   // office / admin
	Branch    string    `json:"branch"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// PincodeEntry is one serviceable area row in the pincode directory.
// A pincode can map to several areas across city/district combinations.
type PincodeEntry struct {
	ID          domain.ID `json:"id"`
	Pincode     string    `json:"pincode"`
	State       string    `json:"state"`
	City        string    `json:"city"`
	District    string    `json:"district"`
	Area        string    `json:"area"`
	Serviceable bool      `json:"serviceable"`
}

type CorporatePricing struct {
	ID         domain.ID   `json:"id"`
	ClientName string      `json:"clientName"`
	GSTNumber  string      `json:"gstNumber,omitempty"`
	FromState  string      `json:"fromState"`
	ToState    string      `json:"toState"`
	Mode       string      `json:"mode"`
	PerKgRate  utils.Money `json:"perKgRate"`
	MinCharge  utils.Money `json:"minCharge"`
	Active     bool        `json:"active"`
}

type CustomerPricing struct {
	ID        domain.ID   `json:"id"`
	FromState string      `json:"fromState"`
	ToState   string      `json:"toState"`
	Mode      string      `json:"mode"`
	PerKgRate utils.Money `json:"perKgRate"`
	MinCharge utils.Money `json:"minCharge"`
	Active    bool        `json:"active"`
}

// ConsignmentPool is a contiguous number range assigned to one user.
// Next points at the next unused number; the pool is exhausted when
// Next > End.
type ConsignmentPool struct {
	ID      domain.ID `json:"id"`
	UserID  domain.ID `json:"userId"`
	Start   int64     `json:"start"`
	End     int64     `json:"end"`
	Next    int64     `json:"next"`
	Created time.Time `json:"createdAt"`
}

func (p ConsignmentPool) Available() int64 {
	if p.Next > p.End {
		return 0
	}
	return p.End - p.Next + 1
}
