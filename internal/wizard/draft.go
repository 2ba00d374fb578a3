// Package wizard holds the server side of the multi-step booking form:
// one Draft per session, advanced step by step, with every transition
// guarded by the step's validation rules.
package wizard

import (
	"time"

	"courierdesk/internal/domain"
	"courierdesk/internal/domain/models"
	"courierdesk/internal/pricing"
	"courierdesk/internal/utils"

	"github.com/google/uuid"
)

// PartyState is the origin/destination sub-machine around phone lookup.
type PartyState struct {
	Phone          string           `json:"phone"`
	SubState       PartySubState    `json:"subState"`
	FoundAddresses []models.Address `json:"foundAddresses,omitempty"`
	SelectedIndex  int              `json:"selectedIndex"`
	Confirmed      bool             `json:"confirmed"`
	Address        models.Address   `json:"address"`
}

type Draft struct {
	ID          string          `json:"id"`
	UserID      int64           `json:"userId,omitempty"`
	Step        Step            `json:"step"`
	Origin      PartyState      `json:"origin"`
	Destination PartyState      `json:"destination"`
	Shipment    models.Shipment `json:"shipment"`
	Package     models.Package  `json:"package"`
	Invoice     models.Invoice  `json:"invoice"`
	Billing     models.Billing  `json:"billing"`
	Charges     models.Charges  `json:"charges"`
	Detail      pricing.Detail  `json:"detail"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func NewDraft(userID int64) *Draft {
	return &Draft{
		ID:     uuid.NewString(),
		UserID: userID,
		Step:   StepOrigin,
		Origin: PartyState{SubState: SubAwaitingPhone},
		Destination: PartyState{
			SubState: SubAwaitingPhone,
		},
		Billing:   models.Billing{GST: "No", PartyType: "sender"},
		UpdatedAt: time.Now(),
	}
}

func (d *Draft) party(role string) (*PartyState, error) {
	switch role {
	case "origin":
		return &d.Origin, nil
	case "destination":
		return &d.Destination, nil
	}
	return nil, domain.ValidationError{Field: "role", Msg: "must be origin or destination"}
}

// SetPhone records a completed 10-digit phone plus the lookup result and
// branches the sub-state. Found addresses pre-select the first entry but
// still require an explicit confirm.
func (d *Draft) SetPhone(role, phone string, found []models.Address) error {
	p, err := d.party(role)
	if err != nil {
		return err
	}
	if !utils.IsDigits(phone, 10) {
		return domain.ValidationError{Field: role + ".phone", Msg: "must be exactly 10 digits"}
	}
	p.Phone = phone
	p.Confirmed = false
	p.Address = models.Address{MobileNumber: phone}
	if len(found) == 0 {
		p.SubState = SubAddressNotFound
		p.FoundAddresses = nil
		p.SelectedIndex = 0
		return nil
	}
	p.SubState = SubAddressFound
	p.FoundAddresses = found
	p.SelectedIndex = 0
	return nil
}

// ResetPhone clears everything that depended on the previous number.
func (d *Draft) ResetPhone(role string) error {
	p, err := d.party(role)
	if err != nil {
		return err
	}
	*p = PartyState{SubState: SubAwaitingPhone}
	return nil
}

func (d *Draft) SelectAddress(role string, index int) error {
	p, err := d.party(role)
	if err != nil {
		return err
	}
	if p.SubState != SubAddressFound {
		return domain.ValidationError{Field: role, Msg: "no address list to select from"}
	}
	if index < 0 || index >= len(p.FoundAddresses) {
		return domain.ValidationError{Field: role + ".selectedIndex", Msg: "out of range"}
	}
	p.SelectedIndex = index
	p.Confirmed = false
	return nil
}

// ConfirmAddress finalizes the currently selected address. Even the
// auto-selected first entry needs this explicit confirm.
func (d *Draft) ConfirmAddress(role string) error {
	p, err := d.party(role)
	if err != nil {
		return err
	}
	if p.SubState != SubAddressFound {
		return domain.ValidationError{Field: role, Msg: "no selected address to confirm"}
	}
	addr := p.FoundAddresses[p.SelectedIndex]
	addr.MobileNumber = p.Phone
	if err := ValidateAddress(addr, role); err != nil {
		return err
	}
	p.Address = addr
	p.Confirmed = true
	return nil
}

// UseManualAddress abandons the found list (if any) and takes a manually
// entered address, keeping the phone already captured.
func (d *Draft) UseManualAddress(role string, a models.Address) error {
	p, err := d.party(role)
	if err != nil {
		return err
	}
	if p.Phone == "" {
		return domain.ValidationError{Field: role + ".phone", Msg: "enter the phone number first"}
	}
	a.MobileNumber = p.Phone
	if err := ValidateAddress(a, role); err != nil {
		return err
	}
	p.SubState = SubAddressNotFound
	p.FoundAddresses = nil
	p.Address = a
	p.Confirmed = true
	return nil
}

func (d *Draft) SetShipment(s models.Shipment, p models.Package) {
	d.Shipment = s
	d.Package = p
	d.Recompute()
}

func (d *Draft) SetInvoice(inv models.Invoice) {
	d.Invoice = inv
}

func (d *Draft) SetBilling(b models.Billing, c models.Charges) {
	d.Billing = b
	d.Charges = c
	d.Recompute()
}

// Recompute refreshes derived weights and charges. Pure recomputation from
// current inputs; calling it twice changes nothing.
func (d *Draft) Recompute() {
	det := pricing.Compute(pricing.Input{
		Dimensions:   d.Shipment.Dimensions,
		ActualWeight: d.Shipment.ActualWeight,
		PerKgRate:    d.Shipment.PerKgRate,
		Charges:      d.Charges,
		GSTApplies:   d.Billing.GST == "Yes",
		SameState:    d.Origin.Address.State != "" && d.Origin.Address.State == d.Destination.Address.State,
	})
	d.Detail = det
	d.Shipment.VolumetricWeight = det.VolumetricWeight
	d.Shipment.ChargeableWeight = det.ChargeableWeight
	d.Charges.Freight = det.Freight
	d.Charges.CGST = det.CGST
	d.Charges.SGST = det.SGST
	d.Charges.IGST = det.IGST
	d.Charges.GSTAmount = det.GSTAmount
	d.Charges.GrandTotal = det.GrandTotal
}

// guard returns the validation error blocking the current step, if any.
func (d *Draft) guard() error {
	switch d.Step {
	case StepOrigin:
		if !d.Origin.Confirmed {
			return domain.ValidationError{Field: "origin", Msg: "confirm the sender address first"}
		}
		return ValidateAddress(d.Origin.Address, "origin")
	case StepDestination:
		if !d.Destination.Confirmed {
			return domain.ValidationError{Field: "destination", Msg: "confirm the recipient address first"}
		}
		return ValidateAddress(d.Destination.Address, "destination")
	case StepShipment:
		return ValidateShipment(d.Shipment, d.Package)
	case StepInvoice:
		return ValidateInvoice(d.Invoice)
	case StepBilling:
		return ValidateBilling(d.Billing)
	case StepPreview:
		return domain.ValidationError{Field: "step", Msg: "preview is the final step"}
	}
	return domain.ValidationError{Field: "step", Msg: "unknown step"}
}

// Advance validates the current step and moves forward. Failures leave the
// draft exactly where it was.
func (d *Draft) Advance() error {
	if err := d.guard(); err != nil {
		return err
	}
	nxt, ok := next(d.Step)
	if !ok {
		return domain.ValidationError{Field: "step", Msg: "cannot advance past preview"}
	}
	d.Recompute()
	d.Step = nxt
	return nil
}

// Back moves to an earlier step without validation.
func (d *Draft) Back(to Step) error {
	ti := stepIndex(to)
	ci := stepIndex(d.Step)
	if ti < 0 {
		return domain.ValidationError{Field: "step", Msg: "unknown step"}
	}
	if ti >= ci {
		return domain.ValidationError{Field: "step", Msg: "can only go back to an earlier step"}
	}
	d.Step = to
	return nil
}

// Complete reports whether every step up to preview has been satisfied.
func (d *Draft) Complete() bool {
	return d.Step == StepPreview
}

// ToBooking assembles the submission payload from a completed draft.
func (d *Draft) ToBooking() models.Booking {
	return models.Booking{
		Origin:      d.Origin.Address,
		Destination: d.Destination.Address,
		Shipment:    d.Shipment,
		Package:     d.Package,
		Invoice:     d.Invoice,
		Billing:     d.Billing,
		Charges:     d.Charges,
	}
}
