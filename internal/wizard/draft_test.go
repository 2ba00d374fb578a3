package wizard

import (
	"testing"

	"courierdesk/internal/domain"
	"courierdesk/internal/domain/models"
	"courierdesk/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddress(phone string) models.Address {
	return models.Address{
		Name:         "Asha Traders",
		MobileNumber: phone,
		FlatBuilding: "12, Marine Chambers",
		Locality:     "Fort",
		Pincode:      "400001",
		City:         "Mumbai",
		District:     "Mumbai City",
		State:        "Maharashtra",
		AddressType:  "office",
	}
}

func validShipment() (models.Shipment, models.Package) {
	return models.Shipment{
			NatureOfConsignment: "medicine",
			Mode:                "surface",
			Dimensions:          []models.Dimension{{Length: 50, Breadth: 40, Height: 30, Unit: "cm"}},
			ActualWeight:        10,
			PerKgRate:           utils.Money(50_00),
		}, models.Package{
			TotalPackages:      2,
			ContentDescription: "pharmaceutical tablets",
		}
}

func validInvoice() models.Invoice {
	return models.Invoice{
		InvoiceNumber: "INV-2042",
		InvoiceValue:  utils.Money(40_000_00),
		AcceptTerms:   true,
	}
}

// walk a draft to the given step using valid data
func draftAt(t *testing.T, step Step) *Draft {
	t.Helper()
	d := NewDraft(7)

	require.NoError(t, d.SetPhone("origin", "9876543210", nil))
	require.NoError(t, d.UseManualAddress("origin", validAddress("9876543210")))
	require.NoError(t, d.Advance())
	if d.Step == step {
		return d
	}

	require.NoError(t, d.SetPhone("destination", "9123456789", nil))
	dest := validAddress("9123456789")
	dest.State = "Karnataka"
	dest.City = "Bengaluru"
	dest.District = "Bengaluru Urban"
	dest.Pincode = "560001"
	require.NoError(t, d.UseManualAddress("destination", dest))
	require.NoError(t, d.Advance())
	if d.Step == step {
		return d
	}

	s, p := validShipment()
	d.SetShipment(s, p)
	require.NoError(t, d.Advance())
	if d.Step == step {
		return d
	}

	d.SetInvoice(validInvoice())
	require.NoError(t, d.Advance())
	if d.Step == step {
		return d
	}

	d.SetBilling(models.Billing{GST: "No", PartyType: "sender"}, models.Charges{})
	require.NoError(t, d.Advance())
	require.Equal(t, step, d.Step)
	return d
}

func TestOriginStepRequiresConfirmedAddress(t *testing.T) {
	d := NewDraft(0)
	err := d.Advance()
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, StepOrigin, d.Step, "failed guard must not advance")

	// found addresses pre-select the first entry but still need a confirm
	require.NoError(t, d.SetPhone("origin", "9876543210", []models.Address{validAddress("9876543210")}))
	assert.Equal(t, SubAddressFound, d.Origin.SubState)
	err = d.Advance()
	assert.True(t, domain.IsValidation(err))

	require.NoError(t, d.ConfirmAddress("origin"))
	assert.NoError(t, d.Advance())
	assert.Equal(t, StepDestination, d.Step)
}

func TestSetPhoneBranchesOnLookupResult(t *testing.T) {
	d := NewDraft(0)
	require.NoError(t, d.SetPhone("origin", "9876543210", nil))
	assert.Equal(t, SubAddressNotFound, d.Origin.SubState)

	assert.Error(t, d.SetPhone("origin", "98765", nil), "short phone rejected")
	assert.Error(t, d.SetPhone("origin", "98765432101", nil), "long phone rejected")
}

func TestResetPhoneClearsDependentState(t *testing.T) {
	d := NewDraft(0)
	require.NoError(t, d.SetPhone("origin", "9876543210", []models.Address{validAddress("9876543210")}))
	require.NoError(t, d.ConfirmAddress("origin"))

	require.NoError(t, d.ResetPhone("origin"))
	assert.Equal(t, SubAwaitingPhone, d.Origin.SubState)
	assert.Empty(t, d.Origin.Phone)
	assert.Nil(t, d.Origin.FoundAddresses)
	assert.False(t, d.Origin.Confirmed)
}

func TestManualAddressKeepsEnteredPhone(t *testing.T) {
	d := NewDraft(0)
	require.NoError(t, d.SetPhone("origin", "9876543210", []models.Address{validAddress("1112223334")}))
	require.NoError(t, d.UseManualAddress("origin", validAddress("ignored")))
	assert.Equal(t, "9876543210", d.Origin.Address.MobileNumber)
	assert.True(t, d.Origin.Confirmed)
}

func TestShipmentStepRequiresTotalPackages(t *testing.T) {
	d := draftAt(t, StepShipment)
	s, p := validShipment()
	p.TotalPackages = 0
	d.SetShipment(s, p)
	err := d.Advance()
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, StepShipment, d.Step)
}

func TestInvoiceEWaybillRule(t *testing.T) {
	d := draftAt(t, StepInvoice)

	inv := validInvoice()
	inv.InvoiceValue = utils.Money(60_000_00)
	d.SetInvoice(inv)
	err := d.Advance()
	assert.True(t, domain.IsValidation(err), "over 50k needs e-waybill")

	inv.EWaybillNumber = "123456789012"
	d.SetInvoice(inv)
	assert.NoError(t, d.Advance())
}

func TestBillingConditionalGuard(t *testing.T) {
	d := draftAt(t, StepBilling)

	d.SetBilling(models.Billing{GST: "Yes", PartyType: "sender"}, models.Charges{})
	err := d.Advance()
	assert.True(t, domain.IsValidation(err), "gst Yes requires billType")
	assert.Equal(t, StepBilling, d.Step)

	d.SetBilling(models.Billing{GST: "Yes", PartyType: "sender", BillType: "rcm"}, models.Charges{})
	assert.NoError(t, d.Advance())
	assert.Equal(t, StepPreview, d.Step)
}

func TestBillingGSTNoSkipsStraightToPreview(t *testing.T) {
	d := draftAt(t, StepBilling)
	d.SetBilling(models.Billing{GST: "No", PartyType: "sender"}, models.Charges{})
	assert.NoError(t, d.Advance())
	assert.Equal(t, StepPreview, d.Step)
	assert.True(t, d.Complete())
	assert.Equal(t, d.Charges.Freight, d.Charges.GrandTotal)
}

func TestPreviewIsTerminalForward(t *testing.T) {
	d := draftAt(t, StepPreview)
	err := d.Advance()
	assert.True(t, domain.IsValidation(err))

	assert.NoError(t, d.Back(StepInvoice))
	assert.Equal(t, StepInvoice, d.Step)
	assert.Error(t, d.Back(StepPreview), "back cannot move forward")
}

func TestRecomputeIdempotent(t *testing.T) {
	d := draftAt(t, StepPreview)
	before := d.Charges
	d.Recompute()
	d.Recompute()
	assert.Equal(t, before, d.Charges)
}

func TestInterStateUsesIGST(t *testing.T) {
	d := draftAt(t, StepBilling)
	d.SetBilling(models.Billing{GST: "Yes", PartyType: "sender", BillType: "normal"}, models.Charges{})
	require.NoError(t, d.Advance())
	// origin Maharashtra, destination Karnataka
	assert.Equal(t, d.Charges.IGST, d.Charges.GSTAmount)
	assert.Zero(t, d.Charges.CGST)
	assert.Equal(t, "708.00", d.Charges.GrandTotal.String())
}
