package pricing

import (
	"testing"

	"courierdesk/internal/domain/models"
	"courierdesk/internal/utils"

	"github.com/stretchr/testify/assert"
)

func dims(l, b, h float64, unit string) []models.Dimension {
	return []models.Dimension{{Length: l, Breadth: b, Height: h, Unit: unit}}
}

func TestVolumetricWeightUnitScaling(t *testing.T) {
	cm := VolumetricWeight(dims(50, 40, 30, "cm"))
	assert.InDelta(t, 12.0, cm, 0.001)

	// the unit multiplier scales the L×B×H product once, so the result is
	// linear in the multiplier: ×0.1 for mm, ×100 for m
	mm := VolumetricWeight(dims(50, 40, 30, "mm"))
	assert.InDelta(t, 1.2, mm, 0.001)

	m := VolumetricWeight(dims(50, 40, 30, "m"))
	assert.InDelta(t, 1200.0, m, 0.001)

	assert.InDelta(t, cm*0.1, mm, 0.001)
	assert.InDelta(t, cm*100, m, 0.001)
}

func TestVolumetricWeightFirstEntryOnly(t *testing.T) {
	multi := []models.Dimension{
		{Length: 50, Breadth: 40, Height: 30, Unit: "cm"},
		{Length: 100, Breadth: 100, Height: 100, Unit: "cm"},
	}
	assert.Equal(t, VolumetricWeight(multi[:1]), VolumetricWeight(multi))
}

func TestVolumetricWeightEmptyAndZero(t *testing.T) {
	assert.Equal(t, 0.0, VolumetricWeight(nil))
	assert.Equal(t, 0.0, VolumetricWeight(dims(0, 40, 30, "cm")))
}

func TestChargeableWeightIsMax(t *testing.T) {
	assert.Equal(t, 12.0, ChargeableWeight(5, 12))
	assert.Equal(t, 20.0, ChargeableWeight(20, 12))
	assert.Equal(t, 0.0, ChargeableWeight(0, 0))
}

func TestComputeGSTToggle(t *testing.T) {
	in := Input{
		Dimensions:   dims(50, 40, 30, "cm"), // 12 kg volumetric
		ActualWeight: 10,
		PerKgRate:    utils.Money(50_00), // ₹50/kg
	}

	no := Compute(in)
	assert.Equal(t, "600.00", no.Freight.String())
	assert.Equal(t, no.Freight, no.GrandTotal, "gst No: grand total equals freight")
	assert.Equal(t, utils.Money(0), no.GSTAmount)

	in.GSTApplies = true
	in.SameState = false
	yes := Compute(in)
	assert.Equal(t, "108.00", yes.GSTAmount.String())
	assert.Equal(t, "708.00", yes.GrandTotal.String(), "gst Yes: freight x 1.18")
	assert.Equal(t, yes.IGST, yes.GSTAmount)
	assert.Equal(t, utils.Money(0), yes.CGST)
}

func TestComputeIntraStateSplit(t *testing.T) {
	in := Input{
		ActualWeight: 10,
		PerKgRate:    utils.Money(100_00),
		GSTApplies:   true,
		SameState:    true,
	}
	d := Compute(in)
	assert.Equal(t, "90.00", d.CGST.String())
	assert.Equal(t, "90.00", d.SGST.String())
	assert.Equal(t, utils.Money(0), d.IGST)
	assert.Equal(t, d.CGST+d.SGST, d.GSTAmount)
	assert.Equal(t, "1180.00", d.GrandTotal.String())
}

func TestComputeIncludesAncillaryCharges(t *testing.T) {
	in := Input{
		ActualWeight: 10,
		PerKgRate:    utils.Money(50_00),
		Charges: models.Charges{
			AWB:          utils.Money(50_00),
			DoorDelivery: utils.Money(150_00),
		},
		GSTApplies: true,
	}
	d := Compute(in)
	assert.Equal(t, "700.00", d.Taxable.String())
	assert.Equal(t, "126.00", d.GSTAmount.String())
	assert.Equal(t, "826.00", d.GrandTotal.String())
}

func TestComputeDeterministic(t *testing.T) {
	in := Input{
		Dimensions:   dims(33, 27, 19, "cm"),
		ActualWeight: 2.5,
		PerKgRate:    utils.Money(42_50),
		GSTApplies:   true,
	}
	assert.Equal(t, Compute(in), Compute(in))
}
