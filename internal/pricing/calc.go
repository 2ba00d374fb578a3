// Package pricing derives chargeable freight figures from raw shipment
// inputs. Everything here is a pure function of its arguments so the same
// inputs always produce the same charges.
package pricing

import (
	"math"
	"strings"

	"courierdesk/internal/domain/models"
	"courierdesk/internal/utils"
)

// VolumetricDivisor converts cm³ to kilograms for air/surface courier.
const VolumetricDivisor = 5000.0

// GST rates in percent. Intra-state splits into CGST+SGST halves.
const (
	gstRatePct = 18
	gstHalfPct = 9
)

// UnitMultiplier maps a dimension unit to the scale factor applied once to
// the L×B×H product. Unknown units fall back to cm.
func UnitMultiplier(unit string) float64 {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "mm":
		return 0.1
	case "m":
		return 100
	default:
		return 1
	}
}

// VolumetricWeight computes L×B×H×unit/5000 from the first dimension entry
// only. Multi-entry shipments intentionally keep this behavior; see the
// booking register docs before changing it.
func VolumetricWeight(dims []models.Dimension) float64 {
	if len(dims) == 0 {
		return 0
	}
	d := dims[0]
	if d.Length <= 0 || d.Breadth <= 0 || d.Height <= 0 {
		return 0
	}
	m := UnitMultiplier(d.Unit)
	return round2(d.Length * d.Breadth * d.Height * m / VolumetricDivisor)
}

// ChargeableWeight is the greater of actual and volumetric weight.
func ChargeableWeight(actual, volumetric float64) float64 {
	return math.Max(actual, volumetric)
}

// Detail is the fully derived charge breakdown for one booking.
type Detail struct {
	VolumetricWeight float64     `json:"volumetricWeight"`
	ChargeableWeight float64     `json:"chargeableWeight"`
	Freight          utils.Money `json:"freight"`
	Taxable          utils.Money `json:"taxable"`
	CGST             utils.Money `json:"cgst"`
	SGST             utils.Money `json:"sgst"`
	IGST             utils.Money `json:"igst"`
	GSTAmount        utils.Money `json:"gstAmount"`
	GrandTotal       utils.Money `json:"grandTotal"`
}

// Input collects everything the calculator needs.
type Input struct {
	Dimensions   []models.Dimension
	ActualWeight float64
	PerKgRate    utils.Money
	Charges      models.Charges // non-freight components; Freight and tax fields ignored
	GSTApplies   bool           // billing.gst == Yes
	SameState    bool           // origin.state == destination.state
}

// Compute derives the full charge detail. Freight is chargeable weight times
// the per-kg rate; GST at 18% applies to the taxable total only when the
// billing flag is set, split CGST/SGST intra-state and IGST otherwise.
func Compute(in Input) Detail {
	vol := VolumetricWeight(in.Dimensions)
	chg := ChargeableWeight(in.ActualWeight, vol)
	freight := in.PerKgRate.MulFloat(chg)

	taxable := freight +
		in.Charges.AWB + in.Charges.LocalCollection + in.Charges.DoorDelivery +
		in.Charges.LoadingUnloading + in.Charges.Demurrage + in.Charges.DDA +
		in.Charges.Hamali + in.Charges.Packing + in.Charges.Other +
		in.Charges.FuelAmount

	out := Detail{
		VolumetricWeight: vol,
		ChargeableWeight: chg,
		Freight:          freight,
		Taxable:          taxable,
		GrandTotal:       taxable,
	}

	if in.GSTApplies {
		if in.SameState {
			out.CGST = taxable.MulPercent(gstHalfPct)
			out.SGST = taxable.MulPercent(gstHalfPct)
			out.GSTAmount = out.CGST + out.SGST
		} else {
			out.IGST = taxable.MulPercent(gstRatePct)
			out.GSTAmount = out.IGST
		}
		out.GrandTotal = taxable + out.GSTAmount
	}

	return out
}

// Apply copies a computed detail back onto the booking's charge fields.
func Apply(b *models.Booking, d Detail) {
	b.Shipment.VolumetricWeight = d.VolumetricWeight
	b.Shipment.ChargeableWeight = d.ChargeableWeight
	b.Charges.Freight = d.Freight
	b.Charges.CGST = d.CGST
	b.Charges.SGST = d.SGST
	b.Charges.IGST = d.IGST
	b.Charges.GSTAmount = d.GSTAmount
	b.Charges.GrandTotal = d.GrandTotal
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
