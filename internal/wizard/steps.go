package wizard

// Step values in wizard order. Navigation is linear; no skipping forward.
type Step string

const (
	StepOrigin      Step = "origin"
	StepDestination Step = "destination"
	StepShipment    Step = "shipment"
	StepInvoice     Step = "invoice"
	StepBilling     Step = "billing"
	StepPreview     Step = "preview"
)

var stepOrder = []Step{
	StepOrigin,
	StepDestination,
	StepShipment,
	StepInvoice,
	StepBilling,
	StepPreview,
}

func stepIndex(s Step) int {
	for i, v := range stepOrder {
		if v == s {
			return i
		}
	}
	return -1
}

// next returns the following step; Preview is terminal for forward moves.
func next(s Step) (Step, bool) {
	i := stepIndex(s)
	if i < 0 || i+1 >= len(stepOrder) {
		return s, false
	}
	return stepOrder[i+1], true
}

// PartySubState tracks the origin/destination lookup branch.
type PartySubState string

const (
	SubAwaitingPhone   PartySubState = "awaiting_phone"
	SubAddressFound    PartySubState = "address_found"
	SubAddressNotFound PartySubState = "address_not_found"
)
