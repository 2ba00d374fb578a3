package models

import (
	"time"

	"courierdesk/internal/domain"
	"courierdesk/internal/utils"
)

// BookingStatus values move forward only; cancel is allowed from any
// non-terminal state.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusInTransit BookingStatus = "in_transit"
	StatusArrived   BookingStatus = "arrived"
	StatusDelivered BookingStatus = "delivered"
	StatusCancelled BookingStatus = "cancelled"
)

var statusOrder = map[BookingStatus]int{
	StatusPending:   0,
	StatusConfirmed: 1,
	StatusInTransit: 2,
	StatusArrived:   3,
	StatusDelivered: 4,
}

func (s BookingStatus) Valid() bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusOrder[s]
	return ok
}

func (s BookingStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether moving from s to next is legal: one step
// forward along the pipeline, or cancel from any non-terminal state.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	cur, ok1 := statusOrder[s]
	nxt, ok2 := statusOrder[next]
	return ok1 && ok2 && nxt == cur+1
}

// EWaybillThreshold: invoices above this value require an e-waybill number.
const EWaybillThreshold = utils.Money(50_000 * 100)

type Address struct {
	Name         string `json:"name"`
	MobileNumber string `json:"mobileNumber"`
	Email        string `json:"email"`
	CompanyName  string `json:"companyName,omitempty"`
	FlatBuilding string `json:"flatBuilding"`
	Locality     string `json:"locality"`
	Landmark     string `json:"landmark,omitempty"`
	Pincode      string `json:"pincode"`
	City         string `json:"city"`
	District     string `json:"district"`
	State        string `json:"state"`
	Area         string `json:"area,omitempty"`
	GSTNumber    string `json:"gstNumber,omitempty"`
	AddressType  string `json:"addressType"`
}

type Dimension struct {
	Length  float64 `json:"length"`
	Breadth float64 `json:"breadth"`
	Height  float64 `json:"height"`
	Unit    string  `json:"unit"` // cm, mm, m
}

type Shipment struct {
	NatureOfConsignment string      `json:"natureOfConsignment"`
	Services            string      `json:"services"`
	Mode                string      `json:"mode"`
	Insurance           string      `json:"insurance"`
	RiskCoverage        string      `json:"riskCoverage"`
	Dimensions          []Dimension `json:"dimensions"`
	ActualWeight        float64     `json:"actualWeight"`
	PerKgRate           utils.Money `json:"perKgRate"`
	VolumetricWeight    float64     `json:"volumetricWeight"`
	ChargeableWeight    float64     `json:"chargeableWeight"`
}

// ImageRef points at an uploaded object in storage.
type ImageRef struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

type Package struct {
	TotalPackages      int        `json:"totalPackages"`
	Materials          string     `json:"materials,omitempty"`
	PackageImages      []ImageRef `json:"packageImages"`
	ContentDescription string     `json:"contentDescription"`
}

type Invoice struct {
	InvoiceNumber  string      `json:"invoiceNumber"`
	InvoiceValue   utils.Money `json:"invoiceValue"`
	InvoiceImages  []ImageRef  `json:"invoiceImages"`
	EWaybillNumber string      `json:"eWaybillNumber,omitempty"`
	AcceptTerms    bool        `json:"acceptTerms"`
}

type Billing struct {
	GST       string `json:"gst"`       // Yes / No
	PartyType string `json:"partyType"` // sender / recipient
	BillType  string `json:"billType,omitempty"` // normal / rcm, required when GST = Yes
}

type Charges struct {
	Freight          utils.Money `json:"freight"`
	AWB              utils.Money `json:"awb"`
	LocalCollection  utils.Money `json:"localCollection"`
	DoorDelivery     utils.Money `json:"doorDelivery"`
	LoadingUnloading utils.Money `json:"loadingUnloading"`
	Demurrage        utils.Money `json:"demurrage"`
	DDA              utils.Money `json:"dda"`
	Hamali           utils.Money `json:"hamali"`
	Packing          utils.Money `json:"packing"`
	Other            utils.Money `json:"other"`
	FuelAmount       utils.Money `json:"fuelAmount"`
	FuelType         string      `json:"fuelType,omitempty"`
	GSTAmount        utils.Money `json:"gstAmount"`
	SGST             utils.Money `json:"sgst"`
	CGST             utils.Money `json:"cgst"`
	IGST             utils.Money `json:"igst"`
	GrandTotal       utils.Money `json:"grandTotal"`
}

type Payment struct {
	Method string      `json:"method"`
	Status string      `json:"status"`
	Amount utils.Money `json:"amount"`
}

type Booking struct {
	ID                domain.ID     `json:"id"`
	BookingReference  string        `json:"bookingReference"`
	ConsignmentNumber int64         `json:"consignmentNumber"`
	Status            BookingStatus `json:"status"`
	CustomerID        domain.ID     `json:"customerId,omitempty"`
	ColoaderID        domain.ID     `json:"coloaderId,omitempty"`
	Origin            Address       `json:"origin"`
	Destination       Address       `json:"destination"`
	Shipment          Shipment      `json:"shipment"`
	Package           Package       `json:"package"`
	Invoice           Invoice       `json:"invoice"`
	Billing           Billing       `json:"billing"`
	Charges           Charges       `json:"charges"`
	Payment           Payment       `json:"payment"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}
