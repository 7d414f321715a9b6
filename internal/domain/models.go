package domain

import (
	"strings"
	"time"
)

// Inventory status values.
const (
	StatusAvailable = "available"
	StatusSold      = "sold"
)

// IsTruthy reports whether a checkbox-style token (gate pass,
// documents delivered) counts as checked. The accepted spellings are
// kept loose because the values originate from free-text entry.
func IsTruthy(token string) bool {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "yes", "y", "true", "1":
		return true
	}
	return false
}

type UserAccount struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
}

type InventoryItem struct {
	ID          int64     `json:"id"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	Colour      string    `json:"colour"`
	Variant     string    `json:"variant"`
	Category    string    `json:"category"`
	Capacity    string    `json:"capacity"`
	EngineNo    string    `json:"engineNo"`
	ChassisNo   string    `json:"chassisNo"`
	ListedPrice float64   `json:"listedPrice"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type InventoryCreateRequest struct {
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	Colour      string  `json:"colour"`
	Variant     string  `json:"variant"`
	Category    string  `json:"category"`
	Capacity    string  `json:"capacity"`
	EngineNo    string  `json:"engineNo"`
	ChassisNo   string  `json:"chassisNo"`
	ListedPrice float64 `json:"listedPrice"`
}

type InventoryUpdateRequest struct {
	Brand       *string  `json:"brand"`
	Model       *string  `json:"model"`
	Colour      *string  `json:"colour"`
	Variant     *string  `json:"variant"`
	Category    *string  `json:"category"`
	Capacity    *string  `json:"capacity"`
	EngineNo    *string  `json:"engineNo"`
	ChassisNo   *string  `json:"chassisNo"`
	ListedPrice *float64 `json:"listedPrice"`
	Status      *string  `json:"status"`
}

// InventoryFilter narrows inventory listings. ChassisNo and EngineNo
// match as substrings; Category matches exactly; CustomerCNIC matches
// bikes whose sale record carries that CNIC.
type InventoryFilter struct {
	Category     string
	ChassisNo    string
	EngineNo     string
	CustomerCNIC string
}

// SoldBikeRecord is a point-in-time snapshot of the bike and buyer at
// the moment of sale. Bike fields are denormalized on purpose so the
// record survives later inventory edits or removal.
type SoldBikeRecord struct {
	ID                 int64     `json:"id"`
	InventoryID        int64     `json:"inventoryId"`
	Brand              string    `json:"brand"`
	Model              string    `json:"model"`
	Colour             string    `json:"colour"`
	Variant            string    `json:"variant"`
	Category           string    `json:"category"`
	Capacity           string    `json:"capacity"`
	EngineNo           string    `json:"engineNo"`
	ChassisNo          string    `json:"chassisNo"`
	ListedPrice        float64   `json:"listedPrice"`
	CustomerName       string    `json:"customerName"`
	CustomerSO         string    `json:"customerSo"`
	CustomerCNIC       string    `json:"customerCnic"`
	CustomerContact    string    `json:"customerContact"`
	CustomerAddress    string    `json:"customerAddress"`
	GatePass           string    `json:"gatePass"`
	GatePassAt         string    `json:"gatePassAt"`
	DocumentsDelivered string    `json:"documentsDelivered"`
	SoldPrice          float64   `json:"soldPrice"`
	InvoiceNo          string    `json:"invoiceNo"`
	SoldAt             time.Time `json:"soldAt"`
}

type SaleRequest struct {
	InventoryID        int64   `json:"inventoryId"`
	CustomerName       string  `json:"customerName"`
	CustomerSO         string  `json:"customerSo"`
	CustomerCNIC       string  `json:"customerCnic"`
	CustomerContact    string  `json:"customerContact"`
	CustomerAddress    string  `json:"customerAddress"`
	GatePass           string  `json:"gatePass"`
	DocumentsDelivered string  `json:"documentsDelivered"`
	SoldPrice          float64 `json:"soldPrice"`
}

// SaleResponse reports the committed sale plus the invoice outcome.
// InvoiceError is set when the document could not be produced; the
// sale itself is never rolled back for a document failure.
type SaleResponse struct {
	Sold         SoldBikeRecord `json:"sold"`
	InvoicePath  string         `json:"invoicePath,omitempty"`
	InvoiceError string         `json:"invoiceError,omitempty"`
}

type SoldBikeUpdateRequest struct {
	CustomerName       *string  `json:"customerName"`
	CustomerSO         *string  `json:"customerSo"`
	CustomerContact    *string  `json:"customerContact"`
	CustomerAddress    *string  `json:"customerAddress"`
	GatePass           *string  `json:"gatePass"`
	DocumentsDelivered *string  `json:"documentsDelivered"`
	SoldPrice          *float64 `json:"soldPrice"`
}

type SoldBikeFilter struct {
	CustomerCNIC string
	InvoiceNo    string
}

type GatePassResponse struct {
	Sold     SoldBikeRecord `json:"sold"`
	PassPath string         `json:"passPath"`
}

type Customer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	SO      string `json:"so"`
	CNIC    string `json:"cnic"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type CustomerUpdateRequest struct {
	Name    *string `json:"name"`
	SO      *string `json:"so"`
	CNIC    *string `json:"cnic"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type Booking struct {
	ID             int64     `json:"id"`
	BookingNo      string    `json:"bookingNo"`
	BookingDate    string    `json:"bookingDate"`
	Name           string    `json:"name"`
	SO             string    `json:"so"`
	CNIC           string    `json:"cnic"`
	Phone          string    `json:"phone"`
	Brand          string    `json:"brand"`
	Model          string    `json:"model"`
	Colour         string    `json:"colour"`
	Specifications string    `json:"specifications"`
	TotalAmount    float64   `json:"totalAmount"`
	Advance        float64   `json:"advance"`
	Balance        float64   `json:"balance"`
	DeliveryDate   string    `json:"deliveryDate"`
	Delivered      bool      `json:"delivered"`
	CreatedAt      time.Time `json:"createdAt"`
}

type BookingCreateRequest struct {
	BookingDate    string  `json:"bookingDate"`
	Name           string  `json:"name"`
	SO             string  `json:"so"`
	CNIC           string  `json:"cnic"`
	Phone          string  `json:"phone"`
	Brand          string  `json:"brand"`
	Model          string  `json:"model"`
	Colour         string  `json:"colour"`
	Specifications string  `json:"specifications"`
	TotalAmount    float64 `json:"totalAmount"`
	Advance        float64 `json:"advance"`
	DeliveryDate   string  `json:"deliveryDate"`
}

// BookingUpdateRequest deliberately has no booking number field; the
// number is fixed at creation.
type BookingUpdateRequest struct {
	BookingDate    *string  `json:"bookingDate"`
	Name           *string  `json:"name"`
	SO             *string  `json:"so"`
	CNIC           *string  `json:"cnic"`
	Phone          *string  `json:"phone"`
	Brand          *string  `json:"brand"`
	Model          *string  `json:"model"`
	Colour         *string  `json:"colour"`
	Specifications *string  `json:"specifications"`
	TotalAmount    *float64 `json:"totalAmount"`
	Advance        *float64 `json:"advance"`
	DeliveryDate   *string  `json:"deliveryDate"`
}

type BookingResponse struct {
	Booking     Booking `json:"booking"`
	LetterPath  string  `json:"letterPath,omitempty"`
	LetterError string  `json:"letterError,omitempty"`
}

type AccountEntry struct {
	ID          int64     `json:"id"`
	EntryDate   time.Time `json:"entryDate"`
	Description string    `json:"description"`
	Debit       float64   `json:"debit"`
	Credit      float64   `json:"credit"`
}

type AccountEntryRequest struct {
	Description string  `json:"description"`
	Debit       float64 `json:"debit"`
	Credit      float64 `json:"credit"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Actor identifies the authenticated user attached to a request.
type Actor struct {
	Username string `json:"username"`
}
