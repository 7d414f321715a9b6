package document

import (
	"fmt"

	"showroom/backend/internal/domain"
)

// A4 page size in points; the built-in templates are all A4.
const (
	PageWidth  = 595.28
	PageHeight = 841.89
)

// Template and coordinate map file names expected under the assets
// directory. cmd/mktemplates produces all six.
const (
	InvoiceTemplate  = "invoice.pdf"
	InvoiceCoords    = "invoice_coords.json"
	BookingTemplate  = "booking_letter.pdf"
	BookingCoords    = "booking_coords.json"
	GatePassTemplate = "gatepass.pdf"
	GatePassCoords   = "gatepass_coords.json"
)

// InvoiceFields flattens a sale record into overlay values keyed by
// the invoice template's field names.
func InvoiceFields(rec domain.SoldBikeRecord) map[string]string {
	return map[string]string{
		"date":                rec.SoldAt.Format("2006-01-02 15:04:05"),
		"invoice_no":          rec.InvoiceNo,
		"customer_name":       rec.CustomerName,
		"customer_so":         rec.CustomerSO,
		"customer_cnic":       rec.CustomerCNIC,
		"customer_contact":    rec.CustomerContact,
		"customer_address":    rec.CustomerAddress,
		"brand":               rec.Brand,
		"model":               rec.Model,
		"colour":              rec.Colour,
		"engine_no":           rec.EngineNo,
		"chassis_no":          rec.ChassisNo,
		"sold_price":          fmt.Sprintf("%g", rec.SoldPrice),
		"gate_pass":           rec.GatePass,
		"documents_delivered": rec.DocumentsDelivered,
	}
}

// BookingFields flattens a booking into overlay values for the
// booking letter template.
func BookingFields(b domain.Booking) map[string]string {
	return map[string]string{
		"booking_date":   b.BookingDate,
		"booking_no":     b.BookingNo,
		"name":           b.Name,
		"so":             b.SO,
		"cnic":           b.CNIC,
		"phone":          b.Phone,
		"brand":          b.Brand,
		"model":          b.Model,
		"colour":         b.Colour,
		"specifications": b.Specifications,
		"total_amount":   fmt.Sprintf("%g", b.TotalAmount),
		"advance":        fmt.Sprintf("%g", b.Advance),
		"balance":        fmt.Sprintf("%g", b.Balance),
		"delivery_date":  b.DeliveryDate,
	}
}

// GatePassFields fills both halves of the gate pass form: the
// customer copy and the showroom copy carry the same values, and both
// certification boxes are ticked when the pass is issued.
func GatePassFields(rec domain.SoldBikeRecord, date string) map[string]string {
	fields := map[string]string{
		"date":      date,
		"date_show": date,
	}
	copies := map[string]string{
		"name":    rec.CustomerName,
		"cnic":    rec.CustomerCNIC,
		"cell":    rec.CustomerContact,
		"brand":   rec.Brand,
		"model":   rec.Model,
		"engine":  rec.EngineNo,
		"chassis": rec.ChassisNo,
	}
	for key, value := range copies {
		fields[key+"_cust"] = value
		fields[key+"_show"] = value
	}
	fields["cert_cust_box"] = "yes"
	fields["cert_show_box"] = "yes"
	return fields
}

// InvoiceDefaults is the backstop layout used when the invoice
// coordinate map is missing or lacks a field.
func InvoiceDefaults() map[string]Position {
	return map[string]Position{
		"date":                {X: PageWidth - 174, Y: 50},
		"invoice_no":          {X: PageWidth - 144, Y: 64},
		"customer_name":       {X: 90, Y: 130},
		"customer_so":         {X: 470, Y: 130},
		"customer_cnic":       {X: 90, Y: 148},
		"customer_contact":    {X: 320, Y: 148},
		"customer_address":    {X: 104, Y: 175},
		"brand":               {X: 120, Y: 330},
		"model":               {X: 340, Y: 330},
		"colour":              {X: 120, Y: 355},
		"engine_no":           {X: 370, Y: 355},
		"chassis_no":          {X: 130, Y: 380},
		"listed_price":        {X: 120, Y: 410},
		"sold_price":          {X: 320, Y: 410},
		"gate_pass":           {X: 110, Y: 432},
		"documents_delivered": {X: 440, Y: 432},
	}
}

// BookingDefaults is the backstop layout for the booking letter.
func BookingDefaults() map[string]Position {
	return map[string]Position{
		"booking_date":   {X: PageWidth - 144, Y: 50},
		"booking_no":     {X: PageWidth - 150, Y: 64},
		"name":           {X: 90, Y: 130},
		"so":             {X: 470, Y: 130},
		"cnic":           {X: 90, Y: 148},
		"phone":          {X: 330, Y: 148},
		"brand":          {X: 100, Y: 228},
		"model":          {X: 310, Y: 228},
		"colour":         {X: 100, Y: 256},
		"specifications": {X: 360, Y: 256},
		"total_amount":   {X: 140, Y: 284},
		"advance":        {X: 320, Y: 284},
		"balance":        {X: 500, Y: 284},
		"delivery_date":  {X: 140, Y: 312},
	}
}

// GatePassDefaults is the backstop layout for the two-copy gate pass.
func GatePassDefaults() map[string]Position {
	return map[string]Position{
		"date":          {X: PageWidth - 210, Y: 50},
		"name_cust":     {X: 100, Y: 110},
		"cnic_cust":     {X: 500, Y: 110},
		"cell_cust":     {X: 100, Y: 132},
		"brand_cust":    {X: 95, Y: 160},
		"model_cust":    {X: 320, Y: 160},
		"engine_cust":   {X: 110, Y: 182},
		"chassis_cust":  {X: 430, Y: 182},
		"cert_cust_box": {X: 40, Y: 210},
		"date_show":     {X: PageWidth - 210, Y: 306},
		"name_show":     {X: 100, Y: 366},
		"cnic_show":     {X: 500, Y: 366},
		"cell_show":     {X: 100, Y: 388},
		"brand_show":    {X: 95, Y: 416},
		"model_show":    {X: 320, Y: 416},
		"engine_show":   {X: 110, Y: 438},
		"chassis_show":  {X: 430, Y: 438},
		"cert_show_box": {X: 40, Y: 466},
	}
}
