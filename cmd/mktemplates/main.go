// Command mktemplates produces the blank PDF templates and matching
// coordinate maps the document renderer overlays onto. Run it once to
// populate the assets directory, or with -grid to get a calibration
// sheet for adjusting coordinates against a scanned letterhead.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"showroom/backend/internal/document"
)

func main() {
	outDir := flag.String("out", "assets", "directory to write templates and coordinate maps into")
	only := flag.String("only", "all", "which template to generate: invoice, booking, gatepass or all")
	grid := flag.Bool("grid", false, "also write grid.pdf, a 20pt calibration grid")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	type job struct {
		name     string
		template string
		coords   string
		draw     func(*gofpdf.Fpdf)
		defaults map[string]document.Position
	}
	jobs := []job{
		{"invoice", document.InvoiceTemplate, document.InvoiceCoords, drawInvoiceTemplate, document.InvoiceDefaults()},
		{"booking", document.BookingTemplate, document.BookingCoords, drawBookingTemplate, document.BookingDefaults()},
		{"gatepass", document.GatePassTemplate, document.GatePassCoords, drawGatePassTemplate, document.GatePassDefaults()},
	}

	for _, j := range jobs {
		if *only != "all" && *only != j.name {
			continue
		}
		if err := writeTemplate(filepath.Join(*outDir, j.template), j.draw); err != nil {
			log.Fatalf("write %s template: %v", j.name, err)
		}
		if err := writeCoords(filepath.Join(*outDir, j.coords), j.defaults); err != nil {
			log.Fatalf("write %s coordinates: %v", j.name, err)
		}
		log.Printf("wrote %s and %s", j.template, j.coords)
	}

	if *grid {
		if err := writeTemplate(filepath.Join(*outDir, "grid.pdf"), drawCalibrationGrid); err != nil {
			log.Fatalf("write calibration grid: %v", err)
		}
		log.Printf("wrote grid.pdf")
	}
}

func writeTemplate(path string, draw func(*gofpdf.Fpdf)) error {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	draw(pdf)
	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.OutputFileAndClose(path)
}

// writeCoords serializes positions as {"field": [x, y]} pairs, the
// format LoadCoordinateMap reads back.
func writeCoords(path string, positions map[string]document.Position) error {
	out := make(map[string][2]float64, len(positions))
	for key, pos := range positions {
		out[key] = [2]float64{pos.X, pos.Y}
	}
	payload, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(payload, '\n'), 0o644)
}

func heading(pdf *gofpdf.Fpdf, title string, subtitle string) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(centered(pdf, title, 18), 42, title)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(centered(pdf, subtitle, 10), 58, subtitle)
	pdf.Line(40, 70, document.PageWidth-40, 70)
}

func centered(pdf *gofpdf.Fpdf, text string, size float64) float64 {
	pdf.SetFontSize(size)
	return (document.PageWidth - pdf.GetStringWidth(text)) / 2
}

func label(pdf *gofpdf.Fpdf, x float64, y float64, text string) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(x, y, text)
}

// blank draws the fill-in line a field value sits on.
func blank(pdf *gofpdf.Fpdf, x float64, y float64, width float64) {
	pdf.Line(x, y+3, x+width, y+3)
}

func drawInvoiceTemplate(pdf *gofpdf.Fpdf) {
	heading(pdf, "SALES INVOICE", "Motorcycle Showroom")

	label(pdf, document.PageWidth-210, 50, "Date:")
	blank(pdf, document.PageWidth-178, 50, 140)
	label(pdf, document.PageWidth-210, 64, "Invoice No:")
	blank(pdf, document.PageWidth-148, 64, 110)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(40, 110, "Customer")
	label(pdf, 40, 130, "Name:")
	blank(pdf, 86, 130, 330)
	label(pdf, 440, 130, "S/O:")
	blank(pdf, 466, 130, 110)
	label(pdf, 40, 148, "CNIC:")
	blank(pdf, 86, 148, 190)
	label(pdf, 290, 148, "Contact:")
	blank(pdf, 336, 148, 150)
	label(pdf, 40, 175, "Address:")
	blank(pdf, 100, 175, 450)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(40, 300, "Vehicle")
	label(pdf, 80, 330, "Brand:")
	blank(pdf, 116, 330, 170)
	label(pdf, 300, 330, "Model:")
	blank(pdf, 336, 330, 170)
	label(pdf, 80, 355, "Colour:")
	blank(pdf, 116, 355, 150)
	label(pdf, 300, 355, "Engine No:")
	blank(pdf, 366, 355, 150)
	label(pdf, 80, 380, "Chassis No:")
	blank(pdf, 126, 380, 220)

	label(pdf, 40, 410, "Listed Price:")
	blank(pdf, 116, 410, 120)
	label(pdf, 260, 410, "Sold Price:")
	blank(pdf, 316, 410, 120)
	label(pdf, 40, 432, "Gate Pass:")
	label(pdf, 360, 432, "Documents Delivered:")

	pdf.Line(40, 760, 220, 760)
	label(pdf, 40, 775, "Customer Signature")
	pdf.Line(document.PageWidth-220, 760, document.PageWidth-40, 760)
	label(pdf, document.PageWidth-220, 775, "Authorized Signature")
}

func drawBookingTemplate(pdf *gofpdf.Fpdf) {
	heading(pdf, "BOOKING LETTER", "Motorcycle Showroom")

	label(pdf, document.PageWidth-210, 50, "Date:")
	blank(pdf, document.PageWidth-178, 50, 140)
	label(pdf, document.PageWidth-210, 64, "Booking No:")
	blank(pdf, document.PageWidth-154, 64, 110)

	label(pdf, 40, 130, "Name:")
	blank(pdf, 86, 130, 330)
	label(pdf, 440, 130, "S/O:")
	blank(pdf, 466, 130, 110)
	label(pdf, 40, 148, "CNIC:")
	blank(pdf, 86, 148, 190)
	label(pdf, 290, 148, "Phone:")
	blank(pdf, 330, 148, 150)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(40, 200, "Booking Detail")
	label(pdf, 40, 228, "Brand:")
	blank(pdf, 96, 228, 160)
	label(pdf, 270, 228, "Model:")
	blank(pdf, 306, 228, 180)
	label(pdf, 40, 256, "Colour:")
	blank(pdf, 96, 256, 160)
	label(pdf, 270, 256, "Specifications:")
	blank(pdf, 356, 256, 190)
	label(pdf, 40, 284, "Total Amount:")
	blank(pdf, 136, 284, 120)
	label(pdf, 270, 284, "Advance:")
	blank(pdf, 316, 284, 120)
	label(pdf, 450, 284, "Balance:")
	blank(pdf, 496, 284, 60)
	label(pdf, 40, 312, "Delivery Date:")
	blank(pdf, 136, 312, 140)

	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(40, 360, "Terms: the advance is non-refundable once the order is placed with the dealer.")
	pdf.Text(40, 374, "Balance is payable in full at the time of delivery.")

	pdf.Line(40, 760, 220, 760)
	label(pdf, 40, 775, "Customer Signature")
	pdf.Line(document.PageWidth-220, 760, document.PageWidth-40, 760)
	label(pdf, document.PageWidth-220, 775, "Authorized Signature")
}

func drawGatePassTemplate(pdf *gofpdf.Fpdf) {
	drawGatePassHalf(pdf, 0, "GATE PASS - Customer Copy")

	// Cut line between the two copies.
	pdf.SetDashPattern([]float64{4, 4}, 0)
	pdf.Line(40, 290, document.PageWidth-40, 290)
	pdf.SetDashPattern([]float64{}, 0)

	drawGatePassHalf(pdf, 256, "GATE PASS - Showroom Copy")
}

func drawGatePassHalf(pdf *gofpdf.Fpdf, offset float64, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(centered(pdf, title, 14), offset+40, title)

	label(pdf, document.PageWidth-250, offset+50, "Date:")
	blank(pdf, document.PageWidth-214, offset+50, 170)

	label(pdf, 40, offset+110, "Name:")
	blank(pdf, 96, offset+110, 300)
	label(pdf, 450, offset+110, "CNIC:")
	blank(pdf, 496, offset+110, 60)
	label(pdf, 40, offset+132, "Cell:")
	blank(pdf, 96, offset+132, 200)
	label(pdf, 40, offset+160, "Brand:")
	blank(pdf, 91, offset+160, 180)
	label(pdf, 280, offset+160, "Model:")
	blank(pdf, 316, offset+160, 180)
	label(pdf, 40, offset+182, "Engine No:")
	blank(pdf, 106, offset+182, 200)
	label(pdf, 360, offset+182, "Chassis No:")
	blank(pdf, 426, offset+182, 130)

	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(60, offset+219, "Certified that payment is complete and the vehicle may leave the premises.")
}

// drawCalibrationGrid paints a 20pt grid with coordinate labels every
// 100pt so template coordinates can be read off a printout.
func drawCalibrationGrid(pdf *gofpdf.Fpdf) {
	pdf.SetDrawColor(200, 200, 200)
	for x := 0.0; x <= document.PageWidth; x += 20 {
		pdf.Line(x, 0, x, document.PageHeight)
	}
	for y := 0.0; y <= document.PageHeight; y += 20 {
		pdf.Line(0, y, document.PageWidth, y)
	}

	pdf.SetDrawColor(120, 120, 120)
	pdf.SetFont("Helvetica", "", 7)
	for x := 100.0; x <= document.PageWidth; x += 100 {
		pdf.Line(x, 0, x, document.PageHeight)
		pdf.Text(x+2, 10, fmt.Sprintf("%.0f", x))
	}
	for y := 100.0; y <= document.PageHeight; y += 100 {
		pdf.Line(0, y, document.PageWidth, y)
		pdf.Text(2, y-2, fmt.Sprintf("%.0f", y))
	}
}
