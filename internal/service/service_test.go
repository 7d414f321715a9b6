package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"

	"showroom/backend/internal/cache"
	"showroom/backend/internal/document"
	"showroom/backend/internal/domain"
	"showroom/backend/internal/store"
	"showroom/backend/internal/store/memory"
)

// newTestService wires a Service over an empty in-memory store. The
// assets directory starts without templates so document generation
// fails unless a test writes one.
func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	assetsDir := t.TempDir()
	outputDir := t.TempDir()
	svc := New(memory.New(), cache.NoopListingCache{}, document.NewRenderer(), assetsDir, outputDir, time.Minute)
	return svc, assetsDir
}

func writeTemplatePDF(t *testing.T, path string) {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(40, 52, "OW MOTORSPORT")
	if err := pdf.OutputFileAndClose(path); err != nil {
		t.Fatalf("write template: %v", err)
	}
}

func addTestBike(t *testing.T, svc *Service, suffix string) *domain.InventoryItem {
	t.Helper()
	item, err := svc.AddBike(context.Background(), domain.InventoryCreateRequest{
		Brand:       "Honda",
		Model:       "CG 125",
		Colour:      "Red",
		Category:    "Standard",
		EngineNo:    "ENG-" + suffix,
		ChassisNo:   "CHS-" + suffix,
		ListedPrice: 234900,
	})
	if err != nil {
		t.Fatalf("add bike: %v", err)
	}
	return item
}

func TestAddBikeRequiresEngineAndChassis(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.AddBike(context.Background(), domain.InventoryCreateRequest{Brand: "Honda"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddBikeDuplicateChassisRejected(t *testing.T) {
	svc, _ := newTestService(t)
	addTestBike(t, svc, "001")

	_, err := svc.AddBike(context.Background(), domain.InventoryCreateRequest{
		EngineNo:  "ENG-OTHER",
		ChassisNo: "CHS-001",
	})
	if !errors.Is(err, store.ErrDuplicateKey) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
}

func TestRecordSaleCreatesSnapshotAndFlagsInventory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	item := addTestBike(t, svc, "002")

	resp, err := svc.RecordSale(ctx, domain.SaleRequest{
		InventoryID:  item.ID,
		CustomerName: "Ali Raza",
		CustomerCNIC: "35202-1234567-1",
		SoldPrice:    240000,
	})
	if err != nil {
		t.Fatalf("record sale: %v", err)
	}
	if resp.Sold.ID == 0 {
		t.Fatal("expected sold record id to be assigned")
	}
	if resp.Sold.ChassisNo != item.ChassisNo || resp.Sold.Brand != item.Brand {
		t.Fatalf("snapshot does not carry bike fields: %+v", resp.Sold)
	}
	if resp.Sold.InvoiceNo == "" {
		t.Fatal("expected invoice number")
	}
	// No template in the assets dir: the document must fail without
	// unwinding the sale.
	if resp.InvoiceError == "" {
		t.Fatal("expected invoice error with no template installed")
	}

	records, err := svc.ListSoldBikes(ctx, domain.SoldBikeFilter{})
	if err != nil {
		t.Fatalf("list sold bikes: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected exactly one sold record, got %d", len(records))
	}

	// The inventory row is gone or flagged sold, never left available.
	after, err := svc.GetInventoryItem(ctx, item.ID)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		t.Fatalf("get inventory: %v", err)
	case after.Status != domain.StatusSold:
		t.Fatalf("expected inventory flagged sold, got status %q", after.Status)
	}

	customers, err := svc.ListCustomers(ctx, "")
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	if len(customers) != 1 {
		t.Fatalf("expected exactly one customer, got %d", len(customers))
	}
}

func TestRecordSaleMissingInventory(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.RecordSale(context.Background(), domain.SaleRequest{
		InventoryID:  99,
		CustomerName: "Ali Raza",
		CustomerCNIC: "35202-1234567-1",
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRecordSaleRendersInvoiceWhenTemplatePresent(t *testing.T) {
	svc, assetsDir := newTestService(t)
	writeTemplatePDF(t, filepath.Join(assetsDir, document.InvoiceTemplate))
	item := addTestBike(t, svc, "003")

	resp, err := svc.RecordSale(context.Background(), domain.SaleRequest{
		InventoryID:  item.ID,
		CustomerName: "Ali Raza",
		CustomerCNIC: "35202-1234567-1",
		GatePass:     "yes",
		SoldPrice:    350000,
	})
	if err != nil {
		t.Fatalf("record sale: %v", err)
	}
	if resp.InvoiceError != "" {
		t.Fatalf("unexpected invoice error: %s", resp.InvoiceError)
	}
	wantName := fmt.Sprintf("invoice_%s.pdf", resp.Sold.InvoiceNo)
	if filepath.Base(resp.InvoicePath) != wantName {
		t.Fatalf("expected invoice file %s, got %s", wantName, resp.InvoicePath)
	}
	if _, err := os.Stat(resp.InvoicePath); err != nil {
		t.Fatalf("invoice file missing: %v", err)
	}
}

func TestCustomerUpsertFillsOnlyEmptyFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	item := addTestBike(t, svc, "004")

	// First sight: no phone on record.
	if _, err := svc.RecordSale(ctx, domain.SaleRequest{
		InventoryID:  item.ID,
		CustomerName: "Ali Raza",
		CustomerCNIC: "35202-1234567-1",
	}); err != nil {
		t.Fatalf("record sale: %v", err)
	}

	// Second sight fills the empty phone.
	if _, err := svc.UpsertCustomer(ctx, domain.Customer{
		Name:  "Ali Raza",
		CNIC:  "35202-1234567-1",
		Phone: "0300-1234567",
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// A later sparse upsert must not erase or overwrite anything.
	if _, err := svc.UpsertCustomer(ctx, domain.Customer{
		Name: "A. Raza",
		CNIC: "35202-1234567-1",
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	customers, err := svc.ListCustomers(ctx, "")
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	if len(customers) != 1 {
		t.Fatalf("expected one customer, got %d", len(customers))
	}
	got := customers[0]
	if got.Phone != "0300-1234567" {
		t.Fatalf("expected phone to stick, got %q", got.Phone)
	}
	if got.Name != "Ali Raza" {
		t.Fatalf("populated name must not be overwritten, got %q", got.Name)
	}
}

func TestCreateBookingAllocatesSequentialNumbers(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	want := []string{"11000", "11001", "11002"}
	for i, expected := range want {
		resp, err := svc.CreateBooking(ctx, domain.BookingCreateRequest{
			Name:        fmt.Sprintf("Customer %d", i),
			CNIC:        fmt.Sprintf("35202-000000%d-1", i),
			TotalAmount: 300000,
			Advance:     100000,
		})
		if err != nil {
			t.Fatalf("create booking %d: %v", i, err)
		}
		if resp.Booking.BookingNo != expected {
			t.Fatalf("expected booking no %s, got %s", expected, resp.Booking.BookingNo)
		}
		if resp.Booking.Balance != 200000 {
			t.Fatalf("expected balance 200000, got %v", resp.Booking.Balance)
		}
	}
}

func TestUpdateBookingKeepsNumberAndRecomputesBalance(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, domain.BookingCreateRequest{
		Name:        "Ali Raza",
		CNIC:        "35202-1234567-1",
		TotalAmount: 300000,
		Advance:     50000,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	newAdvance := 120000.0
	updated, err := svc.UpdateBooking(ctx, created.Booking.ID, domain.BookingUpdateRequest{Advance: &newAdvance})
	if err != nil {
		t.Fatalf("update booking: %v", err)
	}
	if updated.Booking.BookingNo != created.Booking.BookingNo {
		t.Fatalf("booking number changed: %s -> %s", created.Booking.BookingNo, updated.Booking.BookingNo)
	}
	if updated.Booking.Balance != 180000 {
		t.Fatalf("expected balance 180000, got %v", updated.Booking.Balance)
	}
}

func TestToggleBookingDeliveredTwiceRestores(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, domain.BookingCreateRequest{
		Name: "Ali Raza", CNIC: "35202-1234567-1", TotalAmount: 100, Advance: 0,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	once, err := svc.ToggleBookingDelivered(ctx, created.Booking.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !once.Delivered {
		t.Fatal("expected delivered after first toggle")
	}
	twice, err := svc.ToggleBookingDelivered(ctx, created.Booking.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if twice.Delivered {
		t.Fatal("expected original state after second toggle")
	}
	if twice.BookingNo != created.Booking.BookingNo {
		t.Fatal("toggling must not touch the booking number")
	}
}

func TestToggleDocumentsDeliveredTwiceRestores(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	item := addTestBike(t, svc, "005")

	resp, err := svc.RecordSale(ctx, domain.SaleRequest{
		InventoryID:        item.ID,
		CustomerName:       "Ali Raza",
		CustomerCNIC:       "35202-1234567-1",
		DocumentsDelivered: "no",
	})
	if err != nil {
		t.Fatalf("record sale: %v", err)
	}

	once, err := svc.ToggleDocumentsDelivered(ctx, resp.Sold.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !domain.IsTruthy(once.DocumentsDelivered) {
		t.Fatalf("expected truthy token after first toggle, got %q", once.DocumentsDelivered)
	}
	twice, err := svc.ToggleDocumentsDelivered(ctx, resp.Sold.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if domain.IsTruthy(twice.DocumentsDelivered) {
		t.Fatalf("expected original state after second toggle, got %q", twice.DocumentsDelivered)
	}
}

func TestIssueGatePassWithoutTemplateLeavesRecordUntouched(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	item := addTestBike(t, svc, "006")

	resp, err := svc.RecordSale(ctx, domain.SaleRequest{
		InventoryID:  item.ID,
		CustomerName: "Ali Raza",
		CustomerCNIC: "35202-1234567-1",
	})
	if err != nil {
		t.Fatalf("record sale: %v", err)
	}

	_, err = svc.IssueGatePass(ctx, resp.Sold.ID)
	if !errors.Is(err, document.ErrTemplateNotFound) {
		t.Fatalf("expected template not found, got %v", err)
	}

	rec, err := svc.GetSoldBike(ctx, resp.Sold.ID)
	if err != nil {
		t.Fatalf("get sold bike: %v", err)
	}
	if rec.GatePass != "" || rec.GatePassAt != "" {
		t.Fatalf("gate pass state must stay untouched on render failure: %+v", rec)
	}
}

func TestIssueGatePassMarksRecord(t *testing.T) {
	svc, assetsDir := newTestService(t)
	writeTemplatePDF(t, filepath.Join(assetsDir, document.GatePassTemplate))
	ctx := context.Background()
	item := addTestBike(t, svc, "007")

	sale, err := svc.RecordSale(ctx, domain.SaleRequest{
		InventoryID:  item.ID,
		CustomerName: "Ali Raza",
		CustomerCNIC: "35202-1234567-1",
	})
	if err != nil {
		t.Fatalf("record sale: %v", err)
	}

	pass, err := svc.IssueGatePass(ctx, sale.Sold.ID)
	if err != nil {
		t.Fatalf("issue gate pass: %v", err)
	}
	if !domain.IsTruthy(pass.Sold.GatePass) {
		t.Fatalf("expected gate pass marked issued, got %q", pass.Sold.GatePass)
	}
	wantName := fmt.Sprintf("gatepass_%s.pdf", sale.Sold.InvoiceNo)
	if filepath.Base(pass.PassPath) != wantName {
		t.Fatalf("expected gate pass file %s, got %s", wantName, pass.PassPath)
	}
	if _, err := os.Stat(pass.PassPath); err != nil {
		t.Fatalf("gate pass file missing: %v", err)
	}
}

func TestDeleteInventoryItemWithoutReferences(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	item := addTestBike(t, svc, "008")

	removed, err := svc.DeleteInventoryItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !removed {
		t.Fatal("expected unreferenced item to be removed outright")
	}
	if _, err := svc.GetInventoryItem(ctx, item.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestListInventoryFilters(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	addTestBike(t, svc, "AAA-1")
	addTestBike(t, svc, "BBB-2")

	items, err := svc.ListInventory(ctx, domain.InventoryFilter{ChassisNo: "aaa"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].ChassisNo != "CHS-AAA-1" {
		t.Fatalf("unexpected filter result: %+v", items)
	}
}

func TestAccountEntryValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddAccountEntry(ctx, domain.AccountEntryRequest{Debit: 100}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for missing description, got %v", err)
	}
	if _, err := svc.AddAccountEntry(ctx, domain.AccountEntryRequest{Description: "rent"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for zero amounts, got %v", err)
	}

	entry, err := svc.AddAccountEntry(ctx, domain.AccountEntryRequest{Description: "rent", Debit: 50000})
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if entry.ID == 0 || entry.EntryDate.IsZero() {
		t.Fatalf("expected id and entry date assigned: %+v", entry)
	}
}
