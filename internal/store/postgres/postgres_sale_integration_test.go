package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"showroom/backend/internal/domain"
)

func TestRecordSaleFlagsInventoryAndUpsertsCustomer(t *testing.T) {
	databaseURL := os.Getenv("SHOWROOM_TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("set SHOWROOM_TEST_DATABASE_URL to run postgres integration test")
	}

	ctx := context.Background()
	s, err := New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})

	stamp := time.Now().UnixNano()
	engineNo := fmt.Sprintf("ENG-SALE-IT-%d", stamp)
	chassisNo := fmt.Sprintf("CHS-SALE-IT-%d", stamp)
	cnic := fmt.Sprintf("35202-%d-1", stamp%10000000)

	item, err := s.AddInventoryItem(ctx, domain.InventoryItem{
		Brand:       "Honda",
		Model:       "CG 125",
		EngineNo:    engineNo,
		ChassisNo:   chassisNo,
		ListedPrice: 234900,
	})
	if err != nil {
		t.Fatalf("add inventory: %v", err)
	}

	t.Cleanup(func() {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM sold_bikes WHERE inventory_id = $1`, item.ID)
		_, _ = s.db.ExecContext(ctx, `DELETE FROM inventory WHERE id = $1`, item.ID)
		_, _ = s.db.ExecContext(ctx, `DELETE FROM customers WHERE cnic = $1`, cnic)
	})

	sold, err := s.RecordSale(ctx, domain.SoldBikeRecord{
		InventoryID:  item.ID,
		Brand:        item.Brand,
		Model:        item.Model,
		EngineNo:     item.EngineNo,
		ChassisNo:    item.ChassisNo,
		ListedPrice:  item.ListedPrice,
		CustomerName: "Ali Raza",
		CustomerCNIC: cnic,
		SoldPrice:    240000,
		InvoiceNo:    fmt.Sprintf("INV-%d-%d", item.ID, stamp),
		SoldAt:       time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("record sale: %v", err)
	}
	if sold.ID == 0 {
		t.Fatal("expected sold record id to be assigned")
	}

	// The new snapshot references the row, so the delete must have
	// fallen back to flagging it sold.
	after, err := s.GetInventoryItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("get inventory after sale: %v", err)
	}
	if after.Status != domain.StatusSold {
		t.Fatalf("expected status %q, got %q", domain.StatusSold, after.Status)
	}

	customers, err := s.ListCustomers(ctx, cnic)
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	if len(customers) != 1 {
		t.Fatalf("expected exactly one customer for %s, got %d", cnic, len(customers))
	}
	if customers[0].Name != "Ali Raza" {
		t.Fatalf("unexpected customer name %q", customers[0].Name)
	}
}
