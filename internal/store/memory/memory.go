// Package memory is the in-process Repository used for development
// and tests. Postgres backs the real deployment; both must agree on
// semantics so service tests run against this store.
package memory

import (
	"context"
	"log"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"showroom/backend/internal/domain"
	"showroom/backend/internal/store"
)

type Store struct {
	mu sync.RWMutex

	usersByUsername map[string]domain.UserAccount
	inventory       map[int64]domain.InventoryItem
	soldBikes       map[int64]domain.SoldBikeRecord
	customers       map[int64]domain.Customer
	bookings        map[int64]domain.Booking
	accountEntries  map[int64]domain.AccountEntry

	nextUserID      int64
	nextInventoryID int64
	nextSoldID      int64
	nextCustomerID  int64
	nextBookingID   int64
	nextAccountID   int64
}

func New() *Store {
	return &Store{
		usersByUsername: map[string]domain.UserAccount{},
		inventory:       map[int64]domain.InventoryItem{},
		soldBikes:       map[int64]domain.SoldBikeRecord{},
		customers:       map[int64]domain.Customer{},
		bookings:        map[int64]domain.Booking{},
		accountEntries:  map[int64]domain.AccountEntry{},
	}
}

// NewSeeded returns a store preloaded with a demo admin account and a
// few bikes, for running without a database. The admin password comes
// from SEED_ADMIN_PASSWORD; the hardcoded default is dev-only.
func NewSeeded() *Store {
	s := New()

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		log.Println("[memory-store] WARNING: using default dev credentials. Set SEED_ADMIN_PASSWORD to override.")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("[memory-store] failed to hash seed password: %v", err)
	}
	s.nextUserID++
	s.usersByUsername["admin"] = domain.UserAccount{
		ID:        s.nextUserID,
		Username:  "admin",
		Password:  string(hash),
		FullName:  "Showroom Admin",
		CreatedAt: time.Now().UTC(),
	}

	seedBikes := []domain.InventoryItem{
		{Brand: "Honda", Model: "CG 125", Colour: "Red", Variant: "Self Start", Category: "Standard", Capacity: "125cc", EngineNo: "ENG-CG125-001", ChassisNo: "CHS-CG125-001", ListedPrice: 234900},
		{Brand: "Yamaha", Model: "YBR 125G", Colour: "Matte Grey", Variant: "G", Category: "Standard", Capacity: "125cc", EngineNo: "ENG-YBR-002", ChassisNo: "CHS-YBR-002", ListedPrice: 471500},
		{Brand: "Suzuki", Model: "GS 150", Colour: "Black", Variant: "SE", Category: "Standard", Capacity: "150cc", EngineNo: "ENG-GS150-003", ChassisNo: "CHS-GS150-003", ListedPrice: 359000},
	}
	for _, bike := range seedBikes {
		s.nextInventoryID++
		bike.ID = s.nextInventoryID
		bike.Status = domain.StatusAvailable
		bike.CreatedAt = time.Now().UTC()
		s.inventory[bike.ID] = bike
	}
	return s
}

// ---- users ----

func (s *Store) CreateUser(_ context.Context, user domain.UserAccount) (*domain.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByUsername[user.Username]; exists {
		return nil, store.ErrDuplicateKey
	}
	s.nextUserID++
	user.ID = s.nextUserID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	s.usersByUsername[user.Username] = user
	clone := user
	return &clone, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*domain.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByUsername[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := user
	return &clone, nil
}

// ---- inventory ----

func (s *Store) AddInventoryItem(_ context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inventoryKeyTakenLocked(item.EngineNo, item.ChassisNo, 0) {
		return nil, store.ErrDuplicateKey
	}
	s.nextInventoryID++
	item.ID = s.nextInventoryID
	if item.Status == "" {
		item.Status = domain.StatusAvailable
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	s.inventory[item.ID] = item
	clone := item
	return &clone, nil
}

func (s *Store) inventoryKeyTakenLocked(engineNo string, chassisNo string, exceptID int64) bool {
	for _, existing := range s.inventory {
		if existing.ID == exceptID {
			continue
		}
		if existing.EngineNo == engineNo || existing.ChassisNo == chassisNo {
			return true
		}
	}
	return false
}

func (s *Store) GetInventoryItem(_ context.Context, id int64) (*domain.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.inventory[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := item
	return &clone, nil
}

func (s *Store) ListInventory(_ context.Context, filter domain.InventoryFilter) ([]domain.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var soldFor map[int64]bool
	if filter.CustomerCNIC != "" {
		soldFor = map[int64]bool{}
		for _, rec := range s.soldBikes {
			if rec.CustomerCNIC == filter.CustomerCNIC {
				soldFor[rec.InventoryID] = true
			}
		}
	}

	items := make([]domain.InventoryItem, 0, len(s.inventory))
	for _, item := range s.inventory {
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.ChassisNo != "" && !containsFold(item.ChassisNo, filter.ChassisNo) {
			continue
		}
		if filter.EngineNo != "" && !containsFold(item.EngineNo, filter.EngineNo) {
			continue
		}
		if soldFor != nil && !soldFor[item.ID] {
			continue
		}
		items = append(items, item)
	}
	slices.SortFunc(items, func(a, b domain.InventoryItem) int {
		return int(b.ID - a.ID)
	})
	return items, nil
}

func containsFold(haystack string, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (s *Store) UpdateInventoryItem(_ context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.inventory[item.ID]
	if !ok {
		return nil, store.ErrNotFound
	}
	if s.inventoryKeyTakenLocked(item.EngineNo, item.ChassisNo, item.ID) {
		return nil, store.ErrDuplicateKey
	}
	item.CreatedAt = existing.CreatedAt
	s.inventory[item.ID] = item
	clone := item
	return &clone, nil
}

func (s *Store) DeleteInventoryItem(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteOrFlagInventoryLocked(id)
}

// deleteOrFlagInventoryLocked mirrors the postgres foreign-key
// behaviour: a row still referenced by sale records cannot be removed
// and is flagged sold instead.
func (s *Store) deleteOrFlagInventoryLocked(id int64) (bool, error) {
	item, ok := s.inventory[id]
	if !ok {
		return false, store.ErrNotFound
	}
	for _, rec := range s.soldBikes {
		if rec.InventoryID == id {
			item.Status = domain.StatusSold
			s.inventory[id] = item
			return false, nil
		}
	}
	delete(s.inventory, id)
	return true, nil
}

// ---- sales ----

func (s *Store) RecordSale(_ context.Context, sale domain.SoldBikeRecord) (*domain.SoldBikeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.inventory[sale.InventoryID]; !ok {
		return nil, store.ErrNotFound
	}

	s.nextSoldID++
	sale.ID = s.nextSoldID
	if sale.SoldAt.IsZero() {
		sale.SoldAt = time.Now().UTC()
	}
	s.soldBikes[sale.ID] = sale

	if _, err := s.deleteOrFlagInventoryLocked(sale.InventoryID); err != nil {
		delete(s.soldBikes, sale.ID)
		return nil, err
	}

	if _, err := s.upsertCustomerLocked(domain.Customer{
		Name:    sale.CustomerName,
		SO:      sale.CustomerSO,
		CNIC:    sale.CustomerCNIC,
		Phone:   sale.CustomerContact,
		Address: sale.CustomerAddress,
	}); err != nil {
		delete(s.soldBikes, sale.ID)
		return nil, err
	}

	clone := sale
	return &clone, nil
}

func (s *Store) GetSoldBike(_ context.Context, id int64) (*domain.SoldBikeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.soldBikes[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := rec
	return &clone, nil
}

func (s *Store) ListSoldBikes(_ context.Context, filter domain.SoldBikeFilter) ([]domain.SoldBikeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.SoldBikeRecord, 0, len(s.soldBikes))
	for _, rec := range s.soldBikes {
		if filter.CustomerCNIC != "" && rec.CustomerCNIC != filter.CustomerCNIC {
			continue
		}
		if filter.InvoiceNo != "" && rec.InvoiceNo != filter.InvoiceNo {
			continue
		}
		records = append(records, rec)
	}
	slices.SortFunc(records, func(a, b domain.SoldBikeRecord) int {
		return int(b.ID - a.ID)
	})
	return records, nil
}

func (s *Store) UpdateSoldBike(_ context.Context, rec domain.SoldBikeRecord) (*domain.SoldBikeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.soldBikes[rec.ID]
	if !ok {
		return nil, store.ErrNotFound
	}
	// Snapshot identity fields stay frozen.
	rec.InventoryID = existing.InventoryID
	rec.InvoiceNo = existing.InvoiceNo
	rec.SoldAt = existing.SoldAt
	s.soldBikes[rec.ID] = rec
	clone := rec
	return &clone, nil
}

func (s *Store) DeleteSoldBike(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.soldBikes[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.soldBikes, id)
	return nil
}

func (s *Store) SetGatePassIssued(_ context.Context, id int64, at string) (*domain.SoldBikeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.soldBikes[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	rec.GatePass = "yes"
	rec.GatePassAt = at
	s.soldBikes[id] = rec
	clone := rec
	return &clone, nil
}

func (s *Store) SetDocumentsDelivered(_ context.Context, id int64, token string) (*domain.SoldBikeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.soldBikes[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	rec.DocumentsDelivered = token
	s.soldBikes[id] = rec
	clone := rec
	return &clone, nil
}

// ---- bookings ----

func (s *Store) LatestBookingNumber(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latestID int64
	latest := ""
	for _, booking := range s.bookings {
		if booking.ID > latestID {
			latestID = booking.ID
			latest = booking.BookingNo
		}
	}
	return latest, nil
}

func (s *Store) CreateBooking(_ context.Context, booking domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.bookings {
		if existing.BookingNo == booking.BookingNo {
			return nil, store.ErrDuplicateKey
		}
	}
	s.nextBookingID++
	booking.ID = s.nextBookingID
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}
	s.bookings[booking.ID] = booking
	clone := booking
	return &clone, nil
}

func (s *Store) GetBooking(_ context.Context, id int64) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := booking
	return &clone, nil
}

func (s *Store) ListBookings(_ context.Context) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]domain.Booking, 0, len(s.bookings))
	for _, booking := range s.bookings {
		bookings = append(bookings, booking)
	}
	slices.SortFunc(bookings, func(a, b domain.Booking) int {
		return int(b.ID - a.ID)
	})
	return bookings, nil
}

func (s *Store) UpdateBooking(_ context.Context, booking domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.bookings[booking.ID]
	if !ok {
		return nil, store.ErrNotFound
	}
	// The booking number is fixed for the lifetime of the booking.
	booking.BookingNo = existing.BookingNo
	booking.CreatedAt = existing.CreatedAt
	s.bookings[booking.ID] = booking
	clone := booking
	return &clone, nil
}

func (s *Store) SetBookingDelivered(_ context.Context, id int64, delivered bool) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	booking.Delivered = delivered
	s.bookings[id] = booking
	clone := booking
	return &clone, nil
}

func (s *Store) DeleteBooking(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.bookings, id)
	return nil
}

// ---- customers ----

func (s *Store) UpsertCustomerByCNIC(_ context.Context, customer domain.Customer) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertCustomerLocked(customer)
}

// upsertCustomerLocked creates the customer on first sight of the
// CNIC; afterwards it only fills fields that are still empty, so a
// later sale with sparse buyer details never erases known data.
func (s *Store) upsertCustomerLocked(customer domain.Customer) (*domain.Customer, error) {
	if strings.TrimSpace(customer.CNIC) == "" {
		return nil, store.ErrInvalidInput
	}

	for id, existing := range s.customers {
		if existing.CNIC != customer.CNIC {
			continue
		}
		existing.Name = fillEmpty(existing.Name, customer.Name)
		existing.SO = fillEmpty(existing.SO, customer.SO)
		existing.Phone = fillEmpty(existing.Phone, customer.Phone)
		existing.Address = fillEmpty(existing.Address, customer.Address)
		s.customers[id] = existing
		clone := existing
		return &clone, nil
	}

	s.nextCustomerID++
	customer.ID = s.nextCustomerID
	s.customers[customer.ID] = customer
	clone := customer
	return &clone, nil
}

func fillEmpty(current string, incoming string) string {
	if strings.TrimSpace(current) == "" && strings.TrimSpace(incoming) != "" {
		return incoming
	}
	return current
}

func (s *Store) GetCustomer(_ context.Context, id int64) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, ok := s.customers[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := customer
	return &clone, nil
}

func (s *Store) ListCustomers(_ context.Context, query string) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customers := make([]domain.Customer, 0, len(s.customers))
	for _, customer := range s.customers {
		if query != "" &&
			!containsFold(customer.Name, query) &&
			!containsFold(customer.CNIC, query) &&
			!containsFold(customer.Phone, query) {
			continue
		}
		customers = append(customers, customer)
	}
	slices.SortFunc(customers, func(a, b domain.Customer) int {
		return int(b.ID - a.ID)
	})
	return customers, nil
}

func (s *Store) UpdateCustomer(_ context.Context, customer domain.Customer) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[customer.ID]; !ok {
		return nil, store.ErrNotFound
	}
	for id, other := range s.customers {
		if id != customer.ID && other.CNIC == customer.CNIC {
			return nil, store.ErrDuplicateKey
		}
	}
	s.customers[customer.ID] = customer
	clone := customer
	return &clone, nil
}

func (s *Store) DeleteCustomer(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.customers, id)
	return nil
}

// ---- accounts ----

func (s *Store) AddAccountEntry(_ context.Context, entry domain.AccountEntry) (*domain.AccountEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextAccountID++
	entry.ID = s.nextAccountID
	if entry.EntryDate.IsZero() {
		entry.EntryDate = time.Now().UTC()
	}
	s.accountEntries[entry.ID] = entry
	clone := entry
	return &clone, nil
}

func (s *Store) ListAccountEntries(_ context.Context, limit int) ([]domain.AccountEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]domain.AccountEntry, 0, len(s.accountEntries))
	for _, entry := range s.accountEntries {
		entries = append(entries, entry)
	}
	slices.SortFunc(entries, func(a, b domain.AccountEntry) int {
		return int(b.ID - a.ID)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
