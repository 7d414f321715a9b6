// Package service carries the showroom business rules: validation,
// the sale transition, booking numbering, and the paperwork hooks
// that go with them.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"showroom/backend/internal/cache"
	"showroom/backend/internal/document"
	"showroom/backend/internal/domain"
	"showroom/backend/internal/serial"
	"showroom/backend/internal/store"
)

// ErrValidation marks rejected input; handlers map it to 400.
var ErrValidation = errors.New("validation failed")

type actorContextKey struct{}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(domain.Actor)
	return actor, ok
}

func actorName(ctx context.Context) string {
	if actor, ok := ActorFromContext(ctx); ok {
		return actor.Username
	}
	return "anonymous"
}

type Service struct {
	repo       store.Repository
	listings   cache.ListingCache
	renderer   *document.Renderer
	assetsDir  string
	outputDir  string
	listingTTL time.Duration
}

func New(repo store.Repository, listings cache.ListingCache, renderer *document.Renderer, assetsDir string, outputDir string, listingTTL time.Duration) *Service {
	if renderer == nil {
		renderer = document.NewRenderer()
	}
	if listings == nil {
		listings = cache.NoopListingCache{}
	}
	return &Service{
		repo:       repo,
		listings:   listings,
		renderer:   renderer,
		assetsDir:  assetsDir,
		outputDir:  outputDir,
		listingTTL: listingTTL,
	}
}

// ---- inventory ----

func (s *Service) AddBike(ctx context.Context, req domain.InventoryCreateRequest) (*domain.InventoryItem, error) {
	item := domain.InventoryItem{
		Brand:       strings.TrimSpace(req.Brand),
		Model:       strings.TrimSpace(req.Model),
		Colour:      strings.TrimSpace(req.Colour),
		Variant:     strings.TrimSpace(req.Variant),
		Category:    strings.TrimSpace(req.Category),
		Capacity:    strings.TrimSpace(req.Capacity),
		EngineNo:    strings.TrimSpace(req.EngineNo),
		ChassisNo:   strings.TrimSpace(req.ChassisNo),
		ListedPrice: req.ListedPrice,
		Status:      domain.StatusAvailable,
	}
	if item.EngineNo == "" || item.ChassisNo == "" {
		return nil, fmt.Errorf("%w: engine no and chassis no are required", ErrValidation)
	}
	if item.ListedPrice < 0 {
		return nil, fmt.Errorf("%w: listed price cannot be negative", ErrValidation)
	}

	created, err := s.repo.AddInventoryItem(ctx, item)
	if err != nil {
		return nil, err
	}
	s.bumpListing(ctx, "inventory")
	log.Printf("[service] bike added: id=%d chassis=%s by=%s", created.ID, created.ChassisNo, actorName(ctx))
	return created, nil
}

func (s *Service) GetInventoryItem(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	return s.repo.GetInventoryItem(ctx, id)
}

func (s *Service) ListInventory(ctx context.Context, filter domain.InventoryFilter) ([]domain.InventoryItem, error) {
	key := s.listingKey(ctx, "inventory", fmt.Sprintf("%s|%s|%s|%s", filter.Category, filter.ChassisNo, filter.EngineNo, filter.CustomerCNIC))
	if items, ok := cachedListing[[]domain.InventoryItem](ctx, s, key); ok {
		return items, nil
	}

	items, err := s.repo.ListInventory(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.storeListing(ctx, key, items)
	return items, nil
}

func (s *Service) UpdateInventoryItem(ctx context.Context, id int64, req domain.InventoryUpdateRequest) (*domain.InventoryItem, error) {
	item, err := s.repo.GetInventoryItem(ctx, id)
	if err != nil {
		return nil, err
	}

	applyString(&item.Brand, req.Brand)
	applyString(&item.Model, req.Model)
	applyString(&item.Colour, req.Colour)
	applyString(&item.Variant, req.Variant)
	applyString(&item.Category, req.Category)
	applyString(&item.Capacity, req.Capacity)
	applyString(&item.EngineNo, req.EngineNo)
	applyString(&item.ChassisNo, req.ChassisNo)
	if req.ListedPrice != nil {
		item.ListedPrice = *req.ListedPrice
	}
	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		if status != domain.StatusAvailable && status != domain.StatusSold {
			return nil, fmt.Errorf("%w: status must be %q or %q", ErrValidation, domain.StatusAvailable, domain.StatusSold)
		}
		item.Status = status
	}
	if item.EngineNo == "" || item.ChassisNo == "" {
		return nil, fmt.Errorf("%w: engine no and chassis no are required", ErrValidation)
	}
	if item.ListedPrice < 0 {
		return nil, fmt.Errorf("%w: listed price cannot be negative", ErrValidation)
	}

	updated, err := s.repo.UpdateInventoryItem(ctx, *item)
	if err != nil {
		return nil, err
	}
	s.bumpListing(ctx, "inventory")
	return updated, nil
}

func (s *Service) DeleteInventoryItem(ctx context.Context, id int64) (bool, error) {
	removed, err := s.repo.DeleteInventoryItem(ctx, id)
	if err != nil {
		return false, err
	}
	s.bumpListing(ctx, "inventory")
	if !removed {
		log.Printf("[service] inventory id=%d still referenced by sales, flagged sold instead of removed", id)
	}
	return removed, nil
}

// ---- sale ----

// RecordSale commits the sale atomically, then produces the invoice.
// A failed invoice never unwinds the sale: the response carries the
// document error for the caller to retry.
func (s *Service) RecordSale(ctx context.Context, req domain.SaleRequest) (*domain.SaleResponse, error) {
	name := strings.TrimSpace(req.CustomerName)
	cnic := strings.TrimSpace(req.CustomerCNIC)
	if name == "" || cnic == "" {
		return nil, fmt.Errorf("%w: customer name and CNIC are required", ErrValidation)
	}
	if req.SoldPrice < 0 {
		return nil, fmt.Errorf("%w: sold price cannot be negative", ErrValidation)
	}

	item, err := s.repo.GetInventoryItem(ctx, req.InventoryID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	snapshot := domain.SoldBikeRecord{
		InventoryID:        item.ID,
		Brand:              item.Brand,
		Model:              item.Model,
		Colour:             item.Colour,
		Variant:            item.Variant,
		Category:           item.Category,
		Capacity:           item.Capacity,
		EngineNo:           item.EngineNo,
		ChassisNo:          item.ChassisNo,
		ListedPrice:        item.ListedPrice,
		CustomerName:       name,
		CustomerSO:         strings.TrimSpace(req.CustomerSO),
		CustomerCNIC:       cnic,
		CustomerContact:    strings.TrimSpace(req.CustomerContact),
		CustomerAddress:    strings.TrimSpace(req.CustomerAddress),
		GatePass:           strings.TrimSpace(req.GatePass),
		DocumentsDelivered: strings.TrimSpace(req.DocumentsDelivered),
		SoldPrice:          req.SoldPrice,
		InvoiceNo:          serial.InvoiceNumber(item.ID, now),
		SoldAt:             now,
	}

	sold, err := s.repo.RecordSale(ctx, snapshot)
	if err != nil {
		return nil, err
	}
	s.bumpListing(ctx, "inventory", "sold_bikes", "customers")
	log.Printf("[service] sale recorded: inventory=%d invoice=%s by=%s", sold.InventoryID, sold.InvoiceNo, actorName(ctx))

	resp := &domain.SaleResponse{Sold: *sold}
	if path, renderErr := s.renderInvoice(*sold); renderErr != nil {
		resp.InvoiceError = renderErr.Error()
		log.Printf("[service] WARN: invoice %s not generated: %v", sold.InvoiceNo, renderErr)
	} else {
		resp.InvoicePath = path
	}
	return resp, nil
}

func (s *Service) GetSoldBike(ctx context.Context, id int64) (*domain.SoldBikeRecord, error) {
	return s.repo.GetSoldBike(ctx, id)
}

func (s *Service) ListSoldBikes(ctx context.Context, filter domain.SoldBikeFilter) ([]domain.SoldBikeRecord, error) {
	key := s.listingKey(ctx, "sold_bikes", fmt.Sprintf("%s|%s", filter.CustomerCNIC, filter.InvoiceNo))
	if records, ok := cachedListing[[]domain.SoldBikeRecord](ctx, s, key); ok {
		return records, nil
	}

	records, err := s.repo.ListSoldBikes(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.storeListing(ctx, key, records)
	return records, nil
}

func (s *Service) UpdateSoldBike(ctx context.Context, id int64, req domain.SoldBikeUpdateRequest) (*domain.SoldBikeRecord, error) {
	rec, err := s.repo.GetSoldBike(ctx, id)
	if err != nil {
		return nil, err
	}

	applyString(&rec.CustomerName, req.CustomerName)
	applyString(&rec.CustomerSO, req.CustomerSO)
	applyString(&rec.CustomerContact, req.CustomerContact)
	applyString(&rec.CustomerAddress, req.CustomerAddress)
	applyString(&rec.GatePass, req.GatePass)
	applyString(&rec.DocumentsDelivered, req.DocumentsDelivered)
	if req.SoldPrice != nil {
		if *req.SoldPrice < 0 {
			return nil, fmt.Errorf("%w: sold price cannot be negative", ErrValidation)
		}
		rec.SoldPrice = *req.SoldPrice
	}
	if strings.TrimSpace(rec.CustomerName) == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrValidation)
	}

	updated, err := s.repo.UpdateSoldBike(ctx, *rec)
	if err != nil {
		return nil, err
	}
	s.bumpListing(ctx, "sold_bikes")
	return updated, nil
}

func (s *Service) DeleteSoldBike(ctx context.Context, id int64) error {
	if err := s.repo.DeleteSoldBike(ctx, id); err != nil {
		return err
	}
	s.bumpListing(ctx, "sold_bikes", "inventory")
	log.Printf("[service] sold record deleted: id=%d by=%s", id, actorName(ctx))
	return nil
}

// ToggleDocumentsDelivered flips the delivered token; two toggles
// land back on the starting state.
func (s *Service) ToggleDocumentsDelivered(ctx context.Context, id int64) (*domain.SoldBikeRecord, error) {
	rec, err := s.repo.GetSoldBike(ctx, id)
	if err != nil {
		return nil, err
	}
	token := "yes"
	if domain.IsTruthy(rec.DocumentsDelivered) {
		token = "no"
	}
	updated, err := s.repo.SetDocumentsDelivered(ctx, id, token)
	if err != nil {
		return nil, err
	}
	s.bumpListing(ctx, "sold_bikes")
	return updated, nil
}

// IssueGatePass renders the two-copy gate pass and only then marks
// the record issued, so a template problem leaves the record
// untouched.
func (s *Service) IssueGatePass(ctx context.Context, id int64) (*domain.GatePassResponse, error) {
	rec, err := s.repo.GetSoldBike(ctx, id)
	if err != nil {
		return nil, err
	}

	date := time.Now().UTC().Format("2006-01-02")
	path, err := s.renderGatePass(*rec, date)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.SetGatePassIssued(ctx, id, date)
	if err != nil {
		return nil, err
	}
	s.bumpListing(ctx, "sold_bikes")
	log.Printf("[service] gate pass issued: sold=%d invoice=%s by=%s", id, rec.InvoiceNo, actorName(ctx))
	return &domain.GatePassResponse{Sold: *updated, PassPath: path}, nil
}

// ---- bookings ----

func (s *Service) CreateBooking(ctx context.Context, req domain.BookingCreateRequest) (*domain.BookingResponse, error) {
	booking := domain.Booking{
		BookingDate:    strings.TrimSpace(req.BookingDate),
		Name:           strings.TrimSpace(req.Name),
		SO:             strings.TrimSpace(req.SO),
		CNIC:           strings.TrimSpace(req.CNIC),
		Phone:          strings.TrimSpace(req.Phone),
		Brand:          strings.TrimSpace(req.Brand),
		Model:          strings.TrimSpace(req.Model),
		Colour:         strings.TrimSpace(req.Colour),
		Specifications: strings.TrimSpace(req.Specifications),
		TotalAmount:    req.TotalAmount,
		Advance:        req.Advance,
		DeliveryDate:   strings.TrimSpace(req.DeliveryDate),
	}
	if booking.Name == "" || booking.CNIC == "" {
		return nil, fmt.Errorf("%w: name and CNIC are required", ErrValidation)
	}
	if booking.TotalAmount < 0 || booking.Advance < 0 {
		return nil, fmt.Errorf("%w: amounts cannot be negative", ErrValidation)
	}
	if booking.Advance > booking.TotalAmount {
		return nil, fmt.Errorf("%w: advance cannot exceed total amount", ErrValidation)
	}
	if booking.BookingDate == "" {
		booking.BookingDate = time.Now().UTC().Format("2006-01-02")
	}
	booking.Balance = booking.TotalAmount - booking.Advance

	last, err := s.repo.LatestBookingNumber(ctx)
	if err != nil {
		return nil, err
	}
	booking.BookingNo = serial.NextBookingNumber(last)

	created, err := s.repo.CreateBooking(ctx, booking)
	if err != nil {
		return nil, err
	}
	s.bumpListing(ctx, "bookings")
	log.Printf("[service] booking created: no=%s name=%s by=%s", created.BookingNo, created.Name, actorName(ctx))

	return s.bookingWithLetter(*created), nil
}

func (s *Service) bookingWithLetter(booking domain.Booking) *domain.BookingResponse {
	resp := &domain.BookingResponse{Booking: booking}
	if path, err := s.renderBookingLetter(booking); err != nil {
		resp.LetterError = err.Error()
		log.Printf("[service] WARN: booking letter %s not generated: %v", booking.BookingNo, err)
	} else {
		resp.LetterPath = path
	}
	return resp
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.repo.GetBooking(ctx, id)
}

func (s *Service) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	key := s.listingKey(ctx, "bookings", "all")
	if bookings, ok := cachedListing[[]domain.Booking](ctx, s, key); ok {
		return bookings, nil
	}

	bookings, err := s.repo.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	s.storeListing(ctx, key, bookings)
	return bookings, nil
}

func (s *Service) UpdateBooking(ctx context.Context, id int64, req domain.BookingUpdateRequest) (*domain.BookingResponse, error) {
	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	applyString(&booking.BookingDate, req.BookingDate)
	applyString(&booking.Name, req.Name)
	applyString(&booking.SO, req.SO)
	applyString(&booking.CNIC, req.CNIC)
	applyString(&booking.Phone, req.Phone)
	applyString(&booking.Brand, req.Brand)
	applyString(&booking.Model, req.Model)
	applyString(&booking.Colour, req.Colour)
	applyString(&booking.Specifications, req.Specifications)
	applyString(&booking.DeliveryDate, req.DeliveryDate)
	if req.TotalAmount != nil {
		booking.TotalAmount = *req.TotalAmount
	}
	if req.Advance != nil {
		booking.Advance = *req.Advance
	}
	if booking.Name == "" || booking.CNIC == "" {
		return nil, fmt.Errorf("%w: name and CNIC are required", ErrValidation)
	}
	if booking.TotalAmount < 0 || booking.Advance < 0 {
		return nil, fmt.Errorf("%w: amounts cannot be negative", ErrValidation)
	}
	if booking.Advance > booking.TotalAmount {
		return nil, fmt.Errorf("%w: advance cannot exceed total amount", ErrValidation)
	}
	booking.Balance = booking.TotalAmount - booking.Advance

	updated, err := s.repo.UpdateBooking(ctx, *booking)
	if err != nil {
		return nil, err
	}
	s.bumpListing(ctx, "bookings")
	return s.bookingWithLetter(*updated), nil
}

func (s *Service) ToggleBookingDelivered(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.SetBookingDelivered(ctx, id, !booking.Delivered)
	if err != nil {
		return nil, err
	}
	s.bumpListing(ctx, "bookings")
	return updated, nil
}

func (s *Service) DeleteBooking(ctx context.Context, id int64) error {
	if err := s.repo.DeleteBooking(ctx, id); err != nil {
		return err
	}
	s.bumpListing(ctx, "bookings")
	log.Printf("[service] booking deleted: id=%d by=%s", id, actorName(ctx))
	return nil
}

// GenerateBookingLetter re-renders the letter for an existing
// booking. Unlike the create path, a render failure here is a hard
// error since producing the document is the whole point.
func (s *Service) GenerateBookingLetter(ctx context.Context, id int64) (*domain.BookingResponse, error) {
	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	path, err := s.renderBookingLetter(*booking)
	if err != nil {
		return nil, err
	}
	return &domain.BookingResponse{Booking: *booking, LetterPath: path}, nil
}

// ---- customers ----

func (s *Service) UpsertCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	customer.Name = strings.TrimSpace(customer.Name)
	customer.SO = strings.TrimSpace(customer.SO)
	customer.CNIC = strings.TrimSpace(customer.CNIC)
	customer.Phone = strings.TrimSpace(customer.Phone)
	customer.Address = strings.TrimSpace(customer.Address)
	if customer.CNIC == "" {
		return nil, fmt.Errorf("%w: CNIC is required", ErrValidation)
	}

	result, err := s.repo.UpsertCustomerByCNIC(ctx, customer)
	if err != nil {
		return nil, err
	}
	s.bumpListing(ctx, "customers")
	return result, nil
}

func (s *Service) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) ListCustomers(ctx context.Context, query string) ([]domain.Customer, error) {
	key := s.listingKey(ctx, "customers", query)
	if customers, ok := cachedListing[[]domain.Customer](ctx, s, key); ok {
		return customers, nil
	}

	customers, err := s.repo.ListCustomers(ctx, query)
	if err != nil {
		return nil, err
	}
	s.storeListing(ctx, key, customers)
	return customers, nil
}

func (s *Service) UpdateCustomer(ctx context.Context, id int64, req domain.CustomerUpdateRequest) (*domain.Customer, error) {
	customer, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	applyString(&customer.Name, req.Name)
	applyString(&customer.SO, req.SO)
	applyString(&customer.CNIC, req.CNIC)
	applyString(&customer.Phone, req.Phone)
	applyString(&customer.Address, req.Address)
	if customer.Name == "" || customer.CNIC == "" {
		return nil, fmt.Errorf("%w: name and CNIC are required", ErrValidation)
	}

	updated, err := s.repo.UpdateCustomer(ctx, *customer)
	if err != nil {
		return nil, err
	}
	s.bumpListing(ctx, "customers")
	return updated, nil
}

func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCustomer(ctx, id); err != nil {
		return err
	}
	s.bumpListing(ctx, "customers")
	return nil
}

// ---- accounts ----

func (s *Service) AddAccountEntry(ctx context.Context, req domain.AccountEntryRequest) (*domain.AccountEntry, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if req.Debit < 0 || req.Credit < 0 {
		return nil, fmt.Errorf("%w: debit and credit cannot be negative", ErrValidation)
	}
	if req.Debit == 0 && req.Credit == 0 {
		return nil, fmt.Errorf("%w: either debit or credit must be set", ErrValidation)
	}

	entry, err := s.repo.AddAccountEntry(ctx, domain.AccountEntry{
		Description: description,
		Debit:       req.Debit,
		Credit:      req.Credit,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[service] account entry added: id=%d debit=%.2f credit=%.2f by=%s", entry.ID, entry.Debit, entry.Credit, actorName(ctx))
	return entry, nil
}

func (s *Service) ListAccountEntries(ctx context.Context, limit int) ([]domain.AccountEntry, error) {
	return s.repo.ListAccountEntries(ctx, limit)
}

// ---- documents ----

func (s *Service) renderInvoice(rec domain.SoldBikeRecord) (string, error) {
	coords, err := document.LoadCoordinateMap(
		filepath.Join(s.assetsDir, document.InvoiceCoords),
		document.InvoiceDefaults(), document.Position{X: 40, Y: 200})
	if err != nil {
		return "", err
	}
	outPath := filepath.Join(s.outputDir, "invoices", fmt.Sprintf("invoice_%s.pdf", rec.InvoiceNo))
	return s.renderer.Render(filepath.Join(s.assetsDir, document.InvoiceTemplate), coords, document.InvoiceFields(rec), outPath)
}

func (s *Service) renderBookingLetter(booking domain.Booking) (string, error) {
	coords, err := document.LoadCoordinateMap(
		filepath.Join(s.assetsDir, document.BookingCoords),
		document.BookingDefaults(), document.Position{X: 40, Y: 200})
	if err != nil {
		return "", err
	}
	outPath := filepath.Join(s.outputDir, "bookings", fmt.Sprintf("booking_%s.pdf", booking.BookingNo))
	return s.renderer.Render(filepath.Join(s.assetsDir, document.BookingTemplate), coords, document.BookingFields(booking), outPath)
}

func (s *Service) renderGatePass(rec domain.SoldBikeRecord, date string) (string, error) {
	coords, err := document.LoadCoordinateMap(
		filepath.Join(s.assetsDir, document.GatePassCoords),
		document.GatePassDefaults(), document.Position{X: 40, Y: 200})
	if err != nil {
		return "", err
	}
	name := rec.InvoiceNo
	if name == "" {
		name = fmt.Sprintf("%d", rec.ID)
	}
	outPath := filepath.Join(s.outputDir, "gatepasses", fmt.Sprintf("gatepass_%s.pdf", name))
	return s.renderer.Render(filepath.Join(s.assetsDir, document.GatePassTemplate), coords, document.GatePassFields(rec, date), outPath)
}

// ---- listing cache plumbing ----

// listingKey returns "" when the cache generation cannot be read;
// callers then skip the cache for that request.
func (s *Service) listingKey(ctx context.Context, scope string, variant string) string {
	gen, err := s.listings.Generation(ctx, scope)
	if err != nil {
		log.Printf("[service] WARN: listing cache generation read failed: %v", err)
		return ""
	}
	return fmt.Sprintf("%s:%d:%s", scope, gen, variant)
}

func cachedListing[T any](ctx context.Context, s *Service, key string) (T, bool) {
	var zero T
	if key == "" {
		return zero, false
	}
	payload, ok, err := s.listings.Get(ctx, key)
	if err != nil {
		log.Printf("[service] WARN: listing cache read failed: %v", err)
		return zero, false
	}
	if !ok {
		return zero, false
	}
	var value T
	if err := json.Unmarshal(payload, &value); err != nil {
		log.Printf("[service] WARN: listing cache entry unreadable: %v", err)
		return zero, false
	}
	return value, true
}

func (s *Service) storeListing(ctx context.Context, key string, value any) {
	if key == "" {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		log.Printf("[service] WARN: listing cache marshal failed: %v", err)
		return
	}
	if err := s.listings.Set(ctx, key, payload, s.listingTTL); err != nil {
		log.Printf("[service] WARN: listing cache write failed: %v", err)
	}
}

func (s *Service) bumpListing(ctx context.Context, scopes ...string) {
	for _, scope := range scopes {
		if err := s.listings.Bump(ctx, scope); err != nil {
			log.Printf("[service] WARN: listing cache invalidation failed for %s: %v", scope, err)
		}
	}
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
