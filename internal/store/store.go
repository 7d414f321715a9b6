package store

import (
	"context"
	"errors"

	"showroom/backend/internal/domain"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrDuplicateKey          = errors.New("duplicate key")
	ErrReferentialConstraint = errors.New("referential constraint")
	ErrInvalidInput          = errors.New("invalid input")
)

type Repository interface {
	CreateUser(ctx context.Context, user domain.UserAccount) (*domain.UserAccount, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.UserAccount, error)

	AddInventoryItem(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error)
	GetInventoryItem(ctx context.Context, id int64) (*domain.InventoryItem, error)
	ListInventory(ctx context.Context, filter domain.InventoryFilter) ([]domain.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error)
	// DeleteInventoryItem removes the row outright when nothing
	// references it; otherwise it flags the row sold and reports
	// removed=false.
	DeleteInventoryItem(ctx context.Context, id int64) (removed bool, err error)

	// RecordSale performs the full sale transition atomically: insert
	// the snapshot, remove or flag the inventory row, upsert the
	// customer by CNIC.
	RecordSale(ctx context.Context, sale domain.SoldBikeRecord) (*domain.SoldBikeRecord, error)
	GetSoldBike(ctx context.Context, id int64) (*domain.SoldBikeRecord, error)
	ListSoldBikes(ctx context.Context, filter domain.SoldBikeFilter) ([]domain.SoldBikeRecord, error)
	UpdateSoldBike(ctx context.Context, rec domain.SoldBikeRecord) (*domain.SoldBikeRecord, error)
	DeleteSoldBike(ctx context.Context, id int64) error
	SetGatePassIssued(ctx context.Context, id int64, at string) (*domain.SoldBikeRecord, error)
	SetDocumentsDelivered(ctx context.Context, id int64, token string) (*domain.SoldBikeRecord, error)

	LatestBookingNumber(ctx context.Context) (string, error)
	CreateBooking(ctx context.Context, booking domain.Booking) (*domain.Booking, error)
	GetBooking(ctx context.Context, id int64) (*domain.Booking, error)
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	UpdateBooking(ctx context.Context, booking domain.Booking) (*domain.Booking, error)
	SetBookingDelivered(ctx context.Context, id int64, delivered bool) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error

	UpsertCustomerByCNIC(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	ListCustomers(ctx context.Context, query string) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error

	AddAccountEntry(ctx context.Context, entry domain.AccountEntry) (*domain.AccountEntry, error)
	ListAccountEntries(ctx context.Context, limit int) ([]domain.AccountEntry, error)
}
