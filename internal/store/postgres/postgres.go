// Package postgres implements the Repository on PostgreSQL via
// database/sql and the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"showroom/backend/internal/domain"
	"showroom/backend/internal/store"
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			full_name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS inventory (
			id BIGSERIAL PRIMARY KEY,
			brand TEXT NOT NULL DEFAULT '',
			model TEXT NOT NULL DEFAULT '',
			colour TEXT NOT NULL DEFAULT '',
			variant TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			capacity TEXT NOT NULL DEFAULT '',
			engine_no TEXT NOT NULL UNIQUE,
			chassis_no TEXT NOT NULL UNIQUE,
			listed_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'available',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS sold_bikes (
			id BIGSERIAL PRIMARY KEY,
			inventory_id BIGINT NOT NULL REFERENCES inventory(id),
			brand TEXT NOT NULL DEFAULT '',
			model TEXT NOT NULL DEFAULT '',
			colour TEXT NOT NULL DEFAULT '',
			variant TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			capacity TEXT NOT NULL DEFAULT '',
			engine_no TEXT NOT NULL DEFAULT '',
			chassis_no TEXT NOT NULL DEFAULT '',
			listed_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			customer_name TEXT NOT NULL DEFAULT '',
			customer_so TEXT NOT NULL DEFAULT '',
			customer_cnic TEXT NOT NULL DEFAULT '',
			customer_contact TEXT NOT NULL DEFAULT '',
			customer_address TEXT NOT NULL DEFAULT '',
			gate_pass TEXT NOT NULL DEFAULT '',
			gate_pass_at TEXT NOT NULL DEFAULT '',
			documents_delivered TEXT NOT NULL DEFAULT '',
			sold_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			invoice_no TEXT NOT NULL DEFAULT '',
			sold_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			so TEXT NOT NULL DEFAULT '',
			cnic TEXT NOT NULL UNIQUE,
			phone TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id BIGSERIAL PRIMARY KEY,
			booking_no TEXT NOT NULL UNIQUE,
			booking_date TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			so TEXT NOT NULL DEFAULT '',
			cnic TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			brand TEXT NOT NULL DEFAULT '',
			model TEXT NOT NULL DEFAULT '',
			colour TEXT NOT NULL DEFAULT '',
			specifications TEXT NOT NULL DEFAULT '',
			total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			advance DOUBLE PRECISION NOT NULL DEFAULT 0,
			balance DOUBLE PRECISION NOT NULL DEFAULT 0,
			delivery_date TEXT NOT NULL DEFAULT '',
			delivered BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id BIGSERIAL PRIMARY KEY,
			entry_date TIMESTAMPTZ NOT NULL DEFAULT now(),
			description TEXT NOT NULL DEFAULT '',
			debit DOUBLE PRECISION NOT NULL DEFAULT 0,
			credit DOUBLE PRECISION NOT NULL DEFAULT 0
		)`,
	}
	for _, statement := range statements {
		if _, err := s.db.ExecContext(ctx, statement); err != nil {
			return err
		}
	}
	return nil
}

const inventoryColumns = `id, brand, model, colour, variant, category, capacity, engine_no, chassis_no, listed_price, status, created_at`

const soldBikeColumns = `id, inventory_id, brand, model, colour, variant, category, capacity, engine_no, chassis_no, listed_price,
	customer_name, customer_so, customer_cnic, customer_contact, customer_address,
	gate_pass, gate_pass_at, documents_delivered, sold_price, invoice_no, sold_at`

const bookingColumns = `id, booking_no, booking_date, name, so, cnic, phone, brand, model, colour, specifications,
	total_amount, advance, balance, delivery_date, delivered, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInventory(row rowScanner) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := row.Scan(&item.ID, &item.Brand, &item.Model, &item.Colour, &item.Variant, &item.Category,
		&item.Capacity, &item.EngineNo, &item.ChassisNo, &item.ListedPrice, &item.Status, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func scanSoldBike(row rowScanner) (*domain.SoldBikeRecord, error) {
	var rec domain.SoldBikeRecord
	err := row.Scan(&rec.ID, &rec.InventoryID, &rec.Brand, &rec.Model, &rec.Colour, &rec.Variant,
		&rec.Category, &rec.Capacity, &rec.EngineNo, &rec.ChassisNo, &rec.ListedPrice,
		&rec.CustomerName, &rec.CustomerSO, &rec.CustomerCNIC, &rec.CustomerContact, &rec.CustomerAddress,
		&rec.GatePass, &rec.GatePassAt, &rec.DocumentsDelivered, &rec.SoldPrice, &rec.InvoiceNo, &rec.SoldAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(&b.ID, &b.BookingNo, &b.BookingDate, &b.Name, &b.SO, &b.CNIC, &b.Phone,
		&b.Brand, &b.Model, &b.Colour, &b.Specifications,
		&b.TotalAmount, &b.Advance, &b.Balance, &b.DeliveryDate, &b.Delivered, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ---- users ----

func (s *Store) CreateUser(ctx context.Context, user domain.UserAccount) (*domain.UserAccount, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password, full_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, user.Username, user.Password, user.FullName)
	if err := row.Scan(&user.ID, &user.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicateKey
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.UserAccount, error) {
	var user domain.UserAccount
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, password, full_name, created_at
		FROM users
		WHERE username = $1
	`, username)
	if err := row.Scan(&user.ID, &user.Username, &user.Password, &user.FullName, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ---- inventory ----

func (s *Store) AddInventoryItem(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	if item.Status == "" {
		item.Status = domain.StatusAvailable
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO inventory (brand, model, colour, variant, category, capacity, engine_no, chassis_no, listed_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`, item.Brand, item.Model, item.Colour, item.Variant, item.Category, item.Capacity,
		item.EngineNo, item.ChassisNo, item.ListedPrice, item.Status)
	if err := row.Scan(&item.ID, &item.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicateKey
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetInventoryItem(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE id = $1`, id)
	item, err := scanInventory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return item, err
}

func (s *Store) ListInventory(ctx context.Context, filter domain.InventoryFilter) ([]domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory`
	var clauses []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.Category != "" {
		clauses = append(clauses, `category = `+arg(filter.Category))
	}
	if filter.ChassisNo != "" {
		clauses = append(clauses, `chassis_no ILIKE '%' || `+arg(filter.ChassisNo)+` || '%'`)
	}
	if filter.EngineNo != "" {
		clauses = append(clauses, `engine_no ILIKE '%' || `+arg(filter.EngineNo)+` || '%'`)
	}
	if filter.CustomerCNIC != "" {
		clauses = append(clauses, `id IN (SELECT inventory_id FROM sold_bikes WHERE customer_cnic = `+arg(filter.CustomerCNIC)+`)`)
	}
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, ` AND `)
	}
	query += ` ORDER BY id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		item, err := scanInventory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *Store) UpdateInventoryItem(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE inventory
		SET brand = $1, model = $2, colour = $3, variant = $4, category = $5, capacity = $6,
			engine_no = $7, chassis_no = $8, listed_price = $9, status = $10
		WHERE id = $11
		RETURNING `+inventoryColumns+`
	`, item.Brand, item.Model, item.Colour, item.Variant, item.Category, item.Capacity,
		item.EngineNo, item.ChassisNo, item.ListedPrice, item.Status, item.ID)
	updated, err := scanInventory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if isUniqueViolation(err) {
		return nil, store.ErrDuplicateKey
	}
	return updated, err
}

func (s *Store) DeleteInventoryItem(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			flagged, flagErr := s.db.ExecContext(ctx, `UPDATE inventory SET status = $1 WHERE id = $2`, domain.StatusSold, id)
			if flagErr != nil {
				return false, flagErr
			}
			if n, _ := flagged.RowsAffected(); n == 0 {
				return false, store.ErrNotFound
			}
			return false, nil
		}
		return false, err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return false, store.ErrNotFound
	}
	return true, nil
}

// ---- sales ----

// RecordSale runs the whole sale transition in one transaction:
// snapshot insert, inventory removal (falling back to a sold flag
// when the new snapshot's foreign key blocks the delete), and the
// fill-empty customer upsert.
func (s *Store) RecordSale(ctx context.Context, sale domain.SoldBikeRecord) (*domain.SoldBikeRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		INSERT INTO sold_bikes (inventory_id, brand, model, colour, variant, category, capacity, engine_no, chassis_no, listed_price,
			customer_name, customer_so, customer_cnic, customer_contact, customer_address,
			gate_pass, gate_pass_at, documents_delivered, sold_price, invoice_no, sold_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id, sold_at
	`, sale.InventoryID, sale.Brand, sale.Model, sale.Colour, sale.Variant, sale.Category, sale.Capacity,
		sale.EngineNo, sale.ChassisNo, sale.ListedPrice,
		sale.CustomerName, sale.CustomerSO, sale.CustomerCNIC, sale.CustomerContact, sale.CustomerAddress,
		sale.GatePass, sale.GatePassAt, sale.DocumentsDelivered, sale.SoldPrice, sale.InvoiceNo, sale.SoldAt)
	if err := row.Scan(&sale.ID, &sale.SoldAt); err != nil {
		if isForeignKeyViolation(err) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	// The snapshot above references the inventory row, so the delete
	// normally trips the foreign key; a savepoint keeps the
	// transaction alive for the sold-flag fallback.
	if _, err := tx.ExecContext(ctx, `SAVEPOINT remove_item`); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM inventory WHERE id = $1`, sale.InventoryID); err != nil {
		if !isForeignKeyViolation(err) {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `ROLLBACK TO SAVEPOINT remove_item`); err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `UPDATE inventory SET status = $1 WHERE id = $2`, domain.StatusSold, sale.InventoryID); err != nil {
			return nil, err
		}
	}

	if err := upsertCustomerTx(ctx, tx, domain.Customer{
		Name:    sale.CustomerName,
		SO:      sale.CustomerSO,
		CNIC:    sale.CustomerCNIC,
		Phone:   sale.CustomerContact,
		Address: sale.CustomerAddress,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &sale, nil
}

// upsertCustomerTx fills only columns that are still empty so repeat
// buyers never lose known details to a sparse sale form.
func upsertCustomerTx(ctx context.Context, tx *sql.Tx, customer domain.Customer) error {
	if strings.TrimSpace(customer.CNIC) == "" {
		return store.ErrInvalidInput
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO customers (name, so, cnic, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (cnic) DO UPDATE SET
			name = CASE WHEN customers.name = '' THEN EXCLUDED.name ELSE customers.name END,
			so = CASE WHEN customers.so = '' THEN EXCLUDED.so ELSE customers.so END,
			phone = CASE WHEN customers.phone = '' THEN EXCLUDED.phone ELSE customers.phone END,
			address = CASE WHEN customers.address = '' THEN EXCLUDED.address ELSE customers.address END
	`, customer.Name, customer.SO, customer.CNIC, customer.Phone, customer.Address)
	return err
}

func (s *Store) GetSoldBike(ctx context.Context, id int64) (*domain.SoldBikeRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+soldBikeColumns+` FROM sold_bikes WHERE id = $1`, id)
	rec, err := scanSoldBike(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return rec, err
}

func (s *Store) ListSoldBikes(ctx context.Context, filter domain.SoldBikeFilter) ([]domain.SoldBikeRecord, error) {
	query := `SELECT ` + soldBikeColumns + ` FROM sold_bikes`
	var clauses []string
	var args []any
	if filter.CustomerCNIC != "" {
		args = append(args, filter.CustomerCNIC)
		clauses = append(clauses, fmt.Sprintf("customer_cnic = $%d", len(args)))
	}
	if filter.InvoiceNo != "" {
		args = append(args, filter.InvoiceNo)
		clauses = append(clauses, fmt.Sprintf("invoice_no = $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, ` AND `)
	}
	query += ` ORDER BY id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.SoldBikeRecord{}
	for rows.Next() {
		rec, err := scanSoldBike(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (s *Store) UpdateSoldBike(ctx context.Context, rec domain.SoldBikeRecord) (*domain.SoldBikeRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE sold_bikes
		SET customer_name = $1, customer_so = $2, customer_contact = $3, customer_address = $4,
			gate_pass = $5, documents_delivered = $6, sold_price = $7
		WHERE id = $8
		RETURNING `+soldBikeColumns+`
	`, rec.CustomerName, rec.CustomerSO, rec.CustomerContact, rec.CustomerAddress,
		rec.GatePass, rec.DocumentsDelivered, rec.SoldPrice, rec.ID)
	updated, err := scanSoldBike(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return updated, err
}

func (s *Store) DeleteSoldBike(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sold_bikes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) SetGatePassIssued(ctx context.Context, id int64, at string) (*domain.SoldBikeRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE sold_bikes
		SET gate_pass = 'yes', gate_pass_at = $1
		WHERE id = $2
		RETURNING `+soldBikeColumns+`
	`, at, id)
	rec, err := scanSoldBike(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return rec, err
}

func (s *Store) SetDocumentsDelivered(ctx context.Context, id int64, token string) (*domain.SoldBikeRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE sold_bikes
		SET documents_delivered = $1
		WHERE id = $2
		RETURNING `+soldBikeColumns+`
	`, token, id)
	rec, err := scanSoldBike(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return rec, err
}

// ---- bookings ----

func (s *Store) LatestBookingNumber(ctx context.Context) (string, error) {
	var bookingNo string
	row := s.db.QueryRowContext(ctx, `SELECT booking_no FROM bookings ORDER BY id DESC LIMIT 1`)
	if err := row.Scan(&bookingNo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return bookingNo, nil
}

func (s *Store) CreateBooking(ctx context.Context, booking domain.Booking) (*domain.Booking, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO bookings (booking_no, booking_date, name, so, cnic, phone, brand, model, colour, specifications,
			total_amount, advance, balance, delivery_date, delivered)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at
	`, booking.BookingNo, booking.BookingDate, booking.Name, booking.SO, booking.CNIC, booking.Phone,
		booking.Brand, booking.Model, booking.Colour, booking.Specifications,
		booking.TotalAmount, booking.Advance, booking.Balance, booking.DeliveryDate, booking.Delivered)
	if err := row.Scan(&booking.ID, &booking.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicateKey
		}
		return nil, err
	}
	return &booking, nil
}

func (s *Store) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	booking, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return booking, err
}

func (s *Store) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}
	return bookings, rows.Err()
}

// UpdateBooking leaves booking_no untouched; the number is permanent.
func (s *Store) UpdateBooking(ctx context.Context, booking domain.Booking) (*domain.Booking, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE bookings
		SET booking_date = $1, name = $2, so = $3, cnic = $4, phone = $5, brand = $6, model = $7, colour = $8,
			specifications = $9, total_amount = $10, advance = $11, balance = $12, delivery_date = $13
		WHERE id = $14
		RETURNING `+bookingColumns+`
	`, booking.BookingDate, booking.Name, booking.SO, booking.CNIC, booking.Phone,
		booking.Brand, booking.Model, booking.Colour, booking.Specifications,
		booking.TotalAmount, booking.Advance, booking.Balance, booking.DeliveryDate, booking.ID)
	updated, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return updated, err
}

func (s *Store) SetBookingDelivered(ctx context.Context, id int64, delivered bool) (*domain.Booking, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE bookings SET delivered = $1 WHERE id = $2
		RETURNING `+bookingColumns+`
	`, delivered, id)
	booking, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return booking, err
}

func (s *Store) DeleteBooking(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ---- customers ----

func (s *Store) UpsertCustomerByCNIC(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	if strings.TrimSpace(customer.CNIC) == "" {
		return nil, store.ErrInvalidInput
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO customers (name, so, cnic, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (cnic) DO UPDATE SET
			name = CASE WHEN customers.name = '' THEN EXCLUDED.name ELSE customers.name END,
			so = CASE WHEN customers.so = '' THEN EXCLUDED.so ELSE customers.so END,
			phone = CASE WHEN customers.phone = '' THEN EXCLUDED.phone ELSE customers.phone END,
			address = CASE WHEN customers.address = '' THEN EXCLUDED.address ELSE customers.address END
		RETURNING id, name, so, cnic, phone, address
	`, customer.Name, customer.SO, customer.CNIC, customer.Phone, customer.Address)
	var result domain.Customer
	if err := row.Scan(&result.ID, &result.Name, &result.SO, &result.CNIC, &result.Phone, &result.Address); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Store) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	var customer domain.Customer
	row := s.db.QueryRowContext(ctx, `SELECT id, name, so, cnic, phone, address FROM customers WHERE id = $1`, id)
	if err := row.Scan(&customer.ID, &customer.Name, &customer.SO, &customer.CNIC, &customer.Phone, &customer.Address); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (s *Store) ListCustomers(ctx context.Context, query string) ([]domain.Customer, error) {
	sqlQuery := `SELECT id, name, so, cnic, phone, address FROM customers`
	var args []any
	if query != "" {
		args = append(args, query)
		sqlQuery += ` WHERE name ILIKE '%' || $1 || '%' OR cnic ILIKE '%' || $1 || '%' OR phone ILIKE '%' || $1 || '%'`
	}
	sqlQuery += ` ORDER BY id DESC`

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(&customer.ID, &customer.Name, &customer.SO, &customer.CNIC, &customer.Phone, &customer.Address); err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

func (s *Store) UpdateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE customers
		SET name = $1, so = $2, cnic = $3, phone = $4, address = $5
		WHERE id = $6
		RETURNING id, name, so, cnic, phone, address
	`, customer.Name, customer.SO, customer.CNIC, customer.Phone, customer.Address, customer.ID)
	var updated domain.Customer
	if err := row.Scan(&updated.ID, &updated.Name, &updated.SO, &updated.CNIC, &updated.Phone, &updated.Address); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicateKey
		}
		return nil, err
	}
	return &updated, nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrReferentialConstraint
		}
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ---- accounts ----

func (s *Store) AddAccountEntry(ctx context.Context, entry domain.AccountEntry) (*domain.AccountEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO accounts (description, debit, credit)
		VALUES ($1, $2, $3)
		RETURNING id, entry_date
	`, entry.Description, entry.Debit, entry.Credit)
	if err := row.Scan(&entry.ID, &entry.EntryDate); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Store) ListAccountEntries(ctx context.Context, limit int) ([]domain.AccountEntry, error) {
	query := `SELECT id, entry_date, description, debit, credit FROM accounts ORDER BY id DESC`
	var args []any
	if limit > 0 {
		args = append(args, limit)
		query += ` LIMIT $1`
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.AccountEntry{}
	for rows.Next() {
		var entry domain.AccountEntry
		if err := rows.Scan(&entry.ID, &entry.EntryDate, &entry.Description, &entry.Debit, &entry.Credit); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
