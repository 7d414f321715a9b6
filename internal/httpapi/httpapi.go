// Package httpapi exposes the showroom over a JSON HTTP API. Routing
// stays on the standard mux; handlers parse the path tail themselves.
package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"showroom/backend/internal/document"
	"showroom/backend/internal/domain"
	"showroom/backend/internal/service"
	"showroom/backend/internal/store"
)

type API struct {
	service       *service.Service
	auth          *AuthManager
	allowedOrigin string
}

func New(svc *service.Service, auth *AuthManager, allowedOrigin string) *API {
	return &API{
		service:       svc,
		auth:          auth,
		allowedOrigin: allowedOrigin,
	}
}

func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", a.handleHealth)
	mux.HandleFunc("/api/v1/auth/signup", a.handleSignup)
	mux.HandleFunc("/api/v1/auth/login", a.handleLogin)

	mux.HandleFunc("/api/v1/inventory", a.requireAuth(a.handleInventory))
	mux.HandleFunc("/api/v1/inventory/", a.requireAuth(a.handleInventoryActions))
	mux.HandleFunc("/api/v1/sold-bikes", a.requireAuth(a.handleSoldBikes))
	mux.HandleFunc("/api/v1/sold-bikes/", a.requireAuth(a.handleSoldBikeActions))
	mux.HandleFunc("/api/v1/bookings", a.requireAuth(a.handleBookings))
	mux.HandleFunc("/api/v1/bookings/", a.requireAuth(a.handleBookingActions))
	mux.HandleFunc("/api/v1/customers", a.requireAuth(a.handleCustomers))
	mux.HandleFunc("/api/v1/customers/", a.requireAuth(a.handleCustomerActions))
	mux.HandleFunc("/api/v1/accounts", a.requireAuth(a.handleAccounts))

	return a.withMiddleware(mux)
}

func (a *API) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorization := strings.TrimSpace(r.Header.Get("Authorization"))
		if !strings.HasPrefix(strings.ToLower(authorization), "bearer ") {
			writeError(w, http.StatusUnauthorized, errors.New("missing bearer token"))
			return
		}

		token := strings.TrimSpace(authorization[len("Bearer "):])
		actor, err := a.auth.ParseToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err)
			return
		}

		next(w, r.WithContext(service.WithActor(r.Context(), actor)))
	}
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"at": time.Now().UTC().Format(time.RFC3339),
	})
}

// ---- auth ----

func (a *API) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req domain.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	user, err := a.auth.Signup(r.Context(), req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, store.ErrDuplicateKey) {
			status = http.StatusConflict
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req domain.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp, err := a.auth.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, errTooManyAttempts) {
			writeError(w, http.StatusTooManyRequests, err)
			return
		}
		writeError(w, http.StatusUnauthorized, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- inventory ----

func (a *API) handleInventory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		filter := domain.InventoryFilter{
			Category:     strings.TrimSpace(r.URL.Query().Get("category")),
			ChassisNo:    strings.TrimSpace(r.URL.Query().Get("chassisNo")),
			EngineNo:     strings.TrimSpace(r.URL.Query().Get("engineNo")),
			CustomerCNIC: strings.TrimSpace(r.URL.Query().Get("customerCnic")),
		}
		items, err := a.service.ListInventory(r.Context(), filter)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	case http.MethodPost:
		var req domain.InventoryCreateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		item, err := a.service.AddBike(r.Context(), req)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"item": item})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleInventoryActions(w http.ResponseWriter, r *http.Request) {
	tail := pathTail(r.URL.Path, "/api/v1/inventory/")
	if tail == "" {
		writeError(w, http.StatusBadRequest, errors.New("inventory id required"))
		return
	}

	if rest, ok := strings.CutSuffix(tail, "/sale"); ok {
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w)
			return
		}
		id, err := parseID(rest)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		var req domain.SaleRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		req.InventoryID = id

		resp, err := a.service.RecordSale(r.Context(), req)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, resp)
		return
	}

	id, err := parseID(tail)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		item, err := a.service.GetInventoryItem(r.Context(), id)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"item": item})
	case http.MethodPatch:
		var req domain.InventoryUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		item, err := a.service.UpdateInventoryItem(r.Context(), id, req)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"item": item})
	case http.MethodDelete:
		removed, err := a.service.DeleteInventoryItem(r.Context(), id)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"removed": removed})
	default:
		writeMethodNotAllowed(w)
	}
}

// ---- sold bikes ----

func (a *API) handleSoldBikes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	filter := domain.SoldBikeFilter{
		CustomerCNIC: strings.TrimSpace(r.URL.Query().Get("cnic")),
		InvoiceNo:    strings.TrimSpace(r.URL.Query().Get("invoiceNo")),
	}
	records, err := a.service.ListSoldBikes(r.Context(), filter)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

func (a *API) handleSoldBikeActions(w http.ResponseWriter, r *http.Request) {
	tail := pathTail(r.URL.Path, "/api/v1/sold-bikes/")
	if tail == "" {
		writeError(w, http.StatusBadRequest, errors.New("sold record id required"))
		return
	}

	if rest, ok := strings.CutSuffix(tail, "/gatepass"); ok {
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w)
			return
		}
		id, err := parseID(rest)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		resp, err := a.service.IssueGatePass(r.Context(), id)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	if rest, ok := strings.CutSuffix(tail, "/documents-delivered"); ok {
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w)
			return
		}
		id, err := parseID(rest)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		rec, err := a.service.ToggleDocumentsDelivered(r.Context(), id)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"record": rec})
		return
	}

	id, err := parseID(tail)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		rec, err := a.service.GetSoldBike(r.Context(), id)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"record": rec})
	case http.MethodPatch:
		var req domain.SoldBikeUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		rec, err := a.service.UpdateSoldBike(r.Context(), id, req)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"record": rec})
	case http.MethodDelete:
		if err := a.service.DeleteSoldBike(r.Context(), id); err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	default:
		writeMethodNotAllowed(w)
	}
}

// ---- bookings ----

func (a *API) handleBookings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		bookings, err := a.service.ListBookings(r.Context())
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
	case http.MethodPost:
		var req domain.BookingCreateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		resp, err := a.service.CreateBooking(r.Context(), req)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, resp)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleBookingActions(w http.ResponseWriter, r *http.Request) {
	tail := pathTail(r.URL.Path, "/api/v1/bookings/")
	if tail == "" {
		writeError(w, http.StatusBadRequest, errors.New("booking id required"))
		return
	}

	if rest, ok := strings.CutSuffix(tail, "/delivered"); ok {
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w)
			return
		}
		id, err := parseID(rest)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		booking, err := a.service.ToggleBookingDelivered(r.Context(), id)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"booking": booking})
		return
	}

	if rest, ok := strings.CutSuffix(tail, "/letter"); ok {
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w)
			return
		}
		id, err := parseID(rest)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		resp, err := a.service.GenerateBookingLetter(r.Context(), id)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	id, err := parseID(tail)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		booking, err := a.service.GetBooking(r.Context(), id)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"booking": booking})
	case http.MethodPatch:
		var req domain.BookingUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		resp, err := a.service.UpdateBooking(r.Context(), id, req)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	case http.MethodDelete:
		if err := a.service.DeleteBooking(r.Context(), id); err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	default:
		writeMethodNotAllowed(w)
	}
}

// ---- customers ----

func (a *API) handleCustomers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		customers, err := a.service.ListCustomers(r.Context(), query)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"customers": customers})
	case http.MethodPost:
		var customer domain.Customer
		if err := decodeJSON(r, &customer); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		result, err := a.service.UpsertCustomer(r.Context(), customer)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"customer": result})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleCustomerActions(w http.ResponseWriter, r *http.Request) {
	tail := pathTail(r.URL.Path, "/api/v1/customers/")
	id, err := parseID(tail)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		customer, err := a.service.GetCustomer(r.Context(), id)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"customer": customer})
	case http.MethodPatch:
		var req domain.CustomerUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		customer, err := a.service.UpdateCustomer(r.Context(), id, req)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"customer": customer})
	case http.MethodDelete:
		if err := a.service.DeleteCustomer(r.Context(), id); err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	default:
		writeMethodNotAllowed(w)
	}
}

// ---- accounts ----

func (a *API) handleAccounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		limit := parsePositiveLimit(r.URL.Query().Get("limit"), 100, 1000)
		entries, err := a.service.ListAccountEntries(r.Context(), limit)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
	case http.MethodPost:
		var req domain.AccountEntryRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		entry, err := a.service.AddAccountEntry(r.Context(), req)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})
	default:
		writeMethodNotAllowed(w)
	}
}

// ---- plumbing ----

func (a *API) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Access-Control-Allow-Origin", a.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
		w.Header().Set("Vary", "Origin")

		if r.Method == http.MethodPost || r.Method == http.MethodPatch || r.Method == http.MethodPut {
			r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		startedAt := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(startedAt))
	})
}

// statusForError maps service and store sentinels to HTTP statuses.
// A missing template reads as 503 since dropping the PDF assets in
// place fixes it without a code change.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, store.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateKey):
		return http.StatusConflict
	case errors.Is(err, store.ErrReferentialConstraint):
		return http.StatusConflict
	case errors.Is(err, document.ErrTemplateNotFound):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func pathTail(path string, prefix string) string {
	if !strings.HasPrefix(path, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.Trim(strings.TrimPrefix(path, prefix), "/"))
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(strings.Trim(raw, "/")), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid numeric id")
	}
	return id, nil
}

// decodeJSON rejects unknown fields so client typos surface as 400s
// instead of silently dropped values.
func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return err
	}
	return nil
}

func parsePositiveLimit(raw string, fallback int, max int) int {
	limit := fallback
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" {
		if parsed, err := strconv.Atoi(trimmed); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if max > 0 && limit > max {
		return max
	}
	return limit
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

func writeError(w http.ResponseWriter, status int, err error) {
	// 5xx details stay in the log; clients get a generic message.
	msg := err.Error()
	if status >= 500 {
		log.Printf("internal error (status %d): %v", status, err)
		msg = "internal server error"
	}
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
