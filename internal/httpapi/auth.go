package httpapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"showroom/backend/internal/domain"
	"showroom/backend/internal/store"
)

// UserStore is the slice of the repository the auth layer needs.
type UserStore interface {
	CreateUser(ctx context.Context, user domain.UserAccount) (*domain.UserAccount, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.UserAccount, error)
}

type AuthManager struct {
	secret    []byte
	tokenTTL  time.Duration
	userStore UserStore
	limiter   *loginLimiter
}

type showroomClaims struct {
	jwtlib.RegisteredClaims
	FullName string `json:"fullName,omitempty"`
}

func NewAuthManager(secret string, tokenTTL time.Duration, userStore UserStore) *AuthManager {
	if secret == "" {
		secret = "dev-change-me"
	}
	if tokenTTL <= 0 {
		tokenTTL = 8 * time.Hour
	}
	return &AuthManager{
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		userStore: userStore,
		limiter:   newLoginLimiter(5, 10*time.Minute),
	}
}

func (a *AuthManager) Signup(ctx context.Context, req domain.SignupRequest) (*domain.UserAccount, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if len(username) < 3 {
		return nil, fmt.Errorf("username must be at least 3 characters")
	}
	if strings.ContainsAny(username, " \t\r\n") {
		return nil, fmt.Errorf("username must not contain spaces")
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password")
	}

	user, err := a.userStore.CreateUser(ctx, domain.UserAccount{
		Username:  username,
		Password:  hash,
		FullName:  strings.TrimSpace(req.FullName),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: username already exists", store.ErrDuplicateKey)
		}
		return nil, err
	}
	return user, nil
}

func (a *AuthManager) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" || req.Password == "" {
		return domain.LoginResponse{}, errors.New("invalid credentials")
	}
	if !a.limiter.allow(username) {
		return domain.LoginResponse{}, errTooManyAttempts
	}

	user, err := a.userStore.GetUserByUsername(ctx, username)
	if err != nil {
		a.limiter.fail(username)
		return domain.LoginResponse{}, errors.New("invalid credentials")
	}
	if !verifyPassword(user.Password, req.Password) {
		a.limiter.fail(username)
		return domain.LoginResponse{}, errors.New("invalid credentials")
	}
	a.limiter.reset(username)

	expiresAt := time.Now().UTC().Add(a.tokenTTL)
	token, err := a.sign(user, expiresAt)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	return domain.LoginResponse{
		Token:     token,
		Username:  user.Username,
		FullName:  user.FullName,
		ExpiresAt: expiresAt,
	}, nil
}

func (a *AuthManager) ParseToken(tokenStr string) (domain.Actor, error) {
	claims := &showroomClaims{}
	token, err := jwtlib.ParseWithClaims(tokenStr, claims, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, jwtlib.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return domain.Actor{}, errors.New("invalid or expired token")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return domain.Actor{}, errors.New("invalid token subject")
	}
	return domain.Actor{Username: sub}, nil
}

func (a *AuthManager) sign(user *domain.UserAccount, expiresAt time.Time) (string, error) {
	claims := showroomClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwtlib.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
			Issuer:    "showroom",
		},
		FullName: user.FullName,
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

var errTooManyAttempts = errors.New("too many failed login attempts, try again later")

// loginLimiter tracks failed logins per username with a cooling-off
// window.
type loginLimiter struct {
	mu       sync.Mutex
	max      int
	window   time.Duration
	failures map[string]attemptState
}

type attemptState struct {
	count int
	first time.Time
}

func newLoginLimiter(max int, window time.Duration) *loginLimiter {
	return &loginLimiter{
		max:      max,
		window:   window,
		failures: map[string]attemptState{},
	}
}

func (l *loginLimiter) allow(username string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.failures[username]
	if !ok {
		return true
	}
	if time.Since(state.first) > l.window {
		delete(l.failures, username)
		return true
	}
	return state.count < l.max
}

func (l *loginLimiter) fail(username string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.failures[username]
	if !ok || time.Since(state.first) > l.window {
		l.failures[username] = attemptState{count: 1, first: time.Now()}
		return
	}
	state.count++
	l.failures[username] = state
}

func (l *loginLimiter) reset(username string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, username)
}

func verifyPassword(stored string, input string) bool {
	if stored == "" || strings.TrimSpace(input) == "" || !isPasswordHash(stored) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(input)) == nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func isPasswordHash(value string) bool {
	return strings.HasPrefix(value, "$2a$") || strings.HasPrefix(value, "$2b$") || strings.HasPrefix(value, "$2y$")
}
