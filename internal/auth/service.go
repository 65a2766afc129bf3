package auth

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bazaarly/sellerconsole/pkg/apperr"
)

// Seller is an account profile. The console shows name and shop name; the
// password hash never leaves this package.
type Seller struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ShopName string `json:"shop_name"`

	passwordHash []byte
}

// TokenPair is what a successful signup or login hands back.
type TokenPair struct {
	AccessToken string `json:"access_token"`
	Seller      Seller `json:"seller"`
}

// Service manages seller accounts in memory, keyed by lowercased email.
type Service struct {
	jwt *JWTManager

	mu         sync.RWMutex
	byEmail    map[string]*Seller
	bySellerID map[string]*Seller
}

// NewService creates the account store seeded with the demo seller so a
// fresh deployment is immediately usable.
func NewService(jwtManager *JWTManager) *Service {
	s := &Service{
		jwt:        jwtManager,
		byEmail:    make(map[string]*Seller),
		bySellerID: make(map[string]*Seller),
	}
	// Demo account, password "password123".
	_, _ = s.Signup("George", "george@example.com", "password123", "George's Artisan Hub")
	return s
}

// Signup registers a new seller and returns a token pair.
func (s *Service) Signup(name, email, password, shopName string) (*TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, apperr.Validation("name, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	s.mu.Lock()
	if _, exists := s.byEmail[email]; exists {
		s.mu.Unlock()
		return nil, apperr.AlreadyExists("seller", email)
	}
	seller := &Seller{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		ShopName:     shopName,
		passwordHash: hash,
	}
	s.byEmail[email] = seller
	s.bySellerID[seller.ID] = seller
	s.mu.Unlock()

	return s.tokens(seller)
}

// Login verifies credentials and returns a token pair. Wrong email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(email, password string) (*TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.RLock()
	seller, ok := s.byEmail[email]
	s.mu.RUnlock()
	if !ok {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword(seller.passwordHash, []byte(password)); err != nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}

	return s.tokens(seller)
}

// GetByID looks up a seller profile.
func (s *Service) GetByID(sellerID string) (*Seller, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seller, ok := s.bySellerID[sellerID]
	if !ok {
		return nil, apperr.NotFound("seller", sellerID)
	}
	out := *seller
	return &out, nil
}

// ValidateToken checks an access token and returns its claims. Exposed for
// the HTTP auth middleware.
func (s *Service) ValidateToken(token string) (*Claims, error) {
	return s.jwt.ValidateAccessToken(token)
}

func (s *Service) tokens(seller *Seller) (*TokenPair, error) {
	access, err := s.jwt.GenerateAccessToken(seller.ID, seller.Email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &TokenPair{AccessToken: access, Seller: *seller}, nil
}
