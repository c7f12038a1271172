package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"reseller/internal/models"
	"reseller/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// Errors returned by AuthService.
var (
	ErrSellerExists       = errors.New("seller already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// SellerClaims is the seller identity carried by a token.
type SellerClaims struct {
	SellerID   string
	SellerName string
	Username   string
}

// AuthService handles seller registration, login and token validation.
type AuthService struct {
	sellerRepo repositories.SellerRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(sellerRepo repositories.SellerRepository, jwtSecret string) *AuthService {
	return &AuthService{
		sellerRepo: sellerRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// RegisterSeller hashes the password and saves a new seller.
func (s *AuthService) RegisterSeller(seller *models.Seller) error {
	if existing, err := s.sellerRepo.GetByUsername(seller.Username); err == nil && existing != nil {
		return fmt.Errorf("%w: username '%s' already taken", ErrSellerExists, seller.Username)
	}
	if existing, err := s.sellerRepo.GetByEmail(seller.Email); err == nil && existing != nil {
		return fmt.Errorf("%w: email '%s' already registered", ErrSellerExists, seller.Email)
	}

	hashedPassword, err := HashPassword(seller.Password)
	if err != nil {
		return err
	}
	seller.Password = hashedPassword

	if err := s.sellerRepo.Create(seller); err != nil {
		return fmt.Errorf("failed to register seller: %w", err)
	}
	return nil
}

// Login authenticates a seller and returns a signed JWT.
func (s *AuthService) Login(username, password string) (string, error) {
	seller, err := s.sellerRepo.GetByUsername(username)
	if err != nil {
		// Do not reveal whether the username exists
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(seller.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"seller_id":   seller.ID,
		"seller_name": seller.DisplayName,
		"username":    seller.Username,
		"exp":         time.Now().Add(s.tokenDurat).Unix(),
		"iat":         time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT and returns the seller identity.
func (s *AuthService) ValidateToken(tokenString string) (*SellerClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	sellerID, _ := claims["seller_id"].(string)
	if sellerID == "" {
		return nil, fmt.Errorf("%w: missing seller_id", ErrInvalidToken)
	}
	sellerName, _ := claims["seller_name"].(string)
	username, _ := claims["username"].(string)
	return &SellerClaims{SellerID: sellerID, SellerName: sellerName, Username: username}, nil
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
