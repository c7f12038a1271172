package services_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"reseller/internal/models"
	"reseller/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockSellerRepository is a mock implementation of repositories.SellerRepository
type MockSellerRepository struct {
	mock.Mock
}

func (m *MockSellerRepository) Create(seller *models.Seller) error {
	args := m.Called(seller)
	return args.Error(0)
}

func (m *MockSellerRepository) GetByUsername(username string) (*models.Seller, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Seller), args.Error(1)
}

func (m *MockSellerRepository) GetByEmail(email string) (*models.Seller, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Seller), args.Error(1)
}

func (m *MockSellerRepository) GetByID(id string) (*models.Seller, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Seller), args.Error(1)
}

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_RegisterSeller(t *testing.T) {
	mockRepo := new(MockSellerRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	seller := &models.Seller{
		Username:    "testseller",
		DisplayName: "Test Seller",
		Email:       "test@example.com",
		Password:    "password123",
	}

	mockRepo.On("GetByUsername", seller.Username).Return(nil, models.ErrSellerNotFound).Once()
	mockRepo.On("GetByEmail", seller.Email).Return(nil, models.ErrSellerNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Seller")).Return(nil).Once()

	err := authService.RegisterSeller(seller)
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(seller.Password), []byte("password123")), "password must be stored hashed")
	mockRepo.AssertExpectations(t)

	// Username already taken
	mockRepo.On("GetByUsername", seller.Username).Return(&models.Seller{ID: "1"}, nil).Once()
	err = authService.RegisterSeller(seller)
	assert.ErrorIs(t, err, services.ErrSellerExists)
	assert.Contains(t, err.Error(), "username 'testseller' already taken")
	mockRepo.AssertExpectations(t)

	// Email already registered
	mockRepo.On("GetByUsername", seller.Username).Return(nil, models.ErrSellerNotFound).Once()
	mockRepo.On("GetByEmail", seller.Email).Return(&models.Seller{ID: "1"}, nil).Once()
	err = authService.RegisterSeller(seller)
	assert.ErrorIs(t, err, services.ErrSellerExists)
	assert.Contains(t, err.Error(), "email 'test@example.com' already registered")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockSellerRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	seller := &models.Seller{
		ID:          "user123",
		Username:    "mohammed",
		DisplayName: "Mohammed Ahmed",
		Email:       "mohammed@example.com",
		Password:    string(hashedPassword),
	}

	mockRepo.On("GetByUsername", seller.Username).Return(seller, nil).Once()
	token, err := authService.Login("mohammed", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "user123", claims["seller_id"])
	assert.Equal(t, "Mohammed Ahmed", claims["seller_name"])
	mockRepo.AssertExpectations(t)

	// Wrong password
	mockRepo.On("GetByUsername", seller.Username).Return(seller, nil).Once()
	_, err = authService.Login("mohammed", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Unknown seller gets the same generic error
	mockRepo.On("GetByUsername", "ghost").Return(nil, models.ErrSellerNotFound).Once()
	_, err = authService.Login("ghost", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockSellerRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"seller_id":   "user123",
		"seller_name": "Mohammed Ahmed",
		"username":    "mohammed",
		"exp":         jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	if assert.NotNil(t, claims) {
		assert.Equal(t, "user123", claims.SellerID)
		assert.Equal(t, "Mohammed Ahmed", claims.SellerName)
		assert.Equal(t, "mohammed", claims.Username)
	}

	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"seller_id": "user123",
		"exp":       jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	otherSecret, _ := token.SignedString([]byte("another_secret"))
	_, err = authService.ValidateToken(otherSecret)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	noSeller := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"username": "x"})
	noSellerString, _ := noSeller.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(noSellerString)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}
