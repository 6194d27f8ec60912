package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"inventaris/internal/models"
	"inventaris/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo    repositories.UserRepository
	jwtSecret   []byte
	adminSecret string
	adminDomain string // email domain suffix required for admin accounts
	tokenDurat  time.Duration
}

// NewAuthService creates a new AuthService. adminDomain is the email domain
// suffix (e.g. "@inventory.com") and adminSecret the shared key both required
// to register an admin account.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret, adminSecret, adminDomain string) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		jwtSecret:   []byte(jwtSecret),
		adminSecret: adminSecret,
		adminDomain: adminDomain,
		tokenDurat:  24 * time.Hour, // Token valid for 24 hours
	}
}

// RegisterUser registers a new user, hashes their password, and saves them to
// the database. Admin accounts additionally require a company email address
// and the admin secret key.
func (s *AuthService) RegisterUser(user *models.User, secretKey string) error {
	// Normalize before any check so the admin-domain suffix and the
	// duplicate lookup agree with how the store keys emails.
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if existingUser, err := s.userRepo.GetByEmail(user.Email); err == nil && existingUser != nil {
		return fmt.Errorf("%w: %s", models.ErrEmailTaken, user.Email)
	}

	if user.Role == models.RoleAdmin {
		if !strings.HasSuffix(user.Email, strings.ToLower(s.adminDomain)) {
			return fmt.Errorf("%w: only company emails can be used for admin accounts", models.ErrAdminSignupDenied)
		}
		if secretKey != s.adminSecret {
			return fmt.Errorf("%w: invalid admin secret key", models.ErrAdminSignupDenied)
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword) // Store the hashed password

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// LoginUser authenticates a user by email and returns a JWT token if
// successful.
func (s *AuthService) LoginUser(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Do not reveal whether the email exists
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if
// valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
