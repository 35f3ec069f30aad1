package services

import (
	"errors"
	"fmt"
	"strings"

	"pharmacare_backend/internal/models"
	"pharmacare_backend/internal/repositories"
	"pharmacare_backend/pkg/utils"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// Default admin account seeded on first start so the app is usable
// out of the box. Change the password after first login.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// AuthResponse DTO
type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
}

// --- AuthService Interface ---

type AuthService interface {
	RegisterUser(req models.RegistrationPayload) (*models.User, error)
	LoginUser(req models.Credentials) (*AuthResponse, error)
	GetUserProfile(userID int64) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUserRole(userID int64, role string) error
	DeleteUser(userID int64) error
	EnsureDefaultAdmin() error
}

type authService struct {
	userRepo repositories.UserRepository
	db       *sqlx.DB
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(ur repositories.UserRepository, db *sqlx.DB) AuthService {
	return &authService{userRepo: ur, db: db}
}

func isValidRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RolePharmacist, models.RoleCashier:
		return true
	}
	return false
}

// RegisterUser handles the business logic for user registration.
func (s *authService) RegisterUser(req models.RegistrationPayload) (*models.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", ErrValidation)
	}
	if !utils.IsValidPasswordLength(req.Password, 6) {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	role := req.Role
	if role == "" {
		role = models.RoleCashier
	}
	if !isValidRole(role) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, req.Role)
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hashedPasswordBytes),
		Role:         role,
	}
	userID, err := s.userRepo.CreateUser(s.db, user)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = userID
	return user, nil
}

// LoginUser verifies the credentials and issues a token pair.
func (s *authService) LoginUser(req models.Credentials) (*AuthResponse, error) {
	user, err := s.userRepo.GetUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := utils.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authService) GetUserProfile(userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	return user, nil
}

func (s *authService) GetUsers() ([]models.User, error) {
	users, err := s.userRepo.GetUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

func (s *authService) UpdateUserRole(userID int64, role string) error {
	if !isValidRole(role) {
		return fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}
	user, err := s.GetUserProfile(userID)
	if err != nil {
		return err
	}
	user.Role = role
	if err := s.userRepo.UpdateUser(s.db, user); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update user role: %w", err)
	}
	return nil
}

func (s *authService) DeleteUser(userID int64) error {
	if err := s.userRepo.DeleteUser(s.db, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// EnsureDefaultAdmin seeds the admin account when the users table is
// empty, so a fresh database can be logged into.
func (s *authService) EnsureDefaultAdmin() error {
	count, err := s.userRepo.CountUsers()
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}
	user := &models.User{
		Username:     defaultAdminUsername,
		PasswordHash: string(hashedPasswordBytes),
		Role:         models.RoleAdmin,
	}
	if _, err := s.userRepo.CreateUser(s.db, user); err != nil {
		return fmt.Errorf("failed to seed default admin: %w", err)
	}
	utils.LogInfo("Seeded default admin user", map[string]interface{}{"username": defaultAdminUsername})
	return nil
}
