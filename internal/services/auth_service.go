package services

import (
	"errors"
	"fmt"

	"github.com/conftrack/paper-review-api/internal/models"
	"github.com/conftrack/paper-review-api/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken        = errors.New("username is already taken")
	ErrEmailTaken           = errors.New("email is already in use")
	ErrInvalidRole          = errors.New("invalid role")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles account registration, credential verification, and
// role resolution.
type AuthService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		logger:   logger,
	}
}

// RegisterInput represents the required information to create a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// Register creates a new user with a hashed password and the resolved role.
// Duplicate checks run up front for the common case, but the database unique
// constraints remain authoritative: a duplicated-key error on insert is
// translated back into the matching typed conflict, so concurrent signups
// with the same username or email cannot both succeed.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	roleName, err := models.ParseRoleName(input.Role)
	if err != nil {
		s.logger.Warn("registration rejected: invalid role",
			zap.String("username", input.Username),
			zap.String("role", input.Role),
		)
		return nil, ErrInvalidRole
	}

	if taken, err := s.userRepo.ExistsByUsername(input.Username); err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	} else if taken {
		s.logger.Warn("registration rejected: username taken", zap.String("username", input.Username))
		return nil, ErrUsernameTaken
	}

	if taken, err := s.userRepo.ExistsByEmail(input.Email); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if taken {
		s.logger.Warn("registration rejected: email in use", zap.String("email", input.Email))
		return nil, ErrEmailTaken
	}

	role, err := s.roleRepo.FindOrCreate(roleName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		RoleID:       role.ID,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.classifyDuplicate(input.Username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.Role = *role
	s.logger.Info("user registered",
		zap.Uint64("id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", string(role.Name)),
	)
	return user, nil
}

// classifyDuplicate decides which unique constraint fired after an insert
// lost the race with a concurrent signup.
func (s *AuthService) classifyDuplicate(username string) error {
	taken, err := s.userRepo.ExistsByUsername(username)
	if err == nil && taken {
		return ErrUsernameTaken
	}
	return ErrEmailTaken
}

// Authenticate verifies the supplied plaintext against the stored hash and
// returns the user on match. Unknown usernames and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("login failed", zap.String("username", username))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login failed", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("login successful",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role.Name)),
	)
	return user, nil
}

// RoleOf resolves the role held by the named user.
func (s *AuthService) RoleOf(username string) (models.RoleName, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}
	return user.Role.Name, nil
}

// HasRole reports whether the named user holds the required role. It never
// fails: an unknown user or lookup error counts as not holding the role.
func (s *AuthService) HasRole(username string, required models.RoleName) bool {
	role, err := s.RoleOf(username)
	if err != nil {
		return false
	}
	return role == required
}

// UsernameExists reports whether a username is already registered.
func (s *AuthService) UsernameExists(username string) (bool, error) {
	return s.userRepo.ExistsByUsername(username)
}

// EmailExists reports whether an email is already registered.
func (s *AuthService) EmailExists(email string) (bool, error) {
	return s.userRepo.ExistsByEmail(email)
}
