package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/tripmark/booking-backend/internal/database"
	"github.com/tripmark/booking-backend/internal/models"
	"github.com/tripmark/booking-backend/pkg/apperrors"
	"github.com/tripmark/booking-backend/pkg/jwt"
	"github.com/tripmark/booking-backend/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

// AuthService implements registration, login and the admin approval gate
type AuthService struct {
	userRepo       *database.UserRepository
	jwtService     *jwt.Service
	emailValidator *validator.EmailValidator
	bcryptCost     int
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo *database.UserRepository,
	jwtService *jwt.Service,
	emailValidator *validator.EmailValidator,
	bcryptCost int,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		jwtService:     jwtService,
		emailValidator: emailValidator,
		bcryptCost:     bcryptCost,
	}
}

// Register creates a new account. Travel agents start pending and must
// pass the approval gate before they can log in; every other role starts
// approved. At most one admin account may exist system-wide.
func (s *AuthService) Register(req models.RegisterRequest) (*models.User, error) {
	if !req.Role.IsValid() {
		return nil, apperrors.NewValidationError("unknown role: " + string(req.Role))
	}

	email, err := s.emailValidator.Validate(req.Email)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if req.Role == models.RoleAdmin {
		count, err := s.userRepo.CountByRole(models.RoleAdmin)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to check admin account", err)
		}
		if count > 0 {
			return nil, apperrors.NewConflictError(apperrors.CodeAdminExists, "an admin account already exists")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Status:       req.Role.InitialStatus(),
	}

	if err := s.userRepo.Create(user); err != nil {
		if database.IsUniqueViolation(err) {
			// A concurrent admin registration can slip past the count
			// check; the partial unique index catches it here.
			if database.UniqueConstraint(err) == database.SingleAdminConstraint {
				return nil, apperrors.NewConflictError(apperrors.CodeAdminExists, "an admin account already exists")
			}
			return nil, apperrors.NewConflictError(apperrors.CodeDuplicateIdentity, "an account with this email already exists")
		}
		return nil, apperrors.NewInternalError("failed to create account", err)
	}

	return user, nil
}

// Login authenticates an account and issues a token. The caller asserts
// the role they intend to operate as; a mismatch with the stored role is
// an explicit failure rather than a silent login under the wrong role.
func (s *AuthService) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	email := s.emailValidator.Normalize(req.Email)

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.CodeUserNotFound, "no account found for this email")
		}
		return nil, apperrors.NewInternalError("failed to look up account", err)
	}

	if user.Role != req.Role {
		return nil, apperrors.NewUnauthorizedError(apperrors.CodeRoleMismatch, "account role does not match the requested role")
	}

	if user.Role == models.RoleTravelAgent && user.Status == models.AccountStatusPending {
		return nil, apperrors.NewUnauthorizedError(apperrors.CodePendingApproval, "account is awaiting admin approval")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.NewUnauthorizedError(apperrors.CodeInvalidCredentials, "invalid email or password")
	}

	token, err := s.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to issue token", err)
	}

	return &models.LoginResponse{
		Token: token,
		User:  models.LoginUser{ID: user.ID, Role: user.Role},
	}, nil
}

// PendingAgents lists travel-agent accounts awaiting approval
func (s *AuthService) PendingAgents() ([]models.User, error) {
	users, err := s.userRepo.ListPendingAgents()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list pending agents", err)
	}
	return users, nil
}

// Approve flips a pending account to approved
func (s *AuthService) Approve(accountID uuid.UUID) error {
	if err := s.userRepo.UpdateStatus(accountID, models.AccountStatusApproved); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperrors.NewNotFoundError(apperrors.CodeUserNotFound, "account not found")
		}
		return apperrors.NewInternalError("failed to approve account", err)
	}
	return nil
}

// Reject hard-deletes an account. Rejection is non-recoverable.
func (s *AuthService) Reject(accountID uuid.UUID) error {
	if err := s.userRepo.Delete(accountID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperrors.NewNotFoundError(apperrors.CodeUserNotFound, "account not found")
		}
		return apperrors.NewInternalError("failed to reject account", err)
	}
	return nil
}
