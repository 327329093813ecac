package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard-api/internal/client"
	"taskboard-api/internal/config"
	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

// AuthService defines the interface for account and session business logic
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GoogleSync(ctx context.Context, req *dto.GoogleSyncRequest) (*dto.AuthResponse, error)
	UpdateProfilePicture(ctx context.Context, userID uuid.UUID, fileName, contentType string, file io.Reader) (*dto.UpdateProfilePictureResponse, error)
	GetNotifications(ctx context.Context, userID uuid.UUID) ([]dto.NotificationResponse, error)
	MarkNotificationsRead(ctx context.Context, userID uuid.UUID) error
}

// authServiceImpl is the implementation of AuthService
type authServiceImpl struct {
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	s3Client         client.S3ClientInterface
	mailer           client.Mailer
	jwtCfg           config.JWTConfig
	logger           *zap.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	s3Client client.S3ClientInterface,
	mailer client.Mailer,
	jwtCfg config.JWTConfig,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		s3Client:         s3Client,
		mailer:           mailer,
		jwtCfg:           jwtCfg,
		logger:           logger,
	}
}

// Signup registers a new account and returns a session token
func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Email already registered", "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check existing user", err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to hash password", err.Error())
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Avatar:       avatarInitials(req.Name),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create user", err.Error())
	}

	if s.mailer != nil && s.mailer.IsConfigured() {
		if err := s.mailer.SendWelcomeEmail(user.Email, user.Name); err != nil {
			s.logger.Warn("Failed to send welcome email",
				zap.String("email", user.Email),
				zap.Error(err))
		}
	}

	return s.buildAuthResponse(user)
}

// Login authenticates credentials and returns a session token
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorizedError("Invalid email or password", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to look up user", err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, response.NewUnauthorizedError("Invalid email or password", "")
	}

	return s.buildAuthResponse(user)
}

// GoogleSync upserts a Google-backed account and returns a session token.
// New accounts get a random password; existing accounts get their google
// id and picture refreshed.
func (s *authServiceImpl) GoogleSync(ctx context.Context, req *dto.GoogleSyncRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to look up user", err.Error())
		}

		// First sign-in with Google: create the account with a random
		// password so the credential path stays closed until reset.
		randomPassword, err := randomHex(32)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to generate password", err.Error())
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(randomPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to hash password", err.Error())
		}

		googleID := req.GoogleID
		user = &domain.User{
			Name:           req.Name,
			Email:          email,
			PasswordHash:   string(hash),
			ProfilePicture: req.Picture,
			Avatar:         avatarInitials(req.Name),
			GoogleID:       &googleID,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create user", err.Error())
		}
		return s.buildAuthResponse(user)
	}

	// Existing account: link the google id and refresh the picture
	changed := false
	if user.GoogleID == nil || *user.GoogleID != req.GoogleID {
		googleID := req.GoogleID
		user.GoogleID = &googleID
		changed = true
	}
	if req.Picture != "" && user.ProfilePicture != req.Picture {
		user.ProfilePicture = req.Picture
		changed = true
	}
	if changed {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update user", err.Error())
		}
	}

	return s.buildAuthResponse(user)
}

// UpdateProfilePicture uploads a new picture to S3 and stores its URL
func (s *authServiceImpl) UpdateProfilePicture(ctx context.Context, userID uuid.UUID, fileName, contentType string, file io.Reader) (*dto.UpdateProfilePictureResponse, error) {
	if s.s3Client == nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "File storage not configured", "")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("User not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to look up user", err.Error())
	}

	key, err := s.s3Client.GenerateFileKey(userID.String(), client.ExtFromFileName(fileName))
	if err != nil {
		return nil, response.NewValidationError("Invalid file name", err.Error())
	}

	url, err := s.s3Client.UploadFile(ctx, key, file, contentType)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to upload profile picture", err.Error())
	}

	if err := s.userRepo.UpdateProfilePicture(ctx, user.ID, url); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to store profile picture", err.Error())
	}

	return &dto.UpdateProfilePictureResponse{ProfilePicture: url}, nil
}

// GetNotifications returns the caller's inbox, newest first
func (s *authServiceImpl) GetNotifications(ctx context.Context, userID uuid.UUID) ([]dto.NotificationResponse, error) {
	notifications, err := s.notificationRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch notifications", err.Error())
	}
	return dto.ToNotificationResponses(notifications), nil
}

// MarkNotificationsRead marks the caller's whole inbox as read
func (s *authServiceImpl) MarkNotificationsRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to mark notifications read", err.Error())
	}
	return nil
}

func (s *authServiceImpl) buildAuthResponse(user *domain.User) (*dto.AuthResponse, error) {
	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to issue token", err.Error())
	}
	return &dto.AuthResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	}, nil
}

func (s *authServiceImpl) generateToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(s.jwtCfg.ExpiresIn).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.Secret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// avatarInitials derives up to two uppercase initials from a display
// name. Initials are whole runes, not bytes, so multibyte names stay
// valid UTF-8.
func avatarInitials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "US"
	}
	first, _ := utf8.DecodeRuneInString(fields[0])
	initials := strings.ToUpper(string(first))
	if len(fields) > 1 {
		last, _ := utf8.DecodeRuneInString(fields[len(fields)-1])
		initials += strings.ToUpper(string(last))
	}
	return initials
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
