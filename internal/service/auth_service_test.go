package service

import (
	"context"
	"testing"
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
	"taskboard-api/internal/response"
)

var testJWT = config.JWTConfig{Secret: "test-secret", ExpiresIn: time.Hour}

func newAuthService(userRepo *MockUserRepository, notificationRepo *MockNotificationRepository) AuthService {
	return NewAuthService(userRepo, notificationRepo, client.NewMockS3Client(), client.NewMockMailer(), testJWT, zap.NewNop())
}

func TestAuthService_Signup(t *testing.T) {
	var created *domain.User
	userRepo := &MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFunc: func(ctx context.Context, user *domain.User) error {
			user.ID = uuid.New()
			user.CreatedAt = time.Now()
			created = user
			return nil
		},
	}
	svc := newAuthService(userRepo, &MockNotificationRepository{})

	resp, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Name:     "Dana Scully",
		Email:    "Dana@Example.com",
		Password: "trustno1xx",
	})
	if err != nil {
		t.Fatalf("Signup() unexpected error = %v", err)
	}

	if created.Email != "dana@example.com" {
		t.Errorf("email not normalized: %s", created.Email)
	}
	if created.PasswordHash == "trustno1xx" {
		t.Error("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("trustno1xx")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
	if created.Avatar != "DS" {
		t.Errorf("avatar initials = %s, want DS", created.Avatar)
	}
	if resp.Token == "" {
		t.Error("expected a session token")
	}

	// The token must carry the user id and verify with the secret
	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.Token, claims, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testJWT.Secret), nil
	})
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims["user_id"] != created.ID.String() {
		t.Errorf("token user_id = %v, want %v", claims["user_id"], created.ID)
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	userRepo := &MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{BaseModel: domain.BaseModel{ID: uuid.New()}, Email: email}, nil
		},
		CreateFunc: func(ctx context.Context, user *domain.User) error {
			t.Fatal("no user may be created for a taken email")
			return nil
		},
	}
	svc := newAuthService(userRepo, &MockNotificationRepository{})

	_, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Name:     "Copy Cat",
		Email:    "taken@example.com",
		Password: "password123",
	})
	if appErr, ok := err.(*response.AppError); !ok || appErr.Code != response.ErrCodeAlreadyExists {
		t.Fatalf("expected ALREADY_EXISTS, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.DefaultCost)
	user := &domain.User{
		BaseModel:    domain.BaseModel{ID: uuid.New()},
		Name:         "Dana",
		Email:        "dana@example.com",
		PasswordHash: string(hash),
	}
	userRepo := &MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newAuthService(userRepo, &MockNotificationRepository{})
	ctx := context.Background()

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "dana@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login() unexpected error = %v", err)
	}
	if resp.User.ID != user.ID {
		t.Errorf("logged in as %v, want %v", resp.User.ID, user.ID)
	}

	// Wrong password and unknown email both come back UNAUTHORIZED so the
	// response does not leak which accounts exist
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "dana@example.com", Password: "wrong"})
	if appErr, ok := err.(*response.AppError); !ok || appErr.Code != response.ErrCodeUnauthorized {
		t.Fatalf("wrong password: expected UNAUTHORIZED, got %v", err)
	}
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	if appErr, ok := err.(*response.AppError); !ok || appErr.Code != response.ErrCodeUnauthorized {
		t.Fatalf("unknown email: expected UNAUTHORIZED, got %v", err)
	}
}

func TestAuthService_GoogleSync_CreatesThenLinks(t *testing.T) {
	users := map[string]*domain.User{}
	userRepo := &MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			if u, ok := users[email]; ok {
				return u, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		CreateFunc: func(ctx context.Context, user *domain.User) error {
			user.ID = uuid.New()
			users[user.Email] = user
			return nil
		},
		UpdateFunc: func(ctx context.Context, user *domain.User) error {
			users[user.Email] = user
			return nil
		},
	}
	svc := newAuthService(userRepo, &MockNotificationRepository{})
	ctx := context.Background()

	req := &dto.GoogleSyncRequest{
		Name:     "Fox Mulder",
		Email:    "fox@example.com",
		GoogleID: "google-123",
		Picture:  "https://lh3.example.com/fox.png",
	}
	resp, err := svc.GoogleSync(ctx, req)
	if err != nil {
		t.Fatalf("GoogleSync() unexpected error = %v", err)
	}

	created := users["fox@example.com"]
	if created.GoogleID == nil || *created.GoogleID != "google-123" {
		t.Error("google id not stored")
	}
	if created.PasswordHash == "" {
		t.Error("google accounts still need a password hash")
	}
	if created.Avatar != "FM" {
		t.Errorf("avatar initials = %s, want FM", created.Avatar)
	}
	if resp.Token == "" {
		t.Error("expected a session token")
	}

	// Second sync is an upsert: same account, no duplicate
	resp2, err := svc.GoogleSync(ctx, req)
	if err != nil {
		t.Fatalf("repeat GoogleSync() unexpected error = %v", err)
	}
	if resp2.User.ID != resp.User.ID {
		t.Errorf("repeat sync produced a different user: %v vs %v", resp2.User.ID, resp.User.ID)
	}
}

func TestAuthService_UpdateProfilePicture(t *testing.T) {
	userID := uuid.New()
	var storedURL string
	userRepo := &MockUserRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{BaseModel: domain.BaseModel{ID: userID}, Name: "Dana"}, nil
		},
		UpdateProfilePictureFunc: func(ctx context.Context, id uuid.UUID, url string) error {
			storedURL = url
			return nil
		},
	}
	svc := newAuthService(userRepo, &MockNotificationRepository{})

	resp, err := svc.UpdateProfilePicture(context.Background(), userID, "me.png", "image/png", nil)
	if err != nil {
		t.Fatalf("UpdateProfilePicture() unexpected error = %v", err)
	}
	if resp.ProfilePicture == "" || resp.ProfilePicture != storedURL {
		t.Errorf("returned URL %q does not match stored %q", resp.ProfilePicture, storedURL)
	}
}

func TestAuthService_Notifications(t *testing.T) {
	userID := uuid.New()
	marked := false
	notificationRepo := &MockNotificationRepository{
		FindByUserIDFunc: func(ctx context.Context, uID uuid.UUID) ([]domain.Notification, error) {
			return []domain.Notification{
				{ID: uuid.New(), UserID: userID, BoardID: uuid.New(), Message: "X joined"},
			}, nil
		},
		MarkAllReadFunc: func(ctx context.Context, uID uuid.UUID) error {
			marked = uID == userID
			return nil
		},
	}
	svc := newAuthService(&MockUserRepository{}, notificationRepo)
	ctx := context.Background()

	list, err := svc.GetNotifications(ctx, userID)
	if err != nil {
		t.Fatalf("GetNotifications() unexpected error = %v", err)
	}
	if len(list) != 1 || list[0].Message != "X joined" {
		t.Errorf("unexpected inbox: %+v", list)
	}

	if err := svc.MarkNotificationsRead(ctx, userID); err != nil {
		t.Fatalf("MarkNotificationsRead() unexpected error = %v", err)
	}
	if !marked {
		t.Error("mark-all-read did not reach the repository")
	}
}

func TestAvatarInitials(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"first and last", "Dana Scully", "DS"},
		{"middle names skipped", "Fox William Mulder", "FM"},
		{"single name", "Dana", "D"},
		{"blank name", "   ", "US"},
		{"multibyte first rune", "Éva Kovács", "ÉK"},
		{"single multibyte name", "Øyvind", "Ø"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := avatarInitials(tt.in)
			if got != tt.want {
				t.Errorf("avatarInitials(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("avatarInitials(%q) is not valid UTF-8", tt.in)
			}
		})
	}
}
