package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tripcoach/internal/shared/config"
	"tripcoach/internal/users"
)

type fakeRepository struct {
	byEmail map[string]*users.User
	byID    map[string]*users.User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byEmail: make(map[string]*users.User),
		byID:    make(map[string]*users.User),
	}
}

func (f *fakeRepository) add(u *users.User) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.byEmail[u.Email] = u
	f.byID[u.ID.String()] = u
}

func (f *fakeRepository) CreateUser(ctx context.Context, user *users.User) error {
	f.add(user)
	return nil
}

func (f *fakeRepository) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeRepository) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeRepository) UpdateUserPassword(ctx context.Context, userID string, hashedPassword string) error {
	u, ok := f.byID[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.Password = hashedPassword
	return nil
}

func (f *fakeRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}
}

func seedUser(repo *fakeRepository, email, password string, role users.Role, status users.Status) *users.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &users.User{
		Name:     "Test User",
		Email:    email,
		Password: string(hash),
		Role:     role,
		Status:   status,
	}
	repo.add(u)
	return u
}

func TestRegisterDefaultsToTourist(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, testConfig())

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Aiko",
		Email:    "aiko@example.com",
		Password: "qwerty",
	})
	require.NoError(t, err)

	assert.Equal(t, "TOURIST", resp.User.Role)
	assert.Equal(t, "ACTIVE", resp.User.Status)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestRegisterCoercesAdminToTourist(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, testConfig())

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Mallory",
		Email:    "mallory@example.com",
		Password: "qwerty",
		Role:     "ADMIN",
	})
	require.NoError(t, err)
	assert.Equal(t, "TOURIST", resp.User.Role)
}

func TestRegisterAllowsGuideSelfRegistration(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, testConfig())

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Sofia",
		Email:    "sofia@example.com",
		Password: "qwerty",
		Role:     "guide",
	})
	require.NoError(t, err)
	assert.Equal(t, "GUIDE", resp.User.Role)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeRepository()
	seedUser(repo, "taken@example.com", "qwerty", users.RoleTourist, users.StatusActive)
	svc := NewService(repo, testConfig())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Copy",
		Email:    "taken@example.com",
		Password: "qwerty",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginSucceedsWithCorrectPassword(t *testing.T) {
	repo := newFakeRepository()
	user := seedUser(repo, "james@example.com", "qwerty", users.RoleTourist, users.StatusActive)
	svc := NewService(repo, testConfig())

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "james@example.com",
		Password: "qwerty",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	repo := newFakeRepository()
	seedUser(repo, "james@example.com", "qwerty", users.RoleTourist, users.StatusActive)
	svc := NewService(repo, testConfig())

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "james@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, testConfig())

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "qwerty",
	})

	// Unknown email and wrong password are indistinguishable to the caller.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsBlockedUser(t *testing.T) {
	repo := newFakeRepository()
	seedUser(repo, "blocked@example.com", "qwerty", users.RoleTourist, users.StatusBlocked)
	svc := NewService(repo, testConfig())

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "blocked@example.com",
		Password: "qwerty",
	})
	assert.ErrorIs(t, err, ErrAccountNotActive)
}

func TestLoginAllowsInactiveUser(t *testing.T) {
	repo := newFakeRepository()
	seedUser(repo, "dormant@example.com", "qwerty", users.RoleTourist, users.StatusInactive)
	svc := NewService(repo, testConfig())

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "dormant@example.com",
		Password: "qwerty",
	})
	assert.NoError(t, err)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	repo := newFakeRepository()
	user := seedUser(repo, "sofia@example.com", "qwerty", users.RoleGuide, users.StatusActive)
	svc := NewService(repo, testConfig())

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "sofia@example.com",
		Password: "qwerty",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "GUIDE", claims.Role)
	assert.Equal(t, "access", claims.Type)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewService(newFakeRepository(), testConfig())

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	repo := newFakeRepository()
	seedUser(repo, "sofia@example.com", "qwerty", users.RoleGuide, users.StatusActive)

	issuer := NewService(repo, testConfig())
	resp, err := issuer.Login(context.Background(), &LoginRequest{
		Email:    "sofia@example.com",
		Password: "qwerty",
	})
	require.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.JWT.Secret = "a-different-secret"
	verifier := NewService(repo, otherCfg)

	_, err = verifier.ValidateToken(resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	repo := newFakeRepository()
	seedUser(repo, "sofia@example.com", "qwerty", users.RoleGuide, users.StatusActive)
	svc := NewService(repo, testConfig())

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "sofia@example.com",
		Password: "qwerty",
	})
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenIssuesNewPair(t *testing.T) {
	repo := newFakeRepository()
	seedUser(repo, "sofia@example.com", "qwerty", users.RoleGuide, users.StatusActive)
	svc := NewService(repo, testConfig())

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "sofia@example.com",
		Password: "qwerty",
	})
	require.NoError(t, err)

	pair, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestRefreshTokenRejectsBlockedUser(t *testing.T) {
	repo := newFakeRepository()
	user := seedUser(repo, "sofia@example.com", "qwerty", users.RoleGuide, users.StatusActive)
	svc := NewService(repo, testConfig())

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "sofia@example.com",
		Password: "qwerty",
	})
	require.NoError(t, err)

	user.Status = users.StatusBlocked

	_, err = svc.RefreshToken(context.Background(), resp.RefreshToken)
	assert.ErrorIs(t, err, ErrAccountNotActive)
}

func TestChangePasswordRequiresCurrentPassword(t *testing.T) {
	repo := newFakeRepository()
	user := seedUser(repo, "james@example.com", "qwerty", users.RoleTourist, users.StatusActive)
	svc := NewService(repo, testConfig())

	err := svc.ChangePassword(context.Background(), user.ID.String(), &ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpassword",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(context.Background(), user.ID.String(), &ChangePasswordRequest{
		CurrentPassword: "qwerty",
		NewPassword:     "newpassword",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "james@example.com",
		Password: "newpassword",
	})
	assert.NoError(t, err)
}

func TestGetIdentityReflectsCurrentRecord(t *testing.T) {
	repo := newFakeRepository()
	user := seedUser(repo, "sofia@example.com", "qwerty", users.RoleTourist, users.StatusActive)
	svc := NewService(repo, testConfig())

	user.Role = users.RoleGuide
	user.IsVerified = true

	resp, err := svc.GetIdentity(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "GUIDE", resp.Role)
	assert.True(t, resp.IsVerified)
}
