package guides

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tripcoach/internal/users"
)

type fakeGuideRepo struct {
	applications map[uuid.UUID]*GuideApplication
}

func newFakeGuideRepo() *fakeGuideRepo {
	return &fakeGuideRepo{applications: make(map[uuid.UUID]*GuideApplication)}
}

func (f *fakeGuideRepo) Create(ctx context.Context, application *GuideApplication) error {
	application.ID = uuid.New()
	copied := *application
	f.applications[application.ID] = &copied
	return nil
}

func (f *fakeGuideRepo) GetByID(ctx context.Context, id uuid.UUID) (*GuideApplication, error) {
	application, ok := f.applications[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *application
	return &copied, nil
}

func (f *fakeGuideRepo) GetOpenByUserID(ctx context.Context, userID uuid.UUID) (*GuideApplication, error) {
	for _, application := range f.applications {
		if application.UserID == userID && application.Status == ApplicationPending {
			copied := *application
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGuideRepo) GetPending(ctx context.Context) ([]GuideApplication, error) {
	var result []GuideApplication
	for _, application := range f.applications {
		if application.Status == ApplicationPending {
			result = append(result, *application)
		}
	}
	return result, nil
}

func (f *fakeGuideRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status ApplicationStatus) error {
	application, ok := f.applications[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	application.Status = status
	return nil
}

type fakeUserRepo struct {
	users   map[uuid.UUID]*users.User
	updates map[string]interface{}
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*users.User)}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetAll(ctx context.Context, query users.UserListQuery) ([]users.User, int64, error) {
	var result []users.User
	for _, user := range f.users {
		result = append(result, *user)
	}
	return result, int64(len(result)), nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*users.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	f.updates = updates
	if role, ok := updates["role"]; ok {
		user.Role = role.(users.Role)
	}
	if verified, ok := updates["is_verified"]; ok {
		user.IsVerified = verified.(bool)
	}
	if city, ok := updates["guide_city"]; ok {
		user.GuideCity = city.(string)
	}
	if langs, ok := updates["guide_languages"]; ok {
		user.GuideLanguages = langs.(string)
	}
	if bio, ok := updates["guide_bio"]; ok {
		user.GuideBio = bio.(string)
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

type recordingGuideNotifier struct {
	approved []*users.User
}

func (r *recordingGuideNotifier) GuideApproved(ctx context.Context, user *users.User) {
	r.approved = append(r.approved, user)
}

func seedTourist(userRepo *fakeUserRepo) *users.User {
	user := &users.User{
		ID:     uuid.New(),
		Name:   "Test Tourist",
		Email:  "tourist@example.com",
		Role:   users.RoleTourist,
		Status: users.StatusActive,
	}
	userRepo.users[user.ID] = user
	return user
}

func validApplyRequest() ApplyRequest {
	return ApplyRequest{
		City:            "Lisbon",
		Languages:       "English, Portuguese",
		ExperienceYears: 6,
		TourType:        "food",
		Availability:    "weekends",
		Bio:             "I have been running food walks through Alfama and Baixa for six years.",
	}
}

func TestApplyCreatesPendingApplication(t *testing.T) {
	guideRepo := newFakeGuideRepo()
	userRepo := newFakeUserRepo()
	svc := NewService(guideRepo, userRepo, nil)
	tourist := seedTourist(userRepo)

	resp, err := svc.Apply(context.Background(), tourist.ID, validApplyRequest())
	require.NoError(t, err)

	assert.Equal(t, string(ApplicationPending), string(resp.Status))
	assert.Equal(t, []string{"English", "Portuguese"}, resp.Languages)
	assert.Equal(t, "Lisbon", resp.City)
}

func TestApplyRejectsExistingGuide(t *testing.T) {
	guideRepo := newFakeGuideRepo()
	userRepo := newFakeUserRepo()
	svc := NewService(guideRepo, userRepo, nil)
	tourist := seedTourist(userRepo)
	userRepo.users[tourist.ID].Role = users.RoleGuide

	_, err := svc.Apply(context.Background(), tourist.ID, validApplyRequest())
	assert.ErrorIs(t, err, ErrAlreadyGuide)
}

func TestApplyRejectsSecondOpenApplication(t *testing.T) {
	guideRepo := newFakeGuideRepo()
	userRepo := newFakeUserRepo()
	svc := NewService(guideRepo, userRepo, nil)
	tourist := seedTourist(userRepo)

	_, err := svc.Apply(context.Background(), tourist.ID, validApplyRequest())
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), tourist.ID, validApplyRequest())
	assert.ErrorIs(t, err, ErrOpenApplication)
}

func TestApplyRejectsEmptyLanguages(t *testing.T) {
	guideRepo := newFakeGuideRepo()
	userRepo := newFakeUserRepo()
	svc := NewService(guideRepo, userRepo, nil)
	tourist := seedTourist(userRepo)

	req := validApplyRequest()
	req.Languages = " , , "
	_, err := svc.Apply(context.Background(), tourist.ID, req)
	assert.ErrorIs(t, err, ErrNoLanguages)
}

func TestApprovePromotesApplicant(t *testing.T) {
	guideRepo := newFakeGuideRepo()
	userRepo := newFakeUserRepo()
	notifier := &recordingGuideNotifier{}
	svc := NewService(guideRepo, userRepo, notifier)
	tourist := seedTourist(userRepo)

	application, err := svc.Apply(context.Background(), tourist.ID, validApplyRequest())
	require.NoError(t, err)
	applicationID := uuid.MustParse(application.ID)

	resp, err := svc.Approve(context.Background(), applicationID)
	require.NoError(t, err)
	assert.Equal(t, string(ApplicationApproved), string(resp.Status))

	promoted := userRepo.users[tourist.ID]
	assert.Equal(t, users.RoleGuide, promoted.Role)
	assert.True(t, promoted.IsVerified)
	assert.Equal(t, "Lisbon", promoted.GuideCity)
	assert.Equal(t, "English, Portuguese", promoted.GuideLanguages)

	require.Len(t, notifier.approved, 1)
	assert.Equal(t, tourist.ID, notifier.approved[0].ID)
}

func TestApproveRejectsDecidedApplication(t *testing.T) {
	guideRepo := newFakeGuideRepo()
	userRepo := newFakeUserRepo()
	svc := NewService(guideRepo, userRepo, nil)
	tourist := seedTourist(userRepo)

	application, err := svc.Apply(context.Background(), tourist.ID, validApplyRequest())
	require.NoError(t, err)
	applicationID := uuid.MustParse(application.ID)

	_, err = svc.Approve(context.Background(), applicationID)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), applicationID)
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestRejectLeavesUserUntouched(t *testing.T) {
	guideRepo := newFakeGuideRepo()
	userRepo := newFakeUserRepo()
	svc := NewService(guideRepo, userRepo, nil)
	tourist := seedTourist(userRepo)

	application, err := svc.Apply(context.Background(), tourist.ID, validApplyRequest())
	require.NoError(t, err)
	applicationID := uuid.MustParse(application.ID)

	resp, err := svc.Reject(context.Background(), applicationID)
	require.NoError(t, err)
	assert.Equal(t, string(ApplicationRejected), string(resp.Status))

	unchanged := userRepo.users[tourist.ID]
	assert.Equal(t, users.RoleTourist, unchanged.Role)
	assert.False(t, unchanged.IsVerified)
	assert.Nil(t, userRepo.updates)
}

func TestRejectedApplicantCanReapply(t *testing.T) {
	guideRepo := newFakeGuideRepo()
	userRepo := newFakeUserRepo()
	svc := NewService(guideRepo, userRepo, nil)
	tourist := seedTourist(userRepo)

	application, err := svc.Apply(context.Background(), tourist.ID, validApplyRequest())
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), uuid.MustParse(application.ID))
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), tourist.ID, validApplyRequest())
	assert.NoError(t, err)
}

func TestApproveMissingApplication(t *testing.T) {
	svc := NewService(newFakeGuideRepo(), newFakeUserRepo(), nil)

	_, err := svc.Approve(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}
