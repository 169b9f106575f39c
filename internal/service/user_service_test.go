package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	errorvalues "github.com/foshmed/daybook/internal/error_values"
	"github.com/foshmed/daybook/internal/service"
	"github.com/foshmed/daybook/pkg/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

type mockState int

const (
	stateSuccess mockState = iota
	stateDBError
	stateUserExists
	stateUserNotFound
)

var (
	userID       = uuid.New()
	userEmail    = "test@example.com"
	userPassword = "test_password"
)

func hashedTestUser() *entity.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(userPassword), bcrypt.DefaultCost)
	return &entity.User{
		ID:           userID,
		Name:         "test_user",
		Email:        userEmail,
		PasswordHash: string(hash),
	}
}

type usersRepoMock struct {
	state   mockState
	user    *entity.User
	updated *entity.User
	deleted bool
}

func (m *usersRepoMock) Create(ctx context.Context, user *entity.User) error {
	switch m.state {
	case stateUserExists:
		return errorvalues.ErrUserExists
	case stateDBError:
		return errors.New("db error")
	default:
		return nil
	}
}

func (m *usersRepoMock) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	switch m.state {
	case stateUserNotFound:
		return nil, errorvalues.ErrUserNotFound
	case stateDBError:
		return nil, errors.New("db error")
	default:
		return m.user, nil
	}
}

func (m *usersRepoMock) FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
	switch m.state {
	case stateUserNotFound:
		return nil, errorvalues.ErrUserNotFound
	case stateDBError:
		return nil, errors.New("db error")
	default:
		return m.user, nil
	}
}

func (m *usersRepoMock) Update(ctx context.Context, user *entity.User) error {
	switch m.state {
	case stateUserNotFound:
		return errorvalues.ErrUserNotFound
	case stateDBError:
		return errors.New("db error")
	default:
		m.updated = user
		return nil
	}
}

func (m *usersRepoMock) Delete(ctx context.Context, uid uuid.UUID) error {
	switch m.state {
	case stateUserNotFound:
		return errorvalues.ErrUserNotFound
	case stateDBError:
		return errors.New("db error")
	default:
		m.deleted = true
		return nil
	}
}

type imageStoreMock struct {
	uploadErr  error
	deleteErr  error
	uploadedTo string
	deletedURL string
}

func (m *imageStoreMock) Upload(ctx context.Context, file multipart.File, folder string) (string, error) {
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	m.uploadedTo = folder
	return "https://res.cloudinary.com/demo/image/upload/v123/" + folder + "/pic.jpg", nil
}

func (m *imageStoreMock) Delete(ctx context.Context, url string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedURL = url
	return nil
}

func TestRegister(t *testing.T) {
	mock := &usersRepoMock{state: stateSuccess, user: hashedTestUser()}
	us := service.NewUserService(mock, &imageStoreMock{})
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		user, err := us.Register(ctx, &service.RegisterRequest{
			Name:     "test_user",
			Email:    userEmail,
			Password: userPassword,
		})
		assert.NoError(t, err)
		assert.Equal(t, userID, user.ID)
	})
	t.Run("validation error: bad email", func(t *testing.T) {
		_, err := us.Register(ctx, &service.RegisterRequest{
			Name:     "test_user",
			Email:    "not-an-email",
			Password: userPassword,
		})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
		assert.Contains(t, err.Error(), "Email")
	})
	t.Run("validation error: short password", func(t *testing.T) {
		_, err := us.Register(ctx, &service.RegisterRequest{
			Name:     "test_user",
			Email:    userEmail,
			Password: "short",
		})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
		assert.Contains(t, err.Error(), "Password")
	})
	t.Run("user exists", func(t *testing.T) {
		mock.state = stateUserExists
		_, err := us.Register(ctx, &service.RegisterRequest{
			Name:     "test_user",
			Email:    userEmail,
			Password: userPassword,
		})
		assert.ErrorIs(t, err, errorvalues.ErrUserExists)
	})
	t.Run("db error", func(t *testing.T) {
		mock.state = stateDBError
		_, err := us.Register(ctx, &service.RegisterRequest{
			Name:     "test_user",
			Email:    userEmail,
			Password: userPassword,
		})
		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	mock := &usersRepoMock{state: stateSuccess, user: hashedTestUser()}
	us := service.NewUserService(mock, &imageStoreMock{})
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		user, err := us.Login(ctx, userEmail, userPassword)
		assert.NoError(t, err)
		assert.Equal(t, userID, user.ID)
	})
	t.Run("wrong password", func(t *testing.T) {
		_, err := us.Login(ctx, userEmail, "wrong_password")
		assert.ErrorIs(t, err, errorvalues.ErrWrongCredentials)
	})
	t.Run("unknown email answered like wrong password", func(t *testing.T) {
		mock.state = stateUserNotFound
		_, err := us.Login(ctx, "nobody@example.com", userPassword)
		assert.ErrorIs(t, err, errorvalues.ErrWrongCredentials)
	})
	t.Run("db error", func(t *testing.T) {
		mock.state = stateDBError
		_, err := us.Login(ctx, userEmail, userPassword)
		assert.Error(t, err)
	})
}

func TestUpdateProfile(t *testing.T) {
	mock := &usersRepoMock{state: stateSuccess, user: hashedTestUser()}
	us := service.NewUserService(mock, &imageStoreMock{})
	ctx := context.Background()
	t.Run("name only keeps password", func(t *testing.T) {
		oldHash := mock.user.PasswordHash
		err := us.UpdateProfile(ctx, userID, &service.UpdateProfileRequest{
			Name: "renamed",
		})
		assert.NoError(t, err)
		assert.Equal(t, "renamed", mock.updated.Name)
		assert.Equal(t, oldHash, mock.updated.PasswordHash)
	})
	t.Run("new password rehashed", func(t *testing.T) {
		err := us.UpdateProfile(ctx, userID, &service.UpdateProfileRequest{
			Name:     "renamed",
			Password: "fresh_password",
		})
		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(mock.updated.PasswordHash), []byte("fresh_password")))
	})
	t.Run("user not found", func(t *testing.T) {
		mock.state = stateUserNotFound
		err := us.UpdateProfile(ctx, userID, &service.UpdateProfileRequest{Name: "renamed"})
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestSetProfileImage(t *testing.T) {
	ctx := context.Background()
	t.Run("uploads and stores url", func(t *testing.T) {
		mock := &usersRepoMock{state: stateSuccess, user: hashedTestUser()}
		images := &imageStoreMock{}
		us := service.NewUserService(mock, images)
		url, err := us.SetProfileImage(ctx, userID, nil)
		assert.NoError(t, err)
		assert.Equal(t, "daybook/profiles", images.uploadedTo)
		assert.Equal(t, url, mock.updated.ProfileImageURL)
	})
	t.Run("upload failure", func(t *testing.T) {
		mock := &usersRepoMock{state: stateSuccess, user: hashedTestUser()}
		images := &imageStoreMock{uploadErr: errors.New("network error")}
		us := service.NewUserService(mock, images)
		_, err := us.SetProfileImage(ctx, userID, nil)
		assert.Error(t, err)
		assert.Nil(t, mock.updated)
	})
}

func TestDeleteAccount(t *testing.T) {
	mock := &usersRepoMock{state: stateSuccess, user: hashedTestUser()}
	us := service.NewUserService(mock, &imageStoreMock{})
	ctx := context.Background()
	t.Run("wrong password", func(t *testing.T) {
		err := us.DeleteAccount(ctx, userID, "wrong_password")
		assert.ErrorIs(t, err, errorvalues.ErrWrongCredentials)
		assert.False(t, mock.deleted)
	})
	t.Run("deleted", func(t *testing.T) {
		err := us.DeleteAccount(ctx, userID, userPassword)
		assert.NoError(t, err)
		assert.True(t, mock.deleted)
	})
	t.Run("user not found", func(t *testing.T) {
		mock.state = stateUserNotFound
		err := us.DeleteAccount(ctx, userID, userPassword)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}
