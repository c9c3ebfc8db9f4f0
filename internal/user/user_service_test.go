package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"inkwell/internal/common"
	"inkwell/internal/dbmysql"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *dbmysql.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id uint64) (*dbmysql.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dbmysql.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByHandle(ctx context.Context, handle string) (*dbmysql.User, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dbmysql.User), args.Error(1)
}

func (m *MockUserRepository) CheckUserExists(ctx context.Context, handle string) (bool, error) {
	args := m.Called(ctx, handle)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user *dbmysql.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func TestRegisterUser_Success(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	repo.On("CheckUserExists", mock.Anything, "alice").Return(false, nil)
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *dbmysql.User) bool {
		return u.Handle == "alice" && u.Email == "alice@example.com" && u.Role == "user" && u.PasswordHash != "secret1"
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*dbmysql.User).UserID = 1
	})

	user, token, err := svc.RegisterUser(context.Background(), " alice ", "Alice@Example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice", user.Handle)
	assert.Equal(t, "alice@example.com", user.Email)
	repo.AssertExpectations(t)
}

func TestRegisterUser_DuplicateHandle(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	repo.On("CheckUserExists", mock.Anything, "alice").Return(true, nil)

	_, _, err := svc.RegisterUser(context.Background(), "alice", "alice@example.com", "secret1")
	require.Error(t, err)
	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "handle", verr.Field)
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestRegisterUser_InvalidInput(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	tests := []struct {
		name     string
		handle   string
		email    string
		password string
	}{
		{"short handle", "ab", "a@b.com", "secret1"},
		{"bad handle chars", "has spaces", "a@b.com", "secret1"},
		{"missing email", "alice", "", "secret1"},
		{"bad email", "alice", "not-an-email", "secret1"},
		{"short password", "alice", "a@b.com", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.RegisterUser(context.Background(), tt.handle, tt.email, tt.password)
			var verr *common.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
	repo.AssertNotCalled(t, "CheckUserExists", mock.Anything, mock.Anything)
}

func TestLoginUser(t *testing.T) {
	hash, err := common.HashPassword("secret1")
	require.NoError(t, err)
	stored := &dbmysql.User{UserID: 1, Handle: "alice", PasswordHash: hash, Role: "user"}

	t.Run("success", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)
		repo.On("GetUserByHandle", mock.Anything, "alice").Return(stored, nil)

		user, token, err := svc.LoginUser(context.Background(), "alice", "secret1")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, uint64(1), user.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)
		repo.On("GetUserByHandle", mock.Anything, "alice").Return(stored, nil)

		_, _, err := svc.LoginUser(context.Background(), "alice", "wrong")
		assert.EqualError(t, err, "invalid handle or password")
	})

	t.Run("unknown handle", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)
		repo.On("GetUserByHandle", mock.Anything, "ghost").Return(nil, common.ErrNotFound)

		_, _, err := svc.LoginUser(context.Background(), "ghost", "secret1")
		assert.EqualError(t, err, "invalid handle or password")
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("keeps blank fields", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)
		stored := &dbmysql.User{UserID: 1, Handle: "alice", Email: "old@example.com", Bio: "old bio"}
		repo.On("GetUserByID", mock.Anything, uint64(1)).Return(stored, nil)
		repo.On("SaveUser", mock.Anything, mock.MatchedBy(func(u *dbmysql.User) bool {
			return u.Email == "old@example.com" && u.Bio == "new bio"
		})).Return(nil)

		err := svc.UpdateProfile(context.Background(), 1, "", "new bio")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)
		repo.On("GetUserByID", mock.Anything, uint64(1)).Return(&dbmysql.User{UserID: 1}, nil)

		err := svc.UpdateProfile(context.Background(), 1, "nope", "")
		var verr *common.ValidationError
		assert.ErrorAs(t, err, &verr)
		repo.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
	})
}
