package user

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/common"
	"inkwell/internal/dbmysql"
)

type UserService interface {
	RegisterUser(ctx context.Context, handle, email, password string) (*dbmysql.User, string, error)
	LoginUser(ctx context.Context, handle, password string) (*dbmysql.User, string, error)
	GetProfile(ctx context.Context, userID uint64) (*dbmysql.User, error)
	UpdateProfile(ctx context.Context, userID uint64, email, bio string) error
}

type userService struct {
	userRepo UserRepository
}

func NewUserService(userRepo UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) RegisterUser(ctx context.Context, handle, email, password string) (*dbmysql.User, string, error) {
	handle = strings.TrimSpace(handle)

	if err := common.ValidateHandle(handle); err != nil {
		return nil, "", err
	}
	if err := common.ValidateEmail(email); err != nil {
		return nil, "", err
	}
	if err := common.ValidatePassword(password); err != nil {
		return nil, "", err
	}

	exists, err := s.userRepo.CheckUserExists(ctx, handle)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", common.NewValidationError("handle", "already exists")
	}

	hashed, err := common.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &dbmysql.User{
		Handle:       handle,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hashed,
		Role:         string(common.RoleUser),
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := common.GenerateToken(user.UserID, user.Handle, common.Role(user.Role))
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *userService) LoginUser(ctx context.Context, handle, password string) (*dbmysql.User, string, error) {
	user, err := s.userRepo.GetUserByHandle(ctx, strings.TrimSpace(handle))
	if err != nil {
		return nil, "", errors.New("invalid handle or password")
	}

	if err := common.CheckPassword(password, user.PasswordHash); err != nil {
		return nil, "", errors.New("invalid handle or password")
	}

	token, err := common.GenerateToken(user.UserID, user.Handle, common.Role(user.Role))
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *userService) GetProfile(ctx context.Context, userID uint64) (*dbmysql.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint64, email, bio string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if email != "" {
		if err := common.ValidateEmail(email); err != nil {
			return err
		}
		user.Email = strings.ToLower(strings.TrimSpace(email))
	}
	if bio != "" {
		user.Bio = bio
	}

	return s.userRepo.SaveUser(ctx, user)
}
