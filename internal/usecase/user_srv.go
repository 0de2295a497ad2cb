package usecase

import (
	"context"
	"fmt"

	"movie-booking/internal/access"
	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/response"

	"go.uber.org/zap"
)

type UserService interface {
	GetAccountInfo(ctx context.Context, uc entity.UserContext) (*response.AccountResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetAccountInfo(ctx context.Context, uc entity.UserContext) (*response.AccountResponse, error) {
	if err := access.Check(uc, access.ViewAccount); err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := us.userRepo.FindByID(ctx, uc.UserID())
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", uc.UserID(), ErrNotFound)
	}

	return &response.AccountResponse{
		UserResponse: response.UserToResponse(user),
		Capabilities: access.Capabilities(user.Role),
	}, nil
}
