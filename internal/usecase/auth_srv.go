package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-booking/internal/access"
	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, uc entity.UserContext, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, uc entity.UserContext, req *request.LoginRequest, client request.ClientInfo) (*response.AuthResponse, error)
	Logout(ctx context.Context, uc entity.UserContext) error
	// ResolveContext maps a session token to its caller. An empty token is a guest.
	ResolveContext(ctx context.Context, token string) (entity.UserContext, error)
	SeedAdmin(ctx context.Context, admin utils.AdminConfig) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
		now:    time.Now,
	}
}

func (s *authService) Register(ctx context.Context, uc entity.UserContext, req *request.RegisterRequest) (*response.UserResponse, error) {
	if err := access.Check(uc, access.Register); err != nil {
		return nil, fmt.Errorf("register while logged in: %w", err)
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := validate(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}

	user, err := s.createUser(ctx, req, entity.RoleUser)
	if err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) createUser(ctx context.Context, req *request.RegisterRequest, role entity.UserRole) (*entity.User, error) {
	existing, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("username %s already taken: %w", req.Username, ErrConflict)
	}

	existing, err = s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s already registered: %w", req.Email, ErrConflict)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &entity.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Role:         role,
		IsActive:     true,
	}
	user.ID = uuid.New()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("account %s already exists: %w", req.Username, ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, uc entity.UserContext, req *request.LoginRequest, client request.ClientInfo) (*response.AuthResponse, error) {
	if err := access.Check(uc, access.Login); err != nil {
		return nil, fmt.Errorf("already logged in: %w", err)
	}

	req.Identifier = strings.TrimSpace(req.Identifier)
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Identifier)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil && strings.Contains(req.Identifier, "@") {
		user, err = s.repo.User.FindByEmail(ctx, req.Identifier)
		if err != nil {
			return nil, fmt.Errorf("find user: %w", err)
		}
	}

	if user == nil || !user.IsActive || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login failed", zap.String("identifier", req.Identifier))
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	session := &entity.Session{
		UserID:    user.ID,
		Token:     uuid.New(),
		ExpiresAt: now.Add(s.sessionTTL()),
	}
	session.ID = uuid.New()
	session.CreatedAt = now
	if client.UserAgent != "" {
		session.UserAgent = &client.UserAgent
	}
	if client.IPAddress != "" {
		session.IPAddress = &client.IPAddress
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) sessionTTL() time.Duration {
	if s.config == nil || s.config.Session.TTL <= 0 {
		return 24 * time.Hour
	}
	return s.config.Session.TTL
}

func (s *authService) Logout(ctx context.Context, uc entity.UserContext) error {
	if err := access.Check(uc, access.Logout); err != nil {
		return ErrUnauthenticated
	}

	if err := s.repo.Session.Revoke(ctx, uc.Token); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnauthenticated
		}
		return fmt.Errorf("revoke session: %w", err)
	}

	s.log.Info("User logged out", zap.String("user_id", uc.UserID().String()))
	return nil
}

func (s *authService) ResolveContext(ctx context.Context, token string) (entity.UserContext, error) {
	if token == "" {
		return entity.GuestContext(), nil
	}

	session, err := s.repo.Session.FindValidSession(ctx, token)
	if err != nil {
		return entity.GuestContext(), fmt.Errorf("find session: %w", err)
	}
	if session == nil {
		return entity.GuestContext(), ErrUnauthenticated
	}

	user, err := s.repo.User.FindByID(ctx, session.UserID)
	if err != nil {
		return entity.GuestContext(), fmt.Errorf("find session user: %w", err)
	}
	if user == nil || !user.IsActive || !user.Role.Valid() {
		return entity.GuestContext(), ErrUnauthenticated
	}

	return entity.NewUserContext(user, token), nil
}

// SeedAdmin creates the configured administrator once. It does nothing when
// no admin is configured or the username already exists.
func (s *authService) SeedAdmin(ctx context.Context, admin utils.AdminConfig) error {
	if admin.Username == "" || admin.Password == "" {
		return nil
	}

	req := &request.RegisterRequest{
		Username: admin.Username,
		Password: admin.Password,
		Email:    admin.Email,
		Phone:    admin.Phone,
	}
	if err := validate(req); err != nil {
		return fmt.Errorf("admin account: %w", err)
	}

	user, err := s.createUser(ctx, req, entity.RoleAdmin)
	if errors.Is(err, ErrConflict) {
		return nil
	}
	if err != nil {
		return err
	}

	s.log.Info("Admin account seeded", zap.String("username", user.Username))
	return nil
}
