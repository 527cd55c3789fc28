package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/incassopro/incasso-api/internal/application/dto"
	"github.com/incassopro/incasso-api/internal/domain"
	"github.com/incassopro/incasso-api/internal/domain/entity"
	"github.com/incassopro/incasso-api/internal/domain/repository"
	"github.com/incassopro/incasso-api/pkg/jwt"
)

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase registration and login. Authentication is a username lookup only:
// the system is an internal tool and password verification was removed from
// its contract deliberately.
type UseCase struct {
	users  repository.UserRepository
	jwtCfg JWTConfig
}

// NewUseCase builds the auth use case.
func NewUseCase(users repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{users: users, jwtCfg: jwtCfg}
}

// Register creates a user. Returns domain.ErrUsernameTaken or
// domain.ErrEmailAlreadyExists on collisions.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, err := uc.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	existing, err = uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	name := in.Name
	if name == "" {
		name = in.Username
	}
	user := &entity.User{
		ID:        uuid.New().String(),
		Username:  in.Username,
		Name:      name,
		Email:     in.Email,
		Role:      in.Role,
		CreatedAt: time.Now(),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login looks the user up by username and issues a JWT.
// Returns domain.ErrUserNotFound for unknown usernames.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// DeleteAccount removes the authenticated user. Batches and cases survive
// with their user reference detached.
func (uc *UseCase) DeleteAccount(ctx context.Context, userID string) error {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.users.Delete(ctx, userID)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
