// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/inventory-api/internal/auth"
	"github.com/carterperez-dev/templates/inventory-api/internal/core"
)

const (
	msgEmailTaken   = "The email has already been taken."
	msgPhoneTaken   = "The phone has already been taken."
	msgUserNotFound = "User not found."
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	name, email, phone, passwordHash string,
) (*auth.UserInfo, error) {
	user := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: passwordHash,
	}

	if err := s.ensureUnique(ctx, user.Email, user.Phone, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, uniqueError(err)
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID uuid.UUID,
	passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (*User, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}

	return user, nil
}

// UpdateMe applies only the fields present in req. Changing the password
// leaves existing tokens valid.
func (s *Service) UpdateMe(
	ctx context.Context,
	userID uuid.UUID,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.GetMe(ctx, userID)
	if err != nil {
		return nil, err
	}

	email, phone := "", ""
	if req.Email != nil {
		email = *req.Email
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if err := s.ensureUnique(ctx, email, phone, user.ID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = email
	}
	if req.Phone != nil {
		user.Phone = phone
	}
	if req.Password != nil {
		hash, err := core.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, notFound(uniqueError(err))
	}

	return user, nil
}

// DeleteMe removes the account together with its tokens, categories and
// products. Nothing is removed if any step fails.
func (s *Service) DeleteMe(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.GetMe(ctx, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return notFound(err)
	}

	return nil
}

// ensureUnique checks email then phone; empty values are skipped.
func (s *Service) ensureUnique(
	ctx context.Context,
	email, phone string,
	exclude uuid.UUID,
) error {
	if email != "" {
		taken, err := s.repo.ExistsByEmail(ctx, email, exclude)
		if err != nil {
			return err
		}
		if taken {
			return core.ValidationError(msgEmailTaken)
		}
	}

	if phone != "" {
		taken, err := s.repo.ExistsByPhone(ctx, phone, exclude)
		if err != nil {
			return err
		}
		if taken {
			return core.ValidationError(msgPhoneTaken)
		}
	}

	return nil
}

func uniqueError(err error) error {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return core.ValidationError(msgEmailTaken)
	case errors.Is(err, ErrPhoneTaken):
		return core.ValidationError(msgPhoneTaken)
	default:
		return err
	}
}

func notFound(err error) error {
	if errors.Is(err, core.ErrNotFound) {
		return core.NotFoundError(msgUserNotFound)
	}
	return err
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

var _ auth.UserProvider = (*Service)(nil)
