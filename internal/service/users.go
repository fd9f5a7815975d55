package service

import (
	"context"

	"example.com/eventhub/services/events/internal/identifier"
	"example.com/eventhub/services/events/internal/models"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CreateUser registers a new account. Emails are unique.
func (s *service) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if in.Email == "" {
		return nil, invalidField("email", "is required")
	}

	_, err := s.repo.FindUserByEmail(ctx, in.Email)
	if err == nil {
		return nil, errors.Wrapf(ErrAlreadyExists, "user with email %q", in.Email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.User{
		ID:        identifier.New(),
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
	}

	err = s.repo.CreateUser(ctx, user)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Concurrent registration of the same email also lands here;
		// a single id retry tells the two cases apart.
		user.ID = identifier.New()
		err = s.repo.CreateUser(ctx, user)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.Wrapf(ErrAlreadyExists, "user with email %q", in.Email)
		}
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	log.Info().Str("user_id", user.ID).Msg("User created")

	return user, nil
}

// GetUser returns the user's profile.
func (s *service) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "user %q", userID)
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial profile update.
func (s *service) UpdateUser(ctx context.Context, userID string, in UpdateUserInput) (*models.User, error) {
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "user %q", userID)
		}
		return nil, err
	}

	if in.FirstName != nil {
		user.FirstName = in.FirstName
	}
	if in.LastName != nil {
		user.LastName = in.LastName
	}
	if in.Phone != nil {
		user.Phone = in.Phone
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	return user, nil
}
