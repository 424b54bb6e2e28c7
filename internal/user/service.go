package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog/log"
)

type Service interface {
	CreateUser(ctx context.Context, req CreateOrReplaceRequest) (*Response, error)
	GetUsersByBirthDateRange(ctx context.Context, rng DateRange) ([]Response, error)
	UpdateUser(ctx context.Context, id int64, req CreateOrReplaceRequest) (*Response, error)
	UpdatePartialUser(ctx context.Context, id int64, req PartialUpdateRequest) (*Response, error)
	DeleteUser(ctx context.Context, id int64) error
}

type Option func(*service)

// WithClock overrides the source of "today" used by the date rules.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

type service struct {
	repo      Repository
	validator *Validator
	now       func() time.Time
}

func NewService(repo Repository, opts ...Option) Service {
	s := &service{
		repo:      repo,
		validator: NewValidator(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) today() Date {
	return civil.DateOf(s.now())
}

func (s *service) CreateUser(ctx context.Context, req CreateOrReplaceRequest) (*Response, error) {
	if err := s.validator.CreateOrReplace(req, s.today()); err != nil {
		return nil, err
	}

	newUser := ToDomain(req)

	saved, err := s.repo.Save(ctx, &newUser)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to create user in repository")
		return nil, fmt.Errorf("service: failed to save user: %w", err)
	}

	log.Info().Int64("user_id", saved.ID).Msg("service: user created")

	resp := ToResponse(*saved)
	return &resp, nil
}

func (s *service) GetUsersByBirthDateRange(ctx context.Context, rng DateRange) ([]Response, error) {
	if err := s.validator.DateRange(rng); err != nil {
		return nil, err
	}

	users, err := s.repo.FindByBirthDateBetween(ctx, *rng.From, *rng.To)
	if err != nil {
		log.Error().Err(err).Stringer("from", rng.From).Stringer("to", rng.To).Msg("service: failed to fetch users by birth date range")
		return nil, fmt.Errorf("service: failed to fetch users born between %s and %s: %w", rng.From, rng.To, err)
	}

	responses := make([]Response, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToResponse(u))
	}

	return responses, nil
}

func (s *service) UpdateUser(ctx context.Context, id int64, req CreateOrReplaceRequest) (*Response, error) {
	if err := s.validator.CreateOrReplace(req, s.today()); err != nil {
		return nil, err
	}

	if err := s.ensureExists(ctx, id); err != nil {
		return nil, err
	}

	replacement := ToDomain(req)
	replacement.ID = id

	saved, err := s.repo.Save(ctx, &replacement)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn().Int64("user_id", id).Msg("service: user disappeared before replace")
			return nil, ErrNotFound
		}
		log.Error().Err(err).Int64("user_id", id).Msg("service: failed to replace user in repository")
		return nil, fmt.Errorf("service: failed to update user by id '%d': %w", id, err)
	}

	resp := ToResponse(*saved)
	return &resp, nil
}

func (s *service) UpdatePartialUser(ctx context.Context, id int64, req PartialUpdateRequest) (*Response, error) {
	if err := s.validator.PartialUpdate(req, s.today()); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn().Int64("user_id", id).Msg("service: user not found for partial update")
			return nil, ErrNotFound
		}
		log.Error().Err(err).Int64("user_id", id).Msg("service: failed to get user for partial update")
		return nil, fmt.Errorf("service: failed to get user by id '%d': %w", id, err)
	}

	merged := Merge(*existing, req)

	saved, err := s.repo.Save(ctx, &merged)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn().Int64("user_id", id).Msg("service: user disappeared before partial update")
			return nil, ErrNotFound
		}
		log.Error().Err(err).Int64("user_id", id).Msg("service: failed to save merged user")
		return nil, fmt.Errorf("service: failed to update user by id '%d': %w", id, err)
	}

	resp := ToResponse(*saved)
	return &resp, nil
}

func (s *service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.ensureExists(ctx, id); err != nil {
		return err
	}

	err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}

		log.Error().Err(err).Int64("user_id", id).Msg("service: failed to delete user")
		return fmt.Errorf("service: failed to delete user by id '%d': %w", id, err)
	}

	log.Info().Int64("user_id", id).Msg("service: user deleted")
	return nil
}

// ensureExists turns a missing id into ErrNotFound before any write is made.
func (s *service) ensureExists(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("user_id", id).Msg("service: failed to check user existence")
		return fmt.Errorf("service: failed to check user by id '%d': %w", id, err)
	}

	if !exists {
		log.Warn().Int64("user_id", id).Msg("service: user not found")
		return ErrNotFound
	}

	return nil
}
