package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/events"
	"github.com/spec-kit/user-service/internal/repository"
)

const msgUserIDOnCreate = "userId cannot be set for create operation"

// UserService coordinates user registration and lookup.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CreateUser validates candidate, enforces email uniqueness and persists it.
//
// Rule violations are reported in the returned result and never as an error; the
// error is reserved for repository failures. Persistence is attempted only when
// every check passed. The uniqueness lookup and the insert are not atomic; the
// storage unique constraint catches the lost race and it is reported the same way.
func (s *UserService) CreateUser(ctx context.Context, candidate *domain.User) (*domain.Result[*domain.User], error) {
	if candidate == nil {
		candidate = &domain.User{}
	}

	result := domain.ValidateUser(candidate)
	if candidate.UserID != 0 {
		result.AddMessage(msgUserIDOnCreate, domain.ResultInvalid)
	}

	existing, err := s.users.FindByEmail(ctx, candidate.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		result.AddMessage(emailInUse(candidate.Email), domain.ResultInvalid)
	}

	if !result.IsSuccess() {
		return result, nil
	}

	saved, err := s.users.Save(ctx, candidate)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			result.AddMessage(emailInUse(candidate.Email), domain.ResultInvalid)
			return result, nil
		}
		return nil, err
	}
	result.SetData(saved)

	s.publishEvent(ctx, events.Event{
		Type:   events.EventUserRegistered,
		UserID: saved.UserID,
		Payload: events.UserRegisteredPayload{
			Email: saved.Email,
			Name:  saved.Name,
		},
	})
	return result, nil
}

// FindByEmail returns the user registered with email, or nil when there is none.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.FindByEmail(ctx, email)
}

func (s *UserService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID),
			zap.Int64("user_id", event.UserID),
			zap.Error(err))
	}
}

func emailInUse(email string) string {
	return fmt.Sprintf("Email '%s' is already in use.", email)
}
