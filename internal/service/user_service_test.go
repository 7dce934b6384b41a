package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/events"
	"github.com/spec-kit/user-service/internal/repository"
)

type fakeUserRepo struct {
	repository.UserRepository
	mu      sync.Mutex
	finds   int
	saves   int
	findErr error
	saveErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{UserRepository: repository.NewMemoryUserRepository()}
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	r.finds++
	r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.UserRepository.FindByEmail(ctx, email)
}

func (r *fakeUserRepo) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	r.saves++
	r.mu.Unlock()
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	return r.UserRepository.Save(ctx, user)
}

type recordingDispatcher struct {
	published []events.Event
	err       error
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return d.err
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func newTestService(repo repository.UserRepository) (*UserService, *recordingDispatcher) {
	dispatcher := &recordingDispatcher{}
	return NewUserService(UserDependencies{UserRepo: repo, Dispatcher: dispatcher}), dispatcher
}

func TestCreateUser_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc, dispatcher := newTestService(repo)

	result, err := svc.CreateUser(context.Background(), &domain.User{Email: "x@y.co", Name: "Al", Password: "password1"})
	require.NoError(t, err)

	assert.True(t, result.IsSuccess())
	assert.Equal(t, domain.ResultSuccess, result.Type())
	assert.Empty(t, result.Messages())
	require.NotNil(t, result.Data())
	assert.NotZero(t, result.Data().UserID)
	assert.Equal(t, "x@y.co", result.Data().Email)
	assert.Equal(t, 1, repo.saves)

	require.Len(t, dispatcher.published, 1)
	event := dispatcher.published[0]
	assert.Equal(t, events.EventUserRegistered, event.Type)
	assert.Equal(t, result.Data().UserID, event.UserID)
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.IsZero())
	assert.Equal(t, events.UserRegisteredPayload{Email: "x@y.co", Name: "Al"}, event.Payload)
}

func TestCreateUser_RuleViolations(t *testing.T) {
	tests := []struct {
		name      string
		candidate *domain.User
		messages  []string
	}{
		{
			name:      "bad email",
			candidate: &domain.User{Email: "bad-email", Name: "Al", Password: "password1"},
			messages:  []string{"email must be a valid email address"},
		},
		{
			name:      "short password",
			candidate: &domain.User{Email: "x@y.co", Name: "Al", Password: "short"},
			messages:  []string{"password must have at least 8 characters"},
		},
		{
			name:      "identifier supplied",
			candidate: &domain.User{UserID: 5, Email: "x@y.co", Name: "Al", Password: "password1"},
			messages:  []string{msgUserIDOnCreate},
		},
		{
			name:      "negative identifier",
			candidate: &domain.User{UserID: -1, Email: "x@y.co", Name: "Al", Password: "password1"},
			messages:  []string{"userId cannot be negative", msgUserIDOnCreate},
		},
		{
			name:      "empty record",
			candidate: &domain.User{},
			messages:  []string{"email is required", "name is required", "password is required"},
		},
		{
			name:      "nil record",
			candidate: nil,
			messages:  []string{"email is required", "name is required", "password is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepo()
			svc, dispatcher := newTestService(repo)

			result, err := svc.CreateUser(context.Background(), tt.candidate)
			require.NoError(t, err)

			assert.False(t, result.IsSuccess())
			assert.Equal(t, domain.ResultInvalid, result.Type())
			assert.ElementsMatch(t, tt.messages, result.Messages())
			assert.Nil(t, result.Data())
			assert.Zero(t, repo.saves, "nothing may be persisted on failure")
			assert.Empty(t, dispatcher.published)
		})
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	_, err := repo.UserRepository.Save(context.Background(), &domain.User{Email: "a@b.co", Name: "First", Password: "password1"})
	require.NoError(t, err)
	svc, dispatcher := newTestService(repo)

	result, err := svc.CreateUser(context.Background(), &domain.User{Email: "a@b.co", Name: "Second", Password: "password2"})
	require.NoError(t, err)

	assert.Equal(t, domain.ResultInvalid, result.Type())
	assert.Equal(t, []string{"Email 'a@b.co' is already in use."}, result.Messages())
	assert.Zero(t, repo.saves)
	assert.Empty(t, dispatcher.published)

	stored, err := svc.FindByEmail(context.Background(), "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, "First", stored.Name)
}

func TestCreateUser_DuplicateAndRuleViolationsAccumulate(t *testing.T) {
	repo := newFakeUserRepo()
	_, err := repo.UserRepository.Save(context.Background(), &domain.User{Email: "a@b.co", Name: "First", Password: "password1"})
	require.NoError(t, err)
	svc, _ := newTestService(repo)

	result, err := svc.CreateUser(context.Background(), &domain.User{UserID: 3, Email: "a@b.co", Name: strings.Repeat("n", 51), Password: "pw"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"name cannot be greater than 50 characters",
		"password must have at least 8 characters",
		msgUserIDOnCreate,
		"Email 'a@b.co' is already in use.",
	}, result.Messages())
	assert.Zero(t, repo.saves)
}

func TestCreateUser_LostRaceReportedInBand(t *testing.T) {
	repo := newFakeUserRepo()
	repo.saveErr = domain.ErrEmailTaken
	svc, dispatcher := newTestService(repo)

	result, err := svc.CreateUser(context.Background(), &domain.User{Email: "x@y.co", Name: "Al", Password: "password1"})
	require.NoError(t, err)

	assert.Equal(t, domain.ResultInvalid, result.Type())
	assert.Equal(t, []string{"Email 'x@y.co' is already in use."}, result.Messages())
	assert.Nil(t, result.Data())
	assert.Empty(t, dispatcher.published)
}

func TestCreateUser_InfrastructureErrors(t *testing.T) {
	cause := errors.New("store unavailable")

	t.Run("lookup", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.findErr = cause
		svc, _ := newTestService(repo)

		result, err := svc.CreateUser(context.Background(), &domain.User{Email: "x@y.co", Name: "Al", Password: "password1"})
		assert.ErrorIs(t, err, cause)
		assert.Nil(t, result)
		assert.Zero(t, repo.saves)
	})

	t.Run("save", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.saveErr = cause
		svc, dispatcher := newTestService(repo)

		result, err := svc.CreateUser(context.Background(), &domain.User{Email: "x@y.co", Name: "Al", Password: "password1"})
		assert.ErrorIs(t, err, cause)
		assert.Nil(t, result)
		assert.Empty(t, dispatcher.published)
	})
}

func TestCreateUser_ConcurrentSameEmail(t *testing.T) {
	svc, _ := newTestService(newFakeUserRepo())

	const attempts = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := svc.CreateUser(context.Background(), &domain.User{Email: "race@y.co", Name: "Al", Password: "password1"})
			if !assert.NoError(t, err) {
				return
			}
			if result.IsSuccess() {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			assert.Equal(t, []string{"Email 'race@y.co' is already in use."}, result.Messages())
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestFindByEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)

	missing, err := svc.FindByEmail(context.Background(), "nobody@y.co")
	require.NoError(t, err)
	assert.Nil(t, missing)

	created, err := svc.CreateUser(context.Background(), &domain.User{Email: "x@y.co", Name: "Al", Password: "password1"})
	require.NoError(t, err)
	require.True(t, created.IsSuccess())

	first, err := svc.FindByEmail(context.Background(), "x@y.co")
	require.NoError(t, err)
	second, err := svc.FindByEmail(context.Background(), "x@y.co")
	require.NoError(t, err)
	assert.Equal(t, created.Data(), first)
	assert.Equal(t, first, second)
}

func TestFindByEmail_PropagatesErrors(t *testing.T) {
	repo := newFakeUserRepo()
	repo.findErr = errors.New("timeout")
	svc, _ := newTestService(repo)

	_, err := svc.FindByEmail(context.Background(), "x@y.co")
	assert.ErrorIs(t, err, repo.findErr)
}

func TestCreateUser_NilDispatcher(t *testing.T) {
	svc := NewUserService(UserDependencies{UserRepo: newFakeUserRepo()})

	result, err := svc.CreateUser(context.Background(), &domain.User{Email: "x@y.co", Name: "Al", Password: "password1"})
	require.NoError(t, err)
	assert.True(t, result.IsSuccess())
}

func TestCreateUser_EventFailureLoggedNotReturned(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	dispatcher := &recordingDispatcher{err: errors.New("webhook unreachable")}
	svc := NewUserService(UserDependencies{
		UserRepo:   newFakeUserRepo(),
		Dispatcher: dispatcher,
		Logger:     zap.New(core),
	})

	result, err := svc.CreateUser(context.Background(), &domain.User{Email: "x@y.co", Name: "Al", Password: "password1"})
	require.NoError(t, err)
	assert.True(t, result.IsSuccess())

	entries := logs.FilterMessage("event delivery failed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "user_registered", fields["event_type"])
	assert.Equal(t, result.Data().UserID, fields["user_id"])
	assert.Equal(t, dispatcher.published[0].ID, fields["event_id"])
	assert.Equal(t, "webhook unreachable", fields["error"])
}
