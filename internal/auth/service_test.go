package auth_test

import (
	"complaintbox/backend/internal/apperror"
	"complaintbox/backend/internal/auth"
	"complaintbox/backend/internal/models"
	"complaintbox/backend/internal/storage"
	"complaintbox/backend/internal/storage/storagetest"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T, store *storage.Service, attempts storage.LoginAttempts) *auth.Service {
	t.Helper()
	tokens := auth.NewTokenIssuer("test-secret", time.Hour, "complaintbox-service")
	return auth.NewService(store, attempts, tokens, auth.Options{
		MaxAttempts:   3,
		AttemptWindow: time.Minute,
		BcryptCost:    bcrypt.MinCost,
	})
}

func studentInput(email string) auth.RegisterInput {
	return auth.RegisterInput{
		Name:     "Olena",
		Email:    email,
		Password: "secret1",
		Role:     models.RoleStudent,
	}
}

func TestRegister_ThenLogin(t *testing.T) {
	store := storagetest.NewService(t)
	svc := newAuthService(t, store, nil)
	ctx := context.Background()

	session, user, err := svc.Register(ctx, studentInput("Olena@Uni.edu "))
	require.NoError(t, err)
	assert.Equal(t, "bearer", session.TokenType)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "olena@uni.edu", user.Email)
	assert.NotEqual(t, "secret1", user.PasswordHash, "raw password must never be stored")

	resolved, err := svc.Resolve(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	loginSession, err := svc.Login(ctx, "olena@uni.edu", "secret1")
	require.NoError(t, err)
	resolved, err = svc.Resolve(ctx, loginSession.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	_, err = svc.Login(ctx, "olena@uni.edu", "secret2")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestRegister_Duplicate(t *testing.T) {
	store := storagetest.NewService(t)
	svc := newAuthService(t, store, nil)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, studentInput("dup@uni.edu"))
	require.NoError(t, err)

	in := studentInput("DUP@uni.edu")
	in.Role = models.RoleAdmin
	_, _, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, apperror.ErrDuplicateIdentity)

	var count int64
	require.NoError(t, store.DB.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegister_Validation(t *testing.T) {
	store := storagetest.NewService(t)
	svc := newAuthService(t, store, nil)

	tests := []struct {
		name   string
		mutate func(*auth.RegisterInput)
	}{
		{"short password", func(in *auth.RegisterInput) { in.Password = "12345" }},
		{"short multibyte password", func(in *auth.RegisterInput) { in.Password = "ééé" }},
		{"long password", func(in *auth.RegisterInput) { in.Password = strings.Repeat("x", 73) }},
		{"bad email", func(in *auth.RegisterInput) { in.Email = "not-an-email" }},
		{"display name email", func(in *auth.RegisterInput) { in.Email = "Olena <o@uni.edu>" }},
		{"missing name", func(in *auth.RegisterInput) { in.Name = "  " }},
		{"unknown role", func(in *auth.RegisterInput) { in.Role = "staff" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := studentInput("valid@uni.edu")
			tt.mutate(&in)

			_, _, err := svc.Register(context.Background(), in)
			assert.ErrorIs(t, err, apperror.ErrValidation)
		})
	}
}

func TestRegister_MultibytePasswordCountsCharacters(t *testing.T) {
	store := storagetest.NewService(t)
	svc := newAuthService(t, store, nil)
	ctx := context.Background()

	in := studentInput("uk@uni.edu")
	in.Password = "пароль"
	_, _, err := svc.Register(ctx, in)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "uk@uni.edu", "пароль")
	assert.NoError(t, err)
}

func TestLogin_UnknownEmailMatchesWrongPassword(t *testing.T) {
	store := storagetest.NewService(t)
	svc := newAuthService(t, store, nil)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, studentInput("known@uni.edu"))
	require.NoError(t, err)

	_, errUnknown := svc.Login(ctx, "unknown@uni.edu", "secret1")
	_, errWrong := svc.Login(ctx, "known@uni.edu", "wrong-password")

	assert.ErrorIs(t, errUnknown, apperror.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, apperror.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestResolve_UnknownSubject(t *testing.T) {
	store := storagetest.NewService(t)
	svc := newAuthService(t, store, nil)
	tokens := auth.NewTokenIssuer("test-secret", time.Hour, "complaintbox-service")

	token, err := tokens.Issue("ghost-user")
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestLogin_Throttled(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := storage.NewStorageService(storagetest.NewDB(t), rdb)
	require.NoError(t, store.Migrate())
	svc := newAuthService(t, store, store)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, studentInput("slow@uni.edu"))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := svc.Login(ctx, "slow@uni.edu", "bad-guess")
		assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	}

	_, err = svc.Login(ctx, "slow@uni.edu", "secret1")
	assert.ErrorIs(t, err, apperror.ErrTooManyAttempts, "correct password is refused while throttled")

	mr.FastForward(2 * time.Minute)

	_, err = svc.Login(ctx, "slow@uni.edu", "secret1")
	require.NoError(t, err)

	assert.False(t, mr.Exists("login_fail:slow@uni.edu"), "successful login clears the counter")
}

func TestLogin_ConcurrentGuessesCappedAtMaxAttempts(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := storage.NewStorageService(storagetest.NewDB(t), rdb)
	require.NoError(t, store.Migrate())
	svc := newAuthService(t, store, store)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, studentInput("target@uni.edu"))
	require.NoError(t, err)

	const guesses = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		checked   int
		throttled int
	)
	for i := 0; i < guesses; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Login(ctx, "target@uni.edu", "bad-guess")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, apperror.ErrInvalidCredentials):
				checked++
			case errors.Is(err, apperror.ErrTooManyAttempts):
				throttled++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, checked, "only MaxAttempts guesses reach the password check")
	assert.Equal(t, guesses-3, throttled)
}
