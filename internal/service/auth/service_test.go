package auth

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/auth"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/worker"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/jwt"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/validator"
	"github.com/lavage-pro/carwash-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-jwt"

type fixture struct {
	svc     auth.AuthService
	jwt     jwt.Service
	workers worker.WorkerRepository
	revoked auth.RevokedTokenRepository
}

func newFixture() *fixture {
	store := memory.NewStore(nil)
	f := &fixture{
		jwt:     jwt.NewJWTService(testSecret, "1h"),
		workers: memory.NewWorkerRepository(store),
		revoked: memory.NewRevokedTokenRepository(store),
	}
	f.svc = NewAuthService(f.workers, memory.NewProfileRepository(store), f.revoked, f.jwt)
	return f
}

func (f *fixture) seedWorker(t *testing.T, username, password string, admin, active bool) worker.Worker {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	w, err := f.workers.Create(context.Background(), worker.Worker{
		Username:     username,
		PasswordHash: string(hash),
		IsAdmin:      admin,
		IsActive:     active,
	})
	require.NoError(t, err)
	return w
}

// authed returns ctx carrying the verified token the way jwtauth.Verifier does.
func (f *fixture) authed(t *testing.T, token string) context.Context {
	t.Helper()
	decoded, err := jwtauth.VerifyToken(f.jwt.JWTAuth(), token)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), decoded, nil)
}

func TestAuthService_Login(t *testing.T) {
	f := newFixture()
	w := f.seedWorker(t, "karim", "secret1", true, true)

	resp, err := f.svc.Login(context.Background(), auth.LoginRequest{Username: "Karim", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, w.ID, resp.Worker.ID)
	assert.True(t, worker.DefaultDailySalary.Equal(resp.Worker.DailySalary))

	claims, err := auth.ClaimsFromContext(f.authed(t, resp.AccessToken))
	require.NoError(t, err)
	assert.Equal(t, w.ID, claims.WorkerID)
	assert.True(t, claims.IsAdmin)
}

func TestAuthService_Login_Failures(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seedWorker(t, "karim", "secret1", false, true)
	f.seedWorker(t, "gone", "secret1", false, false)

	_, err := f.svc.Login(ctx, auth.LoginRequest{Username: "karim", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Username: "nobody", Password: "secret1"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Username: "gone", Password: "secret1"})
	assert.ErrorIs(t, err, auth.ErrAccountDisabled)

	_, err = f.svc.Login(ctx, auth.LoginRequest{})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestAuthService_Logout_PersistsRevocation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seedWorker(t, "karim", "secret1", false, true)
	resp, err := f.svc.Login(ctx, auth.LoginRequest{Username: "karim", Password: "secret1"})
	require.NoError(t, err)

	revoked, err := f.svc.IsRevoked(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, f.svc.Logout(ctx, resp.AccessToken, resp.ExpiresAt))

	revoked, err = f.svc.IsRevoked(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.True(t, revoked)

	// a fresh process only has the persisted list
	restarted := NewAuthService(f.workers, nil, f.revoked, jwt.NewJWTService(testSecret, "1h"))
	revoked, err = restarted.IsRevoked(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.True(t, revoked)

	purged, err := f.revoked.PurgeExpired(ctx, time.Unix(resp.ExpiresAt, 0).Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}

func TestAuthService_MeAndSSEToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	w := f.seedWorker(t, "karim", "secret1", false, true)
	resp, err := f.svc.Login(ctx, auth.LoginRequest{Username: "karim", Password: "secret1"})
	require.NoError(t, err)
	authed := f.authed(t, resp.AccessToken)

	me, err := f.svc.Me(authed)
	require.NoError(t, err)
	assert.Equal(t, "karim", me.Username)

	sse, err := f.svc.SSEToken(authed)
	require.NoError(t, err)
	assert.Equal(t, 300, sse.ExpiresIn)
	workerID, err := f.jwt.ValidateSSEToken(sse.Token)
	require.NoError(t, err)
	assert.Equal(t, w.ID, workerID)

	w.IsActive = false
	_, err = f.workers.Update(ctx, w)
	require.NoError(t, err)
	_, err = f.svc.Me(authed)
	assert.ErrorIs(t, err, auth.ErrAccountDisabled)
}

func TestAuthService_Me_WithoutToken(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Me(context.Background())
	assert.Error(t, err)
}
