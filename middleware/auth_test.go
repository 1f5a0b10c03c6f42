package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/pkg"
	"github.com/akinalp/velo/services"
)

const testSecret = "test-secret"

// fakeUserRepo, EnsureUser'ın dizin yazmasını gözlemlemek için minimal fake.
type fakeUserRepo struct {
	users map[string]*models.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, pkg.ErrNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func authFixture() (*AuthMiddleware, *fakeUserRepo) {
	repo := &fakeUserRepo{users: map[string]*models.User{}}
	return NewAuthMiddleware(services.NewAuthService(testSecret), services.NewUserService(repo)), repo
}

func signToken(t *testing.T, userID, username string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.TokenClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddlewarePassesClaimsAndSyncsDirectory(t *testing.T) {
	mw, repo := authFixture()

	var gotClaims *models.TokenClaims
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/unread", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u-1", "alice"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotClaims)
	assert.Equal(t, "u-1", gotClaims.UserID)

	// İlk istek kullanıcıyı dizine yazdı — artık mention'lanabilir.
	created, ok := repo.users["u-1"]
	require.True(t, ok)
	assert.Equal(t, "alice", created.Username)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	mw, _ := authFixture()
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without auth")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/unread", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	mw, _ := authFixture()
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without auth")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/unread", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	mw, _ := authFixture()
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without auth")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/unread", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
