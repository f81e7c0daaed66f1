package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racquet-stats-system/apperrors"
	"racquet-stats-system/models"
	"racquet-stats-system/services"
	"racquet-stats-system/store"
)

type fakeVerifier struct {
	claims *services.IdentityClaims
}

func (v *fakeVerifier) Verify(_ context.Context, token string) (*services.IdentityClaims, error) {
	if v.claims == nil || token == "bad" {
		return nil, apperrors.ErrInvalidIdentity
	}
	return v.claims, nil
}

type fakeUserStore struct {
	store.Store // panics on anything the middleware should not call

	users       map[string]*models.User
	lastOwner   *models.Player
	createCalls int
}

func (f *fakeUserStore) GetUserByFirebaseID(_ context.Context, firebaseID string) (*models.User, error) {
	for _, user := range f.users {
		if user.FirebaseID == firebaseID {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User, owner *models.Player) error {
	f.users[user.ID] = user
	f.lastOwner = owner
	f.createCalls++
	return nil
}

func newAuthApp(verifier services.IdentityVerifier, st store.Store) *fiber.App {
	app := fiber.New()
	app.Use(FirebaseAuthMiddleware(verifier, st))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		user, err := services.CurrentUser(c)
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.JSON(user)
	})
	return app
}

func TestAuthWithoutToken(t *testing.T) {
	st := &fakeUserStore{users: map[string]*models.User{}}
	app := newAuthApp(&fakeVerifier{}, st)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, st.createCalls)
}

func TestAuthWithInvalidToken(t *testing.T) {
	st := &fakeUserStore{users: map[string]*models.User{}}
	app := newAuthApp(&fakeVerifier{}, st)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(IdentityHeader, "bad")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, st.createCalls)
}

func TestAuthRegistersNewUserWithOwnerPlayer(t *testing.T) {
	st := &fakeUserStore{users: map[string]*models.User{}}
	verifier := &fakeVerifier{claims: &services.IdentityClaims{
		FirebaseID: "NEW_FB_ID",
		Name:       "FIRST MIDDLE LAST",
		Email:      "EMAIL",
		Picture:    "PICTURE",
	}}
	app := newAuthApp(verifier, st)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(IdentityHeader, "good")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.Equal(t, 1, st.createCalls)
	require.Len(t, st.users, 1)
	for _, user := range st.users {
		assert.Equal(t, "NEW_FB_ID", user.FirebaseID)
		assert.Equal(t, "FIRST", user.FirstName)
		assert.Equal(t, "MIDDLE LAST", user.LastName)
		assert.Equal(t, "PICTURE", user.ImageURL)
	}

	require.NotNil(t, st.lastOwner, "signup must create the owner player")
	assert.True(t, st.lastOwner.IsOwner)
	assert.Equal(t, "FIRST", st.lastOwner.FirstName)
	require.NotNil(t, st.lastOwner.EmailAddress)
	assert.Equal(t, "EMAIL", *st.lastOwner.EmailAddress)
}

func TestAuthReusesExistingUser(t *testing.T) {
	existing := &models.User{ID: "TEST1", FirebaseID: "fb1", FirstName: "Tester", LastName: "One"}
	st := &fakeUserStore{users: map[string]*models.User{"TEST1": existing}}
	verifier := &fakeVerifier{claims: &services.IdentityClaims{FirebaseID: "fb1", Name: "Tester One"}}
	app := newAuthApp(verifier, st)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(IdentityHeader, "good")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, st.createCalls)
}

func TestSplitName(t *testing.T) {
	cases := []struct {
		in    string
		first string
		last  string
	}{
		{"FIRST MIDDLE LAST", "FIRST", "MIDDLE LAST"},
		{"Single", "Single", ""},
		{"  Padded Name ", "Padded", "Name"},
		{"", "", ""},
	}
	for _, tc := range cases {
		first, last := splitName(tc.in)
		assert.Equal(t, tc.first, first, "input %q", tc.in)
		assert.Equal(t, tc.last, last, "input %q", tc.in)
	}
}
