package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/offboarding-service/internal/domain"
	"github.com/spec-kit/offboarding-service/pkg/util/errorutil"
)

type fakeLookup map[string]*domain.Employee

func (f fakeLookup) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	if e, ok := f[id]; ok {
		return e, nil
	}
	return nil, pgx.ErrNoRows
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	token, expiresAt, err := tm.GenerateToken("emp-1", domain.RoleManager)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), expiresAt, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", claims.EmployeeID)
	assert.Equal(t, domain.RoleManager, claims.Role)
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	token, _, err := NewTokenManager("other", 5).GenerateToken("emp-1", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", 5).ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	claims := &Claims{
		EmployeeID: "emp-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("secret", 5).ParseToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func newTestApp(t *testing.T, lookup EmployeeLookup, guards ...fiber.Handler) (*fiber.App, *TokenManager) {
	t.Helper()
	tm := NewTokenManager("secret", 5)
	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.SendStatus(fe.Code)
		}
		return c.SendStatus(errorutil.ToDomainError(err).HTTPStatus)
	}})
	handlers := append([]fiber.Handler{NewAuthMiddleware(tm, lookup).Handle}, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		p, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(p.Employee.ID + ":" + string(p.Role))
	})
	app.Get("/me", handlers...)
	return app, tm
}

func bearer(t *testing.T, tm *TokenManager, employeeID string, role domain.Role) string {
	t.Helper()
	token, _, err := tm.GenerateToken(employeeID, role)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthMiddleware(t *testing.T) {
	lookup := fakeLookup{
		"emp-1": {ID: "emp-1", Role: domain.RoleManager, IsActive: true},
		"emp-2": {ID: "emp-2", Role: domain.RoleEmployee, IsActive: false},
		"emp-3": {ID: "emp-3", IsActive: true},
	}
	app, tm := newTestApp(t, lookup)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"unknown employee", bearer(t, tm, "emp-404", domain.RoleAdmin), http.StatusUnauthorized},
		{"inactive employee", bearer(t, tm, "emp-2", domain.RoleEmployee), http.StatusUnauthorized},
		{"active employee", bearer(t, tm, "emp-1", domain.RoleEmployee), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestRequireRole(t *testing.T) {
	lookup := fakeLookup{
		"emp-1": {ID: "emp-1", Role: domain.RoleManager, IsActive: true},
		"emp-2": {ID: "emp-2", Role: domain.RoleEmployee, IsActive: true},
		"emp-3": {ID: "emp-3", IsActive: true},
	}
	app, tm := newTestApp(t, lookup, RequireRole(domain.RoleManager, domain.RoleAdmin))

	for id, want := range map[string]int{
		"emp-1": http.StatusOK,
		"emp-2": http.StatusForbidden,
		"emp-3": http.StatusOK, // no directory role, falls back to the ADMIN claim
	} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, bearer(t, tm, id, domain.RoleAdmin))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, id)
	}
}

func TestRequireAnyRoleWithoutPrincipal(t *testing.T) {
	app := fiber.New()
	app.Get("/", RequireAnyRole(), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
