//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/handler/dto/request"
	"vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/tests/common/dbtest"
	"vehicle-rental/tests/common/httptest"
	"vehicle-rental/tests/e2e"
	jwtHelper "vehicle-rental/tests/e2e/common/helper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL = "/api/auth/register"
	loginURL    = "/api/auth/login"
	meURL       = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
	jwtHelper *jwtHelper.JWTTestHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = jwtHelper.NewJWTTestHelper(s.DB, s.Config.JWT)
}

func (s *authSuite) TestRegister() {
	registerBody := func(email string) request.RegisterRequest {
		return request.RegisterRequest{
			Name:     "Alice Example",
			Email:    email,
			Password: "password123",
			Phone:    "+15550001111",
			Role:     "customer",
		}
	}

	s.Run("registration returns a usable token", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL, registerBody("alice@example.com"), "")
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

		var resp response.AuthResponse
		httptest.DecodeResponseBody(s.T(), w.Body, &resp)
		require.NotEmpty(s.T(), resp.Token)
		s.Equal("alice@example.com", resp.User.Email)
		s.Equal("customer", resp.User.Role)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, resp.Token)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("email is stored case insensitively", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL, registerBody("Bob@Example.COM"), "")
		require.Equal(s.T(), http.StatusCreated, w.Code)

		var resp response.AuthResponse
		httptest.DecodeResponseBody(s.T(), w.Body, &resp)
		s.Equal("bob@example.com", resp.User.Email)
	})

	s.Run("duplicate email conflicts", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL, registerBody("dup@example.com"), "")
		require.Equal(s.T(), http.StatusCreated, w.Code)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL, registerBody("dup@example.com"), "")
		s.Equal(http.StatusConflict, w.Code)
	})

	s.Run("weak password is rejected", func() {
		body := registerBody("weak@example.com")
		body.Password = "short"
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL, body, "")
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{
			name:           "valid credentials",
			email:          "login@example.com",
			password:       dbtest.DefaultPassword,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown user",
			email:          "nobody@example.com",
			password:       dbtest.DefaultPassword,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong password",
			email:          "login@example.com",
			password:       "wrong-password",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.jwtHelper.CreateTestUser(s.T(), "login@example.com", "customer")

			w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL,
				request.LoginRequest{Email: tt.email, Password: tt.password}, "")
			s.Equal(tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func (s *authSuite) TestMe() {
	s.Run("returns the authenticated user", func() {
		id, token := s.jwtHelper.CreateAndLogin(s.T(), s.Router, "me@example.com", "customer")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(s.T(), http.StatusOK, w.Code)

		var resp response.UserResponse
		httptest.DecodeResponseBody(s.T(), w.Body, &resp)
		s.Equal(id, resp.ID)
		s.Equal("me@example.com", resp.Email)
	})

	s.Run("rejects missing token", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, "")
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("rejects expired token", func() {
		id := s.jwtHelper.CreateTestUser(s.T(), "expired@example.com", "customer")
		token := s.jwtHelper.CreateExpiredToken(s.T(), id, user.RoleCustomer)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, token)
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("rejects a token for a deleted account", func() {
		token := s.jwtHelper.GenerateToken(s.T(), uuid.New(), user.RoleCustomer)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, token)
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}
