//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"coachly/internal/handler/dto/request"
	"coachly/internal/handler/dto/response"
	"coachly/tests/common/authtest"
	"coachly/tests/common/dbtest"
	"coachly/tests/common/httptest"
	"coachly/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL = "/api/auth/register"
	loginURL    = "/api/auth/login"
	refreshURL  = "/api/auth/refresh"
	logoutURL   = "/api/auth/logout"
	meURL       = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	dbtest.CreateTestUser(s.T(), s.DB, "student@example.com", "student")
	dbtest.CreateTestCoach(s.T(), s.DB, "coach@example.com")
	dbtest.CreateTestUser(s.T(), s.DB, "inactive@example.com", "student")

	ctx := s.T().Context()
	_, err := s.DB.Exec(ctx, "UPDATE users SET is_active = false WHERE email = 'inactive@example.com'")
	require.NoError(s.T(), err)
}

func (s *authSuite) TestRegister() {
	tests := []struct {
		name           string
		body           request.RegisterRequest
		expectedStatus int
	}{
		{
			name: "student registration succeeds",
			body: request.RegisterRequest{
				Email:       "newstudent@example.com",
				Password:    "password123",
				DisplayName: "New Student",
				Role:        "student",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "coach registration succeeds",
			body: request.RegisterRequest{
				Email:       "newcoach@example.com",
				Password:    "password123",
				DisplayName: "New Coach",
				Role:        "coach",
				Timezone:    "Asia/Tokyo",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate email is rejected",
			body: request.RegisterRequest{
				Email:       "student@example.com",
				Password:    "password123",
				DisplayName: "Imposter",
				Role:        "student",
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "admin role cannot be self-assigned",
			body: request.RegisterRequest{
				Email:       "sneaky@example.com",
				Password:    "password123",
				DisplayName: "Sneaky",
				Role:        "admin",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, tt.body, "")
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus == http.StatusCreated && tt.body.Role == "coach" {
				// Coach registration provisions a calendar
				var count int
				err := s.DB.QueryRow(t.Context(),
					"SELECT count(*) FROM calendars c JOIN users u ON u.id = c.owner_id WHERE u.email = $1",
					tt.body.Email).Scan(&count)
				require.NoError(t, err)
				require.Equal(t, 1, count, "Coach has no calendar after registration")
			}
		})
	}
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
			email:          "student@example.com",
			password:       "password123",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown user",
			email:          "nonexistent@example.com",
			password:       "password123",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong password",
			email:          "student@example.com",
			password:       "wrongpassword",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "inactive account",
			email:          "inactive@example.com",
			password:       "password123",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "empty email",
			email:          "",
			password:       "password123",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "too short password",
			email:          "student@example.com",
			password:       "short",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			reqBody := request.LoginRequest{Email: tt.email, Password: tt.password}
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus == http.StatusOK {
				var loginRes response.LoginResponse
				err := httptest.DecodeResponseBody(t, w.Body, &loginRes)
				require.NoError(t, err)
				require.NotEmpty(t, loginRes.AccessToken, "Access token is empty")
				require.NotNil(t, loginRes.User)
				require.Equal(t, tt.email, loginRes.User.Email)

				require.NotNil(t, httptest.ExtractCookie(w, "access_token"), "Access token cookie missing")
				require.NotNil(t, httptest.ExtractCookie(w, "refresh_token"), "Refresh token cookie missing")
			}
		})
	}
}

func (s *authSuite) TestRefresh() {
	s.Run("refresh via cookie", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "student@example.com", Password: "password123"}, "")
		require.Equal(t, http.StatusOK, w.Code)
		cookies := httptest.ExtractCookies(w)

		w = httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, refreshURL, nil, cookies, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var refreshRes response.RefreshResponse
		err := httptest.DecodeResponseBody(t, w.Body, &refreshRes)
		require.NoError(t, err)
		require.NotEmpty(t, refreshRes.AccessToken, "New access token is empty")
	})

	s.Run("refresh via body", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "student@example.com", Password: "password123"}, "")
		require.Equal(t, http.StatusOK, w.Code)
		refreshCookie := httptest.ExtractCookie(w, "refresh_token")
		require.NotNil(t, refreshCookie)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL,
			request.RefreshRequest{RefreshToken: refreshCookie.Value}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("garbage refresh token is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL,
			request.RefreshRequest{RefreshToken: "not-a-jwt"}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("missing refresh token is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL, nil, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func (s *authSuite) TestLogout() {
	s.Run("logout clears the session cookies", func() {
		t := s.T()

		token := authtest.LoginUser(t, s.Router, "student@example.com", "password123")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, logoutURL, nil, token)
		require.Equal(t, http.StatusNoContent, w.Code)

		accessCookie := httptest.ExtractCookie(w, "access_token")
		require.NotNil(t, accessCookie)
		require.Empty(t, accessCookie.Value, "Access token cookie not cleared")
	})

	s.Run("logout without a token is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, logoutURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestMe() {
	tests := []struct {
		name           string
		setupToken     func(t *testing.T) (string, string)
		expectedStatus int
	}{
		{
			name: "student info",
			setupToken: func(t *testing.T) (string, string) {
				return authtest.LoginUser(t, s.Router, "student@example.com", "password123"), "student@example.com"
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "coach info",
			setupToken: func(t *testing.T) (string, string) {
				return authtest.LoginUser(t, s.Router, "coach@example.com", "password123"), "coach@example.com"
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "invalid token",
			setupToken: func(t *testing.T) (string, string) {
				return "invalid-token", ""
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "no token",
			setupToken: func(t *testing.T) (string, string) {
				return "", ""
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			token, email := tt.setupToken(t)
			w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus == http.StatusOK {
				responseBody := w.Body.String()
				require.Contains(t, responseBody, email)
				require.NotContains(t, responseBody, "password", "Password material leaked into the response")
			}
		})
	}
}
