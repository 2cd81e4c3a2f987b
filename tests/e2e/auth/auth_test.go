//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"slotmarket/internal/domain/user"
	"slotmarket/internal/handler/dto/request"
	"slotmarket/internal/handler/dto/response"
	"slotmarket/tests/common/authtest"
	"slotmarket/tests/common/dbtest"
	"slotmarket/tests/common/httptest"
	"slotmarket/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL  = "/api/auth/login"
	logoutURL = "/api/auth/logout"
	meURL     = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
	jwtHelper *authtest.JWTHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	// テスト用ユーザーを作成
	dbtest.CreateTestUser(s.T(), s.DB, "test@example.com", string(user.RoleAdmin))
	dbtest.CreateTestUser(s.T(), s.DB, "booker@example.com", string(user.RoleUser))
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{
			name:           "正常なログイン",
			email:          "test@example.com",
			password:       "password123",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "存在しないユーザー",
			email:          "nonexistent@example.com",
			password:       "password123",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "間違ったパスワード",
			email:          "test@example.com",
			password:       "wrongpassword1",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
				request.LoginRequest{Email: tt.email, Password: tt.password}, "")
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus == http.StatusOK {
				cookie := httptest.ExtractCookie(w, "access_token")
				require.NotNil(t, cookie, "access token cookie should be set")
				require.NotEmpty(t, cookie.Value)

				var body response.LoginResponse
				require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
				require.NotEqual(t, uuid.Nil, body.UserID)
			}
		})
	}
}

func (s *authSuite) TestMe() {
	s.Run("認証済みユーザーは自分の情報を取得できる", func() {
		t := s.T()

		token := authtest.LoginUser(t, s.Router, "booker@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var me response.UserResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &me))
		require.Equal(t, "booker@example.com", me.Email)
		require.Equal(t, string(user.RoleUser), me.Role)
		require.NotNil(t, me.LastLogin, "login should record last_login")
	})

	s.Run("未認証では401", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("期限切れトークンでは401", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "expired@example.com", string(user.RoleUser))
		expired := s.jwtHelper.CreateExpiredToken(t, userID, user.RoleUser)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, expired)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestLogout() {
	s.Run("ログアウトでクッキーが消える", func() {
		t := s.T()

		token := authtest.LoginUser(t, s.Router, "test@example.com", "password123")
		require.NotEmpty(t, token)

		cookies := []*http.Cookie{{Name: "access_token", Value: token}}
		authtest.LogoutUser(t, s.Router, cookies)
	})
}
