//go:build e2e

package helper

import (
	"net/http"
	"testing"
	"time"

	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/handler/dto/request"
	"vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/internal/pkg/config"
	"vehicle-rental/internal/pkg/jwt"
	"vehicle-rental/tests/common/dbtest"
	"vehicle-rental/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type JWTTestHelper struct {
	pool *pgxpool.Pool
	cfg  config.JWTConfig
}

func NewJWTTestHelper(pool *pgxpool.Pool, cfg config.JWTConfig) *JWTTestHelper {
	return &JWTTestHelper{pool: pool, cfg: cfg}
}

func (h *JWTTestHelper) CreateTestUser(t *testing.T, email, role string) uuid.UUID {
	t.Helper()
	return dbtest.CreateTestUser(t, h.pool, email, role)
}

func (h *JWTTestHelper) LoginUser(t *testing.T, router *gin.Engine, email, plainPassword string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: plainPassword}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp response.AuthResponse
	httptest.DecodeResponseBody(t, w.Body, &resp)
	require.NotEmpty(t, resp.Token)

	return resp.Token
}

func (h *JWTTestHelper) CreateAndLogin(t *testing.T, router *gin.Engine, email, role string) (uuid.UUID, string) {
	t.Helper()
	id := h.CreateTestUser(t, email, role)
	return id, h.LoginUser(t, router, email, dbtest.DefaultPassword)
}

func (h *JWTTestHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, duration).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTTestHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, 1*time.Millisecond).GenerateToken(userID, role)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
