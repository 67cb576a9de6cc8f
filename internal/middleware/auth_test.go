package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tripstack/internal/domain"
	"tripstack/internal/middleware"
	"tripstack/internal/service"
	"tripstack/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authRequest(authSvc service.AuthService, header string) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(authSvc), func(c *gin.Context) {
		userID, err := middleware.GetUserID(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "email": middleware.GetEmail(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	userID := uuid.New()
	authSvc.On("ValidateToken", "good-token").Return(&service.Claims{
		UserID: userID,
		Email:  "tess@example.com",
	}, nil).Once()

	w := authRequest(authSvc, "Bearer good-token")

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, userID.String(), body["user_id"])
	assert.Equal(t, "tess@example.com", body["email"])
	authSvc.AssertExpectations(t)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	authSvc := new(mocks.MockAuthService)

	w := authRequest(authSvc, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	authSvc.AssertNotCalled(t, "ValidateToken", mock.Anything)
}

func TestAuthMiddleware_NonBearerScheme(t *testing.T) {
	authSvc := new(mocks.MockAuthService)

	w := authRequest(authSvc, "Basic dGVzczpwdw==")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	authSvc.AssertNotCalled(t, "ValidateToken", mock.Anything)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	authSvc.On("ValidateToken", "bad-token").Return(nil, domain.ErrUnauthorized).Once()

	w := authRequest(authSvc, "Bearer bad-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
}

func TestRequireAdmin(t *testing.T) {
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		c.Set(middleware.ContextKeyIsAdmin, false)
	}, middleware.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}
