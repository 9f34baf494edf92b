package v1

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fleetdepot/depot/internal/api/handler/v1/response"
	"github.com/fleetdepot/depot/internal/config"
	"github.com/fleetdepot/depot/internal/domain"
	"github.com/fleetdepot/depot/internal/pkg/jwthelper"
	"github.com/fleetdepot/depot/internal/service"
)

const testSigningKey = "handler-test-key"

func newAuthRouter(svc AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(&config.APIConfig{JWTSigningKey: testSigningKey, JWTTTL: time.Hour}, svc)
	r.POST("/auth/signup", h.HandleSignup)
	r.POST("/auth/login", h.HandleLogin)

	return r
}

func TestAuthHandler_HandleSignup(t *testing.T) {
	valid := map[string]string{
		"email":            "ana@depot.test",
		"password":         "forklift9",
		"confirm_password": "forklift9",
		"name":             "Ana",
		"role":             "picker",
	}
	with := func(key, value string) map[string]string {
		out := map[string]string{}
		for k, v := range valid {
			out[k] = v
		}
		out[key] = value
		return out
	}

	tests := []struct {
		name     string
		body     map[string]string
		svcErr   error
		wantCode int
	}{
		{"created", valid, nil, http.StatusCreated},
		{"bad email", with("email", "ana"), nil, http.StatusBadRequest},
		{"weak password", with("password", "forklift"), nil, http.StatusBadRequest},
		{"mismatch", with("confirm_password", "forklift8"), nil, http.StatusBadRequest},
		{"unknown role", with("role", "driver"), nil, http.StatusBadRequest},
		{"admin role", with("role", "admin"), nil, http.StatusBadRequest},
		{"clerk role", with("role", "clerk"), nil, http.StatusBadRequest},
		{"duplicate email", valid, service.ErrUserEmailExists, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockAuthService)
			svc.On("Signup", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
				return u.Email == "ana@depot.test" && u.Role == domain.RolePicker
			})).Return(domain.User{ID: 9, Email: "ana@depot.test", Role: domain.RolePicker}, tt.svcErr).Maybe()

			w := do(t, newAuthRouter(svc), http.MethodPost, "/auth/signup", tt.body)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusCreated {
				user := decode[domain.User](t, w)
				assert.Equal(t, uint(9), user.ID)
				assert.NotContains(t, w.Body.String(), "forklift9")
			}
			if tt.wantCode == http.StatusBadRequest && tt.svcErr == nil {
				svc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestAuthHandler_HandleCreateUser(t *testing.T) {
	body := map[string]string{
		"email":            "root@depot.test",
		"password":         "forklift9",
		"confirm_password": "forklift9",
		"name":             "Root",
		"role":             "admin",
	}

	t.Run("admin grants admin", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Signup", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
			return u.Role == domain.RoleAdmin
		})).Return(domain.User{ID: 11, Role: domain.RoleAdmin}, nil)
		r, g := newRouter(admin, domain.RoleAdmin)
		g.POST("/users", NewAuthHandler(&config.APIConfig{}, svc).HandleCreateUser)

		w := do(t, r, http.MethodPost, "/api/v1/users", body)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, domain.RoleAdmin, decode[domain.User](t, w).Role)
	})

	t.Run("clerk may not", func(t *testing.T) {
		svc := new(mockAuthService)
		r, g := newRouter(clerk, domain.RoleAdmin)
		g.POST("/users", NewAuthHandler(&config.APIConfig{}, svc).HandleCreateUser)

		w := do(t, r, http.MethodPost, "/api/v1/users", body)

		assert.Equal(t, http.StatusForbidden, w.Code)
		svc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_HandleLogin(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, "ana@depot.test", "forklift9").Return(domain.User{ID: 9, Role: domain.RoleClerk}, nil)
	svc.On("Login", mock.Anything, "ana@depot.test", "wrong").Return(domain.User{}, service.ErrWrongPassword)
	svc.On("Login", mock.Anything, "bob@depot.test", mock.Anything).Return(domain.User{}, service.ErrUserNotFound)
	r := newAuthRouter(svc)

	t.Run("ok", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/auth/login", map[string]string{"email": "ana@depot.test", "password": "forklift9"})
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[response.LoginResponse](t, w)
		claims, err := jwthelper.ParseToken([]byte(testSigningKey), resp.Token)
		require.NoError(t, err)
		assert.Equal(t, uint(9), claims.UserID)
		assert.Equal(t, "9", claims.Subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/auth/login", map[string]string{"email": "ana@depot.test", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/auth/login", map[string]string{"email": "bob@depot.test", "password": "x"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "email or password is incorrect")
	})

	t.Run("malformed body", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/auth/login", "{")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
