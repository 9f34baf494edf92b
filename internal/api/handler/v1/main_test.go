package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/fleetdepot/depot/internal/api/middleware"
	"github.com/fleetdepot/depot/internal/domain"
	"github.com/fleetdepot/depot/internal/service"
)

var (
	clerk  = domain.User{ID: 1, Email: "clerk@depot.test", Role: domain.RoleClerk}
	picker = domain.User{ID: 2, Email: "picker@depot.test", Role: domain.RolePicker}
	sales  = domain.User{ID: 3, Email: "sales@depot.test", Role: domain.RoleSales}
	admin  = domain.User{ID: 4, Email: "admin@depot.test", Role: domain.RoleAdmin}
)

type staticUsers map[uint]domain.User

func (s staticUsers) GetUser(_ context.Context, id uint) (domain.User, error) {
	user, ok := s[id]
	if !ok {
		return domain.User{}, service.ErrUserNotFound
	}
	return user, nil
}

var testUsers = staticUsers{clerk.ID: clerk, picker.ID: picker, sales.ID: sales, admin.ID: admin}

// newRouter returns a group that authenticates every request as user and
// applies RequireRoles(roles...).
func newRouter(user domain.User, roles ...string) (*gin.Engine, *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api/v1", func(ctx *gin.Context) {
		ctx.Set(middleware.CtxKeyUserID, user.ID)
		ctx.Next()
	}, RequireRoles(testUsers, roles...))

	return r, g
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}
