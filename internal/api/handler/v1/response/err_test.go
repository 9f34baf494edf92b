package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, e *Err) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RenderErr(ctx, e)

	body := map[string]string{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRenderErr_BadRequest(t *testing.T) {
	w, body := render(t, ErrBadRequest(errors.New("qty must be positive")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Bad request.", body["status"])
	assert.Equal(t, "qty must be positive", body["error"])
}

func TestRenderErr_NotFound(t *testing.T) {
	w, body := render(t, ErrNotFound("bin", "id", 42))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "bin with id 42 is not found", body["error"])
}

func TestRenderErr_InternalHidesCause(t *testing.T) {
	w, body := render(t, ErrInternalServerError(errors.New("pq: connection refused")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error.", body["status"])
	_, ok := body["error"]
	assert.False(t, ok)
}
