package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theafricanengineer/mozillians/pkg/logger"
)

func TestVouchGate(t *testing.T) {
	env := newTestEnv(t)

	probeHits := 0
	env.router.GET("/probe",
		AuthRequired(env.jwtSvc, env.sessions),
		VouchRequired(env.profiles, logger.NewNop()),
		func(c *gin.Context) {
			probeHits++
			c.String(http.StatusOK, "ok")
		},
	)

	t.Run("anonymous caller is redirected to login", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		assert.Zero(t, probeHits)
	})

	t.Run("anonymous AJAX caller gets 403", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Zero(t, probeHits)
	})

	t.Run("anonymous AJAX caller gets 403 on account pages too", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/user/edit", nil)
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unvouched caller gets localized 403", func(t *testing.T) {
		u, _ := env.addMember(t, "newbie", "New Member", false)
		cookie := env.loginAs(t, u.ID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.AddCookie(cookie)
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "You must be vouched to do this.")
		assert.Zero(t, probeHits)
	})

	t.Run("vouched caller passes through", func(t *testing.T) {
		u, _ := env.addMember(t, "oldtimer", "Old Timer", true)
		cookie := env.loginAs(t, u.ID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.AddCookie(cookie)
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, probeHits)
	})
}

func TestAuthRequiredRejectsRevokedSession(t *testing.T) {
	env := newTestEnv(t)
	u, _ := env.addMember(t, "gone", "Gone Member", true)
	cookie := env.loginAs(t, u.ID)

	// Logging out kills the server-side session even though the signed
	// cookie itself is still valid.
	for id := range env.sessions.sessions {
		require.NoError(t, env.sessions.Delete(context.Background(), id))
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/edit", nil)
	req.AddCookie(cookie)
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
