package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/theafricanengineer/mozillians/internal/domain/group"
)

func TestHome(t *testing.T) {
	env := newTestEnv(t)

	env.groups.add(group.Group{ID: uuid.New(), Name: "Featured Folk", Kind: group.KindGroup, Curated: true})

	t.Run("anonymous visitors get the sign-in pitch", func(t *testing.T) {
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Sign in")
		assert.NotContains(t, w.Body.String(), "Welcome back")
	})

	t.Run("signed-in members get a personalized page", func(t *testing.T) {
		u, p := env.addMember(t, "regular", "Reg Ular", true)
		steward := uuid.New()
		env.groups.add(group.Group{ID: uuid.New(), Name: "My Crew", Kind: group.KindGroup, StewardID: &steward}, p.ID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(env.loginAs(t, u.ID))
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Welcome back, Reg Ular")
		assert.Contains(t, w.Body.String(), "My Crew")
		assert.Contains(t, w.Body.String(), "Featured Folk")
	})

	t.Run("home is never cached", func(t *testing.T) {
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
	})
}
