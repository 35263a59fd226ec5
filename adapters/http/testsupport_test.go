package http

import (
	"context"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/theafricanengineer/mozillians/internal/application/service"
	accountUC "github.com/theafricanengineer/mozillians/internal/application/usecase/account"
	directoryUC "github.com/theafricanengineer/mozillians/internal/application/usecase/directory"
	inviteUC "github.com/theafricanengineer/mozillians/internal/application/usecase/invite"
	searchUC "github.com/theafricanengineer/mozillians/internal/application/usecase/search"
	"github.com/theafricanengineer/mozillians/internal/domain/apiapp"
	"github.com/theafricanengineer/mozillians/internal/domain/group"
	"github.com/theafricanengineer/mozillians/internal/domain/invite"
	"github.com/theafricanengineer/mozillians/internal/domain/profile"
	"github.com/theafricanengineer/mozillians/internal/domain/session"
	"github.com/theafricanengineer/mozillians/internal/domain/user"
	"github.com/theafricanengineer/mozillians/pkg/apperror"
	"github.com/theafricanengineer/mozillians/pkg/auth"
	"github.com/theafricanengineer/mozillians/pkg/logger"
)

// In-memory collaborators for handler tests.

type memSessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session.Session
	flashes  map[uuid.UUID][]string
}

func newMemSessions() *memSessions {
	return &memSessions{
		sessions: map[uuid.UUID]*session.Session{},
		flashes:  map[uuid.UUID][]string{},
	}
}

func (m *memSessions) Create(_ context.Context, userID uuid.UUID, _ time.Duration) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := &session.Session{ID: uuid.New(), UserID: userID, CreatedAt: time.Now()}
	m.sessions[sess.ID] = sess
	return sess, nil
}

func (m *memSessions) Get(_ context.Context, id uuid.UUID) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return sess, nil
}

func (m *memSessions) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	delete(m.flashes, id)
	return nil
}

func (m *memSessions) AddFlash(_ context.Context, sessionID uuid.UUID, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flashes[sessionID] = append(m.flashes[sessionID], msg)
	return nil
}

func (m *memSessions) PopFlashes(_ context.Context, sessionID uuid.UUID) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := m.flashes[sessionID]
	delete(m.flashes, sessionID)
	return msgs, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*user.User{}}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperror.NewNotFound("user", id.String())
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("user", username)
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("user", email)
}

func (r *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*profile.Profile
	users    *fakeUserRepo
}

func newFakeProfileRepo(users *fakeUserRepo) *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[uuid.UUID]*profile.Profile{}, users: users}
}

// withUsername refreshes the denormalized username from the user store, the
// way the SQL join would.
func (r *fakeProfileRepo) withUsername(p *profile.Profile) *profile.Profile {
	cp := *p
	if u, ok := r.users.users[p.UserID]; ok {
		cp.Username = u.Username
	}
	return &cp
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id uuid.UUID) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[id]; ok {
		return r.withUsername(p), nil
	}
	return nil, apperror.NewNotFound("profile", id.String())
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.UserID == userID {
			return r.withUsername(p), nil
		}
	}
	return nil, apperror.NewNotFound("profile", userID.String())
}

func (r *fakeProfileRepo) Update(_ context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

func (r *fakeProfileRepo) Vouch(_ context.Context, profileID, voucherID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[profileID]
	if !ok {
		return false, apperror.NewNotFound("profile", profileID.String())
	}
	if p.IsVouched {
		return false, nil
	}
	p.IsVouched = true
	p.VouchedBy = &voucherID
	return true, nil
}

func (r *fakeProfileRepo) Anonymize(_ context.Context, profileID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[profileID]
	if !ok {
		return apperror.NewNotFound("profile", profileID.String())
	}
	p.FullName = ""
	p.Bio = ""
	p.PhotoURL = nil
	p.IsVouched = false
	p.VouchedBy = nil
	p.Country, p.Region, p.City = "", "", ""
	if u, ok := r.users.users[p.UserID]; ok {
		u.Username = "member-" + uuid.NewString()[:12]
		u.Email = ""
	}
	return nil
}

func (r *fakeProfileRepo) VouchedBy(_ context.Context, voucherID uuid.UUID) ([]profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []profile.Profile{}
	for _, p := range r.profiles {
		if p.VouchedBy != nil && *p.VouchedBy == voucherID {
			out = append(out, *r.withUsername(p))
		}
	}
	return out, nil
}

func (r *fakeProfileRepo) matches(p *profile.Profile, query string, includeNonVouched bool) bool {
	if p.FullName == "" {
		return false
	}
	if !includeNonVouched && !p.IsVouched {
		return false
	}
	q := strings.ToLower(query)
	username := ""
	if u, ok := r.users.users[p.UserID]; ok {
		username = u.Username
	}
	return strings.Contains(strings.ToLower(p.FullName), q) ||
		strings.Contains(strings.ToLower(username), q)
}

func (r *fakeProfileRepo) sortedMatches(query string, includeNonVouched bool) []profile.Profile {
	out := []profile.Profile{}
	for _, p := range r.profiles {
		if r.matches(p, query, includeNonVouched) {
			out = append(out, *r.withUsername(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out
}

func (r *fakeProfileRepo) SearchCount(_ context.Context, query string, includeNonVouched bool) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sortedMatches(query, includeNonVouched)), nil
}

func (r *fakeProfileRepo) Search(_ context.Context, query string, includeNonVouched bool, limit, offset int) ([]profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sortedMatches(query, includeNonVouched)
	if offset >= len(all) {
		return []profile.Profile{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeProfileRepo) ByLocation(_ context.Context, f profile.LocationFilter) ([]profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []profile.Profile{}
	for _, p := range r.profiles {
		if !p.IsVouched || p.FullName == "" || p.Country != f.Country {
			continue
		}
		if f.City != "" && !strings.EqualFold(p.City, f.City) {
			continue
		}
		if f.Region != "" && !strings.EqualFold(p.Region, f.Region) {
			continue
		}
		out = append(out, *r.withUsername(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

type fakeGroupRepo struct {
	mu      sync.Mutex
	groups  []group.Group
	members map[uuid.UUID][]uuid.UUID // group id -> profile ids
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{members: map[uuid.UUID][]uuid.UUID{}}
}

func (r *fakeGroupRepo) add(g group.Group, memberIDs ...uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups = append(r.groups, g)
	r.members[g.ID] = memberIDs
}

func (r *fakeGroupRepo) Curated(_ context.Context) ([]group.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []group.Group{}
	for _, g := range r.groups {
		if g.Curated && g.Kind == group.KindGroup {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeGroupRepo) Stewarded(_ context.Context, profileID uuid.UUID) ([]group.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []group.Group{}
	for _, g := range r.groups {
		if g.Kind != group.KindGroup || g.StewardID == nil {
			continue
		}
		for _, pid := range r.members[g.ID] {
			if pid == profileID {
				out = append(out, g)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeGroupRepo) Search(_ context.Context, query string, _ int) ([]group.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []group.Group{}
	if query == "" {
		return out, nil
	}
	for _, g := range r.groups {
		if g.Kind == group.KindGroup && strings.Contains(strings.ToLower(g.Name), strings.ToLower(query)) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeGroupRepo) ForProfile(_ context.Context, profileID uuid.UUID, kind group.Kind) ([]group.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []group.Group{}
	for _, g := range r.groups {
		if g.Kind != kind {
			continue
		}
		for _, pid := range r.members[g.ID] {
			if pid == profileID {
				out = append(out, g)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeGroupRepo) ReplaceForProfile(_ context.Context, profileID uuid.UUID, kind group.Kind, names []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.groups {
		if g.Kind != kind {
			continue
		}
		kept := r.members[g.ID][:0]
		for _, pid := range r.members[g.ID] {
			if pid != profileID {
				kept = append(kept, pid)
			}
		}
		r.members[g.ID] = kept
	}
	for _, name := range names {
		var existing *group.Group
		for i := range r.groups {
			if r.groups[i].Kind == kind && r.groups[i].Name == name {
				existing = &r.groups[i]
				break
			}
		}
		if existing == nil {
			g := group.Group{ID: uuid.New(), Name: name, Kind: kind}
			r.groups = append(r.groups, g)
			existing = &r.groups[len(r.groups)-1]
		}
		r.members[existing.ID] = append(r.members[existing.ID], profileID)
	}
	return nil
}

type fakeInviteRepo struct {
	mu      sync.Mutex
	invites []*invite.Invite
}

func (r *fakeInviteRepo) Create(_ context.Context, inv *invite.Invite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *inv
	r.invites = append(r.invites, &cp)
	return nil
}

func (r *fakeInviteRepo) MarkSent(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invites {
		if inv.ID == id {
			inv.SentAt = &at
		}
	}
	return nil
}

type fakeAppRepo struct {
	apps []apiapp.App
}

func (r *fakeAppRepo) ActiveForUser(_ context.Context, ownerID uuid.UUID) ([]apiapp.App, error) {
	out := []apiapp.App{}
	for _, a := range r.apps {
		if a.OwnerID == ownerID && a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeDispatcher struct {
	mu    sync.Mutex
	tasks []service.DeletionTask
}

func (d *fakeDispatcher) EnqueueDeletion(_ context.Context, task service.DeletionTask) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tasks = append(d.tasks, task)
	return nil
}

type fakeUploader struct {
	mu      sync.Mutex
	uploads []string
}

func (u *fakeUploader) Upload(_ context.Context, _ io.Reader, folder, publicID string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	url := "https://cdn.example.com/" + folder + "/" + publicID
	u.uploads = append(u.uploads, url)
	return url, nil
}

func (u *fakeUploader) Delete(_ context.Context, _ string) error { return nil }

type fakeMailer struct {
	mu    sync.Mutex
	mails []service.InviteMail
}

func (m *fakeMailer) SendInvite(_ context.Context, mail service.InviteMail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mails = append(m.mails, mail)
	return nil
}

type testEnv struct {
	router     *gin.Engine
	users      *fakeUserRepo
	profiles   *fakeProfileRepo
	groups     *fakeGroupRepo
	invites    *fakeInviteRepo
	sessions   *memSessions
	dispatcher *fakeDispatcher
	uploader   *fakeUploader
	mailer     *fakeMailer
	jwtSvc     *auth.JWTService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	env := &testEnv{
		users:      newFakeUserRepo(),
		groups:     newFakeGroupRepo(),
		invites:    &fakeInviteRepo{},
		sessions:   newMemSessions(),
		dispatcher: &fakeDispatcher{},
		uploader:   &fakeUploader{},
		mailer:     &fakeMailer{},
		jwtSvc:     auth.NewJWTService("test-secret", time.Hour),
	}
	env.profiles = newFakeProfileRepo(env.users)
	appRepo := &fakeAppRepo{}

	renderer := NewRenderer(env.sessions, log)

	loginUseCase := accountUC.NewLoginUseCase(env.users, env.sessions, env.jwtSvc, log)
	editUseCase := accountUC.NewEditProfileUseCase(env.users, env.profiles, env.groups, appRepo, env.uploader, log)
	deleteUseCase := accountUC.NewDeleteAccountUseCase(env.users, env.profiles, env.dispatcher, log)

	env.router = NewRouter(RouterConfig{
		Home:     NewHomeHandler(directoryUC.NewHomeUseCase(env.profiles, env.groups), renderer, log),
		Profile:  NewProfileHandler(directoryUC.NewViewProfileUseCase(env.users, env.profiles, log), renderer, log),
		Account:  NewAccountHandler(editUseCase, deleteUseCase, env.sessions, renderer, log),
		Auth:     NewAuthHandler(loginUseCase, env.sessions, time.Hour, renderer, log),
		Search:   NewSearchHandler(searchUC.NewSearchUseCase(env.profiles, env.groups, log), renderer, log),
		Invite:   NewInviteHandler(inviteUC.NewInviteUseCase(env.invites, env.mailer, log), renderer, log),
		Vouch:    NewVouchHandler(directoryUC.NewVouchUseCase(env.profiles, log), renderer, log),
		Location: NewLocationHandler(directoryUC.NewListCountryUseCase(env.profiles), renderer, log),
		Plugin:   NewPluginHandler("https://directory.example.com"),

		JWTService:    env.jwtSvc,
		Sessions:      env.sessions,
		Profiles:      env.profiles,
		Logger:        log,
		TemplatesGlob: "../../templates/*",
	})

	return env
}

func (e *testEnv) addMember(t *testing.T, username, fullName string, vouched bool) (*user.User, *profile.Profile) {
	t.Helper()
	u := &user.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     username + "@example.com",
		CreatedAt: time.Now(),
	}
	e.users.users[u.ID] = u

	p := &profile.Profile{
		ID:        uuid.New(),
		UserID:    u.ID,
		FullName:  fullName,
		IsVouched: vouched,
	}
	e.profiles.profiles[p.ID] = p
	return u, p
}

func (e *testEnv) loginAs(t *testing.T, userID uuid.UUID) *http.Cookie {
	t.Helper()
	sess, err := e.sessions.Create(context.Background(), userID, time.Hour)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	token, err := e.jwtSvc.GenerateToken(sess.ID, userID)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return &http.Cookie{Name: SessionCookieName, Value: token}
}
