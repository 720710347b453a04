package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/opus-favorites/internal/application"
	"github.com/oksasatya/opus-favorites/internal/domain/entity"
	"github.com/oksasatya/opus-favorites/internal/domain/repository"
	"github.com/oksasatya/opus-favorites/internal/interface/middleware"
	"github.com/oksasatya/opus-favorites/pkg/helpers"
	"github.com/oksasatya/opus-favorites/pkg/validation"
)

// fakeAuth keeps users and sessions in maps and satisfies Credentials,
// Sessions and middleware.SessionResolver.
type fakeAuth struct {
	users    map[string]*entity.User
	pass     map[string]string
	sessions map[string]int64
	nextID   int64
	nextTok  int
	deleted  []int64
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{users: map[string]*entity.User{}, pass: map[string]string{}, sessions: map[string]int64{}}
}

func (f *fakeAuth) Signup(_ context.Context, in application.SignupInput) (*entity.User, error) {
	if strings.TrimSpace(in.Username) == "" {
		return nil, &application.InvalidInputError{Field: "username", Reason: "is required"}
	}
	for _, u := range f.users {
		if u.Email == in.Email {
			return nil, &application.DuplicateCredentialError{Field: "email"}
		}
	}
	if _, ok := f.users[in.Username]; ok {
		return nil, &application.DuplicateCredentialError{Field: "username"}
	}
	f.nextID++
	u := &entity.User{ID: f.nextID, Username: in.Username, Email: in.Email}
	f.users[in.Username] = u
	f.pass[in.Username] = in.Password
	return u, nil
}

func (f *fakeAuth) Authenticate(_ context.Context, username, password string) (*entity.User, error) {
	u, ok := f.users[username]
	if !ok || f.pass[username] != password {
		return nil, application.ErrInvalidCredentials
	}
	return u, nil
}

func (f *fakeAuth) DeleteAccount(_ context.Context, userID int64) error {
	for name, u := range f.users {
		if u.ID == userID {
			delete(f.users, name)
			f.deleted = append(f.deleted, userID)
			for tok, uid := range f.sessions {
				if uid == userID {
					delete(f.sessions, tok)
				}
			}
			return nil
		}
	}
	return application.ErrNotFound
}

func (f *fakeAuth) Login(_ context.Context, u *entity.User, current string) (string, error) {
	delete(f.sessions, current)
	f.nextTok++
	tok := fmt.Sprintf("tok-%s-%d", u.Username, f.nextTok)
	f.sessions[tok] = u.ID
	return tok, nil
}

func (f *fakeAuth) Logout(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func (f *fakeAuth) ResolveCurrentUser(_ context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, nil
	}
	uid, ok := f.sessions[token]
	if !ok {
		return nil, application.ErrUnauthenticated
	}
	for _, u := range f.users {
		if u.ID == uid {
			return u, nil
		}
	}
	return nil, application.ErrUnauthenticated
}

type fakeCatalog struct {
	composers []entity.Composer
	works     map[int64]entity.WorkDetail
	err       error
}

func (c *fakeCatalog) SearchComposers(_ context.Context, q string) ([]entity.Composer, error) {
	if c.err != nil {
		return nil, c.err
	}
	var out []entity.Composer
	for _, cp := range c.composers {
		if strings.Contains(strings.ToLower(cp.CompleteName), strings.ToLower(q)) {
			out = append(out, cp)
		}
	}
	return out, nil
}

func (c *fakeCatalog) ListWorks(_ context.Context, composerID int64) (*entity.Composer, []entity.Work, error) {
	if c.err != nil {
		return nil, nil, c.err
	}
	var works []entity.Work
	var composer *entity.Composer
	for _, d := range c.works {
		if d.Composer.ID == composerID {
			cp := d.Composer
			composer = &cp
			works = append(works, d.Work)
		}
	}
	if composer == nil {
		return nil, nil, repository.ErrNotFound
	}
	return composer, works, nil
}

func (c *fakeCatalog) GetWorkDetail(_ context.Context, workID int64) (*entity.WorkDetail, error) {
	if c.err != nil {
		return nil, c.err
	}
	d, ok := c.works[workID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (c *fakeCatalog) ListComposersByEpoch(_ context.Context, epoch string) ([]entity.Composer, error) {
	if c.err != nil {
		return nil, c.err
	}
	var out []entity.Composer
	for _, cp := range c.composers {
		if cp.Epoch == epoch {
			out = append(out, cp)
		}
	}
	return out, nil
}

// fakeFavorites is a minimal ledger keyed by (user, work).
type fakeFavorites struct {
	catalog *fakeCatalog
	rows    []entity.Favorite
	nextID  int64
}

func (f *fakeFavorites) Add(ctx context.Context, userID, workID int64) (*entity.Favorite, bool, error) {
	for i := range f.rows {
		if f.rows[i].UserID == userID && f.rows[i].OpusWorkID == workID {
			return &f.rows[i], false, nil
		}
	}
	d, err := f.catalog.GetWorkDetail(ctx, workID)
	if err != nil {
		return nil, false, err
	}
	f.nextID++
	fav := entity.Favorite{
		ID: f.nextID, UserID: userID, ComposerID: d.Composer.ID, OpusWorkID: d.Work.ID,
		Title: d.Work.Title, Genre: d.Work.Genre, Epoch: d.Composer.Epoch, CreatedAt: time.Now(),
	}
	f.rows = append(f.rows, fav)
	return &fav, true, nil
}

func (f *fakeFavorites) Remove(_ context.Context, favoriteID, userID int64) error {
	for i, r := range f.rows {
		if r.ID == favoriteID && r.UserID == userID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return application.ErrNotFound
}

func (f *fakeFavorites) List(_ context.Context, userID int64) ([]entity.Favorite, error) {
	out := []entity.Favorite{}
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeFavorites) RecommendFor(ctx context.Context, userID int64) (*application.Recommendation, error) {
	favs, _ := f.List(ctx, userID)
	epoch, ok := application.SelectEpoch(favs)
	if !ok {
		return nil, application.ErrNoFavorites
	}
	composers, err := f.catalog.ListComposersByEpoch(ctx, epoch)
	if err != nil {
		return nil, err
	}
	return &application.Recommendation{Epoch: epoch, Composers: composers}, nil
}

type testServer struct {
	engine  *gin.Engine
	auth    *fakeAuth
	catalog *fakeCatalog
	favs    *fakeFavorites
}

func chopin() *fakeCatalog {
	c := entity.Composer{ID: 7, Name: "Chopin", CompleteName: "Frédéric Chopin", Epoch: "Romantic"}
	b := entity.Composer{ID: 3, Name: "Bach", CompleteName: "Johann Sebastian Bach", Epoch: "Baroque"}
	return &fakeCatalog{
		composers: []entity.Composer{c, b},
		works: map[int64]entity.WorkDetail{
			42: {Composer: c, Work: entity.Work{ID: 42, Title: "Nocturne", Genre: "Piano"}},
			43: {Composer: b, Work: entity.Work{ID: 43, Title: "Goldberg Variations", Genre: "Keyboard"}},
		},
	}
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := helpers.NewDiscardLogger()
	cookies := helpers.NewCookie("", false)
	auth := newFakeAuth()
	catalog := chopin()
	favs := &fakeFavorites{catalog: catalog}

	authH := NewAuthHandler(auth, auth, cookies, logger)
	catH := NewCatalogHandler(catalog, favs, cookies, logger)
	favH := NewFavoriteHandler(favs, cookies, logger)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware(), middleware.Session(auth, cookies, logger))
	r.GET("/", catH.Home)
	r.GET("/search", catH.SearchForm)
	r.GET("/searchname", catH.SearchName)
	r.GET("/composer/:id", catH.Composer)
	r.GET("/signup", authH.SignupForm)
	r.POST("/signup", authH.Signup)
	r.GET("/login", authH.LoginForm)
	r.POST("/login", authH.Login)

	g := r.Group("/")
	g.Use(middleware.RequireAuth(cookies))
	g.GET("/logout", authH.Logout)
	g.POST("/users/delete", authH.DeleteAccount)
	g.GET("/recs", catH.Recommendations)
	g.GET("/favorites", favH.Index)
	g.GET("/addfavorite/:workId", favH.Add)
	g.GET("/playlists", favH.Playlists)
	g.POST("/removefavorite/:workId", favH.Remove)

	return &testServer{engine: r, auth: auth, catalog: catalog, favs: favs}
}

func (s *testServer) do(method, path, session string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if session != "" {
		req.AddCookie(&http.Cookie{Name: helpers.SessionCookie, Value: session})
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// login signs up a user through the HTTP surface and returns its session token.
func (s *testServer) login(t *testing.T, username string) string {
	t.Helper()
	w := s.do(http.MethodPost, "/signup", "", url.Values{
		"username": {username},
		"email":    {username + "@x.com"},
		"password": {"secret1"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tok := cookieValue(w, helpers.SessionCookie)
	require.NotEmpty(t, tok)
	return tok
}

func cookieValue(w *httptest.ResponseRecorder, name string) string {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name {
			v, err := url.QueryUnescape(ck.Value)
			if err != nil {
				return ""
			}
			return v
		}
	}
	return ""
}

// flashValue undoes both the flash encoding and gin's cookie encoding.
func flashValue(w *httptest.ResponseRecorder) string {
	v, err := url.QueryUnescape(cookieValue(w, helpers.FlashCookie))
	if err != nil {
		return ""
	}
	return v
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Error   json.RawMessage `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}
