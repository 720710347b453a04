package application

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/opus-favorites/internal/domain/entity"
	"github.com/oksasatya/opus-favorites/internal/domain/repository"
)

// memDB emulates the users/favorites tables, including the unique
// constraints and ON DELETE CASCADE.
type memDB struct {
	mu        sync.Mutex
	nextUser  int64
	nextFav   int64
	users     map[int64]entity.User
	favorites map[int64]entity.Favorite
	clock     time.Time
}

func newMemDB() *memDB {
	return &memDB{
		users:     map[int64]entity.User{},
		favorites: map[int64]entity.Favorite{},
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (db *memDB) tick() time.Time {
	db.clock = db.clock.Add(time.Second)
	return db.clock
}

type memUsers struct{ db *memDB }

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.users {
		if existing.Username == u.Username {
			return &repository.ConflictError{Constraint: "users_username_key"}
		}
		if existing.Email == u.Email {
			return &repository.ConflictError{Constraint: "users_email_key"}
		}
	}
	r.db.nextUser++
	u.ID = r.db.nextUser
	u.CreatedAt = r.db.tick()
	u.UpdatedAt = u.CreatedAt
	r.db.users[u.ID] = *u
	return nil
}

func (r memUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memUsers) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.users, id)
	for fid, f := range r.db.favorites {
		if f.UserID == id {
			delete(r.db.favorites, fid)
		}
	}
	return nil
}

type memFavorites struct {
	db *memDB
	// beforeCreate runs inside Create before the uniqueness check; tests use
	// it to simulate a concurrent insert.
	beforeCreate func(f *entity.Favorite)
}

func (r *memFavorites) GetByUserAndWork(_ context.Context, userID, workID int64) (*entity.Favorite, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, f := range r.db.favorites {
		if f.UserID == userID && f.OpusWorkID == workID {
			return &f, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memFavorites) Create(_ context.Context, f *entity.Favorite) error {
	if r.beforeCreate != nil {
		hook := r.beforeCreate
		r.beforeCreate = nil
		hook(f)
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.favorites {
		if existing.UserID == f.UserID && existing.OpusWorkID == f.OpusWorkID {
			return &repository.ConflictError{Constraint: "favorites_user_work_key"}
		}
	}
	r.db.nextFav++
	f.ID = r.db.nextFav
	f.CreatedAt = r.db.tick()
	r.db.favorites[f.ID] = *f
	return nil
}

func (r *memFavorites) DeleteOwned(_ context.Context, favoriteID, userID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	f, ok := r.db.favorites[favoriteID]
	if !ok || f.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.db.favorites, favoriteID)
	return nil
}

func (r *memFavorites) ListByUser(_ context.Context, userID int64) ([]entity.Favorite, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []entity.Favorite{}
	for _, f := range r.db.favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

type memSessions struct {
	mu   sync.Mutex
	byID map[string]int64
}

func newMemSessions() *memSessions { return &memSessions{byID: map[string]int64{}} }

func (s *memSessions) Create(_ context.Context, sid string, userID int64, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[sid] = userID
	return nil
}

func (s *memSessions) Get(_ context.Context, sid string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uid, ok := s.byID[sid]
	if !ok {
		return 0, repository.ErrNotFound
	}
	return uid, nil
}

func (s *memSessions) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, sid)
	return nil
}

func (s *memSessions) DeleteAllForUser(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sid, uid := range s.byID {
		if uid == userID {
			delete(s.byID, sid)
		}
	}
	return nil
}

func (s *memSessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

type fakeCatalog struct {
	details      map[int64]entity.WorkDetail
	byEpoch      map[string][]entity.Composer
	err          error
	detailCalls  int
	epochQueries []string
}

func (c *fakeCatalog) SearchComposers(context.Context, string) ([]entity.Composer, error) {
	return nil, c.err
}

func (c *fakeCatalog) ListWorks(context.Context, int64) (*entity.Composer, []entity.Work, error) {
	return nil, nil, c.err
}

func (c *fakeCatalog) GetWorkDetail(_ context.Context, workID int64) (*entity.WorkDetail, error) {
	c.detailCalls++
	if c.err != nil {
		return nil, c.err
	}
	d, ok := c.details[workID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (c *fakeCatalog) ListComposersByEpoch(_ context.Context, epoch string) ([]entity.Composer, error) {
	c.epochQueries = append(c.epochQueries, epoch)
	if c.err != nil {
		return nil, c.err
	}
	return c.byEpoch[epoch], nil
}

func nocturne() entity.WorkDetail {
	return entity.WorkDetail{
		Composer: entity.Composer{ID: 7, CompleteName: "Frédéric Chopin", Epoch: "Romantic"},
		Work:     entity.Work{ID: 42, Title: "Nocturne", Genre: "Piano"},
	}
}
