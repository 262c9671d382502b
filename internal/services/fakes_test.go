package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"conferencecentral/internal/domain"
)

// memStore backs the fake repositories. Records are stored as copies so a
// caller only changes state through Create/Update.
type memStore struct {
	mu          sync.Mutex
	conferences map[string]domain.Conference
	profiles    map[string]domain.Profile
	sessions    []domain.Session
	nextID      int
}

func newMemStore() *memStore {
	return &memStore{
		conferences: make(map[string]domain.Conference),
		profiles:    make(map[string]domain.Profile),
	}
}

func cloneConference(c domain.Conference) domain.Conference {
	c.Topics = slices.Clone(c.Topics)
	return c
}

func cloneProfile(p domain.Profile) domain.Profile {
	p.RegisteredConferenceIDs = slices.Clone(p.RegisteredConferenceIDs)
	p.WishlistSessionIDs = slices.Clone(p.WishlistSessionIDs)
	return p
}

func cloneSession(s domain.Session) domain.Session {
	s.Highlights = slices.Clone(s.Highlights)
	return s
}

type storeSnapshot struct {
	conferences map[string]domain.Conference
	profiles    map[string]domain.Profile
	sessions    []domain.Session
}

func (m *memStore) snapshot() storeSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := storeSnapshot{
		conferences: make(map[string]domain.Conference, len(m.conferences)),
		profiles:    make(map[string]domain.Profile, len(m.profiles)),
	}
	for k, v := range m.conferences {
		snap.conferences[k] = cloneConference(v)
	}
	for k, v := range m.profiles {
		snap.profiles[k] = cloneProfile(v)
	}
	for _, s := range m.sessions {
		snap.sessions = append(snap.sessions, cloneSession(s))
	}
	return snap
}

func (m *memStore) restore(snap storeSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conferences = snap.conferences
	m.profiles = snap.profiles
	m.sessions = snap.sessions
}

func (m *memStore) id(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

// conference returns a stored conference for assertions.
func (m *memStore) conference(id string) domain.Conference {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneConference(m.conferences[id])
}

func (m *memStore) profile(userID string) (domain.Profile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	return cloneProfile(p), ok
}

// fakeTxManager serialises transactions and rolls the store back when fn fails.
type fakeTxManager struct {
	store *memStore
	mu    sync.Mutex
	calls int
}

func (f *fakeTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	snap := f.store.snapshot()
	if err := fn(ctx); err != nil {
		f.store.restore(snap)
		return err
	}
	return nil
}

// fakeConferenceRepo is an in-memory ConferenceRepository for tests.
type fakeConferenceRepo struct {
	store     *memStore
	lastQuery *domain.ConferenceQuery
	queryErr  error
}

func (f *fakeConferenceRepo) Create(ctx context.Context, c *domain.Conference) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	c.ID = f.store.id("conf")
	f.store.conferences[c.ID] = cloneConference(*c)
	return nil
}

func (f *fakeConferenceRepo) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	c, ok := f.store.conferences[id]
	if !ok {
		return nil, fmt.Errorf("conference %s: %w", id, domain.ErrNotFound)
	}
	out := cloneConference(c)
	return &out, nil
}

func (f *fakeConferenceRepo) GetByIDs(ctx context.Context, ids []string) ([]*domain.Conference, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	out := make([]*domain.Conference, 0, len(ids))
	for _, id := range ids {
		if c, ok := f.store.conferences[id]; ok {
			cc := cloneConference(c)
			out = append(out, &cc)
		}
	}
	return out, nil
}

func (f *fakeConferenceRepo) Update(ctx context.Context, c *domain.Conference) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if _, ok := f.store.conferences[c.ID]; !ok {
		return domain.ErrNotFound
	}
	if c.SeatsAvailable < 0 || c.SeatsAvailable > c.MaxAttendees {
		return fmt.Errorf("seat invariant: %w", domain.ErrConflict)
	}
	f.store.conferences[c.ID] = cloneConference(*c)
	return nil
}

func (f *fakeConferenceRepo) all(keep func(domain.Conference) bool) []*domain.Conference {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	out := make([]*domain.Conference, 0)
	for _, c := range f.store.conferences {
		if keep(c) {
			cc := cloneConference(c)
			out = append(out, &cc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (f *fakeConferenceRepo) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Conference, error) {
	return f.all(func(c domain.Conference) bool { return c.OrganizerID == organizerID }), nil
}

func (f *fakeConferenceRepo) Query(ctx context.Context, q *domain.ConferenceQuery) ([]*domain.Conference, error) {
	f.lastQuery = q
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.all(func(domain.Conference) bool { return true }), nil
}

func (f *fakeConferenceRepo) ListNamesBySeatsRange(ctx context.Context, minExclusive, maxInclusive int) ([]string, error) {
	confs := f.all(func(c domain.Conference) bool {
		return c.SeatsAvailable > minExclusive && c.SeatsAvailable <= maxInclusive
	})
	names := make([]string, 0, len(confs))
	for _, c := range confs {
		names = append(names, c.Name)
	}
	return names, nil
}

// fakeProfileRepo is an in-memory ProfileRepository for tests.
type fakeProfileRepo struct {
	store *memStore
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if _, ok := f.store.profiles[p.UserID]; ok {
		return domain.ErrConflict
	}
	f.store.profiles[p.UserID] = cloneProfile(*p)
	return nil
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	p, ok := f.store.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", userID, domain.ErrNotFound)
	}
	out := cloneProfile(p)
	return &out, nil
}

func (f *fakeProfileRepo) GetByUserIDs(ctx context.Context, userIDs []string) ([]*domain.Profile, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	out := make([]*domain.Profile, 0)
	for _, id := range userIDs {
		if p, ok := f.store.profiles[id]; ok {
			pp := cloneProfile(p)
			out = append(out, &pp)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if _, ok := f.store.profiles[p.UserID]; !ok {
		return domain.ErrNotFound
	}
	f.store.profiles[p.UserID] = cloneProfile(*p)
	return nil
}

// fakeSessionRepo is an in-memory SessionRepository for tests.
type fakeSessionRepo struct {
	store   *memStore
	listErr error
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	s.ID = f.store.id("session")
	f.store.sessions = append(f.store.sessions, cloneSession(*s))
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, s := range f.store.sessions {
		if s.ID == id {
			out := cloneSession(s)
			return &out, nil
		}
	}
	return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
}

func (f *fakeSessionRepo) GetByIDs(ctx context.Context, ids []string) ([]*domain.Session, error) {
	out := make([]*domain.Session, 0, len(ids))
	for _, id := range ids {
		s, err := f.GetByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSessionRepo) filter(keep func(domain.Session) bool) ([]*domain.Session, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	out := make([]*domain.Session, 0)
	for _, s := range f.store.sessions {
		if keep(s) {
			ss := cloneSession(s)
			out = append(out, &ss)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByConference(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	return f.filter(func(s domain.Session) bool { return s.ConferenceID == conferenceID })
}

func (f *fakeSessionRepo) ListByConferenceAndType(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	return f.filter(func(s domain.Session) bool {
		return s.ConferenceID == conferenceID && s.TypeOfSession == typeOfSession
	})
}

func (f *fakeSessionRepo) ListBySpeaker(ctx context.Context, speaker string) ([]*domain.Session, error) {
	out, err := f.filter(func(s domain.Session) bool { return s.Speaker == speaker })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// fakeTaskQueue records tasks; runAll executes them in order.
type fakeTaskQueue struct {
	mu    sync.Mutex
	tasks []domain.Task
}

func (f *fakeTaskQueue) Enqueue(task domain.Task) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
	return true
}

func (f *fakeTaskQueue) runAll(ctx context.Context) []error {
	f.mu.Lock()
	tasks := f.tasks
	f.tasks = nil
	f.mu.Unlock()
	var errs []error
	for _, t := range tasks {
		if err := t.Run(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (f *fakeTaskQueue) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.tasks))
	for _, t := range f.tasks {
		out = append(out, t.Name)
	}
	return out
}

// fakeEmailService records conference created emails.
type fakeEmailService struct {
	mu   sync.Mutex
	sent []*domain.ConferenceCreatedEmailData
	err  error
}

func (f *fakeEmailService) SendConferenceCreated(ctx context.Context, data *domain.ConferenceCreatedEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

// fixture wires the fakes together.
type fixture struct {
	store       *memStore
	txm         *fakeTxManager
	conferences *fakeConferenceRepo
	profiles    *fakeProfileRepo
	sessions    *fakeSessionRepo
	tasks       *fakeTaskQueue
}

func newFixture() *fixture {
	store := newMemStore()
	return &fixture{
		store:       store,
		txm:         &fakeTxManager{store: store},
		conferences: &fakeConferenceRepo{store: store},
		profiles:    &fakeProfileRepo{store: store},
		sessions:    &fakeSessionRepo{store: store},
		tasks:       &fakeTaskQueue{},
	}
}

// seedConference stores a conference owned by organizerID.
func (f *fixture) seedConference(organizerID, name string, maxAttendees int) *domain.Conference {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := domain.NewConference(organizerID, name, "", domain.DefaultConferenceCity, []string{"Go"}, nil, nil, maxAttendees, now, now)
	_ = f.conferences.Create(context.Background(), c)
	return c
}

func (f *fixture) setSeats(id string, seats int) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	c := f.store.conferences[id]
	c.SeatsAvailable = seats
	f.store.conferences[id] = c
}

func identity(userID string) domain.Identity {
	return domain.Identity{UserID: userID, Email: userID + "@example.com", DisplayName: "User " + userID}
}
