package services

import (
	"strings"
	"sync"
	"testing"
	"time"

	"sports-events-backend/internal/models"
	"sports-events-backend/internal/repositories"

	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for the repository layer. Its
// transaction takes a single lock for the whole unit of work, which
// gives the same mutual exclusion the database provides with the FOR
// UPDATE lock on the event row, and rolls back on error like a real
// transaction.
type memStore struct {
	mu      sync.Mutex
	events  map[string]*models.Event
	regs    map[string]*models.EventRegistration
	users   map[string]*models.User
	results []models.EventResult

	sportTypes map[string]*models.SportType
	eventTypes map[string]*models.EventType
	locations  map[string]*models.Location
}

func newMemStore() *memStore {
	return &memStore{
		events:     make(map[string]*models.Event),
		regs:       make(map[string]*models.EventRegistration),
		users:      make(map[string]*models.User),
		sportTypes: make(map[string]*models.SportType),
		eventTypes: make(map[string]*models.EventType),
		locations:  make(map[string]*models.Location),
	}
}

func copyEvent(e *models.Event) *models.Event {
	c := *e
	return &c
}

func copyReg(r *models.EventRegistration) *models.EventRegistration {
	c := *r
	return &c
}

// --- RegistrationRepository ---

func (s *memStore) InTransaction(fn func(tx repositories.RegistrationTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Snapshot for rollback.
	eventsBackup := make(map[string]*models.Event, len(s.events))
	for k, v := range s.events {
		eventsBackup[k] = copyEvent(v)
	}
	regsBackup := make(map[string]*models.EventRegistration, len(s.regs))
	for k, v := range s.regs {
		regsBackup[k] = copyReg(v)
	}

	if err := fn(&memTx{store: s}); err != nil {
		s.events = eventsBackup
		s.regs = regsBackup
		return err
	}
	return nil
}

func (s *memStore) GetRegistrationByID(id string) (*models.EventRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.regs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return copyReg(reg), nil
}

func (s *memStore) ListRegistrationsByEvent(eventID string) ([]models.EventRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.EventRegistration
	for _, reg := range s.regs {
		if reg.EventID.String() == eventID {
			out = append(out, *reg)
		}
	}
	return out, nil
}

func (s *memStore) ListRegistrationsByUser(userID string) ([]models.EventRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.EventRegistration
	for _, reg := range s.regs {
		if reg.UserID.String() == userID {
			out = append(out, *reg)
		}
	}
	return out, nil
}

func (s *memStore) HasCountedRegistration(eventID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, reg := range s.regs {
		if reg.EventID.String() == eventID && reg.UserID.String() == userID && reg.Status.Counted() {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) CountCountedByEvent(eventID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countCountedLocked(eventID), nil
}

func (s *memStore) countCountedLocked(eventID string) int64 {
	var n int64
	for _, reg := range s.regs {
		if reg.EventID.String() == eventID && reg.Status.Counted() {
			n++
		}
	}
	return n
}

// memTx runs with the store lock already held.
type memTx struct {
	store *memStore
}

func (t *memTx) GetEventForUpdate(id string) (*models.Event, error) {
	event, ok := t.store.events[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return copyEvent(event), nil
}

func (t *memTx) GetRegistrationByID(id string) (*models.EventRegistration, error) {
	reg, ok := t.store.regs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return copyReg(reg), nil
}

func (t *memTx) GetRegistrationByEventAndUser(eventID, userID string) (*models.EventRegistration, error) {
	for _, reg := range t.store.regs {
		if reg.EventID.String() == eventID && reg.UserID.String() == userID {
			return copyReg(reg), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (t *memTx) CreateRegistration(reg *models.EventRegistration) error {
	for _, existing := range t.store.regs {
		if existing.EventID == reg.EventID && existing.UserID == reg.UserID {
			return repositories.ErrDuplicateKey
		}
	}
	t.store.regs[reg.ID.String()] = copyReg(reg)
	return nil
}

func (t *memTx) SaveRegistration(reg *models.EventRegistration) error {
	if _, ok := t.store.regs[reg.ID.String()]; !ok {
		return repositories.ErrNotFound
	}
	t.store.regs[reg.ID.String()] = copyReg(reg)
	return nil
}

func (t *memTx) AddParticipants(eventID string, delta int) error {
	event, ok := t.store.events[eventID]
	if !ok {
		return repositories.ErrNotFound
	}
	event.CurrentParticipantsCount += delta
	if event.CurrentParticipantsCount < 0 {
		event.CurrentParticipantsCount = 0
	}
	return nil
}

// --- EventRepository ---

func (s *memStore) CreateEvent(event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ID.String()] = copyEvent(event)
	return nil
}

func (s *memStore) GetEventByID(id string) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return copyEvent(event), nil
}

func (s *memStore) GetEventDetail(id string) (*models.Event, error) {
	return s.GetEventByID(id)
}

func (s *memStore) ListEvents(offset, limit int, filters *repositories.EventFilters) ([]models.Event, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Event
	for _, event := range s.events {
		if filters != nil && !filters.IncludePrivate && !event.IsPublic {
			continue
		}
		if filters != nil && filters.Search != "" &&
			!strings.Contains(strings.ToLower(event.Title), strings.ToLower(filters.Search)) {
			continue
		}
		out = append(out, *event)
	}
	return out, int64(len(out)), nil
}

func (s *memStore) UpdateEvent(event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.events[event.ID.String()]
	if !ok {
		return repositories.ErrNotFound
	}
	// The counter column stays with the registration ledger, whatever
	// snapshot the caller read.
	updated := copyEvent(event)
	updated.CurrentParticipantsCount = existing.CurrentParticipantsCount
	s.events[event.ID.String()] = updated
	return nil
}

func (s *memStore) DeleteEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.events, id)
	for regID, reg := range s.regs {
		if reg.EventID.String() == id {
			delete(s.regs, regID)
		}
	}
	return nil
}

// --- UserRepository ---

func (s *memStore) GetUserByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			c := *user
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *memStore) GetUserByID(id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *user
	return &c, nil
}

func (s *memStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return repositories.ErrDuplicateKey
		}
	}
	c := *user
	s.users[user.ID.String()] = &c
	return nil
}

func (s *memStore) UpdateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *user
	s.users[user.ID.String()] = &c
	return nil
}

// --- ResultRepository ---

func (s *memStore) CreateResult(result *models.EventResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, *result)
	return nil
}

func (s *memStore) ListResultsByEvent(eventID string) ([]models.EventResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.EventResult
	for _, result := range s.results {
		if result.EventID.String() == eventID {
			out = append(out, result)
		}
	}
	return out, nil
}

// --- CatalogRepository ---

func (s *memStore) CreateSportType(st *models.SportType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.sportTypes {
		if existing.Name == st.Name {
			return repositories.ErrDuplicateKey
		}
	}
	c := *st
	s.sportTypes[st.ID.String()] = &c
	return nil
}

func (s *memStore) GetSportTypeByID(id string) (*models.SportType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sportTypes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *st
	return &c, nil
}

func (s *memStore) ListSportTypes() ([]models.SportType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.SportType
	for _, st := range s.sportTypes {
		out = append(out, *st)
	}
	return out, nil
}

func (s *memStore) CreateEventType(et *models.EventType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.eventTypes {
		if existing.Name == et.Name {
			return repositories.ErrDuplicateKey
		}
	}
	c := *et
	s.eventTypes[et.ID.String()] = &c
	return nil
}

func (s *memStore) GetEventTypeByID(id string) (*models.EventType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	et, ok := s.eventTypes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *et
	return &c, nil
}

func (s *memStore) ListEventTypes() ([]models.EventType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.EventType
	for _, et := range s.eventTypes {
		out = append(out, *et)
	}
	return out, nil
}

func (s *memStore) CreateLocation(loc *models.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *loc
	s.locations[loc.ID.String()] = &c
	return nil
}

func (s *memStore) GetLocationByID(id string) (*models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	loc, ok := s.locations[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *loc
	return &c, nil
}

func (s *memStore) ListLocations(city string) ([]models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Location
	for _, loc := range s.locations {
		if city == "" || strings.EqualFold(loc.City, city) {
			out = append(out, *loc)
		}
	}
	return out, nil
}

// --- seed helpers ---

func seedUser(t *testing.T, store *memStore, displayName string) *models.User {
	t.Helper()
	user := &models.User{
		ID:          uuid.New(),
		Email:       strings.ToLower(displayName) + "@test.com",
		Password:    "hash",
		DisplayName: displayName,
		IsActive:    true,
	}
	if err := store.CreateUser(user); err != nil {
		t.Fatalf("seedUser: %v", err)
	}
	return user
}

type eventOpts struct {
	status          models.EventStatus
	maxParticipants *int
	deadline        *time.Time
}

func seedEvent(t *testing.T, store *memStore, organizer *models.User, opts eventOpts) *models.Event {
	t.Helper()

	status := opts.status
	if status == "" {
		status = models.EventRegistrationOpen
	}

	event := &models.Event{
		ID:                   uuid.New(),
		Title:                "Test Event",
		Description:          "An event for testing",
		OrganizerID:          organizer.ID,
		SportTypeID:          uuid.New(),
		EventTypeID:          uuid.New(),
		StartDatetime:        time.Now().Add(48 * time.Hour),
		RegistrationDeadline: opts.deadline,
		MaxParticipants:      opts.maxParticipants,
		Status:               status,
		IsPublic:             true,
	}
	if err := store.CreateEvent(event); err != nil {
		t.Fatalf("seedEvent: %v", err)
	}
	return event
}

// assertCounterInvariant checks that the denormalized participant
// counter equals the number of counted registrations in the ledger.
func assertCounterInvariant(t *testing.T, store *memStore, eventID string) {
	t.Helper()
	event, err := store.GetEventByID(eventID)
	if err != nil {
		t.Fatalf("assertCounterInvariant: %v", err)
	}
	counted, _ := store.CountCountedByEvent(eventID)
	if int64(event.CurrentParticipantsCount) != counted {
		t.Fatalf("counter invariant broken: counter=%d, counted registrations=%d",
			event.CurrentParticipantsCount, counted)
	}
}

func intPtr(n int) *int { return &n }

func timePtr(t time.Time) *time.Time { return &t }

// assertDomainErrorCode fails unless err is a DomainError carrying the
// expected code.
func assertDomainErrorCode(t *testing.T, err error, want DomainErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := GetDomainErrorCode(err); got != want {
		t.Fatalf("expected error code %s, got %s (%v)", want, got, err)
	}
}
