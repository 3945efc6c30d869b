package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

// The in-memory repositories back tests and the local development mode.
// They hand out copies so callers cannot mutate stored state behind the lock.

var (
	_ domain.HabitRepository    = (*InMemoryHabitRepository)(nil)
	_ domain.CategoryRepository = (*InMemoryCategoryRepository)(nil)
	_ domain.CheckInRepository  = (*InMemoryCheckInRepository)(nil)
	_ domain.NoteRepository     = (*InMemoryNoteRepository)(nil)
	_ domain.PomodoroRepository = (*InMemoryPomodoroRepository)(nil)
	_ domain.UserRepository     = (*InMemoryUserRepository)(nil)
)

func copyHabit(h *domain.Habit) *domain.Habit {
	c := *h
	c.RepeatDays = append([]int{}, h.RepeatDays...)
	c.ScheduleTimes = append([]string{}, h.ScheduleTimes...)
	if h.NotificationMinutesBefore != nil {
		v := *h.NotificationMinutesBefore
		c.NotificationMinutesBefore = &v
	}
	return &c
}

type InMemoryHabitRepository struct {
	store map[string]*domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[habit.ID] = copyHabit(habit)
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return copyHabit(habit), nil
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	habits := r.filter(func(h *domain.Habit) bool { return h.UserID == userID })

	sort.Slice(habits, func(i, j int) bool {
		if habits[i].CreatedAt.Equal(habits[j].CreatedAt) {
			return habits[i].ID < habits[j].ID
		}
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})
	return habits, nil
}

func (r *InMemoryHabitRepository) ListByCategory(ctx context.Context, userID, category string) ([]*domain.Habit, error) {
	habits := r.filter(func(h *domain.Habit) bool {
		return h.UserID == userID && h.Category == category
	})

	sort.Slice(habits, func(i, j int) bool {
		if habits[i].CreatedAt.Equal(habits[j].CreatedAt) {
			return habits[i].ID < habits[j].ID
		}
		return habits[i].CreatedAt.After(habits[j].CreatedAt)
	})
	return habits, nil
}

func (r *InMemoryHabitRepository) filter(keep func(*domain.Habit) bool) []*domain.Habit {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := []*domain.Habit{}
	for _, h := range r.store {
		if keep(h) {
			habits = append(habits, copyHabit(h))
		}
	}
	return habits
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[habit.ID]; !ok {
		return domain.ErrHabitNotFound
	}

	r.store[habit.ID] = copyHabit(habit)
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrHabitNotFound
	}

	delete(r.store, id)
	return nil
}

type InMemoryCategoryRepository struct {
	store map[string]domain.Category

	mu sync.RWMutex
}

func NewInMemoryCategoryRepository() *InMemoryCategoryRepository {
	return &InMemoryCategoryRepository{store: make(map[string]domain.Category)}
}

func (r *InMemoryCategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[c.ID] = *c
	return nil
}

func (r *InMemoryCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.store[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return &c, nil
}

func (r *InMemoryCategoryRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := []*domain.Category{}
	for _, c := range r.store {
		if c.UserID == userID {
			c := c
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func (r *InMemoryCategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[c.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	r.store[c.ID] = *c
	return nil
}

func (r *InMemoryCategoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.store, id)
	return nil
}

// InMemoryCheckInRepository enforces the one-record-per-habit-per-day rule
// with a secondary index, the same way the database does with its unique key.
type InMemoryCheckInRepository struct {
	store  map[string]domain.CheckIn
	byDate map[string]string

	mu sync.RWMutex
}

func NewInMemoryCheckInRepository() *InMemoryCheckInRepository {
	return &InMemoryCheckInRepository{
		store:  make(map[string]domain.CheckIn),
		byDate: make(map[string]string),
	}
}

func dateKey(habitID, date string) string {
	return habitID + "|" + date
}

func (r *InMemoryCheckInRepository) Create(ctx context.Context, c *domain.CheckIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := dateKey(c.HabitID, c.Date)
	if _, exists := r.byDate[key]; exists {
		return domain.ErrCheckInConflict
	}
	r.store[c.ID] = *c
	r.byDate[key] = c.ID
	return nil
}

func (r *InMemoryCheckInRepository) Update(ctx context.Context, c *domain.CheckIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[c.ID]
	if !ok {
		return domain.ErrCheckInNotFound
	}
	existing.Completed = c.Completed
	existing.TimeSpent = c.TimeSpent
	existing.Notes = c.Notes
	existing.Timestamp = c.Timestamp
	r.store[c.ID] = existing
	return nil
}

func (r *InMemoryCheckInRepository) GetByID(ctx context.Context, id string) (*domain.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.store[id]
	if !ok {
		return nil, domain.ErrCheckInNotFound
	}
	return &c, nil
}

func (r *InMemoryCheckInRepository) FindByDate(ctx context.Context, habitID, date string) (*domain.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byDate[dateKey(habitID, date)]
	if !ok {
		return nil, domain.ErrCheckInNotFound
	}
	c := r.store[id]
	return &c, nil
}

func (r *InMemoryCheckInRepository) ListByHabitID(ctx context.Context, habitID string) ([]*domain.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := []*domain.CheckIn{}
	for _, c := range r.store {
		if c.HabitID == habitID {
			c := c
			list = append(list, &c)
		}
	}
	return list, nil
}

func (r *InMemoryCheckInRepository) ListInRange(ctx context.Context, habitID, start, end string) ([]*domain.CheckIn, error) {
	all, _ := r.ListByHabitID(ctx, habitID)

	list := []*domain.CheckIn{}
	for _, c := range all {
		if c.Date >= start && c.Date <= end {
			list = append(list, c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date < list[j].Date })
	return list, nil
}

func (r *InMemoryCheckInRepository) Delete(ctx context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.store[id]
	if !ok || c.UserID != userID {
		return domain.ErrCheckInNotFound
	}
	delete(r.store, id)
	delete(r.byDate, dateKey(c.HabitID, c.Date))
	return nil
}

type InMemoryNoteRepository struct {
	store map[string]domain.Note

	mu sync.RWMutex
}

func NewInMemoryNoteRepository() *InMemoryNoteRepository {
	return &InMemoryNoteRepository{store: make(map[string]domain.Note)}
}

func (r *InMemoryNoteRepository) Create(ctx context.Context, n *domain.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[n.ID] = *n
	return nil
}

func (r *InMemoryNoteRepository) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.store[id]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	return &n, nil
}

func (r *InMemoryNoteRepository) ListByHabitID(ctx context.Context, habitID string) ([]*domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := []*domain.Note{}
	for _, n := range r.store {
		if n.HabitID == habitID {
			n := n
			list = append(list, &n)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return strings.Compare(list[i].ID, list[j].ID) < 0
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *InMemoryNoteRepository) Update(ctx context.Context, n *domain.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[n.ID]; !ok {
		return domain.ErrNoteNotFound
	}
	r.store[n.ID] = *n
	return nil
}

func (r *InMemoryNoteRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrNoteNotFound
	}
	delete(r.store, id)
	return nil
}

type InMemoryPomodoroRepository struct {
	store map[string]domain.PomodoroSession

	mu sync.RWMutex
}

func NewInMemoryPomodoroRepository() *InMemoryPomodoroRepository {
	return &InMemoryPomodoroRepository{store: make(map[string]domain.PomodoroSession)}
}

func (r *InMemoryPomodoroRepository) Create(ctx context.Context, s *domain.PomodoroSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[s.ID] = *s
	return nil
}

func (r *InMemoryPomodoroRepository) GetByID(ctx context.Context, id string) (*domain.PomodoroSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.store[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

func (r *InMemoryPomodoroRepository) ListByHabitID(ctx context.Context, habitID string) ([]*domain.PomodoroSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := []*domain.PomodoroSession{}
	for _, s := range r.store {
		if s.HabitID == habitID {
			s := s
			list = append(list, &s)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].StartedAt.After(list[j].StartedAt) })
	return list, nil
}

func (r *InMemoryPomodoroRepository) Update(ctx context.Context, s *domain.PomodoroSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[s.ID]; !ok {
		return domain.ErrSessionNotFound
	}
	r.store[s.ID] = *s
	return nil
}

type InMemoryUserRepository struct {
	byID    map[string]domain.User
	byEmail map[string]string

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(u.Email)
	if _, exists := r.byEmail[email]; exists {
		return domain.ErrEmailAlreadyExists
	}
	r.byID[u.ID] = *u
	r.byEmail[email] = u.ID
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := r.byID[id]
	return &u, nil
}
