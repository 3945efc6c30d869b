package client

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

// tracker holds the loading flag and last error shared by every collection.
type tracker struct {
	name    string
	mu      sync.RWMutex
	loading bool
	err     error
}

func (t *tracker) Loading() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.loading
}

// Err is the error of the last call, nil once a later call succeeds.
func (t *tracker) Err() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.err
}

func (t *tracker) begin() {
	t.mu.Lock()
	t.loading = true
	t.err = nil
	t.mu.Unlock()
}

// finish records err and hands it back so callers can `return t.finish(err)`.
func (t *tracker) finish(op string, err error) error {
	t.mu.Lock()
	t.loading = false
	t.err = err
	t.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Str("collection", t.name).Str("op", op).Msg("request failed")
	}
	return err
}

// authorized returns an API client bound to the session's token, or
// ErrNotAuthenticated when nobody is signed in.
func authorized(session *Session, api *Client) (*Client, error) {
	st := session.State()
	if !st.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	return api.WithToken(st.Token), nil
}

// Habits caches the signed-in user's habits, newest first.
type Habits struct {
	tracker
	session     *Session
	api         *Client
	unsubscribe func()

	itemsMu sync.RWMutex
	owner   string
	items   []domain.Habit
}

func NewHabits(session *Session, api *Client) *Habits {
	h := &Habits{tracker: tracker{name: "habits"}, session: session, api: api}
	h.unsubscribe = session.Subscribe(func(st State) {
		h.itemsMu.Lock()
		defer h.itemsMu.Unlock()
		if st.UserID != h.owner {
			h.owner = st.UserID
			h.items = nil
		}
	})
	return h
}

func (h *Habits) Close() { h.unsubscribe() }

func (h *Habits) Items() []domain.Habit {
	h.itemsMu.RLock()
	defer h.itemsMu.RUnlock()
	return append([]domain.Habit(nil), h.items...)
}

func (h *Habits) Load(ctx context.Context) ([]domain.Habit, error) {
	api, err := authorized(h.session, h.api)
	if err != nil {
		return nil, err
	}

	h.begin()
	list, err := api.ListHabits(ctx, "")
	if err != nil {
		return nil, h.finish("load", err)
	}

	sortNewestFirst(list)

	h.itemsMu.Lock()
	h.items = list
	h.itemsMu.Unlock()
	return list, h.finish("load", nil)
}

func (h *Habits) Create(ctx context.Context, in HabitInput) (*domain.Habit, error) {
	api, err := authorized(h.session, h.api)
	if err != nil {
		return nil, err
	}

	h.begin()
	habit, err := api.CreateHabit(ctx, in)
	if err != nil {
		return nil, h.finish("create", err)
	}

	h.itemsMu.Lock()
	h.items = append([]domain.Habit{*habit}, h.items...)
	h.itemsMu.Unlock()
	return habit, h.finish("create", nil)
}

func (h *Habits) Update(ctx context.Context, id string, in HabitInput) (*domain.Habit, error) {
	api, err := authorized(h.session, h.api)
	if err != nil {
		return nil, err
	}

	h.begin()
	habit, err := api.UpdateHabit(ctx, id, in)
	if err != nil {
		return nil, h.finish("update", err)
	}

	h.itemsMu.Lock()
	for i := range h.items {
		if h.items[i].ID == id {
			h.items[i] = *habit
		}
	}
	h.itemsMu.Unlock()
	return habit, h.finish("update", nil)
}

func (h *Habits) Delete(ctx context.Context, id string) error {
	api, err := authorized(h.session, h.api)
	if err != nil {
		return err
	}

	h.begin()
	if err := api.DeleteHabit(ctx, id); err != nil {
		return h.finish("delete", err)
	}

	h.itemsMu.Lock()
	h.items = removeHabit(h.items, id)
	h.itemsMu.Unlock()
	return h.finish("delete", nil)
}

// sortNewestFirst orders by CreatedAt descending. The server lists oldest first.
func sortNewestFirst(items []domain.Habit) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func removeHabit(items []domain.Habit, id string) []domain.Habit {
	out := items[:0:0]
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// Categories caches the signed-in user's categories.
type Categories struct {
	tracker
	session     *Session
	api         *Client
	unsubscribe func()

	itemsMu sync.RWMutex
	owner   string
	items   []domain.Category
}

func NewCategories(session *Session, api *Client) *Categories {
	c := &Categories{tracker: tracker{name: "categories"}, session: session, api: api}
	c.unsubscribe = session.Subscribe(func(st State) {
		c.itemsMu.Lock()
		defer c.itemsMu.Unlock()
		if st.UserID != c.owner {
			c.owner = st.UserID
			c.items = nil
		}
	})
	return c
}

func (c *Categories) Close() { c.unsubscribe() }

func (c *Categories) Items() []domain.Category {
	c.itemsMu.RLock()
	defer c.itemsMu.RUnlock()
	return append([]domain.Category(nil), c.items...)
}

func (c *Categories) Load(ctx context.Context) ([]domain.Category, error) {
	api, err := authorized(c.session, c.api)
	if err != nil {
		return nil, err
	}

	c.begin()
	list, err := api.ListCategories(ctx)
	if err != nil {
		return nil, c.finish("load", err)
	}

	c.itemsMu.Lock()
	c.items = list
	c.itemsMu.Unlock()
	return list, c.finish("load", nil)
}

func (c *Categories) Create(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	api, err := authorized(c.session, c.api)
	if err != nil {
		return nil, err
	}

	c.begin()
	category, err := api.CreateCategory(ctx, in)
	if err != nil {
		return nil, c.finish("create", err)
	}

	c.itemsMu.Lock()
	c.items = append(c.items, *category)
	c.itemsMu.Unlock()
	return category, c.finish("create", nil)
}

func (c *Categories) Delete(ctx context.Context, id string) error {
	api, err := authorized(c.session, c.api)
	if err != nil {
		return err
	}

	c.begin()
	if err := api.DeleteCategory(ctx, id); err != nil {
		return c.finish("delete", err)
	}

	c.itemsMu.Lock()
	kept := c.items[:0:0]
	for _, it := range c.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	c.items = kept
	c.itemsMu.Unlock()
	return c.finish("delete", nil)
}

// CheckIns caches check-ins per habit, ordered by date ascending.
type CheckIns struct {
	tracker
	session     *Session
	api         *Client
	unsubscribe func()

	itemsMu sync.RWMutex
	owner   string
	byHabit map[string][]domain.CheckIn
}

func NewCheckIns(session *Session, api *Client) *CheckIns {
	c := &CheckIns{
		tracker: tracker{name: "checkins"},
		session: session,
		api:     api,
		byHabit: make(map[string][]domain.CheckIn),
	}
	c.unsubscribe = session.Subscribe(func(st State) {
		c.itemsMu.Lock()
		defer c.itemsMu.Unlock()
		if st.UserID != c.owner {
			c.owner = st.UserID
			c.byHabit = make(map[string][]domain.CheckIn)
		}
	})
	return c
}

func (c *CheckIns) Close() { c.unsubscribe() }

func (c *CheckIns) Items(habitID string) []domain.CheckIn {
	c.itemsMu.RLock()
	defer c.itemsMu.RUnlock()
	return append([]domain.CheckIn(nil), c.byHabit[habitID]...)
}

// Stats derives statistics from the cached check-ins of the habit without a
// round trip. Call Load first for a complete history.
func (c *CheckIns) Stats(habitID string) domain.HabitStats {
	items := c.Items(habitID)
	ptrs := make([]*domain.CheckIn, len(items))
	for i := range items {
		ptrs[i] = &items[i]
	}
	return domain.ComputeStats(habitID, ptrs)
}

func (c *CheckIns) Load(ctx context.Context, habitID string) ([]domain.CheckIn, error) {
	api, err := authorized(c.session, c.api)
	if err != nil {
		return nil, err
	}

	c.begin()
	list, err := api.ListCheckIns(ctx, habitID, "", "")
	if err != nil {
		return nil, c.finish("load", err)
	}

	c.itemsMu.Lock()
	c.byHabit[habitID] = sortByDate(list)
	c.itemsMu.Unlock()
	return list, c.finish("load", nil)
}

// LoadRange fetches the check-ins between start and end inclusive. The cache
// is left untouched since the result is partial.
func (c *CheckIns) LoadRange(ctx context.Context, habitID, start, end string) ([]domain.CheckIn, error) {
	if err := domain.ValidateDateRange(start, end); err != nil {
		return nil, err
	}
	api, err := authorized(c.session, c.api)
	if err != nil {
		return nil, err
	}

	c.begin()
	list, err := api.ListCheckIns(ctx, habitID, start, end)
	return list, c.finish("load_range", err)
}

// Lookup returns (nil, nil) when the day has no record.
func (c *CheckIns) Lookup(ctx context.Context, habitID, date string) (*domain.CheckIn, error) {
	api, err := authorized(c.session, c.api)
	if err != nil {
		return nil, err
	}

	c.begin()
	ci, err := api.LookupCheckIn(ctx, habitID, date)
	return ci, c.finish("lookup", err)
}

func (c *CheckIns) Upsert(ctx context.Context, habitID string, in CheckInInput) (*domain.CheckIn, error) {
	api, err := authorized(c.session, c.api)
	if err != nil {
		return nil, err
	}

	c.begin()
	ci, err := api.UpsertCheckIn(ctx, habitID, in)
	if err != nil {
		return nil, c.finish("upsert", err)
	}

	c.itemsMu.Lock()
	list := c.byHabit[habitID]
	replaced := false
	for i := range list {
		if list[i].Date == ci.Date {
			list[i] = *ci
			replaced = true
		}
	}
	if !replaced {
		list = append(list, *ci)
	}
	c.byHabit[habitID] = sortByDate(list)
	c.itemsMu.Unlock()
	return ci, c.finish("upsert", nil)
}

func (c *CheckIns) Delete(ctx context.Context, id string) error {
	api, err := authorized(c.session, c.api)
	if err != nil {
		return err
	}

	c.begin()
	if err := api.DeleteCheckIn(ctx, id); err != nil {
		return c.finish("delete", err)
	}

	c.itemsMu.Lock()
	for habitID, list := range c.byHabit {
		kept := list[:0:0]
		for _, it := range list {
			if it.ID != id {
				kept = append(kept, it)
			}
		}
		c.byHabit[habitID] = kept
	}
	c.itemsMu.Unlock()
	return c.finish("delete", nil)
}

func sortByDate(list []domain.CheckIn) []domain.CheckIn {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date < list[j].Date })
	return list
}
