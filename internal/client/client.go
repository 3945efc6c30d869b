// Package client talks to the Kanso Habits HTTP API and keeps the
// client-side session and collection state on top of it.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// Is lets callers match 404s with errors.Is(err, ErrNotFound).
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrNotAuthenticated:
		return e.Status == http.StatusUnauthorized
	}
	return false
}

// Client is safe for concurrent use. WithToken returns a copy bound to a
// bearer token; the underlying connection pool is shared.
type Client struct {
	rc    *resty.Client
	token string
}

func New(baseURL string) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	return &Client{rc: rc}
}

func (c *Client) WithToken(token string) *Client {
	return &Client{rc: c.rc, token: token}
}

func (c *Client) r(ctx context.Context) *resty.Request {
	req := c.rc.R().SetContext(ctx).SetError(&APIError{})
	if c.token != "" {
		req.SetAuthToken(c.token)
	}
	return req
}

// do runs the request and decodes the result into out when non-nil.
func (c *Client) do(req *resty.Request, method, path string, out any) error {
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr, ok := resp.Error().(*APIError)
		if !ok || apiErr == nil {
			apiErr = &APIError{}
		}
		apiErr.Status = resp.StatusCode()
		return apiErr
	}
	return nil
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Provider string `json:"provider"`
}

type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (c *Client) Register(ctx context.Context, creds Credentials) (*User, error) {
	var u User
	if err := c.do(c.r(ctx).SetBody(creds), http.MethodPost, "/api/v1/auth/register", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var res AuthResult
	if err := c.do(c.r(ctx).SetBody(creds), http.MethodPost, "/api/v1/auth/login", &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) LoginFederated(ctx context.Context, idToken string) (*AuthResult, error) {
	var res AuthResult
	body := map[string]string{"id_token": idToken}
	if err := c.do(c.r(ctx).SetBody(body), http.MethodPost, "/api/v1/auth/federated", &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(c.r(ctx), http.MethodPost, "/api/v1/auth/logout", nil)
}

// HabitInput mirrors the create/update body of /habits.
type HabitInput struct {
	Name                      string   `json:"name,omitempty"`
	Description               string   `json:"description,omitempty"`
	Category                  string   `json:"category,omitempty"`
	Color                     string   `json:"color,omitempty"`
	IsActive                  *bool    `json:"is_active,omitempty"`
	RepeatDays                []int    `json:"repeat_days,omitempty"`
	ScheduleTimes             []string `json:"schedule_times,omitempty"`
	NotificationMinutesBefore *int     `json:"notification_minutes_before,omitempty"`
}

func (c *Client) ListHabits(ctx context.Context, category string) ([]domain.Habit, error) {
	var out []domain.Habit
	req := c.r(ctx)
	if category != "" {
		req.SetQueryParam("category", category)
	}
	if err := c.do(req, http.MethodGet, "/api/v1/habits", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetHabit(ctx context.Context, id string) (*domain.Habit, error) {
	var h domain.Habit
	if err := c.do(c.r(ctx), http.MethodGet, "/api/v1/habits/"+url.PathEscape(id), &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Client) CreateHabit(ctx context.Context, in HabitInput) (*domain.Habit, error) {
	var h domain.Habit
	if err := c.do(c.r(ctx).SetBody(in), http.MethodPost, "/api/v1/habits", &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Client) UpdateHabit(ctx context.Context, id string, in HabitInput) (*domain.Habit, error) {
	var h domain.Habit
	if err := c.do(c.r(ctx).SetBody(in), http.MethodPut, "/api/v1/habits/"+url.PathEscape(id), &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Client) DeleteHabit(ctx context.Context, id string) error {
	return c.do(c.r(ctx), http.MethodDelete, "/api/v1/habits/"+url.PathEscape(id), nil)
}

type CheckInInput struct {
	Date      string  `json:"date"`
	Completed bool    `json:"completed"`
	TimeSpent *int    `json:"time_spent,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

func (c *Client) UpsertCheckIn(ctx context.Context, habitID string, in CheckInInput) (*domain.CheckIn, error) {
	var ci domain.CheckIn
	path := "/api/v1/habits/" + url.PathEscape(habitID) + "/checkins"
	if err := c.do(c.r(ctx).SetBody(in), http.MethodPut, path, &ci); err != nil {
		return nil, err
	}
	return &ci, nil
}

// ListCheckIns returns every check-in of the habit, or only those between
// from and to (inclusive) when both are set.
func (c *Client) ListCheckIns(ctx context.Context, habitID, from, to string) ([]domain.CheckIn, error) {
	var out []domain.CheckIn
	req := c.r(ctx)
	if from != "" || to != "" {
		req.SetQueryParams(map[string]string{"from": from, "to": to})
	}
	path := "/api/v1/habits/" + url.PathEscape(habitID) + "/checkins"
	if err := c.do(req, http.MethodGet, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LookupCheckIn returns (nil, nil) when the day has no record.
func (c *Client) LookupCheckIn(ctx context.Context, habitID, date string) (*domain.CheckIn, error) {
	var ci domain.CheckIn
	path := "/api/v1/habits/" + url.PathEscape(habitID) + "/checkins/" + url.PathEscape(date)
	err := c.do(c.r(ctx), http.MethodGet, path, &ci)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ci, nil
}

func (c *Client) DeleteCheckIn(ctx context.Context, id string) error {
	return c.do(c.r(ctx), http.MethodDelete, "/api/v1/checkins/"+url.PathEscape(id), nil)
}

func (c *Client) HabitStats(ctx context.Context, habitID string) (*domain.HabitStats, error) {
	var s domain.HabitStats
	path := "/api/v1/habits/" + url.PathEscape(habitID) + "/stats"
	if err := c.do(c.r(ctx), http.MethodGet, path, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UserStats(ctx context.Context) ([]domain.HabitStats, error) {
	var out []domain.HabitStats
	if err := c.do(c.r(ctx), http.MethodGet, "/api/v1/stats", &out); err != nil {
		return nil, err
	}
	return out, nil
}

type CategoryInput struct {
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := c.do(c.r(ctx), http.MethodGet, "/api/v1/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	var cat domain.Category
	if err := c.do(c.r(ctx).SetBody(in), http.MethodPost, "/api/v1/categories", &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(c.r(ctx), http.MethodDelete, "/api/v1/categories/"+url.PathEscape(id), nil)
}
