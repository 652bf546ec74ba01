// Package sample provides a small API and dashboard used by the viron command
// and by tests.
package sample

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/tsutoringo/viron-go"
)

var (
	validate      = validator.New()
	schemaDecoder = schema.NewDecoder()
)

func init() {
	schemaDecoder.IgnoreUnknownKeys(true)
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListUsersParams are the query parameters of listUsers.
type ListUsersParams struct {
	Limit  int `schema:"limit" validate:"gte=0,lte=100"`
	Offset int `schema:"offset" validate:"gte=0"`
}

// Store is an in-memory user store.
type Store struct {
	mu     sync.RWMutex
	users  []User
	active map[string]bool
}

// NewStore returns a store seeded with a few users.
func NewStore() *Store {
	return &Store{
		users: []User{
			{ID: "1", Name: "Alice", Email: "alice@example.com"},
			{ID: "2", Name: "Bob", Email: "bob@example.com"},
			{ID: "3", Name: "Carol", Email: "carol@example.com"},
		},
		active: map[string]bool{"1": true, "3": true},
	}
}

// Add inserts a user.
func (s *Store) Add(u User, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
	if active {
		s.active[u.ID] = true
	}
}

func (s *Store) get(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.users, func(u User) bool { return u.ID == id })
	if i < 0 {
		return User{}, false
	}
	return s.users[i], true
}

func (s *Store) list(limit, offset int) []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if offset >= len(s.users) {
		return []User{}
	}
	end := len(s.users)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return slices.Clone(s.users[offset:end])
}

func (s *Store) counts() (active, total int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.active), len(s.users)
}

// NewAPI describes the sample API backed by store:
// group User (getUser, listUsers) and group Metrics under /metrics
// (getActiveUserCount, getTotalUserCount).
func NewAPI(store *Store, logger *slog.Logger) *viron.API {
	h := &handlers{store: store, logger: logger}
	if h.logger == nil {
		h.logger = slog.Default()
	}

	api := viron.NewAPI("SampleApi").
		WithVersion("1.0.0").
		WithDescription("Sample API exposed to the Viron dashboard").
		WithLogger(logger)

	api.Group("User").
		Add(viron.Get("getUser", "/users/{id}").
			WithSummary("Get a user").
			Returns(User{}).
			HandleFunc(h.getUser)).
		Add(viron.Get("listUsers", "/users").
			WithSummary("List users").
			Returns(viron.TableResponse[User]{}).
			HandleFunc(h.listUsers))

	api.Group("Metrics").
		WithPrefix("/metrics").
		Add(viron.Get("getActiveUserCount", "/active-users").
			WithSummary("Number of active users").
			Returns(viron.NumberResponse{}).
			HandleFunc(h.activeUserCount)).
		Add(viron.Get("getTotalUserCount", "/total-users").
			WithSummary("Number of users").
			Returns(viron.NumberResponse{}).
			HandleFunc(h.totalUserCount))

	return api
}

type handlers struct {
	store  *Store
	logger *slog.Logger
}

func (h *handlers) getUser(w http.ResponseWriter, r *http.Request) {
	u, ok := h.store.get(chi.URLParam(r, "id"))
	if !ok {
		h.writeError(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	h.writeJSON(w, u)
}

func (h *handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	var params ListUsersParams
	if err := schemaDecoder.Decode(&params, r.URL.Query()); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}
	if err := validate.Struct(params); err != nil {
		verr := viron.ValidationError("invalid_argument", "query", err)
		h.writeError(w, http.StatusBadRequest, string(verr.Code), verr.Message)
		return
	}
	h.writeJSON(w, viron.TableResponse[User]{List: h.store.list(params.Limit, params.Offset)})
}

func (h *handlers) activeUserCount(w http.ResponseWriter, r *http.Request) {
	active, _ := h.store.counts()
	h.writeJSON(w, viron.NumberResponse{Number: float64(active)})
}

func (h *handlers) totalUserCount(w http.ResponseWriter, r *http.Request) {
	_, total := h.store.counts()
	h.writeJSON(w, viron.NumberResponse{Number: float64(total)})
}

func (h *handlers) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *handlers) writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"code": code, "message": message}); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
