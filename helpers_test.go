package viron

import (
	"encoding/json"
	"net/http"
)

type testUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// newTestAPI returns an API with a User group (getUser, listUsers) and a
// Metrics group (getActiveUserCount, getTotalUserCount) under /metrics.
func newTestAPI() *API {
	api := NewAPI("test").WithVersion("1.0.0")
	api.Group("User").
		Add(Get("getUser", "/users/{id}").Returns(testUser{})).
		Add(Get("listUsers", "/users").Returns(TableResponse[testUser]{}).HandleFunc(writeJSON(TableResponse[testUser]{List: []testUser{}})))
	api.Group("Metrics").
		WithPrefix("/metrics").
		Add(Get("getActiveUserCount", "/active-users").Returns(NumberResponse{}).HandleFunc(writeJSON(NumberResponse{Number: 3}))).
		Add(Get("getTotalUserCount", "/total-users").Returns(NumberResponse{}))
	return api
}

func writeJSON(v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}
}
