package viron

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/tsutoringo/viron-go/testutil"
)

func TestNewAPI(t *testing.T) {
	api := NewAPI("sample")
	if api.Name() != "sample" {
		t.Errorf("expected name 'sample', got %q", api.Name())
	}
	if api.Version() != "0.0.1" {
		t.Errorf("expected default version 0.0.1, got %q", api.Version())
	}
	if len(api.Groups()) != 0 {
		t.Errorf("expected no groups, got %d", len(api.Groups()))
	}
}

func TestAPI_With(t *testing.T) {
	transform := func(doc *openapi3.T) *openapi3.T { return doc }
	api := NewAPI("sample").
		WithVersion("2.0.0").
		WithDescription("desc").
		WithServer("http://localhost:3350").
		WithTransform(transform)

	if api.Version() != "2.0.0" {
		t.Errorf("expected version 2.0.0, got %q", api.Version())
	}
	if api.Description() != "desc" {
		t.Errorf("expected description, got %q", api.Description())
	}
	if servers := api.Servers(); len(servers) != 1 || servers[0] != "http://localhost:3350" {
		t.Errorf("expected one server, got %v", servers)
	}
	if api.Transform() == nil {
		t.Error("expected transform to be set")
	}
}

func TestAPI_Group(t *testing.T) {
	api := NewAPI("sample")
	u1 := api.Group("User")
	api.Group("Metrics")
	u2 := api.Group("User")

	if u1 != u2 {
		t.Error("expected Group to return the existing group")
	}
	groups := api.Groups()
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Name() != "User" || groups[1].Name() != "Metrics" {
		t.Errorf("expected registration order [User Metrics], got [%s %s]", groups[0].Name(), groups[1].Name())
	}
}

func TestAPI_Extend(t *testing.T) {
	api := newTestAPI()
	extra := NewGroup("Viron").WithTopLevel()

	extended := api.Extend(extra)

	if len(api.Groups()) != 2 {
		t.Errorf("expected original API to keep 2 groups, got %d", len(api.Groups()))
	}
	groups := extended.Groups()
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[2] != extra {
		t.Error("expected extra group to be appended last")
	}
	if extended.Name() != api.Name() || extended.Version() != api.Version() {
		t.Error("expected extended API to keep name and version")
	}
}

func TestGroup_Add(t *testing.T) {
	g := NewGroup("User").
		Add(Get("getUser", "/users/{id}")).
		Add(Get("listUsers", "/users"))

	endpoints := g.Endpoints()
	if len(endpoints) != 2 {
		t.Fatalf("expected 2 endpoints, got %d", len(endpoints))
	}
	if endpoints[0].Name() != "getUser" || endpoints[1].Name() != "listUsers" {
		t.Errorf("expected registration order, got [%s %s]", endpoints[0].Name(), endpoints[1].Name())
	}
	if g.Endpoint("listUsers") != endpoints[1] {
		t.Error("expected Endpoint to find listUsers")
	}
	if g.Endpoint("ListUsers") != nil {
		t.Error("expected Endpoint lookup to be case-sensitive")
	}
}

func TestGroup_AddDuplicate(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	api := NewAPI("sample").WithLogger(logger)
	g := api.Group("User")
	g.Add(Get("listUsers", "/users"))
	replacement := Post("listUsers", "/users/search")
	g.Add(replacement)

	if len(g.Endpoints()) != 1 {
		t.Fatalf("expected duplicate to replace, got %d endpoints", len(g.Endpoints()))
	}
	if g.Endpoint("listUsers") != replacement {
		t.Error("expected the later registration to win")
	}
	if !strings.Contains(buf.String(), "duplicate endpoint registration") {
		t.Errorf("expected duplicate warning in log, got %q", buf.String())
	}
}

func TestGroup_AddNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil endpoint")
		}
	}()
	NewGroup("User").Add(nil)
}

func TestEndpoint(t *testing.T) {
	e := Post("createUser", "/users").
		WithOperationID("users.create").
		WithSummary("Create").
		WithDescription("Creates a user")

	if e.Method() != http.MethodPost {
		t.Errorf("expected POST, got %s", e.Method())
	}
	if e.Path() != "/users" {
		t.Errorf("expected /users, got %s", e.Path())
	}
	if id, ok := e.OperationIDOverride(); !ok || id != "users.create" {
		t.Errorf("expected override users.create, got %q %v", id, ok)
	}
	if e.Summary() != "Create" || e.Description() != "Creates a user" {
		t.Error("expected summary and description to be set")
	}
	if _, ok := Get("x", "/x").OperationIDOverride(); ok {
		t.Error("expected no override by default")
	}
}

func TestEndpoint_Returns(t *testing.T) {
	e := Get("listUsers", "/users").Returns(TableResponse[testUser]{})

	s := e.Success()
	if s == nil || s.Value == nil {
		t.Fatal("expected success schema")
	}
	list := s.Value.Properties["list"]
	if list == nil || !list.Value.Type.Is(openapi3.TypeArray) {
		t.Fatalf("expected list array property, got %+v", s.Value.Properties)
	}
	if list.Value.Items.Value.Properties["email"] == nil {
		t.Error("expected list items to describe testUser")
	}

	if Get("x", "/x").Returns(nil).Success() != nil {
		t.Error("expected Returns(nil) to clear the schema")
	}
}

func TestAPI_Mount(t *testing.T) {
	h := newTestAPI().Handler()

	w := testutil.NewRequest().GET("/metrics/active-users").Serve(h)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSONResponse(t, w, NumberResponse{Number: 3})

	w = testutil.NewRequest().GET("/users").Serve(h)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSONResponse(t, w, map[string]any{"list": []any{}})

	// Described but not routed: no handler.
	w = testutil.NewRequest().GET("/metrics/total-users").Serve(h)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
