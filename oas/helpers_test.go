package oas

import (
	"github.com/tsutoringo/viron-go"
	"github.com/tsutoringo/viron-go/page"
)

type user struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func newTestAPI() *viron.API {
	api := viron.NewAPI("SampleApi").WithVersion("1.0.0")
	api.Group("User").
		Add(viron.Get("getUser", "/users/{id}").Returns(user{})).
		Add(viron.Get("listUsers", "/users").Returns(viron.TableResponse[user]{}))
	api.Group("Metrics").
		WithPrefix("/metrics").
		Add(viron.Get("getActiveUserCount", "/active-users").Returns(viron.NumberResponse{})).
		Add(viron.Get("getTotalUserCount", "/total-users").Returns(viron.NumberResponse{}))
	return api
}

func dashboardPages(contents ...viron.Content) page.Page {
	if len(contents) == 0 {
		contents = []viron.Content{
			viron.NumberContent("Active", "Metrics", viron.EndpointID("Metrics.getActiveUserCount")),
			viron.TableContent("Users", "User", viron.EndpointID("User.listUsers")),
		}
	}
	return page.NewGroup("Samples", page.NewItem("dash", "Dashboard", contents...))
}
