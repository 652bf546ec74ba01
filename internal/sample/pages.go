package sample

import (
	"embed"

	"github.com/tsutoringo/viron-go"
	"github.com/tsutoringo/viron-go/page"
)

//go:embed pages.yaml
var files embed.FS

// Pages returns the sample dashboard: one "Samples" group holding the user
// dashboard with the active user count and the user table.
func Pages() page.Page {
	return page.NewGroup("Samples",
		page.NewItem("user-dashboard", "ユーザーダッシュボード",
			viron.NumberContent("Active Users", "Metrics", viron.EndpointID("Metrics.getActiveUserCount")),
			viron.TableContent("All Users", "User", viron.EndpointID("User.listUsers")),
		).WithDescription("Example Viron page wiring user endpoints"),
	)
}

// PagesFromYAML loads the embedded YAML version of the sample dashboard,
// which also shows the total user count.
func PagesFromYAML() (page.Page, error) {
	return page.LoadFS(files, "pages.yaml")
}
