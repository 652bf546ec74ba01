// Package viron describes an HTTP API as named groups of endpoints and binds
// Viron dashboard widgets to those endpoints.
//
// A typical setup declares the API once at startup:
//
//	api := viron.NewAPI("sample").WithVersion("1.0.0")
//	api.Group("User").
//		Add(viron.Get("listUsers", "/users").Returns(viron.TableResponse[User]{}).HandleFunc(listUsers))
//
// Widgets refer to endpoints by identifier, either "User.listUsers" or
// viron.EndpointPair("User", "listUsers"). A Catalog resolves identifiers,
// OperationID derives the id the dashboard calls, and CheckEnvelope makes sure
// the endpoint's success response has the shape the widget expects.
//
// Package oas turns an API plus a page tree (package page) into the augmented
// OpenAPI document served to the dashboard.
package viron
