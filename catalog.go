package viron

// Catalog indexes an API's groups and endpoints by name.
// It is built once and never mutated, so lookups need no locking.
type Catalog struct {
	order  []string
	groups map[string]catalogGroup
	size   int
}

type catalogGroup struct {
	group     *Group
	endpoints map[string]*Endpoint
}

// NewCatalog snapshots the groups and endpoints of api.
// Groups or endpoints registered on api afterwards are not visible.
func NewCatalog(api *API) *Catalog {
	c := &Catalog{groups: make(map[string]catalogGroup)}
	for _, g := range api.Groups() {
		endpoints := g.Endpoints()
		cg := catalogGroup{
			group:     g,
			endpoints: make(map[string]*Endpoint, len(endpoints)),
		}
		for _, e := range endpoints {
			cg.endpoints[e.name] = e
		}
		if _, seen := c.groups[g.name]; !seen {
			c.order = append(c.order, g.name)
		}
		c.groups[g.name] = cg
		c.size += len(endpoints)
	}
	return c
}

// Lookup resolves id to its group and endpoint.
// Matching is exact and case-sensitive.
func (c *Catalog) Lookup(id Identifier) (*Group, *Endpoint, error) {
	groupName, endpointName, err := id.Parts()
	if err != nil {
		return nil, nil, err
	}

	cg, ok := c.groups[groupName]
	if !ok {
		return nil, nil, Errorf(CodeUnresolvedEndpoint, "endpoint %s not found: no group %q", id, groupName).
			WithDetail("identifier", id.String())
	}
	e, ok := cg.endpoints[endpointName]
	if !ok {
		return nil, nil, Errorf(CodeUnresolvedEndpoint, "endpoint %s not found: group %q has no endpoint %q", id, groupName, endpointName).
			WithDetail("identifier", id.String())
	}
	return cg.group, e, nil
}

// Len returns the number of endpoints in the catalog.
func (c *Catalog) Len() int { return c.size }

// Groups returns the group names in API order.
func (c *Catalog) Groups() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}
