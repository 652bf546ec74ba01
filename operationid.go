package viron

// OperationID returns the id a dashboard uses to invoke e.
//
// An explicit WithOperationID override wins. Otherwise endpoints of a
// top-level group use their bare name and all others use "Group.Endpoint".
func OperationID(g *Group, e *Endpoint) string {
	if id, ok := e.OperationIDOverride(); ok {
		return id
	}
	if g.topLevel {
		return e.name
	}
	return g.name + "." + e.name
}
