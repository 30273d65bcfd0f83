package access

// AllOperations is in the order clients render action buttons.
var AllOperations = []Operation{OpList, OpRead, OpCreate, OpUpdate, OpDelete}

// Capabilities lists, per navigable collection, the operations the actor
// may run. Collections with no allowed operation are absent.
func Capabilities(actor Actor) map[Collection][]Operation {
	out := map[Collection][]Operation{}
	for _, c := range AllCollections {
		var ops []Operation
		for _, op := range AllOperations {
			if Authorize(actor, c, op).Allowed {
				ops = append(ops, op)
			}
		}
		if len(ops) > 0 {
			out[c] = ops
		}
	}
	return out
}

// CanUpload reports whether the actor may use the upload endpoints.
func CanUpload(actor Actor) bool {
	return actor.Authenticated()
}
