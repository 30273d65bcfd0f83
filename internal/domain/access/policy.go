package access

import "cradle-api/internal/domain/apperr"

// Filter is the row-level restriction to apply to a query. The zero value
// means no restriction.
type Filter struct {
	OwnerArtistID string
}

func OwnerEquals(artistID string) Filter {
	return Filter{OwnerArtistID: artistID}
}

func (f Filter) Restricted() bool {
	return f.OwnerArtistID != ""
}

// ForceOwner returns the owner a new record must get. A restricted filter
// always wins over whatever the caller asked for.
func (f Filter) ForceOwner(requested string) string {
	if f.Restricted() {
		return f.OwnerArtistID
	}
	return requested
}

// Permits reports whether a row owned by artistID passes the filter.
func (f Filter) Permits(artistID string) bool {
	return !f.Restricted() || f.OwnerArtistID == artistID
}

type Decision struct {
	Allowed bool
	Filter  Filter
	Reason  Reason
}

func allow(f Filter) Decision { return Decision{Allowed: true, Filter: f} }

func deny(r Reason) Decision { return Decision{Reason: r} }

// Err converts a denial into the error taxonomy; nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	if d.Reason == ReasonNotAuthenticated {
		return apperr.NotAuthenticated("login required")
	}
	return apperr.InsufficientRole("access denied")
}

// Authorize decides whether actor may run op against collection and, if so,
// which rows it sees. It is a pure function of its arguments.
func Authorize(actor Actor, collection Collection, op Operation) Decision {
	if !actor.Authenticated() {
		return deny(ReasonNotAuthenticated)
	}
	if !op.Valid() {
		return deny(ReasonInsufficientRole)
	}

	switch actor.Role {
	case RoleAdmin:
		switch collection {
		case Artworks, Collections, Artists, Exhibitions, Partners, Tags:
			return allow(Filter{})
		}
		return deny(ReasonInsufficientRole)

	case RoleArtist:
		switch collection {
		case Artworks, Collections:
			// an artist without a profile has nothing to own
			if actor.OwnedArtistID == "" {
				return deny(ReasonInsufficientRole)
			}
			return allow(OwnerEquals(actor.OwnedArtistID))
		default:
			return deny(ReasonInsufficientRole)
		}
	}

	return deny(ReasonInsufficientRole)
}

// Navigable lists the collections the actor may list, in navigation order.
func Navigable(actor Actor) []Collection {
	out := make([]Collection, 0, len(AllCollections))
	for _, c := range AllCollections {
		if Authorize(actor, c, OpList).Allowed {
			out = append(out, c)
		}
	}
	return out
}
