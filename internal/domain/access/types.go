package access

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleArtist Role = "artist"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleArtist
}

// Collection names an entity collection exposed by the admin panel.
type Collection string

const (
	Artworks    Collection = "artworks"
	Collections Collection = "collections"
	Artists     Collection = "artists"
	Exhibitions Collection = "exhibitions"
	Partners    Collection = "partners"
	Tags        Collection = "tags"
)

// AllCollections is in admin navigation order.
var AllCollections = []Collection{Artworks, Collections, Tags, Artists, Exhibitions, Partners}

type Operation string

const (
	OpList   Operation = "list"
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

func (o Operation) Valid() bool {
	switch o {
	case OpList, OpRead, OpCreate, OpUpdate, OpDelete:
		return true
	}
	return false
}

type Reason string

const (
	ReasonNotAuthenticated Reason = "not-authenticated"
	ReasonInsufficientRole Reason = "insufficient-role"
)

// Actor is the identity a request acts for. The zero value is
// unauthenticated.
type Actor struct {
	AccountID     uint
	Role          Role
	OwnedArtistID string
}

func (a Actor) Authenticated() bool {
	return a.AccountID != 0 && a.Role != ""
}

func (a Actor) IsAdmin() bool {
	return a.Authenticated() && a.Role == RoleAdmin
}
