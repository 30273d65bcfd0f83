package exhibitions

type OwnerType string

const (
	OwnerPlatform OwnerType = "platform"
	OwnerPartner  OwnerType = "partner"
)

func (o OwnerType) Valid() bool {
	return o == OwnerPlatform || o == OwnerPartner
}

// Ref is either a platform or a partner exhibition. Exactly one of Platform
// and Partner is set, matching Owner.
type Ref struct {
	Owner    OwnerType
	Platform *Exhibition
	Partner  *PartnerExhibition
}

func PlatformRef(e Exhibition) Ref {
	return Ref{Owner: OwnerPlatform, Platform: &e}
}

func PartnerRef(e PartnerExhibition) Ref {
	return Ref{Owner: OwnerPartner, Partner: &e}
}

func (r Ref) ID() string {
	switch r.Owner {
	case OwnerPlatform:
		return r.Platform.ID
	case OwnerPartner:
		return r.Partner.ID
	}
	return ""
}

func (r Ref) Title() string {
	switch r.Owner {
	case OwnerPlatform:
		return r.Platform.Title
	case OwnerPartner:
		return r.Partner.Title
	}
	return ""
}

func (r Ref) Status() Status {
	switch r.Owner {
	case OwnerPlatform:
		return r.Platform.Status
	case OwnerPartner:
		return r.Partner.Status
	}
	return ""
}
