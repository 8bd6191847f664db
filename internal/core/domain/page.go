package domain

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Page is a skip/limit window over a listing.
type Page struct {
	Skip  int
	Limit int
}

// Normalize fills in the default limit and clamps to MaxLimit.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}
