// Package policy decides whether a requester may read or write a resource
// instance. Decisions are pure functions over the requester identity and the
// resource's ownership fields; nothing here touches the store.
package policy

// Requester identifies who is making the request. The zero value is an
// anonymous requester.
type Requester struct {
	ID            string
	Username      string
	Authenticated bool
}

// Anonymous is the requester used for unauthenticated calls.
var Anonymous = Requester{}

// Resource exposes the ownership facts the policy needs. Domain types
// implement it; an empty OwnerID means the resource has no ownership concept.
type Resource interface {
	OwnerID() string
	// OwnerScoped reports whether reads are restricted to the owner. When
	// true, lookups must also be owner-filtered at the store so a mismatch
	// surfaces as not-found, never as forbidden.
	OwnerScoped() bool
}

// CanRead reports whether r may view res. Unowned and non-scoped resources
// are world-readable, including anonymously.
func CanRead(r Requester, res Resource) bool {
	if !res.OwnerScoped() {
		return true
	}
	return r.Authenticated && r.ID == res.OwnerID()
}

// CanWrite reports whether r may mutate res. Resources without an owner
// accept writes from any authenticated user; that asymmetry with owned
// resources is deliberate, not an oversight.
func CanWrite(r Requester, res Resource) bool {
	if !r.Authenticated {
		return false
	}
	if res.OwnerID() == "" {
		return true
	}
	return r.ID == res.OwnerID()
}
