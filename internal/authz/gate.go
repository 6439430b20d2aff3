package authz

import (
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
)

// Principal is the authenticated caller a gate check runs against.
type Principal struct {
	ID   midentifier.ID
	Role mmodel.Role
}

// Gate decides whether caller may perform verb on resource against a row
// owned by ownerID (nil when no owner has been assigned yet). The
// algorithm:
//
//  1. If the caller's bundle holds VERB_RESOURCE_ANY, allow unconditionally.
//  2. Else if it holds VERB_RESOURCE_OWN and ownerID == caller.ID (or
//     ownerID is nil, meaning "not yet assigned"), allow.
//  3. Else deny with PermissionError.
func Gate(caller Principal, verb Verb, resource Resource, ownerID *midentifier.ID) error {
	b := BundleFor(caller.Role)

	if b.has(New(verb, resource, ScopeAny)) {
		return nil
	}

	if b.has(New(verb, resource, ScopeOwn)) {
		if ownerID == nil || *ownerID == caller.ID {
			return nil
		}
	}

	return constant.PermissionError{Message: "permission denied: " + string(verb) + "_" + string(resource)}
}

// EffectiveOwner resolves the owner a CREATE call should record: a
// caller-declared owner is honored only if the caller holds the ANY
// scope for this resource or declares themselves; any other declared
// owner is a permission error. A nil declaration always defaults to the
// caller.
func EffectiveOwner(caller Principal, resource Resource, declared *midentifier.ID) (midentifier.ID, error) {
	if declared == nil {
		return caller.ID, nil
	}

	if err := Gate(caller, VerbCreate, resource, declared); err != nil {
		return midentifier.Nil, err
	}

	return *declared, nil
}

// RequireRoot denies any caller who does not hold the ROOT role outright.
// Used by operations that have no per-row owner to gate against (e.g.
// creating a new user): Gate's "ownerID == nil allows OWN-scope callers"
// rule exists for CREATE calls that default the owner to the caller, and
// would wrongly let any USER through here too.
func RequireRoot(caller Principal) error {
	if caller.Role != mmodel.RoleRoot {
		return constant.PermissionError{Message: "permission denied: requires ROOT role"}
	}

	return nil
}

// ListScope reports how a LIST call against resource must be filtered for
// caller: nil means no ownership filter is needed (the caller holds ANY
// and sees every row); a non-nil id means results must be restricted to
// rows owned by that id. An error means the caller holds neither scope
// and the list itself is denied.
func ListScope(caller Principal, resource Resource) (*midentifier.ID, error) {
	b := BundleFor(caller.Role)

	if b.has(New(VerbList, resource, ScopeAny)) {
		return nil, nil
	}

	if b.has(New(VerbList, resource, ScopeOwn)) {
		id := caller.ID
		return &id, nil
	}

	return nil, constant.PermissionError{Message: "permission denied: LIST_" + string(resource)}
}
