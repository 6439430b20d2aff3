// Package authz implements the fixed permission enumeration and gate
// algorithm: every action a caller attempts maps to one
// VERB_RESOURCE_SCOPE permission, ROOT and USER each carry a fixed bundle
// of those permissions, and a single Gate function decides allow/deny.
package authz

import "github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"

// Verb is the action half of a permission.
type Verb string

const (
	VerbCreate Verb = "CREATE"
	VerbGet    Verb = "GET"
	VerbList   Verb = "LIST"
	VerbUpdate Verb = "UPDATE"
	VerbDelete Verb = "DELETE"
)

// Resource is the target half of a permission.
type Resource string

const (
	ResourceUser     Resource = "USER"
	ResourceAPIKey   Resource = "APIKEY"
	ResourceSpace    Resource = "SPACE"
	ResourceMemory   Resource = "MEMORY"
	ResourceEmbedder Resource = "EMBEDDER"
)

// Scope narrows a permission to rows the caller owns (OWN) or any row
// regardless of owner (ANY).
type Scope string

const (
	ScopeOwn Scope = "OWN"
	ScopeAny Scope = "ANY"
)

// Permission is one VERB_RESOURCE_SCOPE triple, e.g. CREATE_SPACE_OWN.
type Permission struct {
	Verb     Verb
	Resource Resource
	Scope    Scope
}

// New builds a Permission from its three parts.
func New(v Verb, r Resource, s Scope) Permission {
	return Permission{Verb: v, Resource: r, Scope: s}
}

// bundle is the fixed set of permissions a role carries, represented as a
// set for O(1) membership tests.
type bundle map[Permission]struct{}

func newBundle(perms ...Permission) bundle {
	b := make(bundle, len(perms))
	for _, p := range perms {
		b[p] = struct{}{}
	}

	return b
}

func (b bundle) has(p Permission) bool {
	_, ok := b[p]
	return ok
}

var (
	// userBundle is every OWN-scoped permission across all five
	// resources: a USER may CRUD only what they own.
	userBundle = newBundle(
		allOwnPermissions()...,
	)

	// rootBundle is every ANY-scoped permission across all five
	// resources, plus everything USER already carries: ROOT may act on
	// any row regardless of ownership.
	rootBundle = newBundle(
		append(allOwnPermissions(), allAnyPermissions()...)...,
	)
)

func resources() []Resource {
	return []Resource{ResourceUser, ResourceAPIKey, ResourceSpace, ResourceMemory, ResourceEmbedder}
}

func verbs() []Verb {
	return []Verb{VerbCreate, VerbGet, VerbList, VerbUpdate, VerbDelete}
}

func allOwnPermissions() []Permission {
	var out []Permission
	for _, r := range resources() {
		for _, v := range verbs() {
			out = append(out, New(v, r, ScopeOwn))
		}
	}

	return out
}

func allAnyPermissions() []Permission {
	var out []Permission
	for _, r := range resources() {
		for _, v := range verbs() {
			out = append(out, New(v, r, ScopeAny))
		}
	}

	return out
}

// BundleFor returns the fixed permission bundle a role carries.
func BundleFor(role mmodel.Role) bundle {
	if role == mmodel.RoleRoot {
		return rootBundle
	}

	return userBundle
}
