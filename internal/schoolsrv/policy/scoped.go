package policy

import "github.com/siakadlabs/siakad-internal/pkg/types"

// Scoped is implemented by every tenant-owned record. The db/models
// structs satisfy it; policy functions never see concrete model types.
type Scoped interface {
	ScopeTenantID() types.TenantId
	EntityKind() string
	EntityID() string
}

// Ref names a record either by id (not yet loaded) or by an already
// loaded value. Exactly one of the two forms is set; resolution of a
// Loaded ref must still pass the access guard, so a caller cannot
// smuggle a foreign-tenant record past it by pre-loading.
type Ref[T Scoped] struct {
	id     string
	loaded T
	byID   bool
}

// ByID returns a Ref that will be loaded through a tenant-scoped query.
func ByID[T Scoped](id string) Ref[T] {
	return Ref[T]{id: id, byID: true}
}

// Loaded wraps a record that is already in hand.
func Loaded[T Scoped](v T) Ref[T] {
	return Ref[T]{loaded: v}
}

// ID returns the identifier the Ref was built with. For a Loaded ref
// this is the record's own id.
func (r Ref[T]) ID() string {
	if r.byID {
		return r.id
	}
	return r.loaded.EntityID()
}

// IsByID reports whether the Ref still needs a load.
func (r Ref[T]) IsByID() bool {
	return r.byID
}
