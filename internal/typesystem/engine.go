package typesystem

import (
	"sync"

	"github.com/FuelLabs/sway-sub007/internal/config"
)

// TypeId is an opaque handle into a TypeEngine. Two handles compare equal
// only when they reference the identical slot; structurally identical types
// inserted separately get distinct handles, so never decide equality by
// comparing handles. Ask Check instead.
type TypeId uint32

// TypeEngine is the growable store of type descriptors for one compilation
// run. It is created empty at run start and discarded at run end; slots are
// never removed. Insertion is guarded by a single-writer lock so
// concurrently checked modules may intern types safely.
type TypeEngine struct {
	mu   sync.RWMutex
	slab []TypeInfo
}

// NewTypeEngine returns an engine with the error-recovery marker pre-seeded
// at slot zero, so the zero TypeId is always a safe recovery value.
func NewTypeEngine() *TypeEngine {
	return &TypeEngine{slab: []TypeInfo{TErrorRecovery{}}}
}

// Insert stores a descriptor and returns its handle. It always succeeds and
// never deduplicates: repeated insertion of identical descriptors yields
// distinct handles.
func (e *TypeEngine) Insert(info TypeInfo) TypeId {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := TypeId(len(e.slab))
	e.slab = append(e.slab, info)
	return id
}

// LookUp returns the descriptor behind a handle. It never fails for a
// handle obtained from Insert; an out-of-range handle is a caller bug and
// panics.
func (e *TypeEngine) LookUp(id TypeId) TypeInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if int(id) >= len(e.slab) {
		panic("typesystem: TypeId out of range")
	}
	return e.slab[id]
}

// Replace overwrites the descriptor behind id in place. Collection interns
// placeholder descriptors for names that only become resolvable once imports
// are applied; the post-import resolution pass re-targets those slots, so
// every composite that captured the handle heals without a second walk.
func (e *TypeEngine) Replace(id TypeId, info TypeInfo) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if int(id) >= len(e.slab) {
		panic("typesystem: TypeId out of range")
	}
	e.slab[id] = info
}

// Resolve follows Ref indirections and returns the final handle and its
// descriptor. A Ref cycle (impossible through public construction, guarded
// anyway) resolves to the error-recovery marker.
func (e *TypeEngine) Resolve(id TypeId) (TypeId, TypeInfo) {
	cur := id
	for i := 0; i < config.MaxTypeRecursionDepth; i++ {
		info := e.LookUp(cur)
		ref, ok := info.(TRef)
		if !ok {
			return cur, info
		}
		cur = ref.Target
	}
	return ErrorRecoveryId, TErrorRecovery{}
}

// Len reports how many descriptors have been interned.
func (e *TypeEngine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.slab)
}

// ErrorRecoveryId is the pre-seeded handle of the error-recovery marker.
const ErrorRecoveryId TypeId = 0
