package room

import "sync"

// Registry is the process-wide map of live rooms. Rooms are created on
// first join and deleted as soon as they empty; SweepEmpty is a periodic
// backstop for anything that slips through. The registry carries its own
// lock because room creation/deletion is shared state independent of any
// single room's mutations.
type Registry struct {
	mu           sync.Mutex
	rooms        map[string]*Room
	seatCapacity int
}

// NewRegistry creates an empty registry. Rooms it creates get the given
// seat capacity.
func NewRegistry(seatCapacity int) *Registry {
	return &Registry{
		rooms:        make(map[string]*Room),
		seatCapacity: seatCapacity,
	}
}

// GetOrCreate returns the room for id, creating it if unknown. The second
// result reports whether the room was created by this call.
func (reg *Registry) GetOrCreate(id string) (*Room, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if r, ok := reg.rooms[id]; ok {
		return r, false
	}
	r := New(id, reg.seatCapacity)
	reg.rooms[id] = r
	return r, true
}

// Get returns the room for id, if it exists.
func (reg *Registry) Get(id string) (*Room, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	r, ok := reg.rooms[id]
	return r, ok
}

// Has reports whether a room with the given id exists. Used by the room
// code generator to avoid handing out an id already in use.
func (reg *Registry) Has(id string) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	_, ok := reg.rooms[id]
	return ok
}

// Delete removes the room with the given id.
func (reg *Registry) Delete(id string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	delete(reg.rooms, id)
}

// Len returns the number of live rooms.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	return len(reg.rooms)
}

// SweepEmpty removes every room with zero participants and returns the
// removed ids. Callers must ensure no room mutation is in flight; the hub
// runs this from its event loop.
func (reg *Registry) SweepEmpty() []string {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	var removed []string
	for id, r := range reg.rooms {
		if r.Len() == 0 {
			delete(reg.rooms, id)
			removed = append(removed, id)
		}
	}
	return removed
}
