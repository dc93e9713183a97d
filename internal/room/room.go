package room

// NoSeat marks a participant that holds no seat.
const NoSeat = -1

// Vector3 is an advisory world position. The coordinator relays it but
// never derives seat or host state from it.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Participant is one connected identity inside a room. The ID is supplied
// by the client and survives reconnects, so a rejoin with a known ID
// refreshes this struct instead of duplicating it.
type Participant struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	Position  Vector3 `json:"position"`
	SeatIndex int     `json:"seatIndex"` // NoSeat when unseated
}

// Attributes are the client-settable display fields of a participant.
type Attributes struct {
	Name     string
	Color    string
	Position Vector3
}

// Room aggregates the participants, seats, host, and screen-share flag for
// one shared session. Membership keeps insertion order because host
// succession picks the earliest remaining joiner. Rooms are not safe for
// concurrent use; the hub serializes all access (see signaling.Hub).
type Room struct {
	ID string

	participants map[string]*Participant
	order        []string // participant ids, insertion order

	hostID      string // "" when the room is empty
	seats       *SeatMap
	ScreenShare bool
}

// New creates an empty room with the given seat capacity.
func New(id string, seatCapacity int) *Room {
	return &Room{
		ID:           id,
		participants: make(map[string]*Participant),
		seats:        NewSeatMap(seatCapacity),
	}
}

// Len returns the current participant count.
func (r *Room) Len() int {
	return len(r.participants)
}

// HostID returns the current host's participant id, or "" for an empty room.
func (r *Room) HostID() string {
	return r.hostID
}

// Seats exposes the room's seat map.
func (r *Room) Seats() *SeatMap {
	return r.seats
}

// Participant looks up a member by id.
func (r *Room) Participant(id string) (*Participant, bool) {
	p, ok := r.participants[id]
	return p, ok
}

// Participants returns all members in insertion order.
func (r *Room) Participants() []*Participant {
	out := make([]*Participant, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.participants[id])
	}
	return out
}

// JoinResult describes the outcome of a Join.
type JoinResult struct {
	Participant *Participant
	Rejoined    bool // id was already a member; attributes were refreshed
	IsHost      bool
}

// Join adds the participant, or refreshes an existing member in place when
// the id is already present. The first participant ever added becomes host.
func (r *Room) Join(id string, attrs Attributes) JoinResult {
	if p, ok := r.participants[id]; ok {
		p.Name = attrs.Name
		p.Color = attrs.Color
		p.Position = attrs.Position
		return JoinResult{Participant: p, Rejoined: true, IsHost: r.hostID == id}
	}

	p := &Participant{
		ID:        id,
		Name:      attrs.Name,
		Color:     attrs.Color,
		Position:  attrs.Position,
		SeatIndex: NoSeat,
	}
	r.participants[id] = p
	r.order = append(r.order, id)

	if r.hostID == "" {
		r.hostID = id
	}
	return JoinResult{Participant: p, IsHost: r.hostID == id}
}

// LeaveResult describes the outcome of a Leave.
type LeaveResult struct {
	Removed     bool
	HostChanged bool
	NewHostID   string // "" when the room emptied
}

// Leave removes the participant, releases its seat, and promotes the
// insertion-order-first remaining member when the host departs. Calling it
// again for an already-departed id is a no-op.
func (r *Room) Leave(id string) LeaveResult {
	p, ok := r.participants[id]
	if !ok {
		return LeaveResult{}
	}

	r.seats.Release(p)
	delete(r.participants, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	res := LeaveResult{Removed: true}
	if r.hostID == id {
		r.hostID = ""
		if len(r.order) > 0 {
			r.hostID = r.order[0]
		}
		res.HostChanged = true
		res.NewHostID = r.hostID
	}
	return res
}

// RequestHost grants host to the requester only while the role is vacant
// (or already theirs). A request while someone else is host is silently
// ignored; two clients racing for a vacant seat is harmless and the loser
// simply sees the winner's host-changed broadcast. Returns whether the
// host actually changed.
func (r *Room) RequestHost(id string) bool {
	if _, ok := r.participants[id]; !ok {
		return false
	}
	if r.hostID != "" {
		return false
	}
	r.hostID = id
	return true
}

// SetScreenShare toggles the room's screen-share flag. Only the host may
// toggle it; requests from anyone else are silently ignored. Returns
// whether the flag actually changed.
func (r *Room) SetScreenShare(id string, active bool) bool {
	if id != r.hostID || id == "" {
		return false
	}
	if r.ScreenShare == active {
		return false
	}
	r.ScreenShare = active
	return true
}

// UpdatePosition records an advisory position. Returns false if the
// participant is unknown.
func (r *Room) UpdatePosition(id string, pos Vector3) bool {
	p, ok := r.participants[id]
	if !ok {
		return false
	}
	p.Position = pos
	return true
}

// AssignSeat seats the participant, releasing any seat they already held.
// The nil lookup result flows into SeatMap.Assign so the error precedence
// (bounds, occupancy, membership) lives in one place.
func (r *Room) AssignSeat(id string, index int) (int, error) {
	return r.seats.Assign(r.participants[id], index)
}

// ReleaseSeat frees the participant's seat, if any. Returns the index that
// was released, or NoSeat.
func (r *Room) ReleaseSeat(id string) int {
	p, ok := r.participants[id]
	if !ok || p.SeatIndex < 0 {
		return NoSeat
	}
	released := p.SeatIndex
	r.seats.Release(p)
	return released
}
