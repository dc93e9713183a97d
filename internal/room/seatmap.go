package room

import "errors"

var (
	// ErrInvalidSeat means the requested index is outside [0, capacity).
	ErrInvalidSeat = errors.New("invalid seat index")

	// ErrSeatOccupied means another participant already holds the seat.
	ErrSeatOccupied = errors.New("seat occupied")

	// ErrParticipantNotFound means the participant is not a member of the room.
	ErrParticipantNotFound = errors.New("participant not found")
)

// SeatMap is a fixed-capacity array of seats. Each seat holds at most one
// participant id. The seat slot and the participant's SeatIndex field are
// always written together by Assign/Release so the back-pointer can never
// be observed out of sync.
type SeatMap struct {
	occupants []string // participant id per index, "" when empty
}

// NewSeatMap creates a seat map with the given capacity.
func NewSeatMap(capacity int) *SeatMap {
	return &SeatMap{occupants: make([]string, capacity)}
}

// Capacity returns the number of seats.
func (m *SeatMap) Capacity() int {
	return len(m.occupants)
}

// Occupant returns the participant id holding the seat, or "" if empty or
// the index is out of range.
func (m *SeatMap) Occupant(index int) string {
	if index < 0 || index >= len(m.occupants) {
		return ""
	}
	return m.occupants[index]
}

// Assign seats the participant at index. Checks run in priority order:
// index bounds, then occupancy, then participant existence (p == nil).
// On success any seat the participant previously held is released first,
// so a participant never holds two seats, not even transiently.
func (m *SeatMap) Assign(p *Participant, index int) (int, error) {
	if index < 0 || index >= len(m.occupants) {
		return 0, ErrInvalidSeat
	}
	if occ := m.occupants[index]; occ != "" && (p == nil || occ != p.ID) {
		return 0, ErrSeatOccupied
	}
	if p == nil {
		return 0, ErrParticipantNotFound
	}

	if p.SeatIndex >= 0 && p.SeatIndex != index {
		m.occupants[p.SeatIndex] = ""
	}
	m.occupants[index] = p.ID
	p.SeatIndex = index
	return index, nil
}

// Release frees whatever seat the participant holds. No-op if the
// participant is nil or seatless, so repeated calls are safe.
func (m *SeatMap) Release(p *Participant) {
	if p == nil || p.SeatIndex < 0 {
		return
	}
	if p.SeatIndex < len(m.occupants) && m.occupants[p.SeatIndex] == p.ID {
		m.occupants[p.SeatIndex] = ""
	}
	p.SeatIndex = NoSeat
}
