package signaling

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"auditorium/internal/room"
)

// Hub is the session gateway: the single goroutine running Run owns every
// room mutation, so no two operations on a room ever interleave. Client
// pumps hand inbound envelopes to the Inbound channel; the hub dispatches
// them, mutates rooms through the registry, and fans resulting events out
// to the connections subscribed to the room. The idle-room sweep runs as a
// ticker case inside the same loop, which gives it the same serialization
// as live events.
type Hub struct {
	registry      *room.Registry
	sweepInterval time.Duration

	// Register is for new connections.
	Register chan *Client

	// Unregister is for closed connections; the hub synthesizes a leave
	// for whatever binding the connection held.
	Unregister chan *Client

	// Inbound carries client events into the loop.
	Inbound chan *Envelope

	clients     map[*Client]struct{}
	subscribers map[string]map[*Client]struct{} // roomID -> connections
}

// NewHub creates a hub over the given registry. sweepInterval bounds how
// long a leaked empty room can linger.
func NewHub(registry *room.Registry, sweepInterval time.Duration) *Hub {
	return &Hub{
		registry:      registry,
		sweepInterval: sweepInterval,
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		Inbound:       make(chan *Envelope),
		clients:       make(map[*Client]struct{}),
		subscribers:   make(map[string]map[*Client]struct{}),
	}
}

// Run drains the hub's channels until ctx is canceled.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.Register:
			h.clients[c] = struct{}{}
			slog.Debug("client registered")

		case c := <-h.Unregister:
			if _, ok := h.clients[c]; !ok {
				continue
			}
			delete(h.clients, c)
			h.leaveCurrentRoom(c)
			close(c.Send)
			slog.Debug("client unregistered", "participantID", c.ParticipantID)

		case env := <-h.Inbound:
			h.dispatch(env)

		case <-ticker.C:
			for _, id := range h.registry.SweepEmpty() {
				slog.Info("swept idle room", "roomID", id)
			}
		}
	}
}

// dispatch routes one inbound envelope. Events for rooms the connection is
// not bound to (late messages, rooms already gone) are ignored; nothing a
// client sends can be fatal.
func (h *Hub) dispatch(env *Envelope) {
	if env.Type == evJoinRoom {
		h.handleJoinRoom(env)
		return
	}

	c := env.client
	if c.RoomID == "" || c.RoomID != env.RoomID {
		slog.Debug("event for unbound room ignored", "type", env.Type, "roomID", env.RoomID)
		return
	}
	r, ok := h.registry.Get(env.RoomID)
	if !ok {
		return
	}

	switch env.Type {
	case evPositionUpdate:
		h.handlePositionUpdate(c, r, env)
	case evRequestSeat:
		h.handleRequestSeat(c, r, env)
	case evLeaveSeat:
		if idx := r.ReleaseSeat(c.ParticipantID); idx != room.NoSeat {
			h.broadcast(r.ID, newEnvelope(evSeatReleased, r.ID, seatReleasedPayload{
				ParticipantID: c.ParticipantID,
				SeatIndex:     idx,
			}))
		}
	case evRequestHost:
		if r.RequestHost(c.ParticipantID) {
			h.broadcast(r.ID, newEnvelope(evHostChanged, r.ID, hostChangedPayload{HostID: r.HostID()}))
		}
	case evStartScreenShare:
		if r.SetScreenShare(c.ParticipantID, true) {
			h.broadcast(r.ID, newEnvelope(evScreenShareStarted, r.ID, screenSharePayload{ParticipantID: c.ParticipantID}))
		}
	case evStopScreenShare:
		if r.SetScreenShare(c.ParticipantID, false) {
			h.broadcast(r.ID, newEnvelope(evScreenShareStopped, r.ID, screenSharePayload{ParticipantID: c.ParticipantID}))
		}
	case evAvatarChanged:
		var p avatarChangedPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return
		}
		h.broadcastExcept(r.ID, c, newEnvelope(evAvatarChanged, r.ID, p))
	case evChatMessage:
		h.handleChatMessage(c, r, env)
	case evVoiceStatus:
		var p voiceStatusPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return
		}
		h.broadcastExcept(r.ID, c, newEnvelope(evVoiceStatus, r.ID, voiceStatusBroadcast{
			ParticipantID: c.ParticipantID,
			Enabled:       p.Enabled,
		}))
	case evVoiceOffer, evVoiceAnswer, evVoiceICE:
		h.relay(c, env)
	default:
		slog.Debug("unknown event type", "type", env.Type)
	}
}

func (h *Hub) handleJoinRoom(env *Envelope) {
	var p joinRoomPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil || p.Participant.ID == "" || env.RoomID == "" {
		slog.Warn("malformed join-room", "err", err)
		return
	}

	c := env.client
	if c.RoomID != "" && c.RoomID != env.RoomID {
		// One room per connection: joining elsewhere leaves the old room
		// first, with the usual departure broadcasts there.
		h.leaveCurrentRoom(c)
	}

	r, created := h.registry.GetOrCreate(env.RoomID)
	if created {
		slog.Info("room created", "roomID", r.ID)
	}

	res := r.Join(p.Participant.ID, room.Attributes{
		Name:     p.Participant.Name,
		Color:    p.Participant.Color,
		Position: p.Participant.Position,
	})

	c.ParticipantID = p.Participant.ID
	c.RoomID = r.ID
	h.subscribe(c)

	// The joiner gets the full snapshot; everyone else a join notice.
	h.send(c, newEnvelope(evRoomJoined, r.ID, roomSnapshot{
		Participants: r.Participants(),
		HostID:       r.HostID(),
		ScreenShare:  r.ScreenShare,
		SeatCapacity: r.Seats().Capacity(),
		IsHost:       res.IsHost,
	}))

	if !res.Rejoined {
		h.broadcastExcept(r.ID, c, newEnvelope(evParticipantJoined, r.ID, participantJoinedPayload{
			Participant: res.Participant,
		}))
		h.broadcastExcept(r.ID, c, newEnvelope(evParticipantCount, r.ID, participantCountPayload{Count: r.Len()}))
	}

	slog.Info("participant joined", "roomID", r.ID, "participantID", c.ParticipantID, "count", r.Len())
}

// leaveCurrentRoom removes the connection's participant from its bound
// room, broadcasting the departure there, and deletes the room when it
// empties. No-op for unbound connections, so disconnect-after-leave is
// harmless.
func (h *Hub) leaveCurrentRoom(c *Client) {
	if c.RoomID == "" {
		return
	}
	roomID := c.RoomID
	h.unsubscribe(c)
	c.RoomID = ""

	r, ok := h.registry.Get(roomID)
	if !ok {
		return
	}
	res := r.Leave(c.ParticipantID)
	if !res.Removed {
		return
	}

	h.broadcast(roomID, newEnvelope(evParticipantLeft, roomID, participantLeftPayload{ParticipantID: c.ParticipantID}))
	h.broadcast(roomID, newEnvelope(evParticipantCount, roomID, participantCountPayload{Count: r.Len()}))
	if res.HostChanged && res.NewHostID != "" {
		h.broadcast(roomID, newEnvelope(evHostChanged, roomID, hostChangedPayload{HostID: res.NewHostID}))
	}

	slog.Info("participant left", "roomID", roomID, "participantID", c.ParticipantID, "count", r.Len())

	if r.Len() == 0 {
		h.registry.Delete(roomID)
		slog.Info("room deleted", "roomID", roomID)
	}
}

func (h *Hub) handlePositionUpdate(c *Client, r *room.Room, env *Envelope) {
	var p positionPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return
	}
	if !r.UpdatePosition(c.ParticipantID, p.Position) {
		return
	}
	h.broadcastExcept(r.ID, c, newEnvelope(evPositionUpdate, r.ID, positionBroadcast{
		ParticipantID: c.ParticipantID,
		Position:      p.Position,
	}))
}

func (h *Hub) handleRequestSeat(c *Client, r *room.Room, env *Envelope) {
	var p requestSeatPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return
	}

	idx, err := r.AssignSeat(c.ParticipantID, p.SeatIndex)
	if err != nil {
		// The one surfaced failure in the protocol: only the requester
		// hears about it, with a machine-readable reason.
		h.send(c, newEnvelope(evSeatRequestDenied, r.ID, seatDeniedPayload{
			SeatIndex: p.SeatIndex,
			Reason:    seatDenialReason(err),
		}))
		return
	}

	h.broadcast(r.ID, newEnvelope(evSeatAssigned, r.ID, seatAssignedPayload{
		ParticipantID: c.ParticipantID,
		SeatIndex:     idx,
	}))
}

func (h *Hub) handleChatMessage(c *Client, r *room.Room, env *Envelope) {
	var p chatPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return
	}
	h.broadcast(r.ID, newEnvelope(evChatMessage, r.ID, chatBroadcast{
		ParticipantID: c.ParticipantID,
		DisplayName:   p.DisplayName,
		Message:       p.Message,
		Timestamp:     time.Now().UnixMilli(),
	}))
}

// relay forwards an opaque negotiation payload to the one live connection
// bound to (room, target participant), tagged with the sender. Unresolved
// targets are dropped silently; negotiation layers above retry on their
// own.
func (h *Hub) relay(c *Client, env *Envelope) {
	var p relayPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return
	}

	target := h.resolveTarget(env.RoomID, p.TargetParticipantID)
	if target == nil {
		slog.Debug("relay target not found", "type", env.Type, "roomID", env.RoomID, "targetID", p.TargetParticipantID)
		return
	}

	h.send(target, newEnvelope(env.Type, env.RoomID, relayedSignal{
		SenderID: c.ParticipantID,
		Payload:  p.Payload,
	}))
}

// resolveTarget scans the room's connections for the participant. Linear,
// but rooms hold tens of participants; an index can replace this without
// touching the relay contract.
func (h *Hub) resolveTarget(roomID, participantID string) *Client {
	for c := range h.subscribers[roomID] {
		if c.ParticipantID == participantID {
			return c
		}
	}
	return nil
}

func (h *Hub) subscribe(c *Client) {
	subs, ok := h.subscribers[c.RoomID]
	if !ok {
		subs = make(map[*Client]struct{})
		h.subscribers[c.RoomID] = subs
	}
	subs[c] = struct{}{}
}

func (h *Hub) unsubscribe(c *Client) {
	if subs, ok := h.subscribers[c.RoomID]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.subscribers, c.RoomID)
		}
	}
}

// broadcast delivers the envelope to every connection in the room.
func (h *Hub) broadcast(roomID string, env *Envelope) {
	for c := range h.subscribers[roomID] {
		h.send(c, env)
	}
}

// broadcastExcept delivers to everyone in the room but the acting client.
func (h *Hub) broadcastExcept(roomID string, except *Client, env *Envelope) {
	for c := range h.subscribers[roomID] {
		if c != except {
			h.send(c, env)
		}
	}
}

// send is best-effort: a client whose buffer is full loses the event
// instead of stalling the event loop.
func (h *Hub) send(c *Client, env *Envelope) {
	select {
	case c.Send <- env:
	default:
		slog.Warn("client send buffer full, dropping event", "type", env.Type, "participantID", c.ParticipantID)
	}
}

// seatDenialReason maps seat assignment errors to wire reason strings.
func seatDenialReason(err error) string {
	switch {
	case errors.Is(err, room.ErrInvalidSeat):
		return "InvalidSeat"
	case errors.Is(err, room.ErrSeatOccupied):
		return "SeatOccupied"
	case errors.Is(err, room.ErrParticipantNotFound):
		return "ParticipantNotFound"
	default:
		return "ParticipantNotFound"
	}
}
