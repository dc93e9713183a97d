package signaling

import (
	"encoding/json"

	"auditorium/internal/room"
)

// Inbound event types (client -> coordinator).
const (
	evJoinRoom         = "join-room"
	evPositionUpdate   = "position-update"
	evRequestSeat      = "request-seat"
	evLeaveSeat        = "leave-seat"
	evRequestHost      = "request-host"
	evStartScreenShare = "start-screen-share"
	evStopScreenShare  = "stop-screen-share"
	evAvatarChanged    = "avatar-changed"
	evChatMessage      = "chat-message"
	evVoiceStatus      = "voice-status"
	evVoiceOffer       = "voice-offer"
	evVoiceAnswer      = "voice-answer"
	evVoiceICE         = "voice-ice-candidate"
)

// Outbound event types (coordinator -> clients). position-update,
// avatar-changed, chat-message, voice-status, and the three voice-*
// relays go out under their inbound names.
const (
	evRoomJoined         = "room-joined"
	evParticipantJoined  = "participant-joined"
	evParticipantLeft    = "participant-left"
	evParticipantCount   = "participant-count-update"
	evSeatAssigned       = "seat-assigned"
	evSeatReleased       = "seat-released"
	evSeatRequestDenied  = "seat-request-denied"
	evHostChanged        = "host-changed"
	evScreenShareStarted = "screen-share-started"
	evScreenShareStopped = "screen-share-stopped"
)

// Envelope is the wire frame for every message in both directions.
type Envelope struct {
	Type    string          `json:"type"`
	RoomID  string          `json:"roomId,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`

	// client is the connection that sent the message. Internal to the
	// hub, never serialized.
	client *Client
}

// newEnvelope builds an outbound envelope with a marshaled payload.
func newEnvelope(typ, roomID string, payload any) *Envelope {
	env := &Envelope{Type: typ, RoomID: roomID}
	if payload != nil {
		raw, _ := json.Marshal(payload)
		env.Payload = raw
	}
	return env
}

// Inbound payloads.

type joinRoomPayload struct {
	Participant struct {
		ID       string       `json:"id"`
		Name     string       `json:"name"`
		Color    string       `json:"color"`
		Position room.Vector3 `json:"position"`
	} `json:"participant"`
}

type positionPayload struct {
	Position room.Vector3 `json:"position"`
}

type requestSeatPayload struct {
	SeatIndex int `json:"seatIndex"`
}

type chatPayload struct {
	Message     string `json:"message"`
	DisplayName string `json:"displayName"`
}

type voiceStatusPayload struct {
	Enabled bool `json:"enabled"`
}

type avatarChangedPayload struct {
	ParticipantID string `json:"participantId"`
}

type relayPayload struct {
	TargetParticipantID string          `json:"targetParticipantId"`
	Payload             json.RawMessage `json:"payload"`
}

// Outbound payloads.

// roomSnapshot is delivered only to the joiner as room-joined.
type roomSnapshot struct {
	Participants []*room.Participant `json:"participants"`
	HostID       string              `json:"hostId"`
	ScreenShare  bool                `json:"screenShareActive"`
	SeatCapacity int                 `json:"seatCapacity"`
	IsHost       bool                `json:"isHost"`
}

type participantJoinedPayload struct {
	Participant *room.Participant `json:"participant"`
}

type participantLeftPayload struct {
	ParticipantID string `json:"participantId"`
}

type participantCountPayload struct {
	Count int `json:"count"`
}

type positionBroadcast struct {
	ParticipantID string       `json:"participantId"`
	Position      room.Vector3 `json:"position"`
}

type seatAssignedPayload struct {
	ParticipantID string `json:"participantId"`
	SeatIndex     int    `json:"seatIndex"`
}

type seatReleasedPayload struct {
	ParticipantID string `json:"participantId"`
	SeatIndex     int    `json:"seatIndex"`
}

type seatDeniedPayload struct {
	SeatIndex int    `json:"seatIndex"`
	Reason    string `json:"reason"`
}

type hostChangedPayload struct {
	HostID string `json:"hostId"`
}

type screenSharePayload struct {
	ParticipantID string `json:"participantId"`
}

type chatBroadcast struct {
	ParticipantID string `json:"participantId"`
	DisplayName   string `json:"displayName"`
	Message       string `json:"message"`
	Timestamp     int64  `json:"timestamp"` // server clock, ms since epoch
}

type voiceStatusBroadcast struct {
	ParticipantID string `json:"participantId"`
	Enabled       bool   `json:"enabled"`
}

type relayedSignal struct {
	SenderID string          `json:"senderId"`
	Payload  json.RawMessage `json:"payload"`
}
