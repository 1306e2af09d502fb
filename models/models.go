// models/models.go
package models

// LogEntry is one line of the room's auction log.
// Kind is one of: join, spin, bid, skip, win, unsold, info.
type LogEntry struct {
	Kind string `json:"type"`
	Text string `json:"text"`
}

// RosterEntry is a candidate a participant has won, with the hammer price.
type RosterEntry struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// ParticipantView is the public view of one participant in a snapshot.
type ParticipantView struct {
	Name      string        `json:"name"`
	Balance   int           `json:"balance"`
	Team      []RosterEntry `json:"team"`
	Connected bool          `json:"active"`
}

// CandidateView is the public view of a catalog entry.
type CandidateView struct {
	Name      string `json:"name"`
	Position  string `json:"position"`
	BasePrice int    `json:"basePrice"`
}

// Snapshot is the full room state pushed to every member after each change
// and on every countdown tick.
type Snapshot struct {
	RoomID          string                      `json:"roomId"`
	HostID          string                      `json:"hostId"`
	Players         map[string]*ParticipantView `json:"players"`
	CurrentPlayer   *CandidateView              `json:"currentPlayer,omitempty"`
	CurrentPosition string                      `json:"currentPosition,omitempty"`
	CurrentBid      int                         `json:"currentBid"`
	CurrentBidder   string                      `json:"currentBidder,omitempty"`
	NextBid         int                         `json:"nextBid"`
	InitialTimeLeft int                         `json:"initialTimeLeft"`
	BidTimeLeft     int                         `json:"bidTimeLeft"`
	AuctionActive   bool                        `json:"auctionActive"`
	SpinInProgress  bool                        `json:"spinInProgress"`
	Phase           string                      `json:"phase"`
	Log             []LogEntry                  `json:"log"`
	UnsoldPlayers   []CandidateView             `json:"unsoldPlayers"`
	PoolByPosition  map[string]int              `json:"poolByPosition"`
}

// CreateRoomRequest is the createRoom command payload.
type CreateRoomRequest struct {
	Name string `json:"name"`
}

// JoinRoomRequest is the joinRoom command payload.
type JoinRoomRequest struct {
	RoomID string `json:"roomId"`
	Name   string `json:"name"`
}

// RoomJoined is the one-shot reply to createRoom/joinRoom.
type RoomJoined struct {
	RoomID string `json:"roomId"`
}

// WheelResult is the one-shot wheel event. Index points into the fixed
// position list so clients can animate before the snapshot reveals the
// drawn candidate.
type WheelResult struct {
	Index int `json:"index"`
}

// Reject is a targeted rejection notice sent only to the offending sender.
type Reject struct {
	Command string `json:"command"`
	Reason  string `json:"reason"`
}
