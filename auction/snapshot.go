// auction/snapshot.go
package auction

import (
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/models"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/room"
)

// RoomStats is the admin RPC view of one room.
type RoomStats struct {
	RoomID        string
	Phase         string
	Participants  int
	Connected     int
	PoolRemaining int
	Unsold        int
}

// snapshotLocked assembles the full room snapshot. Assumes e.mu is held.
func (e *Engine) snapshotLocked() *models.Snapshot {
	r := e.room

	players := make(map[string]*models.ParticipantView, len(r.Participants))
	for id, p := range r.Participants {
		players[id] = &models.ParticipantView{
			Name:      p.Name,
			Balance:   p.Balance,
			Team:      p.Team,
			Connected: p.Connected,
		}
	}

	unsold := make([]models.CandidateView, 0, len(r.Unsold))
	for _, c := range r.Unsold {
		unsold = append(unsold, models.CandidateView{Name: c.Name, Position: c.Position, BasePrice: c.BasePrice})
	}

	snap := &models.Snapshot{
		RoomID:          r.ID,
		HostID:          r.HostID,
		Players:         players,
		CurrentPosition: r.Round.Position,
		CurrentBid:      r.Round.CurrentBid,
		CurrentBidder:   r.Round.CurrentBidder,
		InitialTimeLeft: e.cfg.InitialTime,
		BidTimeLeft:     e.cfg.BidTime,
		AuctionActive:   r.Phase == room.PhaseAwaitingFirstBid || r.Phase == room.PhaseActiveBidding,
		SpinInProgress:  r.Phase == room.PhaseSpinning,
		Phase:           r.Phase.String(),
		Log:             r.Log,
		UnsoldPlayers:   unsold,
		PoolByPosition:  r.PoolCounts(),
	}

	if c := r.Round.Candidate; c != nil {
		snap.CurrentPlayer = &models.CandidateView{Name: c.Name, Position: c.Position, BasePrice: c.BasePrice}
	}
	if e.initial != nil {
		snap.InitialTimeLeft = e.initial.Remaining()
	}
	if e.active != nil {
		snap.BidTimeLeft = e.active.Remaining()
	}
	if snap.AuctionActive {
		snap.NextBid = e.nextBidLocked()
	}
	return snap
}
