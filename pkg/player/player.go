package player

import (
	"context"

	"github.com/play/mighty/pkg/mighty"
)

// Player makes the decisions for one seat. Each call receives only that
// seat's projection of the game.
type Player interface {
	// Bidding returns a bid, or nil to pass.
	Bidding(ctx context.Context, s mighty.BiddingState) (*mighty.Contract, error)
	// DeclarePlan is only asked of the declarer.
	DeclarePlan(ctx context.Context, s mighty.ExtraExposedState) (mighty.Plan, error)
	PlayAction(ctx context.Context, s mighty.ExposedGameState) (mighty.Action, error)
}

// Factory builds the player for a seat.
type Factory func(seat mighty.Seat) Player

// Seats builds one player per seat.
func (f Factory) Seats() []Player {
	out := make([]Player, mighty.Seats)
	for i := range out {
		out[i] = f(mighty.Seat(i))
	}
	return out
}
