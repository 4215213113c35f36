package player

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/go-logr/logr"

	"github.com/play/mighty/pkg/mighty"
)

var ErrNoLegalAction = errors.New("no legal action")

// RandomBot plays legal but aimless moves. It opens the bidding at the
// lowest no-trump count, raises now and then, and otherwise passes.
type RandomBot struct {
	rand   *rand.Rand
	logger logr.Logger
}

var _ Player = (*RandomBot)(nil)

// NewRandomBot returns a bot drawing from r. A nil r uses the package source.
func NewRandomBot(r *rand.Rand, logger logr.Logger) *RandomBot {
	return &RandomBot{rand: r, logger: logger}
}

// RandomBots returns a Factory whose bots share seed-derived sources.
func RandomBots(seed uint64, logger logr.Logger) Factory {
	return func(seat mighty.Seat) Player {
		r := rand.New(rand.NewPCG(seed, uint64(seat)))
		return NewRandomBot(r, logger.WithValues("seat", int(seat)))
	}
}

func (b *RandomBot) intN(n int) int {
	if b.rand == nil {
		return rand.IntN(n)
	}
	return b.rand.IntN(n)
}

func (b *RandomBot) Bidding(_ context.Context, s mighty.BiddingState) (*mighty.Contract, error) {
	if s.Contract == nil {
		c := mighty.Contract{Suit: mighty.SuitNone, Count: s.MinEffectiveCount}
		if !c.Valid() {
			c = mighty.Contract{Suit: mighty.Suits[b.intN(len(mighty.Suits))], Count: s.MinEffectiveCount + 1}
		}
		b.logger.V(1).Info("open", "contract", c.String())
		return &c, nil
	}
	if b.intN(4) != 0 {
		return nil, nil
	}
	c := mighty.Contract{Suit: mighty.Suits[b.intN(len(mighty.Suits))], Count: s.MinEffectiveCount + 1}
	if !c.Valid() {
		return nil, nil
	}
	b.logger.V(1).Info("raise", "contract", c.String())
	return &c, nil
}

func (b *RandomBot) DeclarePlan(_ context.Context, s mighty.ExtraExposedState) (mighty.Plan, error) {
	hand := s.Hand.Clone()
	hand.Shuffle(b.rand)

	var partner mighty.PartnerCondition
	switch b.intN(4) {
	case 0:
		partner = mighty.NoPartner()
	case 1:
		deck := mighty.NewDeck()
		partner = mighty.PartnerByCard(deck[b.intN(len(deck))])
	case 2:
		partner = mighty.PartnerByRound(b.intN(mighty.Rounds))
	default:
		partner = mighty.PartnerBySeat(mighty.Seat(b.intN(mighty.Seats)))
	}

	plan := mighty.Plan{
		Contract: s.Contract,
		Partner:  partner,
		Discards: hand[:mighty.KittySize].Clone(),
	}
	b.logger.V(1).Info("plan", "contract", plan.Contract.String(), "discards", len(plan.Discards))
	return plan, nil
}

func (b *RandomBot) PlayAction(_ context.Context, s mighty.ExposedGameState) (mighty.Action, error) {
	acts := s.LegalActions()
	if len(acts) == 0 {
		return mighty.Action{}, ErrNoLegalAction
	}
	a := acts[b.intN(len(acts))]
	b.logger.V(2).Info("act", "round", s.Round, "action", a.String())
	return a, nil
}
