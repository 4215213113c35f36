package mighty

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedDeal splits NewDeck in order: seat i gets deck[10i:10i+10], the kitty
// is {SK, SA, JK}.
func fixedDeal() ([Seats]Cards, Cards) {
	deck := NewDeck()
	var hands [Seats]Cards
	for i := range hands {
		hands[i] = deck[i*HandSize : (i+1)*HandSize].Clone()
	}
	return hands, deck[Seats*HandSize:].Clone()
}

func newFixedPledge(t *testing.T, start Seat) *PledgePhase {
	t.Helper()
	hands, kitty := fixedDeal()
	p, err := NewPledgePhaseFromDeal(start, DefaultMinPledge, hands, kitty)
	require.NoError(t, err)
	return p
}

func contract(s Suit, n int) *Contract {
	return &Contract{Suit: s, Count: n}
}

func TestNewPledgePhase_DealConservation(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		p, err := NewPledgePhase(0, DefaultMinPledge, rand.New(rand.NewPCG(seed, seed)))
		require.NoError(t, err)

		var all Cards
		for _, h := range p.hands {
			assert.Len(t, h, HandSize)
			all = append(all, h...)
		}
		assert.Len(t, p.kitty, KittySize)
		all = append(all, p.kitty...)

		assert.Len(t, all, DeckSize)
		assert.True(t, all.Unique())
		assert.ElementsMatch(t, NewDeck(), all)
	}
}

func TestNewPledgePhase_SeededReplay(t *testing.T) {
	a, err := NewPledgePhase(2, DefaultMinPledge, rand.New(rand.NewPCG(7, 11)))
	require.NoError(t, err)
	b, err := NewPledgePhase(2, DefaultMinPledge, rand.New(rand.NewPCG(7, 11)))
	require.NoError(t, err)
	assert.Equal(t, a.hands, b.hands)
	assert.Equal(t, a.kitty, b.kitty)
}

func TestNewPledgePhaseFromDeal_Invalid(t *testing.T) {
	hands, kitty := fixedDeal()

	_, err := NewPledgePhaseFromDeal(5, DefaultMinPledge, hands, kitty)
	assert.ErrorIs(t, err, ErrInvalidSeat)

	_, err = NewPledgePhaseFromDeal(0, 0, hands, kitty)
	assert.ErrorIs(t, err, ErrInvalidMinPledge)

	dup := hands
	dup[1] = hands[1].Clone()
	dup[1][0] = hands[0][0]
	_, err = NewPledgePhaseFromDeal(0, DefaultMinPledge, dup, kitty)
	assert.ErrorIs(t, err, ErrInvalidDeal)

	_, err = NewPledgePhaseFromDeal(0, DefaultMinPledge, hands, kitty[:2])
	assert.ErrorIs(t, err, ErrInvalidDeal)
}

func TestPledgePhase_QueueStartsAtStartSeat(t *testing.T) {
	p := newFixedPledge(t, 3)
	assert.Equal(t, []Seat{3, 4, 0, 1, 2}, p.Queue())

	seat, err := p.TurnPlayer()
	require.NoError(t, err)
	assert.Equal(t, Seat(3), seat)
}

func TestPledgePhase_BiddingState(t *testing.T) {
	p := newFixedPledge(t, 0)
	s, err := p.BiddingState(2)
	require.NoError(t, err)
	assert.Equal(t, p.hands[2], s.Hand)
	assert.Nil(t, s.Contract)
	assert.Equal(t, DefaultMinPledge-1, s.MinEffectiveCount)

	// the snapshot is not an alias of the phase's hand
	s.Hand[0] = Joker
	assert.NotEqual(t, Joker, p.hands[2][0])

	require.NoError(t, p.PlayerBids(0, contract(SuitHeart, 14)))
	s, err = p.BiddingState(1)
	require.NoError(t, err)
	require.NotNil(t, s.Contract)
	s.Contract.Count = 20
	assert.Equal(t, 14, p.Contract().Count)

	_, err = p.BiddingState(-1)
	assert.ErrorIs(t, err, ErrInvalidSeat)
}

func TestPledgePhase_PlayerBids(t *testing.T) {
	t.Run("out of turn", func(t *testing.T) {
		p := newFixedPledge(t, 0)
		err := p.PlayerBids(1, contract(SuitSpade, 13))
		assert.ErrorIs(t, err, ErrNotYourTurn)
		assert.ErrorIs(t, err, ErrProtocolViolation)
		assert.Empty(t, p.History())
	})

	t.Run("no trump opener at the minimum is legal", func(t *testing.T) {
		p := newFixedPledge(t, 0)
		require.NoError(t, p.PlayerBids(0, contract(SuitNone, 12)))
		assert.Equal(t, 13, p.minEffective)
	})

	t.Run("trump opener below the minimum", func(t *testing.T) {
		p := newFixedPledge(t, 0)
		assert.ErrorIs(t, p.PlayerBids(0, contract(SuitSpade, 12)), ErrBidTooLow)
	})

	t.Run("raise must exceed", func(t *testing.T) {
		p := newFixedPledge(t, 0)
		require.NoError(t, p.PlayerBids(0, contract(SuitSpade, 14)))
		assert.ErrorIs(t, p.PlayerBids(1, contract(SuitHeart, 14)), ErrBidTooLow)
		// no trump at the same count ranks higher
		require.NoError(t, p.PlayerBids(1, contract(SuitNone, 14)))
		assert.ErrorIs(t, p.PlayerBids(2, contract(SuitClub, 15)), ErrBidTooLow)
	})

	t.Run("invalid contract", func(t *testing.T) {
		p := newFixedPledge(t, 0)
		assert.ErrorIs(t, p.PlayerBids(0, contract(SuitJoker, 15)), ErrInvalidContract)
		assert.ErrorIs(t, p.PlayerBids(0, contract(SuitHeart, 21)), ErrInvalidContract)
	})

	t.Run("bid rotates, pass removes", func(t *testing.T) {
		p := newFixedPledge(t, 0)
		require.NoError(t, p.PlayerBids(0, contract(SuitSpade, 13)))
		assert.Equal(t, []Seat{1, 2, 3, 4, 0}, p.Queue())
		require.NoError(t, p.PlayerBids(1, nil))
		assert.Equal(t, []Seat{2, 3, 4, 0}, p.Queue())
		assert.NotContains(t, p.Queue(), Seat(1))

		calls := p.History()
		require.Len(t, calls, 2)
		assert.Equal(t, Seat(0), calls[0].Seat)
		assert.False(t, calls[0].IsPass())
		assert.Equal(t, Seat(1), calls[1].Seat)
		assert.True(t, calls[1].IsPass())
	})
}

func TestPledgePhase_Monotonic(t *testing.T) {
	p := newFixedPledge(t, 0)
	bids := []*Contract{
		contract(SuitNone, 12),
		contract(SuitHeart, 14),
		nil,
		contract(SuitNone, 14),
		contract(SuitSpade, 16),
		contract(SuitSpade, 15), // rejected
		contract(SuitClub, 17),
	}
	for _, b := range bids {
		seat, err := p.TurnPlayer()
		require.NoError(t, err)
		_ = p.PlayerBids(seat, b)
	}

	last := 0
	for _, call := range p.History() {
		if call.IsPass() {
			continue
		}
		assert.Greater(t, call.Contract.EffectiveCount(), last)
		last = call.Contract.EffectiveCount()
	}
	assert.Equal(t, 17, last)
}

func TestPledgePhase_Cancelled(t *testing.T) {
	p := newFixedPledge(t, 2)
	for i := range Seats {
		assert.False(t, p.PledgeDone())
		require.NoError(t, p.PlayerBids(Seat(2).next(i), nil))
	}
	assert.True(t, p.PledgeDone())
	assert.True(t, p.Cancelled())

	_, err := p.TurnPlayer()
	assert.ErrorIs(t, err, ErrNoTurn)
	assert.ErrorIs(t, p.PlayerBids(2, nil), ErrPledgeDone)

	_, err = NewExtraPhase(p)
	assert.ErrorIs(t, err, ErrPledgeCancelled)
}

func TestPledgePhase_DoneWhenOneLeft(t *testing.T) {
	p := newFixedPledge(t, 0)
	require.NoError(t, p.PlayerBids(0, contract(SuitSpade, 13)))
	for _, s := range []Seat{1, 2, 3} {
		require.NoError(t, p.PlayerBids(s, nil))
		assert.False(t, p.PledgeDone())
	}
	require.NoError(t, p.PlayerBids(4, nil))
	assert.True(t, p.PledgeDone())
	assert.False(t, p.Cancelled())

	seat, err := p.TurnPlayer()
	require.NoError(t, err)
	assert.Equal(t, Seat(0), seat)
}

func TestPledgePhase_DoneAtCeiling(t *testing.T) {
	p := newFixedPledge(t, 0)
	require.NoError(t, p.PlayerBids(0, contract(SuitHeart, 20)))
	assert.False(t, p.PledgeDone())
	require.NoError(t, p.PlayerBids(1, contract(SuitNone, 20)))
	assert.True(t, p.PledgeDone())

	seat, err := p.TurnPlayer()
	require.NoError(t, err)
	assert.Equal(t, Seat(1), seat)
	assert.Equal(t, []Seat{1}, p.Queue())

	e, err := NewExtraPhase(p)
	require.NoError(t, err)
	assert.Equal(t, Seat(1), e.Declarer())
}
