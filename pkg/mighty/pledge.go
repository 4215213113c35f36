package mighty

import (
	"math/rand/v2"
	"slices"
)

// BiddingState is what one seat sees while bidding.
type BiddingState struct {
	Seat     Seat
	Hand     Cards
	Contract *Contract // current winning contract, nil before the first bid
	// MinEffectiveCount is the value a new bid's effective count must exceed.
	MinEffectiveCount int
}

// PledgePhase runs the bidding. Seats bid in queue order; a bid sends the
// bidder to the back of the queue, a pass drops it for good.
type PledgePhase struct {
	hands        [Seats]Cards
	contract     *Contract
	history      []Call
	queue        []Seat
	kitty        Cards
	minEffective int
	consumed     bool
}

// NewPledgePhase deals a shuffled deck and opens the bidding at start.
// A nil r uses the package random source.
func NewPledgePhase(start Seat, minPledge int, r *rand.Rand) (*PledgePhase, error) {
	deck := NewDeck()
	deck.Shuffle(r)
	var hands [Seats]Cards
	for i := range hands {
		hands[i] = deck[i*HandSize : (i+1)*HandSize].Clone()
	}
	return NewPledgePhaseFromDeal(start, minPledge, hands, deck[Seats*HandSize:].Clone())
}

// NewPledgePhaseFromDeal opens the bidding over a fixed deal, which must
// partition the deck into five 10-card hands and a 3-card kitty.
func NewPledgePhaseFromDeal(start Seat, minPledge int, hands [Seats]Cards, kitty Cards) (*PledgePhase, error) {
	if !start.Valid() {
		return nil, ErrInvalidSeat
	}
	if minPledge < 1 || minPledge > MaxCount {
		return nil, ErrInvalidMinPledge
	}
	if err := checkDeal(hands, kitty); err != nil {
		return nil, err
	}
	p := &PledgePhase{
		kitty: kitty.Clone(),
		queue: make([]Seat, 0, Seats),
		// a no-trump opener at exactly minPledge is legal
		minEffective: minPledge - 1,
	}
	for i := range hands {
		p.hands[i] = hands[i].Clone()
	}
	for i := range Seats {
		p.queue = append(p.queue, start.next(i))
	}
	return p, nil
}

func checkDeal(hands [Seats]Cards, kitty Cards) error {
	if len(kitty) != KittySize {
		return ErrInvalidDeal
	}
	all := kitty.Clone()
	for _, h := range hands {
		if len(h) != HandSize {
			return ErrInvalidDeal
		}
		all = append(all, h...)
	}
	if len(all) != DeckSize || !all.Unique() {
		return ErrInvalidDeal
	}
	for _, c := range all {
		if !c.Valid() {
			return ErrInvalidDeal
		}
	}
	return nil
}

// BiddingState returns an independent snapshot for seat.
func (p *PledgePhase) BiddingState(seat Seat) (BiddingState, error) {
	if p.consumed {
		return BiddingState{}, ErrPhaseConsumed
	}
	if !seat.Valid() {
		return BiddingState{}, ErrInvalidSeat
	}
	return BiddingState{
		Seat:              seat,
		Hand:              p.hands[seat].Clone(),
		Contract:          p.Contract(),
		MinEffectiveCount: p.minEffective,
	}, nil
}

// PlayerBids applies seat's bid, or a pass when pledge is nil.
func (p *PledgePhase) PlayerBids(seat Seat, pledge *Contract) error {
	if p.consumed {
		return ErrPhaseConsumed
	}
	if !seat.Valid() {
		return ErrInvalidSeat
	}
	if p.PledgeDone() {
		return ErrPledgeDone
	}
	if seat != p.queue[0] {
		return ErrNotYourTurn
	}

	if pledge == nil {
		p.queue = p.queue[1:]
		p.history = append(p.history, Call{Seat: seat})
		return nil
	}

	c := *pledge
	if !c.Valid() {
		return ErrInvalidContract
	}
	if c.EffectiveCount() <= p.minEffective {
		return ErrBidTooLow
	}
	p.minEffective = c.EffectiveCount()
	p.contract = &c
	if c.EffectiveCount() >= MaxEffectiveCount {
		// nobody can raise a no-trump 20
		p.queue = []Seat{seat}
	} else {
		p.queue = append(p.queue[1:], seat)
	}
	p.history = append(p.history, Call{Seat: seat, Contract: &c})
	return nil
}

// PledgeDone reports whether bidding is over, either won or cancelled.
func (p *PledgePhase) PledgeDone() bool {
	if p.contract == nil {
		return len(p.queue) == 0
	}
	return len(p.queue) <= 1 || p.contract.EffectiveCount() >= MaxEffectiveCount
}

// Cancelled reports whether every seat passed without any bid.
func (p *PledgePhase) Cancelled() bool {
	return len(p.queue) == 0 && p.contract == nil
}

// TurnPlayer returns the seat expected to bid next.
func (p *PledgePhase) TurnPlayer() (Seat, error) {
	if p.consumed {
		return NoSeat, ErrPhaseConsumed
	}
	if len(p.queue) == 0 {
		return NoSeat, ErrNoTurn
	}
	return p.queue[0], nil
}

// Contract returns a copy of the current winning contract, nil if none.
func (p *PledgePhase) Contract() *Contract {
	if p.contract == nil {
		return nil
	}
	c := *p.contract
	return &c
}

// History returns the calls made so far, oldest first.
func (p *PledgePhase) History() []Call {
	out := make([]Call, len(p.history))
	for i, call := range p.history {
		out[i] = Call{Seat: call.Seat}
		if call.Contract != nil {
			c := *call.Contract
			out[i].Contract = &c
		}
	}
	return out
}

// Queue returns the seats still eligible to raise, next bidder first.
func (p *PledgePhase) Queue() []Seat {
	return slices.Clone(p.queue)
}
