package mighty

import "math/rand/v2"

// Phase tags which stage of a game is live.
type Phase int8

const (
	PhaseBidding   Phase = iota // bids and passes
	PhaseExchange               // kitty exchange
	PhasePlay                   // ten rounds
	PhaseFinished               // result available
	PhaseCancelled              // everyone passed
)

func (p Phase) String() string {
	switch p {
	case PhaseBidding:
		return "bidding"
	case PhaseExchange:
		return "exchange"
	case PhasePlay:
		return "play"
	case PhaseFinished:
		return "finished"
	case PhaseCancelled:
		return "cancelled"
	}
	return "unknown"
}

type options struct {
	start     Seat
	minPledge int
	rand      *rand.Rand
	hands     *[Seats]Cards
	kitty     Cards
}

// Option configures a new Game.
type Option func(*options)

// WithStartSeat sets the first bidder, seat 0 by default.
func WithStartSeat(s Seat) Option {
	return func(o *options) {
		o.start = s
	}
}

// WithMinPledge sets the lowest count an opening trump bid may name.
func WithMinPledge(n int) Option {
	return func(o *options) {
		o.minPledge = n
	}
}

// WithRand injects the shuffling source, for reproducible deals.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rand = r
	}
}

// WithDeal skips shuffling and uses the given hands and kitty.
func WithDeal(hands [Seats]Cards, kitty Cards) Option {
	return func(o *options) {
		o.hands = &hands
		o.kitty = kitty
	}
}

// Game owns exactly one live phase at a time and moves the cards from one
// phase to the next as each finishes. Callers only see the phases through
// read-only views, so Bid, SubmitPlan and Act are the only ways forward.
type Game struct {
	phase  Phase
	pledge *PledgePhase
	extra  *ExtraPhase
	play   *PlayPhase
	result *Result
}

// NewGame deals and opens the bidding.
func NewGame(opts ...Option) (*Game, error) {
	o := &options{minPledge: DefaultMinPledge}
	for _, opt := range opts {
		opt(o)
	}

	var (
		p   *PledgePhase
		err error
	)
	if o.hands != nil {
		p, err = NewPledgePhaseFromDeal(o.start, o.minPledge, *o.hands, o.kitty)
	} else {
		p, err = NewPledgePhase(o.start, o.minPledge, o.rand)
	}
	if err != nil {
		return nil, err
	}
	return &Game{phase: PhaseBidding, pledge: p}, nil
}

// Phase returns the live phase tag.
func (g *Game) Phase() Phase { return g.phase }

// Pledge returns a view of the bidding while it is live, or after everyone
// passed.
func (g *Game) Pledge() (PledgeView, error) {
	if g.phase != PhaseBidding && g.phase != PhaseCancelled {
		return PledgeView{}, ErrWrongPhase
	}
	return PledgeView{g.pledge}, nil
}

// Extra returns a view of the exchange while it is live.
func (g *Game) Extra() (ExtraView, error) {
	if g.phase != PhaseExchange {
		return ExtraView{}, ErrWrongPhase
	}
	return ExtraView{g.extra}, nil
}

// Play returns a view of the rounds while they are live or finished.
func (g *Game) Play() (PlayView, error) {
	if g.phase != PhasePlay && g.phase != PhaseFinished {
		return PlayView{}, ErrWrongPhase
	}
	return PlayView{g.play}, nil
}

// Result returns the settled result once the game is finished.
func (g *Game) Result() (Result, error) {
	if g.phase != PhaseFinished {
		return Result{}, ErrWrongPhase
	}
	return *g.result, nil
}

// Bid applies a bid or pass and moves to the exchange, or to cancelled,
// once the bidding is over.
func (g *Game) Bid(seat Seat, pledge *Contract) error {
	if g.phase != PhaseBidding {
		return ErrWrongPhase
	}
	if err := g.pledge.PlayerBids(seat, pledge); err != nil {
		return err
	}
	if !g.pledge.PledgeDone() {
		return nil
	}
	if g.pledge.Cancelled() {
		g.phase = PhaseCancelled
		return nil
	}
	extra, err := NewExtraPhase(g.pledge)
	if err != nil {
		return err
	}
	g.phase, g.pledge, g.extra = PhaseExchange, nil, extra
	return nil
}

// SubmitPlan finishes the exchange and opens the first round.
func (g *Game) SubmitPlan(plan Plan) error {
	if g.phase != PhaseExchange {
		return ErrWrongPhase
	}
	play, err := g.extra.SubmitPlan(plan)
	if err != nil {
		return err
	}
	g.phase, g.extra, g.play = PhasePlay, nil, play
	return nil
}

// Act applies a play-phase action and settles the game after the last round.
func (g *Game) Act(seat Seat, a Action) error {
	if g.phase != PhasePlay {
		return ErrWrongPhase
	}
	if err := g.play.PlayerActs(seat, a); err != nil {
		return err
	}
	if !g.play.Finished() {
		return nil
	}
	r, err := g.play.Result()
	if err != nil {
		return err
	}
	g.phase, g.result = PhaseFinished, &r
	return nil
}
