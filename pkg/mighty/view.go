package mighty

// PledgeView is a read-only handle on the bidding phase owned by a Game.
// Bids go through Game.Bid.
type PledgeView struct {
	p *PledgePhase
}

func (v PledgeView) BiddingState(seat Seat) (BiddingState, error) { return v.p.BiddingState(seat) }

func (v PledgeView) TurnPlayer() (Seat, error) { return v.p.TurnPlayer() }

func (v PledgeView) PledgeDone() bool { return v.p.PledgeDone() }

func (v PledgeView) Cancelled() bool { return v.p.Cancelled() }

func (v PledgeView) Contract() *Contract { return v.p.Contract() }

func (v PledgeView) History() []Call { return v.p.History() }

func (v PledgeView) Queue() []Seat { return v.p.Queue() }

// ExtraView is a read-only handle on the exchange owned by a Game.
// The plan goes through Game.SubmitPlan.
type ExtraView struct {
	e *ExtraPhase
}

func (v ExtraView) Declarer() Seat { return v.e.Declarer() }

func (v ExtraView) Contract() Contract { return v.e.Contract() }

func (v ExtraView) ExtraState() (ExtraExposedState, error) { return v.e.ExtraState() }

// PlayView is a read-only handle on the rounds owned by a Game.
// Actions go through Game.Act.
type PlayView struct {
	pp *PlayPhase
}

func (v PlayView) CurrentRoundOrder() []Seat { return v.pp.CurrentRoundOrder() }

func (v PlayView) TurnPlayer() Seat { return v.pp.TurnPlayer() }

func (v PlayView) Round() int { return v.pp.Round() }

func (v PlayView) Finished() bool { return v.pp.Finished() }

func (v PlayView) Declarer() Seat { return v.pp.Declarer() }

func (v PlayView) Contract() Contract { return v.pp.Contract() }

func (v PlayView) PartnerRevealed() Seat { return v.pp.PartnerRevealed() }

func (v PlayView) RoundResult(n int) (RoundResult, error) { return v.pp.RoundResult(n) }

func (v PlayView) RoundResults() RoundResults { return v.pp.RoundResults() }

func (v PlayView) PlayState(seat Seat) (ExposedGameState, error) { return v.pp.PlayState(seat) }

func (v PlayView) LegalActions(seat Seat) []Action { return v.pp.LegalActions(seat) }

func (v PlayView) Result() (Result, error) { return v.pp.Result() }
