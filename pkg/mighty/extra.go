package mighty

// ExtraExposedState is what the declarer sees during the exchange.
type ExtraExposedState struct {
	Declarer Seat
	Hand     Cards // ten dealt cards plus the kitty
	Contract Contract
}

// ExtraPhase is the exchange: the declarer has taken the kitty and must
// finalize the contract, name a partner condition and discard three cards.
type ExtraPhase struct {
	hands    [Seats]Cards
	contract Contract
	declarer Seat
	consumed bool
}

// NewExtraPhase consumes a finished, uncancelled bidding phase.
func NewExtraPhase(p *PledgePhase) (*ExtraPhase, error) {
	if p.consumed {
		return nil, ErrPhaseConsumed
	}
	if p.Cancelled() {
		return nil, ErrPledgeCancelled
	}
	if !p.PledgeDone() {
		return nil, ErrPledgeNotDone
	}
	e := &ExtraPhase{
		hands:    p.hands,
		contract: *p.contract,
		declarer: p.queue[0],
	}
	e.hands[e.declarer] = append(e.hands[e.declarer].Clone(), p.kitty...)
	p.consumed = true
	p.hands = [Seats]Cards{}
	p.kitty = nil
	return e, nil
}

// Declarer returns the seat that won the bidding.
func (e *ExtraPhase) Declarer() Seat {
	return e.declarer
}

// Contract returns the contract won at bidding.
func (e *ExtraPhase) Contract() Contract {
	return e.contract
}

// ExtraState returns an independent snapshot of the declarer's view.
func (e *ExtraPhase) ExtraState() (ExtraExposedState, error) {
	if e.consumed {
		return ExtraExposedState{}, ErrPhaseConsumed
	}
	return ExtraExposedState{
		Declarer: e.declarer,
		Hand:     e.hands[e.declarer].Clone(),
		Contract: e.contract,
	}, nil
}

// SubmitPlan finalizes the exchange and opens round 0 with the declarer leading.
// The declarer may raise the contract but never lower it.
func (e *ExtraPhase) SubmitPlan(plan Plan) (*PlayPhase, error) {
	if e.consumed {
		return nil, ErrPhaseConsumed
	}
	if !plan.Contract.Valid() {
		return nil, ErrInvalidContract
	}
	if plan.Contract.EffectiveCount() < e.contract.EffectiveCount() {
		return nil, ErrContractLowered
	}
	if !plan.Partner.Valid() {
		return nil, ErrInvalidPartner
	}
	if len(plan.Discards) != KittySize {
		return nil, ErrDiscardCount
	}
	if !plan.Discards.Unique() {
		return nil, ErrDuplicateCard
	}
	hand := e.hands[e.declarer]
	for _, c := range plan.Discards {
		var ok bool
		if hand, ok = hand.Remove(c); !ok {
			return nil, ErrCardNotHeld
		}
	}

	pp := &PlayPhase{
		hands:        e.hands,
		declarer:     e.declarer,
		contract:     plan.Contract,
		partner:      plan.Partner,
		discarded:    plan.Discards.Clone(),
		revealed:     NoSeat,
		roundStarter: e.declarer,
	}
	pp.hands[e.declarer] = hand
	if plan.Partner.Kind == PartnerSeat {
		pp.revealed = plan.Partner.Seat
	}
	e.consumed = true
	e.hands = [Seats]Cards{}
	return pp, nil
}
