package mighty

import "slices"

// RoundResult is one finished round: its winner and the five cards in seat order.
type RoundResult struct {
	Winner Seat        `json:"winner"`
	Cards  [Seats]Card `json:"cards"`
}

// ExposedGameState is what one seat sees during play. Discarded is set
// only for the declarer.
type ExposedGameState struct {
	Seat            Seat
	Hand            Cards
	Declarer        Seat
	Contract        Contract
	Partner         PartnerCondition
	Discarded       Cards
	PartnerRevealed Seat

	Round        int
	JokerCalled  bool
	Submitted    [Seats]Card
	RoundStarter Seat
	RoundSuit    Suit

	RoundResults RoundResults
}

// PlayPhase is the ten-round trick engine.
type PlayPhase struct {
	hands     [Seats]Cards
	declarer  Seat
	contract  Contract
	partner   PartnerCondition
	discarded Cards
	revealed  Seat

	round        int
	jokerCalled  bool
	submitted    [Seats]Card
	played       int
	roundStarter Seat
	roundSuit    Suit

	results RoundResults
}

// roundView is the slice of state the legality rules depend on.
type roundView struct {
	trump        Suit
	roundStarter Seat
	roundSuit    Suit
	jokerCalled  bool
}

// check validates action a by seat holding hand.
func (rv roundView) check(seat Seat, hand Cards, a Action) error {
	starter := seat == rv.roundStarter
	switch a.Kind {
	case ActionPlay:
		if !hand.Contains(a.Card) {
			return ErrCardNotHeld
		}
		if a.Card.IsJoker() {
			if starter {
				return ErrJokerLead
			}
			return nil
		}
		if rv.jokerCalled && hand.Contains(Joker) {
			return ErrJokerCalled
		}
		if rv.roundSuit != SuitNone && a.Card.Suit != rv.roundSuit &&
			!a.Card.IsMighty(rv.trump) && hand.HasSuit(rv.roundSuit) {
			return ErrMustFollowSuit
		}
		return nil
	case ActionCallJoker:
		if !starter {
			return ErrNotRoundStarter
		}
		if !a.Card.IsJokerCall(rv.trump) {
			return ErrNotJokerCall
		}
		if !hand.Contains(a.Card) {
			return ErrCardNotHeld
		}
		return nil
	case ActionStartWithJoker:
		if !starter {
			return ErrNotRoundStarter
		}
		if !hand.Contains(Joker) {
			return ErrNoJoker
		}
		if !a.Suit.Valid() {
			return ErrInvalidSuit
		}
		return nil
	}
	return ErrInvalidAction
}

// legal lists every action seat may take with hand, in hand order.
func (rv roundView) legal(seat Seat, hand Cards) []Action {
	var out []Action
	for _, c := range hand {
		if a := Play(c); rv.check(seat, hand, a) == nil {
			out = append(out, a)
		}
		if a := CallJoker(c); rv.check(seat, hand, a) == nil {
			out = append(out, a)
		}
	}
	for _, s := range Suits {
		if a := StartWithJoker(s); rv.check(seat, hand, a) == nil {
			out = append(out, a)
		}
	}
	return out
}

func (pp *PlayPhase) view() roundView {
	return roundView{
		trump:        pp.contract.Trump(),
		roundStarter: pp.roundStarter,
		roundSuit:    pp.roundSuit,
		jokerCalled:  pp.jokerCalled,
	}
}

// CurrentRoundOrder returns the five seats starting at the round starter.
func (pp *PlayPhase) CurrentRoundOrder() []Seat {
	order := make([]Seat, Seats)
	for i := range order {
		order[i] = pp.roundStarter.next(i)
	}
	return order
}

// TurnPlayer returns the seat expected to act next, NoSeat once finished.
func (pp *PlayPhase) TurnPlayer() Seat {
	if pp.Finished() {
		return NoSeat
	}
	return pp.roundStarter.next(pp.played)
}

// Round returns the index of the round in progress, Rounds once finished.
func (pp *PlayPhase) Round() int { return pp.round }

// Finished reports whether all ten rounds have been played.
func (pp *PlayPhase) Finished() bool { return pp.round >= Rounds }

func (pp *PlayPhase) Declarer() Seat { return pp.declarer }

func (pp *PlayPhase) Contract() Contract { return pp.contract }

// PartnerRevealed returns the revealed partner, NoSeat while hidden.
func (pp *PlayPhase) PartnerRevealed() Seat { return pp.revealed }

// RoundResult returns the result of finished round n.
func (pp *PlayPhase) RoundResult(n int) (RoundResult, error) {
	if n < 0 || n >= len(pp.results) {
		return RoundResult{}, ErrRoundOutOfRange
	}
	return pp.results[n], nil
}

// RoundResults returns a copy of the finished rounds, oldest first.
func (pp *PlayPhase) RoundResults() RoundResults {
	return slices.Clone(pp.results)
}

// PlayState returns an independent snapshot of seat's view.
func (pp *PlayPhase) PlayState(seat Seat) (ExposedGameState, error) {
	if !seat.Valid() {
		return ExposedGameState{}, ErrInvalidSeat
	}
	s := ExposedGameState{
		Seat:            seat,
		Hand:            pp.hands[seat].Clone(),
		Declarer:        pp.declarer,
		Contract:        pp.contract,
		Partner:         pp.partner,
		PartnerRevealed: pp.revealed,
		Round:           pp.round,
		JokerCalled:     pp.jokerCalled,
		Submitted:       pp.submitted,
		RoundStarter:    pp.roundStarter,
		RoundSuit:       pp.roundSuit,
		RoundResults:    pp.RoundResults(),
	}
	if seat == pp.declarer {
		s.Discarded = pp.discarded.Clone()
	}
	return s, nil
}

// LegalActions lists what seat may do now; empty when it is not seat's turn.
func (pp *PlayPhase) LegalActions(seat Seat) []Action {
	if !seat.Valid() || seat != pp.TurnPlayer() {
		return nil
	}
	return pp.view().legal(seat, pp.hands[seat])
}

// LegalActions lists what the viewing seat may do now.
func (s ExposedGameState) LegalActions() []Action {
	filled := 0
	for _, c := range s.Submitted {
		if !c.IsZero() {
			filled++
		}
	}
	if s.Round >= Rounds || !s.Seat.Valid() || s.RoundStarter.next(filled) != s.Seat {
		return nil
	}
	rv := roundView{
		trump:        s.Contract.Trump(),
		roundStarter: s.RoundStarter,
		roundSuit:    s.RoundSuit,
		jokerCalled:  s.JokerCalled,
	}
	return rv.legal(s.Seat, s.Hand)
}

// PlayerActs applies seat's action. When it is the fifth play of the round
// the round is resolved and the next one opens with the winner leading.
func (pp *PlayPhase) PlayerActs(seat Seat, a Action) error {
	if !seat.Valid() {
		return ErrInvalidSeat
	}
	if pp.Finished() {
		return ErrGameFinished
	}
	if seat != pp.TurnPlayer() {
		return ErrNotYourTurn
	}
	if err := pp.view().check(seat, pp.hands[seat], a); err != nil {
		return err
	}

	card := a.Played()
	pp.hands[seat], _ = pp.hands[seat].Remove(card)
	pp.submitted[seat] = card
	pp.played++

	switch a.Kind {
	case ActionPlay:
		if seat == pp.roundStarter {
			pp.roundSuit = card.Suit
		}
	case ActionCallJoker:
		pp.roundSuit = card.Suit
		pp.jokerCalled = true
	case ActionStartWithJoker:
		pp.roundSuit = a.Suit
	}

	if pp.partner.Kind == PartnerCard && pp.revealed == NoSeat && card == pp.partner.Card {
		pp.revealed = seat
	}

	if pp.played == Seats {
		pp.finishRound()
	}
	return nil
}

func (pp *PlayPhase) finishRound() {
	winner := pp.roundWinner()
	pp.results = append(pp.results, RoundResult{Winner: winner, Cards: pp.submitted})
	if pp.partner.Kind == PartnerRound && pp.partner.Round == pp.round && pp.revealed == NoSeat {
		pp.revealed = winner
	}

	pp.round++
	pp.roundStarter = winner
	pp.roundSuit = SuitNone
	pp.jokerCalled = false
	pp.submitted = [Seats]Card{}
	pp.played = 0
}

// roundWinner returns the seat holding the highest-valued submission. Equal
// values go to the earlier card in play order.
func (pp *PlayPhase) roundWinner() Seat {
	best, winner := -1, NoSeat
	for _, seat := range pp.CurrentRoundOrder() {
		if v := pp.cardValue(pp.submitted[seat]); v > best {
			best, winner = v, seat
		}
	}
	return winner
}

// cardValue ranks c within the current round. Ties are only possible
// between off-suit cards after a joker lead in the first or last round.
func (pp *PlayPhase) cardValue(c Card) int {
	trump := pp.contract.Trump()
	switch {
	case c.IsMighty(trump):
		return 200
	case c.IsJoker():
		if pp.jokerCalled || pp.round == 0 || pp.round == Rounds-1 {
			return 0
		}
		return 100
	case trump != SuitNone && c.Suit == trump:
		return 70 + int(c.Rank)
	case c.Suit == pp.roundSuit:
		return 30 + int(c.Rank)
	}
	return int(c.Rank)
}
