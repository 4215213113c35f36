package mighty

import "fmt"

// Seat is a table position, 0 through 4.
type Seat int8

// NoSeat marks an unset seat, such as an unrevealed partner.
const NoSeat Seat = -1

// Valid reports whether s is one of the five seats.
func (s Seat) Valid() bool {
	return s >= 0 && s < Seats
}

// next returns the seat n places after s.
func (s Seat) next(n int) Seat {
	return Seat((int(s) + n) % Seats)
}

// Contract is a bid: a trump suit (SuitNone for no trump) and a trick-point count.
type Contract struct {
	Suit  Suit `json:"suit"`
	Count int  `json:"count"`
}

// EffectiveCount ranks contracts: a no-trump bid counts one more than its count.
func (c Contract) EffectiveCount() int {
	if c.Suit == SuitNone {
		return c.Count + 1
	}
	return c.Count
}

// Trump returns the trump suit, SuitNone for no trump.
func (c Contract) Trump() Suit {
	return c.Suit
}

// Valid reports whether the contract names a legal suit and count.
func (c Contract) Valid() bool {
	if c.Suit != SuitNone && !c.Suit.Valid() {
		return false
	}
	return c.Count >= 1 && c.Count <= MaxCount
}

func (c Contract) String() string {
	if c.Suit == SuitNone {
		return fmt.Sprintf("NT%d", c.Count)
	}
	return fmt.Sprintf("%s%d", c.Suit, c.Count)
}

// Call is one entry of the bidding history. A nil Contract is a pass.
type Call struct {
	Seat     Seat      `json:"seat"`
	Contract *Contract `json:"contract,omitempty"`
}

// IsPass reports whether the call was a pass.
func (c Call) IsPass() bool {
	return c.Contract == nil
}

// PartnerKind selects how the declarer's partner is bound.
type PartnerKind uint8

const (
	PartnerNone  PartnerKind = iota // declarer plays alone
	PartnerCard                     // whoever plays Card
	PartnerRound                    // winner of round Round
	PartnerSeat                     // the fixed seat Seat
)

// PartnerCondition binds the hidden partner to a card, a round or a seat.
type PartnerCondition struct {
	Kind  PartnerKind `json:"kind"`
	Card  Card        `json:"card"`
	Round int         `json:"round,omitempty"`
	Seat  Seat        `json:"seat,omitempty"`
}

func NoPartner() PartnerCondition { return PartnerCondition{Kind: PartnerNone} }

func PartnerByCard(c Card) PartnerCondition { return PartnerCondition{Kind: PartnerCard, Card: c} }

func PartnerByRound(n int) PartnerCondition { return PartnerCondition{Kind: PartnerRound, Round: n} }

func PartnerBySeat(s Seat) PartnerCondition { return PartnerCondition{Kind: PartnerSeat, Seat: s} }

// Valid reports whether the condition can ever be evaluated.
func (pc PartnerCondition) Valid() bool {
	switch pc.Kind {
	case PartnerNone:
		return true
	case PartnerCard:
		return pc.Card.Valid()
	case PartnerRound:
		return pc.Round >= 0 && pc.Round < Rounds
	case PartnerSeat:
		return pc.Seat.Valid()
	}
	return false
}

// Plan is the declarer's answer to the exchange phase.
type Plan struct {
	Contract Contract         `json:"contract"`
	Partner  PartnerCondition `json:"partner"`
	Discards Cards            `json:"discards"`
}

// ActionKind is the kind of a play-phase action.
type ActionKind uint8

const (
	ActionPlay           ActionKind = iota + 1 // play Card
	ActionCallJoker                            // lead Card and call the joker out
	ActionStartWithJoker                       // lead the joker, naming Suit as round suit
)

// Action is one seat's move in a round.
type Action struct {
	Kind ActionKind `json:"kind"`
	Card Card       `json:"card"`
	Suit Suit       `json:"suit,omitempty"`
}

func Play(c Card) Action { return Action{Kind: ActionPlay, Card: c} }

func CallJoker(c Card) Action { return Action{Kind: ActionCallJoker, Card: c} }

func StartWithJoker(s Suit) Action { return Action{Kind: ActionStartWithJoker, Suit: s} }

// Played returns the card the action puts on the table.
func (a Action) Played() Card {
	if a.Kind == ActionStartWithJoker {
		return Joker
	}
	return a.Card
}

func (a Action) String() string {
	switch a.Kind {
	case ActionPlay:
		return "play " + a.Card.String()
	case ActionCallJoker:
		return "call joker with " + a.Card.String()
	case ActionStartWithJoker:
		return "lead joker as " + a.Suit.String()
	}
	return "invalid action"
}
