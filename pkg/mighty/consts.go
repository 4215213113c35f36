package mighty

import "errors"

// Suit is a card suit. SuitNone doubles as "no trump" in a contract.
type Suit uint8

const (
	SuitNone    Suit = iota
	SuitHeart        // ♥
	SuitDiamond      // ♦
	SuitClub         // ♣
	SuitSpade        // ♠
	SuitJoker        // joker marker, never a trump or round suit
)

// Suits lists the four playable suits.
var Suits = [4]Suit{SuitHeart, SuitDiamond, SuitClub, SuitSpade}

// Valid reports whether s is one of the four playable suits.
func (s Suit) Valid() bool {
	return s >= SuitHeart && s <= SuitSpade
}

func (s Suit) String() string {
	switch s {
	case SuitHeart:
		return "H"
	case SuitDiamond:
		return "D"
	case SuitClub:
		return "C"
	case SuitSpade:
		return "S"
	case SuitJoker:
		return "J"
	default:
		return "-"
	}
}

// Rank is the numeric rank of a suited card, 2 through 14 (ace).
type Rank uint8

const (
	RankNone Rank = 0
	Rank2    Rank = iota + 1
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ
	RankQ
	RankK
	RankA
)

const (
	Seats             = 5  // seats at the table
	HandSize          = 10 // cards per seat after the deal and after the exchange
	KittySize         = 3  // undealt cards handed to the declarer
	Rounds            = 10 // tricks per game
	DeckSize          = 53 // 52 suited cards plus the joker
	MaxCount          = 20 // highest count a contract may name
	MaxEffectiveCount = 21 // a no-trump 20 ends the bidding at once
	DefaultMinPledge  = 13
)

// violation is a caller bug: the action breaks a rule and is rejected whole.
type violation string

func (v violation) Error() string { return string(v) }

func (v violation) Is(target error) bool { return target == ErrProtocolViolation }

// structural is a request for something that cannot exist, such as seat 7.
type structural string

func (s structural) Error() string { return string(s) }

func (s structural) Is(target error) bool { return target == ErrStructural }

// Error kinds. Every rule error returned by a phase matches exactly one of them.
var (
	ErrProtocolViolation = errors.New("protocol violation")
	ErrStructural        = errors.New("structural failure")
)

// Protocol violations.
var (
	ErrNotYourTurn      error = violation("not your turn")
	ErrBidTooLow        error = violation("bid does not exceed the current threshold")
	ErrInvalidContract  error = violation("invalid contract")
	ErrPledgeDone       error = violation("bidding already finished")
	ErrPledgeNotDone    error = violation("bidding not finished")
	ErrPledgeCancelled  error = violation("bidding cancelled")
	ErrContractLowered  error = violation("final contract is below the won contract")
	ErrInvalidPartner   error = violation("invalid partner condition")
	ErrDiscardCount     error = violation("declarer must discard exactly three cards")
	ErrDuplicateCard    error = violation("duplicate card")
	ErrCardNotHeld      error = violation("card not in hand")
	ErrMustFollowSuit   error = violation("must follow the round suit")
	ErrJokerLead        error = violation("round starter must lead the joker with a suit")
	ErrJokerCalled      error = violation("joker was called and must be played")
	ErrNotRoundStarter  error = violation("only the round starter may do this")
	ErrNotJokerCall     error = violation("card does not call the joker")
	ErrNoJoker          error = violation("joker not in hand")
	ErrInvalidSuit      error = violation("invalid suit")
	ErrInvalidAction    error = violation("invalid action")
	ErrGameFinished     error = violation("all rounds already played")
	ErrGameNotFinished  error = violation("game not finished")
	ErrInvalidDeal      error = violation("hands and kitty do not partition the deck")
	ErrInvalidMinPledge error = violation("minimum pledge out of range")
)

// Structural failures.
var (
	ErrInvalidSeat     error = structural("seat out of range")
	ErrRoundOutOfRange error = structural("round out of range")
	ErrNoTurn          error = structural("no seat left to act")
	ErrPhaseConsumed   error = structural("phase already consumed by a transition")
	ErrWrongPhase      error = structural("operation not valid in the current phase")
)
