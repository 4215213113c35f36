package mighty

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
)

// Card is an immutable playing card. The zero Card means "no card".
type Card struct {
	Suit Suit
	Rank Rank
}

// Joker is the only unsuited card in the deck.
var Joker = Card{Suit: SuitJoker}

// NewCard returns the suited card of the given suit and rank.
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// IsZero reports whether c is the empty card.
func (c Card) IsZero() bool {
	return c == Card{}
}

// IsJoker reports whether c is the joker.
func (c Card) IsJoker() bool {
	return c == Joker
}

// Valid reports whether c is one of the 53 cards of the deck.
func (c Card) Valid() bool {
	return c.IsJoker() || (c.Suit.Valid() && c.Rank >= Rank2 && c.Rank <= RankA)
}

// IsMighty reports whether c is the strongest card under the given trump:
// the spade ace, or the diamond ace when spades are trump.
func (c Card) IsMighty(trump Suit) bool {
	if trump == SuitSpade {
		return c == Card{SuitDiamond, RankA}
	}
	return c == Card{SuitSpade, RankA}
}

// IsJokerCall reports whether leading c may call the joker out:
// the club three, or the heart three when clubs are trump.
func (c Card) IsJokerCall(trump Suit) bool {
	if trump == SuitClub {
		return c == Card{SuitHeart, Rank3}
	}
	return c == Card{SuitClub, Rank3}
}

// Score returns the card's trick points: one for 10, J, Q, K and A.
func (c Card) Score() int {
	if c.IsJoker() || c.Rank < Rank10 {
		return 0
	}
	return 1
}

// DealScore is Score with the Mighty of trump counted as zero.
func (c Card) DealScore(trump Suit) int {
	if c.IsMighty(trump) {
		return 0
	}
	return c.Score()
}

func (c Card) String() string {
	switch {
	case c.IsZero():
		return "--"
	case c.IsJoker():
		return "JK"
	}
	switch c.Rank {
	case RankJ:
		return c.Suit.String() + "J"
	case RankQ:
		return c.Suit.String() + "Q"
	case RankK:
		return c.Suit.String() + "K"
	case RankA:
		return c.Suit.String() + "A"
	}
	return c.Suit.String() + strconv.Itoa(int(c.Rank))
}

// ParseCard parses the text form produced by Card.String, e.g. "SA", "H10", "JK".
func ParseCard(s string) (Card, error) {
	if s == "JK" {
		return Joker, nil
	}
	if len(s) < 2 {
		return Card{}, fmt.Errorf("parse card %q: too short", s)
	}
	var suit Suit
	switch s[0] {
	case 'H':
		suit = SuitHeart
	case 'D':
		suit = SuitDiamond
	case 'C':
		suit = SuitClub
	case 'S':
		suit = SuitSpade
	default:
		return Card{}, fmt.Errorf("parse card %q: unknown suit", s)
	}
	var rank Rank
	switch s[1:] {
	case "J":
		rank = RankJ
	case "Q":
		rank = RankQ
	case "K":
		rank = RankK
	case "A":
		rank = RankA
	default:
		n, err := strconv.Atoi(s[1:])
		if err != nil || n < int(Rank2) || n > int(Rank10) {
			return Card{}, fmt.Errorf("parse card %q: unknown rank", s)
		}
		rank = Rank(n)
	}
	return NewCard(suit, rank), nil
}

func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Card) UnmarshalText(data []byte) error {
	if string(data) == "--" {
		*c = Card{}
		return nil
	}
	n, err := ParseCard(string(data))
	if err != nil {
		return err
	}
	*c = n
	return nil
}

// pack packs a card into one byte: suit in the high nibble, rank in the low.
func (c Card) pack() byte {
	return byte(c.Suit)<<4 | byte(c.Rank&0x0F)
}

func unpackCard(b byte) Card {
	return Card{Suit: Suit(b >> 4), Rank: Rank(b & 0x0F)}
}

// Cards is a hand, kitty or discard set. Within one game no card repeats.
type Cards []Card

// NewDeck returns the 53 cards in a fixed order.
func NewDeck() Cards {
	cards := make(Cards, 0, DeckSize)
	for _, suit := range Suits {
		for rank := Rank2; rank <= RankA; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return append(cards, Joker)
}

// Shuffle shuffles in place with r, or with the package source when r is nil.
func (cs Cards) Shuffle(r *rand.Rand) {
	swap := func(i, j int) { cs[i], cs[j] = cs[j], cs[i] }
	if r == nil {
		rand.Shuffle(len(cs), swap)
		return
	}
	r.Shuffle(len(cs), swap)
}

// IndexOf returns the position of c, or -1.
func (cs Cards) IndexOf(c Card) int {
	return slices.Index(cs, c)
}

// Contains reports whether c is in the set.
func (cs Cards) Contains(c Card) bool {
	return cs.IndexOf(c) >= 0
}

// HasSuit reports whether any suited card of s is in the set.
func (cs Cards) HasSuit(s Suit) bool {
	for _, c := range cs {
		if c.Suit == s {
			return true
		}
	}
	return false
}

// Remove returns a new set without c, and whether c was present.
func (cs Cards) Remove(c Card) (Cards, bool) {
	i := cs.IndexOf(c)
	if i < 0 {
		return cs, false
	}
	out := make(Cards, 0, len(cs)-1)
	out = append(out, cs[:i]...)
	return append(out, cs[i+1:]...), true
}

// Clone returns an independent copy; a nil set stays nil.
func (cs Cards) Clone() Cards {
	return slices.Clone(cs)
}

// Unique reports whether no card appears twice.
func (cs Cards) Unique() bool {
	seen := make(map[Card]struct{}, len(cs))
	for _, c := range cs {
		if _, ok := seen[c]; ok {
			return false
		}
		seen[c] = struct{}{}
	}
	return true
}

// Sorted returns a copy ordered by suit then rank, joker last.
func (cs Cards) Sorted() Cards {
	out := cs.Clone()
	slices.SortFunc(out, func(a, b Card) int {
		if a.Suit != b.Suit {
			return int(a.Suit) - int(b.Suit)
		}
		return int(a.Rank) - int(b.Rank)
	})
	return out
}

// Score sums Card.Score over the set.
func (cs Cards) Score() (points int) {
	for _, c := range cs {
		points += c.Score()
	}
	return
}
