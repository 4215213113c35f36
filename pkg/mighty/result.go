package mighty

import "errors"

// Side is one of the two camps at the end of a game.
type Side uint8

const (
	SideLeading  Side = iota + 1 // declarer and revealed partner
	SideOpposing                 // everyone else
)

func (s Side) String() string {
	switch s {
	case SideLeading:
		return "leading"
	case SideOpposing:
		return "opposing"
	}
	return "none"
}

// Result is the settled outcome of a finished game.
type Result struct {
	Contract     Contract    `json:"contract"`
	Declarer     Seat        `json:"declarer"`
	Partner      Seat        `json:"partner"` // NoSeat when never revealed
	Points       [Seats]int  `json:"points"`  // card points per seat over won rounds
	LeadingTotal int         `json:"leading_total"`
	Side         Side        `json:"side"`
	Winners      [Seats]bool `json:"winners"`
}

// IsWinner reports whether seat is on the winning side.
func (r Result) IsWinner(seat Seat) bool {
	return seat.Valid() && r.Winners[seat]
}

// Result settles the game once all ten rounds are played.
func (pp *PlayPhase) Result() (Result, error) {
	if !pp.Finished() {
		return Result{}, ErrGameNotFinished
	}
	r := Result{
		Contract: pp.contract,
		Declarer: pp.declarer,
		Partner:  pp.revealed,
	}
	for _, rr := range pp.results {
		r.Points[rr.Winner] += Cards(rr.Cards[:]).Score()
	}

	r.LeadingTotal = r.Points[pp.declarer]
	// a declarer who named their own card plays alone
	if r.Partner != NoSeat && r.Partner != pp.declarer {
		r.LeadingTotal += r.Points[r.Partner]
	}

	// the raw count decides, not the effective count
	r.Side = SideOpposing
	if r.LeadingTotal >= pp.contract.Count {
		r.Side = SideLeading
	}
	for i := range r.Winners {
		leading := Seat(i) == pp.declarer || Seat(i) == r.Partner
		r.Winners[i] = leading == (r.Side == SideLeading)
	}
	return r, nil
}

// RoundResults is the ordered play history.
type RoundResults []RoundResult

// roundRecordSize is the encoded size of one round: winner then five cards.
const roundRecordSize = 1 + Seats

var errShortHistory = errors.New("history data is not a whole number of rounds")

// MarshalBinary encodes the history in six bytes per round.
func (rs RoundResults) MarshalBinary() (data []byte, err error) {
	data = make([]byte, len(rs)*roundRecordSize)
	for i, r := range rs {
		off := i * roundRecordSize
		data[off] = byte(r.Winner)
		for j, c := range r.Cards {
			data[off+1+j] = c.pack()
		}
	}
	return
}

// UnmarshalBinary decodes what MarshalBinary produced.
func (rs *RoundResults) UnmarshalBinary(data []byte) error {
	if len(data)%roundRecordSize != 0 {
		return errShortHistory
	}
	n := len(data) / roundRecordSize
	*rs = make(RoundResults, n)
	for i := 0; i < n; i++ {
		off := i * roundRecordSize
		r := RoundResult{Winner: Seat(data[off])}
		for j := range r.Cards {
			r.Cards[j] = unpackCard(data[off+1+j])
		}
		(*rs)[i] = r
	}
	return nil
}
