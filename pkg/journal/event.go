package journal

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/play/mighty/pkg/mighty"
)

// Kind names what an event records.
type Kind string

const (
	KindDeal      Kind = "deal"      // game opened
	KindBid       Kind = "bid"       // bid or pass, Data is a mighty.Call
	KindCancelled Kind = "cancelled" // everyone passed
	KindPlan      Kind = "plan"      // Data is the declarer's mighty.Plan
	KindAction    Kind = "action"    // Data is a mighty.Action
	KindRound     Kind = "round"     // Data is a mighty.RoundResult
	KindResult    Kind = "result"    // Data is the mighty.Result
)

// Event is one journal entry. Seq is assigned by the writer and is
// contiguous within a game.
type Event struct {
	Game   string          `json:"game"`
	Seq    int             `json:"seq"`
	Kind   Kind            `json:"kind"`
	Seat   mighty.Seat     `json:"seat"`
	At     time.Time       `json:"at"`
	Data   json.RawMessage `json:"data,omitempty"`
	Extras json.RawMessage `json:"extras,omitempty"`
}

// NewEvent encodes payload into a new event. Seat is mighty.NoSeat for
// table-wide events.
func NewEvent(kind Kind, seat mighty.Seat, payload any) (Event, error) {
	e := Event{Kind: kind, Seat: seat, At: time.Now()}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return Event{}, err
		}
		e.Data = data
	}
	return e, nil
}

// Decode unmarshals Data into v.
func (e Event) Decode(v any) error {
	return json.Unmarshal(e.Data, v)
}

// Set stores v at path inside Extras.
func (e *Event) Set(path string, v any) error {
	extras := e.Extras
	if len(extras) == 0 {
		extras = []byte("{}")
	}
	out, err := sjson.SetBytes(extras, path, v)
	if err != nil {
		return err
	}
	e.Extras = out
	return nil
}

// Get reads path from Extras.
func (e Event) Get(path string) gjson.Result {
	return gjson.GetBytes(e.Extras, path)
}
