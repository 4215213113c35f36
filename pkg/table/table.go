package table

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/play/mighty/pkg/journal"
	"github.com/play/mighty/pkg/mighty"
	"github.com/play/mighty/pkg/player"
)

var ErrPlayers = errors.New("table needs exactly five players")

// Outcome is what a finished table reports.
type Outcome struct {
	Game      string         `json:"game"`
	Cancelled bool           `json:"cancelled"`
	Result    *mighty.Result `json:"result,omitempty"`
	Events    int            `json:"events"`
	Duration  time.Duration  `json:"duration"`
}

type options struct {
	id        string
	start     mighty.Seat
	minPledge int
	seed      *uint64
}

type Option func(*options)

// WithID fixes the game id instead of a random uuid.
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}

func WithStartSeat(s mighty.Seat) Option {
	return func(o *options) {
		o.start = s
	}
}

func WithMinPledge(n int) Option {
	return func(o *options) {
		o.minPledge = n
	}
}

// WithSeed makes the deal reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = &seed
	}
}

// Table drives one game from deal to result by asking each seat's Player
// for its decisions, and writes every accepted decision to a journal.
type Table struct {
	opts    options
	players []player.Player
	journal journal.Journal
	seq     int
}

func New(players []player.Player, j journal.Journal, opts ...Option) (*Table, error) {
	if len(players) != mighty.Seats {
		return nil, ErrPlayers
	}
	o := options{minPledge: mighty.DefaultMinPledge}
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}
	if j == nil {
		j = journal.NewMemory()
	}
	return &Table{opts: o, players: players, journal: j}, nil
}

func (t *Table) ID() string { return t.opts.id }

// Run plays the game to its end. A player error or a rejected decision
// stops the game and is returned with the seat that caused it.
func (t *Table) Run(ctx context.Context) (Outcome, error) {
	logger := log.Ctx(ctx).With().Str("game", t.opts.id).Logger()
	ctx = logger.WithContext(ctx)
	begin := time.Now()

	gameOpts := []mighty.Option{mighty.WithStartSeat(t.opts.start), mighty.WithMinPledge(t.opts.minPledge)}
	if t.opts.seed != nil {
		gameOpts = append(gameOpts, mighty.WithRand(rand.New(rand.NewPCG(*t.opts.seed, 0))))
	}
	g, err := mighty.NewGame(gameOpts...)
	if err != nil {
		return Outcome{}, fmt.Errorf("new game: %w", err)
	}
	if err := t.deal(ctx, g); err != nil {
		return Outcome{}, err
	}

	out := Outcome{Game: t.opts.id}
	for {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		switch g.Phase() {
		case mighty.PhaseBidding:
			err = t.bid(ctx, g)
		case mighty.PhaseExchange:
			err = t.exchange(ctx, g)
		case mighty.PhasePlay:
			err = t.act(ctx, g)
		case mighty.PhaseCancelled:
			out.Cancelled = true
			out.Duration = time.Since(begin)
			logger.Info().Msg("bidding cancelled")
			err = t.record(ctx, journal.KindCancelled, mighty.NoSeat, nil, nil)
			out.Events = t.seq
			return out, err
		case mighty.PhaseFinished:
			r, _ := g.Result()
			out.Result = &r
			out.Duration = time.Since(begin)
			logger.Info().
				Stringer("contract", r.Contract).
				Int("declarer", int(r.Declarer)).
				Int("partner", int(r.Partner)).
				Int("leading_total", r.LeadingTotal).
				Stringer("side", r.Side).
				Dur("elapsed", out.Duration).
				Msg("game finished")
			err = t.record(ctx, journal.KindResult, mighty.NoSeat, r, map[string]any{
				"leading_won": r.Side == mighty.SideLeading,
			})
			out.Events = t.seq
			return out, err
		}
		if err != nil {
			return out, err
		}
	}
}

func (t *Table) deal(ctx context.Context, g *mighty.Game) error {
	p, err := g.Pledge()
	if err != nil {
		return err
	}
	var hands [mighty.Seats]mighty.Cards
	for i := range hands {
		s, err := p.BiddingState(mighty.Seat(i))
		if err != nil {
			return err
		}
		hands[i] = s.Hand.Sorted()
	}
	return t.record(ctx, journal.KindDeal, mighty.NoSeat, hands, map[string]any{
		"start_seat": int(t.opts.start),
		"min_pledge": t.opts.minPledge,
	})
}

func (t *Table) bid(ctx context.Context, g *mighty.Game) error {
	p, err := g.Pledge()
	if err != nil {
		return err
	}
	seat, err := p.TurnPlayer()
	if err != nil {
		return err
	}
	s, err := p.BiddingState(seat)
	if err != nil {
		return err
	}
	c, err := t.players[seat].Bidding(ctx, s)
	if err == nil {
		err = g.Bid(seat, c)
	}
	if err != nil {
		return t.fail(ctx, seat, "bid rejected", err)
	}

	e := log.Ctx(ctx).Debug().Int("seat", int(seat))
	if c == nil {
		e.Msg("pass")
	} else {
		e.Stringer("contract", c).Msg("bid")
	}
	return t.record(ctx, journal.KindBid, seat, mighty.Call{Seat: seat, Contract: c}, nil)
}

func (t *Table) exchange(ctx context.Context, g *mighty.Game) error {
	e, err := g.Extra()
	if err != nil {
		return err
	}
	seat := e.Declarer()
	s, err := e.ExtraState()
	if err != nil {
		return err
	}
	plan, err := t.players[seat].DeclarePlan(ctx, s)
	if err == nil {
		err = g.SubmitPlan(plan)
	}
	if err != nil {
		return t.fail(ctx, seat, "plan rejected", err)
	}

	log.Ctx(ctx).Debug().
		Int("declarer", int(seat)).
		Stringer("contract", plan.Contract).
		Msg("plan submitted")
	return t.record(ctx, journal.KindPlan, seat, plan, nil)
}

func (t *Table) act(ctx context.Context, g *mighty.Game) error {
	pp, err := g.Play()
	if err != nil {
		return err
	}
	seat := pp.TurnPlayer()
	s, err := pp.PlayState(seat)
	if err != nil {
		return err
	}
	a, err := t.players[seat].PlayAction(ctx, s)
	if err == nil {
		err = g.Act(seat, a)
	}
	if err != nil {
		return t.fail(ctx, seat, "action rejected", err)
	}
	if err := t.record(ctx, journal.KindAction, seat, a, map[string]any{"round": s.Round}); err != nil {
		return err
	}

	// the round closed with this action
	if rs := pp.RoundResults(); len(rs) > s.Round {
		rr := rs[s.Round]
		log.Ctx(ctx).Debug().Int("round", s.Round).Int("winner", int(rr.Winner)).Msg("round finished")
		return t.record(ctx, journal.KindRound, rr.Winner, rr, map[string]any{
			"round":   s.Round,
			"points":  mighty.Cards(rr.Cards[:]).Score(),
			"partner": int(pp.PartnerRevealed()),
		})
	}
	return nil
}

func (t *Table) fail(ctx context.Context, seat mighty.Seat, msg string, err error) error {
	err = fmt.Errorf("seat %d: %w", seat, err)
	log.Ctx(ctx).Error().Err(err).Int("seat", int(seat)).Msg(msg)
	return err
}

func (t *Table) record(ctx context.Context, kind journal.Kind, seat mighty.Seat, payload any, extras map[string]any) error {
	e, err := journal.NewEvent(kind, seat, payload)
	if err != nil {
		return fmt.Errorf("journal %s: %w", kind, err)
	}
	e.Seq = t.seq
	for k, v := range extras {
		if err := e.Set(k, v); err != nil {
			return fmt.Errorf("journal %s: %w", kind, err)
		}
	}
	if err := t.journal.Append(ctx, t.opts.id, e); err != nil {
		return fmt.Errorf("journal %s: %w", kind, err)
	}
	t.seq++
	return nil
}
