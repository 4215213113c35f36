package table

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/play/mighty/pkg/journal"
	"github.com/play/mighty/pkg/mighty"
	"github.com/play/mighty/pkg/player"
)

// Lineup seats the players for the game with the given seed.
type Lineup func(seed uint64) []player.Player

// Summary aggregates a batch.
type Summary struct {
	Games        int           `json:"games"`
	Cancelled    int           `json:"cancelled"`
	LeadingWins  int           `json:"leading_wins"`
	OpposingWins int           `json:"opposing_wins"`
	Failed       int           `json:"failed"`
	Elapsed      time.Duration `json:"elapsed"`
}

// LeadingWinRate is the share of played-out games won by the declarer's side.
func (s Summary) LeadingWinRate() float64 {
	played := s.LeadingWins + s.OpposingWins
	if played == 0 {
		return 0
	}
	return float64(s.LeadingWins) / float64(played)
}

// Runner plays many independent tables concurrently.
type Runner struct {
	Games   int
	Workers int
	Seed    uint64 // game i is dealt from Seed+i
	Lineup  Lineup
	Journal journal.Journal
	Recent  *Recent
	Options []Option
}

// Run plays Games tables, at most Workers at a time. A failing table is
// counted and logged; the first failure is returned after the batch ends.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var (
		mu       sync.Mutex
		sum      Summary
		firstErr error
	)
	begin := time.Now()
	p := newPool(r.Workers)

	for i := 0; i < r.Games; i++ {
		seed := r.Seed + uint64(i)
		err := p.Do(ctx, func(ticket int) {
			opts := append([]Option{WithSeed(seed)}, r.Options...)
			t, err := New(r.Lineup(seed), r.Journal, opts...)
			var out Outcome
			if err == nil {
				out, err = t.Run(log.Ctx(ctx).With().Int("worker", ticket).Logger().WithContext(ctx))
			}

			mu.Lock()
			defer mu.Unlock()
			sum.Games++
			switch {
			case err != nil:
				sum.Failed++
				if firstErr == nil {
					firstErr = err
				}
				return
			case out.Cancelled:
				sum.Cancelled++
			case out.Result.Side == mighty.SideLeading:
				sum.LeadingWins++
			default:
				sum.OpposingWins++
			}
			if r.Recent != nil {
				r.Recent.Add(out)
			}
		})
		if err != nil {
			mu.Lock()
			firstErr = errors.Join(firstErr, err)
			mu.Unlock()
			break
		}
	}
	p.Wait()

	sum.Elapsed = time.Since(begin)
	log.Ctx(ctx).Info().
		Int("games", sum.Games).
		Int("cancelled", sum.Cancelled).
		Int("failed", sum.Failed).
		Float64("leading_win_rate", sum.LeadingWinRate()).
		Dur("elapsed", sum.Elapsed).
		Msg("batch finished")
	return sum, firstErr
}
