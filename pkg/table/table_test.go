package table

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-logr/logr"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/play/mighty/pkg/journal"
	"github.com/play/mighty/pkg/mighty"
	"github.com/play/mighty/pkg/player"
)

var errBoom = errors.New("boom")

// passer never bids.
type passer struct {
	*player.RandomBot
}

func (passer) Bidding(context.Context, mighty.BiddingState) (*mighty.Contract, error) {
	return nil, nil
}

// lowballer opens below the minimum.
type lowballer struct {
	*player.RandomBot
}

func (lowballer) Bidding(context.Context, mighty.BiddingState) (*mighty.Contract, error) {
	return &mighty.Contract{Suit: mighty.SuitHeart, Count: 1}, nil
}

// broken fails every play decision.
type broken struct {
	*player.RandomBot
}

func (broken) PlayAction(context.Context, mighty.ExposedGameState) (mighty.Action, error) {
	return mighty.Action{}, errBoom
}

func bots(seed uint64) []player.Player {
	return player.RandomBots(seed, logr.Discard()).Seats()
}

func wrap(players []player.Player, seat int, f func(*player.RandomBot) player.Player) []player.Player {
	players[seat] = f(players[seat].(*player.RandomBot))
	return players
}

func TestNew(t *testing.T) {
	_, err := New(bots(1)[:4], nil)
	assert.ErrorIs(t, err, ErrPlayers)

	tb, err := New(bots(1), nil)
	require.NoError(t, err)
	assert.Len(t, tb.ID(), 36)

	tb, err = New(bots(1), nil, WithID("fixed"))
	require.NoError(t, err)
	assert.Equal(t, "fixed", tb.ID())
}

func TestTable_Run(t *testing.T) {
	ctx := context.Background()
	j := journal.NewMemory()
	tb, err := New(bots(7), j, WithSeed(7), WithStartSeat(2))
	require.NoError(t, err)

	out, err := tb.Run(ctx)
	require.NoError(t, err)
	assert.False(t, out.Cancelled)
	require.NotNil(t, out.Result)
	assert.Equal(t, tb.ID(), out.Game)

	events, err := j.Events(ctx, tb.ID())
	require.NoError(t, err)
	assert.Equal(t, out.Events, len(events))

	counts := map[journal.Kind]int{}
	for i, e := range events {
		assert.Equal(t, i, e.Seq)
		counts[e.Kind]++
	}
	assert.Equal(t, journal.KindDeal, events[0].Kind)
	assert.Equal(t, int64(2), events[0].Get("start_seat").Int())
	assert.Equal(t, journal.KindResult, events[len(events)-1].Kind)
	assert.Equal(t, 1, counts[journal.KindPlan])
	assert.Equal(t, mighty.Rounds*mighty.Seats, counts[journal.KindAction])
	assert.Equal(t, mighty.Rounds, counts[journal.KindRound])
	assert.GreaterOrEqual(t, counts[journal.KindBid], mighty.Seats-1)

	var r mighty.Result
	require.NoError(t, events[len(events)-1].Decode(&r))
	assert.Equal(t, *out.Result, r)
	assert.Equal(t, r.Side == mighty.SideLeading, events[len(events)-1].Get("leading_won").Bool())

	// the first bid comes from the start seat
	var first mighty.Call
	require.NoError(t, events[1].Decode(&first))
	assert.Equal(t, mighty.Seat(2), first.Seat)
}

func TestTable_RunSameSeedSameGame(t *testing.T) {
	ctx := context.Background()
	a, err := New(bots(3), nil, WithSeed(3))
	require.NoError(t, err)
	b, err := New(bots(3), nil, WithSeed(3))
	require.NoError(t, err)

	oa, err := a.Run(ctx)
	require.NoError(t, err)
	ob, err := b.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, oa.Result, ob.Result)
	assert.Equal(t, oa.Events, ob.Events)
}

func TestTable_RunRedisJournal(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	j := journal.NewRedis(client)
	tb, err := New(bots(11), j, WithSeed(11))
	require.NoError(t, err)
	out, err := tb.Run(ctx)
	require.NoError(t, err)

	n, err := j.Len(ctx, tb.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(out.Events), n)

	rounds, err := j.Kinds(ctx, tb.ID(), journal.KindRound)
	require.NoError(t, err)
	require.Len(t, rounds, mighty.Rounds)
	for i, e := range rounds {
		assert.Equal(t, int64(i), e.Get("round").Int())
		var rr mighty.RoundResult
		require.NoError(t, e.Decode(&rr))
		assert.Equal(t, rr.Winner, e.Seat)
	}
}

func TestTable_RunCancelled(t *testing.T) {
	players := make([]player.Player, mighty.Seats)
	for i := range players {
		players[i] = passer{}
	}
	j := journal.NewMemory()
	tb, err := New(players, j)
	require.NoError(t, err)

	out, err := tb.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, out.Cancelled)
	assert.Nil(t, out.Result)

	events, err := j.Events(context.Background(), tb.ID())
	require.NoError(t, err)
	require.Len(t, events, 1+mighty.Seats+1)
	assert.Equal(t, journal.KindCancelled, events[len(events)-1].Kind)
}

func TestTable_RunRejected(t *testing.T) {
	players := wrap(bots(5), 0, func(b *player.RandomBot) player.Player { return lowballer{b} })
	tb, err := New(players, nil)
	require.NoError(t, err)

	_, err = tb.Run(context.Background())
	assert.ErrorIs(t, err, mighty.ErrBidTooLow)
	assert.ErrorIs(t, err, mighty.ErrProtocolViolation)
	assert.Contains(t, err.Error(), "seat 0")
}

func TestTable_RunPlayerError(t *testing.T) {
	// whoever wins the bidding leads round 0, so every seat must be broken
	players := bots(5)
	for i := range players {
		players[i] = broken{players[i].(*player.RandomBot)}
	}
	tb, err := New(players, nil)
	require.NoError(t, err)

	_, err = tb.Run(context.Background())
	assert.ErrorIs(t, err, errBoom)
}

func TestTable_RunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tb, err := New(bots(5), nil)
	require.NoError(t, err)

	_, err = tb.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
