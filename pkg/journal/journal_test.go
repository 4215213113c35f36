package journal

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/play/mighty/pkg/mighty"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return client, mr
}

func mustEvent(t *testing.T, kind Kind, seat mighty.Seat, payload any) Event {
	t.Helper()
	e, err := NewEvent(kind, seat, payload)
	require.NoError(t, err)
	return e
}

func sampleEvents(t *testing.T) []Event {
	c := mighty.Contract{Suit: mighty.SuitSpade, Count: 14}
	plan := mighty.Plan{
		Contract: c,
		Partner:  mighty.PartnerByCard(mighty.NewCard(mighty.SuitHeart, mighty.RankK)),
		Discards: mighty.Cards{mighty.NewCard(mighty.SuitClub, mighty.Rank2), mighty.NewCard(mighty.SuitClub, mighty.Rank4), mighty.Joker},
	}
	return []Event{
		mustEvent(t, KindDeal, mighty.NoSeat, nil),
		mustEvent(t, KindBid, 0, mighty.Call{Seat: 0, Contract: &c}),
		mustEvent(t, KindBid, 1, mighty.Call{Seat: 1}),
		mustEvent(t, KindPlan, 0, plan),
		mustEvent(t, KindAction, 0, mighty.CallJoker(mighty.NewCard(mighty.SuitClub, mighty.Rank3))),
	}
}

func TestRedis_AppendEvents(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()
	j := NewRedis(client, WithPrefix("test"))

	events := sampleEvents(t)
	require.NoError(t, events[3].Set("source", "bot"))
	require.NoError(t, j.Append(ctx, "g1", events...))

	assert.True(t, mr.Exists("test:g1"))
	n, err := j.Len(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, int64(len(events)), n)

	got, err := j.Events(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, got, len(events))
	for i, e := range got {
		assert.Equal(t, "g1", e.Game)
		assert.Equal(t, events[i].Kind, e.Kind)
		assert.Equal(t, events[i].Seat, e.Seat)
	}

	var call mighty.Call
	require.NoError(t, got[1].Decode(&call))
	require.NotNil(t, call.Contract)
	assert.Equal(t, mighty.Contract{Suit: mighty.SuitSpade, Count: 14}, *call.Contract)

	var plan mighty.Plan
	require.NoError(t, got[3].Decode(&plan))
	assert.Equal(t, mighty.PartnerCard, plan.Partner.Kind)
	assert.Equal(t, mighty.NewCard(mighty.SuitHeart, mighty.RankK), plan.Partner.Card)
	assert.Contains(t, plan.Discards, mighty.Joker)
	assert.Equal(t, "bot", got[3].Get("source").String())

	var a mighty.Action
	require.NoError(t, got[4].Decode(&a))
	assert.Equal(t, mighty.ActionCallJoker, a.Kind)

	empty, err := j.Events(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, empty)

	assert.ErrorIs(t, j.Append(ctx, "", events...), ErrEmptyGame)
}

func TestRedis_Kinds(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()
	j := NewRedis(client)
	require.NoError(t, j.Append(ctx, "g2", sampleEvents(t)...))

	bids, err := j.Kinds(ctx, "g2", KindBid)
	require.NoError(t, err)
	require.Len(t, bids, 2)
	assert.Equal(t, mighty.Seat(1), bids[1].Seat)

	some, err := j.Kinds(ctx, "g2", KindDeal, KindPlan)
	require.NoError(t, err)
	assert.Len(t, some, 2)

	none, err := j.Kinds(ctx, "g2", KindResult)
	require.NoError(t, err)
	assert.Empty(t, none)

	seats, err := j.Seats(ctx, "g2")
	require.NoError(t, err)
	assert.Equal(t, map[int]int{0: 3, 1: 1}, seats)
}

func TestRedis_TrimAndTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()
	j := NewRedis(client, WithMaxLen(3), WithTTL(time.Minute))

	events := sampleEvents(t)
	require.NoError(t, j.Append(ctx, "g3", events...))

	got, err := j.Events(ctx, "g3")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, KindBid, got[0].Kind)
	assert.Equal(t, KindAction, got[2].Kind)

	assert.Equal(t, time.Minute, mr.TTL("mighty:journal:g3"))
	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("mighty:journal:g3"))
}

func TestRedis_SkipsMalformed(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()
	j := NewRedis(client)
	_, err := mr.RPush("mighty:journal:g4", "not json")
	require.NoError(t, err)
	require.NoError(t, j.Append(ctx, "g4", mustEvent(t, KindDeal, mighty.NoSeat, nil)))

	got, err := j.Events(ctx, "g4")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, KindDeal, got[0].Kind)
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Append(ctx, "b", sampleEvents(t)[:2]...))
	require.NoError(t, m.Append(ctx, "a", sampleEvents(t)[:1]...))
	assert.ErrorIs(t, m.Append(ctx, "", sampleEvents(t)...), ErrEmptyGame)

	got, err := m.Events(ctx, "b")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Game)

	got[0].Kind = KindResult
	again, err := m.Events(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, KindDeal, again[0].Kind)

	assert.Equal(t, []string{"a", "b"}, m.Games())
}

func TestEvent_Extras(t *testing.T) {
	e := mustEvent(t, KindRound, 2, nil)
	assert.False(t, e.Get("points").Exists())

	require.NoError(t, e.Set("points", 3))
	require.NoError(t, e.Set("partner.revealed", true))
	assert.Equal(t, int64(3), e.Get("points").Int())
	assert.True(t, e.Get("partner.revealed").Bool())
}

func TestEvent_ZeroCardRoundTrip(t *testing.T) {
	lead := mustEvent(t, KindAction, 0, mighty.StartWithJoker(mighty.SuitClub))
	assert.Contains(t, string(lead.Data), `"card":"--"`)

	var a mighty.Action
	require.NoError(t, lead.Decode(&a))
	assert.Equal(t, mighty.StartWithJoker(mighty.SuitClub), a)

	alone := mustEvent(t, KindPlan, 0, mighty.NoPartner())
	var pc mighty.PartnerCondition
	require.NoError(t, alone.Decode(&pc))
	assert.Equal(t, mighty.NoPartner(), pc)
}
