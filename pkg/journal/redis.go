package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

type options struct {
	prefix string
	maxLen int64
	ttl    time.Duration
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) setDefault() {
	if o.prefix == "" {
		o.prefix = "mighty:journal"
	}
	if o.maxLen <= 0 {
		o.maxLen = 1000 // a full game is about 80 events
	}
	if o.ttl <= 0 {
		o.ttl = time.Hour * 24
	}
}

type Option func(*options)

// WithPrefix sets the key prefix, "mighty:journal" by default.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithMaxLen caps each game's list; older events are trimmed.
func WithMaxLen(n int64) Option {
	return func(o *options) {
		o.maxLen = n
	}
}

// WithTTL sets how long a game's list lives after its last append.
func WithTTL(d time.Duration) Option {
	return func(o *options) {
		o.ttl = d
	}
}

// Redis stores each game as a list of JSON events under <prefix>:<game>.
type Redis struct {
	client redis.Cmdable
	opts   *options
}

var _ Journal = (*Redis)(nil)

func NewRedis(client redis.Cmdable, opts ...Option) *Redis {
	o := (&options{}).apply(opts...)
	o.setDefault()
	return &Redis{client: client, opts: o}
}

func (r *Redis) key(game string) string {
	return r.opts.prefix + ":" + game
}

// Append pushes events, then trims and refreshes the TTL in the same pipeline.
func (r *Redis) Append(ctx context.Context, game string, events ...Event) error {
	if game == "" {
		return ErrEmptyGame
	}
	if len(events) == 0 {
		return nil
	}

	payloads := make([]any, 0, len(events))
	for i, e := range events {
		e.Game = game
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("json marshal failed for event %d: %w", i, err)
		}
		payloads = append(payloads, data)
	}

	key := r.key(game)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, payloads...)
		pipe.LTrim(ctx, key, -r.opts.maxLen, -1)
		pipe.Expire(ctx, key, r.opts.ttl)
		return nil
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("game", game).Int("batch_size", len(events)).Msg("journal append failed")
		return fmt.Errorf("redis RPush failed: %w", err)
	}
	return nil
}

// Events returns every stored event of game, oldest first.
func (r *Redis) Events(ctx context.Context, game string) ([]Event, error) {
	return r.filter(ctx, game, nil)
}

// Kinds returns only the events of the given kinds. Entries are matched on
// their raw JSON and only matches are decoded.
func (r *Redis) Kinds(ctx context.Context, game string, kinds ...Kind) ([]Event, error) {
	want := make(map[string]struct{}, len(kinds))
	for _, k := range kinds {
		want[string(k)] = struct{}{}
	}
	return r.filter(ctx, game, func(raw string) bool {
		_, ok := want[gjson.Get(raw, "kind").String()]
		return ok
	})
}

// Seats returns, per seat, how many events that seat produced.
func (r *Redis) Seats(ctx context.Context, game string) (map[int]int, error) {
	raws, err := r.client.LRange(ctx, r.key(game), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis LRange failed: %w", err)
	}
	out := make(map[int]int)
	for _, raw := range raws {
		seat := cast.ToInt(gjson.Get(raw, "seat").Value())
		if seat < 0 {
			continue
		}
		out[seat]++
	}
	return out, nil
}

// Len returns the number of stored events of game.
func (r *Redis) Len(ctx context.Context, game string) (int64, error) {
	return r.client.LLen(ctx, r.key(game)).Result()
}

func (r *Redis) filter(ctx context.Context, game string, keep func(raw string) bool) ([]Event, error) {
	raws, err := r.client.LRange(ctx, r.key(game), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis LRange failed: %w", err)
	}
	events := make([]Event, 0, len(raws))
	for _, raw := range raws {
		if keep != nil && !keep(raw) {
			continue
		}
		var e Event
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("game", game).Msg("skip malformed journal entry")
			continue
		}
		events = append(events, e)
	}
	return events, nil
}
