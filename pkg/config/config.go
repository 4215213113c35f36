package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/play/mighty/pkg/mighty"
)

const EnvPrefix = "MIGHTY"

type Log struct {
	Level  string // zerolog level name
	Format string // console or json
	// BotVerbosity is the logr V-level enabled for bots.
	BotVerbosity int
}

type Game struct {
	MinPledge int
	StartSeat mighty.Seat
}

type Batch struct {
	Games   int
	Workers int
	Seed    uint64 // 0 picks a fresh seed per run
}

type Redis struct {
	Addr     string // empty keeps the journal in memory
	Password string
	DB       int
}

type Journal struct {
	MaxLen int64
	TTL    time.Duration
}

type Recent struct {
	Size int
	TTL  time.Duration
}

type Config struct {
	Log     Log
	Game    Game
	Batch   Batch
	Redis   Redis
	Journal Journal
	Recent  Recent
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.bot_verbosity", 0)
	v.SetDefault("game.min_pledge", mighty.DefaultMinPledge)
	v.SetDefault("game.start_seat", 0)
	v.SetDefault("batch.games", 100)
	v.SetDefault("batch.workers", 8)
	v.SetDefault("batch.seed", 0)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("journal.max_len", 1000)
	v.SetDefault("journal.ttl", "24h")
	v.SetDefault("recent.size", 128)
	v.SetDefault("recent.ttl", "10m")
}

// Load reads defaults, then file when set, then MIGHTY_* environment
// variables, e.g. MIGHTY_BATCH_GAMES for batch.games.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	c := &Config{
		Log: Log{
			Level:        v.GetString("log.level"),
			Format:       v.GetString("log.format"),
			BotVerbosity: v.GetInt("log.bot_verbosity"),
		},
		Game: Game{
			MinPledge: v.GetInt("game.min_pledge"),
			StartSeat: mighty.Seat(v.GetInt("game.start_seat")),
		},
		Batch: Batch{
			Games:   v.GetInt("batch.games"),
			Workers: v.GetInt("batch.workers"),
		},
		Redis: Redis{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Journal: Journal{
			MaxLen: v.GetInt64("journal.max_len"),
		},
		Recent: Recent{
			Size: v.GetInt("recent.size"),
		},
	}

	// these come from env or files as strings and must fail loudly
	var err error
	if c.Batch.Seed, err = cast.ToUint64E(v.Get("batch.seed")); err != nil {
		return nil, fmt.Errorf("batch.seed: %w", err)
	}
	if c.Journal.TTL, err = cast.ToDurationE(v.Get("journal.ttl")); err != nil {
		return nil, fmt.Errorf("journal.ttl: %w", err)
	}
	if c.Recent.TTL, err = cast.ToDurationE(v.Get("recent.ttl")); err != nil {
		return nil, fmt.Errorf("recent.ttl: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	var errs []error
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format: want console or json, got %q", c.Log.Format))
	}
	if c.Game.MinPledge < 1 || c.Game.MinPledge > mighty.MaxCount {
		errs = append(errs, fmt.Errorf("game.min_pledge: %d out of range", c.Game.MinPledge))
	}
	if !c.Game.StartSeat.Valid() {
		errs = append(errs, fmt.Errorf("game.start_seat: %d out of range", c.Game.StartSeat))
	}
	if c.Batch.Games < 1 {
		errs = append(errs, fmt.Errorf("batch.games: must be positive"))
	}
	if c.Batch.Workers < 1 {
		errs = append(errs, fmt.Errorf("batch.workers: must be positive"))
	}
	return errors.Join(errs...)
}

// Level returns the configured zerolog level, info if unparsable.
func (c *Config) Level() zerolog.Level {
	l, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}
