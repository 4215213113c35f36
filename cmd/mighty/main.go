package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/play/mighty/pkg/compile"
	"github.com/play/mighty/pkg/config"
	"github.com/play/mighty/pkg/journal"
	"github.com/play/mighty/pkg/logger/zerologr"
	"github.com/play/mighty/pkg/player"
	"github.com/play/mighty/pkg/table"
)

func main() {
	configFile := pflag.StringP("config", "c", "", "config file (yaml, json or toml)")
	pflag.Int("batch.games", 100, "number of games to play")
	pflag.Int("batch.workers", 8, "games played at once")
	pflag.Uint64("batch.seed", 0, "seed of the first deal, 0 for random")
	pflag.String("redis.addr", "", "journal to this redis instead of memory")
	pflag.String("log.level", "info", "zerolog level")
	pflag.Parse()

	// a missing .env is fine
	_ = godotenv.Load()

	v := viper.GetViper()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg, err := config.Load(v, *configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogger(cfg)
	compile.Log()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.Logger.WithContext(ctx)

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func setupLogger(cfg *config.Config) {
	zerolog.SetGlobalLevel(cfg.Level())
	zerolog.TimeFieldFormat = time.RFC3339Nano
	if cfg.Log.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
	zerolog.DefaultContextLogger = &log.Logger
}

func run(ctx context.Context, cfg *config.Config) error {
	var j journal.Journal = journal.NewMemory()
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}
		j = journal.NewRedis(client,
			journal.WithMaxLen(cfg.Journal.MaxLen),
			journal.WithTTL(cfg.Journal.TTL),
		)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("journal in redis")
	}

	seed := cfg.Batch.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	botLogger := zerologr.Global(cfg.Log.BotVerbosity).WithName("bot")
	recent := table.NewRecent(cfg.Recent.Size, cfg.Recent.TTL)

	runner := &table.Runner{
		Games:   cfg.Batch.Games,
		Workers: cfg.Batch.Workers,
		Seed:    seed,
		Lineup: func(gameSeed uint64) []player.Player {
			return player.RandomBots(gameSeed, botLogger).Seats()
		},
		Journal: j,
		Recent:  recent,
		Options: []table.Option{
			table.WithStartSeat(cfg.Game.StartSeat),
			table.WithMinPledge(cfg.Game.MinPledge),
		},
	}
	log.Info().Uint64("seed", seed).Int("games", runner.Games).Int("workers", runner.Workers).Msg("batch start")

	sum, err := runner.Run(ctx)
	for _, o := range recent.Outcomes() {
		e := log.Debug().Str("game", o.Game).Bool("cancelled", o.Cancelled).Dur("duration", o.Duration)
		if o.Result != nil {
			e = e.Stringer("contract", o.Result.Contract).Stringer("side", o.Result.Side).Int("leading_total", o.Result.LeadingTotal)
		}
		e.Msg("recent outcome")
	}
	fmt.Printf("games=%d cancelled=%d failed=%d leading=%d opposing=%d leading_win_rate=%.3f elapsed=%s\n",
		sum.Games, sum.Cancelled, sum.Failed, sum.LeadingWins, sum.OpposingWins, sum.LeadingWinRate(), sum.Elapsed)
	return err
}
