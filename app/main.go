package main

import (
	"os"
	"time"

	"github.com/rbhz/dictionary-lookup/app/api"
	"github.com/rbhz/dictionary-lookup/app/bot"
	"github.com/rbhz/dictionary-lookup/app/clients/dictionaryapi"
	"github.com/rbhz/dictionary-lookup/app/highlight"
	"github.com/rbhz/dictionary-lookup/app/history"
	"github.com/rbhz/dictionary-lookup/app/lookup"
	"github.com/rbhz/dictionary-lookup/app/metrics"
	"github.com/rbhz/dictionary-lookup/app/session"
	"github.com/rbhz/dictionary-lookup/app/view"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	log "github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"
)

const sweepInterval = time.Minute

type Opts struct {
	Port          int           `long:"port" env:"PORT" default:"8080" description:"Port to listen on"`
	DictionaryURL string        `long:"dictionary-url" env:"DICTIONARY_URL" default:"https://api.dictionaryapi.dev/api/v2/entries/en" description:"Dictionary API base URL"`
	LookupTimeout time.Duration `long:"lookup-timeout" env:"LOOKUP_TIMEOUT" default:"10s" description:"Dictionary request timeout"`
	RedisURL      string        `long:"redis" env:"REDIS_URL" description:"Redis database URL"`
	BoltDB        string        `long:"boltdb" env:"BOLTDB" description:"Path to BoltDB, histories are kept in memory when neither redis nor boltdb is set"`
	SessionSecret string        `long:"session-secret" env:"SESSION_SECRET" required:"true" description:"Session cookie signing secret"`
	SessionTTL    time.Duration `long:"session-ttl" env:"SESSION_TTL" default:"24h" description:"Idle session lifetime"`
	BotToken      string        `long:"bot-token" env:"BOT_TOKEN" description:"Telegram bot token, bot is disabled when empty"`
	LogLevel      string        `long:"log-level" env:"LOG_LEVEL" default:"info" description:"Log level"`
	LogPretty     bool          `long:"log-pretty" env:"LOG_PRETTY" description:"Human readable logs"`
}

func main() {
	var opts Opts
	_, err := flags.ParseArgs(&opts, os.Args)
	if err != nil {
		return
	}
	setupLog(opts)

	storage, closeStorage := getStorage(opts)
	defer closeStorage()

	m := metrics.New()
	looker := lookup.NewService(dictionaryapi.NewClient(opts.DictionaryURL, opts.LookupTimeout))
	webSessions := session.NewManager(storage, session.Pipeline{
		Looker:      looker,
		Renderer:    view.HTML{},
		Highlighter: highlight.New(highlight.DefaultMarker),
		Metrics:     m,
	})
	managers := []*session.Manager{webSessions}

	if opts.BotToken != "" {
		botSessions := session.NewManager(storage, session.Pipeline{
			Looker:      looker,
			Renderer:    bot.Renderer{},
			Highlighter: highlight.New(bot.Marker),
			Metrics:     m,
		})
		managers = append(managers, botSessions)
		b, err := bot.NewTelegramBot(opts.BotToken, botSessions, []bot.Handler{
			bot.StartHandler{},
			bot.HistoryHandler{},
			bot.WordHandler{},
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize telegram bot")
		}
		go b.Start()
		defer b.Stop()
	}

	go sweep(storage, managers, opts.SessionTTL)

	server := api.NewServer(webSessions, m, opts.SessionSecret, opts.SessionTTL)
	log.Info().Int("port", opts.Port).Msg("starting API server")
	if err := server.Run(opts.Port); err != nil {
		log.Error().Err(err).Msg("failed to run API server")
	}
}

func setupLog(opts Opts) {
	level, err := zerolog.ParseLevel(opts.LogLevel)
	if err != nil {
		log.Warn().Err(err).Str("level", opts.LogLevel).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if opts.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// sweep periodically drops idle sessions and expired bolt histories
func sweep(storage history.Storage, managers []*session.Manager, ttl time.Duration) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for range ticker.C {
		for _, manager := range managers {
			if pruned := manager.Prune(ttl); pruned > 0 {
				log.Info().Int("pruned", pruned).Int("live", manager.Len()).Msg("idle sessions removed")
			}
		}
		if boltStorage, ok := storage.(*history.BoltStorage); ok {
			removed, err := boltStorage.Sweep(ttl)
			if err != nil {
				log.Error().Err(err).Msg("failed to sweep bolt histories")
				continue
			}
			if removed > 0 {
				log.Info().Int("removed", removed).Msg("expired histories removed")
			}
		}
	}
}

func getStorage(opts Opts) (history.Storage, func()) {
	switch {
	case opts.RedisURL != "":
		redisStorage, err := history.NewRedisStorage(opts.RedisURL, opts.SessionTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create redis client")
		}
		return redisStorage, func() {
			if err := redisStorage.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close redis client")
			}
		}
	case opts.BoltDB != "":
		boltDB, err := bolt.Open(opts.BoltDB, 0600, nil)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create boltDB database")
		}
		boltStorage, err := history.NewBoltStorage(boltDB)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to bolt storage")
		}
		return boltStorage, func() {
			err := boltDB.Close()
			if err != nil {
				log.Error().Err(err).Msg("failed to close boltDB database")
			}
		}
	default:
		return history.NewInMemoryStorage(), func() {}
	}
}
