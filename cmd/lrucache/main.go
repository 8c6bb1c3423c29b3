package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"lrucache/internal/cache"
)

const (
	defaultEnvFile  = ".env"
	defaultCapacity = 3
	defaultTTL      = 2 * time.Second
	defaultWait     = 3 * time.Second
	probeKeys       = 6
)

type demoConfig struct {
	Capacity int
	TTL      time.Duration
	Wait     time.Duration
}

func main() {
	// Flag env vars are read while parsing, so the .env file is loaded first.
	envFile := os.Getenv("LRUCACHE_ENV_FILE")
	if envFile == "" {
		envFile = defaultEnvFile
	}
	if err := loadEnvFile(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "load %s: %v\n", envFile, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadEnvFile populates the process environment from path. A missing file is
// not an error; variables already set are left alone.
func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "lrucache",
		Usage:     "demonstrate LRU eviction and TTL expiry on an in-memory cache",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "capacity",
				Value:   defaultCapacity,
				Usage:   "maximum number of entries",
				EnvVars: []string{"LRUCACHE_CAPACITY"},
			},
			&cli.DurationFlag{
				Name:    "ttl",
				Value:   defaultTTL,
				Usage:   "lifetime of every entry",
				EnvVars: []string{"LRUCACHE_TTL"},
			},
			&cli.DurationFlag{
				Name:    "wait",
				Value:   defaultWait,
				Usage:   "how long to sleep before showing expiry",
				EnvVars: []string{"LRUCACHE_WAIT"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "debug, info, warn or error",
				EnvVars: []string{"LRUCACHE_LOG_LEVEL"},
			},
		},
		Action: func(c *cli.Context) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(c.String("log-level"))); err != nil {
				return fmt.Errorf("invalid log level %q: %w", c.String("log-level"), err)
			}
			logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

			return run(c.Context, stdout, logger, demoConfig{
				Capacity: c.Int("capacity"),
				TTL:      c.Duration("ttl"),
				Wait:     c.Duration("wait"),
			})
		},
	}
}

func run(ctx context.Context, out io.Writer, logger *slog.Logger, cfg demoConfig) error {
	c, err := cache.New[string, string](cache.Config{
		Capacity: cfg.Capacity,
		TTL:      cfg.TTL,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("create cache: %w", err)
	}

	logger.Info("demo starting", "capacity", cfg.Capacity, "ttl", cfg.TTL, "wait", cfg.Wait)
	fmt.Fprintln(out, "=== LRU Cache with TTL Demo ===")

	if err := putAll(c, [][2]string{{"1", "Apple"}, {"2", "Banana"}, {"3", "Cherry"}}); err != nil {
		return err
	}
	fmt.Fprintln(out, "\nInitial cache state:")
	printCache(out, c)

	// Touch "2" so it becomes MRU.
	v, _ := c.Get("2")
	fmt.Fprintf(out, "\nAccessing key '2': %s\n", v)
	printCache(out, c)

	fmt.Fprintln(out, "\nAdding '4': Dragonfruit")
	if err := c.Put("4", "Dragonfruit"); err != nil {
		return err
	}
	printCache(out, c)

	fmt.Fprintf(out, "\nWaiting for TTL expiration (%s)...\n", cfg.Wait)
	wait := time.NewTimer(cfg.Wait)
	defer wait.Stop()

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
		return nil
	case <-wait.C:
	}

	fmt.Fprintln(out, "\nAfter TTL expiration:")
	printCache(out, c)

	fmt.Fprintln(out, "\nAdding fresh items:")
	if err := putAll(c, [][2]string{{"5", "Elderberry"}, {"6", "Fig"}}); err != nil {
		return err
	}
	printCache(out, c)

	logger.Info("demo finished", "size", c.Len())
	return nil
}

func putAll(c *cache.Cache[string, string], kvs [][2]string) error {
	for _, kv := range kvs {
		if err := c.Put(kv[0], kv[1]); err != nil {
			return fmt.Errorf("put %s: %w", kv[0], err)
		}
	}
	return nil
}

// printCache probes keys 1..6 with Get, so it refreshes recency and drops
// expired entries just like any other caller would.
func printCache(out io.Writer, c *cache.Cache[string, string]) {
	fmt.Fprintf(out, "Cache size: %d\n", c.Len())
	fmt.Fprintf(out, "Keys (MRU->LRU): %v\n", c.Keys())
	for i := 1; i <= probeKeys; i++ {
		key := fmt.Sprint(i)
		if v, ok := c.Get(key); ok {
			fmt.Fprintf(out, "Key %s: %s\n", key, v)
		} else {
			fmt.Fprintf(out, "Key %s: <absent>\n", key)
		}
	}
}
