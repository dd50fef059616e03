// Command storee runs the memories HTTP API.
//
// Usage:
//
//	STOREE_SECRET=... OPENAI_API_KEY=sk-... storee [flags]
//
// Flags:
//
//	-addr string           Listen address (default ":8080")
//	-provider string       LLM provider: gemini, openai, anthropic (auto-detected from env vars if omitted)
//	-model string          Model ID (default: provider default)
//	-api-key string        API key (overrides provider's env var)
//	-store string          Persistence backend: inmem, redis (default "inmem")
//	-redis-addr string     Redis address (default: STOREE_REDIS_ADDR)
//	-blob-dir string       Media blob directory (default "data/media")
//	-base-url string       Public base URL for signed media links
//	-session-cache int     Session cache size, 0 disables (default 1024)
//
// STOREE_SECRET signs both bearer tokens and media URLs and is required.
// Transcription and semantic search need OPENAI_API_KEY; without it those
// routes report that they are not configured.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/storee/storee"
	"github.com/storee/storee/anthropic"
	"github.com/storee/storee/chromem"
	"github.com/storee/storee/fs"
	"github.com/storee/storee/gemini"
	storeehttp "github.com/storee/storee/http"
	"github.com/storee/storee/inmem"
	"github.com/storee/storee/interview"
	"github.com/storee/storee/openai"
	"github.com/storee/storee/redis"
	"github.com/storee/storee/ristretto"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "storee: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		addr         = flag.String("addr", ":8080", "Listen address")
		providerFlag = flag.String("provider", "", "LLM provider: gemini, openai, anthropic (auto-detected from env vars if omitted)")
		model        = flag.String("model", "", "Model ID (provider-specific)")
		apiKey       = flag.String("api-key", "", "API key (overrides provider's env var)")
		storeFlag    = flag.String("store", "inmem", "Persistence backend: inmem, redis")
		redisAddr    = flag.String("redis-addr", os.Getenv("STOREE_REDIS_ADDR"), "Redis address")
		blobDir      = flag.String("blob-dir", "data/media", "Media blob directory")
		baseURL      = flag.String("base-url", "", "Public base URL for signed media links")
		cacheSize    = flag.Int64("session-cache", 1024, "Session cache size, 0 disables")
	)
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	secret := []byte(os.Getenv("STOREE_SECRET"))
	if len(secret) == 0 {
		return fmt.Errorf("STOREE_SECRET is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gateway, err := resolveGateway(ctx, *providerFlag, *apiKey)
	if err != nil {
		return err
	}

	// The OpenAI client also covers transcription and embeddings. Those
	// features track its key independently of the interview provider.
	var (
		transcriber storee.Transcriber
		index       storee.MemoryIndex
	)
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		oc := openai.New(key)
		transcriber = oc
		index = chromem.New(oc)
	} else {
		logger.Warn().Msg("OPENAI_API_KEY not set; transcription and search disabled")
	}

	var (
		sessions storee.SessionStore
		memories storee.MemoryStore
		stories  storee.StoryStore
		media    storee.MediaStore
	)
	switch *storeFlag {
	case "inmem":
		sessions = inmem.NewSessionStore()
		memories = inmem.NewMemoryStore()
		stories = inmem.NewStoryStore()
		media = inmem.NewMediaStore()
	case "redis":
		if *redisAddr == "" {
			return fmt.Errorf("redis store requires -redis-addr or STOREE_REDIS_ADDR")
		}
		rdb := goredis.NewClient(&goredis.Options{Addr: *redisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		defer rdb.Close()
		sessions = redis.NewSessionStore(rdb)
		memories = redis.NewMemoryStore(rdb)
		stories = redis.NewStoryStore(rdb)
		media = redis.NewMediaStore(rdb)
	default:
		return fmt.Errorf("unknown store %q", *storeFlag)
	}

	if *cacheSize > 0 {
		cached, err := ristretto.NewSessionCache(sessions, *cacheSize)
		if err != nil {
			return fmt.Errorf("session cache: %w", err)
		}
		sessions = cached
	}

	blobs := fs.New(*blobDir, secret, fs.WithBaseURL(*baseURL))

	var engineOpts []interview.Option
	if *model != "" {
		engineOpts = append(engineOpts, interview.WithModel(*model))
	}
	engine := interview.New(gateway, engineOpts...)

	var matOpts []interview.MaterializerOption
	if index != nil {
		matOpts = append(matOpts, interview.WithIndex(index))
	}

	server := storeehttp.NewServer(storeehttp.Config{
		Logger:         logger,
		Verifier:       storeehttp.NewTokenVerifier(secret),
		Engine:         engine,
		Materializer:   interview.NewMaterializer(sessions, memories, matOpts...),
		Sessions:       sessions,
		Memories:       memories,
		Stories:        stories,
		Media:          media,
		Blobs:          blobs,
		BlobSignatures: blobs,
		Transcriber:    transcriber,
		Index:          index,
	})

	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", *addr).Str("store", *storeFlag).Msg("listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info().Msg("stopped")
	return nil
}

// resolveGateway picks the LLM provider from the flag or, when omitted, from
// which API key environment variable is set.
func resolveGateway(ctx context.Context, provider, apiKey string) (storee.Gateway, error) {
	geminiKey := os.Getenv("GEMINI_API_KEY")
	openaiKey := os.Getenv("OPENAI_API_KEY")
	anthropicKey := os.Getenv("ANTHROPIC_API_KEY")

	if provider == "" {
		switch {
		case geminiKey != "":
			provider = "gemini"
		case openaiKey != "":
			provider = "openai"
		case anthropicKey != "":
			provider = "anthropic"
		default:
			return nil, fmt.Errorf("no provider configured: set GEMINI_API_KEY, OPENAI_API_KEY or ANTHROPIC_API_KEY, or pass -provider with -api-key")
		}
	}

	switch provider {
	case "gemini":
		if apiKey == "" {
			apiKey = geminiKey
		}
		if apiKey == "" {
			return nil, fmt.Errorf("gemini: GEMINI_API_KEY is not set")
		}
		return gemini.New(ctx, apiKey)
	case "openai":
		if apiKey == "" {
			apiKey = openaiKey
		}
		if apiKey == "" {
			return nil, fmt.Errorf("openai: OPENAI_API_KEY is not set")
		}
		return openai.New(apiKey), nil
	case "anthropic":
		if apiKey == "" {
			apiKey = anthropicKey
		}
		if apiKey == "" {
			return nil, fmt.Errorf("anthropic: ANTHROPIC_API_KEY is not set")
		}
		return anthropic.New(apiKey), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}
