// Command storee-interview runs an interactive memory-capture interview in
// the terminal.
//
// Usage:
//
//	GEMINI_API_KEY=gk-...    storee-interview [flags]
//	OPENAI_API_KEY=sk-...    storee-interview [flags]
//	ANTHROPIC_API_KEY=sk-... storee-interview [flags]
//
// Flags:
//
//	-provider string  Provider: gemini, openai, anthropic (auto-detected from env vars if omitted)
//	-model string     Model ID (default: provider default)
//	-session string   Path to session file to resume
//	-context string   Opening context for a new interview
//	-api-key string   API key (overrides provider's env var)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"

	"github.com/storee/storee"
	"github.com/storee/storee/anthropic"
	bt "github.com/storee/storee/bubbletea"
	"github.com/storee/storee/gemini"
	"github.com/storee/storee/interview"
	storeejson "github.com/storee/storee/json"
	"github.com/storee/storee/openai"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "storee-interview: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		providerFlag   = flag.String("provider", "", "Provider: gemini, openai, anthropic (auto-detected from env vars if omitted)")
		model          = flag.String("model", "", "Model ID (provider-specific)")
		sessionPath    = flag.String("session", "", "Path to session file to resume")
		initialContext = flag.String("context", "", "Opening context for a new interview")
		apiKey         = flag.String("api-key", "", "API key (overrides provider's env var)")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gateway, err := resolveGateway(ctx, *providerFlag, *apiKey)
	if err != nil {
		return err
	}

	var opts []interview.Option
	if *model != "" {
		opts = append(opts, interview.WithModel(*model))
	}
	engine := interview.New(gateway, opts...)

	session, err := loadOrStartSession(engine, *sessionPath, *initialContext)
	if err != nil {
		return err
	}

	final, err := bt.Run(ctx, bt.New(engine, session, storee.DefaultTheme()))
	if err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	session = final.Session()

	// Save on exit: to the resume path when given, otherwise auto-save any
	// conversation with answers in it.
	savePath := *sessionPath
	if savePath == "" {
		if len(session.SubjectTurns()) == 0 {
			return nil
		}
		savePath = defaultSessionPath(session.ID)
	}
	if err := storeejson.Save(savePath, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Session saved to %s\n", savePath)
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

func loadOrStartSession(engine *interview.Engine, sessionPath, initialContext string) (storee.Session, error) {
	if sessionPath != "" {
		session, err := storeejson.Load(sessionPath)
		if err != nil {
			return storee.Session{}, fmt.Errorf("load session: %w", err)
		}
		return session, nil
	}
	return engine.Start(localOwner(), initialContext)
}

// localOwner identifies the interview subject for sessions created on this
// machine.
func localOwner() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}

func defaultSessionPath(id string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".storee", "sessions", id+".json")
}
