package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/sandevgo/partsbot/internal/config"
	"github.com/sandevgo/partsbot/internal/service/bot"
	"github.com/sandevgo/partsbot/internal/service/reply"
	"github.com/sandevgo/partsbot/pkg/log"
)

// ReadLine is the local chat transport. Each run is its own session so
// stale clarification state from a previous run cannot leak in.
type ReadLine struct {
	cfg       *config.AppConfig
	orch      *bot.Orchestrator
	formatter *reply.Formatter
	rl        *readline.Instance
	sessionID string
}

func NewReadLine(orch *bot.Orchestrator, cfg *config.AppConfig) (*ReadLine, error) {
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:       cfg,
		orch:      orch,
		formatter: reply.NewFormatter(),
		rl:        rl,
		sessionID: "cli-" + uuid.NewString(),
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("parts lookup started. Type 'exit' to quit.")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		result, err := r.orch.HandleMessage(ctx, r.sessionID, line)
		if err != nil {
			logger.Error().Err(err).Msg("message handling failed")
			fmt.Fprintf(r.rl.Stdout(), "Error: %v\n", err)
			continue
		}

		fmt.Fprintf(r.rl.Stdout(), "%s\n", r.formatter.Render(result))
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
