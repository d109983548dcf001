package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"github.com/khalid-nowaf/placeip/pkg/entry"
	"github.com/khalid-nowaf/placeip/pkg/locator"
)

const greeting = "Enter an ipv4 string or a number (or a blank line to quit)."

// lineReader is the part of *readline.Instance the query loop uses.
type lineReader interface {
	Readline() (string, error)
}

func newReadline(ctx *Context) (*readline.Instance, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          ctx.cfg.Prompt,
		HistoryFile:     ctx.cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %w", err)
	}
	return l, nil
}

// queryLoop answers one query per line until a blank line, EOF or interrupt.
func queryLoop(r lineReader, out io.Writer, l *locator.Locator, log *zap.Logger) error {
	for {
		line, err := r.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil // OK, stop execution.
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			return nil
		}

		if _, err := fmt.Fprintln(out, answer(l, line, log)); err != nil {
			return err
		}
	}
}

// answer returns the printed form of the record reached by query, or the invalid marker.
func answer(l *locator.Locator, query string, log *zap.Logger) string {
	rec, err := l.Lookup(query)
	if err != nil {
		log.Debug("query not answered", zap.String("query", query), zap.Error(err))
		return entry.Invalid
	}
	return rec.String()
}
