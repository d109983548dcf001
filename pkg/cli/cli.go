package cli

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/khalid-nowaf/placeip/pkg/config"
	"github.com/khalid-nowaf/placeip/pkg/locator"
	"github.com/khalid-nowaf/placeip/pkg/trie"
)

// Globals are the flags shared by every command.
type Globals struct {
	Config string `help:"Path to a YAML configuration file" type:"path" placeholder:"PATH"`
	Debug  bool   `help:"Enable debug logging"`
}

var CLI struct {
	Globals

	Query QueryCmd `cmd:"" default:"withargs" help:"Load a dataset and answer address queries from standard input"`
	Show  ShowCmd  `cmd:"" help:"Print every record of a dataset in trie order"`
	Stats StatsCmd `cmd:"" help:"Print trie statistics for a dataset"`
}

// Context holds what a command needs once flags and configuration are resolved.
type Context struct {
	cfg     config.Config
	log     *zap.Logger
	locator *locator.Locator
	out     io.Writer
}

func newContext(g *Globals, out io.Writer) (*Context, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	log, err := HandleLoggingParams(g.Debug, cfg)
	if err != nil {
		return nil, err
	}

	return &Context{
		cfg: cfg,
		log: log,
		locator: locator.New(
			locator.WithLogger(log),
			locator.WithCacheSize(cfg.Cache()),
		),
		out: out,
	}, nil
}

func newStdoutContext(g *Globals) (*Context, error) {
	return newContext(g, os.Stdout)
}

func (ctx *Context) load(path string) error {
	ctx.log.Debug("loading dataset", zap.String("file", path))
	_, err := ctx.locator.LoadFile(path)
	return err
}

// Close releases the locator and flushes the logger.
func (ctx *Context) Close() {
	ctx.locator.Close()
	_ = ctx.log.Sync()
}

func printStats(w io.Writer, stats trie.Stats) error {
	_, err := fmt.Fprintf(w, "height:   %d\nsize:   %d\nnode_count:   %d\n", stats.Height, stats.Leaves, stats.Branches)
	return err
}
