package cli

import (
	"fmt"
)

// QueryCmd loads a dataset and answers queries interactively.
type QueryCmd struct {
	File string `arg:"" type:"existingfile" help:"Dataset of IP ranges, one CSV line per range"`
}

// Run executes the query command.
func (cmd *QueryCmd) Run(g *Globals) error {
	ctx, err := newStdoutContext(g)
	if err != nil {
		return err
	}
	defer ctx.Close()

	if err := ctx.load(cmd.File); err != nil {
		return err
	}

	rl, err := newReadline(ctx)
	if err != nil {
		return err
	}
	defer rl.Close()
	ctx.out = rl.Stdout()

	if err := printSummary(ctx); err != nil {
		return err
	}
	return queryLoop(rl, ctx.out, ctx.locator, ctx.log)
}

func printSummary(ctx *Context) error {
	if _, err := fmt.Fprintln(ctx.out); err != nil {
		return err
	}
	if err := printStats(ctx.out, ctx.locator.Stats()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(ctx.out, "\n\n%s\n", greeting)
	return err
}

// ShowCmd prints every record of a dataset.
type ShowCmd struct {
	File   string `arg:"" type:"existingfile" help:"Dataset of IP ranges, one CSV line per range"`
	Output string `short:"o" type:"path" help:"Write to this file instead of standard output"`
	Format string `enum:"text,csv,json" default:"text" help:"Output format (text, csv, json)"`
}

// Run executes the show command.
func (cmd *ShowCmd) Run(g *Globals) error {
	ctx, err := newStdoutContext(g)
	if err != nil {
		return err
	}
	defer ctx.Close()

	if err := ctx.load(cmd.File); err != nil {
		return err
	}
	return writeRecords(ctx, newWriter(cmd.Format), cmd.Output)
}

// StatsCmd prints the trie statistics of a dataset.
type StatsCmd struct {
	File string `arg:"" type:"existingfile" help:"Dataset of IP ranges, one CSV line per range"`
}

// Run executes the stats command.
func (cmd *StatsCmd) Run(g *Globals) error {
	ctx, err := newStdoutContext(g)
	if err != nil {
		return err
	}
	defer ctx.Close()

	result, err := ctx.locator.LoadFile(cmd.File)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(ctx.out, result.String()); err != nil {
		return err
	}
	return printStats(ctx.out, ctx.locator.Stats())
}
