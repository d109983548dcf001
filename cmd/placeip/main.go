package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/khalid-nowaf/placeip/pkg/cli"
)

func main() {
	ctx := kong.Parse(&cli.CLI,
		kong.Name("placeip"),
		kong.Description("Find the IP range record that owns an address"),
		kong.UsageOnError(),
	)
	if err := ctx.Run(&cli.CLI.Globals); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
