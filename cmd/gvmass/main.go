package main

import (
	"context"
	"os"

	"gvmass/cmd/gvmass/commands"
	"gvmass/lib/osutil"
)

func main() {
	ctx, cancel := osutil.SignalContext(context.Background())
	err := commands.ExecuteContext(ctx)
	cancel()
	if err != nil {
		os.Exit(1)
	}
}
