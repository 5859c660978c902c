// main is the entry point for the shelfwatch CLI.
package main

import (
	"fmt"
	"os"

	"github.com/jmallard/shelfwatch/cmd"
	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/internal/iocache"
)

func main() {
	// Wire the persistence manager before any command runs.
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()

	// Stores and profiles must flush even on command failure. os.Exit
	// below skips deferred calls, so run the teardown inline.
	iocache.CloseStores()
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("stopping profiler", perr)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
