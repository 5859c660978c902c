package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/internal/iocache"
	"github.com/jmallard/shelfwatch/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version metadata, overwritten by goreleaser ldflags on release builds.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is handed down to every command execution.
var rootCtx = context.Background()

// input receives raw values from flags, env and the config file via Viper;
// cfg holds the validated result the commands actually read.
var (
	input = &contract.ConfigRawInput{}
	cfg   = &contract.Config{}
)

// profile holds the CPU and heap profiling settings.
var profile = &contract.ProfileConfig{}

// cacheManager hands the durable stores to command executors.
var cacheManager contract.CacheManager

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "shelfwatch",
	Short:              "Analyze retail sales history to forecast demand and flag inventory risk.",
	Long:               `Shelfwatch cuts through your sales ledger to show you which products deserve shelf space and which are quietly dying.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetCacheManager sets the global cache manager.
func SetCacheManager(mgr contract.CacheManager) {
	cacheManager = mgr
}

// useConfigSource points Viper at the config file: an explicit --config path
// when one was given, otherwise .shelfwatch.yaml searched in the working and
// home directories.
func useConfigSource() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".shelfwatch")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
}

// readConfigSource loads the config file when one exists. A missing file is
// fine; defaults, env vars, and flags still apply.
func readConfigSource() error {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// initConfig seeds Viper before any command runs: config source, env
// bindings, and the default for every key.
func initConfig() {
	useConfigSource()

	viper.SetEnvPrefix("SHELFWATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("horizon", schema.DefaultHorizonDays)
	viper.SetDefault("region", schema.AllRegions)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("trends-timeframe", contract.DefaultTrendsTimeframe)
	viper.SetDefault("cache-backend", schema.SQLiteBackend)
	viper.SetDefault("cache-db-connect", "")
	viper.SetDefault("history-backend", "")
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("emoji", "yes")
	viper.SetDefault("color", "yes")
}

// loadConfigFile resolves and reads the config file for commands that skip
// the full sharedSetup pipeline (cache and history maintenance).
func loadConfigFile() error {
	useConfigSource()
	return readConfigSource()
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	profilePrefix := viper.GetString("profile")
	if err := contract.ProcessProfilingConfig(profile, profilePrefix); err != nil {
		return fmt.Errorf("failed to process profiling config: %w", err)
	}
	if err := startProfiling(); err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}

	// Merge order: defaults, then file, then env, then flags.
	if err := readConfigSource(); err != nil {
		return err
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// The positional argument is the data directory; Viper never sees those.
	if len(args) == 1 {
		input.DataDirStr = args[0]
	} else {
		input.DataDirStr = "."
	}

	// Validation populates the global cfg from the raw input.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// Bring up cache and history stores with the validated backends.
	if err := iocache.InitStores(cfg.CacheBackend, cfg.CacheDBConnect, cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}

	return nil
}

// sharedSetupWrapper adapts sharedSetup to Cobra's PreRunE signature.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// cpuProfileFile stays open for the lifetime of the CPU profile.
var cpuProfileFile *os.File

// startProfiling begins a CPU profile when --profile is set. The notice goes
// to stderr so redirected stdout stays parseable.
func startProfiling() error {
	if !profile.Enabled {
		return nil
	}

	f, err := os.Create(profile.Prefix + ".cpu.prof")
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("could not start CPU profiling: %w", err)
	}
	cpuProfileFile = f

	fmt.Fprintf(os.Stderr, "Profiling to %s.cpu.prof and %s.mem.prof\n", profile.Prefix, profile.Prefix)
	return nil
}

// stopProfiling ends the CPU profile and captures a heap snapshot.
func stopProfiling() error {
	if !profile.Enabled {
		return nil
	}

	pprof.StopCPUProfile()
	if cpuProfileFile != nil {
		_ = cpuProfileFile.Close()
		cpuProfileFile = nil
	}

	memFile, err := os.Create(profile.Prefix + ".mem.prof")
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer func() { _ = memFile.Close() }()
	if err := pprof.WriteHeapProfile(memFile); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Profiles written. Inspect with 'go tool pprof %s.cpu.prof'\n", profile.Prefix)
	return nil
}

// StopProfiling flushes profiles on exit; main calls it after teardown.
func StopProfiling() error {
	return stopProfiling()
}
