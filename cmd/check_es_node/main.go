// Command check_es_node probes one Elasticsearch node through its _local
// stats: open file descriptors, JVM heap usage, thread pool rejections, and
// circuit breaker trips or sizes. Exactly one check runs per invocation.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/dm/escheck-go/internal/check"
	"github.com/dm/escheck-go/internal/cli"
	"github.com/dm/escheck-go/internal/threshold"
)

var (
	opts cli.Options

	openFDs            bool
	jvmHeapUsage       bool
	threadPoolRejected bool
	breakersTripped    bool
	breakersSize       bool
)

var rootCmd = &cobra.Command{
	Use:   "check_es_node",
	Short: "Elasticsearch node health probe",
	Long: `check_es_node queries the local node's stats and runs exactly one of five
checks, selected by flag. Threshold expressions follow the supervisor range
grammar ([@][low]:[high], % for percentage-of-base bounds); the rejection and
breaker checks accept per-entity overrides as "name;expression" items.`,
	Run: run,
}

func init() {
	cli.RegisterCommon(rootCmd, &opts)
	f := rootCmd.Flags()
	f.BoolVar(&openFDs, "open-fds", false, "check open file descriptors against the node limit (default 80%/90%)")
	f.BoolVar(&jvmHeapUsage, "jvm-heap-usage", false, "check JVM heap used percentage (default 75/85)")
	f.BoolVar(&threadPoolRejected, "thread-pool-rejected", false, "check per-pool rejected work units (default @1:/@5:)")
	f.BoolVar(&breakersTripped, "breakers-tripped", false, "check per-breaker tripped counters (default @1:/@5:)")
	f.BoolVar(&breakersSize, "breakers-size", false, "check per-breaker size against its limit (default 75%/85%)")

	selectors := []string{"open-fds", "jvm-heap-usage", "thread-pool-rejected", "breakers-tripped", "breakers-size"}
	rootCmd.MarkFlagsOneRequired(selectors...)
	rootCmd.MarkFlagsMutuallyExclusive(selectors...)
}

func run(cmd *cobra.Command, _ []string) {
	log := cli.NewLogger(opts.Verbose)

	cfg, err := opts.Resolve(cmd)
	if err != nil {
		cli.ExitUnknown(err)
	}

	c, err := cli.NewClient(cfg)
	if err != nil {
		cli.ExitUnknown(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout())
	defer cancel()

	var (
		r      *check.Report
		okText string
	)
	switch {
	case openFDs:
		warn := orDefault(cfg.Warning, check.DefaultFDsWarning)
		crit := orDefault(cfg.Critical, check.DefaultFDsCritical)
		r = check.RunOpenFDs(ctx, c, warn, crit)
		okText = "open file descriptors within thresholds"
	case jvmHeapUsage:
		warn := orDefault(cfg.Warning, check.DefaultHeapWarning)
		crit := orDefault(cfg.Critical, check.DefaultHeapCritical)
		r = check.RunJVMHeap(ctx, c, warn, crit)
		okText = "jvm heap usage within thresholds"
	case threadPoolRejected:
		r = check.RunThreadPoolRejected(ctx, c, cfg.Warning, cfg.Critical)
		okText = "no thread pool rejections above thresholds"
	case breakersTripped:
		r = check.RunBreakersTripped(ctx, c, cfg.Warning, cfg.Critical)
		okText = "no breaker trips above thresholds"
	case breakersSize:
		r = check.RunBreakersSize(ctx, c, cfg.Warning, cfg.Critical)
		okText = "all breakers within size thresholds"
	}

	log.Debug("node check finished", "severity", r.Worst().String())
	cli.Exit(r, okText, opts.Color)
}

// orDefault substitutes the check's built-in expression when the user gave
// none. The aggregated checks resolve defaults inside their override tables
// instead, so they take the raw flag value.
func orDefault(expr, def string) string {
	if expr == "" {
		return def
	}
	return expr
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(threshold.SeverityUnknown.ExitCode())
	}
}
