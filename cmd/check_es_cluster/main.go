// Command check_es_cluster probes an Elasticsearch cluster's overall health:
// cluster status, node count, and per-index critical shards. It emits one
// monitoring-plugin line and the matching exit code.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dm/escheck-go/internal/check"
	"github.com/dm/escheck-go/internal/cli"
	"github.com/dm/escheck-go/internal/threshold"
)

var (
	opts          cli.Options
	nodesWarning  string
	nodesCritical string
)

var rootCmd = &cobra.Command{
	Use:   "check_es_cluster",
	Short: "Elasticsearch cluster health probe",
	Long: `check_es_cluster queries /_cluster/health at shard level and reports the
worst of three checks: overall cluster status (warning/critical are health
state names, default yellow/red), node count (only when --nodes-warning or
--nodes-critical is set), and shards matching the critical state inside
indices that match it.`,
	Run: run,
}

func init() {
	cli.RegisterCommon(rootCmd, &opts)
	f := rootCmd.Flags()
	f.StringVar(&nodesWarning, "nodes-warning", "", "warning threshold for the node count")
	f.StringVar(&nodesCritical, "nodes-critical", "", "critical threshold for the node count")
}

func run(cmd *cobra.Command, _ []string) {
	log := cli.NewLogger(opts.Verbose)

	cfg, err := opts.Resolve(cmd)
	if err != nil {
		cli.ExitUnknown(err)
	}

	warnState, err := stateOption(cfg.Warning)
	if err != nil {
		cli.ExitUnknown(fmt.Errorf("--warning: %w", err))
	}
	critState, err := stateOption(cfg.Critical)
	if err != nil {
		cli.ExitUnknown(fmt.Errorf("--critical: %w", err))
	}

	c, err := cli.NewClient(cfg)
	if err != nil {
		cli.ExitUnknown(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout())
	defer cancel()

	r := check.RunCluster(ctx, c, check.ClusterOptions{
		WarnState:     warnState,
		CritState:     critState,
		NodesWarning:  nodesWarning,
		NodesCritical: nodesCritical,
		ServerTimeout: serverTimeout(cfg.HTTPTimeout()),
	}, log)

	cli.Exit(r, "cluster health within thresholds", opts.Color)
}

// stateOption parses a health state flag value; empty means unset.
func stateOption(s string) (check.HealthStateOption, error) {
	if s == "" {
		return check.HealthStateOption{}, nil
	}
	state, err := threshold.ParseHealthState(s)
	if err != nil {
		return check.HealthStateOption{}, err
	}
	return check.HealthStateOption{State: state, Set: true}, nil
}

// serverTimeout keeps the endpoint's own timeout just under the client
// deadline so a slow master answers with timed_out instead of a cut socket.
func serverTimeout(clientDeadline time.Duration) time.Duration {
	d := clientDeadline - time.Second
	if d < time.Second {
		d = time.Second
	}
	return d
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(threshold.SeverityUnknown.ExitCode())
	}
}
