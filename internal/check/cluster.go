package check

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dm/escheck-go/internal/client"
	"github.com/dm/escheck-go/internal/format"
	"github.com/dm/escheck-go/internal/threshold"
)

// Default cluster status thresholds: yellow warns, red is critical.
const (
	DefaultClusterWarnState = threshold.HealthYellow
	DefaultClusterCritState = threshold.HealthRed
)

// ClusterOptions configures the cluster probe.
type ClusterOptions struct {
	WarnState HealthStateOption
	CritState HealthStateOption

	// Node-count expressions. Both empty skips the node-count check; the
	// probe has no built-in defaults for it.
	NodesWarning  string
	NodesCritical string

	// ServerTimeout is passed to the health endpoint so the server gives up
	// before the client deadline.
	ServerTimeout time.Duration
}

// HealthStateOption wraps a HealthState with a set flag so callers can tell
// "not configured" apart from the zero value.
type HealthStateOption struct {
	State threshold.HealthState
	Set   bool
}

func (o HealthStateOption) or(def threshold.HealthState) threshold.HealthState {
	if o.Set {
		return o.State
	}
	return def
}

// RunCluster fetches shard-level cluster health once and evaluates the three
// cluster checks: overall status, node count, and per-index critical shards.
func RunCluster(ctx context.Context, c client.ESClient, opts ClusterOptions, log *slog.Logger) *Report {
	r := &Report{}

	health, err := c.GetClusterHealth(ctx, opts.ServerTimeout)
	if err != nil {
		addFetchFailure(r, err)
		return r
	}
	if health.TimedOut {
		r.Add(threshold.SeverityCritical, "cluster health query timed out server-side")
		return r
	}

	warnState := opts.WarnState.or(DefaultClusterWarnState)
	critState := opts.CritState.or(DefaultClusterCritState)

	checkClusterStatus(r, health, warnState, critState)
	checkNodeCount(r, health, opts, log)
	checkCriticalShards(r, health, critState)
	return r
}

func checkClusterStatus(r *Report, health *client.ClusterHealth, warnState, critState threshold.HealthState) {
	state, err := threshold.ParseHealthState(health.Status)
	if err != nil {
		r.Add(threshold.SeverityCritical, fmt.Sprintf("cluster status: %v", err))
		return
	}

	warn := threshold.StateThreshold(warnState)
	crit := threshold.StateThreshold(critState)
	sev, err := threshold.Evaluate(float64(state), &warn, &crit)
	if err != nil {
		r.Add(threshold.SeverityUnknown, fmt.Sprintf("cluster status: %v", err))
		return
	}
	r.Add(sev, fmt.Sprintf("Cluster %s is %s", health.ClusterName, state))
}

func checkNodeCount(r *Report, health *client.ClusterHealth, opts ClusterOptions, log *slog.Logger) {
	if opts.NodesWarning == "" && opts.NodesCritical == "" {
		log.Debug("node-count check skipped, no thresholds configured")
		return
	}

	warn, crit, err := parseOptionalPair(opts.NodesWarning, opts.NodesCritical)
	if err != nil {
		r.Add(threshold.SeverityUnknown, fmt.Sprintf("node count: %v", err))
		return
	}

	n := float64(health.NumberOfNodes)
	sev, err := threshold.Evaluate(n, warn, crit)
	if err != nil {
		r.Add(threshold.SeverityUnknown, fmt.Sprintf("node count: %v", err))
		return
	}
	r.Add(sev, fmt.Sprintf("Cluster %s has %d nodes", health.ClusterName, health.NumberOfNodes))
	r.AddPerfdata("nodes", n, opts.NodesWarning, opts.NodesCritical)
}

// checkCriticalShards reports, for every index whose status matches the
// critical state, the shards that themselves match it. An index flagged
// critical whose shards report a milder status contributes nothing: partial
// shard failure is reported shard by shard, not index-wide.
func checkCriticalShards(r *Report, health *client.ClusterHealth, critState threshold.HealthState) {
	indexNames := make([]string, 0, len(health.Indices))
	for name := range health.Indices {
		indexNames = append(indexNames, name)
	}
	sort.Strings(indexNames)

	for _, name := range indexNames {
		idx := health.Indices[name]
		if idx.Status != critState.String() {
			continue
		}

		var shardIDs []string
		for id, shard := range idx.Shards {
			if shard.Status == critState.String() {
				shardIDs = append(shardIDs, id)
			}
		}
		if len(shardIDs) == 0 {
			continue
		}
		sort.Strings(shardIDs)
		r.Add(threshold.SeverityCritical,
			fmt.Sprintf("Index %s has %s shards: %s", name, critState, format.PrettyJoin(shardIDs)))
	}
}

// parseOptionalPair parses warning/critical expressions, treating an empty
// string as "no threshold at that level".
func parseOptionalPair(warnExpr, critExpr string) (warn, crit *threshold.Threshold, err error) {
	if warnExpr != "" {
		t, err := threshold.Parse(warnExpr)
		if err != nil {
			return nil, nil, err
		}
		warn = &t
	}
	if critExpr != "" {
		t, err := threshold.Parse(critExpr)
		if err != nil {
			return nil, nil, err
		}
		crit = &t
	}
	return warn, crit, nil
}

// addFetchFailure maps a fetch error to its severity: a response that
// arrived but could not be decoded is CRITICAL, transport failures are
// UNKNOWN.
func addFetchFailure(r *Report, err error) {
	var decodeErr *client.DecodeError
	if errors.As(err, &decodeErr) {
		r.Add(threshold.SeverityCritical, err.Error())
		return
	}
	r.Add(threshold.SeverityUnknown, err.Error())
}
