package check

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/dm/escheck-go/internal/client"
	"github.com/dm/escheck-go/internal/format"
	"github.com/dm/escheck-go/internal/threshold"
)

// Default thresholds per node check.
const (
	DefaultFDsWarning  = "80%"
	DefaultFDsCritical = "90%"

	DefaultHeapWarning  = "75"
	DefaultHeapCritical = "85"

	DefaultCounterWarning  = "@1:"
	DefaultCounterCritical = "@5:"

	DefaultBreakerSizeWarning  = "75%"
	DefaultBreakerSizeCritical = "85%"
)

// RunOpenFDs checks the ratio of open file descriptors to the node's limit.
// It needs both the live stats and the static node info, fetched together
// under the shared deadline.
func RunOpenFDs(ctx context.Context, c client.ESClient, warnExpr, critExpr string) *Report {
	r := &Report{}

	var (
		stats *client.NodeStatsResponse
		info  *client.NodeInfoResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = c.GetLocalNodeStats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		info, err = c.GetLocalNodeInfo(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		addFetchFailure(r, err)
		return r
	}

	node, ok := stats.Local()
	if !ok || node.Process == nil {
		r.Add(threshold.SeverityCritical, "node stats response is missing process stats")
		return r
	}
	nfo, ok := info.Local()
	if !ok || nfo.Process == nil {
		r.Add(threshold.SeverityCritical, "node info response is missing process info")
		return r
	}
	maxFDs := nfo.Process.MaxFileDescriptors
	if maxFDs <= 0 {
		r.Add(threshold.SeverityUnknown, "node does not report a file descriptor limit")
		return r
	}

	warn, crit, err := parseOptionalPair(warnExpr, critExpr)
	if err != nil {
		r.Add(threshold.SeverityUnknown, fmt.Sprintf("open file descriptors: %v", err))
		return r
	}

	open := node.Process.OpenFileDescriptors
	sev, err := threshold.EvaluateWithBase(float64(open), float64(maxFDs), warn, crit)
	if err != nil {
		r.Add(threshold.SeverityUnknown, fmt.Sprintf("open file descriptors: %v", err))
		return r
	}
	pct := float64(open) / float64(maxFDs) * 100
	r.Add(sev, fmt.Sprintf("Open file descriptors: %d of %d (%s)", open, maxFDs, format.FormatPercent(pct)))
	r.AddPerfdata("open_fds", float64(open), warnExpr, critExpr)
	return r
}

// RunJVMHeap checks the JVM heap-used percentage reported by the node. The
// observed value is already a percentage, so percent-suffixed bounds resolve
// against a base of 100.
func RunJVMHeap(ctx context.Context, c client.ESClient, warnExpr, critExpr string) *Report {
	r := &Report{}

	node, ok := localNodeStats(ctx, c, r)
	if !ok {
		return r
	}
	if node.JVM == nil {
		r.Add(threshold.SeverityCritical, "node stats response is missing jvm stats")
		return r
	}

	warn, crit, err := parseOptionalPair(warnExpr, critExpr)
	if err != nil {
		r.Add(threshold.SeverityUnknown, fmt.Sprintf("jvm heap: %v", err))
		return r
	}

	used := float64(node.JVM.Mem.HeapUsedPercent)
	sev, err := threshold.EvaluateWithBase(used, 100, warn, crit)
	if err != nil {
		r.Add(threshold.SeverityUnknown, fmt.Sprintf("jvm heap: %v", err))
		return r
	}
	r.Add(sev, fmt.Sprintf("JVM heap used: %s", format.FormatPercent(used)))
	r.AddPerfdata("jvm_heap_used_pct", used, warnExpr, critExpr)
	return r
}

// RunThreadPoolRejected checks the rejected-work-unit counter of every named
// thread pool. The expressions accept per-pool overrides ("search;@10:").
func RunThreadPoolRejected(ctx context.Context, c client.ESClient, warnSpec, critSpec string) *Report {
	r := &Report{}

	node, ok := localNodeStats(ctx, c, r)
	if !ok {
		return r
	}
	if node.ThreadPool == nil {
		r.Add(threshold.SeverityCritical, "node stats response is missing thread pool stats")
		return r
	}

	warnTbl := parseExpressionTable(warnSpec, DefaultCounterWarning)
	critTbl := parseExpressionTable(critSpec, DefaultCounterCritical)

	msgs := CheckEach(node.ThreadPool, "Thread pools with rejected work units", Selectors[client.ThreadPoolStats]{
		Value:    func(_ string, p client.ThreadPoolStats) float64 { return float64(p.Rejected) },
		Warning:  warnTbl.Lookup,
		Critical: critTbl.Lookup,
	})
	Apply(r, msgs)
	addCounterPerfdata(r, "rejected", node.ThreadPool,
		func(p client.ThreadPoolStats) float64 { return float64(p.Rejected) })
	return r
}

// RunBreakersTripped checks the tripped counter of every circuit breaker.
func RunBreakersTripped(ctx context.Context, c client.ESClient, warnSpec, critSpec string) *Report {
	r := &Report{}

	node, ok := localNodeStats(ctx, c, r)
	if !ok {
		return r
	}
	if node.Breakers == nil {
		r.Add(threshold.SeverityCritical, "node stats response is missing breaker stats")
		return r
	}

	warnTbl := parseExpressionTable(warnSpec, DefaultCounterWarning)
	critTbl := parseExpressionTable(critSpec, DefaultCounterCritical)

	msgs := CheckEach(node.Breakers, "Tripped circuit breakers", Selectors[client.BreakerStats]{
		Value:    func(_ string, b client.BreakerStats) float64 { return float64(b.Tripped) },
		Warning:  warnTbl.Lookup,
		Critical: critTbl.Lookup,
	})
	Apply(r, msgs)
	addCounterPerfdata(r, "tripped", node.Breakers,
		func(b client.BreakerStats) float64 { return float64(b.Tripped) })
	return r
}

// RunBreakersSize checks each circuit breaker's estimated size against its
// own limit. Percentage bounds resolve per breaker, against that breaker's
// limit size.
func RunBreakersSize(ctx context.Context, c client.ESClient, warnSpec, critSpec string) *Report {
	r := &Report{}

	node, ok := localNodeStats(ctx, c, r)
	if !ok {
		return r
	}
	if node.Breakers == nil {
		r.Add(threshold.SeverityCritical, "node stats response is missing breaker stats")
		return r
	}

	warnTbl := parseExpressionTable(warnSpec, DefaultBreakerSizeWarning)
	critTbl := parseExpressionTable(critSpec, DefaultBreakerSizeCritical)

	msgs := CheckEach(node.Breakers, "Circuit breakers near size limit", Selectors[client.BreakerStats]{
		Value:    func(_ string, b client.BreakerStats) float64 { return float64(b.EstimatedSizeInBytes) },
		Base:     func(_ string, b client.BreakerStats) float64 { return float64(b.LimitSizeInBytes) },
		Warning:  warnTbl.Lookup,
		Critical: critTbl.Lookup,
		Describe: func(_ string, b client.BreakerStats) string {
			return fmt.Sprintf("%s of %s limit",
				format.FormatBytes(b.EstimatedSizeInBytes), format.FormatBytes(b.LimitSizeInBytes))
		},
	})
	Apply(r, msgs)
	addCounterPerfdata(r, "size_bytes", node.Breakers,
		func(b client.BreakerStats) float64 { return float64(b.EstimatedSizeInBytes) })
	return r
}

// localNodeStats fetches the local node's stats, recording any failure in
// the report. The second return is false when no usable entry came back.
func localNodeStats(ctx context.Context, c client.ESClient, r *Report) (client.NodeStats, bool) {
	stats, err := c.GetLocalNodeStats(ctx)
	if err != nil {
		addFetchFailure(r, err)
		return client.NodeStats{}, false
	}
	node, ok := stats.Local()
	if !ok {
		r.Add(threshold.SeverityCritical, "node stats response contains no nodes")
		return client.NodeStats{}, false
	}
	return node, true
}

// addCounterPerfdata emits one perfdata sample per entity, in name order.
func addCounterPerfdata[T any](r *Report, suffix string, entities map[string]T, value func(T) float64) {
	names := make([]string, 0, len(entities))
	for name := range entities {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.AddPerfdata(name+"_"+suffix, value(entities[name]), "", "")
	}
}
