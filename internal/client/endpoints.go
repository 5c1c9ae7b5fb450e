package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	endpointClusterHealth = "/_cluster/health?level=shards"
	endpointNodeStats     = "/_nodes/_local/stats/process,jvm,thread_pool,breaker"
	endpointNodeInfo      = "/_nodes/_local/process"
)

// DecodeError marks a response that arrived but could not be interpreted.
// Callers distinguish it from transport errors because the two map to
// different severities.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s decode: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// GetClusterHealth fetches shard-level cluster health. serverTimeout is
// passed through as the endpoint's own timeout parameter so the server gives
// up slightly before the client deadline does; zero omits the parameter.
func (c *DefaultClient) GetClusterHealth(ctx context.Context, serverTimeout time.Duration) (*ClusterHealth, error) {
	path := endpointClusterHealth
	if serverTimeout > 0 {
		path += fmt.Sprintf("&timeout=%ds", int(serverTimeout.Seconds()))
	}
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("GetClusterHealth: %w", err)
	}

	var result ClusterHealth
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &DecodeError{Endpoint: "GetClusterHealth", Err: err}
	}
	return &result, nil
}

// GetLocalNodeStats fetches the local node's process, jvm, thread pool and
// breaker statistics.
func (c *DefaultClient) GetLocalNodeStats(ctx context.Context) (*NodeStatsResponse, error) {
	body, err := c.doGet(ctx, endpointNodeStats)
	if err != nil {
		return nil, fmt.Errorf("GetLocalNodeStats: %w", err)
	}

	var result NodeStatsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &DecodeError{Endpoint: "GetLocalNodeStats", Err: err}
	}
	return &result, nil
}

// GetLocalNodeInfo fetches the local node's static process configuration,
// which carries the file descriptor limit.
func (c *DefaultClient) GetLocalNodeInfo(ctx context.Context) (*NodeInfoResponse, error) {
	body, err := c.doGet(ctx, endpointNodeInfo)
	if err != nil {
		return nil, fmt.Errorf("GetLocalNodeInfo: %w", err)
	}

	var result NodeInfoResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &DecodeError{Endpoint: "GetLocalNodeInfo", Err: err}
	}
	return &result, nil
}
