package check

import (
	"context"
	"time"

	"github.com/dm/escheck-go/internal/client"
)

// MockESClient implements client.ESClient for testing.
type MockESClient struct {
	HealthFn    func(ctx context.Context, serverTimeout time.Duration) (*client.ClusterHealth, error)
	NodeStatsFn func(ctx context.Context) (*client.NodeStatsResponse, error)
	NodeInfoFn  func(ctx context.Context) (*client.NodeInfoResponse, error)
}

func (m *MockESClient) GetClusterHealth(ctx context.Context, serverTimeout time.Duration) (*client.ClusterHealth, error) {
	if m.HealthFn != nil {
		return m.HealthFn(ctx, serverTimeout)
	}
	return &client.ClusterHealth{ClusterName: "test", Status: "green", NumberOfNodes: 3}, nil
}

func (m *MockESClient) GetLocalNodeStats(ctx context.Context) (*client.NodeStatsResponse, error) {
	if m.NodeStatsFn != nil {
		return m.NodeStatsFn(ctx)
	}
	return &client.NodeStatsResponse{Nodes: map[string]client.NodeStats{}}, nil
}

func (m *MockESClient) GetLocalNodeInfo(ctx context.Context) (*client.NodeInfoResponse, error) {
	if m.NodeInfoFn != nil {
		return m.NodeInfoFn(ctx)
	}
	return &client.NodeInfoResponse{Nodes: map[string]client.NodeInfo{}}, nil
}

func (m *MockESClient) BaseURL() string {
	return "http://mock:9200"
}
