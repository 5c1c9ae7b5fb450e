package client

// ClusterHealth represents the response from /_cluster/health?level=shards.
type ClusterHealth struct {
	ClusterName   string                 `json:"cluster_name"`
	Status        string                 `json:"status"`
	TimedOut      bool                   `json:"timed_out"`
	NumberOfNodes int                    `json:"number_of_nodes"`
	Indices       map[string]IndexHealth `json:"indices"`
}

// IndexHealth holds the per-index status plus its per-shard breakdown.
type IndexHealth struct {
	Status string                 `json:"status"`
	Shards map[string]ShardHealth `json:"shards"`
}

// ShardHealth holds the status of a single shard.
type ShardHealth struct {
	Status string `json:"status"`
}

// NodeStatsResponse represents the response from /_nodes/_local/stats.
type NodeStatsResponse struct {
	Nodes map[string]NodeStats `json:"nodes"`
}

// NodeStats holds the per-node stat sections the probes consume.
type NodeStats struct {
	Name       string                     `json:"name"`
	Process    *ProcessStats              `json:"process,omitempty"`
	JVM        *JVMStats                  `json:"jvm,omitempty"`
	ThreadPool map[string]ThreadPoolStats `json:"thread_pool,omitempty"`
	Breakers   map[string]BreakerStats    `json:"breakers,omitempty"`
}

// ProcessStats holds process-level counters.
type ProcessStats struct {
	OpenFileDescriptors int64 `json:"open_file_descriptors"`
}

// JVMStats holds JVM heap metrics.
type JVMStats struct {
	Mem struct {
		HeapUsedPercent int64 `json:"heap_used_percent"`
	} `json:"mem"`
}

// ThreadPoolStats holds counters for one named thread pool.
type ThreadPoolStats struct {
	Rejected int64 `json:"rejected"`
}

// BreakerStats holds counters for one named circuit breaker.
type BreakerStats struct {
	Tripped              int64 `json:"tripped"`
	EstimatedSizeInBytes int64 `json:"estimated_size_in_bytes"`
	LimitSizeInBytes     int64 `json:"limit_size_in_bytes"`
}

// NodeInfoResponse represents the response from /_nodes/_local/process.
type NodeInfoResponse struct {
	Nodes map[string]NodeInfo `json:"nodes"`
}

// NodeInfo holds the per-node info sections the probes consume.
type NodeInfo struct {
	Name    string       `json:"name"`
	Process *ProcessInfo `json:"process,omitempty"`
}

// ProcessInfo holds static process configuration.
type ProcessInfo struct {
	MaxFileDescriptors int64 `json:"max_file_descriptors"`
}

// Local returns the stats entry for the local node. The _local filter leaves
// exactly one entry in the map; which key it carries depends on the node id.
func (r *NodeStatsResponse) Local() (NodeStats, bool) {
	for _, n := range r.Nodes {
		return n, true
	}
	return NodeStats{}, false
}

// Local returns the info entry for the local node.
func (r *NodeInfoResponse) Local() (NodeInfo, bool) {
	for _, n := range r.Nodes {
		return n, true
	}
	return NodeInfo{}, false
}
