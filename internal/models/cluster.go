package models

import "time"

// Cluster is a registered Kubernetes cluster.
type Cluster struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Provider      string     `json:"provider"` // eks, gke, aks, on-prem
	Region        string     `json:"region,omitempty"`
	Version       string     `json:"version,omitempty"`
	Status        string     `json:"status"` // healthy, degraded, unreachable
	NodeCount     int        `json:"node_count"`
	LastConnected *time.Time `json:"last_connected,omitempty"`
}

// ClusterMetrics is the aggregated utilisation summary for one cluster.
type ClusterMetrics struct {
	ClusterID      string    `json:"cluster_id"`
	CPUPercent     float64   `json:"cpu_percent"`
	MemoryPercent  float64   `json:"memory_percent"`
	PodCount       int       `json:"pod_count"`
	PodCapacity    int       `json:"pod_capacity"`
	NodesReady     int       `json:"nodes_ready"`
	NodesTotal     int       `json:"nodes_total"`
	CollectedAt    time.Time `json:"collected_at"`
}
