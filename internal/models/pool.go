package models

import "github.com/kubev2v/p4wq/pkg/p4wq"

type PoolStats struct {
	Name         string `json:"name"`
	Workers      int    `json:"workers"`
	Idle         int    `json:"idle"`
	Pending      int    `json:"pending"`
	Active       int    `json:"active"`
	ActiveTarget int    `json:"active_target"`
	Closed       bool   `json:"closed"`
}

func NewPoolStats(s p4wq.Stats) PoolStats {
	return PoolStats{
		Name:         s.Name,
		Workers:      s.Workers,
		Idle:         s.Idle,
		Pending:      s.Pending,
		Active:       s.Active,
		ActiveTarget: s.ActiveTarget,
		Closed:       s.Closed,
	}
}

// WorkRequest describes a synthetic item submitted through the API. The
// handler busy-runs for DurationMS.
type WorkRequest struct {
	Name       string `json:"name"`
	Priority   int    `json:"priority"`
	DeadlineMS int64  `json:"deadline_ms" binding:"gte=0"`
	DurationMS int64  `json:"duration_ms" binding:"gte=0,lte=60000"`
}
