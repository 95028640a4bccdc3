package timeline

import (
	"time"
)

// Clusterer groups photos into density-connected runs over capture time.
//
// This is DBSCAN specialized to one sorted dimension: any two points within
// epsilon of each other merge transitively through the points between them,
// so neighborhood expansion degenerates to chaining consecutive gaps and a
// single pass over the sorted sequence suffices. No backtracking is needed.
type Clusterer struct {
	params Params
}

// NewClusterer creates a clusterer. Parameters are assumed valid; callers go
// through Detector.AutoDetect which validates them upfront.
func NewClusterer(epsilonMinutes float64, minPoints int) *Clusterer {
	return &Clusterer{
		params: Params{
			EpsilonMinutes: epsilonMinutes,
			MinPoints:      minPoints,
		},
	}
}

// Params returns the current clustering parameters.
func (c *Clusterer) Params() Params {
	return c.params
}

// Cluster partitions points into clusters, dropping runs smaller than
// MinPoints as noise. With MinPoints == 1 every run survives, including
// singletons. The input slice is not modified.
func (c *Clusterer) Cluster(points []PhotoPoint) []RawCluster {
	if len(points) == 0 {
		return nil
	}

	sorted := sortPoints(points)
	maxGap := time.Duration(c.params.EpsilonMinutes * float64(time.Minute))

	var clusters []RawCluster
	run := []PhotoPoint{sorted[0]}

	flush := func() {
		if len(run) >= c.params.MinPoints {
			clusters = append(clusters, RawCluster{Photos: run})
		}
	}

	for _, p := range sorted[1:] {
		if p.CapturedAt.Sub(run[len(run)-1].CapturedAt) <= maxGap {
			run = append(run, p)
			continue
		}
		flush()
		run = []PhotoPoint{p}
	}
	flush()

	return clusters
}
