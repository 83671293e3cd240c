// Package route partitions verified POIs into day-sized geographic zones and
// orders each zone into a low-backtracking visiting sequence.
package route

import (
	"go.uber.org/zap"

	"github.com/wayfarer-labs/planner-cli/internal/geo"
	"github.com/wayfarer-labs/planner-cli/internal/model"
)

const maxIterations = 300

// ClusterByDay partitions geocoded POIs into at most numDays geographic
// zones via centroid clustering, orders each zone with a greedy
// nearest-neighbor walk anchored at the northernmost point, and truncates
// each day at maxPerDay stops. POIs cut by truncation are dropped from that
// day; redistribution of overflow is the caller's concern.
//
// Input without any geocoded POIs falls through to DistributeEvenly. The
// result is deterministic for identical inputs.
func ClusterByDay(pois []model.VerifiedPOI, numDays, maxPerDay int) []model.DayPlan {
	geocoded := make([]model.VerifiedPOI, 0, len(pois))
	for _, p := range pois {
		if p.Geocoded() {
			geocoded = append(geocoded, p)
		}
	}
	if len(geocoded) == 0 {
		return DistributeEvenly(pois, numDays, maxPerDay)
	}

	k := numDays
	if len(geocoded) < k {
		k = len(geocoded)
	}

	points := make([][2]float64, len(geocoded))
	for i, p := range geocoded {
		points[i] = [2]float64{*p.Lat, *p.Lng}
	}
	labels := kmeans(points, k)

	clusters := make([][]model.VerifiedPOI, k)
	for i, p := range geocoded {
		clusters[labels[i]] = append(clusters[labels[i]], p)
	}

	days := make([]model.DayPlan, 0, k)
	for _, cluster := range clusters {
		if len(cluster) == 0 {
			continue
		}
		ordered := nearestNeighbor(cluster)
		if len(ordered) > maxPerDay {
			zap.L().Debug("route: truncating day plan",
				zap.Int("cluster_size", len(ordered)),
				zap.Int("max_per_day", maxPerDay),
			)
			ordered = ordered[:maxPerDay]
		}
		days = append(days, model.DayPlan(ordered))
	}
	return days
}

// kmeans runs centroid clustering over (lat, lng) points. Initial centroids
// come from a farthest-first traversal seeded at index 0, and assignment
// ties break toward the lowest cluster index, so identical inputs always
// produce identical labels.
func kmeans(points [][2]float64, k int) []int {
	centroids := initialCentroids(points, k)
	labels := make([]int, len(points))

	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, pt := range points {
			best := nearestCentroid(pt, centroids)
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		sums := make([][2]float64, k)
		counts := make([]int, k)
		for i, pt := range points {
			l := labels[i]
			sums[l][0] += pt[0]
			sums[l][1] += pt[1]
			counts[l]++
		}
		for c := 0; c < k; c++ {
			// A cluster that lost all members keeps its centroid.
			if counts[c] == 0 {
				continue
			}
			centroids[c][0] = sums[c][0] / float64(counts[c])
			centroids[c][1] = sums[c][1] / float64(counts[c])
		}
	}
	return labels
}

// initialCentroids picks k seed points by farthest-first traversal: the
// first point, then repeatedly the point farthest from all chosen seeds.
func initialCentroids(points [][2]float64, k int) [][2]float64 {
	centroids := make([][2]float64, 0, k)
	centroids = append(centroids, points[0])

	for len(centroids) < k {
		bestIdx := 0
		bestDist := -1.0
		for i, pt := range points {
			d := minSquaredDist(pt, centroids)
			if d > bestDist {
				bestDist = d
				bestIdx = i
			}
		}
		centroids = append(centroids, points[bestIdx])
	}
	return centroids
}

func minSquaredDist(pt [2]float64, centroids [][2]float64) float64 {
	best := squaredDist(pt, centroids[0])
	for _, c := range centroids[1:] {
		if d := squaredDist(pt, c); d < best {
			best = d
		}
	}
	return best
}

func nearestCentroid(pt [2]float64, centroids [][2]float64) int {
	best := 0
	bestDist := squaredDist(pt, centroids[0])
	for c := 1; c < len(centroids); c++ {
		if d := squaredDist(pt, centroids[c]); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

func squaredDist(a, b [2]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return dx*dx + dy*dy
}

// nearestNeighbor orders one day's POIs with a greedy walk: start at the
// northernmost point (the natural morning anchor), then repeatedly visit the
// closest unvisited point by haversine distance.
func nearestNeighbor(pois []model.VerifiedPOI) []model.VerifiedPOI {
	if len(pois) <= 1 {
		return pois
	}

	remaining := make([]model.VerifiedPOI, len(pois))
	copy(remaining, pois)

	start := 0
	for i := 1; i < len(remaining); i++ {
		if *remaining[i].Lat > *remaining[start].Lat {
			start = i
		}
	}

	ordered := make([]model.VerifiedPOI, 0, len(remaining))
	ordered = append(ordered, remaining[start])
	remaining = append(remaining[:start], remaining[start+1:]...)

	for len(remaining) > 0 {
		cur := ordered[len(ordered)-1]
		nearest := 0
		nearestDist := geo.HaversineKM(*cur.Lat, *cur.Lng, *remaining[0].Lat, *remaining[0].Lng)
		for i := 1; i < len(remaining); i++ {
			d := geo.HaversineKM(*cur.Lat, *cur.Lng, *remaining[i].Lat, *remaining[i].Lng)
			if d < nearestDist {
				nearestDist = d
				nearest = i
			}
		}
		ordered = append(ordered, remaining[nearest])
		remaining = append(remaining[:nearest], remaining[nearest+1:]...)
	}
	return ordered
}
