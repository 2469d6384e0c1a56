package metrics

import "semgate/internal/graph"

// #region ged-proxy
// GEDProxy approximates graph edit distance as inverted Jaccard similarity
// over node and edge sets, equally weighted. The result is a distance in
// [0, 1]: identical graphs score 0, disjoint graphs score 1. Two empty
// graphs are identical by convention.
func GEDProxy(aNodes []string, aEdges []graph.Edge, bNodes []string, bEdges []graph.Edge) float64 {
	if len(aNodes) == 0 && len(bNodes) == 0 {
		return 0
	}
	nodeSim := jaccard(nodeSet(aNodes), nodeSet(bNodes))
	edgeSim := jaccard(edgeSet(aEdges), edgeSet(bEdges))
	return clamp01(1.0 - 0.5*(nodeSim+edgeSim))
}

// jaccard is |a∩b| / |a∪b|, with two empty sets counting as identical.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	inter := 0
	for k := range a {
		if b[k] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

func nodeSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func edgeSet(edges []graph.Edge) map[string]bool {
	set := make(map[string]bool, len(edges))
	for _, e := range edges {
		set[e.From+">"+e.To] = true
	}
	return set
}

// #endregion ged-proxy
