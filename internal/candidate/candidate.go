// Package candidate builds the per-cycle set of alternative attention
// vectors. Variety comes only from the seed-selection rules; expansion is a
// bounded breadth-first walk over the graph edges. Given the same graph the
// generator always produces the same candidates in the same order.
package candidate

import (
	"hash/fnv"
	"strconv"
	"strings"

	"semgate/internal/graph"
	"semgate/internal/vecspace"
)

// #region types
// Vector is one candidate attention vector: a seed, the reachable member
// subset, and the executability flag filled by the ethics gate. Vectors are
// ephemeral; only the chosen vector's summary survives into state history.
type Vector struct {
	ID         string
	Seed       []string
	Atoms      []*graph.Atom
	Edges      []graph.Edge
	Executable bool
}

// MemberIDs returns the member atom IDs in order.
func (v *Vector) MemberIDs() []string {
	ids := make([]string, len(v.Atoms))
	for i, a := range v.Atoms {
		ids[i] = a.ID
	}
	return ids
}

// Config bounds candidate generation.
type Config struct {
	MaxCandidates int     `yaml:"max_candidates"` // target set size, 3..5
	MaxDepth      int     `yaml:"max_depth"`      // BFS hop bound
	MaxNodes      int     `yaml:"max_nodes"`      // BFS node bound
	MinWeight     float64 `yaml:"min_weight"`     // edges below this weight are not traversed
}

// DefaultConfig returns the standard generation bounds.
func DefaultConfig() Config {
	return Config{
		MaxCandidates: 4,
		MaxDepth:      4,
		MaxNodes:      48,
		MinWeight:     0.3,
	}
}

// #endregion types

// #region generate
// Generate produces the candidate set for a graph. The first candidate is
// always the full-graph baseline; the rest are seeded by fixed selection
// rules (highest clarity, highest harm, stable-hash pick) and expanded by a
// bounded walk. Duplicate member sets are dropped.
func Generate(g *graph.Graph, cfg Config) []*Vector {
	if g.Empty() {
		return nil
	}
	n := cfg.MaxCandidates
	if n < 3 {
		n = 3
	}
	if n > 5 {
		n = 5
	}

	adj := buildAdjacency(g, cfg.MinWeight)
	var out []*Vector
	seen := map[string]bool{}

	add := func(seed string, atoms []*graph.Atom, edges []graph.Edge) {
		if len(atoms) == 0 || len(out) >= n {
			return
		}
		key := memberKey(atoms)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, &Vector{
			ID:    "V" + strconv.Itoa(len(out)),
			Seed:  []string{seed},
			Atoms: atoms,
			Edges: edges,
		})
	}

	// Baseline: everything.
	full := make([]*graph.Atom, len(g.Atoms))
	for i := range g.Atoms {
		full[i] = &g.Atoms[i]
	}
	add(g.Atoms[0].ID, full, g.Edges)

	// Seeded expansions.
	for _, seedID := range []string{clearestAtom(g), mostHarmfulAtom(g), hashPick(g)} {
		atoms, edges := expand(g, adj, seedID, cfg)
		add(seedID, atoms, edges)
	}

	// Half splits keep small graphs above the floor of three candidates.
	for len(out) < 3 && len(g.Atoms) >= 2 {
		mid := len(g.Atoms) / 2
		lo, hi := full[:mid], full[mid:]
		before := len(out)
		add(lo[0].ID, lo, subEdges(g, lo))
		if len(out) < 3 {
			add(hi[0].ID, hi, subEdges(g, hi))
		}
		if len(out) == before {
			break
		}
	}
	return out
}

// #endregion generate

// #region seeds
// clearestAtom picks the atom with the highest clarity axis; ties keep the
// earliest atom.
func clearestAtom(g *graph.Graph) string {
	best, bestVal := g.Atoms[0].ID, -1.0
	for i := range g.Atoms {
		v := vecspace.ForAtom(&g.Atoms[i])
		if v[vecspace.AxisClarity] > bestVal {
			bestVal = v[vecspace.AxisClarity]
			best = g.Atoms[i].ID
		}
	}
	return best
}

// mostHarmfulAtom picks the atom with the highest scored harm probability.
func mostHarmfulAtom(g *graph.Graph) string {
	best, bestVal := g.Atoms[0].ID, -1.0
	for i := range g.Atoms {
		if g.Atoms[i].HarmProbability > bestVal {
			bestVal = g.Atoms[i].HarmProbability
			best = g.Atoms[i].ID
		}
	}
	return best
}

// hashPick picks a pseudo-random but fully deterministic seed atom from a
// stable hash of all atom labels.
func hashPick(g *graph.Graph) string {
	h := fnv.New32a()
	for i := range g.Atoms {
		h.Write([]byte(g.Atoms[i].Label))
	}
	return g.Atoms[int(h.Sum32()%uint32(len(g.Atoms)))].ID
}

// #endregion seeds

// #region expand
type adjEntry struct {
	to     string
	weight float64
}

func buildAdjacency(g *graph.Graph, minWeight float64) map[string][]adjEntry {
	adj := make(map[string][]adjEntry, len(g.Atoms))
	for _, e := range g.Edges {
		if e.Weight < minWeight {
			continue
		}
		adj[e.From] = append(adj[e.From], adjEntry{e.To, e.Weight})
		adj[e.To] = append(adj[e.To], adjEntry{e.From, e.Weight})
	}
	return adj
}

// expand walks breadth-first from the seed, bounded by depth and node count,
// and returns the visited atoms in graph order with the induced edge set.
func expand(g *graph.Graph, adj map[string][]adjEntry, seedID string, cfg Config) ([]*graph.Atom, []graph.Edge) {
	type item struct {
		id    string
		depth int
	}
	visited := map[string]bool{seedID: true}
	queue := []item{{seedID, 0}}
	count := 1

	for len(queue) > 0 && count < cfg.MaxNodes {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= cfg.MaxDepth {
			continue
		}
		for _, e := range adj[cur.id] {
			if visited[e.to] || count >= cfg.MaxNodes {
				continue
			}
			visited[e.to] = true
			count++
			queue = append(queue, item{e.to, cur.depth + 1})
		}
	}

	// Collect members in atom order so the result is independent of BFS
	// queue internals.
	var atoms []*graph.Atom
	for i := range g.Atoms {
		if visited[g.Atoms[i].ID] {
			atoms = append(atoms, &g.Atoms[i])
		}
	}
	return atoms, subEdges(g, atoms)
}

// subEdges returns the edges whose endpoints are both in members, in the
// original edge order.
func subEdges(g *graph.Graph, members []*graph.Atom) []graph.Edge {
	in := make(map[string]bool, len(members))
	for _, a := range members {
		in[a.ID] = true
	}
	var out []graph.Edge
	for _, e := range g.Edges {
		if in[e.From] && in[e.To] {
			out = append(out, e)
		}
	}
	return out
}

// #endregion expand

// #region helpers
func memberKey(atoms []*graph.Atom) string {
	ids := make([]string, len(atoms))
	for i, a := range atoms {
		ids[i] = a.ID
	}
	return strings.Join(ids, ",")
}

// #endregion helpers
