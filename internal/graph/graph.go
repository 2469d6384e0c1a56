// Package graph turns raw text into a deterministic semantic graph of atoms
// and typed edges. Identical text always yields byte-identical atom and edge
// sets; there is no randomness and no I/O anywhere in the builder.
package graph

import (
	"fmt"
	"strings"
)

// #region keyword-tables
// Tag vocabulary. Lookup is per-token; tables are plain sets so iteration
// order never matters.
var tagKeywords = map[string]Tag{
	"harm": TagHarm, "harmful": TagHarm, "attack": TagHarm, "destroy": TagHarm,
	"kill": TagHarm, "hurt": TagHarm, "weapon": TagHarm, "exploit": TagHarm,
	"abuse": TagHarm, "damage": TagHarm, "threat": TagHarm, "threaten": TagHarm,
	"violence": TagHarm, "poison": TagHarm,

	"manipulate": TagManipulation, "manipulation": TagManipulation,
	"coerce": TagManipulation, "coercion": TagManipulation,
	"trick": TagManipulation, "gaslight": TagManipulation,

	"deceive": TagDeception, "deception": TagDeception, "lie": TagDeception,
	"lies": TagDeception, "lying": TagDeception, "fake": TagDeception,
	"mislead": TagDeception, "fraud": TagDeception, "falsify": TagDeception,

	"block": TagBlocking, "blocked": TagBlocking, "forbid": TagBlocking,
	"forbidden": TagBlocking, "refuse": TagBlocking, "censor": TagBlocking,

	"intend": TagIntent, "intent": TagIntent, "intention": TagIntent,
	"want": TagIntent, "plan": TagIntent, "goal": TagIntent, "aim": TagIntent,
	"implement": TagIntent, "build": TagIntent, "create": TagIntent,
	"design": TagIntent,

	"feel": TagEmotion, "feeling": TagEmotion, "fear": TagEmotion,
	"joy": TagEmotion, "anger": TagEmotion, "love": TagEmotion,
	"sad": TagEmotion, "grief": TagEmotion, "happy": TagEmotion,
}

// Evidence vocabulary: observed beats inferred beats untestable.
var observedKeywords = newSet(
	"code", "test", "tests", "metric", "metrics", "graph", "vector", "edge",
	"atom", "node", "state", "file", "config", "json", "sqlite", "run",
	"implement", "fix", "refactor", "add", "remove", "update", "create",
	"delete", "measure", "compute", "parse", "read", "write", "input",
	"output", "function", "parameter", "result", "data", "module", "build",
)

var inferredKeywords = newSet(
	"meaning", "reason", "cause", "effect", "pattern", "relation",
	"connection", "model", "hypothesis", "theory", "principle", "rule",
	"process", "mechanism", "system", "strategy", "plan", "goal",
	"analysis", "synthesis", "logic", "inference",
)

var untestableKeywords = newSet(
	"consciousness", "qualia", "soul", "god", "afterlife", "ineffable",
)

// Avoidance vocabulary: tokens that name content being routed around rather
// than addressed. Feeds the shadow attention channel and the alignment
// penalty for unconsented avoidance.
var avoidanceKeywords = newSet(
	"avoid", "avoids", "avoided", "avoidance", "ignore", "ignored",
	"suppress", "suppressed", "evade", "evaded", "taboo",
)

var causalKeywords = newSet(
	"because", "causes", "therefore", "hence", "so",
)

func newSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// #endregion keyword-tables

// #region build
// resonanceWindow bounds how far apart two same-tag atoms may sit and still
// receive a RESONATES edge. Keeps edge count linear in text length.
const resonanceWindow = 6

// contrastWindow bounds CONTRASTS edges between harm and intent atoms.
const contrastWindow = 4

// Build tokenizes text and assembles the semantic graph. Empty or
// whitespace-only text yields an empty graph; the caller must treat that as
// a hard gate failure, not a degenerate measurement.
func Build(text string) *Graph {
	tokens := tokenize(text)
	g := &Graph{byID: make(map[string]int, len(tokens))}

	for i, tok := range tokens {
		atom := Atom{
			ID:     fmt.Sprintf("n%d", i),
			Label:  tok,
			Tags:   []Tag{TagWitness},
			Status: StatusAnchored,
		}
		low := strings.ToLower(tok)
		if t, ok := tagKeywords[low]; ok {
			atom.Tags = append(atom.Tags, t)
		}
		if _, ok := avoidanceKeywords[low]; ok {
			atom.Avoided = true
		}
		atom.Evidence = classifyEvidence(low)
		if atom.Evidence.Observability == Untestable {
			atom.Status = StatusFloating
		}
		if atom.HasTag(TagBlocking) {
			atom.Status = StatusBlocking
		}
		g.byID[atom.ID] = len(g.Atoms)
		g.Atoms = append(g.Atoms, atom)
	}

	g.Edges = buildEdges(g.Atoms, tokens)
	return g
}

// buildEdges creates adjacency, co-occurrence and tag-affinity edges in a
// single deterministic pass over the atom slice.
func buildEdges(atoms []Atom, tokens []string) []Edge {
	var edges []Edge
	for i := range atoms {
		if i > 0 {
			edges = append(edges, Edge{
				From: atoms[i-1].ID, To: atoms[i].ID,
				Type: EdgeSupports, Weight: 1.0,
			})
		}
		if i > 1 {
			edges = append(edges, Edge{
				From: atoms[i-2].ID, To: atoms[i].ID,
				Type: EdgeBridges, Weight: 0.5,
			})
		}
		// Causal connective bridges its neighbors.
		if i > 0 && i < len(atoms)-1 {
			if _, ok := causalKeywords[strings.ToLower(tokens[i])]; ok {
				edges = append(edges, Edge{
					From: atoms[i-1].ID, To: atoms[i+1].ID,
					Type: EdgeCauses, Weight: 0.8,
				})
			}
		}
		// Tag affinity within a bounded window.
		for j := i + 1; j < len(atoms) && j <= i+resonanceWindow; j++ {
			if t, ok := sharedContentTag(&atoms[i], &atoms[j]); ok {
				w := 0.6
				typ := EdgeResonates
				if t == TagHarm || t == TagManipulation {
					typ = EdgeMutex
					w = 0.7
				}
				edges = append(edges, Edge{From: atoms[i].ID, To: atoms[j].ID, Type: typ, Weight: w})
			}
		}
		for j := i + 1; j < len(atoms) && j <= i+contrastWindow; j++ {
			if opposedTags(&atoms[i], &atoms[j]) {
				edges = append(edges, Edge{From: atoms[i].ID, To: atoms[j].ID, Type: EdgeContrasts, Weight: 0.7})
			}
		}
	}
	return edges
}

// sharedContentTag returns a non-WITNESS tag both atoms carry.
func sharedContentTag(a, b *Atom) (Tag, bool) {
	for _, t := range a.Tags {
		if t == TagWitness {
			continue
		}
		if b.HasTag(t) {
			return t, true
		}
	}
	return "", false
}

// opposedTags reports a harm/intent opposition between the pair.
func opposedTags(a, b *Atom) bool {
	return (a.HasTag(TagHarm) && b.HasTag(TagIntent)) ||
		(a.HasTag(TagIntent) && b.HasTag(TagHarm))
}

// #endregion build

// #region tokenize
const punctCutset = ".,;:!?()[]{}\"'«»—"

// tokenize splits on whitespace and strips surrounding punctuation. Tokens
// that are empty after stripping are dropped.
func tokenize(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		t := strings.Trim(f, punctCutset)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

// #endregion tokenize

// #region evidence
// classifyEvidence assigns the epistemic class for a lowered token.
// Priority: observed > inferred > untestable; unknown vocabulary defaults to
// an explicit assumption rather than a silent claim of observation.
func classifyEvidence(low string) Evidence {
	if _, ok := observedKeywords[low]; ok {
		return Evidence{
			Observed:      []string{fmt.Sprintf("token %q present in input", low)},
			Observability: Observed,
		}
	}
	if strings.ContainsAny(low, "._/\\") {
		return Evidence{
			Observed:      []string{fmt.Sprintf("artifact reference %q", low)},
			Observability: Observed,
		}
	}
	if _, ok := inferredKeywords[low]; ok {
		return Evidence{
			Inferred:      []string{fmt.Sprintf("inferred from token %q", low)},
			Observability: Inferred,
		}
	}
	if _, ok := untestableKeywords[low]; ok {
		return Evidence{Observability: Untestable}
	}
	return Evidence{
		Assumptions:   []string{fmt.Sprintf("assumed meaningful: %q", low)},
		Observability: Inferred,
	}
}

// #endregion evidence
