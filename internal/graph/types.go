package graph

// #region status
// Status is the operational status of a semantic atom. The zero value is
// deliberately invalid: an atom that was never scored must be treated as
// worst-case by the ethics layer, never as safe.
type Status string

const (
	StatusUnknown          Status = ""
	StatusAnchored         Status = "ANCHORED"
	StatusFloating         Status = "FLOATING"
	StatusHypothesis       Status = "HYPOTHESIS"
	StatusBlocking         Status = "BLOCKING"
	StatusMu               Status = "MU"
	StatusEthicallyBlocked Status = "ETHICALLY_BLOCKED"
)

// #endregion status

// #region tag
// Tag is a closed categorical label attached to an atom during graph building.
type Tag string

const (
	TagWitness      Tag = "WITNESS"
	TagIntent       Tag = "INTENT"
	TagEmotion      Tag = "EMOTION"
	TagHarm         Tag = "HARM"
	TagManipulation Tag = "MANIPULATION"
	TagDeception    Tag = "DECEPTION"
	TagBlocking     Tag = "BLOCKING"
)

// #endregion tag

// #region edge-type
// EdgeType enumerates the relation kinds between two atoms.
type EdgeType string

const (
	EdgeSupports  EdgeType = "SUPPORTS"
	EdgeContrasts EdgeType = "CONTRASTS"
	EdgeMutex     EdgeType = "MUTEX"
	EdgeCauses    EdgeType = "CAUSES"
	EdgeBridges   EdgeType = "BRIDGES"
	EdgeResonates EdgeType = "RESONATES"
)

// NumEdgeTypes is the size of the closed EdgeType set.
const NumEdgeTypes = 6

// #endregion edge-type

// #region observability
// Observability classifies how an atom's content can be checked.
type Observability string

const (
	Observed   Observability = "observed"
	Inferred   Observability = "inferred"
	Untestable Observability = "untestable"
)

// #endregion observability

// #region evidence
// Evidence holds the three epistemic lists for an atom plus its
// observability class. The lists stay separate: a directly observed fact
// never mixes with an inferred claim or an explicit assumption.
type Evidence struct {
	Observed      []string
	Inferred      []string
	Assumptions   []string
	Observability Observability
}

// #endregion evidence

// #region atom
// Atom is the minimal meaning unit produced by the graph builder. Atoms are
// created once per cycle and are immutable afterward, except for the MU
// status transition applied by the paradox detector to the chosen vector.
type Atom struct {
	ID                string
	Label             string
	Status            Status
	Tags              []Tag
	IdentityAlignment float64
	HarmProbability   float64
	Scored            bool // false until the ethics layer has filled the two scalars
	Avoided           bool // explicitly avoided content; feeds shadow attention
	Evidence          Evidence
}

// HasTag reports whether the atom carries the given tag.
func (a *Atom) HasTag(t Tag) bool {
	for _, tag := range a.Tags {
		if tag == t {
			return true
		}
	}
	return false
}

// #endregion atom

// #region edge
// Edge is a directed, weighted relation between two atom IDs. Never mutated
// after building.
type Edge struct {
	From   string
	To     string
	Type   EdgeType
	Weight float64
}

// #endregion edge

// #region graph
// Graph is the full atom/edge set for one input text.
type Graph struct {
	Atoms []Atom
	Edges []Edge

	byID map[string]int
}

// Empty reports whether the graph has no atoms.
func (g *Graph) Empty() bool {
	return len(g.Atoms) == 0
}

// AtomByID returns a pointer to the atom with the given ID, or nil.
func (g *Graph) AtomByID(id string) *Atom {
	if i, ok := g.byID[id]; ok {
		return &g.Atoms[i]
	}
	return nil
}

// Neighbors returns the atoms connected to id by any edge, in edge order.
// Both directions count: the graph-penalty and traversal logic treat
// connectivity as undirected.
func (g *Graph) Neighbors(id string) []*Atom {
	var out []*Atom
	seen := map[string]bool{}
	for _, e := range g.Edges {
		var other string
		switch {
		case e.From == id:
			other = e.To
		case e.To == id:
			other = e.From
		default:
			continue
		}
		if seen[other] {
			continue
		}
		seen[other] = true
		if a := g.AtomByID(other); a != nil {
			out = append(out, a)
		}
	}
	return out
}

// #endregion graph
