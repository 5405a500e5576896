// Package store persists a scale library as a property graph.
//
// Nodes carry a kind and a small string property map; edges are directed and
// labeled. Scale rings are stored as cycles of position nodes whose edges are
// labeled with the interval between neighbours, so a ring can be walked back
// exactly as it was interned. The SQLite implementation runs in WAL mode with
// a single connection.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNoNode is returned when a node ID does not exist.
	ErrNoNode = errors.New("store: no such node")

	// ErrNoEdge is returned by Follow when no edge with the label leaves the node.
	ErrNoEdge = errors.New("store: no such edge")

	// ErrAmbiguousEdge is returned by Follow when more than one edge matches.
	ErrAmbiguousEdge = errors.New("store: ambiguous edge")

	// ErrNotEmpty is returned by SaveLibrary when the store already holds a library.
	ErrNotEmpty = errors.New("store: already holds a library")
)

// Node kinds written by SaveLibrary.
const (
	KindPosition     = "position"
	KindScale        = "scale"
	KindScaleFamily  = "scale_family"
	KindTuning       = "tuning"
	KindTuningFamily = "tuning_family"
)

// Edge labels written by SaveLibrary. Ring steps are labeled with the
// interval in semitones instead.
const (
	LabelSubfamily = "subfamily"
	LabelMember    = "member"
	LabelPosition  = "position"
)

// NodeID identifies a node.
type NodeID int64

// Props is a node or edge property map.
type Props map[string]string

// Node is a stored vertex.
type Node struct {
	ID    NodeID `json:"id"`
	Kind  string `json:"kind"`
	Props Props  `json:"props"`
}

// Edge is a stored directed, labeled edge.
type Edge struct {
	ID    int64  `json:"id"`
	From  NodeID `json:"from"`
	To    NodeID `json:"to"`
	Label string `json:"label"`
	Props Props  `json:"props,omitempty"`
}

// Graph is the minimal graph store the library is persisted through.
type Graph interface {
	CreateNode(ctx context.Context, kind string, props Props) (NodeID, error)
	CreateEdge(ctx context.Context, from, to NodeID, label string, props Props) error
	Node(ctx context.Context, id NodeID) (Node, error)
	// Follow returns the target of the single edge leaving from with label.
	Follow(ctx context.Context, from NodeID, label string) (NodeID, error)
	// Edges returns every edge leaving from, in creation order.
	Edges(ctx context.Context, from NodeID) ([]Edge, error)
	NodesOfKind(ctx context.Context, kind string) ([]Node, error)
}
