package store

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/papapumpkin/lazyscales/internal/library"
	"github.com/papapumpkin/lazyscales/internal/pitch"
	"github.com/papapumpkin/lazyscales/internal/scale"
	"github.com/papapumpkin/lazyscales/internal/taxonomy"
	"github.com/papapumpkin/lazyscales/internal/tuning"
)

// SaveLibrary writes every ring, scale name, family and tuning of lib to g.
// The store must not already hold a library.
func SaveLibrary(ctx context.Context, g Graph, lib *library.Library) error {
	existing, err := g.NodesOfKind(ctx, KindScaleFamily)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return ErrNotEmpty
	}

	positions, err := saveRings(ctx, g, lib.Catalog)
	if err != nil {
		return err
	}

	scaleNodes := make(map[string]NodeID)
	err = saveFamilies(ctx, g, lib.Scales, KindScaleFamily, func(m taxonomy.Member[scale.Position]) (NodeID, error) {
		if id, ok := scaleNodes[m.Name]; ok {
			return id, nil
		}
		id, err := g.CreateNode(ctx, KindScale, Props{"name": m.Name})
		if err != nil {
			return 0, err
		}
		if err := g.CreateEdge(ctx, id, positions[m.Item], LabelPosition, nil); err != nil {
			return 0, err
		}
		scaleNodes[m.Name] = id
		return id, nil
	})
	if err != nil {
		return err
	}

	tuningNodes := make(map[string]NodeID)
	err = saveFamilies(ctx, g, lib.Tunings, KindTuningFamily, func(m taxonomy.Member[*tuning.Tuning]) (NodeID, error) {
		if id, ok := tuningNodes[m.Name]; ok {
			return id, nil
		}
		id, err := g.CreateNode(ctx, KindTuning, Props{
			"name":      m.Name,
			"root":      m.Item.Root().Flat(),
			"intervals": joinInts(m.Item.Intervals()),
		})
		if err != nil {
			return 0, err
		}
		tuningNodes[m.Name] = id
		return id, nil
	})
	if err != nil {
		return err
	}

	lib.Logger().Info("store: library saved",
		"rings", lib.Catalog.Len(), "scales", len(scaleNodes), "tunings", len(tuningNodes))
	return nil
}

// saveRings writes one node per ring position, linked around each ring by
// edges labeled with the step in semitones.
func saveRings(ctx context.Context, g Graph, cat *scale.Catalog) (map[scale.Position]NodeID, error) {
	ids := make(map[scale.Position]NodeID)
	for _, degree := range cat.Degrees() {
		for _, base := range cat.Rings(degree) {
			ivs, err := cat.Intervals(base)
			if err != nil {
				return nil, err
			}
			ring := make([]NodeID, len(ivs))
			for off := range ivs {
				pos := scale.Position{Ring: base.Ring, Offset: off}
				id, err := g.CreateNode(ctx, KindPosition, Props{
					"ring":   strconv.Itoa(pos.Ring),
					"offset": strconv.Itoa(off),
				})
				if err != nil {
					return nil, err
				}
				ring[off] = id
				ids[pos] = id
			}
			for off, iv := range ivs {
				next := ring[(off+1)%len(ring)]
				if err := g.CreateEdge(ctx, ring[off], next, strconv.Itoa(int(iv)), nil); err != nil {
					return nil, err
				}
			}
		}
	}
	return ids, nil
}

// saveFamilies writes the family tree under tx's root. member creates (or
// reuses) the node for a family member.
func saveFamilies[T comparable](ctx context.Context, g Graph, tx *taxonomy.Taxonomy[T], kind string, member func(taxonomy.Member[T]) (NodeID, error)) error {
	ids := make(map[taxonomy.Family]NodeID)
	node := func(f taxonomy.Family) (NodeID, error) {
		if id, ok := ids[f]; ok {
			return id, nil
		}
		props := Props{"name": tx.Name(f)}
		if f == tx.Root() {
			props["root"] = "true"
		}
		id, err := g.CreateNode(ctx, kind, props)
		if err != nil {
			return 0, err
		}
		ids[f] = id
		return id, nil
	}

	families := append([]taxonomy.Family{tx.Root()}, tx.AllSubfamilies(tx.Root())...)
	for _, f := range families {
		from, err := node(f)
		if err != nil {
			return err
		}
		for _, sub := range tx.Subfamilies(f) {
			to, err := node(sub)
			if err != nil {
				return err
			}
			if err := g.CreateEdge(ctx, from, to, LabelSubfamily, nil); err != nil {
				return err
			}
		}
		for _, m := range tx.DirectMembers(f) {
			to, err := member(m)
			if err != nil {
				return err
			}
			if err := g.CreateEdge(ctx, from, to, LabelMember, Props{"name": m.Name}); err != nil {
				return err
			}
		}
	}
	return nil
}

// LoadLibrary rebuilds a library from g. Ring numbering in the result
// follows interning order and may differ from the saved library.
func LoadLibrary(ctx context.Context, g Graph, logger *slog.Logger) (*library.Library, error) {
	lib := library.New(logger)

	bases, err := loadRings(ctx, g, lib.Catalog)
	if err != nil {
		return nil, err
	}
	resolve := func(posNode NodeID) (scale.Position, error) {
		n, err := g.Node(ctx, posNode)
		if err != nil {
			return scale.Position{}, err
		}
		ring, off, err := ringProps(n)
		if err != nil {
			return scale.Position{}, err
		}
		base, ok := bases[ring]
		if !ok {
			return scale.Position{}, fmt.Errorf("store: position node %d: unknown ring %d", n.ID, ring)
		}
		return lib.Catalog.Mode(base, off+1)
	}

	scaleRoot, err := rootNode(ctx, g, KindScaleFamily)
	if err != nil {
		return nil, err
	}
	err = loadFamilies(ctx, g, scaleRoot, lib.Scales.Root(), lib.ScaleFamily, func(fam taxonomy.Family, member Node) error {
		posNode, err := g.Follow(ctx, member.ID, LabelPosition)
		if err != nil {
			return fmt.Errorf("store: scale %q: %w", member.Props["name"], err)
		}
		pos, err := resolve(posNode)
		if err != nil {
			return fmt.Errorf("store: scale %q: %w", member.Props["name"], err)
		}
		_, err = lib.NewMode(fam, pos, 1, member.Props["name"])
		return err
	})
	if err != nil {
		return nil, err
	}

	tuningRoot, err := rootNode(ctx, g, KindTuningFamily)
	if err != nil {
		return nil, err
	}
	err = loadFamilies(ctx, g, tuningRoot, lib.Tunings.Root(), lib.TuningFamily, func(fam taxonomy.Family, member Node) error {
		root, err := pitch.Parse(member.Props["root"])
		if err != nil {
			return fmt.Errorf("store: tuning %q: %w", member.Props["name"], err)
		}
		ivs, err := splitInts(member.Props["intervals"])
		if err != nil {
			return fmt.Errorf("store: tuning %q: %w", member.Props["name"], err)
		}
		_, err = lib.NewTuning(fam, member.Props["name"], root, ivs...)
		return err
	})
	if err != nil {
		return nil, err
	}

	lib.Logger().Info("store: library loaded",
		"rings", lib.Catalog.Len(), "scales", len(lib.ScaleNames()), "tunings", len(lib.TuningNames()))
	return lib, nil
}

// loadRings walks every saved ring from its offset-0 node and interns it.
// The result maps each saved ring number to the interned position of that
// ring's offset 0.
func loadRings(ctx context.Context, g Graph, cat *scale.Catalog) (map[int]scale.Position, error) {
	nodes, err := g.NodesOfKind(ctx, KindPosition)
	if err != nil {
		return nil, err
	}
	sizes := make(map[int]int)
	starts := make(map[int]NodeID)
	var order []int
	for _, n := range nodes {
		ring, off, err := ringProps(n)
		if err != nil {
			return nil, err
		}
		if _, seen := sizes[ring]; !seen {
			order = append(order, ring)
		}
		sizes[ring]++
		if off == 0 {
			starts[ring] = n.ID
		}
	}

	bases := make(map[int]scale.Position, len(order))
	for _, ring := range order {
		start, ok := starts[ring]
		if !ok {
			return nil, fmt.Errorf("store: ring %d has no offset 0", ring)
		}
		var ivs []pitch.Interval
		for cur := start; ; {
			edges, err := g.Edges(ctx, cur)
			if err != nil {
				return nil, err
			}
			if len(edges) != 1 {
				return nil, fmt.Errorf("store: ring %d: node %d has %d steps", ring, cur, len(edges))
			}
			step, err := strconv.Atoi(edges[0].Label)
			if err != nil {
				return nil, fmt.Errorf("store: ring %d: step label %q: %w", ring, edges[0].Label, err)
			}
			ivs = append(ivs, pitch.Interval(step))
			cur = edges[0].To
			if cur == start {
				break
			}
			if len(ivs) > sizes[ring] {
				return nil, fmt.Errorf("store: ring %d does not close", ring)
			}
		}
		pos, err := cat.Intern(ivs)
		if err != nil {
			return nil, fmt.Errorf("store: ring %d: %w", ring, err)
		}
		bases[ring] = pos
	}
	return bases, nil
}

// loadFamilies walks subfamily edges breadth-first from the saved root,
// recreating each family under its parent, then hands every member node to
// add.
func loadFamilies(ctx context.Context, g Graph, savedRoot NodeID, root taxonomy.Family,
	ensure func(parent taxonomy.Family, name string) (taxonomy.Family, error),
	add func(taxonomy.Family, Node) error,
) error {
	families := map[NodeID]taxonomy.Family{savedRoot: root}
	visited := make(map[NodeID]bool)
	queue := []NodeID{savedRoot}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true

		edges, err := g.Edges(ctx, cur)
		if err != nil {
			return err
		}
		for _, e := range edges {
			target, err := g.Node(ctx, e.To)
			if err != nil {
				return err
			}
			switch e.Label {
			case LabelSubfamily:
				f, err := ensure(families[cur], target.Props["name"])
				if err != nil {
					return err
				}
				families[e.To] = f
				queue = append(queue, e.To)
			case LabelMember:
				if err := add(families[cur], target); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func rootNode(ctx context.Context, g Graph, kind string) (NodeID, error) {
	nodes, err := g.NodesOfKind(ctx, kind)
	if err != nil {
		return 0, err
	}
	for _, n := range nodes {
		if n.Props["root"] == "true" {
			return n.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: no root %s", ErrNoNode, kind)
}

func ringProps(n Node) (ring, offset int, err error) {
	if ring, err = strconv.Atoi(n.Props["ring"]); err != nil {
		return 0, 0, fmt.Errorf("store: position node %d: ring: %w", n.ID, err)
	}
	if offset, err = strconv.Atoi(n.Props["offset"]); err != nil {
		return 0, 0, fmt.Errorf("store: position node %d: offset: %w", n.ID, err)
	}
	return ring, offset, nil
}

func joinInts(ivs []pitch.Interval) string {
	b := make([]byte, 0, 3*len(ivs))
	for i, iv := range ivs {
		if i > 0 {
			b = append(b, ' ')
		}
		b = strconv.AppendInt(b, int64(iv), 10)
	}
	return string(b)
}

func splitInts(s string) ([]pitch.Interval, error) {
	fields := strings.Fields(s)
	out := make([]pitch.Interval, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = pitch.Interval(n)
	}
	return out, nil
}
