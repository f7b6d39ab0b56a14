package wiring

// Namespace returns a copy of the diagram with every node id rewritten
// to prefix + "/" + id, including edge endpoints and the output id.
// Composition uses distinct prefixes per parent so unioned node sets
// cannot collide.
func Namespace(d Diagram, prefix string) Diagram {
	rename := make(map[string]string, len(d.Nodes))
	for _, n := range d.Nodes {
		rename[n.ID] = prefix + "/" + n.ID
	}
	return RenameNodes(d, rename)
}

// RenameNodes returns a copy of the diagram with node ids substituted
// per the rename map. Ids absent from the map are left unchanged, which
// lets callers rewire a single dangling endpoint (crossover redirects
// edges from a cut node to a graft node this way).
func RenameNodes(d Diagram, rename map[string]string) Diagram {
	out := d.Clone()
	sub := func(id string) string {
		if to, ok := rename[id]; ok {
			return to
		}
		return id
	}
	for i := range out.Nodes {
		out.Nodes[i].ID = sub(out.Nodes[i].ID)
	}
	for i := range out.Edges {
		if out.Edges[i].From != "" {
			out.Edges[i].From = sub(out.Edges[i].From)
		}
		out.Edges[i].To = sub(out.Edges[i].To)
	}
	out.Output = sub(out.Output)
	return out
}

// DropNode returns a copy of the diagram without the named node and
// without any edges touching it.
func DropNode(d Diagram, id string) Diagram {
	out := Diagram{Output: d.Output}
	for _, n := range d.Nodes {
		if n.ID != id {
			out.Nodes = append(out.Nodes, n)
		}
	}
	for _, e := range d.Edges {
		if e.To == id || (!e.IsConst() && e.From == id) {
			continue
		}
		out.Edges = append(out.Edges, e)
	}
	return out
}
