package digraph

import "slices"

// SimpleCycles returns every elementary circuit of the graph. Each circuit
// is listed once, as the node path starting at its least node in insertion
// order; the closing edge back to the first node is implied. Parallel edges
// do not produce duplicate circuits.
func (g *Graph) SimpleCycles() [][]string {
	n := len(g.order)
	succ := make([][]int, n)
	pred := make([][]int, n)
	for _, e := range g.edges {
		from, to := g.index[e.From], g.index[e.To]
		if !slices.Contains(succ[from], to) {
			succ[from] = append(succ[from], to)
			pred[to] = append(pred[to], from)
		}
	}

	j := &johnson{
		succ:    succ,
		blocked: make([]bool, n),
		b:       make([][]int, n),
	}
	var cycles [][]string
	for s := range n {
		j.start = s
		j.comp = componentOf(s, succ, pred)
		for v := range j.comp {
			j.blocked[v] = false
			j.b[v] = nil
		}
		j.circuit(s)
		for _, c := range j.found {
			ids := make([]string, len(c))
			for i, v := range c {
				ids[i] = g.order[v]
			}
			cycles = append(cycles, ids)
		}
		j.found = nil
	}
	return cycles
}

// johnson holds the search state of Johnson's circuit enumeration for the
// current start node.
type johnson struct {
	succ    [][]int
	start   int
	comp    map[int]bool
	blocked []bool
	b       [][]int
	stack   []int
	found   [][]int
}

func (j *johnson) circuit(v int) bool {
	closed := false
	j.stack = append(j.stack, v)
	j.blocked[v] = true

	for _, w := range j.succ[v] {
		if !j.comp[w] {
			continue
		}
		if w == j.start {
			j.found = append(j.found, slices.Clone(j.stack))
			closed = true
		} else if !j.blocked[w] && j.circuit(w) {
			closed = true
		}
	}

	if closed {
		j.unblock(v)
	} else {
		for _, w := range j.succ[v] {
			if j.comp[w] && !slices.Contains(j.b[w], v) {
				j.b[w] = append(j.b[w], v)
			}
		}
	}

	j.stack = j.stack[:len(j.stack)-1]
	return closed
}

func (j *johnson) unblock(u int) {
	j.blocked[u] = false
	waiting := j.b[u]
	j.b[u] = nil
	for _, w := range waiting {
		if j.blocked[w] {
			j.unblock(w)
		}
	}
}

// componentOf returns the strongly connected component containing s in the
// subgraph induced by nodes with index >= s.
func componentOf(s int, succ, pred [][]int) map[int]bool {
	forward := reach(s, succ)
	backward := reach(s, pred)
	comp := make(map[int]bool)
	for v := range forward {
		if backward[v] {
			comp[v] = true
		}
	}
	return comp
}

func reach(s int, adj [][]int) map[int]bool {
	seen := map[int]bool{s: true}
	queue := []int{s}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range adj[v] {
			if w >= s && !seen[w] {
				seen[w] = true
				queue = append(queue, w)
			}
		}
	}
	return seen
}

// BreakCycles removes back edges found by depth-first search from the
// sources, until the graph is acyclic. Returns the removed edges.
func (g *Graph) BreakCycles() []Edge {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.order))
	var back []Edge

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range g.outgoing[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				back = append(back, Edge{From: id, To: child})
			}
		}
		color[id] = black
	}

	for _, id := range g.Sources() {
		if color[id] == white {
			dfs(id)
		}
	}
	for _, id := range g.order {
		if color[id] == white {
			dfs(id)
		}
	}

	for _, e := range back {
		g.RemoveEdge(e.From, e.To)
	}
	return back
}
