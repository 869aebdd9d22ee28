package dag

import "slices"

// Node declares a node and the nodes that must come before it.
type Node struct {
	Name  string
	After []string
}

// Graph links every node to the nodes that come after it.
type Graph struct {
	Edges   [][]NodeID // Edges[from] = nodes after from
	Indeg   []int      // predecessors, counting declared nodes only
	Present []bool     // declared, as opposed to only referenced
}

// ProblemKind classifies an edge or node BuildGraph dropped.
type ProblemKind uint8

const (
	// ProblemMissing is a reference to a name outside the index.
	ProblemMissing ProblemKind = iota + 1
	// ProblemSelf is a node that must come after itself.
	ProblemSelf
	// ProblemDuplicate is a second declaration of a name.
	ProblemDuplicate
)

// Problem names the node a dropped edge or declaration belongs to.
type Problem struct {
	Kind ProblemKind
	Node string
	Ref  string
}

// BuildGraph links the declared nodes. Edges to names missing from idx,
// self edges and repeated declarations are dropped and returned as problems.
func BuildGraph(idx Index, nodes []Node) (Graph, []Problem) {
	nodeCount := len(idx.IDToName)
	g := Graph{
		Edges:   make([][]NodeID, nodeCount),
		Indeg:   make([]int, nodeCount),
		Present: make([]bool, nodeCount),
	}
	var problems []Problem

	declared := make([]*Node, nodeCount)
	for i := range nodes {
		node := &nodes[i]
		id, ok := idx.NameToID[node.Name]
		if !ok {
			problems = append(problems, Problem{Kind: ProblemMissing, Node: node.Name})
			continue
		}
		if declared[id] != nil {
			problems = append(problems, Problem{Kind: ProblemDuplicate, Node: node.Name})
			continue
		}
		declared[id] = node
		g.Present[id] = true
	}

	for to, node := range declared {
		if node == nil {
			continue
		}
		seen := make(map[NodeID]struct{}, len(node.After))
		for _, ref := range node.After {
			from, ok := idx.NameToID[ref]
			if !ok {
				problems = append(problems, Problem{Kind: ProblemMissing, Node: node.Name, Ref: ref})
				continue
			}
			if int(from) == to {
				problems = append(problems, Problem{Kind: ProblemSelf, Node: node.Name, Ref: ref})
				continue
			}
			if _, dup := seen[from]; dup {
				continue
			}
			seen[from] = struct{}{}
			g.Edges[from] = append(g.Edges[from], NodeID(to))
			if g.Present[from] {
				g.Indeg[to]++
			}
		}
	}
	for from := range g.Edges {
		if len(g.Edges[from]) > 1 {
			slices.Sort(g.Edges[from])
		}
	}
	return g, problems
}
