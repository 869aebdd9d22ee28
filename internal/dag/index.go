// Package dag orders named nodes so that every node comes after the nodes it
// names, and finds the nodes caught in cycles.
package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// NodeID is the dense id of a node name.
type NodeID uint32

// Index maps node names to ids and back.
type Index struct {
	NameToID map[string]NodeID
	IDToName []string
}

// BuildIndex collects the unique non-empty names, sorts them and hands out
// ids in that order.
func BuildIndex(names []string) Index {
	paths := slices.DeleteFunc(slices.Clone(names), func(s string) bool { return s == "" })
	slices.Sort(paths)
	paths = slices.Compact(paths)

	nameToID := make(map[string]NodeID, len(paths))
	for i, path := range paths {
		id, err := safecast.Conv[NodeID](i)
		if err != nil {
			panic(fmt.Errorf("node id overflow: %w", err))
		}
		nameToID[path] = id
	}
	return Index{
		NameToID: nameToID,
		IDToName: paths,
	}
}
