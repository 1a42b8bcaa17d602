package catalog

import (
	"fmt"
	"sort"

	"github.com/disiqueira/gotree/v3"
)

// Tree renders flattened entries as their region hierarchy.
func Tree(service string, entries []Entry) string {
	children := make(map[string][]Entry)
	for _, e := range entries {
		children[e.ParentID] = append(children[e.ParentID], e)
	}
	for _, list := range children {
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	}

	root := gotree.New(service)
	addChildren(root, "", children)
	return root.Print()
}

func addChildren(node gotree.Tree, parent string, children map[string][]Entry) {
	for _, e := range children[parent] {
		label := e.ID
		if e.Name != "" && e.Name != e.ID {
			label = fmt.Sprintf("%s (%s)", e.ID, e.Name)
		}
		addChildren(node.Add(label), e.ID, children)
	}
}
