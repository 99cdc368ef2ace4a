// Package bomtree holds the client-side view state for a server-exploded BOM
// hierarchy: per-node expand/collapse tracking and the flat requirements
// filter. The package never talks to the network; it operates on a tree that
// is already in memory.
package bomtree

import (
	"strconv"
	"strings"

	"planctl/internal/models"
)

// maxRenderDepth caps tree walks. The server guarantees the tree is acyclic,
// so this limit is never reached with well-formed data; it only stops a
// runaway walk if that contract were ever violated. The data is not pruned or
// repaired.
const maxRenderDepth = 64

// Row is one visible line of the rendered tree.
type Row struct {
	Path       string
	Depth      int
	Node       *models.BOMTreeNode
	Expandable bool
	Expanded   bool
}

// TreeView tracks expand/collapse state for one BOM tree. Each node's state
// is independent; toggling a node never touches its siblings or descendants.
// Nodes are addressed by position path ("0", "0/2", ...) so the same sku
// appearing at two positions keeps two independent states.
type TreeView struct {
	root      models.BOMTreeNode
	openAll   bool
	overrides map[string]bool
}

// New creates a TreeView over root. The root node starts expanded and every
// descendant collapsed; with openAll set, every node starts expanded instead.
func New(root models.BOMTreeNode, openAll bool) *TreeView {
	return &TreeView{root: root, openAll: openAll, overrides: map[string]bool{}}
}

// Root returns the underlying root node.
func (tv *TreeView) Root() *models.BOMTreeNode { return &tv.root }

func (tv *TreeView) defaultExpanded(path string) bool {
	if tv.openAll {
		return true
	}
	return path == "0" // root only
}

func (tv *TreeView) isExpanded(path string) bool {
	if v, ok := tv.overrides[path]; ok {
		return v
	}
	return tv.defaultExpanded(path)
}

// nodeAt resolves a position path, or nil if the path does not address a node.
func (tv *TreeView) nodeAt(path string) *models.BOMTreeNode {
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] != "0" {
		return nil
	}
	node := &tv.root
	for _, p := range parts[1:] {
		i, err := strconv.Atoi(p)
		if err != nil || i < 0 || i >= len(node.Children) {
			return nil
		}
		node = &node.Children[i]
	}
	return node
}

// Toggle flips the expanded state of the node at path. Leaf nodes are not
// togglable; unknown paths are ignored. Returns the new state.
func (tv *TreeView) Toggle(path string) bool {
	node := tv.nodeAt(path)
	if node == nil || len(node.Children) == 0 {
		return false
	}
	now := !tv.isExpanded(path)
	tv.overrides[path] = now
	return now
}

// ExpandAll marks every node expanded.
func (tv *TreeView) ExpandAll() {
	tv.openAll = true
	tv.overrides = map[string]bool{}
}

// CollapseAll collapses everything back to the default state (root open,
// descendants closed).
func (tv *TreeView) CollapseAll() {
	tv.openAll = false
	tv.overrides = map[string]bool{}
}

// VisibleRows returns the rows currently visible: a node is visible when
// every ancestor on its path is expanded.
func (tv *TreeView) VisibleRows() []Row {
	var rows []Row
	tv.walk(&tv.root, "0", 0, &rows)
	return rows
}

func (tv *TreeView) walk(node *models.BOMTreeNode, path string, depth int, rows *[]Row) {
	if depth > maxRenderDepth {
		return
	}
	expandable := len(node.Children) > 0
	expanded := expandable && tv.isExpanded(path)
	*rows = append(*rows, Row{
		Path:       path,
		Depth:      depth,
		Node:       node,
		Expandable: expandable,
		Expanded:   expanded,
	})
	if !expanded {
		return
	}
	for i := range node.Children {
		tv.walk(&node.Children[i], path+"/"+strconv.Itoa(i), depth+1, rows)
	}
}

// TotalNodes counts every node reachable from the root (bounded by the same
// depth cap as rendering).
func (tv *TreeView) TotalNodes() int {
	return countNodes(&tv.root, 0)
}

func countNodes(node *models.BOMTreeNode, depth int) int {
	if depth > maxRenderDepth {
		return 0
	}
	n := 1
	for i := range node.Children {
		n += countNodes(&node.Children[i], depth+1)
	}
	return n
}
