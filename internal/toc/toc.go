// Package toc builds a table of contents from a book's page index by
// walking parent pointers in ascending page-id order and assigning
// 1-based hierarchical section numbers.
package toc

import (
	"github.com/arloliu/bookblob/errs"
	"github.com/arloliu/bookblob/format"
	"github.com/arloliu/bookblob/internal/datablock"
	"github.com/arloliu/bookblob/internal/metadata"
	"github.com/arloliu/bookblob/internal/pagestore"
)

// MaxDepth bounds how far the parent walk climbs before giving up; it
// doubles as the cycle guard, since a genuine cycle never reaches a root.
const MaxDepth = 32

// node is the pointer-linked tree used while building, converted to the
// value-typed format.TocEntry tree only once construction succeeds.
type node struct {
	id       format.PageID
	title    string
	section  []uint32
	children []*node
}

// Build walks sortedIDs (ascending page id) using index and blocks to
// fetch each page's title, producing the forest of top-level entries in
// the order their roots were encountered.
func Build(blocks *datablock.Reader, sortedIDs []format.PageID, index map[format.PageID]pagestore.IndexEntry) ([]format.TocEntry, error) {
	parents := make(map[format.PageID]format.PageID, len(sortedIDs))
	nodes := make(map[format.PageID]*node, len(sortedIDs))

	var topLevel []*node

	for _, id := range sortedIDs {
		entry := index[id]
		parents[id] = entry.ParentID

		title, err := fetchTitle(blocks, entry)
		if err != nil {
			return nil, err
		}

		n := &node{id: id, title: title}
		nodes[id] = n

		if entry.ParentID.IsZero() {
			n.section = []uint32{uint32(len(topLevel) + 1)}
			topLevel = append(topLevel, n)

			continue
		}

		if err := walkToRoot(parents, entry.ParentID); err != nil {
			return nil, err
		}

		parentNode := nodes[entry.ParentID]

		n.section = make([]uint32, len(parentNode.section)+1)
		copy(n.section, parentNode.section)
		n.section[len(n.section)-1] = uint32(len(parentNode.children) + 1)

		parentNode.children = append(parentNode.children, n)
	}

	result := make([]format.TocEntry, len(topLevel))
	for i, n := range topLevel {
		result[i] = convert(n)
	}

	return result, nil
}

// walkToRoot follows parent pointers from start, failing if a root is not
// reached within MaxDepth steps (ParentLoop) or an ancestor has not been
// observed yet in iteration order (InvalidParent).
func walkToRoot(parents map[format.PageID]format.PageID, start format.PageID) error {
	cur := start

	for depth := 0; depth < MaxDepth; depth++ {
		parent, ok := parents[cur]
		if !ok {
			return errs.ErrInvalidParent
		}
		if parent.IsZero() {
			return nil
		}

		cur = parent
	}

	return errs.ErrParentLoop
}

func fetchTitle(blocks *datablock.Reader, entry pagestore.IndexEntry) (string, error) {
	entries, err := datablock.WithBlock(blocks, entry.MetadataBlockID, uint64(entry.MetadataBlockOffset),
		func(decoded []byte) ([]format.MetadataEntry, error) {
			return metadata.ReadFromBytes(decoded)
		})
	if err != nil {
		return "", err
	}

	for _, m := range entries {
		if m.Tag == format.TagTitle {
			return m.Text, nil
		}
	}

	return "", nil
}

func convert(n *node) format.TocEntry {
	children := make([]format.TocEntry, len(n.children))
	for i, c := range n.children {
		children[i] = convert(c)
	}

	return format.TocEntry{ID: n.id, Title: n.title, SectionNumber: n.section, Children: children}
}
