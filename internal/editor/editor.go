// Package editor holds the in-memory edit session for pages and stories.
//
// Editors are not safe for concurrent use. A single caller mutates the tree;
// only Save on a session may overlap with itself and is guarded.
package editor

import (
	"errors"
)

var (
	ErrSectionNotFound    = errors.New("section not found")
	ErrBlockNotFound      = errors.New("block not found")
	ErrSectionNotSelected = errors.New("section is not selected")
	ErrNotPermutation     = errors.New("ids are not a permutation of the current order")
	ErrInvalidLayout      = errors.New("invalid layout")
	ErrInvalidStyle       = errors.New("invalid style key")
	ErrInvalidBlockType   = errors.New("invalid block type")
	ErrInvalidStatus      = errors.New("invalid page status")

	ErrNameRequired      = errors.New("Page name is required")
	ErrTitleRequired     = errors.New("Please enter a story title.")
	ErrThumbnailRequired = errors.New("Please upload a Card Thumbnail image.")
	ErrHeroRequired      = errors.New("Please upload a Hero Background image.")
	ErrExcerptRequired   = errors.New("Please provide a Short Excerpt for the preview.")

	ErrSaveInProgress = errors.New("save already in progress")
)

type SelectionKind int

const (
	NoSelection SelectionKind = iota
	SectionSelected
	BlockSelected
)

func (k SelectionKind) String() string {
	switch k {
	case SectionSelected:
		return "section"
	case BlockSelected:
		return "block"
	}
	return "none"
}

// Selection текущий выделенный элемент. ID пуст при NoSelection.
type Selection struct {
	Kind SelectionKind
	ID   string
}

// isPermutation reports whether ids hold exactly the members of current, each once.
func isPermutation(current, ids []string) bool {
	if len(current) != len(ids) {
		return false
	}

	want := make(map[string]struct{}, len(current))
	for _, id := range current {
		want[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := want[id]; !ok {
			return false
		}
		delete(want, id)
	}

	return len(want) == 0
}
