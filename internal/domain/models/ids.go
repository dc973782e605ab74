package models

import (
	"strings"

	"github.com/google/uuid"
)

const (
	PrefixSection = "sec"
	PrefixBlock   = "blk"
	PrefixStory   = "sblk"
)

// NewLocalID генерирует локальный идентификатор вида prefix_<hex>.
// Идентификатор непрозрачен и используется только редактором.
func NewLocalID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
