package ui

import (
	"github.com/charmbracelet/bubbles/list"
)

var (
	_ list.Item = historyItem{}
)

// historyItem is a previously run query, implementing [list.Item].
type historyItem struct {
	query string
	ok    bool
	size  int
}

func (i historyItem) FilterValue() string { return i.query }
func (i historyItem) Title() string       { return i.query }
func (i historyItem) Description() string {
	if !i.ok {
		return "failed"
	}
	return formatSize(i.size)
}
