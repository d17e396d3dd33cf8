package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/dance-party/internal/models"
)

var _ list.Item = rowItem{}

// rowItem wraps [models.SearchRow] to implement [list.Item].
type rowItem struct {
	row models.SearchRow
}

func (i rowItem) FilterValue() string { return i.row.Name }
func (i rowItem) Title() string       { return i.row.Name }
func (i rowItem) Description() string {
	desc := string(i.row.Kind)
	if i.row.Artist != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.row.Artist)
	}
	if i.row.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.row.Album)
	}
	return desc
}

func rowItems(rows []models.SearchRow) []list.Item {
	items := make([]list.Item, len(rows))
	for i, row := range rows {
		items[i] = rowItem{row: row}
	}
	return items
}
