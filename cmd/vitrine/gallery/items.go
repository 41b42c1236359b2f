package gallery

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"vitrine/internal/catalog"
)

// studyItem adapts catalog.Study to list.Item.
type studyItem struct {
	study catalog.Study
}

func (i studyItem) Title() string {
	if i.study.Title == "" {
		return i.study.ID
	}
	return i.study.Title
}

func (i studyItem) Description() string {
	var parts []string
	if i.study.Tag != "" {
		parts = append(parts, i.study.Tag)
	}
	if i.study.Date != "" {
		parts = append(parts, i.study.Date)
	}
	if p := i.study.Preview(); p != "" {
		parts = append(parts, p)
	}
	return strings.Join(parts, " · ")
}

func (i studyItem) FilterValue() string {
	return i.study.Title + " " + i.study.Tag + " " + i.study.ID
}

// catalogItems converts a catalog into list items in catalog order.
func catalogItems(c *catalog.Catalog) []list.Item {
	if c == nil {
		return nil
	}
	studies := c.All()
	items := make([]list.Item, 0, len(studies))
	for _, s := range studies {
		items = append(items, studyItem{study: s})
	}
	return items
}
