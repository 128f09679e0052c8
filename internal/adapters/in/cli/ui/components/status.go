package components

import (
	"github.com/bnema/stevedore/internal/adapters/in/cli/ui/styles"
	"github.com/bnema/stevedore/internal/domain"
)

// ImageColumns are the columns of the status table.
var ImageColumns = []TableColumn{
	{Title: "NAME", Width: 18},
	{Title: "REFERENCE", Width: 44},
	{Title: "STATE", Width: 17},
	{Title: "KIND", Width: 21},
	{Title: "ID", Width: 15},
	{Title: "SIZE", Width: 12},
}

// ImageTable renders one row per image, preformatted by the caller except
// for the state cell.
func ImageTable(infos []domain.ImageInfo, format func(domain.ImageInfo) []string) string {
	t := NewTable(WithColumns(ImageColumns))
	for _, info := range infos {
		cells := format(info)
		row := make([]string, 0, len(cells)+1)
		row = append(row, cells[:2]...)
		row = append(row, styles.RenderState(info.State))
		row = append(row, cells[2:]...)
		t.AddRow(row...)
	}
	return t.Render()
}
