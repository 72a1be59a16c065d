package help

import (
	"github.com/gdamore/tcell/v3"
)

type Styles struct {
	KeyStyle       tcell.Style
	DescStyle      tcell.Style
	SeparatorStyle tcell.Style
	EllipsisStyle  tcell.Style
	StatusStyle    tcell.Style
}

func DefaultStyles() Styles {
	dim := tcell.StyleDefault.Dim(true)
	return Styles{
		KeyStyle:       tcell.StyleDefault.Bold(true),
		DescStyle:      dim,
		SeparatorStyle: dim,
		EllipsisStyle:  dim,
		StatusStyle:    dim,
	}
}
