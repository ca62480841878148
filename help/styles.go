package help

import (
	"github.com/gdamore/tcell/v2"

	"github.com/xqrs/plainscroll"
)

type Styles struct {
	ShortKeyStyle       tcell.Style
	ShortDescStyle      tcell.Style
	ShortSeparatorStyle tcell.Style

	FullKeyStyle       tcell.Style
	FullDescStyle      tcell.Style
	FullSeparatorStyle tcell.Style

	EllipsisStyle tcell.Style
}

// DefaultStyles derives the help styles from [plainscroll.Styles]: keys in
// the secondary text color, descriptions in the primary one.
func DefaultStyles() Styles {
	base := tcell.StyleDefault.Background(plainscroll.Styles.PrimitiveBackgroundColor)
	key := base.Foreground(plainscroll.Styles.SecondaryTextColor)
	desc := base.Foreground(plainscroll.Styles.PrimaryTextColor)
	dim := desc.Dim(true)
	return Styles{
		ShortKeyStyle:       key,
		ShortDescStyle:      desc,
		ShortSeparatorStyle: dim,
		FullKeyStyle:        key,
		FullDescStyle:       desc,
		FullSeparatorStyle:  dim,
		EllipsisStyle:       dim,
	}
}
