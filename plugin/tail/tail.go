// Package tail keeps the end of the text visible.
package tail

import "github.com/ByLCY/textbox/layout"

// Plugin puts the last line of the text at the bottom of the box when the
// text is taller than the box, whatever the vertical alignment. Text that
// fits keeps its vertical alignment.
type Plugin struct{ layout.NopPlugin }

// New returns a tail plugin.
func New() *Plugin { return &Plugin{} }

func (p *Plugin) Clone() layout.Plugin { return &Plugin{} }

func (p *Plugin) OnStartRender(cursor *layout.Cursor, props layout.Properties) {
	if box := props.Bounds.Dy(); props.TextHeight > box {
		cursor.Y = props.Bounds.Min.Y + box - props.TextHeight
	}
}
