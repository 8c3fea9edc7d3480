package annotate

// Tool is the active overlay tool. Every tool except ToolSelect creates
// items of the matching Kind.
type Tool int

const (
	ToolSelect Tool = iota
	ToolPen
	ToolRectangle
	ToolCircle
	ToolArrow
	ToolText
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolSelect, ToolPen, ToolRectangle, ToolCircle, ToolArrow, ToolText}

// Kind returns the item kind the tool draws, or zero for ToolSelect.
func (t Tool) Kind() Kind {
	switch t {
	case ToolPen:
		return KindPen
	case ToolRectangle:
		return KindRectangle
	case ToolCircle:
		return KindCircle
	case ToolArrow:
		return KindArrow
	case ToolText:
		return KindText
	}
	return 0
}

// Draws reports whether the tool creates shape items by dragging.
func (t Tool) Draws() bool {
	switch t {
	case ToolPen, ToolRectangle, ToolCircle, ToolArrow:
		return true
	}
	return false
}

func (t Tool) String() string {
	if t == ToolSelect {
		return "select"
	}
	if k := t.Kind(); k != 0 {
		return k.String()
	}
	return "unknown"
}

// ParseTool maps a tool name back to a Tool.
func ParseTool(s string) (Tool, bool) {
	for _, t := range Tools {
		if t.String() == s {
			return t, true
		}
	}
	return ToolSelect, false
}
