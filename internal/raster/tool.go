package raster

import (
	"fmt"
	"strings"
)

// Tool selects what a pointer gesture does to the canvas.
type Tool int

const (
	ToolPen Tool = iota
	ToolPoint
	ToolLine
	ToolDotted
	ToolRectangle
	ToolEllipse
	ToolTriangle
	ToolPolygon
	ToolStar
	ToolText
	ToolColorPicker
	ToolSelection
)

var toolNames = [...]string{
	ToolPen:         "pen",
	ToolPoint:       "point",
	ToolLine:        "line",
	ToolDotted:      "dotted",
	ToolRectangle:   "rect",
	ToolEllipse:     "ellipse",
	ToolTriangle:    "triangle",
	ToolPolygon:     "polygon",
	ToolStar:        "star",
	ToolText:        "text",
	ToolColorPicker: "picker",
	ToolSelection:   "select",
}

var toolAliases = map[string]Tool{
	"freehand":  ToolPen,
	"dot":       ToolPoint,
	"dash":      ToolDotted,
	"rectangle": ToolRectangle,
	"circle":    ToolEllipse,
	"oval":      ToolEllipse,
	"colour":    ToolColorPicker,
	"color":     ToolColorPicker,
	"selection": ToolSelection,
}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Sprintf("tool(%d)", int(t))
	}
	return toolNames[t]
}

// ParseTool accepts a tool name or one of its aliases.
func ParseTool(s string) (Tool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range toolNames {
		if name == s {
			return Tool(i), nil
		}
	}
	if t, ok := toolAliases[s]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("unknown tool %q", s)
}

// Tools lists every tool in display order.
func Tools() []Tool {
	out := make([]Tool, len(toolNames))
	for i := range toolNames {
		out[i] = Tool(i)
	}
	return out
}

// IsShape reports whether the tool draws a two point shape on release.
func (t Tool) IsShape() bool {
	switch t {
	case ToolLine, ToolDotted, ToolRectangle, ToolEllipse, ToolTriangle, ToolPolygon, ToolStar:
		return true
	}
	return false
}
