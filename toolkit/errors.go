package toolkit

import "errors"

var (
	// ErrToolNotFound is returned when a tool ID does not name a registered tool.
	ErrToolNotFound = errors.New("tool not found")

	// ErrInvalidToolID is returned when a tool ID is not "namespace:name".
	ErrInvalidToolID = errors.New("invalid tool id")

	// ErrInvalidArgs is returned when tool arguments are missing or mistyped.
	ErrInvalidArgs = errors.New("invalid tool arguments")

	// ErrInvalidTool is returned when a ToolDef cannot be registered.
	ErrInvalidTool = errors.New("invalid tool definition")
)
