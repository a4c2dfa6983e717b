package tools

import "errors"

var (
	ErrNoSuchEntity = errors.New("no such entity")
	ErrNotBrushable = errors.New("prefab cannot be painted")
)
