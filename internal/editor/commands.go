package editor

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pgeditor/editor/internal/component"
	"github.com/pgeditor/editor/internal/core/ecs"
	"github.com/pgeditor/editor/internal/core/event"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArguments   = errors.New("bad arguments")
)

// parseFunc turns a command's arguments into the events it posts, in order.
type parseFunc func(args []string) ([]any, error)

type command struct {
	usage string
	parse parseFunc
}

// commands maps console verbs to their parsers.
var commands = map[string]command{
	"spawn": {"spawn <prefab> x y z", func(a []string) ([]any, error) {
		if len(a) != 4 {
			return nil, ErrBadArguments
		}
		at, err := parseVec(a[1:])
		if err != nil {
			return nil, err
		}
		return []any{event.SpawnRequested{Prefab: a[0], Transform: component.FromTranslation(at)}}, nil
	}},
	"delete": {"delete <id>...", func(a []string) ([]any, error) {
		ids, err := parseIDs(a)
		if err != nil || len(ids) == 0 {
			return nil, errOr(err)
		}
		return []any{event.DeleteRequested{Entities: ids}}, nil
	}},
	"move": {"move <id> x y z", func(a []string) ([]any, error) {
		if len(a) != 4 {
			return nil, ErrBadArguments
		}
		id, err := ecs.ParseEntityID(a[0])
		if err != nil {
			return nil, err
		}
		to, err := parseVec(a[1:])
		if err != nil {
			return nil, err
		}
		return []any{event.MoveRequested{Entity: id, To: to}}, nil
	}},
	"select": {"select x0 z0 x1 z1", func(a []string) ([]any, error) {
		if len(a) != 4 {
			return nil, ErrBadArguments
		}
		f, err := parseFloats(a)
		if err != nil {
			return nil, err
		}
		return []any{
			event.BoxSelectMoved{At: component.Vec3{X: f[0], Z: f[1]}},
			event.BoxSelectMoved{At: component.Vec3{X: f[2], Z: f[3]}},
			event.BoxSelectEnded{},
		}, nil
	}},
	"delete-selection": {"delete-selection", noArgs(event.DeleteSelectionRequested{})},
	"drag": {"drag dx dy dz", func(a []string) ([]any, error) {
		if len(a) != 3 {
			return nil, ErrBadArguments
		}
		d, err := parseVec(a)
		if err != nil {
			return nil, err
		}
		return []any{event.DragMoved{Delta: d}}, nil
	}},
	"drag-end": {"drag-end", noArgs(event.DragEnded{})},
	"brush": {"brush x z", func(a []string) ([]any, error) {
		if len(a) != 2 {
			return nil, ErrBadArguments
		}
		f, err := parseFloats(a)
		if err != nil {
			return nil, err
		}
		return []any{event.BrushMoved{At: component.Vec3{X: f[0], Z: f[1]}}}, nil
	}},
	"brush-end": {"brush-end", noArgs(event.BrushEnded{})},
	"undo":      {"undo [n]", repeated(event.UndoRequested{})},
	"redo":      {"redo [n]", repeated(event.RedoRequested{})},
	"history":   {"history", noArgs(event.HistoryRequested{})},
	"list": {"list [prefab]", func(a []string) ([]any, error) {
		switch len(a) {
		case 0:
			return []any{event.ListRequested{}}, nil
		case 1:
			return []any{event.ListRequested{Prefab: a[0]}}, nil
		}
		return nil, ErrBadArguments
	}},
	"scenes":    {"scenes", noArgs(event.ScenesRequested{})},
	"run": {"run <script.lua>", func(a []string) ([]any, error) {
		if len(a) != 1 {
			return nil, ErrBadArguments
		}
		return []any{event.ScriptRequested{Path: a[0]}}, nil
	}},
	"save": {"save <name>", func(a []string) ([]any, error) {
		if len(a) != 1 {
			return nil, ErrBadArguments
		}
		return []any{event.SaveRequested{Name: a[0]}}, nil
	}},
	"load": {"load <name>", func(a []string) ([]any, error) {
		if len(a) != 1 {
			return nil, ErrBadArguments
		}
		return []any{event.LoadRequested{Name: a[0]}}, nil
	}},
	"quit": {"quit", noArgs(event.QuitRequested{})},
}

// ParseCommand parses one console line. A blank line yields no events.
func ParseCommand(line string) ([]any, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	verb := strings.ToLower(fields[0])
	cmd, ok := commands[verb]
	if !ok {
		return nil, fmt.Errorf("%q: %w", verb, ErrUnknownCommand)
	}
	evs, err := cmd.parse(fields[1:])
	if err != nil {
		return nil, fmt.Errorf("usage: %s: %w", cmd.usage, err)
	}
	return evs, nil
}

// Usage lists every command's usage line, sorted.
func Usage() []string {
	out := make([]string, 0, len(commands))
	for _, c := range commands {
		out = append(out, c.usage)
	}
	sort.Strings(out)
	return out
}

func noArgs(ev any) parseFunc {
	return func(a []string) ([]any, error) {
		if len(a) != 0 {
			return nil, ErrBadArguments
		}
		return []any{ev}, nil
	}
}

// maxRepeat bounds the count accepted by undo and redo.
const maxRepeat = 1000

// repeated posts ev n times, n defaulting to 1.
func repeated(ev any) parseFunc {
	return func(a []string) ([]any, error) {
		n := 1
		switch len(a) {
		case 0:
		case 1:
			v, err := strconv.Atoi(a[0])
			if err != nil || v < 1 {
				return nil, ErrBadArguments
			}
			if v > maxRepeat {
				return nil, fmt.Errorf("count %d exceeds %d: %w", v, maxRepeat, ErrBadArguments)
			}
			n = v
		default:
			return nil, ErrBadArguments
		}
		out := make([]any, n)
		for i := range out {
			out[i] = ev
		}
		return out, nil
	}
}

func parseFloats(a []string) ([]float64, error) {
	out := make([]float64, len(a))
	for i, s := range a {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number: %w", s, ErrBadArguments)
		}
		out[i] = v
	}
	return out, nil
}

func parseVec(a []string) (component.Vec3, error) {
	f, err := parseFloats(a)
	if err != nil {
		return component.Vec3{}, err
	}
	return component.Vec3{X: f[0], Y: f[1], Z: f[2]}, nil
}

func parseIDs(a []string) ([]ecs.EntityID, error) {
	ids := make([]ecs.EntityID, 0, len(a))
	for _, s := range a {
		id, err := ecs.ParseEntityID(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func errOr(err error) error {
	if err != nil {
		return err
	}
	return ErrBadArguments
}
