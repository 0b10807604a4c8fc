package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/todo/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeToggle Type = "toggle"
	TypeRemove Type = "rm"
	TypeClear  Type = "clear"
	TypeFilter Type = "filter"
	TypeTheme  Type = "theme"
	TypeMove   Type = "move"
)

var aliases = map[string]Type{
	"done":   TypeToggle,
	"delete": TypeRemove,
	"del":    TypeRemove,
	"show":   TypeFilter,
	"mv":     TypeMove,
}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Text string
}

// PositionArgs addresses a row by its 1-based position in the visible list.
type PositionArgs struct {
	Position int
}

type FilterArgs struct {
	Filter model.Filter
}

// ThemeArgs with an empty Theme means toggle.
type ThemeArgs struct {
	Theme model.Theme
}

type MoveArgs struct {
	From int
	To   int
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Toggle *PositionArgs
	Remove *PositionArgs
	Filter *FilterArgs
	Theme  *ThemeArgs
	Move   *MoveArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	typ := Type(head)
	if alias, ok := aliases[head]; ok {
		typ = alias
	}

	switch typ {
	case TypeAdd:
		return parseAdd(input, strings.TrimPrefix(raw, parts[0]))
	case TypeToggle:
		pos, err := parsePosition(typ, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeToggle, Raw: input, Toggle: &pos}, nil
	case TypeRemove:
		pos, err := parsePosition(typ, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeRemove, Raw: input, Remove: &pos}, nil
	case TypeClear:
		return Command{Type: TypeClear, Raw: input}, nil
	case TypeFilter:
		return parseFilter(input, args)
	case TypeTheme:
		return parseTheme(input, args)
	case TypeMove:
		return parseMove(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd keeps the text after the verb as typed, trimming only its ends.
func parseAdd(raw, rest string) (Command, error) {
	text := strings.TrimSpace(rest)
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires text"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: text}}, nil
}

func parsePosition(typ Type, args []string) (PositionArgs, error) {
	if len(args) != 1 {
		return PositionArgs{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires one position", typ)}
	}
	n, err := parseIndex(args[0])
	if err != nil {
		return PositionArgs{}, err
	}
	return PositionArgs{Position: n}, nil
}

func parseIndex(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid position: %s", raw)}
	}
	return n, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires all, active, or completed"}
	}
	f, err := model.ParseFilter(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Filter: f}}, nil
}

func parseTheme(raw string, args []string) (Command, error) {
	switch len(args) {
	case 0:
		return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{}}, nil
	case 1:
		th, err := model.ParseTheme(args[0])
		if err != nil {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
		}
		return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Theme: th}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "theme takes at most one argument"}
	}
}

func parseMove(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "move requires from and to positions"}
	}
	from, err := parseIndex(args[0])
	if err != nil {
		return Command{}, err
	}
	to, err := parseIndex(args[1])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeMove, Raw: raw, Move: &MoveArgs{From: from, To: to}}, nil
}
