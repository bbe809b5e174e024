package config

import (
	"fmt"
	"sort"
	"strings"

	statepkg "github.com/kk-code-lab/idex/internal/state"
)

// ActionValue decodes a configured action. Unit variants are bare strings
// ("expand"); the others are single-key tables ({ move = 1 },
// { sh = { command = "...", args = [...] } }, { input = { event = ... } }).
type ActionValue struct {
	Action statepkg.Action
}

// UnmarshalTOML implements toml.Unmarshaler.
func (v *ActionValue) UnmarshalTOML(data any) error {
	action, err := decodeAction(data)
	if err != nil {
		return err
	}
	v.Action = action
	return nil
}

func decodeAction(data any) (statepkg.Action, error) {
	switch d := data.(type) {
	case string:
		return decodeUnitAction(d)
	case map[string]any:
		if len(d) != 1 {
			return nil, fmt.Errorf("action table must have exactly one key, got %s", tableKeys(d))
		}
		for tag, body := range d {
			return decodeTaggedAction(strings.ToLower(tag), body)
		}
	}
	return nil, fmt.Errorf("action must be a string or a table, got %T", data)
}

func decodeUnitAction(name string) (statepkg.Action, error) {
	switch strings.ToLower(name) {
	case "expand":
		return statepkg.ExpandAction{}, nil
	case "collapse":
		return statepkg.CollapseAction{}, nil
	case "toggle":
		return statepkg.ToggleAction{}, nil
	case "quit":
		return statepkg.QuitAction{}, nil
	case "yank":
		return statepkg.YankAction{}, nil
	case "cd":
		return statepkg.ChangeDirAction{}, nil
	case "suspend":
		return statepkg.SuspendAction{}, nil
	case "move", "scroll", "sh", "shell", "input", "confirmation":
		return nil, fmt.Errorf("action %q needs a value", name)
	}
	return nil, fmt.Errorf("unknown action %q", name)
}

func decodeTaggedAction(tag string, body any) (statepkg.Action, error) {
	switch tag {
	case "move", "scroll":
		delta, ok := body.(int64)
		if !ok {
			return nil, fmt.Errorf("%s expects an integer, got %T", tag, body)
		}
		if tag == "move" {
			return statepkg.MoveAction{Delta: int(delta)}, nil
		}
		return statepkg.ScrollAction{Delta: int(delta)}, nil

	case "sh", "shell":
		return decodeShellAction(body)

	case "input", "confirmation":
		table, ok := body.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s expects a table with an event, got %T", tag, body)
		}
		event, ok := table["event"]
		if !ok || len(table) != 1 {
			return nil, fmt.Errorf("%s expects exactly one key \"event\", got %s", tag, tableKeys(table))
		}
		inner, err := decodeAction(event)
		if err != nil {
			return nil, fmt.Errorf("%s.event: %w", tag, err)
		}
		if tag == "input" {
			return statepkg.InputAction{Inner: inner}, nil
		}
		return statepkg.ConfirmationAction{Inner: inner}, nil

	case "expand", "collapse", "toggle", "quit", "yank", "cd", "suspend":
		return nil, fmt.Errorf("action %q takes no value; write it as a plain string", tag)
	}
	return nil, fmt.Errorf("unknown action %q", tag)
}

func decodeShellAction(body any) (statepkg.Action, error) {
	table, ok := body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("sh expects a table, got %T", body)
	}

	var action statepkg.ShellAction
	for key, value := range table {
		switch key {
		case "command":
			command, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("sh.command must be a string, got %T", value)
			}
			action.Command = command
		case "args":
			list, ok := value.([]any)
			if !ok {
				return nil, fmt.Errorf("sh.args must be an array, got %T", value)
			}
			for i, item := range list {
				arg, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("sh.args[%d] must be a string, got %T", i, item)
				}
				action.Args = append(action.Args, arg)
			}
		default:
			return nil, fmt.Errorf("unknown sh key %q", key)
		}
	}
	if strings.TrimSpace(action.Command) == "" {
		return nil, fmt.Errorf("sh.command is required")
	}
	return action, nil
}

func tableKeys(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "[" + strings.Join(keys, ", ") + "]"
}
