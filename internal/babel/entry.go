package babel

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Entry is a preset or plugin reference as understood by babel: a bare name
// ("react"), a name paired with options (["env", {"loose": true}]), or a
// triple whose last element names the instance so the same plugin can be
// listed more than once.
type Entry struct {
	Name    string
	Options map[string]any
	Alias   string
}

// Named returns an entry without options.
func Named(name string) Entry {
	return Entry{Name: name}
}

// WithOptions returns an entry carrying options.
func WithOptions(name string, options map[string]any) Entry {
	return Entry{Name: name, Options: options}
}

func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Alias != "" {
		options := e.Options
		if options == nil {
			options = map[string]any{}
		}
		return json.Marshal([]any{e.Name, options, e.Alias})
	}
	if e.Options == nil {
		return json.Marshal(e.Name)
	}
	return json.Marshal([]any{e.Name, e.Options})
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*e = Entry{Name: name}
		return nil
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("entry must be a name or a [name, options, alias] list: %w", err)
	}

	if len(parts) == 0 || len(parts) > 3 {
		return fmt.Errorf("entry list must have one to three elements, got %d", len(parts))
	}

	if err := json.Unmarshal(parts[0], &name); err != nil {
		return fmt.Errorf("entry name must be a string: %w", err)
	}
	if name == "" {
		return errors.New("entry name must not be empty")
	}

	var options map[string]any
	if len(parts) >= 2 {
		if err := json.Unmarshal(parts[1], &options); err != nil {
			return fmt.Errorf("options for %q must be an object: %w", name, err)
		}
	}

	var alias string
	if len(parts) == 3 {
		if err := json.Unmarshal(parts[2], &alias); err != nil {
			return fmt.Errorf("alias for %q must be a string: %w", name, err)
		}
	}

	*e = Entry{Name: name, Options: options, Alias: alias}
	return nil
}
