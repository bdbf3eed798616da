package config

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// HelpSection groups actions under a title for the help screen and the
// keybinds command.
type HelpSection struct {
	Title   string
	Actions []string
}

// HelpSections lists every action by section.
var HelpSections = []HelpSection{
	{Title: "Jump", Actions: []string{"jump", "jump_exit"}},
	{Title: "Navigation", Actions: []string{
		"cursor_up", "cursor_down", "cursor_left", "cursor_right",
		"line_start", "line_end", "page_up", "page_down", "doc_start", "doc_end",
	}},
	{Title: "Editing", Actions: []string{"newline", "backspace", "delete", "insert_tab", "toggle_selection"}},
	{Title: "System", Actions: []string{"save", "quit", "toggle_help"}},
}

// GetKeybindings returns all keybinding sections for the help menu
// If registry is provided, it generates bindings dynamically from user config
// If registry is nil, it falls back to the defaults
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(DefaultConfig())
	}

	sections := make([]KeybindingSection, 0, len(HelpSections)+1)
	for _, hs := range HelpSections {
		section := KeybindingSection{Title: hs.Title}
		for _, action := range hs.Actions {
			addBinding(&section, registry, action, ActionDescriptions[action])
		}
		if len(section.Bindings) > 0 {
			sections = append(sections, section)
		}
	}

	return append(sections, getStaticHelpSections()...)
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: description,
		})
	}
}

// getStaticHelpSections returns help sections that don't need dynamic binding info
func getStaticHelpSections() []KeybindingSection {
	return []KeybindingSection{
		{
			Title: "While labels are shown",
			Bindings: []Keybinding{
				{"a-z a-z", "Type a label to jump to it"},
				{"Any other key", "Cancel without moving"},
			},
		},
	}
}
