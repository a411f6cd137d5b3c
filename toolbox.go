package personachat

// A Toolbox groups shortcuts to hard-to-reach pages, e.g. an OAuth callback the provider refused,
// offered on the Menu outside of Production.
type Toolbox []Tool

// NewToolbox keeps the Tools with at least one action that can be followed.
// In Production, or if no such Tool remains, NewToolbox returns an empty Toolbox.
func NewToolbox(env Environment, tools ...Tool) Toolbox {
	if env.IsProduction() {
		return make(Toolbox, 0)
	}

	return Toolbox(tools).Filter()
}

// Filter copies the Toolbox keeping only followable actions,
// and dropping Tools left without any.
func (t Toolbox) Filter() Toolbox {
	kept := make(Toolbox, 0, len(t))
	for _, tool := range t {
		actions := make([]ToolAction, 0, len(tool.Actions))
		for _, a := range tool.Actions {
			if a.Followable() {
				actions = append(actions, a)
			}
		}

		if len(actions) > 0 {
			kept = append(kept, Tool{Actions: actions, Title: tool.Title})
		}
	}

	return kept
}

// A Tool is a titled set of actions.
type Tool struct {
	Actions []ToolAction `json:"actions"`
	Title   string       `json:"title"`
}

// Render reports whether the Tool has anything to show.
func (t Tool) Render() bool {
	for _, a := range t.Actions {
		if a.Followable() {
			return true
		}
	}

	return false
}

// A ToolAction is a named link to a path on this app.
type ToolAction struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Followable reports whether the action has a name to show and a path to go to.
func (a ToolAction) Followable() bool {
	return a.Name != "" && len(a.URL) > 0 && a.URL[0] == '/'
}
