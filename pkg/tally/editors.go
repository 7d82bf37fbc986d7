package tally

// EditorNames maps raw editor ids to the names shown in reports.
type EditorNames map[string]string

// DefaultEditorNames returns the built-in id table.
func DefaultEditorNames() EditorNames {
	return EditorNames{
		"conpubs": "Mark Olson",
		"cp-edie": "Edie Stern",
	}
}

// Name returns the display name for id; unknown ids pass through unchanged.
func (n EditorNames) Name(id string) string {
	if name, ok := n[id]; ok {
		return name
	}
	return id
}
