package models

import (
	"encoding/json"
	"fmt"
)

// InclusionEntry names a repository that may appear on the page.
type InclusionEntry struct {
	Name         string   `json:"name"`
	Technologies []string `json:"technologies,omitempty"`
}

// UnmarshalJSON accepts either a bare repository name or an object.
func (e *InclusionEntry) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*e = InclusionEntry{Name: name}
		return nil
	}

	type entry InclusionEntry
	var obj entry
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("inclusion entry must be a name or an object: %w", err)
	}
	*e = InclusionEntry(obj)
	return nil
}

// InclusionList is the projects document on disk. An empty list means
// every repository may be shown.
type InclusionList struct {
	Projects []InclusionEntry `json:"projects"`
}

// Names returns the repository names in document order.
func (l InclusionList) Names() []string {
	names := make([]string, 0, len(l.Projects))
	for _, p := range l.Projects {
		names = append(names, p.Name)
	}
	return names
}
