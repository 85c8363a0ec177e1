package fieldspec

import (
	"fmt"
	"strings"
)

// Diagnostic is a non-fatal finding about a specification.
type Diagnostic struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Title == "" {
		return d.Message
	}
	return fmt.Sprintf("%s: %s", d.Title, d.Message)
}

// Diagnostics collects findings for one parser. Entries are only appended.
type Diagnostics struct {
	items []Diagnostic
}

// Add appends a finding.
func (d *Diagnostics) Add(title, message string) {
	d.items = append(d.items, Diagnostic{Title: title, Message: message})
}

// List returns a copy of the findings in the order they were added.
func (d *Diagnostics) List() []Diagnostic {
	if d == nil || len(d.items) == 0 {
		return nil
	}
	out := make([]Diagnostic, len(d.items))
	copy(out, d.items)
	return out
}

func (d *Diagnostics) Len() int {
	if d == nil {
		return 0
	}
	return len(d.items)
}

func (d *Diagnostics) Empty() bool {
	return d.Len() == 0
}

func (d *Diagnostics) String() string {
	if d.Empty() {
		return ""
	}
	lines := make([]string, 0, len(d.items))
	for _, item := range d.items {
		lines = append(lines, item.String())
	}
	return strings.Join(lines, "\n")
}
