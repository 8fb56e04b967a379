package persist

import (
	"strings"

	"envfetch/internal/model"
)

// Line is one line of an rc-file. Key is set only for export assignments.
type Line struct {
	Text  string
	Key   string
	Value string
}

// Document is the line model of an rc-file. Edits are made on the lines and
// the file text is produced with String.
type Document struct {
	lines []Line
}

// ParseDocument splits text into lines and recognises export assignments.
func ParseDocument(text string) *Document {
	d := &Document{}
	if text == "" {
		return d
	}
	for _, raw := range strings.Split(text, "\n") {
		d.lines = append(d.lines, parseLine(strings.TrimSuffix(raw, "\r")))
	}
	return d
}

func parseLine(raw string) Line {
	line := Line{Text: raw}
	body, ok := assignmentBody(raw)
	if !ok {
		return line
	}
	if key, value, found := strings.Cut(body, "="); found && key != "" {
		line.Key = key
		line.Value = unquoteValue(value)
	}
	return line
}

// assignmentBody returns what follows `export ` on an export line. The value
// is unquoted, double quoted or single quoted.
func assignmentBody(text string) (string, bool) {
	after, ok := strings.CutPrefix(strings.TrimLeft(text, " \t"), "export")
	if !ok || after == "" || (after[0] != ' ' && after[0] != '\t') {
		return "", false
	}
	return strings.TrimLeft(after, " \t"), true
}

// assigns matches the literal `export KEY=` prefix, so keys holding tabs or
// '=' are still found.
func (l Line) assigns(key string) (string, bool) {
	body, ok := assignmentBody(l.Text)
	if !ok || !strings.HasPrefix(body, key+"=") {
		return "", false
	}
	return unquoteValue(body[len(key)+1:]), true
}

// Lines returns a copy of the document lines.
func (d *Document) Lines() []Line {
	out := make([]Line, len(d.lines))
	copy(out, d.lines)
	return out
}

// Remove deletes every assignment of key and reports how many were removed.
func (d *Document) Remove(key string) int {
	kept := d.lines[:0]
	removed := 0
	for _, line := range d.lines {
		if _, ok := line.assigns(key); ok {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	d.lines = kept
	return removed
}

// Assign replaces all assignments of key with a single one at the end.
func (d *Document) Assign(key, value string) {
	d.Remove(key)
	d.lines = append(d.lines, Line{
		Text:  formatAssignment(key, value),
		Key:   key,
		Value: value,
	})
}

// Lookup returns the value of the last assignment of key.
func (d *Document) Lookup(key string) (string, bool) {
	for i := len(d.lines) - 1; i >= 0; i-- {
		if value, ok := d.lines[i].assigns(key); ok {
			return value, true
		}
	}
	return "", false
}

// Variables returns every assigned key once, in order of first appearance,
// with the value of its last assignment.
func (d *Document) Variables() []model.Variable {
	seen := make(map[string]int)
	var out []model.Variable
	for _, line := range d.lines {
		if line.Key == "" {
			continue
		}
		if idx, ok := seen[line.Key]; ok {
			out[idx].Value = line.Value
			continue
		}
		seen[line.Key] = len(out)
		out = append(out, model.Variable{Key: line.Key, Value: line.Value})
	}
	return out
}

// String renders the document with blank lines dropped.
func (d *Document) String() string {
	var b strings.Builder
	for _, line := range d.lines {
		if strings.TrimSpace(line.Text) == "" {
			continue
		}
		b.WriteString(line.Text)
		b.WriteString("\n")
	}
	return b.String()
}

var valueEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`")

func formatAssignment(key, value string) string {
	return "export " + key + `="` + valueEscaper.Replace(value) + `"`
}

func unquoteValue(v string) string {
	if len(v) >= 2 && v[0] == '\'' && v[len(v)-1] == '\'' {
		return v[1 : len(v)-1]
	}
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return unescapeDoubleQuoted(v[1 : len(v)-1])
	}
	return v
}

// unescapeDoubleQuoted reverses the escapes the shell honours inside double
// quotes. Other backslashes are kept literally.
func unescapeDoubleQuoted(v string) string {
	if !strings.Contains(v, `\`) {
		return v
	}
	var b strings.Builder
	for i := 0; i < len(v); i++ {
		if v[i] == '\\' && i+1 < len(v) && strings.IndexByte("\\\"$`", v[i+1]) >= 0 {
			b.WriteByte(v[i+1])
			i++
			continue
		}
		b.WriteByte(v[i])
	}
	return b.String()
}
