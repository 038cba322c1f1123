package common

import "strings"

// Fragment is one named piece of generated source.
type Fragment struct {
	Name string
	Text string
}

// Builder composes generated source from ordered fragments. Fragments are
// kept separately so renderers can be tested piece by piece.
type Builder struct {
	fragments []Fragment
}

// Add appends a fragment. Empty fragments are kept so the fragment list
// stays stable for a given renderer.
func (b *Builder) Add(name, text string) {
	b.fragments = append(b.fragments, Fragment{Name: name, Text: text})
}

// Fragments returns a copy of the fragments in insertion order.
func (b *Builder) Fragments() []Fragment {
	out := make([]Fragment, len(b.fragments))
	copy(out, b.fragments)
	return out
}

// Fragment returns the text of the first fragment with the given name.
func (b *Builder) Fragment(name string) (string, bool) {
	for _, f := range b.fragments {
		if f.Name == name {
			return f.Text, true
		}
	}
	return "", false
}

// String joins all non-empty fragments separated by blank lines.
func (b *Builder) String() string {
	var sb strings.Builder
	for _, f := range b.fragments {
		text := strings.TrimSpace(f.Text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(text)
	}
	sb.WriteByte('\n')
	return sb.String()
}
