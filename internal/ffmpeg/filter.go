package ffmpeg

import (
	"fmt"
	"strings"
)

var (
	// drawtext expands %{...} sequences and treats backslash as an escape.
	expansionEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`)
	// key=value:key=value option lists inside a single filter.
	optionEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `:`, `\:`)
	// filter chains and labels in a filtergraph description.
	graphEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `[`, `\[`, `]`, `\]`, `,`, `\,`, `;`, `\;`)
)

// EscapeValue escapes s for use as a filter option value inside a -vf or
// -filter_complex argument. Both the option level and the filtergraph level
// are applied.
func EscapeValue(s string) string {
	return graphEscaper.Replace(optionEscaper.Replace(s))
}

// EscapeText escapes s for the text option of drawtext. On top of
// EscapeValue it protects backslashes and percent signs from text expansion.
func EscapeText(s string) string {
	return EscapeValue(expansionEscaper.Replace(s))
}

type option struct {
	key   string
	value string
}

// Filter is one filter with its options, rendered as name=k=v:k=v.
type Filter struct {
	name string
	opts []option
}

// NewFilter starts a filter by name.
func NewFilter(name string) *Filter {
	return &Filter{name: name}
}

// Set adds an option. The value is escaped.
func (f *Filter) Set(key, value string) *Filter {
	f.opts = append(f.opts, option{key: key, value: EscapeValue(value)})
	return f
}

// Setf adds an option from a format string.
func (f *Filter) Setf(key, format string, args ...interface{}) *Filter {
	return f.Set(key, fmt.Sprintf(format, args...))
}

// Text adds a drawtext-style text option.
func (f *Filter) Text(key, value string) *Filter {
	f.opts = append(f.opts, option{key: key, value: EscapeText(value)})
	return f
}

func (f *Filter) String() string {
	if len(f.opts) == 0 {
		return f.name
	}
	var sb strings.Builder
	sb.WriteString(f.name)
	for i, o := range f.opts {
		if i == 0 {
			sb.WriteByte('=')
		} else {
			sb.WriteByte(':')
		}
		sb.WriteString(o.key)
		sb.WriteByte('=')
		sb.WriteString(o.value)
	}
	return sb.String()
}

// Graph is a -filter_complex description made of labelled chains.
type Graph struct {
	chains []string
}

// Chain appends a single-filter chain reading the inputs and writing the
// outputs. Labels are given without brackets.
func (g *Graph) Chain(inputs []string, f *Filter, outputs []string) *Graph {
	var sb strings.Builder
	for _, in := range inputs {
		sb.WriteString("[" + in + "]")
	}
	sb.WriteString(f.String())
	for _, out := range outputs {
		sb.WriteString("[" + out + "]")
	}
	g.chains = append(g.chains, sb.String())
	return g
}

func (g *Graph) String() string {
	return strings.Join(g.chains, ";")
}
