// Package command models service-manager command lines as ordered argument
// tokens, so the field order of a command is fixed when it is built and
// quoting is applied only when it is rendered.
package command

import "strings"

// Arg is a single token of a command line.
type Arg struct {
	// Prefix is emitted verbatim before the value, outside any quotes
	// (for example "-Djava.class.path=").
	Prefix string
	Value  string
	// Quoted wraps the value in double quotes when rendered.
	Quoted bool
}

// Word returns a bare token.
func Word(s string) Arg {
	return Arg{Value: s}
}

// Quoted returns a token rendered inside double quotes.
func Quoted(s string) Arg {
	return Arg{Value: s, Quoted: true}
}

// Attached returns a token whose quoted value follows prefix without a space.
func Attached(prefix, value string) Arg {
	return Arg{Prefix: prefix, Value: value, Quoted: true}
}

// String renders the token as it appears on a command line.
func (a Arg) String() string {
	if a.Quoted {
		return a.Prefix + `"` + a.Value + `"`
	}
	return a.Prefix + a.Value
}

// Raw returns the token without quoting, as it is seen by the spawned
// process once the command line has been split.
func (a Arg) Raw() string {
	return a.Prefix + a.Value
}

// Line is one command: the program followed by its arguments.
type Line []Arg

// NewLine builds a line from bare words.
func NewLine(words ...string) Line {
	l := make(Line, 0, len(words))
	for _, w := range words {
		l = append(l, Word(w))
	}
	return l
}

// Name returns the program token of the line, unquoted.
func (l Line) Name() string {
	if len(l) == 0 {
		return ""
	}
	return l[0].Raw()
}

// Argv returns the unquoted tokens of the line.
func (l Line) Argv() []string {
	argv := make([]string, len(l))
	for i, a := range l {
		argv[i] = a.Raw()
	}
	return argv
}

// String renders the line with quoting applied.
func (l Line) String() string {
	parts := make([]string, len(l))
	for i, a := range l {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}

// Script is an ordered sequence of command lines executed one after another.
type Script struct {
	Lines []Line
}

// NewScript returns a script holding lines in order.
func NewScript(lines ...Line) *Script {
	return &Script{Lines: lines}
}

// Len returns the number of lines in the script.
func (s *Script) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Lines)
}

// Strings returns every line rendered.
func (s *Script) Strings() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.Lines))
	for i, l := range s.Lines {
		out[i] = l.String()
	}
	return out
}

// String renders the script with one line per command.
func (s *Script) String() string {
	return strings.Join(s.Strings(), "\n")
}
