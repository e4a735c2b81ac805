package host

import "strings"

const redacted = "[REDACTED]"

type argument struct {
	text   string
	secret bool
}

// Arguments is an ordered argument string builder. Values are quoted so that
// the rendered string splits back into the same tokens under shell-like
// lexing, which is how ExecRunner turns it into argv.
type Arguments struct {
	items []argument
}

// NewArguments returns an empty builder.
func NewArguments() *Arguments {
	return &Arguments{}
}

// Append adds text verbatim.
func (a *Arguments) Append(text string) *Arguments {
	a.items = append(a.items, argument{text: text})
	return a
}

// AppendQuoted adds value wrapped in double quotes.
func (a *Arguments) AppendQuoted(value string) *Arguments {
	a.items = append(a.items, argument{text: quote(value)})
	return a
}

// AppendValue adds value, quoting it only when lexing would otherwise split
// or alter it.
func (a *Arguments) AppendValue(value string) *Arguments {
	a.items = append(a.items, argument{text: quoteIfNeeded(value)})
	return a
}

// AppendSecret adds value like AppendValue but hides it from RenderSafe.
func (a *Arguments) AppendSecret(value string) *Arguments {
	a.items = append(a.items, argument{text: quoteIfNeeded(value), secret: true})
	return a
}

// AppendSwitch adds a switch followed by its value as a separate token.
func (a *Arguments) AppendSwitch(name, value string) *Arguments {
	return a.Append(name).AppendValue(value)
}

// AppendSwitchSecret adds a switch followed by a secret value.
func (a *Arguments) AppendSwitchSecret(name, value string) *Arguments {
	return a.Append(name).AppendSecret(value)
}

// Len returns the number of appended items.
func (a *Arguments) Len() int {
	if a == nil {
		return 0
	}
	return len(a.items)
}

// Render returns the argument string passed to the process.
func (a *Arguments) Render() string {
	return a.render(false)
}

// RenderSafe returns the argument string with secrets redacted, for logs.
func (a *Arguments) RenderSafe() string {
	return a.render(true)
}

func (a *Arguments) String() string {
	return a.RenderSafe()
}

func (a *Arguments) render(safe bool) string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, len(a.items))
	for _, item := range a.items {
		if safe && item.secret {
			parts = append(parts, redacted)
			continue
		}
		parts = append(parts, item.text)
	}
	return strings.Join(parts, " ")
}

func quote(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte('"')
	for _, r := range value {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

func quoteIfNeeded(value string) string {
	if value == "" || strings.ContainsAny(value, " \t\r\n\"'\\#") {
		return quote(value)
	}
	return value
}
