package wrapgen

import "strings"

// GuardPlaceholder is replaced by the configured include-guard identifier in
// include-guard forms.
const GuardPlaceholder = "{guard}"

// Default marker tokens recognized in templates.
const (
	DefaultIncludesMarker = "[[ includes ]]"
	DefaultConstantMarker = "[[ maximum_data_len ]]"
	DefaultAPIMarker      = "[[ c_api ]]"
)

// Patterns describes the shape of the generated header. The header is owned
// by an external generator, so every literal it relies on is configurable.
type Patterns struct {
	IncludeGuardForms []string // forms containing GuardPlaceholder
	LinkageGuardForms []string // matched verbatim
	IncludePrefix     string
	DirectivePrefix   string
	DefineKeyword     string
}

// DefaultPatterns returns the forms emitted by cbindgen for a C header.
func DefaultPatterns() Patterns {
	return Patterns{
		IncludeGuardForms: []string{
			"#ifndef " + GuardPlaceholder,
			"#define " + GuardPlaceholder,
			"#endif /* " + GuardPlaceholder + " */",
		},
		LinkageGuardForms: []string{
			"#ifdef __cplusplus",
			"#endif // __cplusplus",
		},
		IncludePrefix:   "#include",
		DirectivePrefix: "#",
		DefineKeyword:   "#define",
	}
}

// GuardTokens is the set of exact trimmed lines stripped by FilterLines.
type GuardTokens map[string]struct{}

// GuardTokens builds the exact-match token set for the given guard identifier.
func (p Patterns) GuardTokens(guard string) GuardTokens {
	tokens := make(GuardTokens, len(p.IncludeGuardForms)+len(p.LinkageGuardForms))
	for _, form := range p.IncludeGuardForms {
		tokens[strings.TrimSpace(strings.ReplaceAll(form, GuardPlaceholder, guard))] = struct{}{}
	}
	for _, form := range p.LinkageGuardForms {
		tokens[strings.TrimSpace(form)] = struct{}{}
	}
	return tokens
}

// Contains reports whether the trimmed line is a guard token.
func (g GuardTokens) Contains(line string) bool {
	_, ok := g[strings.TrimSpace(line)]
	return ok
}

// Markers holds the three template marker tokens.
type Markers struct {
	Includes string
	Constant string
	API      string
}

// DefaultMarkers returns the marker vocabulary used by the bundled templates.
func DefaultMarkers() Markers {
	return Markers{
		Includes: DefaultIncludesMarker,
		Constant: DefaultConstantMarker,
		API:      DefaultAPIMarker,
	}
}

// Ordered returns the markers in bucket order: includes, constant, api.
func (m Markers) Ordered() []string {
	return []string{m.Includes, m.Constant, m.API}
}
