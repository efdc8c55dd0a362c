package markdown

import "strings"

// Attr is one attribute of a fenced code block info string. Bare words such as
// showLineNumbers are flags with an empty value.
type Attr struct {
	Key   string
	Value string
	Flag  bool
}

// Attributes keeps info string attributes in source order.
type Attributes []Attr

// Get returns the value of the first attribute named key.
func (a Attributes) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Has reports whether key is present, either as a flag or with a value.
func (a Attributes) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// ParseInfo splits a fenced code block info string into its language and
// attributes. The first token is the language unless it is itself an attribute.
//
//	go file=<rootDir>/cmd/main.go#L3-L5 title="main entry" showLineNumbers
func ParseInfo(info string) (string, Attributes) {
	tokens := tokenize(info)
	if len(tokens) == 0 {
		return "", nil
	}

	lang := ""
	if !strings.Contains(tokens[0], "=") {
		lang = tokens[0]
		tokens = tokens[1:]
	}

	attrs := make(Attributes, 0, len(tokens))
	for _, tok := range tokens {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			attrs = append(attrs, Attr{Key: tok, Flag: true})
			continue
		}
		attrs = append(attrs, Attr{Key: key, Value: unquote(value)})
	}
	return lang, attrs
}

// tokenize splits on unquoted whitespace, keeping quotes in place so values
// can be unquoted after the key is split off.
func tokenize(s string) []string {
	var (
		tokens []string
		cur    strings.Builder
		quote  rune
	)
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case quote != 0:
			cur.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
			cur.WriteRune(r)
		case r == ' ' || r == '\t':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}
