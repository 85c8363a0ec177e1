package fieldspec

// Tokens is the ordered view of a specification. It answers first-match
// questions, such as which control type appears first.
type Tokens []Token

// First returns the first token accepted by match.
func (t Tokens) First(match func(Token) bool) (Token, bool) {
	for _, tok := range t {
		if match(tok) {
			return tok, true
		}
	}
	return Token{}, false
}

// Names lists token names in source order, duplicates included.
func (t Tokens) Names() []string {
	names := make([]string, 0, len(t))
	for _, tok := range t {
		names = append(names, tok.Name)
	}
	return names
}

// TokenMap is the name keyed view of a specification. Later tokens overwrite
// earlier ones with the same name.
type TokenMap struct {
	args map[string]Args
}

// NewTokenMap folds tokens left to right into a TokenMap.
func NewTokenMap(tokens Tokens) TokenMap {
	args := make(map[string]Args, len(tokens))
	for _, tok := range tokens {
		args[tok.Name] = tok.Args
	}
	return TokenMap{args: args}
}

// Has reports whether any token used name.
func (m TokenMap) Has(name string) bool {
	_, ok := m.args[name]
	return ok
}

// Args returns the arguments of the last token called name.
func (m TokenMap) Args(name string) (Args, bool) {
	args, ok := m.args[name]
	return args, ok
}

// Len returns the number of distinct names.
func (m TokenMap) Len() int {
	return len(m.args)
}
