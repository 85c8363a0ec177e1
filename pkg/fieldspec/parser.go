package fieldspec

import "sync"

// Parser interprets one specification. The token views are built by New and
// never change; metadata is derived once, on first use, and the diagnostics
// produced while deriving it stay attached to the parser.
type Parser struct {
	source string
	tokens Tokens
	index  TokenMap

	once        sync.Once
	metadata    FieldMetadata
	diagnostics Diagnostics
}

// New tokenizes spec and builds both token views.
func New(spec string) *Parser {
	tokens := Tokens(Scan(spec))
	return &Parser{
		source: spec,
		tokens: tokens,
		index:  NewTokenMap(tokens),
	}
}

// Parse is a shortcut for New(spec).Result().
func Parse(spec string) (FieldMetadata, []Diagnostic) {
	return New(spec).Result()
}

// Source returns the specification the parser was built from.
func (p *Parser) Source() string {
	return p.source
}

// Tokens returns the ordered view.
func (p *Parser) Tokens() Tokens {
	out := make(Tokens, len(p.tokens))
	copy(out, p.tokens)
	return out
}

// TokenMap returns the last-write-wins view.
func (p *Parser) TokenMap() TokenMap {
	return p.index
}

// Metadata returns the field description.
func (p *Parser) Metadata() FieldMetadata {
	p.derive()
	return p.metadata
}

// Diagnostics returns the findings gathered while deriving the metadata.
func (p *Parser) Diagnostics() []Diagnostic {
	p.derive()
	return p.diagnostics.List()
}

// Result returns metadata and diagnostics together.
func (p *Parser) Result() (FieldMetadata, []Diagnostic) {
	p.derive()
	return p.metadata, p.diagnostics.List()
}

func (p *Parser) derive() {
	p.once.Do(func() {
		component, args := ResolveComponent(p.tokens, p.index)
		p.metadata = buildMetadata(p.index, component, args, &p.diagnostics)
	})
}
