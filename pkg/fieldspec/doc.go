// Package fieldspec interprets the compact field specification language used to
// describe a single form field on one line, for example:
//
//	text label('Name') default('English') required
//	select('draft', 'published') description("Publication state")
//	checkbox default('true')
//
// A specification is a whitespace separated list of tokens. Each token is an
// identifier made of ASCII letters, digits, "_" or "-", optionally followed by
// a parenthesised argument list:
//
//	spec  = { token | separator }
//	token = ident [ "(" span ")" ]
//	ident = 1*( ALPHA | DIGIT | "_" | "-" )
//	span  = *( any character except ")" and line feed )
//
// The argument list only attaches to an identifier when "(" follows it
// immediately and a ")" appears before the end of the line. Everything that is
// not part of a token is a separator, so malformed input never fails: it simply
// produces fewer tokens.
//
// The first token naming a control type (text, textarea, select, checkbox)
// selects the component. Every other lookup, including the component's own
// arguments, reads the last occurrence of a name. Modifier tokens (label,
// description, required, not-required, default) adjust the resulting
// FieldMetadata. Semantic problems such as a select without options are
// reported as Diagnostics rather than errors.
package fieldspec
