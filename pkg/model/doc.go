// Package model defines the form model consumed by renderers. A FormModel is
// built from a definition.Form by interpreting every field specification with
// pkg/fieldspec; the resulting FieldMetadata and any diagnostics travel with
// the field so renderers can dispatch on the component and tooling can report
// problems without re-parsing. UIHints carry presentational directives that
// do not belong in the specification language, such as `cssClass`,
// `placeholder` or `hideLabel`.
package model
