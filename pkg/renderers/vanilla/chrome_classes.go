package vanilla

// ChromeClass is a semantic CSS class emitted around the fields.
type ChromeClass string

const (
	ClassForm     ChromeClass = "formspec-form"
	ClassHeader   ChromeClass = "formspec-header"
	ClassField    ChromeClass = "formspec-field"
	ClassErrors   ChromeClass = "formspec-errors"
	ClassActions  ChromeClass = "formspec-actions"
	ClassNotFound ChromeClass = "formspec-not-found"
)

// DefaultFormClass is applied unless WithFormClass overrides it.
const DefaultFormClass = string(ClassForm)
