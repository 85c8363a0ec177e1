// Package definition loads form definitions: named forms whose fields are
// written in the field specification language. Documents are JSON or YAML:
//
//	forms:
//	  contact:
//	    title: Contact us
//	    fields:
//	      - name: email
//	        spec: text required label('Email')
//	      - name: topic
//	        spec: select('sales', 'support') label('Topic')
//
// Definitions only carry the raw specification lines; interpreting them is
// the job of pkg/fieldspec and pkg/model.
package definition
