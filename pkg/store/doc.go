// Package store persists form definitions in a SQL database through GORM so
// definitions authored in files or imported from OpenAPI documents can be
// served without the original sources.
package store
