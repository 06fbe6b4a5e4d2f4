// Package record defines the generic field-addressable entities the sync
// engine operates on.
//
// Source and target rows are modeled as records with string-addressable
// fields rather than concrete structs, so one engine can move data between
// arbitrary tables without code generation. The Map type is the standard
// implementation; stores hand out Maps seeded with their column set so that
// CopyFields naturally restricts a copy to the columns the target actually
// has.
package record
