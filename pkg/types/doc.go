// Package types defines the Category and Item entities, the category type
// enum, the Repository interface, and the standard error values for the
// rankaroo ranking core.
// Implements: rankaroo-core (data model, error kinds, persistence boundary);
//
//	docs/ARCHITECTURE § Domain Model.
package types
