package specification

import "gorm.io/gorm"

// Specification is a composable query predicate applied to a gorm query.
// Problem listing and run listing build their filters out of these.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
