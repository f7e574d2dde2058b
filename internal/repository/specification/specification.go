package specification

import "gorm.io/gorm"

// Specification narrows a query. Implementations mutate the passed *gorm.DB
// and return the chained handle.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
