package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type byIDSpecification struct {
	id uuid.UUID
}

func (s byIDSpecification) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.id)
}

func ByID(id uuid.UUID) Specification {
	return byIDSpecification{id: id}
}

type byIDsSpecification struct {
	ids []uuid.UUID
}

func (s byIDsSpecification) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id IN ?", s.ids)
}

func ByIDs(ids []uuid.UUID) Specification {
	return byIDsSpecification{ids: ids}
}

type orderBySpecification struct {
	field     string
	direction string
}

func (s orderBySpecification) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(s.field + " " + s.direction)
}

func OrderBy(field, direction string) Specification {
	return orderBySpecification{field: field, direction: direction}
}

type paginationSpecification struct {
	limit  int
	offset int
}

func (s paginationSpecification) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.limit).Offset(s.offset)
}

func Pagination(limit, offset int) Specification {
	return paginationSpecification{limit: limit, offset: offset}
}

type filterBySpecification struct {
	field string
	value interface{}
}

func (s filterBySpecification) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(s.field+" = ?", s.value)
}

func FilterBy(field string, value interface{}) Specification {
	return filterBySpecification{field: field, value: value}
}
