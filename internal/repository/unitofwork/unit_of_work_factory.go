package unitofwork

import "gorm.io/gorm"

// IUnitOfWorkFactory mints a fresh unit of work per operation. Units of work
// carry transaction state and must not be shared across goroutines.
type IUnitOfWorkFactory interface {
	New() IUnitOfWork
}

type unitOfWorkFactory struct {
	db      *gorm.DB
	factory IRepositoryFactory
}

func NewUnitOfWorkFactory(db *gorm.DB, factory IRepositoryFactory) IUnitOfWorkFactory {
	return &unitOfWorkFactory{db: db, factory: factory}
}

func (f *unitOfWorkFactory) New() IUnitOfWork {
	return NewUnitOfWork(f.db, f.factory)
}
