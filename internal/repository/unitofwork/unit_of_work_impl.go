package unitofwork

import (
	"errors"

	"hybrid-brain/internal/repository/contract"

	"gorm.io/gorm"
)

type unitOfWork struct {
	db      *gorm.DB
	tx      *gorm.DB
	factory IRepositoryFactory
}

func NewUnitOfWork(db *gorm.DB, factory IRepositoryFactory) IUnitOfWork {
	return &unitOfWork{db: db, factory: factory}
}

func (u *unitOfWork) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *unitOfWork) Begin() error {
	if u.tx != nil {
		return errors.New("transaction already started")
	}
	tx := u.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return errors.New("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

func (u *unitOfWork) TranscriptRepository() contract.ITranscriptRepository {
	return u.factory.TranscriptRepository(u.getDB())
}

func (u *unitOfWork) TranscriptEmbeddingRepository() contract.ITranscriptEmbeddingRepository {
	return u.factory.TranscriptEmbeddingRepository(u.getDB())
}
