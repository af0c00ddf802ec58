package database

import (
	"context"

	"gorm.io/gorm"
)

var _ Store = Database{}

type Database struct {
	db               *gorm.DB
	postRepo         *PostRepo
	categoryRepo     *CategoryRepo
	postCategoryRepo *PostCategoryRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:               db,
		postRepo:         NewPostRepo(db),
		categoryRepo:     NewCategoryRepo(db),
		postCategoryRepo: NewPostCategoryRepo(db),
	}
}

func (d Database) Posts() PostStore {
	return d.postRepo
}

func (d Database) Categories() CategoryStore {
	return d.categoryRepo
}

func (d Database) PostCategories() PostCategoryStore {
	return d.postCategoryRepo
}

// Transaction runs fn inside a database transaction. Every repository handed to
// fn shares the transaction; returning an error rolls it back.
func (d Database) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

func (d Database) Atomic() bool {
	return true
}
