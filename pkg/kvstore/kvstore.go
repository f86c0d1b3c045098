// Package kvstore is a small key-value persistence layer over an embedded
// sqlite database. It plays the role a browser's local storage would: string
// keys, string values, absent reads are a normal outcome.
package kvstore

import (
	"errors"

	"gorm.io/gorm"
)

type entry struct {
	K string `gorm:"primaryKey;column:k"`
	V string `gorm:"column:v"`
}

func (entry) TableName() string { return "kv_entries" }

// Store is a key-value store backed by a gorm DB.
type Store struct {
	db *gorm.DB
}

// New migrates the backing table and returns a store.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Get returns the value for key. ok is false when the key is absent.
func (s *Store) Get(key string) (string, bool, error) {
	var e entry
	err := s.db.First(&e, "k = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.V, true, nil
}

// Set writes (or overwrites) the value for key.
func (s *Store) Set(key, value string) error {
	return s.db.Save(&entry{K: key, V: value}).Error
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	return s.db.Delete(&entry{}, "k = ?", key).Error
}
