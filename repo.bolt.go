package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

// BookArchiver receives the books change feed. The archive mirrors the
// live collection but it is never read back into it.
type BookArchiver interface {
	Put(ctx context.Context, book Book) error
	Delete(ctx context.Context, id string) error
}

var _ BookArchiver = (*boltBookArchive)(nil) // ensure boltBookArchive implements BookArchiver.

type boltBookArchive struct {
	logger *zap.Logger
	client *bolt.DB
	config *BoltDBConfig
}

// GetBoltDBClient setup the database and the bucket then provides a ready to use client.
func GetBoltDBClient(config *Config) (*bolt.DB, error) {
	db, err := bolt.Open(config.BoltDB.FilePath, 0o600, &bolt.Options{Timeout: config.BoltDB.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open the database, %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, errB := tx.CreateBucketIfNotExists([]byte(config.BoltDB.BucketName)); errB != nil {
			return fmt.Errorf("failed to create %s bucket: %v", config.BoltDB.BucketName, errB)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set up bucket: %v", err)
	}
	return db, nil
}

// NewBoltBookArchive provides an instance of bolt-based book archive.
func NewBoltBookArchive(logger *zap.Logger, boltConfig *BoltDBConfig, client *bolt.DB) *boltBookArchive {
	return &boltBookArchive{
		logger: logger,
		client: client,
		config: boltConfig,
	}
}

// Close shuts down the bolt-based book archive.
func (ba *boltBookArchive) Close() error {
	return ba.client.Close()
}

// Put inserts or replaces a book record into boltdb store.
func (ba *boltBookArchive) Put(_ context.Context, book Book) error {
	bookBytes, err := json.Marshal(book)
	if err != nil {
		return err
	}
	return ba.client.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(ba.config.BucketName)).Put([]byte(book.ID), bookBytes)
	})
}

// GetOne retrieves a book record based on its ID from boltdb store.
func (ba *boltBookArchive) GetOne(_ context.Context, id string) (Book, error) {
	var book Book
	// initialize a readable transaction.
	tx, err := ba.client.Begin(false)
	if err != nil {
		return book, err
	}
	defer tx.Rollback()

	result := tx.Bucket([]byte(ba.config.BucketName)).Get([]byte(id))
	if result == nil {
		return book, ErrBookNotFound
	}
	err = json.Unmarshal(result, &book)
	return book, err
}

// Delete removes a book record based on its ID from boltdb store.
// Removing an absent record is not an error.
func (ba *boltBookArchive) Delete(_ context.Context, id string) error {
	return ba.client.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(ba.config.BucketName)).Delete([]byte(id))
	})
}

// GetAll retrieves all archived books ordered by id.
func (ba *boltBookArchive) GetAll(_ context.Context) ([]Book, error) {
	tx, err := ba.client.Begin(false)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Create a cursor on the books' bucket.
	c := tx.Bucket([]byte(ba.config.BucketName)).Cursor()

	books := []Book{}
	for k, v := c.First(); k != nil; k, v = c.Next() {
		var book Book
		if err = json.Unmarshal(v, &book); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}
