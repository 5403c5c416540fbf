package main

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

var _ BookStorage = (*MemoryBookStorage)(nil) // ensure MemoryBookStorage implements BookStorage.

// MemoryBookStorage keeps books in insertion order. The index maps
// each id to its position in the books slice. A single lock guards
// both so every operation sees a consistent collection.
type MemoryBookStorage struct {
	logger *zap.Logger
	mu     sync.RWMutex
	books  []Book
	index  map[string]int
}

// NewMemoryBookStorage provides an instance of in-memory book storage.
func NewMemoryBookStorage(logger *zap.Logger) *MemoryBookStorage {
	return &MemoryBookStorage{
		logger: logger,
		books:  []Book{},
		index:  make(map[string]int),
	}
}

// Add appends a new book record at the end of the collection.
func (ms *MemoryBookStorage) Add(_ context.Context, id string, book Book) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, found := ms.index[id]; found {
		return ErrBookAlreadyExists
	}
	book.ID = id
	ms.books = append(ms.books, book)
	ms.index[id] = len(ms.books) - 1
	ms.logger.Debug("storage: book added", zap.String("book.id", id), zap.Int("books.total", len(ms.books)))
	return nil
}

// GetOne retrieves a book record based on its ID.
func (ms *MemoryBookStorage) GetOne(_ context.Context, id string) (Book, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	pos, found := ms.index[id]
	if !found {
		return Book{}, ErrBookNotFound
	}
	return ms.books[pos], nil
}

// Delete removes a book record based on its ID and keeps the
// remaining records in their original order.
func (ms *MemoryBookStorage) Delete(_ context.Context, id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	pos, found := ms.index[id]
	if !found {
		return ErrBookNotFound
	}
	ms.books = append(ms.books[:pos], ms.books[pos+1:]...)
	delete(ms.index, id)
	for i := pos; i < len(ms.books); i++ {
		ms.index[ms.books[i].ID] = i
	}
	ms.logger.Debug("storage: book removed", zap.String("book.id", id), zap.Int("books.total", len(ms.books)))
	return nil
}

// Update applies change to the stored record. The record is left
// untouched when change fails. The id can not be modified.
func (ms *MemoryBookStorage) Update(_ context.Context, id string, change func(Book) (Book, error)) (Book, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	pos, found := ms.index[id]
	if !found {
		return Book{}, ErrBookNotFound
	}
	book, err := change(ms.books[pos])
	if err != nil {
		return ms.books[pos], err
	}
	book.ID = id
	ms.books[pos] = book
	return book, nil
}

// GetAll retrieves a copy of all books in insertion order.
func (ms *MemoryBookStorage) GetAll(_ context.Context) ([]Book, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	books := make([]Book, len(ms.books))
	copy(books, ms.books)
	return books, nil
}

// Count returns the number of stored books.
func (ms *MemoryBookStorage) Count() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.books)
}
