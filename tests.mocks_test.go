package main

import (
	"context"
	"sync"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

type MockBookStorage struct {
	AddFunc    func(ctx context.Context, id string, book Book) error
	GetOneFunc func(ctx context.Context, id string) (Book, error)
	DeleteFunc func(ctx context.Context, id string) error
	UpdateFunc func(ctx context.Context, id string, change func(Book) (Book, error)) (Book, error)
	GetAllFunc func(ctx context.Context) ([]Book, error)
}

// Add mocks the behavior of book creation by the repository.
func (m *MockBookStorage) Add(ctx context.Context, id string, book Book) error {
	return m.AddFunc(ctx, id, book)
}

// GetOne mocks the behavior of retrieving a book by the repository.
func (m *MockBookStorage) GetOne(ctx context.Context, id string) (Book, error) {
	return m.GetOneFunc(ctx, id)
}

// Delete mocks the behavior of deleting a book by the repository.
func (m *MockBookStorage) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

// Update mocks the behavior of updating a book by the repository.
func (m *MockBookStorage) Update(ctx context.Context, id string, change func(Book) (Book, error)) (Book, error) {
	return m.UpdateFunc(ctx, id, change)
}

// GetAll mocks the behavior of retrieving all books by the repository.
func (m *MockBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	return m.GetAllFunc(ctx)
}

// MockQueuer implements a fake Queuer. When PushFunc is not set, pushed
// books are recorded and can be inspected with Pushed.
type MockQueuer struct {
	PushFunc func(ctx context.Context, qid string, book Book) error
	PopFunc  func(ctx context.Context, qids ...string) (string, Book, error)

	mu     sync.Mutex
	pushed []QueuedBook
}

// QueuedBook is a book pushed to a given queue.
type QueuedBook struct {
	QID  string
	Book Book
}

func (m *MockQueuer) Push(ctx context.Context, qid string, book Book) error {
	if m.PushFunc != nil {
		return m.PushFunc(ctx, qid, book)
	}
	m.mu.Lock()
	m.pushed = append(m.pushed, QueuedBook{qid, book})
	m.mu.Unlock()
	return nil
}

func (m *MockQueuer) Pop(ctx context.Context, qids ...string) (string, Book, error) {
	return m.PopFunc(ctx, qids...)
}

func (m *MockQueuer) Pushed() []QueuedBook {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]QueuedBook(nil), m.pushed...)
}

// MockArchiver implements a fake BookArchiver backed by a map.
type MockArchiver struct {
	mu    sync.Mutex
	books map[string]Book
	err   error
}

func NewMockArchiver() *MockArchiver {
	return &MockArchiver{books: make(map[string]Book)}
}

func (m *MockArchiver) Put(_ context.Context, book Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.books[book.ID] = book
	return nil
}

func (m *MockArchiver) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.books, id)
	return nil
}

func (m *MockArchiver) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.books)
}

func (m *MockArchiver) Get(id string) (Book, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	book, ok := m.books[id]
	return book, ok
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `Sun, 02 Jul 2023 00:00:00 UTC` in time.RFC1123 format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}

// strPtr is a shortcut to build payload names.
func strPtr(s string) *string {
	return &s
}
