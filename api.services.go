package main

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type BookServiceProvider interface {
	Create(ctx context.Context, payload BookPayload) (string, error)
	ListFiltered(ctx context.Context, filter BookFilter) ([]BookSummary, error)
	GetByID(ctx context.Context, id string) (Book, error)
	UpdateByID(ctx context.Context, id string, payload BookPayload) (Book, error)
	DeleteByID(ctx context.Context, id string) error
}

type BookService struct {
	logger     *zap.Logger
	config     *Config
	clock      Clocker
	idsHandler UIDHandler
	storage    BookStorage
	queue      Queuer

	// feedMu keeps the change feed in commit order. It is always taken
	// before the storage lock.
	feedMu sync.Mutex
}

func NewBookService(logger *zap.Logger, config *Config, clock Clocker, idsHandler UIDHandler, storage BookStorage, queue Queuer) BookServiceProvider {
	return &BookService{
		logger:     logger,
		config:     config,
		clock:      clock,
		idsHandler: idsHandler,
		storage:    storage,
		queue:      queue,
	}
}

// payloadMessages holds the validation messages of one operation.
type payloadMessages struct {
	missingName    string
	readPageTooBig string
}

var (
	createMessages = payloadMessages{MsgCreateMissingName, MsgCreateReadPageTooBig}
	updateMessages = payloadMessages{MsgUpdateMissingName, MsgUpdateReadPageTooBig}
)

// ValidateBookPayload checks the name is set and the read page does not
// go past the page count.
func ValidateBookPayload(payload BookPayload, msgs payloadMessages) error {
	if payload.Name == nil || len(*payload.Name) == 0 {
		return &ValidationError{Message: msgs.missingName}
	}
	if payload.ReadPage > payload.PageCount {
		return &ValidationError{Message: msgs.readPageTooBig}
	}
	return nil
}

// Create stores a new book built from the payload and returns its id.
func (bs *BookService) Create(ctx context.Context, payload BookPayload) (string, error) {
	if err := ValidateBookPayload(payload, createMessages); err != nil {
		return "", err
	}

	now := FormatTimestamp(bs.clock.Now())
	book := Book{
		ID:         bs.idsHandler.Generate(BookIDPrefix),
		Name:       *payload.Name,
		Year:       payload.Year,
		Author:     payload.Author,
		Summary:    payload.Summary,
		Publisher:  payload.Publisher,
		PageCount:  payload.PageCount,
		ReadPage:   payload.ReadPage,
		Finished:   payload.PageCount == payload.ReadPage,
		Reading:    payload.Reading,
		InsertedAt: now,
		UpdatedAt:  now,
	}

	bs.feedMu.Lock()
	defer bs.feedMu.Unlock()

	if err := bs.storage.Add(ctx, book.ID, book); err != nil {
		return "", &InternalError{Message: MsgCreateFailed, Err: err}
	}

	// the record must be readable right after its insertion.
	if _, err := bs.storage.GetOne(ctx, book.ID); err != nil {
		return "", &InternalError{Message: MsgCreateFailed, Err: err}
	}

	bs.publish(ctx, CreateQueue, book)
	return book.ID, nil
}

// ListFiltered returns the summaries of the books matching the first set
// filter, in insertion order. No filter set means all books.
func (bs *BookService) ListFiltered(ctx context.Context, filter BookFilter) ([]BookSummary, error) {
	books, err := bs.storage.GetAll(ctx)
	if err != nil {
		return nil, &InternalError{Message: MsgListFailed, Err: err}
	}

	match := filter.matcher()
	summaries := []BookSummary{}
	for _, book := range books {
		if match(book) {
			summaries = append(summaries, book.ToSummary())
		}
	}
	return summaries, nil
}

func (f BookFilter) matcher() func(Book) bool {
	switch {
	case f.Name != nil:
		name := strings.ToLower(*f.Name)
		return func(b Book) bool { return strings.Contains(strings.ToLower(b.Name), name) }
	case f.Reading != nil:
		reading := *f.Reading
		return func(b Book) bool { return b.Reading == reading }
	case f.Finished != nil:
		finished := *f.Finished
		return func(b Book) bool { return b.Finished == finished }
	default:
		return func(Book) bool { return true }
	}
}

// GetByID returns the full record of a book.
func (bs *BookService) GetByID(ctx context.Context, id string) (Book, error) {
	book, err := bs.storage.GetOne(ctx, id)
	if errors.Is(err, ErrBookNotFound) {
		return book, &NotFoundError{Message: MsgBookNotFound, ID: id}
	}
	if err != nil {
		return book, &InternalError{Message: MsgInternalFailure, Err: err}
	}
	return book, nil
}

// UpdateByID overwrites the mutable fields of an existing book. The id
// existence is checked before the payload. The finished flag is kept as
// computed at creation.
func (bs *BookService) UpdateByID(ctx context.Context, id string, payload BookPayload) (Book, error) {
	updatedAt := FormatTimestamp(bs.clock.Now())

	bs.feedMu.Lock()
	defer bs.feedMu.Unlock()

	book, err := bs.storage.Update(ctx, id, func(current Book) (Book, error) {
		if err := ValidateBookPayload(payload, updateMessages); err != nil {
			return current, err
		}
		current.Name = *payload.Name
		current.Year = payload.Year
		current.Author = payload.Author
		current.Summary = payload.Summary
		current.Publisher = payload.Publisher
		current.PageCount = payload.PageCount
		current.ReadPage = payload.ReadPage
		current.Reading = payload.Reading
		current.UpdatedAt = updatedAt
		return current, nil
	})

	var verr *ValidationError
	switch {
	case errors.Is(err, ErrBookNotFound):
		return Book{}, &NotFoundError{Message: MsgUpdateIDNotFound, ID: id}
	case errors.As(err, &verr):
		return Book{}, err
	case err != nil:
		return Book{}, &InternalError{Message: MsgInternalFailure, Err: err}
	}

	bs.publish(ctx, UpdateQueue, book)
	return book, nil
}

// DeleteByID removes a book.
func (bs *BookService) DeleteByID(ctx context.Context, id string) error {
	bs.feedMu.Lock()
	defer bs.feedMu.Unlock()

	err := bs.storage.Delete(ctx, id)
	if errors.Is(err, ErrBookNotFound) {
		return &NotFoundError{Message: MsgDeleteIDNotFound, ID: id}
	}
	if err != nil {
		return &InternalError{Message: MsgInternalFailure, Err: err}
	}
	bs.publish(ctx, DeleteQueue, Book{ID: id})
	return nil
}

// publish pushes the change to the feed. A failure is logged only, the
// operation already succeeded.
func (bs *BookService) publish(ctx context.Context, qid string, book Book) {
	if err := bs.queue.Push(ctx, qid, book); err != nil {
		bs.logger.Error("service: failed to push book to queue", zap.String("qid", qid), zap.String("book.id", book.ID), zap.Error(err))
	}
}
