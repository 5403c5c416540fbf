package main

import "context"

// Book represents a book entity.
type Book struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Year       int    `json:"year"`
	Author     string `json:"author"`
	Summary    string `json:"summary"`
	Publisher  string `json:"publisher"`
	PageCount  int    `json:"pageCount"`
	ReadPage   int    `json:"readPage"`
	Finished   bool   `json:"finished"`
	Reading    bool   `json:"reading"`
	InsertedAt string `json:"insertedAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// BookSummary is the projection of a book used by listings.
type BookSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Publisher string `json:"publisher"`
}

// ToSummary projects the book into its listing form.
func (b Book) ToSummary() BookSummary {
	return BookSummary{ID: b.ID, Name: b.Name, Publisher: b.Publisher}
}

// BookPayload is the body expected on book creation and update.
// Name is a pointer so a missing field can be told apart from
// any other value.
type BookPayload struct {
	Name      *string `json:"name"`
	Year      int     `json:"year"`
	Author    string  `json:"author"`
	Summary   string  `json:"summary"`
	Publisher string  `json:"publisher"`
	PageCount int     `json:"pageCount"`
	ReadPage  int     `json:"readPage"`
	Reading   bool    `json:"reading"`
}

// BookFilter holds the optional listing filters. Only the first
// set filter is applied, in the order Name, Reading, Finished.
type BookFilter struct {
	Name     *string
	Reading  *bool
	Finished *bool
}

// BookStorage defines possible operations on book entity. Update runs
// the change function on the current record while holding the storage
// exclusive access, so lookup and write happen as a single step.
type BookStorage interface {
	Add(ctx context.Context, id string, book Book) error
	GetOne(ctx context.Context, id string) (Book, error)
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, change func(Book) (Book, error)) (Book, error)
	GetAll(ctx context.Context) ([]Book, error)
}
