package main

import (
	"errors"
	"net/http"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrBookAlreadyExists = errors.New("book already exists")
)

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Client facing messages of the book operations.
const (
	MsgCreateSucceeded      = "Buku berhasil ditambahkan"
	MsgCreateMissingName    = "Gagal menambahkan buku. Mohon isi nama buku"
	MsgCreateReadPageTooBig = "Gagal menambahkan buku. readPage tidak boleh lebih besar dari pageCount"
	MsgCreateInvalidPayload = "Gagal menambahkan buku. Payload tidak valid"
	MsgCreateFailed         = "Buku gagal untuk ditambahkan"
	MsgBookNotFound         = "Buku tidak ditemukan"
	MsgUpdateSucceeded      = "Buku berhasil diperbarui"
	MsgUpdateMissingName    = "Gagal memperbarui buku. Mohon isi nama buku"
	MsgUpdateReadPageTooBig = "Gagal memperbarui buku. readPage tidak boleh lebih besar dari pageCount"
	MsgUpdateInvalidPayload = "Gagal memperbarui buku. Payload tidak valid"
	MsgUpdateIDNotFound     = "Gagal memperbarui buku. Id tidak ditemukan"
	MsgDeleteSucceeded      = "Buku berhasil dihapus"
	MsgDeleteIDNotFound     = "Buku gagal dihapus. Id tidak ditemukan"
	MsgListFailed           = "Gagal menampilkan buku"
	MsgRouteNotFound        = "Halaman tidak ditemukan"
	MsgMethodNotAllowed     = "Metode tidak diizinkan"
	MsgInternalFailure      = "Terjadi kegagalan pada server"
)

// ValidationError reports a request the client must fix.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports an unknown book id.
type NotFoundError struct {
	Message string
	ID      string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// InternalError reports a server side failure. Err keeps the cause.
type InternalError struct {
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// ClassifyError maps an operation error to its http status code,
// envelope status and client message.
func ClassifyError(err error) (int, string, string) {
	var verr *ValidationError
	var nerr *NotFoundError
	var ierr *InternalError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, StatusFail, verr.Message
	case errors.As(err, &nerr):
		return http.StatusNotFound, StatusFail, nerr.Message
	case errors.As(err, &ierr):
		return http.StatusInternalServerError, StatusError, ierr.Message
	default:
		return http.StatusInternalServerError, StatusError, MsgInternalFailure
	}
}
