package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// Book operations names used in logs and metrics.
const (
	OpCreateBook  = "create"
	OpListBooks   = "list"
	OpGetBook     = "get"
	OpUpdateBook  = "update"
	OpDeleteBook  = "delete"
	BookIDParam   = "bookId"
	statusMessage = "Hello. Bookshelf api is available. Enjoy :)"
)

// CreatedBookData is the data of a book creation response.
type CreatedBookData struct {
	BookID string `json:"bookId"`
}

// BooksData is the data of a books listing response.
type BooksData struct {
	Books []BookSummary `json:"books"`
}

// BookData is the data of a single book response.
type BookData struct {
	Book Book `json:"book"`
}

// Index provides same details like `Status` handler by redirecting the request.
func (api *APIHandler) Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	http.Redirect(w, r, "/status", http.StatusSeeOther)
}

// Status provides basics details about the application to the public users.
func (api *APIHandler) Status(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if err := json.NewEncoder(w).Encode(
		StatusResponse{
			RequestID: requestID,
			Status:    fmt.Sprintf("up & running since %.0f mins", api.clock.Now().Sub(api.stats.started).Minutes()),
			Message:   statusMessage,
		},
	); err != nil {
		api.logger.Error("failed to send status response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// NotFound answers unknown routes with the fail envelope. The chain
// gives these responses a request id like any routed request.
func (api *APIHandler) NotFound(chain func(httprouter.Handle) httprouter.Handle) http.Handler {
	return api.envelopeHandler(chain, http.StatusNotFound, MsgRouteNotFound)
}

// MethodNotAllowed answers known routes called with another method.
func (api *APIHandler) MethodNotAllowed(chain func(httprouter.Handle) httprouter.Handle) http.Handler {
	return api.envelopeHandler(chain, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
}

func (api *APIHandler) envelopeHandler(chain func(httprouter.Handle) httprouter.Handle, code int, message string) http.Handler {
	handle := chain(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if err := WriteResponse(r.Context(), w, code, NewAPIError(StatusFail, message)); err != nil {
			api.GetLoggerFromContext(r.Context()).Error("failed to send routing response", zap.String("request.path", r.URL.Path), zap.Error(err))
		}
	})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handle(w, r, nil)
	})
}

// CreateBook godoc
//
//	@Summary	Add a book to the shelf
//	@Tags		books
//	@Accept		json
//	@Produce	json
//	@Param		book	body		BookPayload	true	"book to add"
//	@Success	201		{object}	APIResponse{data=CreatedBookData}
//	@Failure	400		{object}	APIResponse
//	@Failure	500		{object}	APIResponse
//	@Router		/books [post]
func (api *APIHandler) CreateBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	logger := api.GetLoggerFromContext(r.Context())
	var payload BookPayload
	if err := DecodeBookPayload(w, r, &payload); err != nil {
		logger.Error("failed to decode book payload", zap.Error(err))
		api.sendBookResponse(r.Context(), w, OpCreateBook, http.StatusBadRequest, NewAPIError(StatusFail, MsgCreateInvalidPayload))
		return
	}

	id, err := api.bookService.Create(r.Context(), payload)
	if err != nil {
		api.sendBookError(r.Context(), w, OpCreateBook, err)
		return
	}
	logger.Info("success to create book", zap.String("book.id", id))
	api.sendBookResponse(r.Context(), w, OpCreateBook, http.StatusCreated, SuccessResponse(MsgCreateSucceeded, CreatedBookData{BookID: id}))
}

// GetAllBooks godoc
//
//	@Summary		List the books
//	@Description	Only the first given filter applies, in the order name, reading, finished.
//	@Tags			books
//	@Produce		json
//	@Param			name		query		string	false	"case-insensitive part of the name"
//	@Param			reading		query		string	false	"1 for books being read, 0 otherwise"
//	@Param			finished	query		string	false	"1 for finished books, 0 otherwise"
//	@Success		200			{object}	APIResponse{data=BooksData}
//	@Router			/books [get]
func (api *APIHandler) GetAllBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	logger := api.GetLoggerFromContext(r.Context())
	books, err := api.bookService.ListFiltered(r.Context(), ParseBookFilter(r.URL.Query()))
	if err != nil {
		api.sendBookError(r.Context(), w, OpListBooks, err)
		return
	}
	logger.Info("success to get all books", zap.Int("books.total", len(books)))
	api.sendBookResponse(r.Context(), w, OpListBooks, http.StatusOK, SuccessResponse("", BooksData{Books: books}))
}

// GetOneBook godoc
//
//	@Summary	Show a book
//	@Tags		books
//	@Produce	json
//	@Param		bookId	path		string	true	"book id"
//	@Success	200		{object}	APIResponse{data=BookData}
//	@Failure	404		{object}	APIResponse
//	@Router		/books/{bookId} [get]
func (api *APIHandler) GetOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	logger := api.GetLoggerFromContext(r.Context())
	id := ps.ByName(BookIDParam)
	book, err := api.bookService.GetByID(r.Context(), id)
	if err != nil {
		api.sendBookError(r.Context(), w, OpGetBook, err)
		return
	}
	logger.Info("success to get book", zap.String("book.id", id))
	api.sendBookResponse(r.Context(), w, OpGetBook, http.StatusOK, SuccessResponse("", BookData{Book: book}))
}

// UpdateBook godoc
//
//	@Summary	Replace the details of a book
//	@Tags		books
//	@Accept		json
//	@Produce	json
//	@Param		bookId	path		string		true	"book id"
//	@Param		book	body		BookPayload	true	"new book details"
//	@Success	200		{object}	APIResponse
//	@Failure	400		{object}	APIResponse
//	@Failure	404		{object}	APIResponse
//	@Router		/books/{bookId} [put]
func (api *APIHandler) UpdateBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	logger := api.GetLoggerFromContext(r.Context())
	id := ps.ByName(BookIDParam)
	var payload BookPayload
	if err := DecodeBookPayload(w, r, &payload); err != nil {
		logger.Error("failed to decode book payload", zap.String("book.id", id), zap.Error(err))
		api.sendBookResponse(r.Context(), w, OpUpdateBook, http.StatusBadRequest, NewAPIError(StatusFail, MsgUpdateInvalidPayload))
		return
	}

	if _, err := api.bookService.UpdateByID(r.Context(), id, payload); err != nil {
		api.sendBookError(r.Context(), w, OpUpdateBook, err)
		return
	}
	logger.Info("success to update book", zap.String("book.id", id))
	api.sendBookResponse(r.Context(), w, OpUpdateBook, http.StatusOK, SuccessResponse(MsgUpdateSucceeded, nil))
}

// DeleteOneBook godoc
//
//	@Summary	Remove a book
//	@Tags		books
//	@Produce	json
//	@Param		bookId	path		string	true	"book id"
//	@Success	200		{object}	APIResponse
//	@Failure	404		{object}	APIResponse
//	@Router		/books/{bookId} [delete]
func (api *APIHandler) DeleteOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	logger := api.GetLoggerFromContext(r.Context())
	id := ps.ByName(BookIDParam)
	if err := api.bookService.DeleteByID(r.Context(), id); err != nil {
		api.sendBookError(r.Context(), w, OpDeleteBook, err)
		return
	}
	logger.Info("success to delete book", zap.String("book.id", id))
	api.sendBookResponse(r.Context(), w, OpDeleteBook, http.StatusOK, SuccessResponse(MsgDeleteSucceeded, nil))
}

// sendBookError logs the failure of a book operation and answers with its envelope.
func (api *APIHandler) sendBookError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	code, status, message := ClassifyError(err)
	logger := api.GetLoggerFromContext(ctx)
	if status == StatusError {
		logger.Error("book operation failed", zap.String("book.operation", op), zap.Error(err))
	} else {
		logger.Warn("book operation rejected", zap.String("book.operation", op), zap.Int("status", code), zap.Error(err))
	}
	api.sendBookResponse(ctx, w, op, code, NewAPIError(status, message))
}

func (api *APIHandler) sendBookResponse(ctx context.Context, w http.ResponseWriter, op string, code int, resp *APIResponse) {
	if api.metrics != nil {
		api.metrics.ObserveOperation(op, resp.Status)
	}
	if err := WriteResponse(ctx, w, code, resp); err != nil {
		api.GetLoggerFromContext(ctx).Error("failed to send response", zap.String("book.operation", op), zap.Error(err))
	}
}
