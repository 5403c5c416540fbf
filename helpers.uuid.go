package main

import "github.com/gofrs/uuid"

var _ UIDHandler = (*IDsHandler)(nil) // ensure IDsHandler implements UIDHandler.

// UIDHandler is an interface for getting a prefixed uid.
type UIDHandler interface {
	Generate(prefix string) string
}

// IDsHandler implements the UIDHandler interface.
type IDsHandler struct{}

// NewIDsHandler returns a ready to use IDsHandler.
func NewIDsHandler() *IDsHandler {
	return &IDsHandler{}
}

// Generate provides a random unique identifier.
func (idh *IDsHandler) Generate(prefix string) string {
	id, err := uuid.NewV4()
	if err != nil {
		// crypto/rand failure. Fall back to the time based variant.
		id = uuid.Must(uuid.NewV1())
	}
	return prefix + ":" + id.String()
}
