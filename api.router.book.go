package main

import (
	"github.com/julienschmidt/httprouter"
)

// SetupBookRoutes injects book related the api endpoints.
func (api *APIHandler) SetupBookRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.GET("/", m.public(api.Index))
	router.GET("/status", m.public(api.Status))
	router.POST("/books", m.public(api.CreateBook))
	router.GET("/books", m.public(api.GetAllBooks))
	router.GET("/books/:"+BookIDParam, m.public(api.GetOneBook))
	router.PUT("/books/:"+BookIDParam, m.public(api.UpdateBook))
	router.DELETE("/books/:"+BookIDParam, m.public(api.DeleteOneBook))
	return router
}
