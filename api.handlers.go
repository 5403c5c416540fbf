package main

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Statistics holds app stats for ops.
type Statistics struct {
	version   string
	container bool
	runtime   string
	platform  string
	called    uint64
	started   time.Time
	status    map[int]uint64
	mu        *sync.RWMutex
}

// Maintenance holds app maintenance mode infos.
type Maintenance struct {
	enabled atomic.Bool
	mu      sync.RWMutex
	message string
	started time.Time
}

// Enable switches the maintenance mode on with the message shown to users.
func (m *Maintenance) Enable(message string, started time.Time) {
	m.mu.Lock()
	m.message = message
	m.started = started
	m.mu.Unlock()
	m.enabled.Store(true)
}

// Disable switches the maintenance mode off.
func (m *Maintenance) Disable() {
	m.enabled.Store(false)
	m.mu.Lock()
	m.message = ""
	m.started = time.Time{}
	m.mu.Unlock()
}

// Infos returns the current message and start time.
func (m *Maintenance) Infos() (string, time.Time) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.message, m.started
}

// APIHandler defines the API handler.
type APIHandler struct {
	logger      *zap.Logger
	config      *Config
	stats       *Statistics
	mode        *Maintenance
	clock       Clocker
	idsHandler  UIDHandler
	metrics     *Metrics
	bookService BookServiceProvider
}

// NewAPIHandler provides a new instance of APIHandler.
func NewAPIHandler(logger *zap.Logger, config *Config, stats *Statistics, clock Clocker, idsHandler UIDHandler, metrics *Metrics, bs BookServiceProvider) *APIHandler {
	stats.status = make(map[int]uint64)
	stats.mu = &sync.RWMutex{}
	return &APIHandler{
		logger:      logger,
		config:      config,
		stats:       stats,
		mode:        &Maintenance{},
		clock:       clock,
		idsHandler:  idsHandler,
		metrics:     metrics,
		bookService: bs,
	}
}
