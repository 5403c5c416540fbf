package main

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
)

type ContextKey string

const (
	BookIDPrefix            string     = "b"
	RequestIDPrefix         string     = "r"
	RequestIDContextKey     ContextKey = "request.id"
	RequestNumberContextKey ContextKey = "request.number"
	RequestIDHeader         string     = "X-Request-ID"
	MaxRequestBodySize      int64      = 1 << 20
)

// GetValueFromContext returns the value of a given key in the context
// if this key is not available, it returns an empty string.
func GetValueFromContext(ctx context.Context, contextKey ContextKey) string {
	if val, ok := ctx.Value(contextKey).(string); ok {
		return val
	}
	return ""
}

// GetRequestNumberFromContext returns the request number set in
// the context. if not previously set then it returns 0.
func GetRequestNumberFromContext(ctx context.Context) uint64 {
	if val, ok := ctx.Value(RequestNumberContextKey).(uint64); ok {
		return val
	}
	return 0
}

// DecodeBookPayload is a helper function to read the content of a book creation or update request.
// Unknown fields are ignored, trailing data after the json object is rejected.
func DecodeBookPayload(w http.ResponseWriter, r *http.Request, payload *BookPayload) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errors.New("empty book request body")
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBodySize))
	if err := dec.Decode(payload); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after book request body")
	}
	return nil
}

// ParseBookFilter builds the listing filter from the query string.
// The reading and finished values are true only when equal to "1".
func ParseBookFilter(q url.Values) BookFilter {
	var filter BookFilter
	if q.Has("name") {
		name := q.Get("name")
		filter.Name = &name
	}
	if q.Has("reading") {
		reading := q.Get("reading") == "1"
		filter.Reading = &reading
	}
	if q.Has("finished") {
		finished := q.Get("finished") == "1"
		filter.Finished = &finished
	}
	return filter
}

// GetRequestSourceIP helps find the source IP of the caller.
func GetRequestSourceIP(r *http.Request) string {
	// Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip
	}

	// Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		ip = strings.TrimSpace(ip)
		netIP = net.ParseIP(ip)
		if netIP != nil {
			return ip
		}
	}

	// Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return ""
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip
	}
	return ""
}

// IsAppRunningInDocker checks the existence of the .dockerenv
// file at the root directory and returns a boolean result. This
// helps know if the App is running in a docker container or not.
func IsAppRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}
