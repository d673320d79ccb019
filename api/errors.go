package api

import (
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"

	"posadmin/models"
)

var (
	// ErrSessionExpired is returned when the backend answers 401. By the time
	// the caller sees it the stored session has already been cleared.
	ErrSessionExpired = errors.New("session expired")
	// ErrNotFound is returned when the backend answers 404.
	ErrNotFound = errors.New("endpoint not found")
	// ErrUnreachable is returned when no response was received because the
	// backend could not be reached.
	ErrUnreachable = errors.New("backend not reachable")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Method  string
	Path    string
	URL     string
	Payload *models.ErrorPayload
	Body    []byte
}

func (e *APIError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("request failed with status code %d: %s", e.Status, msg)
	}
	return fmt.Sprintf("request failed with status code %d", e.Status)
}

// Message returns the message field of the structured error payload, if any.
func (e *APIError) Message() string {
	if e.Payload == nil {
		return ""
	}
	return e.Payload.Message
}

// Is lets errors.Is match an APIError against the status sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrSessionExpired:
		return e.Status == 401
	case ErrNotFound:
		return e.Status == 404
	}
	return false
}

// IsConnectivityError reports whether err means no response was received:
// refused, reset or unroutable connections, connections closed before a
// response arrived, and failed name lookups.
func IsConnectivityError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnreachable) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
