package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrSessionClosed     = errors.New("page session is closed")
	ErrEmptyCollectionID = errors.New("collection id is empty")
	ErrNoVariants        = errors.New("strategy declares no locator variants")
	ErrUnknownPageDriver = errors.New("unknown page driver")
)

// UnsupportedMarketplaceError is returned when no strategy is registered for a marketplace.
type UnsupportedMarketplaceError struct {
	Marketplace Marketplace
}

func (e *UnsupportedMarketplaceError) Error() string {
	return fmt.Sprintf("unsupported marketplace %q", string(e.Marketplace))
}

// ElementNotFoundError means a locator had no match on the loaded page.
type ElementNotFoundError struct {
	Locator string
	Err     error
}

func (e *ElementNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("element not found (locator=%q): %v", e.Locator, e.Err)
	}
	return fmt.Sprintf("element not found (locator=%q)", e.Locator)
}

func (e *ElementNotFoundError) Unwrap() error { return e.Err }

// FieldExtractionError wraps any failure while extracting one named field.
type FieldExtractionError struct {
	ID    string
	Field string
	Err   error
}

func (e *FieldExtractionError) Error() string {
	return fmt.Sprintf("ID: %s, Cause: %s, %v", e.ID, e.Field, e.Err)
}

func (e *FieldExtractionError) Unwrap() error { return e.Err }

// ValidationError means an assembled record violates the record contract.
type ValidationError struct {
	ID     string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid record %q: %s %s", e.ID, e.Field, e.Reason)
}

// ParseError means numeric text could not be evaluated.
type ParseError struct {
	Input   string
	Cleaned string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q (cleaned %q): %v", e.Input, e.Cleaned, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
