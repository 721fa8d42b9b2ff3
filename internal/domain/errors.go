package domain

import "errors"

var (
	// ErrBackendFailure is returned when a Che Súper API request fails or
	// returns an unparseable body
	ErrBackendFailure = errors.New("backend request failed")

	// ErrInvalidCartFormat is returned when an imported list fails the
	// structural validation
	ErrInvalidCartFormat = errors.New("invalid cart list format")

	// ErrEmptyCart is returned when compare/share/export is attempted on an
	// empty cart
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNoComparison is returned when share or a pricing-mode toggle is
	// requested before any comparison has been cached
	ErrNoComparison = errors.New("no comparison results available")

	// ErrUnknownStore is returned when a store name does not appear in the
	// cached comparison
	ErrUnknownStore = errors.New("store not present in comparison results")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
