package domain

import "errors"

// ErrAdvancedSearchNotSupported signals that the backend lacks the
// full-text features the advanced fuzzy/autocomplete path needs.
var ErrAdvancedSearchNotSupported = errors.New("advanced search not supported by backend")
