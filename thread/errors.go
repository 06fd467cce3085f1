package thread

import "errors"

var (
	ErrContainerNotFound  = errors.New("comment tree container not found")
	ErrRowSectionNotFound = errors.New("comment row section not found")

	ErrMalformedReference      = errors.New("malformed reference")
	ErrMalformedRowID          = errors.New("malformed row id")
	ErrMissingNavigationMarker = errors.New("navigation marker not found")
	ErrMissingParentLink       = errors.New("parent link not found")
	ErrMissingContentRegion    = errors.New("content region not found")

	ErrUnresolvedTarget = errors.New("target comment not found")
)
