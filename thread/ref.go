package thread

import (
	"fmt"
	"regexp"
	"strconv"
)

var refPattern = regexp.MustCompile(`#(\d+)`)

// ParseRef returns the comment id encoded in a reference such as
// "item?id=1#42" or "#42".
func ParseRef(ref string) (int, error) {
	m := refPattern.FindStringSubmatch(ref)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedReference, ref)
	}

	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMalformedReference, ref, err)
	}
	return id, nil
}

// Href is the reference emitted for a comment id.
func Href(id int) string {
	return "#" + strconv.Itoa(id)
}
