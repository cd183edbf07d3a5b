package text

import (
	"hash/fnv"

	"github.com/pkg/errors"
)

// IntHash maps a string to a stable non-negative int, used to derive
// deterministic seeds from prompts.
func IntHash(text string) (int, error) {
	h := fnv.New32a()
	if _, err := h.Write([]byte(text)); err != nil {
		return 0, errors.WithStack(err)
	}

	return int(h.Sum32()), nil
}
