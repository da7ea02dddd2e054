package pvframework

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
)

const (
	minErrorID = 1_000_000
	maxErrorID = 9_999_999
)

// errorIDs hands out stable IDs and keeps them unique within the process.
type errorIDs struct {
	mu      sync.Mutex
	byIdent map[string]int
	taken   map[int]string
}

var defaultErrorIDs = &errorIDs{
	byIdent: make(map[string]int),
	taken:   make(map[int]string),
}

// ErrorID returns the stable ID for findings of kind raised by validatorName
// with a cause of the same type. IDs lie in [1000000, 9999999]; different
// identifiers never share an ID within one process.
func ErrorID(validatorName string, kind Kind, cause error) int {
	return defaultErrorIDs.get(validatorName + "\x00" + string(kind) + "\x00" + fmt.Sprintf("%T", cause))
}

func (r *errorIDs) get(identifier string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byIdent[identifier]; ok {
		return id
	}

	h := xxhash.Sum64String(identifier)
	for {
		id := minErrorID + int(h%(maxErrorID-minErrorID+1))
		if _, taken := r.taken[id]; !taken {
			r.byIdent[identifier] = id
			r.taken[id] = identifier
			return id
		}
		h = xxhash.Sum64String(strconv.FormatUint(h, 16))
	}
}
