package pvframework

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Identifier is implemented by instances that know their own identity.
type Identifier interface {
	InstanceKey() string
}

// InstanceKey returns the identity key of instance: its own key when it
// implements Identifier, otherwise a hash of its type and Go-syntax rendering.
func InstanceKey(instance any) string {
	if id, ok := instance.(Identifier); ok {
		return id.InstanceKey()
	}
	return strconv.FormatUint(xxhash.Sum64String(fmt.Sprintf("%T:%#v", instance, instance)), 16)
}
