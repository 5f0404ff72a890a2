package emitter

import (
	"fmt"
	"reflect"
	"sync"
)

// contract records the payload and result types an event name was defined with.
type contract struct {
	payload reflect.Type
	result  reflect.Type
}

var (
	contractsMu sync.Mutex
	contracts   = make(map[Name]contract)
)

// defineContract binds name to P and R for the life of the process.
// Redefining a name with the same types is allowed; different types panic.
func defineContract[P, R any](name Name) {
	if name == "" {
		panic("emitter: event name cannot be empty")
	}
	c := contract{
		payload: reflect.TypeFor[P](),
		result:  reflect.TypeFor[R](),
	}

	contractsMu.Lock()
	defer contractsMu.Unlock()

	if existing, ok := contracts[name]; ok && existing != c {
		panic(fmt.Sprintf("emitter: event %q already defined as Event[%s, %s], cannot redefine as Event[%s, %s]",
			name, existing.payload, existing.result, c.payload, c.result))
	}
	contracts[name] = c
}
