package conversation

import (
	"reflect"
	"sync"
)

// Registry holds the services the propagator resolves during request
// processing. Services are keyed by the type they were registered under;
// more than one registration per type is allowed so that lookups can fail
// with an ambiguity instead of silently picking one.
//
// A Registry is an explicit capability: it is constructed by the caller and
// handed to the components that need it, never retrieved through package
// state.
type Registry struct {
	mu       sync.RWMutex
	services map[reflect.Type][]interface{}
}

var typeStringCache sync.Map

func typeName(serviceType reflect.Type) string {
	if cached, ok := typeStringCache.Load(serviceType); ok {
		return cached.(string)
	}
	typeStr := serviceType.String()
	typeStringCache.Store(serviceType, typeStr)
	return typeStr
}

// NewRegistry creates an empty service registry.
func NewRegistry() *Registry {
	return &Registry{
		services: make(map[reflect.Type][]interface{}, 8),
	}
}

// Register adds a service under type T. Registering a second service under
// the same type is permitted and makes subsequent lookups of T ambiguous.
// Returns NilServiceError if the service is nil.
func Register[T any](r *Registry, service T) error {
	serviceType := reflect.TypeOf((*T)(nil)).Elem()

	v := reflect.ValueOf(service)
	if !v.IsValid() || (isNilable(v.Kind()) && v.IsNil()) {
		return &NilServiceError{Type: typeName(serviceType)}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[serviceType] = append(r.services[serviceType], service)
	return nil
}

// Lookup resolves the unique service registered under type T.
// Returns UnsatisfiedResolutionError if no service matches, or
// AmbiguousResolutionError if more than one does. Both are configuration
// errors; callers are expected to fail the request rather than retry.
func Lookup[T any](r *Registry) (T, error) {
	var zero T
	serviceType := reflect.TypeOf((*T)(nil)).Elem()

	r.mu.RLock()
	matches, ok := r.services[serviceType]
	r.mu.RUnlock()

	if !ok || len(matches) == 0 {
		return zero, &UnsatisfiedResolutionError{Type: typeName(serviceType)}
	}
	if len(matches) > 1 {
		return zero, &AmbiguousResolutionError{Type: typeName(serviceType), Count: len(matches)}
	}
	return matches[0].(T), nil
}

func isNilable(kind reflect.Kind) bool {
	switch kind {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return true
	default:
		return false
	}
}
