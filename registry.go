package swfilms

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// encoderSetter and errorHandlerSetter are promoted from *Component[P].
type encoderSetter interface {
	SetEncoder(*Encoder)
}

type errorHandlerSetter interface {
	SetErrorHandler(func(http.ResponseWriter, *http.Request, error))
}

// Registry manages component registration and routing.
type Registry struct {
	mu         sync.RWMutex
	mux        *http.ServeMux
	encoder    *Encoder
	components map[string]HXComponent

	// OnError is called when an error escapes a component's boundaries.
	// It is the application root boundary. Customize it to render a
	// fallback appropriate for your application.
	OnError func(http.ResponseWriter, *http.Request, error)
}

// NewRegistry creates a new component registry with the given encryption key.
func NewRegistry(encryptionKey []byte) *Registry {
	enc, err := NewEncoder(encryptionKey)
	if err != nil {
		panic(fmt.Sprintf("swfilms: failed to create encoder: %v", err))
	}

	reg := &Registry{
		mux:        http.NewServeMux(),
		encoder:    enc,
		components: make(map[string]HXComponent),
	}

	// Default error handler
	reg.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		if IsNotFound(err) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		if IsDecryptionError(err) || errors.Is(err, ErrInvalidFormat) {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}

	return reg
}

// Encoder returns the registry's encoder (used by components).
func (reg *Registry) Encoder() *Encoder {
	return reg.encoder
}

// Add registers components with the registry.
// Panics on a prefix collision.
func (reg *Registry) Add(components ...HXComponent) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, comp := range components {
		reg.registerComponent(comp)
	}
}

func (reg *Registry) registerComponent(comp HXComponent) {
	prefix := comp.HXPrefix()
	if _, exists := reg.components[prefix]; exists {
		panic(fmt.Sprintf("swfilms: prefix collision for %q", prefix))
	}
	reg.components[prefix] = comp

	if s, ok := comp.(encoderSetter); ok {
		s.SetEncoder(reg.encoder)
	}
	if s, ok := comp.(errorHandlerSetter); ok {
		// Resolve OnError per call so later customization applies.
		s.SetErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			reg.OnError(w, r, err)
		})
	}

	pattern := prefix + "/"
	reg.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		comp.HXServeHTTP(w, r)
	})
}

// Len returns the number of registered components.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.components)
}

// Handler returns the HTTP handler for component routes.
// Mount this at "/_c/" in your application. Component endpoints only
// answer GET and HEAD; Serve rejects other methods with 405.
func (reg *Registry) Handler() http.Handler {
	return reg.mux
}
