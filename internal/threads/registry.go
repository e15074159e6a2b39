// Package threads holds the process-wide conversation session store. Entries
// live for the process lifetime; the hosted assistant service owns the thread
// contents, we only keep identifiers and display names.
package threads

import "sync"

// Entry is one registered conversation thread.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Registry is a mutex-protected thread id → name map preserving insertion
// order. It is injected into the server rather than read from global state.
type Registry struct {
	mu      sync.Mutex
	entries map[string]string
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]string)}
}

func (r *Registry) Put(id, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		r.order = append(r.order, id)
	}
	r.entries[id] = name
}

func (r *Registry) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[id]
	return ok
}

// Delete removes a thread entry, reporting whether it existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns all entries in creation order.
func (r *Registry) List() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, Entry{ID: id, Name: r.entries[id]})
	}
	return list
}
