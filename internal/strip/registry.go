package strip

import "sort"

// Registry is the ordered set of rendered workspace buttons for one output,
// keyed by workspace ordinal. It stores fully rendered markup; label and
// visibility never exist here separately from the rendered form.
type Registry struct {
	widgets map[int]string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{widgets: make(map[int]string)}
}

// Upsert inserts or replaces the widget for key.
func (r *Registry) Upsert(key int, widget string) {
	r.widgets[key] = widget
}

// Remove deletes the entry for key and reports whether it was present.
func (r *Registry) Remove(key int) bool {
	if _, ok := r.widgets[key]; !ok {
		return false
	}
	delete(r.widgets, key)
	return true
}

// Contains reports whether key is tracked.
func (r *Registry) Contains(key int) bool {
	_, ok := r.widgets[key]
	return ok
}

// Len returns the number of tracked workspaces.
func (r *Registry) Len() int {
	return len(r.widgets)
}

// Keys returns the tracked workspace keys in ascending order.
func (r *Registry) Keys() []int {
	keys := make([]int, 0, len(r.widgets))
	for key := range r.widgets {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	return keys
}

// Widgets returns the rendered widgets in ascending key order.
func (r *Registry) Widgets() []string {
	keys := r.Keys()
	widgets := make([]string, 0, len(keys))
	for _, key := range keys {
		widgets = append(widgets, r.widgets[key])
	}
	return widgets
}
