package catalog

// Store exposes the read-only service catalog.
type Store interface {
	List() []Service
	FindByID(id string) (Service, bool)
	FindByChoice(choice string) (Service, bool)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Service
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied services.
func NewMemoryStore(items []Service) *MemoryStore {
	return &MemoryStore{items: append([]Service(nil), items...)}
}

// List returns the services in menu order.
func (s *MemoryStore) List() []Service {
	return append([]Service(nil), s.items...)
}

// FindByID looks up a service by identifier.
func (s *MemoryStore) FindByID(id string) (Service, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Service{}, false
}

// FindByChoice looks up a service by its menu number.
func (s *MemoryStore) FindByChoice(choice string) (Service, bool) {
	for _, item := range s.items {
		if item.Choice == choice {
			return item, true
		}
	}
	return Service{}, false
}
