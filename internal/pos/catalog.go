package pos

import "sort"

// AddService appends a service to the catalog and returns its id.
// Name/price validation is the caller's job; the store only assigns the id.
func (s *Store) AddService(name string, price float64, rules string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Seq.Service++
	svc := Service{ID: s.data.Seq.Service, Name: name, Price: price, Rules: rules}
	s.data.Services = append(s.data.Services, svc)
	s.enqueue(ServiceAdd{svc})
	return svc.ID, s.persist()
}

// UpdateService edits a catalog entry in place. Unknown ids are a silent
// no-op.
func (s *Store) UpdateService(id int, name string, price float64, rules string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Services {
		if s.data.Services[i].ID != id {
			continue
		}
		s.data.Services[i].Name = name
		s.data.Services[i].Price = price
		s.data.Services[i].Rules = rules
		s.enqueue(ServiceUpdate{s.data.Services[i]})
		return s.persist()
	}
	return nil
}

// DeleteService removes a catalog entry by id. Historical order items keep
// their denormalized copies of the name and price.
func (s *Store) DeleteService(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.data.Services[:0]
	for _, svc := range s.data.Services {
		if svc.ID != id {
			kept = append(kept, svc)
		}
	}
	s.data.Services = kept
	s.enqueue(ServiceDelete{ID: id})
	return s.persist()
}

// AllServices returns the catalog sorted by name with the venue's collator.
func (s *Store) AllServices() []Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Service, len(s.data.Services))
	copy(out, s.data.Services)
	sort.SliceStable(out, func(i, j int) bool {
		return s.coll.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

// ServiceByID returns a catalog entry by id.
func (s *Store) ServiceByID(id int) (Service, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, svc := range s.data.Services {
		if svc.ID == id {
			return svc, true
		}
	}
	return Service{}, false
}
