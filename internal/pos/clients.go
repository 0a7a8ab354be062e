package pos

import "sort"

// ClientByPhone returns the explicit discount record for a phone, if any.
// Phones seen only on orders have no record until SetClientDiscount is
// called for them.
func (s *Store) ClientByPhone(phone string) (Client, bool) {
	if phone == "" {
		return Client{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.data.Clients[phone]
	return c, ok
}

// SetClientDiscount upserts a client's discount record. The discount is
// clamped to [0,100]. An empty phone is a silent no-op.
func (s *Store) SetClientDiscount(phone string, discount int, notes string) error {
	if phone == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Client{Discount: clampDiscount(discount), Notes: notes}
	s.data.Clients[phone] = c
	s.enqueue(ClientSet{Phone: phone, Data: c})
	return s.persist()
}

// DeleteClient removes a client's discount record. Order history for the
// phone is untouched.
func (s *Store) DeleteClient(phone string) error {
	if phone == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data.Clients, phone)
	s.enqueue(ClientDelete{Phone: phone})
	return s.persist()
}

// AllClients returns every phone known to the venue: phones with an
// explicit discount record and phones appearing on any order, decorated
// with visit count, total spend and last visit derived from the order
// history. Sorted by visit count descending.
func (s *Store) AllClients() []ClientInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	type visitStats struct {
		visits    int
		spend     float64
		lastVisit int64
	}
	visits := make(map[string]*visitStats)
	for _, o := range s.data.Orders {
		if o.Phone == "" {
			continue
		}
		v, ok := visits[o.Phone]
		if !ok {
			v = &visitStats{}
			visits[o.Phone] = v
		}
		v.visits++
		v.spend += o.Total
		if o.Datetime > v.lastVisit {
			v.lastVisit = o.Datetime
		}
	}

	phones := make(map[string]bool, len(s.data.Clients)+len(visits))
	for phone := range s.data.Clients {
		phones[phone] = true
	}
	for phone := range visits {
		phones[phone] = true
	}

	out := make([]ClientInfo, 0, len(phones))
	for phone := range phones {
		info := ClientInfo{Phone: phone}
		if c, ok := s.data.Clients[phone]; ok {
			info.Discount = c.Discount
			info.Notes = c.Notes
		}
		if v, ok := visits[phone]; ok {
			info.Visits = v.visits
			info.TotalSpend = v.spend
			info.LastVisit = v.lastVisit
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Visits != out[j].Visits {
			return out[i].Visits > out[j].Visits
		}
		return out[i].Phone < out[j].Phone
	})
	return out
}
