package pos

// QueueLen returns the number of changes awaiting transmission.
func (s *Store) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.SyncQueue)
}

// SnapshotQueue returns a copy of the current queue contents for one
// transmission attempt. Mutations arriving while the snapshot is in flight
// append to the live queue and are unaffected.
func (s *Store) SnapshotQueue() []QueueEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]QueueEntry, len(s.data.SyncQueue))
	copy(out, s.data.SyncQueue)
	return out
}

// PruneQueue removes every entry whose correlation timestamp appears in
// sent, then persists. Entries appended after the transmitted snapshot was
// taken have later timestamps and survive.
func (s *Store) PruneQueue(sent []int64) error {
	if len(sent) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	acked := make(map[int64]bool, len(sent))
	for _, ts := range sent {
		acked[ts] = true
	}

	kept := s.data.SyncQueue[:0]
	for _, e := range s.data.SyncQueue {
		if !acked[e.TS] {
			kept = append(kept, e)
		}
	}
	s.data.SyncQueue = kept
	return s.persist()
}

// ApplyPull merges authoritative reference data from the server into the
// local dataset and persists.
//
// Merge policy is last-writer-wins: a present services list replaces the
// catalog wholesale; settings merge key-by-key and clients phone-by-phone,
// server values overwriting matching local ones. Local edits to overwritten
// records made since the last successful pull are lost; this is the
// documented tradeoff of the sync protocol, not a bug.
func (s *Store) ApplyPull(pull PullData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pull.Services != nil {
		s.data.Services = make([]Service, len(pull.Services))
		copy(s.data.Services, pull.Services)
	}
	for k, v := range pull.Settings {
		s.data.Settings[k] = v
	}
	for phone, c := range pull.Clients {
		s.data.Clients[phone] = c
	}
	return s.persist()
}
