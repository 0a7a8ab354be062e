package pos

// Setting returns a setting value, or "" when the key is unset.
func (s *Store) Setting(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Settings[key]
}

// SetSetting stores a string value under key.
func (s *Store) SetSetting(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Settings[key] = value
	v := value
	s.enqueue(SettingSet{Key: key, Value: &v})
	return s.persist()
}

// UnsetSetting clears a key. The queued change carries a null value so the
// server clears its copy too.
func (s *Store) UnsetSetting(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data.Settings, key)
	s.enqueue(SettingSet{Key: key, Value: nil})
	return s.persist()
}
