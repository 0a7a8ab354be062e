// Package storage persists the point-of-sale dataset as a single serialized
// snapshot. The domain store owns the serialization; backends only move an
// opaque blob to and from durable storage.
package storage

// Backend stores and retrieves one snapshot blob.
//
// Load returns (nil, nil) when no snapshot has been saved yet; the caller
// substitutes an empty dataset. Save replaces the previous snapshot as one
// atomic document write.
type Backend interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Close() error
}
