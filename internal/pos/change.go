package pos

import (
	"encoding/json"
	"fmt"
)

// ChangeKind tags a queued change record. The values are the wire-level type
// tags the remote push endpoint replays.
type ChangeKind string

const (
	ChangeServiceAdd    ChangeKind = "service_add"
	ChangeServiceUpdate ChangeKind = "service_update"
	ChangeServiceDelete ChangeKind = "service_delete"
	ChangeOrderCreate   ChangeKind = "order_create"
	ChangeOrderUpdate   ChangeKind = "order_update"
	ChangeOrderDelete   ChangeKind = "order_delete"
	ChangeSettingSet    ChangeKind = "setting_set"
	ChangeClientSet     ChangeKind = "client_set"
	ChangeClientDelete  ChangeKind = "client_delete"
)

// Change is the closed set of mutations a device can replay to the server.
// One variant per mutation kind, each carrying its own typed payload. The
// transmission boundary handles all variants exhaustively; an unknown kind
// is a programming error, not data.
type Change interface {
	Kind() ChangeKind
}

// ServiceAdd records a catalog append. The payload is the service itself.
type ServiceAdd struct {
	Service
}

// ServiceUpdate records an in-place catalog edit.
type ServiceUpdate struct {
	Service
}

// ServiceDelete records a catalog removal.
type ServiceDelete struct {
	ID int `json:"id"`
}

// OrderCreate carries the full order plus its items so the server can
// replay the sale without further lookups.
type OrderCreate struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}

// OrderUpdate carries the recomputed order and the full replacement item
// set.
type OrderUpdate struct {
	ID    OrderID     `json:"uuid"`
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}

// OrderDelete records an order removal.
type OrderDelete struct {
	ID OrderID `json:"uuid"`
}

// SettingSet records a settings write. A nil Value clears the key.
type SettingSet struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

// ClientSet records a client discount upsert.
type ClientSet struct {
	Phone string `json:"phone"`
	Data  Client `json:"data"`
}

// ClientDelete records a client removal.
type ClientDelete struct {
	Phone string `json:"phone"`
}

func (ServiceAdd) Kind() ChangeKind    { return ChangeServiceAdd }
func (ServiceUpdate) Kind() ChangeKind { return ChangeServiceUpdate }
func (ServiceDelete) Kind() ChangeKind { return ChangeServiceDelete }
func (OrderCreate) Kind() ChangeKind   { return ChangeOrderCreate }
func (OrderUpdate) Kind() ChangeKind   { return ChangeOrderUpdate }
func (OrderDelete) Kind() ChangeKind   { return ChangeOrderDelete }
func (SettingSet) Kind() ChangeKind    { return ChangeSettingSet }
func (ClientSet) Kind() ChangeKind     { return ChangeClientSet }
func (ClientDelete) Kind() ChangeKind  { return ChangeClientDelete }

// QueueEntry is one pending change awaiting transmission. TS is the
// device-local creation timestamp in milliseconds; it doubles as the
// correlation id used to prune acknowledged entries, so the store keeps it
// strictly monotonic per instance.
type QueueEntry struct {
	Change Change
	TS     int64
}

// entryEnvelope is the wire form of a queue entry: {type, data, ts}.
type entryEnvelope struct {
	Type ChangeKind      `json:"type"`
	Data json.RawMessage `json:"data"`
	TS   int64           `json:"ts"`
}

// MarshalJSON serializes the entry in the push wire format.
func (e QueueEntry) MarshalJSON() ([]byte, error) {
	if e.Change == nil {
		return nil, fmt.Errorf("marshal queue entry: nil change")
	}
	// Exhaustive over Change variants. The default arm rejects variants
	// added without a wire mapping.
	switch e.Change.(type) {
	case ServiceAdd, ServiceUpdate, ServiceDelete,
		OrderCreate, OrderUpdate, OrderDelete,
		SettingSet, ClientSet, ClientDelete:
	default:
		return nil, fmt.Errorf("marshal queue entry: unhandled change %T", e.Change)
	}

	data, err := json.Marshal(e.Change)
	if err != nil {
		return nil, fmt.Errorf("marshal queue entry data: %w", err)
	}
	return json.Marshal(entryEnvelope{Type: e.Change.Kind(), Data: data, TS: e.TS})
}

// UnmarshalJSON restores an entry from the wire format, decoding the payload
// into the variant named by the type tag.
func (e *QueueEntry) UnmarshalJSON(data []byte) error {
	var env entryEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("unmarshal queue entry: %w", err)
	}

	var (
		change Change
		err    error
	)
	switch env.Type {
	case ChangeServiceAdd:
		var c ServiceAdd
		err = json.Unmarshal(env.Data, &c)
		change = c
	case ChangeServiceUpdate:
		var c ServiceUpdate
		err = json.Unmarshal(env.Data, &c)
		change = c
	case ChangeServiceDelete:
		var c ServiceDelete
		err = json.Unmarshal(env.Data, &c)
		change = c
	case ChangeOrderCreate:
		var c OrderCreate
		err = json.Unmarshal(env.Data, &c)
		change = c
	case ChangeOrderUpdate:
		var c OrderUpdate
		err = json.Unmarshal(env.Data, &c)
		change = c
	case ChangeOrderDelete:
		var c OrderDelete
		err = json.Unmarshal(env.Data, &c)
		change = c
	case ChangeSettingSet:
		var c SettingSet
		err = json.Unmarshal(env.Data, &c)
		change = c
	case ChangeClientSet:
		var c ClientSet
		err = json.Unmarshal(env.Data, &c)
		change = c
	case ChangeClientDelete:
		var c ClientDelete
		err = json.Unmarshal(env.Data, &c)
		change = c
	default:
		return fmt.Errorf("unmarshal queue entry: unknown change type %q", env.Type)
	}
	if err != nil {
		return fmt.Errorf("unmarshal %s payload: %w", env.Type, err)
	}

	e.Change = change
	e.TS = env.TS
	return nil
}
