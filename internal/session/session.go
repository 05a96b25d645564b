// Package session holds per-conversation slot memory. Slots persist across
// turns until explicitly overwritten or cleared; values must never leak
// across conversation ids.
package session

import (
	"context"
	"sync"
)

// SlotName identifies one conversational variable.
type SlotName string

const (
	SlotTown            SlotName = "town"
	SlotProductName     SlotName = "product_name"
	SlotProductCategory SlotName = "product_category"
	SlotProductType     SlotName = "product_type"
	SlotStoreName       SlotName = "store_name"
)

// Slots is the per-conversation slot bag. The zero value is an empty bag.
type Slots struct {
	Town            string `json:"town,omitempty"`
	ProductName     string `json:"product_name,omitempty"`
	ProductCategory string `json:"product_category,omitempty"`
	ProductType     string `json:"product_type,omitempty"`
	StoreName       string `json:"store_name,omitempty"`
}

// Op is one explicit slot update. A resolver emits a full list of ops per
// turn; there are no silent partial updates.
type Op struct {
	Slot  SlotName
	Value string
	Clear bool
}

// Set returns an Op that binds a slot to a value.
func Set(slot SlotName, value string) Op { return Op{Slot: slot, Value: value} }

// Clear returns an Op that empties a slot.
func Clear(slot SlotName) Op { return Op{Slot: slot, Clear: true} }

// Apply returns a copy of s with ops applied in order.
func Apply(s Slots, ops []Op) Slots {
	for _, op := range ops {
		v := op.Value
		if op.Clear {
			v = ""
		}
		switch op.Slot {
		case SlotTown:
			s.Town = v
		case SlotProductName:
			s.ProductName = v
		case SlotProductCategory:
			s.ProductCategory = v
		case SlotProductType:
			s.ProductType = v
		case SlotStoreName:
			s.StoreName = v
		}
	}
	return s
}

// Store persists slot memory keyed by conversation id.
type Store interface {
	Get(ctx context.Context, conversationID string) (Slots, error)
	Put(ctx context.Context, conversationID string, slots Slots) error
	Clear(ctx context.Context, conversationID string) error
}

// MemoryStore is the in-process Store.
type MemoryStore struct {
	mu    sync.Mutex
	slots map[string]Slots
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]Slots)}
}

func (m *MemoryStore) Get(_ context.Context, conversationID string) (Slots, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slots[conversationID], nil
}

func (m *MemoryStore) Put(_ context.Context, conversationID string, slots Slots) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[conversationID] = slots
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, conversationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, conversationID)
	return nil
}

// KeyedMutex hands out one mutex per conversation id so the caller can
// serialize turns for a single conversation without blocking others.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedMutex returns an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock returns the mutex for a conversation id, creating it on first use.
// Callers hold it for the duration of one turn.
func (k *KeyedMutex) Lock(conversationID string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	l, ok := k.locks[conversationID]
	if !ok {
		l = &sync.Mutex{}
		k.locks[conversationID] = l
	}
	return l
}
