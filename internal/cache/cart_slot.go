package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// The storefront shows a short-lived "added to cart" confirmation; the slot
// holds the last added product for a couple of seconds. Redis-backed when the
// cache is enabled, in-process otherwise.
const lastAddedTTL = 2 * time.Second

// LastAddedSlot last-added product snapshot
type LastAddedSlot struct {
	ProductID uint  `json:"product_id"`
	Quantity  int   `json:"quantity"`
	AddedAt   int64 `json:"added_at"`
}

var (
	lastAddedMu    sync.Mutex
	lastAddedLocal = map[uint]localSlot{}
)

type localSlot struct {
	slot      LastAddedSlot
	expiresAt time.Time
}

func lastAddedKey(profileID uint) string {
	return fmt.Sprintf("cart:last_added:%d", profileID)
}

// SetLastAdded records the product just added to a cart
func SetLastAdded(ctx context.Context, profileID uint, slot LastAddedSlot) error {
	if profileID == 0 {
		return nil
	}
	if Enabled() {
		return SetJSON(ctx, lastAddedKey(profileID), slot, lastAddedTTL)
	}
	lastAddedMu.Lock()
	defer lastAddedMu.Unlock()
	lastAddedLocal[profileID] = localSlot{slot: slot, expiresAt: time.Now().Add(lastAddedTTL)}
	return nil
}

// GetLastAdded reads the slot if it has not expired
func GetLastAdded(ctx context.Context, profileID uint) (*LastAddedSlot, bool, error) {
	if profileID == 0 {
		return nil, false, nil
	}
	if Enabled() {
		var slot LastAddedSlot
		hit, err := GetJSON(ctx, lastAddedKey(profileID), &slot)
		if err != nil || !hit {
			return nil, hit, err
		}
		return &slot, true, nil
	}
	lastAddedMu.Lock()
	defer lastAddedMu.Unlock()
	entry, ok := lastAddedLocal[profileID]
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(lastAddedLocal, profileID)
		return nil, false, nil
	}
	slot := entry.slot
	return &slot, true, nil
}
