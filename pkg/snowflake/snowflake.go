// Package snowflake provides process-wide unique ID generation.
package snowflake

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	mu   sync.RWMutex
	node *snowflake.Node
)

// Init initializes the snowflake node. Node IDs must be in [0, 1023].
// Safe to call more than once; the last successful call wins.
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return fmt.Errorf("snowflake init: %w", err)
	}

	mu.Lock()
	node = n
	mu.Unlock()
	return nil
}

// NextID returns the next unique ID. Init must have been called first.
func NextID() int64 {
	mu.RLock()
	n := node
	mu.RUnlock()

	if n == nil {
		panic("snowflake: Init not called")
	}
	return n.Generate().Int64()
}
