package logslider

import (
	"sort"
	"strings"
	"sync"

	log "github.com/s00500/env_logger"
)

const statusDegenerateRange = "degenerate-range"

// StatusMessage tells subscribers about a lasting condition of the slider, for example a
// configuration that collapses the curve. A message with Resolved set clears every active status
// whose ID starts with its ID.
type StatusMessage struct {
	ID       string
	Message  string
	Resolved bool
}

// statusCache keeps a list of active status messages so they are only sent once
type statusCache struct {
	mu     sync.RWMutex
	active map[string]*StatusMessage
}

func newStatusCache() *statusCache {
	return &statusCache{active: make(map[string]*StatusMessage)}
}

func (c *statusCache) getActiveStatuses() []*StatusMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()

	statuses := make([]*StatusMessage, 0, len(c.active))
	for _, msg := range c.active {
		statuses = append(statuses, msg)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].ID < statuses[j].ID })
	return statuses
}

// handleStatus records msg and reports whether it changed anything worth distributing.
func (c *statusCache) handleStatus(msg *StatusMessage) bool {
	if msg == nil || msg.ID == "" {
		log.Error("invalid ID for status message")
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if msg.Resolved {
		hasChanged := false
		for key := range c.active {
			if strings.HasPrefix(key, msg.ID) {
				delete(c.active, key)
				hasChanged = true
			}
		}
		return hasChanged // nothing changed, no need to spam subscribers
	}

	if _, exists := c.active[msg.ID]; exists {
		return false
	}
	c.active[msg.ID] = msg
	return true
}
