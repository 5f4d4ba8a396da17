package fetch

import (
	"container/list"
	"sync"
	"time"
)

// lruCache is a thread-safe LRU of resolved bodies with a per-entry TTL.
type lruCache struct {
	size      int
	ttl       time.Duration
	now       func() time.Time
	evictList *list.List
	items     map[string]*list.Element
	mu        sync.Mutex
}

type entry struct {
	key       string
	body      []byte
	fetchedAt time.Time
}

func newLRUCache(size int, ttl time.Duration, now func() time.Time) *lruCache {
	if size <= 0 {
		size = 1
	}
	return &lruCache{
		size:      size,
		ttl:       ttl,
		now:       now,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
	}
}

// get returns a live entry and marks it most recently used. Expired
// entries are dropped on access.
func (c *lruCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.items[key]
	if !ok {
		return nil, false
	}
	ent := node.Value.(*entry)
	if c.ttl > 0 && c.now().Sub(ent.fetchedAt) > c.ttl {
		c.evictList.Remove(node)
		delete(c.items, key)
		return nil, false
	}
	c.evictList.MoveToFront(node)
	return ent.body, true
}

func (c *lruCache) put(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.items[key]; ok {
		c.evictList.MoveToFront(node)
		ent := node.Value.(*entry)
		ent.body = body
		ent.fetchedAt = c.now()
		return
	}

	node := c.evictList.PushFront(&entry{key: key, body: body, fetchedAt: c.now()})
	c.items[key] = node

	if c.evictList.Len() > c.size {
		c.removeOldest()
	}
}

func (c *lruCache) removeOldest() {
	node := c.evictList.Back()
	if node != nil {
		c.evictList.Remove(node)
		delete(c.items, node.Value.(*entry).key)
	}
}

func (c *lruCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.evictList.Init()
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.evictList.Len()
}
