package docsync

import "sync"

// checksumCache maps a source path to the checksum of the content last
// written for it. It lives as long as the Service.
type checksumCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newChecksumCache() *checksumCache {
	return &checksumCache{entries: make(map[string]string)}
}

func (c *checksumCache) get(source string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sum, ok := c.entries[source]
	return sum, ok
}

func (c *checksumCache) set(source, sum string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[source] = sum
}

func (c *checksumCache) remove(source string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, source)
}

func (c *checksumCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
