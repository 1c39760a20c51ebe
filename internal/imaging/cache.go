package imaging

import "sync"

// ReadFunc supplies the raw encoded bytes for an image identifier. The
// identifier scheme (file name, URL, database key) is the caller's
// business; the cache only forwards it.
type ReadFunc func(id string) ([]byte, error)

// BufferCache caches decoded Buffers by image identifier so that
// renavigating to an image does not re-read and re-decode it.
//
// Cached buffers remain in memory until explicitly removed via Evict() or
// Clear(). For long sessions over large galleries, consider periodic
// cleanup to bound memory growth.
type BufferCache struct {
	mu      sync.RWMutex
	buffers map[string]*Buffer
}

// NewBufferCache creates an empty cache ready for use.
func NewBufferCache() *BufferCache {
	return &BufferCache{
		buffers: make(map[string]*Buffer),
	}
}

// Load returns the cached Buffer for id, or reads and decodes it via read
// on a miss. Failed reads and decodes are not cached.
func (c *BufferCache) Load(id string, read ReadFunc) (*Buffer, error) {
	c.mu.RLock()
	if buf, ok := c.buffers[id]; ok {
		c.mu.RUnlock()
		return buf, nil
	}
	c.mu.RUnlock()

	data, err := read(id)
	if err != nil {
		return nil, err
	}

	buf, err := Decode(data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.buffers[id] = buf
	c.mu.Unlock()

	return buf, nil
}

// Evict removes the entry for id, if present.
func (c *BufferCache) Evict(id string) {
	c.mu.Lock()
	delete(c.buffers, id)
	c.mu.Unlock()
}

// Clear removes all cached buffers, freeing the associated memory.
func (c *BufferCache) Clear() {
	c.mu.Lock()
	c.buffers = make(map[string]*Buffer)
	c.mu.Unlock()
}

// Len returns the number of cached buffers.
func (c *BufferCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.buffers)
}
