package prox

import "sort"

// QueryCache is the set of object IDs currently matching one query. One cache
// belongs to exactly one query inside one handler; it is not safe for
// concurrent use.
type QueryCache struct {
	objects map[ObjectID]struct{}
}

func NewQueryCache() *QueryCache {
	return &QueryCache{objects: make(map[ObjectID]struct{})}
}

// Add inserts an id. Adding an id twice is a programmer error.
func (c *QueryCache) Add(id ObjectID) {
	if _, ok := c.objects[id]; ok {
		panic("prox: id already in query cache")
	}
	c.objects[id] = struct{}{}
}

func (c *QueryCache) Contains(id ObjectID) bool {
	_, ok := c.objects[id]
	return ok
}

// Remove deletes an id. Removing an absent id is a programmer error.
func (c *QueryCache) Remove(id ObjectID) {
	if _, ok := c.objects[id]; !ok {
		panic("prox: id not in query cache")
	}
	delete(c.objects, id)
}

func (c *QueryCache) Len() int {
	return len(c.objects)
}

// IDs returns the cached ids in ascending byte order.
func (c *QueryCache) IDs() []ObjectID {
	return sortedIDs(c.objects)
}

// Exchange replaces the cache contents with newCache and, when events is
// non-nil, appends the delta: one Added per id only in newCache, then one
// Removed per id only in the old contents, each group in ascending id order.
// The cache takes ownership of newCache's contents; the caller must discard
// newCache afterwards.
func (c *QueryCache) Exchange(newCache *QueryCache, events *[]QueryEvent) {
	if events != nil {
		for _, id := range diffIDs(newCache.objects, c.objects) {
			*events = append(*events, QueryEvent{Type: Added, ID: id})
		}
		for _, id := range diffIDs(c.objects, newCache.objects) {
			*events = append(*events, QueryEvent{Type: Removed, ID: id})
		}
	}
	c.objects = newCache.objects
}

// diffIDs returns the ids in a but not in b, ascending.
func diffIDs(a, b map[ObjectID]struct{}) []ObjectID {
	diff := make([]ObjectID, 0)
	for id := range a {
		if _, ok := b[id]; !ok {
			diff = append(diff, id)
		}
	}
	sort.Slice(diff, func(i, j int) bool { return idLess(diff[i], diff[j]) })
	return diff
}

func sortedIDs(set map[ObjectID]struct{}) []ObjectID {
	ids := make([]ObjectID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return idLess(ids[i], ids[j]) })
	return ids
}
