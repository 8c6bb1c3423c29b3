package cache

import "time"

// slot is a stable handle into the entry arena. The index stores slots
// rather than pointers, and prev/next links are slots too.
type slot int

const nilSlot slot = -1

// entry is one live key. We keep the key here because eviction starts from
// list positions and has to find its way back to the index.
type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time

	prev slot
	next slot
}

// recencyList is a doubly linked list threaded through an arena of entries.
// Head is the most recently used entry, tail the least recently used.
// Released slots go on a free list and are reused by the next alloc.
type recencyList[K comparable, V any] struct {
	slots []entry[K, V]
	free  []slot
	head  slot
	tail  slot
	n     int
}

func newRecencyList[K comparable, V any](sizeHint int) recencyList[K, V] {
	return recencyList[K, V]{
		slots: make([]entry[K, V], 0, sizeHint),
		head:  nilSlot,
		tail:  nilSlot,
	}
}

func (l *recencyList[K, V]) count() int { return l.n }

func (l *recencyList[K, V]) at(s slot) *entry[K, V] { return &l.slots[s] }

// alloc stores a detached entry in the arena and returns its slot.
func (l *recencyList[K, V]) alloc(key K, value V, expiresAt time.Time) slot {
	e := entry[K, V]{
		key:       key,
		value:     value,
		expiresAt: expiresAt,
		prev:      nilSlot,
		next:      nilSlot,
	}
	if n := len(l.free); n > 0 {
		s := l.free[n-1]
		l.free = l.free[:n-1]
		l.slots[s] = e
		return s
	}
	l.slots = append(l.slots, e)
	return slot(len(l.slots) - 1)
}

func (l *recencyList[K, V]) pushFront(s slot) {
	e := &l.slots[s]
	e.prev = nilSlot
	e.next = l.head
	if l.head != nilSlot {
		l.slots[l.head].prev = s
	}
	l.head = s
	if l.tail == nilSlot {
		l.tail = s
	}
	l.n++
}

func (l *recencyList[K, V]) unlink(s slot) {
	e := &l.slots[s]
	if e.prev != nilSlot {
		l.slots[e.prev].next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nilSlot {
		l.slots[e.next].prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.prev, e.next = nilSlot, nilSlot
	l.n--
}

func (l *recencyList[K, V]) moveToFront(s slot) {
	if l.head == s {
		return
	}
	l.unlink(s)
	l.pushFront(s)
}

// remove unlinks s, returns its slot to the free list and reports the key it
// held. The slot is zeroed so the arena does not pin the old key and value.
func (l *recencyList[K, V]) remove(s slot) K {
	l.unlink(s)
	key := l.slots[s].key
	l.slots[s] = entry[K, V]{prev: nilSlot, next: nilSlot}
	l.free = append(l.free, s)
	return key
}

func (l *recencyList[K, V]) reset() {
	clear(l.slots)
	l.slots = l.slots[:0]
	l.free = l.free[:0]
	l.head = nilSlot
	l.tail = nilSlot
	l.n = 0
}

// keys returns keys from head to tail.
func (l *recencyList[K, V]) keys() []K {
	out := make([]K, 0, l.n)
	for s := l.head; s != nilSlot; s = l.slots[s].next {
		out = append(out, l.slots[s].key)
	}
	return out
}
