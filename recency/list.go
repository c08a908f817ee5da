package recency

// node is an element of the intrusive recency list.
// The list is circular around a sentinel: sentinel.next is the most recently
// used node, sentinel.prev the least recently used one.
type node[K comparable, V any] struct {
	next, prev *node[K, V]
	key        K
	value      V
}

func (n *node[K, V]) init() *node[K, V] {
	n.next = n
	n.prev = n
	return n
}

// insertAfter links n directly after at.
func (n *node[K, V]) insertAfter(at *node[K, V]) {
	n.prev = at
	n.next = at.next
	// Cannot use multiple assignment; the right side reads at.next.
	at.next.prev = n
	at.next = n
}

// unlink detaches n from its list and clears its links so a stale
// pointer cannot walk the list.
func (n *node[K, V]) unlink() {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.next = nil
	n.prev = nil
}
