package avl

// Map is an immutable ordered map. The zero Map is not usable; create one
// with New so the comparison function is bound.
type Map[K, V any] struct {
	cmp  func(a, b K) int
	root *node[K, V]
}

type node[K, V any] struct {
	key    K
	val    V
	left   *node[K, V]
	right  *node[K, V]
	height int8
	size   int
}

// New creates an empty map ordered by cmp, which must return a negative,
// zero, or positive value as a orders before, equal to, or after b.
func New[K, V any](cmp func(a, b K) int) Map[K, V] {
	return Map[K, V]{cmp: cmp}
}

// Len returns the number of entries.
func (m Map[K, V]) Len() int {
	return m.root.count()
}

// IsEmpty reports whether the map has no entries.
func (m Map[K, V]) IsEmpty() bool {
	return m.root == nil
}

// Lookup returns the value stored under k.
func (m Map[K, V]) Lookup(k K) (V, bool) {
	n := m.root
	for n != nil {
		c := m.cmp(k, n.key)
		switch {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n.val, true
		}
	}
	var zero V
	return zero, false
}

// Contains reports whether k is present.
func (m Map[K, V]) Contains(k K) bool {
	_, ok := m.Lookup(k)
	return ok
}

// Add returns a map with k bound to v, replacing any existing binding.
// The receiver is unchanged.
func (m Map[K, V]) Add(k K, v V) Map[K, V] {
	return Map[K, V]{cmp: m.cmp, root: m.add(m.root, k, v)}
}

// Remove returns a map without k. Removing an absent key returns an
// equivalent map.
func (m Map[K, V]) Remove(k K) Map[K, V] {
	root, ok := m.remove(m.root, k)
	if !ok {
		return m
	}
	return Map[K, V]{cmp: m.cmp, root: root}
}

// Ascend calls fn for each entry in key order until fn returns false.
func (m Map[K, V]) Ascend(fn func(k K, v V) bool) {
	m.root.ascend(fn)
}

// Keys returns all keys in order.
func (m Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Len())
	m.Ascend(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

func (n *node[K, V]) count() int {
	if n == nil {
		return 0
	}
	return n.size
}

func (n *node[K, V]) tall() int8 {
	if n == nil {
		return 0
	}
	return n.height
}

func (n *node[K, V]) ascend(fn func(k K, v V) bool) bool {
	if n == nil {
		return true
	}
	if !n.left.ascend(fn) {
		return false
	}
	if !fn(n.key, n.val) {
		return false
	}
	return n.right.ascend(fn)
}

func mk[K, V any](k K, v V, left, right *node[K, V]) *node[K, V] {
	h := left.tall()
	if r := right.tall(); r > h {
		h = r
	}
	return &node[K, V]{
		key:    k,
		val:    v,
		left:   left,
		right:  right,
		height: h + 1,
		size:   left.count() + right.count() + 1,
	}
}

// rebalance builds a balanced node from k, v and subtrees whose heights
// differ by at most two, applying the standard AVL rotations with path
// copies only.
func rebalance[K, V any](k K, v V, left, right *node[K, V]) *node[K, V] {
	switch d := left.tall() - right.tall(); {
	case d > 1:
		if left.left.tall() >= left.right.tall() {
			return mk(left.key, left.val, left.left, mk(k, v, left.right, right))
		}
		lr := left.right
		return mk(lr.key, lr.val,
			mk(left.key, left.val, left.left, lr.left),
			mk(k, v, lr.right, right))
	case d < -1:
		if right.right.tall() >= right.left.tall() {
			return mk(right.key, right.val, mk(k, v, left, right.left), right.right)
		}
		rl := right.left
		return mk(rl.key, rl.val,
			mk(k, v, left, rl.left),
			mk(right.key, right.val, rl.right, right.right))
	}
	return mk(k, v, left, right)
}

func (m Map[K, V]) add(n *node[K, V], k K, v V) *node[K, V] {
	if n == nil {
		return mk[K, V](k, v, nil, nil)
	}
	switch c := m.cmp(k, n.key); {
	case c < 0:
		return rebalance(n.key, n.val, m.add(n.left, k, v), n.right)
	case c > 0:
		return rebalance(n.key, n.val, n.left, m.add(n.right, k, v))
	}
	return mk(k, v, n.left, n.right)
}

func (m Map[K, V]) remove(n *node[K, V], k K) (*node[K, V], bool) {
	if n == nil {
		return nil, false
	}
	switch c := m.cmp(k, n.key); {
	case c < 0:
		left, ok := m.remove(n.left, k)
		if !ok {
			return n, false
		}
		return rebalance(n.key, n.val, left, n.right), true
	case c > 0:
		right, ok := m.remove(n.right, k)
		if !ok {
			return n, false
		}
		return rebalance(n.key, n.val, n.left, right), true
	}
	if n.left == nil {
		return n.right, true
	}
	if n.right == nil {
		return n.left, true
	}
	mink, minv, right := popMin(n.right)
	return rebalance(mink, minv, n.left, right), true
}

// popMin removes the least entry of a non-empty subtree and returns it with
// the rebalanced remainder.
func popMin[K, V any](n *node[K, V]) (K, V, *node[K, V]) {
	if n.left == nil {
		return n.key, n.val, n.right
	}
	k, v, left := popMin(n.left)
	return k, v, rebalance(n.key, n.val, left, n.right)
}
