package trie

import (
	"errors"
	"fmt"
	"io"
)

// is an alias for int used to define child positions in a trie node.
type ChildPos = int

// Constants representing possible child positions in the trie.
const ZERO ChildPos = 0
const ONE ChildPos = 1

// TopBit is the bit index examined at the root: the most significant bit of a 32-bit key.
const TopBit = 31

// MaxHeight is the deepest a leaf can sit: one branch per key bit.
const MaxHeight = TopBit + 1

// ErrDuplicateKey is returned by Insert when a payload with the same key is already stored.
var ErrDuplicateKey = errors.New("duplicate key")

// Payload is what a trie stores in its leaves. It is routed by Key and
// duplicated with Copy when its leaf is split by a colliding insert.
type Payload[T any] interface {
	Key() uint32
	Copy() T
}

// node is either a leaf (holds a payload, no children) or a branch (no payload, up to two children).
type node[T Payload[T]] struct {
	Children [2]*node[T]
	payload  T
	leaf     bool
}

func newLeaf[T Payload[T]](p T) *node[T] {
	return &node[T]{payload: p, leaf: true}
}

func newBranch[T Payload[T]]() *node[T] {
	return &node[T]{}
}

// turns a leaf into an empty branch, dropping its payload.
func (n *node[T]) makeItABranch() {
	var zero T
	n.payload = zero
	n.leaf = false
}

// Stats is a snapshot of the derived trie statistics.
type Stats struct {
	Height   int // branch levels on the longest root-to-leaf path
	Leaves   int
	Branches int
}

// Trie is a binary trie over 32-bit keys. The zero value is not usable, create one with New.
//
// A Trie is not safe for concurrent mutation. Concurrent Search, Walk and stats
// calls are fine as long as no Insert or Destroy runs at the same time.
type Trie[T Payload[T]] struct {
	root      *node[T]
	stats     Stats
	onRelease func(T)
}

// Option configures a Trie created by New.
type Option[T Payload[T]] func(*Trie[T]) *Trie[T]

// WithReleaseHook registers a function called once for every payload the trie lets go of:
// the original payload of a split leaf and every leaf payload on Destroy.
func WithReleaseHook[T Payload[T]](hook func(T)) Option[T] {
	return func(t *Trie[T]) *Trie[T] {
		t.onRelease = hook
		return t
	}
}

// New creates an empty trie.
func New[T Payload[T]](opts ...Option[T]) *Trie[T] {
	t := &Trie[T]{}
	for _, opt := range opts {
		t = opt(t)
	}
	return t
}

func (t *Trie[T]) release(p T) {
	if t.onRelease != nil {
		t.onRelease(p)
	}
}

// IsEmpty reports whether the root slot is absent.
func (t *Trie[T]) IsEmpty() bool {
	return t.root == nil
}

// Insert stores p keyed by p.Key(), walking from bit 31 down.
// A leaf met on the way is split until both keys sit on their own leaves.
// Inserting a key that is already present returns ErrDuplicateKey and leaves the trie unchanged.
func (t *Trie[T]) Insert(p T) error {
	key := p.Key()
	slot := &t.root

	for index := TopBit; ; index-- {
		current := *slot
		if current == nil {
			*slot = newLeaf(p)
			return nil
		}

		if current.leaf {
			if current.payload.Key() == key {
				return fmt.Errorf("%w: %d", ErrDuplicateKey, key)
			}
			old := current.payload.Copy()
			t.release(current.payload)
			current.makeItABranch()
			// the leaf became a branch in place, so the pair is placed from the same index
			placePair(current, p, old, index)
			return nil
		}

		if index < 0 {
			panic(fmt.Sprintf("[BUG] Insert: branch below bit 0 while inserting key %d", key))
		}
		slot = &current.Children[bitAt(key, index)]
	}
}

// placePair hangs two payloads with distinct keys under an empty branch.
// While their bits agree it grows a single branch on the shared side and moves one bit down;
// at the first differing bit both become sibling leaves.
func placePair[T Payload[T]](branch *node[T], a, b T, index int) {
	for ; index >= 0; index-- {
		aBit, bBit := bitAt(a.Key(), index), bitAt(b.Key(), index)
		if aBit != bBit {
			branch.Children[aBit] = newLeaf(a)
			branch.Children[bBit] = newLeaf(b)
			return
		}
		next := newBranch[T]()
		branch.Children[aBit] = next
		branch = next
	}
	panic(fmt.Sprintf("[BUG] placePair: keys %d and %d share every bit", a.Key(), b.Key()))
}

// Search walks the trie guided by the bits of key and returns the first leaf it reaches.
// At every branch the child matching the key's bit is tried first and its sibling second,
// so any non-empty trie yields a payload. The payload's key is not guaranteed to equal key:
// callers that need an exact match must compare it themselves.
// The boolean is false only for an empty trie.
func (t *Trie[T]) Search(key uint32) (T, bool) {
	return search(t.root, key, TopBit)
}

func search[T Payload[T]](n *node[T], key uint32, index int) (T, bool) {
	if n == nil {
		var zero T
		return zero, false
	}
	if n.leaf {
		return n.payload, true
	}

	preferred := bitAt(key, index)
	if found, ok := search(n.Children[preferred], key, index-1); ok {
		return found, true
	}
	return search(n.Children[preferred^1], key, index-1)
}

// Walk calls fn for every leaf payload in order (left subtree, leaf, right subtree).
// Returning false from fn stops the walk.
func (t *Trie[T]) Walk(fn func(T) bool) {
	walk(t.root, fn)
}

func walk[T Payload[T]](n *node[T], fn func(T) bool) bool {
	if n == nil {
		return true
	}
	if !walk(n.Children[ZERO], fn) {
		return false
	}
	if n.leaf && !fn(n.payload) {
		return false
	}
	return walk(n.Children[ONE], fn)
}

// Leaves returns every stored payload in trie order.
func (t *Trie[T]) Leaves() []T {
	leaves := []T{}
	t.Walk(func(p T) bool {
		leaves = append(leaves, p)
		return true
	})
	return leaves
}

// Render writes one line per leaf, in trie order, using format to print each payload.
func (t *Trie[T]) Render(w io.Writer, format func(T) string) error {
	var err error
	t.Walk(func(p T) bool {
		_, err = fmt.Fprintln(w, format(p))
		return err == nil
	})
	return err
}

// Destroy releases every node and every leaf payload exactly once and leaves the trie empty.
// The traversal uses an explicit stack, so pathological depths cannot overflow the goroutine stack.
func (t *Trie[T]) Destroy() {
	if t.root == nil {
		return
	}
	stack := []*node[T]{t.root}
	t.root = nil

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for pos, child := range n.Children {
			if child != nil {
				stack = append(stack, child)
				n.Children[pos] = nil
			}
		}
		if n.leaf {
			t.release(n.payload)
			n.makeItABranch()
		}
	}
	t.stats = Stats{}
}

// returns bit number index (0 = least significant) of key as a child position.
func bitAt(key uint32, index int) ChildPos {
	return ChildPos((key >> uint(index)) & 1)
}
