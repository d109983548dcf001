// ## Overview
// Package trie implements a binary trie over 32-bit keys.
// Every node is either a leaf holding exactly one payload or a branch that routes
// to up to two children by the value of one key bit, starting at bit 31 at the root.
// Branches are only grown where two keys collide, so a leaf sits as deep as the number
// of leading bits its key shares with the key it last collided with, never deeper than 32.
//
// Search is an approximate nearest-leaf lookup: it follows the query bits, falls back to
// the sibling subtree when the preferred side is empty, and returns the first leaf reached.
//
// ## Example usage:
//
//	t := trie.New[entry.Record]()
//	if err := t.Insert(rec); err != nil {
//	    // errors.Is(err, trie.ErrDuplicateKey)
//	}
//	if found, ok := t.Search(key); ok && found.Key() == key {
//	    fmt.Println("exact match:", found)
//	}
//	fmt.Println("height:", t.Height(), "leaves:", t.LeafCount(), "branches:", t.BranchCount())
//	t.Destroy()
//
// Payloads are generic: any type with a Key() uint32 and a Copy() method can be stored.
package trie
