// Package keyed maps an ordered, keyed sequence of items onto persistent
// rendered nodes.
//
// A List keeps one Entry per key: the item, its rendered node and the scope
// that owns the row's computations. When the sequence changes the list
// disposes entries whose key disappeared, renders entries for new keys and
// then restores order by moving only the surviving nodes that are not part
// of a longest increasing subsequence of their previous positions.
// Swapping two rows of a thousand moves exactly two nodes; surviving rows
// are never re-rendered.
//
// Keys must be unique within one sequence. When they are not, the last
// occurrence wins: its item and position are used and the earlier ones are
// skipped with a warning.
package keyed
