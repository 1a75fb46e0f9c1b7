package store

import "fmt"

// List mutation on top of the single-key contract. The store has no
// native splice operation, so both helpers are a plain read-then-write:
// the window between the Get and the Put is not atomic for any backend,
// and two concurrent appends to the same key can both read the same
// prior list and each write back a list missing the other's item.

// Append fetches the list under key (or starts an empty one), pushes
// item onto the end and writes the list back.
func Append(s Store, key string, item any) error {
	list, err := getList(s, key)
	if err != nil {
		return err
	}
	return s.Put(key, append(list, item))
}

// RemoveAt removes the element at index from the list under key,
// preserving the order of the rest, and returns it. An index outside
// [0, length) returns ErrIndexOutOfRange without writing anything.
func RemoveAt(s Store, key string, index int) (any, error) {
	list, err := getList(s, key)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(list) {
		return nil, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, index, len(list))
	}
	removed := list[index]
	list = append(list[:index], list[index+1:]...)
	if err := s.Put(key, list); err != nil {
		return nil, err
	}
	return removed, nil
}

func getList(s Store, key string) ([]any, error) {
	v, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return []any{}, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: key %q does not hold a list", ErrCorrupt, key)
	}
	return list, nil
}
