package pathutil

// Ancestors walks parent links upwards from node and returns every ancestor,
// nearest first. node itself is not included; the root is the last element.
// The result is empty, not nil, when node has no parent.
func Ancestors[ID comparable](node ID, parent func(ID) (ID, bool)) []ID {
	path := []ID{}
	for {
		previous, ok := parent(node)
		if !ok {
			return path
		}
		path = append(path, previous)
		node = previous
	}
}

// Reverse reverses s in place and returns it.
func Reverse[T any](s []T) []T {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	return s
}
