package facts

import "strings"

// Builder accumulates a facts tree. Customization callbacks passed to Mock
// receive the builder after the fixture and descriptor are applied.
type Builder struct {
	data map[string]any
}

// NewBuilder starts from a deep copy of base
func NewBuilder(base map[string]any) *Builder {
	data := deepCopyMap(base)
	if data == nil {
		data = make(map[string]any)
	}
	return &Builder{data: data}
}

// Set assigns value at a dotted path, creating intermediate nodes and
// replacing scalars that stand in the way.
func (b *Builder) Set(path string, value any) *Builder {
	parts := strings.Split(path, ".")
	node := b.data
	for _, part := range parts[:len(parts)-1] {
		next, ok := asMap(node[part])
		if !ok {
			next = make(map[string]any)
			node[part] = next
		}
		node = next
	}
	node[parts[len(parts)-1]] = deepCopyValue(value)
	return b
}

// Get reads the value at a dotted path
func (b *Builder) Get(path string) (any, bool) {
	return lookup(b.data, path)
}

// Delete removes the value at a dotted path if present
func (b *Builder) Delete(path string) *Builder {
	parts := strings.Split(path, ".")
	node := b.data
	for _, part := range parts[:len(parts)-1] {
		next, ok := asMap(node[part])
		if !ok {
			return b
		}
		node = next
	}
	delete(node, parts[len(parts)-1])
	return b
}

// Merge deep-merges other into the tree; values in other win
func (b *Builder) Merge(other map[string]any) *Builder {
	mergeInto(b.data, other)
	return b
}

// Build returns a snapshot of the tree; later edits to the builder do not
// leak into it.
func (b *Builder) Build() Mash {
	return Mash(deepCopyMap(b.data))
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		srcMap, srcIsMap := asMap(v)
		dstMap, dstIsMap := asMap(dst[k])
		if srcIsMap && dstIsMap {
			mergeInto(dstMap, srcMap)
			continue
		}
		dst[k] = deepCopyValue(v)
	}
}
