package lint

import "sort"

// FixBuffer is a mutable copy of the full output, addressed by absolute
// input line index. It starts byte-identical to the input and is only
// touched when a surviving diagnostic carries a fix.
type FixBuffer struct {
	lines []string
	dirty map[int]bool
}

func NewFixBuffer(lines []string) *FixBuffer {
	buf := make([]string, len(lines))
	copy(buf, lines)
	return &FixBuffer{lines: buf, dirty: make(map[int]bool)}
}

// Set overwrites the slot at index. Later writers win; callers apply fixes
// in rule-registration order so the policy is deterministic.
func (b *FixBuffer) Set(index int, text string) {
	if index < 0 || index >= len(b.lines) {
		return
	}
	b.lines[index] = text
	b.dirty[index] = true
}

// Dirty reports whether any fix was applied.
func (b *FixBuffer) Dirty() bool {
	return len(b.dirty) > 0
}

// Lines returns the current buffer contents.
func (b *FixBuffer) Lines() []string {
	return b.lines
}

// Changed returns the indexes of all fixed slots in ascending order.
func (b *FixBuffer) Changed() []int {
	idx := make([]int, 0, len(b.dirty))
	for i := range b.dirty {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}
