// Package buffer holds the text being edited as raw bytes plus a per-byte width label.
// A label records the length of the run its byte was inserted with, so multi-byte
// glyphs and tab expansions are deleted and stepped over as one unit.
package buffer

// TabWidth is the number of spaces one Tab inserts
const TabWidth = 4

// Buffer is the editable text of one session, not safe for concurrent use
type Buffer struct {
	text   []byte
	labels []uint8
}

// New creates an empty buffer
func New() *Buffer {
	return &Buffer{}
}

// NewString creates a buffer pre-filled with single-byte units
func NewString(s string) *Buffer {
	b := &Buffer{
		text:   []byte(s),
		labels: make([]uint8, len(s)),
	}
	for i := range b.labels {
		b.labels[i] = 1
	}
	return b
}

// --- Value access ---

// Len returns the number of entries (raw bytes)
func (b *Buffer) Len() int {
	return len(b.text)
}

// Bytes returns the text; the slice is valid until the next mutation
func (b *Buffer) Bytes() []byte {
	return b.text
}

// String returns a copy of the text
func (b *Buffer) String() string {
	return string(b.text)
}

// Label returns the width label of entry i, 0 if out of range
func (b *Buffer) Label(i int) int {
	if i < 0 || i >= len(b.labels) {
		return 0
	}
	return int(b.labels[i])
}

// Reset empties the buffer
func (b *Buffer) Reset() {
	b.text = b.text[:0]
	b.labels = b.labels[:0]
}

// --- Insertion ---

// InsertAt inserts run as one unit before entry idx and returns the cursor after it
func (b *Buffer) InsertAt(idx int, run []byte) int {
	idx = b.clamp(idx)
	n := len(run)
	if n == 0 {
		return idx
	}
	label := uint8(min(n, 255))

	b.text = append(b.text, run...)
	copy(b.text[idx+n:], b.text[idx:len(b.text)-n])
	copy(b.text[idx:], run)

	b.labels = append(b.labels, make([]uint8, n)...)
	copy(b.labels[idx+n:], b.labels[idx:len(b.labels)-n])
	for i := idx; i < idx+n; i++ {
		b.labels[i] = label
	}
	return idx + n
}

// InsertTab inserts width spaces as one unit; width <= 0 uses TabWidth
func (b *Buffer) InsertTab(idx, width int) int {
	if width <= 0 {
		width = TabWidth
	}
	spaces := make([]byte, width)
	for i := range spaces {
		spaces[i] = ' '
	}
	return b.InsertAt(idx, spaces)
}

// --- Deletion ---

// DeleteBefore removes the unit ending at idx and returns the new cursor
func (b *Buffer) DeleteBefore(idx int) int {
	idx = b.clamp(idx)
	start := b.groupBefore(idx)
	if start == idx {
		return idx
	}
	b.text = append(b.text[:start], b.text[idx:]...)
	b.labels = append(b.labels[:start], b.labels[idx:]...)
	return start
}

// --- Navigation ---

// Left steps the cursor back over one unit
func (b *Buffer) Left(idx int) int {
	return b.groupBefore(b.clamp(idx))
}

// Right steps the cursor forward over one unit
func (b *Buffer) Right(idx int) int {
	idx = b.clamp(idx)
	if idx >= len(b.labels) {
		return idx
	}
	label := b.labels[idx]
	end := idx
	for steps := 0; steps < int(label) && end < len(b.labels) && b.labels[end] == label; steps++ {
		end++
	}
	return end
}

// Home returns the first cursor position
func (b *Buffer) Home() int {
	return 0
}

// End returns the last cursor position
func (b *Buffer) End() int {
	return len(b.text)
}

// groupBefore returns the start of the unit ending at idx: up to label entries sharing that label
func (b *Buffer) groupBefore(idx int) int {
	if idx == 0 {
		return 0
	}
	label := b.labels[idx-1]
	start := idx
	for steps := 0; steps < int(label) && start > 0 && b.labels[start-1] == label; steps++ {
		start--
	}
	return start
}

func (b *Buffer) clamp(idx int) int {
	if idx < 0 {
		return 0
	}
	if idx > len(b.text) {
		return len(b.text)
	}
	return idx
}
