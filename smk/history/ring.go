// Package history keeps the most recent submitted shell lines for recall.
package history

// Ring is a fixed-size circular list of lines with a recall cursor.
//
// Cursor 0 is the most recent entry; -1 means the user is not browsing.
// All storage is allocated by New.
type Ring struct {
	lines   [][]byte
	lens    []int
	next    int // slot the next commit writes to
	count   int
	cursor  int
	lineCap int
}

// New returns a ring holding up to size lines of at most lineCap bytes each.
func New(size, lineCap int) *Ring {
	if size < 1 {
		size = 1
	}
	if lineCap < 1 {
		lineCap = 1
	}
	r := &Ring{
		lines:   make([][]byte, size),
		lens:    make([]int, size),
		cursor:  -1,
		lineCap: lineCap,
	}
	for i := range r.lines {
		r.lines[i] = make([]byte, lineCap)
	}
	return r
}

func (r *Ring) Size() int   { return len(r.lines) }
func (r *Ring) Count() int  { return r.count }
func (r *Ring) Cursor() int { return r.cursor }

// slot maps an age (0 = most recent) to a storage index.
func (r *Ring) slot(age int) int {
	n := len(r.lines)
	return (r.next - 1 - age + n) % n
}

func (r *Ring) at(age int) string {
	i := r.slot(age)
	return string(r.lines[i][:r.lens[i]])
}

// Commit appends line unless it is empty or repeats the most recent entry.
// When the ring is full the oldest entry is overwritten. The recall cursor is
// reset in every case.
func (r *Ring) Commit(line string) {
	r.cursor = -1
	if line == "" {
		return
	}
	if len(line) > r.lineCap {
		line = line[:r.lineCap]
	}
	if r.count > 0 && r.at(0) == line {
		return
	}
	r.lens[r.next] = copy(r.lines[r.next], line)
	r.next = (r.next + 1) % len(r.lines)
	if r.count < len(r.lines) {
		r.count++
	}
}

// Older steps one entry back in time. At the oldest entry it keeps returning
// that entry. ok is false only when the ring is empty.
func (r *Ring) Older() (line string, ok bool) {
	if r.count == 0 {
		return "", false
	}
	if r.cursor < r.count-1 {
		r.cursor++
	}
	return r.at(r.cursor), true
}

// Newer steps one entry forward in time. Stepping past the most recent entry
// yields an empty line and leaves browsing mode. ok is false when the ring was
// not being browsed.
func (r *Ring) Newer() (line string, ok bool) {
	switch {
	case r.cursor > 0:
		r.cursor--
		return r.at(r.cursor), true
	case r.cursor == 0:
		r.cursor = -1
		return "", true
	default:
		return "", false
	}
}

// Reset leaves browsing mode without touching the entries.
func (r *Ring) Reset() { r.cursor = -1 }

// Entries returns the stored lines, oldest first.
func (r *Ring) Entries() []string {
	out := make([]string, 0, r.count)
	for age := r.count - 1; age >= 0; age-- {
		out = append(out, r.at(age))
	}
	return out
}
