package staticdash

// outlineTracker maps emitted heading levels (1-based) onto PDF outline
// levels (0-based) while keeping the outline hierarchy contiguous: an entry
// may nest at most one level deeper than the entry before it, so a level-3
// heading directly after a level-1 heading lands at outline depth 1 instead
// of leaving a hole in the tree.
type outlineTracker struct {
	prev    int
	started bool
}

// next returns the outline level for a heading of the given semantic level.
func (t *outlineTracker) next(level int) int {
	want := level - 1
	if want < 0 {
		want = 0
	}
	if !t.started {
		t.started = true
		t.prev = 0
		return 0
	}
	if want > t.prev+1 {
		want = t.prev + 1
	}
	t.prev = want
	return want
}
