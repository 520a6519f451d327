package compiler

import "sort"

// scopeEntry is one (type, name) pair in a Scope's append-only symbol list.
// The list is ordered so that shadowing can be resolved by searching
// backward from the end: a name declared later in the same scope shadows
// an earlier declaration of the same name.
type scopeEntry struct {
	typ  TypeDescriptor
	name string
}

// Scope is one node in the lexical scope chain: the program scope, a
// function scope, or a compound-statement scope nested inside one.
type Scope struct {
	parent    *Scope
	currentFn *TypeDescriptor // nil at program scope
	entries   []scopeEntry
	locations map[string]int
	isLocal   bool
	frame     *int // allocation counter: shared by every scope within the same frame

	live      map[int]bool // virtual registers currently allocated in this scope
	nextLabel *int         // shared by reference; only the root scope's pointer is real
}

// newProgramScope creates the outermost scope. Globals declared in it are
// allocated at increasing non-negative data-segment offsets starting at 1.
func newProgramScope() *Scope {
	label := 0
	frame := 1 // offset 0 is reserved; globals start at 1
	return &Scope{
		locations: make(map[string]int),
		isLocal:   false,
		frame:     &frame,
		live:      make(map[int]bool),
		nextLabel: &label,
	}
}

// newChildScope opens a nested scope. fn is non-nil only when entering a
// function body, in which case a fresh frame counter is started (locals
// begin at FP+1). A nested compound statement inside the same function
// shares its enclosing function scope's frame counter, so blocks never
// reuse each other's offsets.
func (s *Scope) newChildScope(fn *TypeDescriptor, isLocal bool) *Scope {
	currentFn := s.currentFn
	frame := s.frame
	if fn != nil {
		currentFn = fn
		f := 1
		frame = &f
	}
	return &Scope{
		parent:    s,
		currentFn: currentFn,
		locations: make(map[string]int),
		isLocal:   isLocal,
		frame:     frame,
		live:      make(map[int]bool),
		nextLabel: s.nextLabel,
	}
}

// allocWords reserves n consecutive words in this scope's frame and returns
// the location of the first one. For a local scope this is an offset from
// FP; for the program scope it is an absolute data-segment offset.
func (s *Scope) allocWords(n int) int {
	loc := *s.frame
	*s.frame += n
	return loc
}

// lookupType searches the local ordered entries backward (most recent
// shadowing declaration first), then recurses into parent.
func (s *Scope) lookupType(name string) (TypeDescriptor, bool) {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].name == name {
			return s.entries[i].typ, true
		}
	}
	if s.parent != nil {
		return s.parent.lookupType(name)
	}
	return TypeDescriptor{}, false
}

// lookupLocation reports the storage location of name and whether it is
// frame-relative (declared in a local scope reached without crossing a
// function boundary into an enclosing one) or an absolute data-segment
// offset.
func (s *Scope) lookupLocation(name string) (loc int, isLocal bool, ok bool) {
	if l, found := s.locations[name]; found {
		return l, s.isLocal, true
	}
	if s.parent != nil {
		return s.parent.lookupLocation(name)
	}
	return 0, false, false
}

// declareSymbol appends a new entry to the ordered list and records its
// storage location. Redeclaring a name already present in this same scope
// is accepted: the new entry is appended and shadows the earlier one via
// the backward search in lookupType, and its location overwrites the
// earlier one in the name→location map read by lookupLocation.
func (s *Scope) declareSymbol(typ TypeDescriptor, name string, location int) {
	s.entries = append(s.entries, scopeEntry{typ: typ, name: name})
	s.locations[name] = location
}

// allocRegister returns the smallest non-negative virtual-register id not
// currently live in this scope.
func (s *Scope) allocRegister() int {
	for id := 0; ; id++ {
		if !s.live[id] {
			s.live[id] = true
			return id
		}
	}
}

// freeRegister releases id so it can be reused by a later allocRegister call.
func (s *Scope) freeRegister(id int) {
	delete(s.live, id)
}

// liveIDs returns the currently live virtual-register ids in ascending
// order. The call-site spill/reload protocol (spec's calling convention)
// walks this list to save and restore the caller's state across a call.
func (s *Scope) liveIDs() []int {
	ids := make([]int, 0, len(s.live))
	for id := range s.live {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// allocLabel returns a fresh, program-wide unique label id. Allocation is
// always delegated to the root scope's counter.
func (s *Scope) allocLabel() int {
	*s.nextLabel++
	return *s.nextLabel - 1
}
