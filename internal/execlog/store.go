package execlog

import "sort"

// LogStore holds the ordered actions of one parsed log plus the derived
// output index. Immutable after construction; safe for concurrent reads.
type LogStore struct {
	Name    string
	Actions []ActionRecord

	// index maps every listed and actual output path to the position of
	// its producing action in Actions.
	index map[string]int

	// AmbiguousOutputs lists output paths claimed by more than one
	// action in this log, sorted. Resolution is last-wins; the ambiguity
	// is surfaced so the operator can be warned rather than silently
	// served an arbitrary producer.
	AmbiguousOutputs []string
}

// NewLogStore builds the output index in one linear pass over actions in
// record order, so the last-wins duplicate policy is deterministic under
// any load concurrency.
func NewLogStore(name string, actions []ActionRecord) *LogStore {
	s := &LogStore{
		Name:    name,
		Actions: actions,
		index:   make(map[string]int),
	}
	dup := make(map[string]struct{})
	claim := func(path string, i int) {
		if prev, ok := s.index[path]; ok && prev != i {
			dup[path] = struct{}{}
		}
		s.index[path] = i
	}
	for i, a := range actions {
		for _, out := range a.ListedOutputs {
			claim(out, i)
		}
		for out := range a.ActualOutputs {
			claim(out, i)
		}
	}
	s.AmbiguousOutputs = make([]string, 0, len(dup))
	for p := range dup {
		s.AmbiguousOutputs = append(s.AmbiguousOutputs, p)
	}
	sort.Strings(s.AmbiguousOutputs)
	return s
}

// Producer resolves the action that produced outputPath, or nil when no
// action in this log claims it.
func (s *LogStore) Producer(outputPath string) *ActionRecord {
	i, ok := s.index[outputPath]
	if !ok {
		return nil
	}
	return &s.Actions[i]
}

// OutputPaths returns every indexed output path, sorted.
func (s *LogStore) OutputPaths() []string {
	out := make([]string, 0, len(s.index))
	for p := range s.index {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
