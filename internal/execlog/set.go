package execlog

// LogSet is the ordered, immutable collection of logs every comparison
// operates over. Position order is the canonical order in which reports
// present per-log values. Queries against a frozen LogSet are pure and
// need no synchronization.
type LogSet struct {
	stores []*LogStore
}

// NewLogSet aggregates stores preserving their order.
func NewLogSet(stores []*LogStore) *LogSet {
	return &LogSet{stores: append([]*LogStore(nil), stores...)}
}

// Len returns the number of logs.
func (s *LogSet) Len() int { return len(s.stores) }

// Stores returns the logs in canonical order. Callers must not mutate
// the returned stores.
func (s *LogSet) Stores() []*LogStore { return s.stores }

// Names returns the log names in canonical order.
func (s *LogSet) Names() []string {
	names := make([]string, len(s.stores))
	for i, st := range s.stores {
		names[i] = st.Name
	}
	return names
}

// ActionLookup is one log's resolution of an output path. Record is nil
// when the log has no producer for the path.
type ActionLookup struct {
	Log    string
	Record *ActionRecord
}

// Lookup resolves outputPath in every log, in canonical order. Exposed
// for view/json/diff rendering so those commands never re-derive
// comparison logic.
func (s *LogSet) Lookup(outputPath string) []ActionLookup {
	out := make([]ActionLookup, len(s.stores))
	for i, st := range s.stores {
		out[i] = ActionLookup{Log: st.Name, Record: st.Producer(outputPath)}
	}
	return out
}
