package execlog

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
)

// Warning is a non-fatal diagnostic raised during loading or filtering.
type Warning struct {
	Stage   string
	Log     string
	Message string
}

// SortWarnings orders warnings by (stage, log, message) deterministically.
func SortWarnings(ws []Warning) {
	sort.Slice(ws, func(i, j int) bool {
		wi, wj := ws[i], ws[j]
		if wi.Stage != wj.Stage {
			return wi.Stage < wj.Stage
		}
		if wi.Log != wj.Log {
			return wi.Log < wj.Log
		}
		return wi.Message < wj.Message
	})
}

// LogSpec names one log file to load.
type LogSpec struct {
	Name string
	Path string
}

// LoadOptions controls parallel loading.
type LoadOptions struct {
	// Workers bounds the loader pool; 0 means NumCPU.
	Workers int
	// KeepGoing turns a per-log parse failure into a warning and loads
	// the remaining logs. The failed log is dropped from the set.
	KeepGoing bool
	// Progress, when non-nil, observes (log name, records parsed)
	// snapshots. Fire-and-forget; never blocks parsing.
	Progress *Reporter
}

func (o LoadOptions) workers() int {
	n := o.Workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n < 1 {
		n = 1
	}
	return n
}

type loadResult struct {
	idx   int
	store *LogStore
	err   error
}

// LoadAll parses the named logs in parallel, one worker per log, and
// freezes them into a LogSet preserving spec order. Each worker builds
// its own LogStore with no shared mutable state. Warnings carry
// duplicate-producer diagnostics and, under KeepGoing, per-log parse
// failures.
func LoadAll(specs []LogSpec, opts LoadOptions) (*LogSet, []Warning, error) {
	n := len(specs)
	results := runIndexedParallel(n, opts.workers(), func(idx int) loadResult {
		sp := specs[idx]
		store, err := Load(sp.Path, sp.Name)
		if err == nil && opts.Progress != nil {
			opts.Progress.Observe(store.Name, len(store.Actions))
		}
		return loadResult{idx: idx, store: store, err: err}
	})

	stores := make([]*LogStore, n)
	var warnings []Warning
	var firstErr error
	firstErrIdx := n
	for _, r := range results {
		if r.err != nil {
			if !opts.KeepGoing {
				// Report the lowest-index failure regardless of
				// completion order, to keep fail-fast deterministic.
				if r.idx < firstErrIdx {
					firstErr, firstErrIdx = r.err, r.idx
				}
				continue
			}
			warnings = append(warnings, Warning{
				Stage:   "load",
				Log:     specs[r.idx].Name,
				Message: r.err.Error(),
			})
			continue
		}
		stores[r.idx] = r.store
	}
	if firstErr != nil {
		return nil, nil, firstErr
	}

	kept := make([]*LogStore, 0, n)
	for _, st := range stores {
		if st == nil {
			continue
		}
		kept = append(kept, st)
		for _, p := range st.AmbiguousOutputs {
			warnings = append(warnings, Warning{
				Stage:   "index",
				Log:     st.Name,
				Message: fmt.Sprintf("output produced by multiple actions: %s", p),
			})
		}
	}
	SortWarnings(warnings)
	return NewLogSet(kept), warnings, nil
}

// runIndexedParallel executes fn for indices [0,n) using a worker pool
// and returns all results in completion order.
func runIndexedParallel[T any](n, workers int, fn func(int) T) []T {
	jobs := make(chan int)
	results := make(chan T)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range jobs {
			results <- fn(idx)
		}
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go worker()
	}

	go func() {
		for i := 0; i < n; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, <-results)
	}
	wg.Wait()
	return out
}
