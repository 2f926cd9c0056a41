package execlog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ParseError reports a malformed record in one log. It is fatal for that
// log's load only; sibling logs keep loading.
type ParseError struct {
	Log    string
	Record int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: record %d: %v", e.Log, e.Record, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseActions reads a stream of JSON action objects. Bazel writes the
// JSON execution log as concatenated objects:
//
//	{ "foo": true }{ "foo": false }
//
// json.Decoder consumes that framing directly, and newline-delimited
// records come for free.
func ParseActions(r io.Reader, logName string) ([]ActionRecord, error) {
	dec := json.NewDecoder(r)
	var actions []ActionRecord
	for i := 0; ; i++ {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err == io.EOF {
			break
		} else if err != nil {
			return nil, &ParseError{Log: logName, Record: i, Err: err}
		}
		var w wireAction
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, &ParseError{Log: logName, Record: i, Err: err}
		}
		actions = append(actions, w.toRecord(raw))
	}
	return actions, nil
}

// Load parses one log file into a LogStore named name. When name is
// empty the file path is used.
func Load(path, name string) (*LogStore, error) {
	if name == "" {
		name = path
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log %s: %w", path, err)
	}
	defer f.Close()
	actions, err := ParseActions(f, name)
	if err != nil {
		return nil, err
	}
	return NewLogStore(name, actions), nil
}
