package execlog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Session is a named set of logs, kept in a small YAML file so a
// comparison session can be reproduced later:
//
//	logs:
//	  - name: linux
//	    path: /tmp/linux-exec.json
//	  - name: darwin
//	    path: /tmp/darwin-exec.json
type Session struct {
	Logs []LogSpec `yaml:"logs"`
}

type sessionLog struct {
	Name string `yaml:"name,omitempty"`
	Path string `yaml:"path"`
}

type sessionFile struct {
	Logs []sessionLog `yaml:"logs"`
}

// ReadSession parses a session file. Entries without a name default to
// their path, matching the loader's naming rule.
func ReadSession(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, fmt.Errorf("read session %s: %w", path, err)
	}
	var f sessionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Session{}, fmt.Errorf("invalid session %s: %v", path, err)
	}
	if len(f.Logs) == 0 {
		return Session{}, fmt.Errorf("session %s: no logs listed", path)
	}
	s := Session{Logs: make([]LogSpec, 0, len(f.Logs))}
	for i, l := range f.Logs {
		if l.Path == "" {
			return Session{}, fmt.Errorf("session %s: logs[%d]: missing path", path, i)
		}
		name := l.Name
		if name == "" {
			name = l.Path
		}
		s.Logs = append(s.Logs, LogSpec{Name: name, Path: l.Path})
	}
	return s, nil
}

// WriteSession writes the session as canonical YAML, creating parent
// directories.
func WriteSession(path string, s Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f := sessionFile{Logs: make([]sessionLog, 0, len(s.Logs))}
	for _, l := range s.Logs {
		f.Logs = append(f.Logs, sessionLog{Name: l.Name, Path: l.Path})
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
