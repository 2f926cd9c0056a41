package execlog

import "encoding/json"

// ActionRecord is one executed build action from one log: the outputs it
// declared and produced, its inputs, environment, and command metadata.
// Records are built once at load time and read-only afterwards.
type ActionRecord struct {
	ListedOutputs []string
	ActualOutputs map[string]Digest
	Inputs        map[string]Digest
	Env           map[string]string

	CommandArgs     []string
	Mnemonic        string
	Runner          string
	Status          string
	ProgressMessage string
	Remotable       bool
	Cacheable       bool
	RemoteCacheHit  bool
	ExitCode        int
	TimeoutMillis   int64

	// Raw keeps the original JSON blob for the `json` command.
	Raw json.RawMessage
}

type wireEnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type wireItem struct {
	Path   string     `json:"path"`
	Digest wireDigest `json:"digest"`
}

type wireAction struct {
	CommandArgs          []string     `json:"commandArgs"`
	EnvironmentVariables []wireEnvVar `json:"environmentVariables"`
	Inputs               []wireItem   `json:"inputs"`
	ListedOutputs        []string     `json:"listedOutputs"`
	ActualOutputs        []wireItem   `json:"actualOutputs"`
	Remotable            bool         `json:"remotable"`
	Cacheable            bool         `json:"cacheable"`
	TimeoutMillis        flexibleInt  `json:"timeoutMillis"`
	ProgressMessage      string       `json:"progressMessage"`
	Mnemonic             string       `json:"mnemonic"`
	Runner               string       `json:"runner"`
	RemoteCacheHit       bool         `json:"remoteCacheHit"`
	Status               string       `json:"status"`
	ExitCode             int          `json:"exitCode"`
}

func (w wireAction) toRecord(raw json.RawMessage) ActionRecord {
	rec := ActionRecord{
		ListedOutputs:   append([]string(nil), w.ListedOutputs...),
		ActualOutputs:   make(map[string]Digest, len(w.ActualOutputs)),
		Inputs:          make(map[string]Digest, len(w.Inputs)),
		Env:             make(map[string]string, len(w.EnvironmentVariables)),
		CommandArgs:     append([]string(nil), w.CommandArgs...),
		Mnemonic:        w.Mnemonic,
		Runner:          w.Runner,
		Status:          w.Status,
		ProgressMessage: w.ProgressMessage,
		Remotable:       w.Remotable,
		Cacheable:       w.Cacheable,
		RemoteCacheHit:  w.RemoteCacheHit,
		ExitCode:        w.ExitCode,
		TimeoutMillis:   int64(w.TimeoutMillis),
		Raw:             raw,
	}
	for _, e := range w.EnvironmentVariables {
		rec.Env[e.Name] = e.Value
	}
	// Inputs get listed multiple times, sometimes; first digest wins.
	for _, it := range w.Inputs {
		if _, ok := rec.Inputs[it.Path]; !ok {
			rec.Inputs[it.Path] = Digest{
				HashFunctionName: it.Digest.HashFunctionName,
				Hash:             it.Digest.Hash,
				SizeBytes:        uint64(it.Digest.SizeBytes),
			}
		}
	}
	for _, it := range w.ActualOutputs {
		rec.ActualOutputs[it.Path] = Digest{
			HashFunctionName: it.Digest.HashFunctionName,
			Hash:             it.Digest.Hash,
			SizeBytes:        uint64(it.Digest.SizeBytes),
		}
	}
	return rec
}
