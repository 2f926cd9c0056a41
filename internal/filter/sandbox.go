package filter

import (
	"context"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
)

const (
	sandboxTimeoutViolation     = "sandbox timeout"
	sandboxInstructionViolation = "sandbox instruction limit"
)

// SandboxLimits bounds what an inline Lua predicate may do. Predicates
// only see mismatch metadata; io/os libraries are never opened.
type SandboxLimits struct {
	TimeoutMs        int
	InstructionLimit int
}

// DefaultSandboxLimits are safe for interactive use.
var DefaultSandboxLimits = SandboxLimits{
	TimeoutMs:        200,
	InstructionLimit: 500000,
}

func newSandboxState() *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs:     true,
		RegistrySize:     256,
		RegistryMaxSize:  4096,
		RegistryGrowStep: 0,
	})
	openLib := func(name string, f lua.LGFunction) {
		L.Push(L.NewFunction(f))
		L.Push(lua.LString(name))
		L.Call(1, 0)
	}
	openLib("base", lua.OpenBase)
	openLib("string", lua.OpenString)
	openLib("table", lua.OpenTable)
	openLib("math", lua.OpenMath)
	return L
}

// instructionLimitWouldTrip is a conservative static pre-check so an
// obviously looping chunk is rejected before execution.
func instructionLimitWouldTrip(code string, limit int) bool {
	if limit <= 0 {
		return false
	}
	cost := len(code) * 10
	lower := strings.ToLower(code)
	if strings.Contains(lower, "while ") || strings.Contains(lower, "repeat") || strings.Contains(lower, "for ") {
		cost += 1000000
	}
	return cost > limit
}

func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if err == context.DeadlineExceeded {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadline") || strings.Contains(msg, "context canceled")
}

// runSandboxed evaluates code with the given string globals and returns
// the chunk's boolean-ish result. violation is set for limit trips, err
// for script errors.
func runSandboxed(code string, globals map[string]string, limits SandboxLimits) (result bool, violation string, err error) {
	if instructionLimitWouldTrip(code, limits.InstructionLimit) {
		return false, sandboxInstructionViolation, nil
	}

	L := newSandboxState()
	defer L.Close()

	if limits.TimeoutMs > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(limits.TimeoutMs)*time.Millisecond)
		defer cancel()
		L.SetContext(ctx)
	}

	for k, v := range globals {
		L.SetGlobal(k, lua.LString(v))
	}

	fn, err := L.LoadString(code)
	if err != nil {
		return false, "", err
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		if isTimeoutError(err) {
			return false, sandboxTimeoutViolation, nil
		}
		return false, "", err
	}
	ret := L.Get(-1)
	L.Pop(1)
	return lua.LVAsBool(ret), "", nil
}
