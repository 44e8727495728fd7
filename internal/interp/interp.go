// Package interp implements the statement interpreter (C7): it drives
// the oscillator/synth (C2), sample playback (C3), and effect registry
// (C4) from a resolved statement sequence, maintaining cursor time,
// tempo, and a stack of variable scopes, and appending to the event
// timeline (C5) as it goes.
package interp

import (
	"fmt"

	"github.com/devaloop-labs/devalang-sub003/internal/core"
	"github.com/devaloop-labs/devalang-sub003/internal/effects"
	"github.com/devaloop-labs/devalang-sub003/internal/events"
	"github.com/devaloop-labs/devalang-sub003/internal/sample"
	"github.com/devaloop-labs/devalang-sub003/internal/scope"
)

// StatementBudget is the interpreter-level cooperative-scheduling guard
// (spec.md §5): exceeding it aborts the run rather than looping forever.
const StatementBudget = 10_000_000

// MaxIdentifierDepth caps identifier-chain resolution (spec.md §4.7).
const MaxIdentifierDepth = 32

// BankResolver resolves a bank/load statement's source to a loadable
// path. It is a collaborator boundary: actual bank-file parsing lives
// outside this package.
type BankResolver interface {
	Resolve(name string) (path string, err error)
}

// FunctionContext carries accumulated duration/tempo state across an
// arrow-call chain.
type FunctionContext struct {
	DurationS float32
	TempoBPM  float32
}

// FunctionRegistry executes a named method against a target value, used
// by ArrowCall statements.
type FunctionRegistry interface {
	Execute(method string, target core.Value, args []core.Value, ctx *FunctionContext) (core.Value, error)
}

// Interpreter holds the mutable state spec.md §4.7 describes: cursor
// time, tempo, and a scope stack, plus the collaborators it drives.
type Interpreter struct {
	root  *scope.Table
	stack []*scope.Table

	cursorTimeS float32
	tempoBPM    float32

	Collector *events.Collector
	Cache     *sample.Cache

	BankResolver BankResolver
	Functions    FunctionRegistry

	statementCount int

	// sampleRate records the target render rate passed to New; the
	// interpreter does not read it (durations resolve to seconds through
	// core.Duration.Seconds and tempoBPM).
	sampleRate uint32
}

// New builds an Interpreter rooted at root, with the given starting
// tempo and target sample rate.
func New(root *scope.Table, tempoBPM float32, sampleRate uint32) *Interpreter {
	return &Interpreter{
		root:        root,
		stack:       []*scope.Table{root},
		cursorTimeS: 0,
		tempoBPM:    tempoBPM,
		Collector:   events.New(),
		Cache:       sample.NewCache(),
		sampleRate:  sampleRate,
	}
}

func (ip *Interpreter) currentScope() *scope.Table {
	return ip.stack[len(ip.stack)-1]
}

func (ip *Interpreter) pushScope() *scope.Table {
	child := scope.WithParent(ip.currentScope())
	ip.stack = append(ip.stack, child)
	return child
}

func (ip *Interpreter) popScope() {
	if len(ip.stack) > 1 {
		ip.stack = ip.stack[:len(ip.stack)-1]
	}
}

// Run walks stmts in order, dispatching each by kind. It returns the
// first fatal error encountered; recoverable per-statement failures are
// instead converted to Error statements upstream (spec.md §7) and
// logged here rather than aborting.
func (ip *Interpreter) Run(stmts []core.Statement) error {
	for i := range stmts {
		if err := ip.exec(&stmts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (ip *Interpreter) exec(stmt *core.Statement) error {
	ip.statementCount++
	if ip.statementCount > StatementBudget {
		return fmt.Errorf("interp: statement budget (%d) exceeded", StatementBudget)
	}

	switch stmt.Kind {
	case core.StmtLet:
		return ip.execBinding(stmt, scope.BindLet)
	case core.StmtVar:
		return ip.execVar(stmt)
	case core.StmtConst:
		return ip.execBinding(stmt, scope.BindConst)
	case core.StmtTempo:
		return ip.execTempo(stmt)
	case core.StmtBank, core.StmtLoad:
		return ip.execBankOrLoad(stmt)
	case core.StmtTrigger:
		return ip.execTriggerOrSpawn(stmt, true)
	case core.StmtSpawn:
		return ip.execTriggerOrSpawn(stmt, false)
	case core.StmtSleep:
		return ip.execSleep(stmt)
	case core.StmtLoop:
		return ip.execLoop(stmt)
	case core.StmtGroup:
		return ip.execGroup(stmt)
	case core.StmtPattern:
		return ip.execPattern(stmt)
	case core.StmtFunction:
		return ip.execFunction(stmt)
	case core.StmtCall:
		return ip.execCall(stmt)
	case core.StmtArrowCall:
		return ip.execArrowCall(stmt)
	case core.StmtIf:
		return ip.execIf(stmt)
	case core.StmtError:
		fmt.Printf("interp: recovered error at %d:%d: %s\n", stmt.Line, stmt.Column, stmt.Message)
		return nil
	case core.StmtReturn, core.StmtExport, core.StmtSynth, core.StmtUnknown:
		return nil
	default:
		return nil
	}
}

func (ip *Interpreter) execBinding(stmt *core.Statement, binding scope.Binding) error {
	value, err := ip.evalValue(stmt.Value)
	if err != nil {
		return ip.recover(stmt, err)
	}
	ip.currentScope().SetWithType(stmt.Name, value, binding)
	return nil
}

func (ip *Interpreter) execVar(stmt *core.Statement) error {
	value, err := ip.evalValue(stmt.Value)
	if err != nil {
		return ip.recover(stmt, err)
	}
	if _, ok := ip.currentScope().GetBinding(stmt.Name); ok {
		return ip.recover(stmt, ip.currentScope().Update(stmt.Name, value))
	}
	ip.currentScope().SetWithType(stmt.Name, value, scope.BindVar)
	return nil
}

func (ip *Interpreter) execTempo(stmt *core.Statement) error {
	bpm, err := stmt.Value.AsNumber()
	if err != nil {
		return ip.recover(stmt, err)
	}
	if bpm <= 0 {
		return ip.recover(stmt, fmt.Errorf("interp: tempo must be > 0, got %v", bpm))
	}
	ip.tempoBPM = bpm
	return nil
}

func (ip *Interpreter) execBankOrLoad(stmt *core.Statement) error {
	if ip.BankResolver == nil {
		return nil
	}
	path, err := ip.BankResolver.Resolve(stmt.Name)
	if err != nil {
		return ip.recover(stmt, err)
	}
	ip.currentScope().Set(stmt.Alias, core.String(path))
	return nil
}

func (ip *Interpreter) recover(stmt *core.Statement, err error) error {
	if err == nil {
		return nil
	}
	*stmt = core.NewError(err.Error(), stmt.Line, stmt.Column)
	fmt.Printf("interp: recovered error at %d:%d: %s\n", stmt.Line, stmt.Column, err.Error())
	return nil
}

// evalValue resolves an Identifier-kind value through the current
// scope; all other value kinds evaluate to themselves.
func (ip *Interpreter) evalValue(v core.Value) (core.Value, error) {
	if v.Kind != core.ValueIdentifier {
		return v, nil
	}
	return ip.currentScope().Resolve(v.Str, MaxIdentifierDepth)
}

func (ip *Interpreter) durationSeconds(d core.Duration) float32 {
	return d.Seconds(ip.tempoBPM)
}

func (ip *Interpreter) resolveEffects(decls []core.EffectDecl) []effects.Decl {
	out := make([]effects.Decl, 0, len(decls))
	for _, d := range decls {
		params := make(map[string]any, len(d.Params))
		for k, v := range d.Params {
			switch v.Kind {
			case core.ValueNumber:
				params[k] = v.Num
			case core.ValueBoolean:
				params[k] = v.Bool
			case core.ValueString:
				params[k] = v.Str
			}
		}
		out = append(out, effects.Decl{Name: d.Name, Params: params})
	}
	return out
}
