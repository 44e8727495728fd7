package interp

import (
	"testing"

	"github.com/devaloop-labs/devalang-sub003/internal/core"
	"github.com/devaloop-labs/devalang-sub003/internal/scope"
)

func newTestInterp() *Interpreter {
	return New(scope.New(), 120, 44100)
}

func TestLetBindsInCurrentScope(t *testing.T) {
	ip := newTestInterp()
	stmt := core.Statement{Kind: core.StmtLet, Name: "x", Value: core.Number(42)}
	if err := ip.Run([]core.Statement{stmt}); err != nil {
		t.Fatal(err)
	}
	v, err := ip.currentScope().Get("x")
	if err != nil {
		t.Fatal(err)
	}
	n, _ := v.AsNumber()
	if n != 42 {
		t.Fatalf("x = %v, want 42", n)
	}
}

func TestConstReassignmentReturnsError(t *testing.T) {
	ip := newTestInterp()
	stmts := []core.Statement{
		{Kind: core.StmtConst, Name: "y", Value: core.Number(1)},
	}
	if err := ip.Run(stmts); err != nil {
		t.Fatal(err)
	}

	child := ip.pushScope()
	_ = child
	err := child.Update("y", core.Number(2))
	if err == nil {
		t.Fatal("expected const-reassignment error")
	}
}

func TestVarHoistsToAncestorBinding(t *testing.T) {
	ip := newTestInterp()
	ip.currentScope().SetWithType("count", core.Number(0), scope.BindVar)

	child := ip.pushScope()
	if err := child.Update("count", core.Number(5)); err != nil {
		t.Fatal(err)
	}

	v, _ := ip.root.Get("count")
	n, _ := v.AsNumber()
	if n != 5 {
		t.Fatalf("root count = %v, want 5 (var write should hoist)", n)
	}
}

func TestTempoRejectsNonPositive(t *testing.T) {
	ip := newTestInterp()
	stmt := core.Statement{Kind: core.StmtTempo, Value: core.Number(0)}
	if err := ip.Run([]core.Statement{stmt}); err != nil {
		t.Fatal(err)
	}
	// tempo update is skipped on invalid input; default stays in effect
	if ip.tempoBPM != 120 {
		t.Fatalf("tempoBPM = %v, want unchanged 120", ip.tempoBPM)
	}
}

func TestTempoUpdatesOnValidValue(t *testing.T) {
	ip := newTestInterp()
	stmt := core.Statement{Kind: core.StmtTempo, Value: core.Number(140)}
	if err := ip.Run([]core.Statement{stmt}); err != nil {
		t.Fatal(err)
	}
	if ip.tempoBPM != 140 {
		t.Fatalf("tempoBPM = %v, want 140", ip.tempoBPM)
	}
}

func TestSleepAdvancesCursor(t *testing.T) {
	ip := newTestInterp()
	stmt := core.Statement{Kind: core.StmtSleep, Value: core.Number(500)}
	if err := ip.Run([]core.Statement{stmt}); err != nil {
		t.Fatal(err)
	}
	if ip.cursorTimeS != 0.5 {
		t.Fatalf("cursorTimeS = %v, want 0.5", ip.cursorTimeS)
	}
}

func TestLoopEmptyBodyTerminates(t *testing.T) {
	ip := newTestInterp()
	stmt := core.Statement{Kind: core.StmtLoop, Count: 1000000, Body: nil}
	if err := ip.Run([]core.Statement{stmt}); err != nil {
		t.Fatal(err)
	}
	if len(ip.Collector.Events()) != 0 {
		t.Fatalf("expected no events from an empty loop body")
	}
}

func TestLoopProducesEventsPerIteration(t *testing.T) {
	ip := newTestInterp()
	ip.currentScope().Set("kick", core.String("samples/kick.wav"))

	body := []core.Statement{
		{Kind: core.StmtTrigger, Entity: "kick", Duration: core.BeatsDuration(1)},
	}
	loop := core.Statement{Kind: core.StmtLoop, Count: 4, Body: body}
	if err := ip.Run([]core.Statement{loop}); err != nil {
		t.Fatal(err)
	}
	if len(ip.Collector.Events()) != 4 {
		t.Fatalf("len(events) = %d, want 4", len(ip.Collector.Events()))
	}
}

func TestIfTruthyExecutesBody(t *testing.T) {
	ip := newTestInterp()
	ifStmt := core.Statement{
		Kind: core.StmtIf,
		Cond: core.Boolean(true),
		Body: []core.Statement{
			{Kind: core.StmtLet, Name: "z", Value: core.Number(1)},
		},
	}
	if err := ip.Run([]core.Statement{ifStmt}); err != nil {
		t.Fatal(err)
	}
	if _, err := ip.currentScope().Get("z"); err != nil {
		t.Fatal("expected z to be bound after truthy if")
	}
}

func TestIfFalsyExecutesElse(t *testing.T) {
	ip := newTestInterp()
	ifStmt := core.Statement{
		Kind: core.StmtIf,
		Cond: core.Boolean(false),
		Body: []core.Statement{
			{Kind: core.StmtLet, Name: "a", Value: core.Number(1)},
		},
		Else: []core.Statement{
			{Kind: core.StmtLet, Name: "b", Value: core.Number(2)},
		},
	}
	if err := ip.Run([]core.Statement{ifStmt}); err != nil {
		t.Fatal(err)
	}
	if _, err := ip.currentScope().Get("b"); err != nil {
		t.Fatal("expected b to be bound after falsy if's else branch")
	}
}

func TestTriggerAdvancesCursorSpawnDoesNot(t *testing.T) {
	ip := newTestInterp()
	ip.currentScope().Set("snare", core.String("samples/snare.wav"))

	trigger := core.Statement{Kind: core.StmtTrigger, Entity: "snare", Duration: core.BeatsDuration(1)}
	if err := ip.Run([]core.Statement{trigger}); err != nil {
		t.Fatal(err)
	}
	afterTrigger := ip.cursorTimeS
	if afterTrigger == 0 {
		t.Fatal("expected trigger to advance cursor")
	}

	spawn := core.Statement{Kind: core.StmtSpawn, Entity: "snare", Duration: core.BeatsDuration(1)}
	if err := ip.Run([]core.Statement{spawn}); err != nil {
		t.Fatal(err)
	}
	if ip.cursorTimeS != afterTrigger {
		t.Fatalf("expected spawn to leave cursor unchanged, got %v vs %v", ip.cursorTimeS, afterTrigger)
	}
}
