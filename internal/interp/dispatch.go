package interp

import (
	"fmt"

	"github.com/devaloop-labs/devalang-sub003/internal/core"
	"github.com/devaloop-labs/devalang-sub003/internal/events"
)

// entityDescriptor is the resolved shape of a Trigger/Spawn entity
// reference: either a sample file path, or a synth voice descriptor
// (type name + MIDI note + velocity), looked up from the entity's bound
// scope value. A bare String value is a sample path; a Map value
// carries {type, note, velocity} for a synth voice.
type entityDescriptor struct {
	isSample bool
	path     string

	synthType string
	midiNote  int
	velocity  float32
}

func (ip *Interpreter) resolveEntity(name string) (entityDescriptor, error) {
	v, err := ip.currentScope().Resolve(name, MaxIdentifierDepth)
	if err != nil {
		return entityDescriptor{}, err
	}

	switch v.Kind {
	case core.ValueString:
		return entityDescriptor{isSample: true, path: v.Str}, nil

	case core.ValueMap:
		m, _ := v.AsMap()
		typeName := "pluck"
		if tv, ok := m["type"]; ok {
			if s, err := tv.AsString(); err == nil {
				typeName = s
			}
		}
		note := 60
		if nv, ok := m["note"]; ok {
			if n, err := nv.AsNumber(); err == nil {
				note = int(n)
			}
		}
		velocity := float32(1.0)
		if vv, ok := m["velocity"]; ok {
			if n, err := vv.AsNumber(); err == nil {
				velocity = n
			}
		}
		return entityDescriptor{synthType: typeName, midiNote: note, velocity: velocity}, nil

	default:
		return entityDescriptor{}, fmt.Errorf("interp: entity %q does not resolve to a sample path or synth descriptor", name)
	}
}

func (ip *Interpreter) execTriggerOrSpawn(stmt *core.Statement, advanceCursor bool) error {
	desc, err := ip.resolveEntity(stmt.Entity)
	if err != nil {
		return ip.recover(stmt, err)
	}

	durationS := ip.durationSeconds(stmt.Duration)
	if stmt.Duration.Kind == core.DurationIdentifier {
		if dv, err := ip.currentScope().Resolve(stmt.Duration.Ident, MaxIdentifierDepth); err == nil {
			if n, err := dv.AsNumber(); err == nil {
				durationS = n
			}
		}
	}

	startTime := ip.cursorTimeS
	decls := ip.resolveEffects(stmt.Effects)

	if desc.isSample {
		ip.Collector.Append(events.Event{
			Type:       events.Sample,
			Time:       startTime,
			Duration:   durationS,
			SampleName: desc.path,
			Velocity:   1.0,
			Effects:    decls,
		})
	} else {
		ip.Collector.Append(events.Event{
			Type:     events.NoteOn,
			MIDI:     desc.midiNote,
			Time:     startTime,
			Duration: durationS,
			Velocity: desc.velocity,
			SynthID:  desc.synthType,
			Effects:  decls,
		})
		ip.Collector.Append(events.Event{
			Type:     events.NoteOff,
			MIDI:     desc.midiNote,
			Time:     startTime + durationS,
			SynthID:  desc.synthType,
		})
	}

	if advanceCursor {
		ip.cursorTimeS += durationS
	}
	return nil
}

func (ip *Interpreter) execSleep(stmt *core.Statement) error {
	ms, err := stmt.Value.AsNumber()
	if err != nil {
		return ip.recover(stmt, err)
	}
	if ms < 0 {
		return ip.recover(stmt, fmt.Errorf("interp: sleep duration must be >= 0, got %v", ms))
	}
	if ms > 60000 {
		fmt.Printf("interp: warning: sleep(%vms) exceeds 60s at %d:%d\n", ms, stmt.Line, stmt.Column)
	}
	ip.cursorTimeS += ms / 1000.0
	return nil
}

func (ip *Interpreter) execLoop(stmt *core.Statement) error {
	if stmt.Count <= 0 || len(stmt.Body) == 0 {
		return nil
	}
	for i := 0; i < stmt.Count; i++ {
		before := len(ip.Collector.Events())
		beforeCursor := ip.cursorTimeS
		if err := ip.Run(stmt.Body); err != nil {
			return err
		}
		if len(ip.Collector.Events()) == before && ip.cursorTimeS == beforeCursor {
			break
		}
	}
	return nil
}

func (ip *Interpreter) execGroup(stmt *core.Statement) error {
	ip.currentScope().Set(stmt.Name, core.Block(stmt.Body))
	return nil
}

// execPattern registers the pattern under its own name (so it can be
// referenced like a group), then immediately expands it against its
// target: each body entry is a symbol slot, a hit (Trigger/Spawn) fires
// against stmt.Target when the slot doesn't name its own entity, a rest
// just advances the cursor by its duration.
func (ip *Interpreter) execPattern(stmt *core.Statement) error {
	ip.currentScope().Set(stmt.Name, core.Block(stmt.Body))

	for i := range stmt.Body {
		sym := stmt.Body[i]
		switch sym.Kind {
		case core.StmtTrigger, core.StmtSpawn:
			if sym.Entity == "" {
				sym.Entity = stmt.Target
			}
			if err := ip.execTriggerOrSpawn(&sym, sym.Kind == core.StmtTrigger); err != nil {
				return err
			}
		default:
			ip.cursorTimeS += ip.durationSeconds(sym.Duration)
		}
	}
	return nil
}

func (ip *Interpreter) execFunction(stmt *core.Statement) error {
	ip.currentScope().Set(stmt.Name, core.StatementValue(stmt))
	return nil
}

func (ip *Interpreter) execCall(stmt *core.Statement) error {
	callee, err := ip.currentScope().Get(stmt.Name)
	if err != nil {
		return ip.recover(stmt, err)
	}

	switch callee.Kind {
	case core.ValueBlock:
		ip.pushScope()
		defer ip.popScope()
		return ip.Run(callee.Block)

	case core.ValueStatement:
		fn := callee.Stmt
		child := ip.pushScope()
		defer ip.popScope()
		for i, param := range fn.Params {
			argVal := core.Null()
			if i < len(stmt.Args) {
				argVal, _ = ip.evalValue(stmt.Args[i])
			}
			child.Set(param, argVal)
		}
		return ip.Run(fn.Body)

	default:
		return ip.recover(stmt, fmt.Errorf("interp: %q is not callable", stmt.Name))
	}
}

func (ip *Interpreter) execArrowCall(stmt *core.Statement) error {
	if ip.Functions == nil {
		return nil
	}
	target, err := ip.currentScope().Resolve(stmt.ArrowTarget, MaxIdentifierDepth)
	if err != nil {
		return ip.recover(stmt, err)
	}

	args := make([]core.Value, 0, len(stmt.Args))
	for _, a := range stmt.Args {
		v, err := ip.evalValue(a)
		if err != nil {
			return ip.recover(stmt, err)
		}
		args = append(args, v)
	}

	ctx := &FunctionContext{TempoBPM: ip.tempoBPM}
	result, err := ip.Functions.Execute(stmt.Method, target, args, ctx)
	if err != nil {
		return ip.recover(stmt, err)
	}

	for _, link := range stmt.Chain {
		result, err = ip.Functions.Execute(link.Method, result, link.Args, ctx)
		if err != nil {
			return ip.recover(stmt, err)
		}
	}
	return nil
}

func (ip *Interpreter) execIf(stmt *core.Statement) error {
	cond, err := ip.evalValue(stmt.Cond)
	if err != nil {
		return ip.recover(stmt, err)
	}
	if cond.Truthy() {
		return ip.Run(stmt.Body)
	}
	if stmt.Else != nil {
		return ip.Run(stmt.Else)
	}
	return nil
}
