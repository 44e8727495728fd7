// Package effects implements the Effect Registry & Processors (spec.md
// §4.4, C4) — the hardest piece of the audio core. Every processor
// implements a uniform Processor contract (Process/Reset/Name) over
// stereo-interleaved float32 samples; the registry maps a string name to
// a factory that always builds a fresh instance, since a single shared
// processor would leak filter/delay state across voices (spec.md §9).
//
// Numeric algorithms are ported from
// original_source/.../effects/processors/*.rs for exact fidelity; the
// registry/factory shape (map[string]factory populated via init-time
// register calls, panicking on malformed registration) is grounded on
// the other_examples CWBudde-algo-dsp webdemo effect-chain registry.
package effects

// Processor is the uniform capability set spec.md §4.4 requires of every
// effect: process stereo-interleaved samples in place, reset internal
// state, report a stable name.
type Processor interface {
	Process(samples []float32, sampleRate uint32)
	Reset()
	Name() string
}

// Context distinguishes whether an effect is requested for a synth voice
// or for sample/trigger playback; it gates which names are available.
type Context int

const (
	ContextTrigger Context = iota
	ContextSynth
)

// availability records which contexts a registered effect may run in.
type availability int

const (
	availBoth availability = iota
	availTriggerOnly
)

func (a availability) allows(ctx Context) bool {
	switch a {
	case availTriggerOnly:
		return ctx == ContextTrigger
	default:
		return true
	}
}

// Factory builds a fresh Processor instance from a params map. Params
// values use core.Value-free plain Go types (float32/bool/string) since
// the effect catalog's parameter shapes are fixed and small; the
// interpreter is responsible for extracting these from a Statement's
// Effects map before calling the registry.
type Factory func(params map[string]any) Processor

type registration struct {
	factory Factory
	avail   availability
}

var registry = map[string]registration{}

// registerEffectFactory installs a named effect factory. Panics on
// malformed registration (empty name, nil factory, duplicate name) — a
// programmer error caught at init time, matching the webdemo registry's
// own fail-fast registerChainEffectFactory.
func registerEffectFactory(name string, avail availability, factory Factory) {
	if name == "" {
		panic("effects: empty effect name")
	}
	if factory == nil {
		panic("effects: nil factory for " + name)
	}
	if _, exists := registry[name]; exists {
		panic("effects: duplicate effect name: " + name)
	}
	registry[name] = registration{factory: factory, avail: avail}
}

// IsAvailable reports whether name may be used in the given context.
func IsAvailable(name string, ctx Context) bool {
	reg, ok := registry[name]
	if !ok {
		return false
	}
	return reg.avail.allows(ctx)
}

// Get builds a fresh processor instance for name if it is registered and
// available in ctx; otherwise it returns (nil, false) — spec.md §4.4 and
// §7's "effect-not-available" error kind: the caller drops and logs the
// declaration rather than treating this as fatal.
func Get(name string, ctx Context, params map[string]any) (Processor, bool) {
	reg, ok := registry[name]
	if !ok || !reg.avail.allows(ctx) {
		return nil, false
	}
	return reg.factory(params), true
}

// Names returns every registered effect name, for diagnostics/tests.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	return names
}

// Chain is an ordered, already-realized sequence of processor instances
// (spec.md §3's EffectChain, post-construction). Chains apply in
// declared order and are non-commutative.
type Chain struct {
	processors []Processor
}

// NewChain builds a Chain from an ordered list of (name, params) pairs,
// resolving each against the registry for the given context. Unknown or
// unavailable names are skipped and reported via the returned slice of
// dropped names, matching spec.md §7's "declaration is dropped and
// logged" policy rather than aborting the whole chain.
func NewChain(ctx Context, decls []Decl) (*Chain, []string) {
	c := &Chain{processors: make([]Processor, 0, len(decls))}
	var dropped []string
	for _, d := range decls {
		proc, ok := Get(d.Name, ctx, d.Params)
		if !ok {
			dropped = append(dropped, d.Name)
			continue
		}
		c.processors = append(c.processors, proc)
	}
	return c, dropped
}

// Decl is one (name, params) declaration in an owner's effect chain,
// prior to being realized into a concrete Processor instance.
type Decl struct {
	Name   string
	Params map[string]any
}

// Apply runs every processor in the chain, in order, over samples.
// Each processor is reset before first use within this Chain's lifetime
// is guaranteed by NewChain always building fresh instances — no
// additional reset is required here.
func (c *Chain) Apply(samples []float32, sampleRate uint32) {
	for _, p := range c.processors {
		p.Process(samples, sampleRate)
	}
}

// Len reports how many processors survived chain construction.
func (c *Chain) Len() int { return len(c.processors) }

// paramF32/paramBool/paramString/paramInt pull a typed value out of a params map
// with a default, matching the teacher corpus's GetNum-style accessor
// idiom (other_examples effectchain runtime's Params.GetNum).
func paramF32(params map[string]any, key string, def float32) float32 {
	if params == nil {
		return def
	}
	switch v := params[key].(type) {
	case float32:
		return v
	case float64:
		return float32(v)
	case int:
		return float32(v)
	}
	return def
}

func paramBool(params map[string]any, key string, def bool) bool {
	if params == nil {
		return def
	}
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

func paramString(params map[string]any, key string, def string) string {
	if params == nil {
		return def
	}
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

func paramInt(params map[string]any, key string, def int) int {
	if params == nil {
		return def
	}
	switch v := params[key].(type) {
	case int:
		return v
	case float32:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}
