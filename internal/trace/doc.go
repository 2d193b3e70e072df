// Package trace is the logging layer of the compiler: structured begin/end
// events around pipeline phases and compilation units.
//
// Enable it from the command line:
//
//	xyc check --trace=- --trace-level=phase main.xyp
//
// Backends:
//
//   - Nop: default, no overhead
//   - StreamTracer: writes every event as it happens (text or NDJSON)
//   - RingTracer: keeps the last N events, dumped after a crash
//   - MultiTracer: fan-out
//
// Levels filter by scope: phase shows driver and pass events, detail adds
// compilation units, debug adds everything.
//
// The tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
