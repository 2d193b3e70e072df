package driver

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"xypher/internal/diag"
	"xypher/internal/modules"
	"xypher/internal/token"
	"xypher/internal/trace"
	"xypher/internal/types"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validProgram = `func add(a: i32, b: i32) -> i32 {
    return a + b;
}

func main() {
    say(add(1, 2));
}
`

func TestTokenizeEndsWithEOF(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.xyp", "let x = 1;")
	res, err := Tokenize(context.Background(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tokens) == 0 || res.Tokens[len(res.Tokens)-1].Kind != token.EOF {
		t.Fatalf("tokens = %v", res.Tokens)
	}
	if res.Bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %d", res.Bag.Len())
	}
}

func TestLoadFailureIsGoError(t *testing.T) {
	_, err := Check(context.Background(), filepath.Join(t.TempDir(), "missing.xyp"), Options{})
	if err == nil || !strings.Contains(err.Error(), "missing.xyp") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseStopsAtErrorCap(t *testing.T) {
	path := writeSource(t, t.TempDir(), "bad.xyp", strings.Repeat("$ ", 100))
	res, err := Parse(context.Background(), path, Options{MaxErrors: 3})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Stopped || !res.Bag.HasErrors() {
		t.Fatalf("stopped=%v errors=%v", res.Stopped, res.Bag.HasErrors())
	}
}

func TestCheckReportsSemanticErrors(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.xyp", "let x: bool = 5;\n")
	res, err := Check(context.Background(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.OK() || res.Sema == nil || res.Sema.OK {
		t.Fatal("type mismatch must fail the check")
	}
	if got := res.Bag.Items()[0].Code; got != diag.SemaTypeMismatch {
		t.Errorf("code = %s", got.ID())
	}
	if len(res.Timing.Phases) < 3 {
		t.Errorf("timing phases = %+v", res.Timing.Phases)
	}
}

func TestCheckUsesDiskCache(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	path := writeSource(t, dir, "a.xyp", "let x: bool = 5;\nlet y = missing;\n")
	opts := Options{Cache: cache}

	first, err := Check(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Fatal("first check cannot be cached")
	}

	second, err := Check(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached || second.Builder != nil {
		t.Fatal("second check must come from the cache")
	}
	render := func(r *CheckResult) string {
		return diag.FormatShortDiagnostics(r.Bag.Items(), r.FileSet, true)
	}
	if render(first) != render(second) {
		t.Errorf("cached diagnostics differ:\n%s\n---\n%s", render(first), render(second))
	}

	writeSource(t, dir, "a.xyp", "let x: bool = true;\n")
	third, err := Check(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached || !third.OK() {
		t.Errorf("edited file: cached=%v ok=%v", third.Cached, third.OK())
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	fourth, _ := Check(context.Background(), path, opts)
	if fourth.Cached {
		t.Error("DropAll must invalidate every entry")
	}
}

// Two condition warnings fill a two-item bag, so the type error is dropped
// from it but must still fail the check.
const truncatedErrors = "if (1) { }\nif (2) { }\nlet x: bool = 5;\n"

func TestErrorsPastMaxDiagnosticsFailCheck(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := writeSource(t, t.TempDir(), "a.xyp", truncatedErrors)
	opts := Options{MaxDiagnostics: 2, Cache: cache}

	first, err := Check(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Bag.Len() != 2 || first.Bag.HasErrors() {
		t.Fatalf("bag must hold only the two warnings: %s", diag.FormatShortDiagnostics(first.Bag.Items(), first.FileSet, false))
	}
	if first.OK() || first.Errors != 1 {
		t.Fatalf("ok=%v errors=%d, want a failed check with one error", first.OK(), first.Errors)
	}

	second, err := Check(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Fatal("second check must come from the cache")
	}
	if second.OK() || second.Errors != 1 {
		t.Errorf("cached: ok=%v errors=%d", second.OK(), second.Errors)
	}

	emitted, err := Emit(context.Background(), path, Options{MaxDiagnostics: 2})
	if err != nil {
		t.Fatal(err)
	}
	if emitted.Module != nil || emitted.OK() {
		t.Error("errors dropped from the bag must still block IR generation")
	}
}

func TestRegistryDigestTracksModules(t *testing.T) {
	reg := modules.NewRegistry()
	before := registryDigest(reg)
	if before != registryDigest(modules.NewRegistry()) {
		t.Fatal("digest must be deterministic")
	}
	reg.Extend("gfx", modules.Function{Name: "xy_draw", Result: types.Void, Checked: true})
	if registryDigest(reg) == before {
		t.Error("extending the registry must change the digest")
	}
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	b := writeSource(t, dir, "b.xyp", "")
	a := writeSource(t, dir, "sub/a.xyp", "")
	writeSource(t, dir, "notes.txt", "")
	writeSource(t, dir, ".hidden/c.xyp", "")

	got, err := ExpandPaths([]string{dir, b})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{b, a}
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("ExpandPaths = %v, want %v", got, want)
	}

	if _, err := ExpandPaths([]string{filepath.Join(dir, "nope")}); err == nil {
		t.Error("missing path must be an error")
	}
}

func TestCheckFilesKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeSource(t, dir, "a.xyp", validProgram),
		filepath.Join(dir, "missing.xyp"),
		writeSource(t, dir, "c.xyp", "let x: bool = 5;\n"),
	}

	var mu sync.Mutex
	counts := make(map[Status]int)
	finished := make(map[string]Status)
	sink := SinkFunc(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		if e.Stage == StageFinished {
			finished[e.File] = e.Status
			return
		}
		counts[e.Status]++
	})

	ring := trace.NewRingTracer(256, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)
	results, err := CheckFiles(ctx, files, Options{Jobs: 2, Progress: sink})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d", len(results))
	}
	for i, r := range results {
		if r.Path != files[i] {
			t.Errorf("results[%d].Path = %q, want %q", i, r.Path, files[i])
		}
	}
	if !results[0].OK() || results[1].Err == nil || results[2].OK() {
		t.Errorf("ok flags: %v %v %v", results[0].OK(), results[1].Err, results[2].OK())
	}
	if counts[StatusQueued] != 3 || counts[StatusError] != 1 {
		t.Errorf("events = %v", counts)
	}
	if finished[files[0]] != StatusDone || finished[files[1]] != StatusError || finished[files[2]] != StatusError {
		t.Errorf("finished = %v", finished)
	}

	var sawCheck bool
	for _, ev := range ring.Snapshot() {
		if ev.Name == "check" && ev.Scope == trace.ScopeDriver {
			sawCheck = true
		}
	}
	if !sawCheck {
		t.Error("driver span missing from trace")
	}
}

func TestCheckFilesCancelled(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.xyp", validProgram)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CheckFiles(ctx, []string{path}, Options{}); err == nil {
		t.Error("cancelled context must surface as an error")
	}
}

func TestEmit(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "good.xyp", validProgram)
	res, err := Emit(context.Background(), good, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Module == nil {
		t.Fatalf("no module; diagnostics: %s", diag.FormatShortDiagnostics(res.Bag.Items(), res.FileSet, false))
	}
	ir := res.Module.String()
	if !strings.Contains(ir, "define i32 @add(") || !strings.Contains(ir, `source_filename = "good.xyp"`) {
		t.Errorf("IR:\n%s", ir)
	}
	if res.Timing.Phases[len(res.Timing.Phases)-1].Name != string(StageEmit) {
		t.Errorf("emit phase not timed: %+v", res.Timing.Phases)
	}

	bad := writeSource(t, dir, "bad.xyp", "let x: bool = 5;\n")
	res, err = Emit(context.Background(), bad, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Module != nil || res.OK() {
		t.Error("a file with errors must not produce IR")
	}
}
