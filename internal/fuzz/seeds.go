package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"xypher/internal/project"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addLanguageSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	// добавляем хотя бы один минимальный пример на случай пустого testdata
	f.Add([]byte{})
	f.Add([]byte("func main() -> i32 { return 0; }\n"))

	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != project.SourceExt {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

// languageSeeds covers every statement form at least once.
var languageSeeds = []string{
	"import math from xystd;\nsay(xy_sqrt(4.0));",
	"const limit: i64 = -3;\nown buf: str = \"x\";",
	"func f(a: i32, b: f64) -> f64 { return a * b; }",
	"let i = 0;\nloopwhile (i < 3) { i += 1; if (i == 2) { break; } }",
	"for (;;) { continue; }",
	"if (true) { say(1); } else if (false) { say(2); } else { say('c'); }",
	"let s = \"a\\u{1F600}b\\n\";\ntrace(s);",
	"let n = 255 + 1e3 - 2.5E-1 % 7 << 2;",
	"let b = !(1 <= 2) || 3 != 4 && -5 > +6;",
}

func addLanguageSeeds(f *testing.F) {
	for _, src := range languageSeeds {
		f.Add([]byte(src))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxFuzzInput {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxFuzzInput]...)
}
