package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"xypher/internal/modules"
	"xypher/internal/types"
)

// SourceExt is the extension of Xypher source files.
const SourceExt = ".xyp"

// Manifest is a loaded xypher.toml together with where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package     PackageConfig           `toml:"package"`
	Diagnostics DiagnosticsConfig       `toml:"diagnostics"`
	Modules     map[string]ModuleConfig `toml:"modules"`
}

type PackageConfig struct {
	Name string `toml:"name"`
	Main string `toml:"main"`
	// Language is a semver constraint on the compiler version, e.g. ">=0.1.0-0".
	Language string `toml:"language,omitempty"`
}

type DiagnosticsConfig struct {
	MaxErrors      uint `toml:"max_errors,omitempty"`
	MaxDiagnostics uint `toml:"max_diagnostics,omitempty"`
}

// ModuleConfig declares extra runtime functions importable under the
// module's name. The functions must be provided at link time.
type ModuleConfig struct {
	Functions []FunctionConfig `toml:"functions"`
}

type FunctionConfig struct {
	Name    string   `toml:"name"`
	Returns string   `toml:"returns,omitempty"`
	Params  []string `toml:"params,omitempty"`
}

// Load locates xypher.toml from startDir upward and decodes it.
// ok is false when no manifest exists.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes and validates a single manifest file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if cfg.Package.Language != "" {
		if _, err := semver.NewConstraint(cfg.Package.Language); err != nil {
			return Config{}, fmt.Errorf("%s: invalid [package].language %q: %w", path, cfg.Package.Language, err)
		}
	}
	for _, name := range sortedKeys(cfg.Modules) {
		if name == modules.Core {
			return Config{}, fmt.Errorf("%s: [modules.%s] is reserved", path, name)
		}
		for i, f := range cfg.Modules[name].Functions {
			if err := f.validate(); err != nil {
				return Config{}, fmt.Errorf("%s: [modules.%s].functions[%d]: %w", path, name, i, err)
			}
		}
	}
	return cfg, nil
}

func (f FunctionConfig) validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return errors.New("missing name")
	}
	if f.Returns != "" && !types.IsPrimitiveName(f.Returns) {
		return fmt.Errorf("%s: unknown return type %q", f.Name, f.Returns)
	}
	for _, p := range f.Params {
		if !types.IsPrimitiveName(p) || p == "void" {
			return fmt.Errorf("%s: invalid parameter type %q", f.Name, p)
		}
	}
	return nil
}

// CheckLanguage reports an error when compilerVersion does not satisfy
// [package].language. An empty constraint accepts every version.
func (c Config) CheckLanguage(compilerVersion string) error {
	if c.Package.Language == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(c.Package.Language)
	if err != nil {
		return err
	}
	v, err := semver.NewVersion(compilerVersion)
	if err != nil {
		return fmt.Errorf("compiler version %q: %w", compilerVersion, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("package %s requires language %s, compiler is %s", c.Package.Name, c.Package.Language, v)
	}
	return nil
}

// ApplyModules registers the manifest's modules in reg.
func (c Config) ApplyModules(reg *modules.Registry) {
	for _, name := range sortedKeys(c.Modules) {
		specs := c.Modules[name].Functions
		fns := make([]modules.Function, 0, len(specs))
		for _, s := range specs {
			params := make([]types.Type, len(s.Params))
			for i, p := range s.Params {
				params[i] = types.FromName(p)
			}
			fns = append(fns, modules.Function{
				Name:    s.Name,
				Params:  params,
				Result:  types.FromName(s.Returns),
				Checked: true,
			})
		}
		reg.Extend(name, fns...)
	}
}

// MainPath resolves [package].main against the project root.
func (m *Manifest) MainPath() (string, error) {
	mainRel := strings.TrimSpace(m.Config.Package.Main)
	if mainRel == "" {
		return "", fmt.Errorf("%s: missing [package].main", m.Path)
	}
	mainPath := filepath.Join(m.Root, filepath.FromSlash(mainRel))
	if filepath.Ext(mainPath) != SourceExt {
		return "", fmt.Errorf("%s: [package].main must be a %s file", m.Path, SourceExt)
	}
	if _, err := os.Stat(mainPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [package].main path does not exist: %s", m.Path, mainPath)
		}
		return "", fmt.Errorf("%s: failed to stat [package].main: %w", m.Path, err)
	}
	return mainPath, nil
}

// Default returns the manifest written by `xyc init`.
func Default(name, compilerVersion string) Config {
	cfg := Config{Package: PackageConfig{Name: name, Main: "main" + SourceExt}}
	if v, err := semver.NewVersion(compilerVersion); err == nil {
		cfg.Package.Language = fmt.Sprintf(">=%d.%d.0-0", v.Major(), v.Minor())
	}
	return cfg
}

// Encode renders cfg as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Init writes a new manifest and an entry file into dir. Existing files
// are left alone and reported as an error.
func Init(dir, name, compilerVersion string) (string, error) {
	if name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", err
		}
		name = filepath.Base(abs)
	}
	cfg := Default(name, compilerVersion)
	data, err := cfg.Encode()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	manifestPath := filepath.Join(dir, ManifestName)
	if err := writeNew(manifestPath, data); err != nil {
		return "", err
	}
	mainPath := filepath.Join(dir, cfg.Package.Main)
	if err := writeNew(mainPath, []byte(entryTemplate)); err != nil && !errors.Is(err, os.ErrExist) {
		return "", err
	}
	return manifestPath, nil
}

const entryTemplate = `func main() {
    say("hello from xypher");
}
`

func writeNew(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
