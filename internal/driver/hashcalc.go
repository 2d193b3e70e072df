package driver

import (
	"fmt"
	"strings"

	"xypher/internal/modules"
	"xypher/internal/project"
	"xypher/internal/source"
	"xypher/internal/version"
)

// cacheKey identifies a check result: H(content || options || registry).
// The compiler version is part of options, so a new build never reads
// results of an old one.
func cacheKey(file *source.File, opts Options) project.Digest {
	optDigest := project.DigestOf(
		version.Version,
		fmt.Sprint(diskCacheSchemaVersion),
		fmt.Sprint(opts.MaxErrors),
		fmt.Sprint(opts.MaxDiagnostics),
	)
	return project.Combine(project.Digest(file.Hash), optDigest, registryDigest(opts.registry()))
}

// registryDigest covers every importable function signature, so a manifest
// that adds or changes a module invalidates cached results.
func registryDigest(reg *modules.Registry) project.Digest {
	var parts []string
	for _, name := range reg.Names() {
		parts = append(parts, "module:"+name)
		for _, f := range reg.Functions(name) {
			params := make([]string, len(f.Params))
			for i, p := range f.Params {
				params[i] = p.String()
			}
			parts = append(parts, fmt.Sprintf("%s(%s)%s checked=%t", f.Name, strings.Join(params, ","), f.Result, f.Checked))
		}
	}
	return project.DigestOf(parts...)
}
