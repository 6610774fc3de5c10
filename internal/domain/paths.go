package domain

import (
	"path"
	"strings"
)

// StripExt removes the final extension from a file name.
func StripExt(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

func baseOf(p string) string {
	return path.Base(p)
}

// ResolveProjectPath turns a reference found in fromFile into a clean
// project-relative slash path. Paths starting with "/" are root-relative,
// "./" and "../" are relative to fromFile's directory, and "@/" or "~/"
// aliases map to src/. Anything else is returned cleaned as-is.
func ResolveProjectPath(fromFile, ref string) string {
	ref = strings.TrimSpace(ref)
	switch {
	case strings.HasPrefix(ref, "@/"), strings.HasPrefix(ref, "~/"):
		return path.Clean("src/" + ref[2:])
	case strings.HasPrefix(ref, "/"):
		return path.Clean(strings.TrimPrefix(ref, "/"))
	case strings.HasPrefix(ref, "./"), strings.HasPrefix(ref, "../"):
		return path.Clean(path.Join(path.Dir(fromFile), ref))
	default:
		return path.Clean(ref)
	}
}

// IsLocalImport reports whether an import specifier points into the
// project rather than at a package.
func IsLocalImport(specifier string) bool {
	return strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") ||
		strings.HasPrefix(specifier, "/") || strings.HasPrefix(specifier, "@/") ||
		strings.HasPrefix(specifier, "~/") || strings.HasPrefix(specifier, "src/")
}
