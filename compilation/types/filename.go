package types

import (
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Filename is the canonical identity of a source file within the compilation model. Toolchains report the same file
// under several inconsistent representations (absolute, relative to the working directory, relative to the declared
// project root), so all filename-based lookups key off this type rather than raw path strings. ResolveFilename and
// ResolveFilenameCached are the sole constructors; a Filename should never be assembled field-by-field by callers.
type Filename struct {
	// Absolute describes the lexically-resolved absolute path of the file.
	Absolute string

	// Relative describes the path of the file relative to the project root (or the working directory, if the file
	// does not reside under the project root).
	Relative string

	// Short describes the display form of the file path. Platforms which shorten dependency paths may differ from
	// Relative here; for build-info based platforms it matches Relative.
	Short string
}

// IsEmpty returns a boolean indicating whether this Filename carries no path information.
func (f Filename) IsEmpty() bool {
	return f.Absolute == "" && f.Relative == "" && f.Short == ""
}

// String returns the short display form of the Filename.
func (f Filename) String() string {
	return f.Short
}

// resolverCacheSize describes the maximum number of resolved filenames retained by a ResolverCache.
const resolverCacheSize = 4096

// resolverCacheKey describes the full input tuple of a filename resolution, used as the memoization key so that
// differing project roots or working directories never alias each other's entries.
type resolverCacheKey struct {
	raw         string
	projectRoot string
	workingDir  string
}

// ResolverCache memoizes filename resolution results across the build-info documents of one discovery session.
// Resolution itself is a pure function, so a cache instance may be shared by concurrent readers only once it is no
// longer written to; concurrent writers must each use their own instance.
type ResolverCache struct {
	// entries describes the underlying bounded LRU mapping of resolution inputs to resolved filenames.
	entries *lru.Cache[resolverCacheKey, Filename]
}

// NewResolverCache creates an empty ResolverCache, or returns an error if one occurs.
func NewResolverCache() (*ResolverCache, error) {
	entries, err := lru.New[resolverCacheKey, Filename](resolverCacheSize)
	if err != nil {
		return nil, err
	}
	return &ResolverCache{entries: entries}, nil
}

// ResolveFilename canonicalizes an arbitrary path string reported by a toolchain (or provided by a user) into a
// Filename, given the project root and the working directory the toolchain ran from. The same file referenced as an
// absolute path, as a working-directory-relative path, or as a project-root-relative path collapses to an equal
// Filename value. Resolution is purely lexical: build-info documents may reference files which no longer exist on
// disk, so existence is never consulted.
func ResolveFilename(rawPath string, projectRoot string, workingDir string) Filename {
	// Fall back between the two base directories if only one was provided.
	if workingDir == "" {
		workingDir = projectRoot
	}
	if projectRoot == "" {
		projectRoot = workingDir
	}

	// Determine the absolute path. Relative paths are anchored at the working directory, as that is where the
	// toolchain resolved them from. If that interpretation escapes both known directories while the project-root
	// interpretation does not, the path was reported relative to the project root instead.
	var absolute string
	if filepath.IsAbs(rawPath) {
		absolute = filepath.Clean(rawPath)
	} else {
		absolute = filepath.Join(workingDir, rawPath)
		if !pathWithin(absolute, workingDir) && !pathWithin(absolute, projectRoot) {
			if fromRoot := filepath.Join(projectRoot, rawPath); pathWithin(fromRoot, projectRoot) {
				absolute = fromRoot
			}
		}
	}

	// Compute the relative form against the project root, falling back to the working directory, and finally to the
	// absolute path itself for files residing under neither.
	relative := absolute
	if rel, err := filepath.Rel(projectRoot, absolute); err == nil && !strings.HasPrefix(rel, "..") {
		relative = rel
	} else if rel, err := filepath.Rel(workingDir, absolute); err == nil && !strings.HasPrefix(rel, "..") {
		relative = rel
	}
	relative = filepath.ToSlash(relative)

	return Filename{
		Absolute: absolute,
		Relative: relative,
		Short:    relative,
	}
}

// ResolveFilenameCached canonicalizes a path string the same way ResolveFilename does, memoizing results in the
// provided cache. A nil cache is valid and simply disables memoization.
func ResolveFilenameCached(cache *ResolverCache, rawPath string, projectRoot string, workingDir string) Filename {
	if cache == nil {
		return ResolveFilename(rawPath, projectRoot, workingDir)
	}

	// Return the memoized result if this exact input tuple was resolved before.
	key := resolverCacheKey{raw: rawPath, projectRoot: projectRoot, workingDir: workingDir}
	if filename, ok := cache.entries.Get(key); ok {
		return filename
	}

	// Otherwise resolve and record the result.
	filename := ResolveFilename(rawPath, projectRoot, workingDir)
	cache.entries.Add(key, filename)
	return filename
}

// pathWithin returns a boolean indicating whether path lexically resides at or beneath dir.
func pathWithin(path string, dir string) bool {
	if dir == "" {
		return false
	}
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}
