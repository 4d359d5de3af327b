package platforms

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/solarium-dev/solarium/compilation/buildinfo"
	"github.com/solarium-dev/solarium/compilation/types"
)

// ParseBuildInfoDirectory discovers every build-info document in buildDirectory and assembles a compilation unit
// from each into the provided session. Documents are processed in modification-time order, oldest first, so later
// builds of the same project are observed last. The schema parsed here is the hardhat build-info schema, which is
// shared by any toolchain wrapping the same build pipeline (e.g. foundry).
//
// target is the build entry point the user pointed the platform at; workingDir is the toolchain's declared project
// root, which anchors relative source paths. Returns an error if the directory is unusable, yields no documents, or
// any document fails to parse. A document failure discards that document's partially built unit from the session
// before returning.
func ParseBuildInfoDirectory(session *types.Session, target string, buildDirectory string, workingDir string) error {
	// The build directory must exist and actually be a directory.
	directoryInfo, err := os.Stat(buildDirectory)
	if err != nil || !directoryInfo.IsDir() {
		return &types.CompilationInvalidError{
			Reason:   fmt.Sprintf("'%s' is not a directory, could not discover build-info documents. Can you run the build command?", buildDirectory),
			Document: buildDirectory,
		}
	}

	// Collect candidate documents, sorted by modification time.
	candidates, err := listBuildInfoCandidates(buildDirectory)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return &types.CompilationInvalidError{
			Reason:   fmt.Sprintf("'%s' contains no build-info documents. Can you run the build command?", buildDirectory),
			Document: buildDirectory,
		}
	}

	// Create a filename resolver cache scoped to this discovery session, then assemble one compilation unit per
	// document.
	resolverCache, err := types.NewResolverCache()
	if err != nil {
		return err
	}
	builder := &buildinfo.Builder{
		ProjectRoot:   workingDir,
		WorkingDir:    workingDir,
		ResolverCache: resolverCache,
	}

	for _, candidate := range candidates {
		document, err := buildinfo.ParseFile(filepath.Join(buildDirectory, candidate))
		if err != nil {
			return err
		}

		// Each document produces exactly one unit, keyed by the document's base name.
		unit, err := session.CreateCompilationUnit(document.Name)
		if err != nil {
			return err
		}
		if err := builder.Build(document, unit, target); err != nil {
			// A failed document's partially built unit never stays in the model.
			session.RemoveCompilationUnit(document.Name)
			return err
		}
	}
	return nil
}

// listBuildInfoCandidates returns the names of all JSON documents directly within the provided directory, ordered by
// file modification time, oldest first.
func listBuildInfoCandidates(buildDirectory string) ([]string, error) {
	dirEntries, err := os.ReadDir(buildDirectory)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Filter for JSON files and capture their modification times for ordering.
	type candidate struct {
		name    string
		modTime time.Time
	}
	candidates := make([]candidate, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || !strings.HasSuffix(dirEntry.Name(), ".json") {
			continue
		}
		info, err := dirEntry.Info()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		candidates = append(candidates, candidate{name: dirEntry.Name(), modTime: info.ModTime()})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].modTime.Before(candidates[j].modTime)
	})

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}
	return names, nil
}

// fileExistsAny returns a boolean indicating whether any of the provided file names exists within the directory.
func fileExistsAny(directory string, fileNames ...string) bool {
	for _, fileName := range fileNames {
		if info, err := os.Stat(filepath.Join(directory, fileName)); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

// joinToolchainPath joins a toolchain-reported path onto a base directory. Toolchains may report their configured
// paths either relative to the project or as absolute paths; absolute paths are used as-is.
func joinToolchainPath(base string, reported string) string {
	if filepath.IsAbs(reported) {
		return filepath.Clean(reported)
	}
	return filepath.Join(base, reported)
}

// absoluteTarget returns the absolute form of a platform target path, falling back to the path itself if it cannot
// be resolved against the current directory.
func absoluteTarget(target string) string {
	if absolute, err := filepath.Abs(target); err == nil {
		return absolute
	}
	return target
}
