package skills

import (
	"os"
	"path/filepath"
)

// ResolveDirs computes the ordered skill directory list for this
// process, lowest to highest override priority:
//
//  1. the bundled skills directory shipped next to the executable
//  2. ~/.skillserve/skills (user-global)
//  3. ./.skillserve/skills (project, hidden)
//  4. ./skills (project, visible)
//  5. override, when non-empty (typically SKILLSERVE_SKILLS_DIR)
//
// A candidate is included only if it exists as a directory at the time
// of the check. When nothing exists the bundled directory is returned
// anyway so callers always operate on a non-empty, deterministic list.
// Membership is fixed for the process lifetime; contents are re-read on
// every scan.
func ResolveDirs(override string) []string {
	candidates := []string{bundledDir()}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".skillserve", "skills"))
	}
	candidates = append(candidates,
		filepath.Join(".skillserve", "skills"),
		"skills",
	)
	if override != "" {
		candidates = append(candidates, override)
	}
	return resolveExisting(candidates, bundledDir())
}

// resolveExisting keeps candidates that exist as directories, preserving
// order. An empty result falls back to the given path regardless of its
// existence.
func resolveExisting(candidates []string, fallback string) []string {
	dirs := make([]string, 0, len(candidates))
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		dirs = append(dirs, fallback)
	}
	return dirs
}

// bundledDir is the skills directory distributed alongside the binary.
func bundledDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "skills"
	}
	return filepath.Join(filepath.Dir(exe), "skills")
}
