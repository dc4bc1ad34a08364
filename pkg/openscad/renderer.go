// Package openscad renders OpenSCAD sources to STL through the
// openscad binary and resolves their use/include dependency closure,
// so a viewer can re-render when any file in the tree changes.
package openscad

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	useRe     = regexp.MustCompile(`^\s*use\s*<([^>]+)>`)
	includeRe = regexp.MustCompile(`^\s*include\s*<([^>]+)>`)
)

// Renderer runs the openscad binary against sources under workDir
type Renderer struct {
	workDir string
}

// NewRenderer creates a renderer resolving relative paths against
// workDir
func NewRenderer(workDir string) *Renderer {
	return &Renderer{workDir: workDir}
}

func (r *Renderer) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.workDir, path)
}

// RenderToSTL renders an OpenSCAD file into outputFile. The openscad
// binary must be on PATH.
func (r *Renderer) RenderToSTL(scadFile, outputFile string) error {
	if _, err := exec.LookPath("openscad"); err != nil {
		return fmt.Errorf("openscad not found in PATH, install it from https://openscad.org/")
	}

	cmd := exec.Command("openscad", "-o", outputFile, r.abs(scadFile))
	cmd.Dir = r.workDir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("rendering %s: %w: %s", scadFile, err, strings.TrimSpace(stderr.String()))
		}
		return fmt.Errorf("rendering %s: %w", scadFile, err)
	}
	return nil
}

// Dependencies returns scadFile and every file it transitively pulls
// in through use or include statements
func (r *Renderer) Dependencies(scadFile string) ([]string, error) {
	visited := make(map[string]bool)
	var deps []string

	var walk func(file string) error
	walk = func(file string) error {
		if visited[file] {
			return nil
		}
		visited[file] = true
		deps = append(deps, file)

		direct, err := r.parseDependencies(file)
		if err != nil {
			return err
		}
		for _, dep := range direct {
			if err := walk(dep); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(r.abs(scadFile)); err != nil {
		return nil, err
	}
	return deps, nil
}

// parseDependencies scans one file for use/include statements
func (r *Renderer) parseDependencies(scadFile string) ([]string, error) {
	file, err := os.Open(scadFile)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", scadFile, err)
	}
	defer file.Close()

	dir := filepath.Dir(scadFile)
	var deps []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		for _, re := range []*regexp.Regexp{useRe, includeRe} {
			if matches := re.FindStringSubmatch(line); len(matches) > 1 {
				deps = append(deps, r.resolveDepPath(matches[1], dir))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", scadFile, err)
	}
	return deps, nil
}

// resolveDepPath resolves a use/include target. Explicitly relative
// paths bind to the referencing file; otherwise the referencing
// directory is tried first, then the work directory.
func (r *Renderer) resolveDepPath(dep, dir string) string {
	if strings.HasPrefix(dep, "./") || strings.HasPrefix(dep, "../") {
		return filepath.Clean(filepath.Join(dir, dep))
	}

	path := filepath.Join(dir, dep)
	if _, err := os.Stat(path); err == nil {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(r.workDir, dep))
}
