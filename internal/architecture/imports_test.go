package architecture_test

import (
	"bufio"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// Lower layers must not reach into the ones that build on them.
var layerRules = []struct {
	prefix     string
	disallowed []string
}{
	{"internal/platform/", []string{"/internal/domain/", "/internal/data/", "/internal/services", "/internal/http", "/internal/app", "/internal/events"}},
	{"internal/domain/", []string{"/internal/data/", "/internal/services", "/internal/http", "/internal/app"}},
	{"internal/data/", []string{"/internal/services", "/internal/http", "/internal/app", "/internal/events"}},
	{"internal/events/", []string{"/internal/data/", "/internal/services", "/internal/http", "/internal/app"}},
	{"internal/services/", []string{"/internal/http", "/internal/app"}},
	{"internal/http/", []string{"/internal/app", "/internal/data/db"}},
}

func TestImportBoundaries(t *testing.T) {
	start, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	root, err := findModuleRoot(start)
	if err != nil {
		t.Fatalf("find module root: %v", err)
	}
	modulePath, err := readModulePath(filepath.Join(root, "go.mod"))
	if err != nil {
		t.Fatalf("read module path: %v", err)
	}

	fset := token.NewFileSet()
	var violations []string

	walkErr := filepath.WalkDir(filepath.Join(root, "internal"), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		disallowed := disallowedFor(rel)
		if len(disallowed) == 0 {
			return nil
		}
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, spec := range f.Imports {
			imp, err := strconv.Unquote(spec.Path.Value)
			if err != nil || !strings.HasPrefix(imp, modulePath+"/") {
				continue
			}
			local := strings.TrimPrefix(imp, modulePath)
			for _, bad := range disallowed {
				if local == strings.TrimSuffix(bad, "/") || strings.HasPrefix(local, strings.TrimSuffix(bad, "/")+"/") {
					violations = append(violations, fmt.Sprintf("- %s imports %q", rel, imp))
					break
				}
			}
		}
		return nil
	})
	if walkErr != nil {
		t.Fatalf("walk internal/: %v", walkErr)
	}
	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n%s", strings.Join(violations, "\n"))
	}
}

func disallowedFor(rel string) []string {
	for _, r := range layerRules {
		if strings.HasPrefix(rel, r.prefix) {
			return r.disallowed
		}
	}
	return nil
}

func findModuleRoot(start string) (string, error) {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found from %s", start)
		}
		dir = parent
	}
}

func readModulePath(goModPath string) (string, error) {
	f, err := os.Open(goModPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if mp, ok := strings.CutPrefix(line, "module "); ok {
			if mp = strings.TrimSpace(mp); mp != "" {
				return mp, nil
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("module path not found in %s", goModPath)
}
