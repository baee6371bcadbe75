package service

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// The core (domain, ports, service) must not depend on transport or storage
// adapters.
func TestCoreDoesNotImportAdapters(t *testing.T) {
	forbidden := []string{
		"github.com/formotex/inventory-api/internal/api",
		"github.com/formotex/inventory-api/internal/infrastructure",
		"github.com/labstack/echo",
	}

	for _, dir := range []string{".", "../domain", "../ports"} {
		files, err := filepath.Glob(filepath.Join(dir, "*.go"))
		if err != nil {
			t.Fatalf("glob %s: %v", dir, err)
		}
		for _, path := range files {
			if strings.HasSuffix(path, "_test.go") {
				continue
			}
			f, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.ImportsOnly)
			if err != nil {
				t.Fatalf("parse %s: %v", path, err)
			}
			for _, imp := range f.Imports {
				p, _ := strconv.Unquote(imp.Path.Value)
				for _, bad := range forbidden {
					if p == bad || strings.HasPrefix(p, bad+"/") {
						t.Errorf("%s imports %s", path, p)
					}
				}
			}
		}
	}
}
