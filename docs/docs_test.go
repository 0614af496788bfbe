package docs

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type operation struct {
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

type annotated struct {
	summary, tag string
}

// handlerAnnotations reads @Summary/@Tags/@Router triples from the handler sources.
func handlerAnnotations(t *testing.T) map[string]annotated {
	t.Helper()
	files, err := filepath.Glob("../internal/api/handler/*_handler.go")
	if err != nil || len(files) == 0 {
		t.Fatalf("no handler sources found: %v", err)
	}

	out := make(map[string]annotated)
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("open %s: %v", path, err)
		}
		var cur annotated
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(sc.Text()), "//"))
			if len(fields) < 2 {
				continue
			}
			switch fields[0] {
			case "@Summary":
				cur.summary = strings.Join(fields[1:], " ")
			case "@Tags":
				cur.tag = fields[1]
			case "@Router":
				method := strings.Trim(fields[2], "[]")
				out[method+" "+fields[1]] = cur
				cur = annotated{}
			}
		}
		f.Close()
	}
	return out
}

func TestDocMatchesHandlerAnnotations(t *testing.T) {
	var doc struct {
		Paths map[string]map[string]operation `json:"paths"`
	}
	if err := json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc); err != nil {
		t.Fatalf("document is not valid JSON: %v", err)
	}

	want := handlerAnnotations(t)
	documented := 0
	for path, methods := range doc.Paths {
		for method, op := range methods {
			documented++
			key := method + " " + path
			a, ok := want[key]
			if !ok {
				t.Errorf("%s documented but not annotated on any handler", key)
				continue
			}
			if op.Summary != a.summary {
				t.Errorf("%s summary %q, annotation says %q", key, op.Summary, a.summary)
			}
			if len(op.Tags) != 1 || op.Tags[0] != a.tag {
				t.Errorf("%s tags %v, annotation says %q", key, op.Tags, a.tag)
			}
		}
	}
	if documented != len(want) {
		t.Fatalf("documented %d operations, handlers annotate %d", documented, len(want))
	}
}
