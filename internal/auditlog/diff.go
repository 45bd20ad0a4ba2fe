package auditlog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff is the unified diff between the before and after state of a record.
type Diff struct {
	Unified string `json:"unified"`
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
}

// Diff compares the stored before and after documents.
func (r Record) Diff() Diff {
	return UnifiedDiff([]byte(r.BeforeJSON.String), []byte(r.AfterJSON.String))
}

// NormalizeJSON indents a document so diffs are stable. encoding/json
// already writes object keys in sorted order. Empty input yields "".
func NormalizeJSON(b []byte) string {
	if len(bytes.TrimSpace(b)) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return string(b)
	}
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
	return strings.TrimRight(buf.String(), "\n")
}

// UnifiedDiff returns a unified diff of two JSON documents. Only key lines
// count toward Added and Removed.
func UnifiedDiff(beforeJSON, afterJSON []byte) Diff {
	a := difflib.SplitLines(NormalizeJSON(beforeJSON) + "\n")
	b := difflib.SplitLines(NormalizeJSON(afterJSON) + "\n")
	s, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        a,
		B:        b,
		FromFile: "before",
		ToFile:   "after",
		Context:  3,
	})
	d := Diff{Unified: s}
	d.Added, d.Removed = countChanges(s)
	return d
}

func countChanges(unified string) (add, del int) {
	sc := bufio.NewScanner(strings.NewReader(unified))
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") {
			continue
		}
		if !strings.Contains(line, "\":") {
			continue
		}
		switch {
		case strings.HasPrefix(line, "+"):
			add++
		case strings.HasPrefix(line, "-"):
			del++
		}
	}
	return
}
