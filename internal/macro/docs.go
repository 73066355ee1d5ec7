package macro

import (
	"strings"

	"go.starlark.net/syntax"
)

// parseDocs statically parses a .star file and returns the first docstring
// line of every public top-level function.
func parseDocs(filename string, content []byte) (map[string]string, error) {
	f, err := syntax.Parse(filename, content, 0)
	if err != nil {
		return nil, err
	}

	docs := make(map[string]string)
	for _, stmt := range f.Stmts {
		def, ok := stmt.(*syntax.DefStmt)
		if !ok || strings.HasPrefix(def.Name.Name, "_") {
			continue
		}
		if doc := docstring(def.Body); doc != "" {
			docs[def.Name.Name] = doc
		}
	}
	return docs, nil
}

// docstring returns the first line of the body's leading string literal.
func docstring(body []syntax.Stmt) string {
	if len(body) == 0 {
		return ""
	}
	expr, ok := body[0].(*syntax.ExprStmt)
	if !ok {
		return ""
	}
	lit, ok := expr.X.(*syntax.Literal)
	if !ok || lit.Token != syntax.STRING {
		return ""
	}
	s, ok := lit.Value.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}
