package collection

import (
	"strings"

	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/ports"
)

// FixRelativeFilePaths rewrites every path-valued parameter that starts with
// token so it is relative to newPath. Plain text parameters and the project
// environment variables are left alone. Nested groups are walked too.
func (c *Collection) FixRelativeFilePaths(token, newPath string, resolver ports.PathResolver) {
	if resolver == nil {
		return
	}
	rewritePaths(c, func(value string) (string, bool) {
		return resolver.FixFilePath(token, newPath, value)
	})
}

// FixPathName renames the "[oldName]" prefix of path parameters to "[newName]".
func (c *Collection) FixPathName(oldName, newName string) {
	prefix := "[" + oldName + "]"
	rewritePaths(c, func(value string) (string, bool) {
		if !strings.HasPrefix(value, prefix) {
			return value, false
		}
		return "[" + newName + "]" + value[len(prefix):], true
	})
}

func rewritePaths(coll domain.Collection, rewrite func(string) (string, bool)) {
	for _, n := range coll.Nodes() {
		for _, p := range n.Params() {
			if !p.IsPathLike() || p.Name() == domain.ParamEnvVars {
				continue
			}
			value := p.String()
			if value == "" {
				continue
			}
			if fixed, ok := rewrite(value); ok {
				p.SetValue(fixed)
			}
		}
		if g, ok := n.AsContainer(); ok {
			rewritePaths(g, rewrite)
		}
	}
}
