package ioschema

import "github.com/mpsense/sampler/pkg/schema"

// indexStatements collects index DDL of all models that provide it.
func indexStatements() []string {
	var res []string
	for _, m := range schema.AllModels() {
		if g, ok := m.(schema.DDLGenerator); ok {
			res = append(res, g.IndexDDL()...)
		}
	}
	return res
}
