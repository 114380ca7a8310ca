package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string) string {
	var columns []string
	for _, f := range taggedFields(model) {
		columns = append(columns, fmt.Sprintf("    %s %s", f.db, f.ddl))
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

type field struct {
	db, ddl string
}

func taggedFields(model any) []field {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var res []field
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		dbTag := f.Tag.Get("db")
		ddlTag := f.Tag.Get("ddl")
		if dbTag != "" && ddlTag != "" {
			res = append(res, field{db: dbTag, ddl: ddlTag})
		}
	}
	return res
}

// Columns returns the column names of a model in field order.
func Columns(model any) []string {
	fields := taggedFields(model)
	res := make([]string, len(fields))
	for i := range fields {
		res[i] = fields[i].db
	}
	return res
}

// Sample DDL methods
func (s Sample) TableDDL() string {
	return generateDDL(s, s.TableName())
}

func (s Sample) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_samples_datetime ON samples(datetime);",
	}
}

func (s Sample) TableName() string {
	return "samples"
}
