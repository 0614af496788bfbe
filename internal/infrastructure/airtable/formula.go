package airtable

import "strings"

var formulaEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quote renders value as a formula string literal.
func quote(value string) string {
	return `"` + formulaEscaper.Replace(value) + `"`
}

func fieldRef(field string) string {
	return "{" + field + "}"
}

// Eq matches rows whose field equals value exactly.
func Eq(field, value string) string {
	return fieldRef(field) + " = " + quote(value)
}

// IsTrue matches rows whose checkbox field is ticked.
func IsTrue(field string) string {
	return fieldRef(field) + " = TRUE()"
}

// RecordIDIn matches rows whose linked-record field contains recordID.
func RecordIDIn(field, recordID string) string {
	return "FIND(" + quote(recordID) + ", ARRAYJOIN(" + fieldRef(field) + "))"
}

// And joins the non-empty clauses. A single clause is returned unchanged.
func And(clauses ...string) string {
	var parts []string
	for _, c := range clauses {
		if c != "" {
			parts = append(parts, c)
		}
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	return "AND(" + strings.Join(parts, ", ") + ")"
}
