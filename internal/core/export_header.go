package core

import "strings"

// ExportClause is one comma-separated clause of an Export-Package header.
// A clause may name several packages sharing the same attributes.
type ExportClause struct {
	Packages []string
	Version  string
}

// ParseExportHeader splits an Export-Package value into clauses. Commas
// and semicolons inside double quotes (for example in uses:="a,b") do not
// split. A clause without a version attribute gets DefaultVersion.
func ParseExportHeader(value string) []ExportClause {
	var clauses []ExportClause
	for _, rawClause := range splitOutsideQuotes(value, ',') {
		clause := ExportClause{Version: DefaultVersion}
		for _, part := range splitOutsideQuotes(rawClause, ';') {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if strings.Contains(part, ":=") {
				continue
			}
			if key, val, ok := strings.Cut(part, "="); ok {
				switch strings.ToLower(strings.TrimSpace(key)) {
				case "version", "specification-version":
					if version := unquote(val); version != "" {
						clause.Version = version
					}
				}
				continue
			}
			clause.Packages = append(clause.Packages, part)
		}
		if len(clause.Packages) > 0 {
			clauses = append(clauses, clause)
		}
	}
	return clauses
}

func splitOutsideQuotes(value string, sep rune) []string {
	var parts []string
	var current strings.Builder
	quoted := false
	for _, r := range value {
		switch {
		case r == '"':
			quoted = !quoted
			current.WriteRune(r)
		case r == sep && !quoted:
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func unquote(value string) string {
	return strings.Trim(strings.TrimSpace(value), `"`)
}
