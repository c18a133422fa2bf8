package enrichment

import "github.com/hinderhq/hinder/internal/application/service"

// Accessors over a raw snapshot record. Every accessor is total: missing,
// null or wrongly-typed keys yield the zero value, never a panic.

func recordString(record map[string]any, key string) string {
	if v, ok := record[key].(string); ok {
		return v
	}
	return ""
}

func recordObject(record map[string]any, key string) map[string]any {
	if v, ok := record[key].(map[string]any); ok {
		return v
	}
	return map[string]any{}
}

func recordList(record map[string]any, key string) []map[string]any {
	raw, ok := record[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

func recordStrings(record map[string]any, key string) []string {
	raw, ok := record[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func recordName(record map[string]any) string     { return recordString(record, "name") }
func recordLocation(record map[string]any) string { return recordString(record, "city") }

func recordCurrentRole(record map[string]any) string {
	if pos := recordString(record, "position"); pos != "" {
		return pos
	}
	if exp := recordExperience(record); len(exp) > 0 {
		return recordString(exp[0], "title")
	}
	return ""
}

func recordCurrentCompany(record map[string]any) string {
	return recordString(recordObject(record, "current_company"), "name")
}

func recordExperience(record map[string]any) []map[string]any {
	return recordList(record, "experience")
}

func recordEducation(record map[string]any) []map[string]any {
	return recordList(record, "education")
}

func buildEnrichedProfile(record map[string]any) *service.EnrichedProfile {
	out := &service.EnrichedProfile{
		Name:     recordName(record),
		Headline: recordCurrentRole(record),
		Company:  recordCurrentCompany(record),
		Skills:   recordStrings(record, "skills"),
	}
	if edu := recordEducation(record); len(edu) > 0 {
		out.School = recordString(edu[0], "title")
	}
	return out
}
