package repository

import "slices"

// Document keys, kept identical to the historical documents.
const (
	fieldName         = "nom"
	fieldPhone        = "telephone"
	fieldAddress      = "adresse"
	fieldNotes        = "notes"
	fieldAvailability = "disponibilite"
	fieldDate         = "date"
	fieldStartTime    = "heureDebut"
	fieldEndTime      = "heureFin"
	fieldClientID     = "clientId"
	fieldEmployeeID   = "employeId"
	fieldType         = "type"
)

// stringField returns "" when the key is absent or not a string.
func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}

// stringsField keeps the string entries of a list field, without duplicates.
// Anything that is not a list yields an empty, non-nil slice.
func stringsField(fields map[string]any, key string) []string {
	out := make([]string, 0)
	items, ok := fields[key].([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		s, ok := item.(string)
		if !ok || slices.Contains(out, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}
