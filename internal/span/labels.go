package span

import "fmt"

// EntityType classifies a named-entity span.
type EntityType string

const (
	EntityPerson   EntityType = "person"
	EntityGroup    EntityType = "group"
	EntityCitation EntityType = "citation"
)

// RefPartType classifies a part of a citation reference.
type RefPartType string

const (
	RefNamed       RefPartType = "named"
	RefNumbered    RefPartType = "numbered"
	RefDH          RefPartType = "dibur_hamatchil"
	RefRangeSymbol RefPartType = "range_symbol"
	RefRange       RefPartType = "range"
	RefRelative    RefPartType = "relative"
	RefIbid        RefPartType = "ibid"
	RefNonCts      RefPartType = "non_cts"
)

// Surface labels emitted by the Hebrew and English NER models.
var entityTypeByLabel = map[string]EntityType{
	// HE
	"מקור":   EntityCitation,
	"בן-אדם": EntityPerson,
	"קבוצה":  EntityGroup,
	// EN
	"Person":   EntityPerson,
	"Group":    EntityGroup,
	"Citation": EntityCitation,
}

var refPartTypeByLabel = map[string]RefPartType{
	// HE
	"כותרת":     RefNamed,
	"מספר":      RefNumbered,
	"דה":        RefDH,
	"סימן-טווח": RefRangeSymbol,
	"לקמן-להלן": RefRelative,
	"שם":        RefIbid,
	"לא-רציף":   RefNonCts,
	// EN
	"title":        RefNamed,
	"number":       RefNumbered,
	"DH":           RefDH,
	"range-symbol": RefRangeSymbol,
	"dir-ibid":     RefRelative,
	"ibid":         RefIbid,
	"non-cts":      RefNonCts,
}

// EntityTypeFromLabel maps a model surface label to its EntityType.
func EntityTypeFromLabel(label string) (EntityType, error) {
	t, ok := entityTypeByLabel[label]
	if !ok {
		return "", fmt.Errorf("unknown entity label %q", label)
	}
	return t, nil
}

// RefPartTypeFromLabel maps a model surface label to its RefPartType.
func RefPartTypeFromLabel(label string) (RefPartType, error) {
	t, ok := refPartTypeByLabel[label]
	if !ok {
		return "", fmt.Errorf("unknown ref part label %q", label)
	}
	return t, nil
}

// KnownLabel reports whether label belongs to either surface vocabulary.
func KnownLabel(label string) bool {
	if _, ok := entityTypeByLabel[label]; ok {
		return true
	}
	_, ok := refPartTypeByLabel[label]
	return ok
}

// Labels returns every known surface label. Useful for rule validation and
// CLI completion.
func Labels() []string {
	out := make([]string, 0, len(entityTypeByLabel)+len(refPartTypeByLabel))
	for l := range entityTypeByLabel {
		out = append(out, l)
	}
	for l := range refPartTypeByLabel {
		out = append(out, l)
	}
	return out
}
