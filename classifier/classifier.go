package classifier

import "strings"

// PropertyType is the category assigned to a lead based on its property
// reference. Values are the display strings persisted in the leads store.
type PropertyType string

const (
	House      PropertyType = "Casa"
	Apartment  PropertyType = "Apartamento"
	Land       PropertyType = "Terreno"
	Commercial PropertyType = "Comercial"
	Launch     PropertyType = "Lançamento"
	Other      PropertyType = "Outros"
	Undefined  PropertyType = "Indefinido"
)

// launchReferences are the campaign names recognized by classification,
// compared after uppercasing.
var launchReferences = map[string]bool{
	"WIND OCEANICA":     true,
	"TRESOR CAMBOINHAS": true,
}

// prefixRules are checked before keyword rules. The ordering is part of the
// contract: historical rows were classified with prefix rules winning over
// any keyword that would also match, so it must not be reordered.
var prefixRules = []struct {
	prefix string
	ptype  PropertyType
}{
	{"CA", House},
	{"AP", Apartment},
	{"TR", Land},
	{"CO", Commercial},
}

var keywordRules = []struct {
	keywords []string
	ptype    PropertyType
}{
	{[]string{"CASA"}, House},
	{[]string{"APARTAMENTO", "APT"}, Apartment},
	{[]string{"TERRENO"}, Land},
	{[]string{"COMERCIAL", "LOJA", "SALA"}, Commercial},
	{[]string{"LANÇAMENTO", "LANCAMENTO"}, Launch},
}

// Classify maps a free-text property reference to a PropertyType.
// An empty reference yields Undefined; a non-empty reference that matches
// no rule yields Other. The function is pure.
func Classify(reference string) PropertyType {
	if reference == "" {
		return Undefined
	}

	ref := strings.TrimSpace(strings.ToUpper(reference))

	for _, rule := range prefixRules {
		if strings.HasPrefix(ref, rule.prefix) {
			return rule.ptype
		}
	}

	if launchReferences[ref] {
		return Launch
	}

	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(ref, kw) {
				return rule.ptype
			}
		}
	}

	return Other
}
