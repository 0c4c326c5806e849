package schemagen

import (
	"strings"

	"github.com/usestring/schemagen-mcp/pkg/sample"
)

// resolveRef maps a reference field name to the group it points at.
//
// The "Ref" suffix is stripped. Groups are conventionally plural, so a
// singular candidate is pluralized unless the field holds an array (an array
// field already names the collection). A candidate that is not a group of the
// corpus resolves to Placeholder.
func (g *Generator) resolveRef(corpus *sample.Corpus, fieldName string, array bool) string {
	target := strings.TrimSuffix(fieldName, refSuffix)
	if !array && g.plural.IsSingular(target) {
		target = g.plural.Plural(target)
	}

	if !corpus.Has(target) {
		g.logger.Debug("unresolved reference",
			"field", fieldName,
			"candidate", target,
		)
		return Placeholder
	}
	return target
}
