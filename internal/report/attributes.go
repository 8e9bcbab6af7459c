package report

import (
	"github.com/bluenviron/gosdp/pkg/sdp"
)

const (
	maxSingleValue = 72
	maxMultiValue  = 68
)

// AttributeGroup contains the values of all attributes with the same name.
type AttributeGroup struct {
	Name   string
	Values []string
}

// IsFlag returns whether all attributes in the group are value-less.
func (g AttributeGroup) IsFlag() bool {
	for _, v := range g.Values {
		if v != "" {
			return false
		}
	}
	return true
}

// GroupAttributes groups attributes by name, in order of first appearance.
func GroupAttributes(attrs []sdp.Attribute) []AttributeGroup {
	var groups []AttributeGroup
	index := make(map[string]int)

	for _, attr := range attrs {
		i, ok := index[attr.Name()]
		if !ok {
			i = len(groups)
			index[attr.Name()] = i
			groups = append(groups, AttributeGroup{Name: attr.Name()})
		}
		groups[i].Values = append(groups[i].Values, attr.Value())
	}

	return groups
}

func truncate(v string, maxLen int) string {
	runes := []rune(v)
	if len(runes) <= maxLen {
		return v
	}
	return string(runes[:maxLen-3]) + "…"
}
