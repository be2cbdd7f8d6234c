package schema

// Kind is the collector's classification of a schema property.
type Kind int

// Kinds in precedence order: the first matching rule wins.
const (
	// KindOther contributes no field (numbers, dates, strings kept out of _all).
	KindOther Kind = iota
	// KindI18n fans out one field per active culture.
	KindI18n
	// KindObject is a nested object with declared properties.
	KindObject
	// KindDynamic is a foreign or dynamically mapped subtree, walked like an object.
	KindDynamic
	// KindText is a string leaf included in _all.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindI18n:
		return "i18n"
	case KindObject:
		return "object"
	case KindDynamic:
		return "dynamic"
	case KindText:
		return "text"
	default:
		return "other"
	}
}

// Classify tags a property by name and node shape.
func Classify(name string, n *Node) Kind {
	switch {
	case name == I18nProperty:
		return KindI18n
	case n == nil:
		return KindOther
	case n.Type == TypeObject:
		return KindObject
	case n.HasDynamic():
		return KindDynamic
	case n.Type == TypeString && n.IncludedInAll():
		return KindText
	default:
		return KindOther
	}
}
