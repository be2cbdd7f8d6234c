package schema

// Collect returns the searchable text fields under root, depth-first in
// declaration order. Localized fields are emitted as i18n.<culture>.<field>
// for each culture, in the order given. Nothing is deduplicated.
func Collect(root *Node, prefix string, cultures []string) []string {
	return collect(nil, root, prefix, cultures)
}

func collect(fields []string, n *Node, prefix string, cultures []string) []string {
	if n == nil {
		return fields
	}

	for _, p := range n.Properties {
		switch Classify(p.Name, p.Node) {
		case KindI18n:
			fields = appendI18n(fields, p.Node, prefix, cultures)
		case KindObject, KindDynamic:
			fields = collect(fields, p.Node, prefix+p.Name+".", cultures)
		case KindText:
			fields = append(fields, prefix+p.Name)
		case KindOther:
		}
	}
	return fields
}

// appendI18n adds the leaf names of each culture block. Leaves are not recursed.
func appendI18n(fields []string, n *Node, prefix string, cultures []string) []string {
	for _, culture := range cultures {
		block, ok := n.Property(culture)
		if !ok || block == nil {
			continue
		}
		for _, leaf := range block.Properties {
			fields = append(fields, prefix+I18nProperty+"."+culture+"."+leaf.Name)
		}
	}
	return fields
}
