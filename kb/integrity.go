package kb

// Reference is a cross-table name that points at no record. Such references
// are legal: rendered master lists may name people the dataset does not
// describe, and a calligrapher's style may have no style record.
type Reference struct {
	Table string // "calligrapher" or "style"
	Owner string // record holding the reference
	Field string // "style" or "masters"
	Name  string // the name that resolves nowhere
}

// DanglingReferences lists cross-table references without a target, in
// dataset order.
func (k *KnowledgeBase) DanglingReferences() []Reference {
	var refs []Reference
	for _, c := range k.calligraphers {
		if c.Style == "" {
			continue
		}
		if _, ok := k.styleIdx[c.Style]; !ok {
			refs = append(refs, Reference{Table: "calligrapher", Owner: c.Name, Field: "style", Name: c.Style})
		}
	}
	for _, s := range k.styles {
		for _, m := range s.Masters {
			if _, ok := k.calligrapherIdx[m]; !ok {
				refs = append(refs, Reference{Table: "style", Owner: s.Name, Field: "masters", Name: m})
			}
		}
	}
	return refs
}
