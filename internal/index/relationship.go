package index

import "xmidoc/internal/model"

// Resolve looks up both endpoints of rel. An endpoint outside the index, such
// as a primitive type or an element in an excluded package, resolves to nil.
func (idx *Index) Resolve(rel model.Relationship) model.ResolvedRelationship {
	return model.ResolvedRelationship{
		Kind:  rel.Kind,
		Start: idx.Name(rel.Start),
		End:   idx.Name(rel.End),
	}
}

// ResolveAll resolves rels in order.
func (idx *Index) ResolveAll(rels []model.Relationship) []model.ResolvedRelationship {
	resolved := make([]model.ResolvedRelationship, 0, len(rels))
	for _, rel := range rels {
		resolved = append(resolved, idx.Resolve(rel))
	}
	return resolved
}
