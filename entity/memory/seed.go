package memory

import (
	"github.com/mdzio/go-uaport/ua"
)

type seedNode struct {
	class    ua.NodeClass
	id       ua.NodeID
	name     string
	parent   ua.NodeID
	refType  ua.NodeID
	abstract bool
	inverse  string
}

var (
	hasChild   = ua.NewNumericNodeID(0, 34)
	aggregates = ua.NewNumericNodeID(0, 44)
)

// standard nodes, parents are listed before their children
var seedNodes = []seedNode{
	{ua.NodeClassObject, ua.RootFolder, "Root", ua.NodeID{}, ua.NodeID{}, false, ""},

	{ua.NodeClassReferenceType, ua.References, "References", ua.NodeID{}, ua.NodeID{}, true, ""},
	{ua.NodeClassReferenceType, ua.HierarchicalRefs, "HierarchicalReferences", ua.References, ua.HasSubtype, true, ""},
	{ua.NodeClassReferenceType, ua.NonHierarchicalRefs, "NonHierarchicalReferences", ua.References, ua.HasSubtype, true, ""},
	{ua.NodeClassReferenceType, hasChild, "HasChild", ua.HierarchicalRefs, ua.HasSubtype, true, ""},
	{ua.NodeClassReferenceType, ua.Organizes, "Organizes", ua.HierarchicalRefs, ua.HasSubtype, false, "OrganizedBy"},
	{ua.NodeClassReferenceType, aggregates, "Aggregates", hasChild, ua.HasSubtype, true, ""},
	{ua.NodeClassReferenceType, ua.HasSubtype, "HasSubtype", hasChild, ua.HasSubtype, false, "SubtypeOf"},
	{ua.NodeClassReferenceType, ua.HasComponent, "HasComponent", aggregates, ua.HasSubtype, false, "ComponentOf"},
	{ua.NodeClassReferenceType, ua.HasProperty, "HasProperty", aggregates, ua.HasSubtype, false, "PropertyOf"},
	{ua.NodeClassReferenceType, ua.HasTypeDefinition, "HasTypeDefinition", ua.NonHierarchicalRefs, ua.HasSubtype, false, "TypeDefinitionOf"},

	{ua.NodeClassObject, ua.ObjectsFolder, "Objects", ua.RootFolder, ua.Organizes, false, ""},
	{ua.NodeClassObject, ua.TypesFolder, "Types", ua.RootFolder, ua.Organizes, false, ""},
	{ua.NodeClassObject, ua.ViewsFolder, "Views", ua.RootFolder, ua.Organizes, false, ""},

	{ua.NodeClassObjectType, ua.BaseObjectType, "BaseObjectType", ua.NodeID{}, ua.NodeID{}, false, ""},
	{ua.NodeClassObjectType, ua.FolderType, "FolderType", ua.BaseObjectType, ua.HasSubtype, false, ""},

	{ua.NodeClassVariableType, ua.BaseVariableType, "BaseVariableType", ua.NodeID{}, ua.NodeID{}, true, ""},
	{ua.NodeClassVariableType, ua.BaseDataVariableType, "BaseDataVariableType", ua.BaseVariableType, ua.HasSubtype, false, ""},
	{ua.NodeClassVariableType, ua.PropertyType, "PropertyType", ua.BaseVariableType, ua.HasSubtype, false, ""},

	{ua.NodeClassDataType, ua.BaseDataType, "BaseDataType", ua.NodeID{}, ua.NodeID{}, true, ""},
}

// seed creates the standard nodes of namespace 0.
func (s *Server) seed() {
	for _, sn := range seedNodes {
		n := newNode(sn.class, sn.id, ua.QualifiedName{Name: sn.name})
		n.isAbstract = sn.abstract
		if sn.inverse != "" {
			n.inverseName = ua.LocalizedText{Text: sn.inverse}
		}
		if sn.id.Equal(ua.References) {
			n.symmetric = true
		}
		s.insert(n)
		if !sn.parent.IsNull() {
			parent, _ := s.lookup(sn.parent)
			s.link(parent, sn.refType, n)
		}
	}
	// the folders exist before FolderType
	folder, _ := s.lookup(ua.FolderType)
	for _, id := range []ua.NodeID{ua.RootFolder, ua.ObjectsFolder, ua.TypesFolder, ua.ViewsFolder} {
		n, _ := s.lookup(id)
		s.link(n, ua.HasTypeDefinition, folder)
	}

	// builtin data types
	base, _ := s.lookup(ua.BaseDataType)
	for _, k := range ua.Kinds() {
		id, ok := ua.DataTypeID(k)
		if !ok {
			continue
		}
		n := newNode(ua.NodeClassDataType, id, ua.QualifiedName{Name: k.String()})
		s.insert(n)
		s.link(base, ua.HasSubtype, n)
	}
}
