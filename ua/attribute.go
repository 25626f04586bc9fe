package ua

import "fmt"

// AttributeID identifies an attribute of a node.
type AttributeID uint32

// Attribute IDs.
const (
	AttrNodeID AttributeID = iota + 1
	AttrNodeClass
	AttrBrowseName
	AttrDisplayName
	AttrDescription
	AttrWriteMask
	AttrUserWriteMask
	AttrIsAbstract
	AttrSymmetric
	AttrInverseName
	AttrContainsNoLoops
	AttrEventNotifier
	AttrValue
	AttrDataType
	AttrValueRank
	AttrArrayDimensions
	AttrAccessLevel
	AttrUserAccessLevel
	AttrMinimumSamplingInterval
	AttrHistorizing
	AttrExecutable
	AttrUserExecutable
)

var attrStr = map[AttributeID]string{
	AttrNodeID:                  "NodeId",
	AttrNodeClass:               "NodeClass",
	AttrBrowseName:              "BrowseName",
	AttrDisplayName:             "DisplayName",
	AttrDescription:             "Description",
	AttrWriteMask:               "WriteMask",
	AttrUserWriteMask:           "UserWriteMask",
	AttrIsAbstract:              "IsAbstract",
	AttrSymmetric:               "Symmetric",
	AttrInverseName:             "InverseName",
	AttrContainsNoLoops:         "ContainsNoLoops",
	AttrEventNotifier:           "EventNotifier",
	AttrValue:                   "Value",
	AttrDataType:                "DataType",
	AttrValueRank:               "ValueRank",
	AttrArrayDimensions:         "ArrayDimensions",
	AttrAccessLevel:             "AccessLevel",
	AttrUserAccessLevel:         "UserAccessLevel",
	AttrMinimumSamplingInterval: "MinimumSamplingInterval",
	AttrHistorizing:             "Historizing",
	AttrExecutable:              "Executable",
	AttrUserExecutable:          "UserExecutable",
}

func (a AttributeID) String() string {
	if s, ok := attrStr[a]; ok {
		return s
	}
	return fmt.Sprintf("AttributeID(%d)", uint32(a))
}

// Kind returns the kind of the attribute value. The value attribute has no
// fixed kind and returns false.
func (a AttributeID) Kind() (Kind, bool) {
	switch a {
	case AttrNodeID, AttrDataType:
		return KindNodeID, true
	case AttrNodeClass, AttrValueRank:
		return KindInt32, true
	case AttrBrowseName:
		return KindQualifiedName, true
	case AttrDisplayName, AttrDescription, AttrInverseName:
		return KindLocalizedText, true
	case AttrWriteMask, AttrUserWriteMask, AttrArrayDimensions:
		return KindUInt32, true
	case AttrIsAbstract, AttrSymmetric, AttrContainsNoLoops, AttrHistorizing,
		AttrExecutable, AttrUserExecutable:
		return KindBoolean, true
	case AttrEventNotifier, AttrAccessLevel, AttrUserAccessLevel:
		return KindByte, true
	case AttrMinimumSamplingInterval:
		return KindDouble, true
	}
	return 0, false
}

// NodeClass is the class of a node.
type NodeClass int32

// Node classes.
const (
	NodeClassUnspecified   NodeClass = 0
	NodeClassObject        NodeClass = 1
	NodeClassVariable      NodeClass = 2
	NodeClassMethod        NodeClass = 4
	NodeClassObjectType    NodeClass = 8
	NodeClassVariableType  NodeClass = 16
	NodeClassReferenceType NodeClass = 32
	NodeClassDataType      NodeClass = 64
	NodeClassView          NodeClass = 128
)

func (c NodeClass) String() string {
	switch c {
	case NodeClassUnspecified:
		return "Unspecified"
	case NodeClassObject:
		return "Object"
	case NodeClassVariable:
		return "Variable"
	case NodeClassMethod:
		return "Method"
	case NodeClassObjectType:
		return "ObjectType"
	case NodeClassVariableType:
		return "VariableType"
	case NodeClassReferenceType:
		return "ReferenceType"
	case NodeClassDataType:
		return "DataType"
	case NodeClassView:
		return "View"
	}
	return fmt.Sprintf("NodeClass(%d)", int32(c))
}

// Well known nodes of namespace 0.
var (
	RootFolder           = NewNumericNodeID(0, 84)
	ObjectsFolder        = NewNumericNodeID(0, 85)
	TypesFolder          = NewNumericNodeID(0, 86)
	ViewsFolder          = NewNumericNodeID(0, 87)
	References           = NewNumericNodeID(0, 31)
	HierarchicalRefs     = NewNumericNodeID(0, 33)
	NonHierarchicalRefs  = NewNumericNodeID(0, 32)
	Organizes            = NewNumericNodeID(0, 35)
	HasSubtype           = NewNumericNodeID(0, 45)
	HasProperty          = NewNumericNodeID(0, 46)
	HasComponent         = NewNumericNodeID(0, 47)
	HasTypeDefinition    = NewNumericNodeID(0, 40)
	BaseObjectType       = NewNumericNodeID(0, 58)
	FolderType           = NewNumericNodeID(0, 61)
	BaseVariableType     = NewNumericNodeID(0, 62)
	BaseDataVariableType = NewNumericNodeID(0, 63)
	PropertyType         = NewNumericNodeID(0, 68)
	BaseDataType         = NewNumericNodeID(0, 24)
)

// DataTypeID returns the node ID of the builtin data type of a kind. The
// domain structures have no builtin data type node and return false.
func DataTypeID(k Kind) (NodeID, bool) {
	if k >= KindBoolean && k <= KindLocalizedText {
		return NewNumericNodeID(0, uint32(k)), true
	}
	return NodeID{}, false
}
