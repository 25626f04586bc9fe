package memory

import (
	"context"

	"github.com/mdzio/go-uaport/entity"
	"github.com/mdzio/go-uaport/proto"
	"github.com/mdzio/go-uaport/ua"
)

// value ranks
const (
	valueRankAny    = -2
	valueRankScalar = -1
)

// access levels
const (
	accessCurrentRead  = 0x01
	accessCurrentWrite = 0x02
)

type reference struct {
	refType ua.NodeID
	target  ua.ExpandedNodeID
	forward bool
}

func (r reference) matches(refType ua.NodeID, target ua.ExpandedNodeID, forward bool) bool {
	return r.forward == forward && r.refType.Equal(refType) && r.target.Equal(target)
}

type node struct {
	id          ua.NodeID
	class       ua.NodeClass
	browseName  ua.QualifiedName
	displayName ua.LocalizedText
	description ua.LocalizedText
	writeMask   uint32

	isAbstract      bool
	symmetric       bool
	inverseName     ua.LocalizedText
	containsNoLoops bool
	eventNotifier   byte
	executable      bool

	value               ua.Variant
	dataType            ua.NodeID
	valueRank           int32
	arrayDimensions     []uint32
	accessLevel         byte
	minSamplingInterval float64
	historizing         bool

	refs []reference
}

func newNode(class ua.NodeClass, id ua.NodeID, browseName ua.QualifiedName) *node {
	n := &node{
		id:          id,
		class:       class,
		browseName:  browseName,
		displayName: ua.LocalizedText{Text: browseName.Name},
	}
	switch class {
	case ua.NodeClassVariable, ua.NodeClassVariableType:
		n.dataType = ua.BaseDataType
		n.valueRank = valueRankAny
		n.accessLevel = accessCurrentRead | accessCurrentWrite
	}
	return n
}

func (n *node) addRef(r reference) bool {
	for _, o := range n.refs {
		if o.matches(r.refType, r.target, r.forward) {
			return false
		}
	}
	n.refs = append(n.refs, r)
	return true
}

func (n *node) removeRef(refType ua.NodeID, target ua.ExpandedNodeID, forward bool) bool {
	for i, r := range n.refs {
		if r.matches(refType, target, forward) {
			n.refs = append(n.refs[:i:i], n.refs[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Server) lookup(id ua.NodeID) (*node, bool) {
	n, ok := s.nodes[id.Key()]
	return n, ok
}

func (s *Server) insert(n *node) {
	s.nodes[n.id.Key()] = n
}

// link creates a reference and its inverse.
func (s *Server) link(src *node, refType ua.NodeID, dst *node) {
	src.addRef(reference{refType: refType, target: ua.ExpandedNodeID{NodeID: dst.id}, forward: true})
	dst.addRef(reference{refType: refType, target: ua.ExpandedNodeID{NodeID: src.id}, forward: false})
}

func (s *Server) isClass(id ua.NodeID, class ua.NodeClass) bool {
	n, ok := s.lookup(id)
	return ok && n.class == class
}

func (s *Server) assignID(ns uint16) ua.NodeID {
	for {
		id := ua.NewNumericNodeID(ns, s.nextID)
		s.nextID++
		if _, ok := s.lookup(id); !ok {
			return id
		}
	}
}

// AddNode implements entity.Entity.
func (s *Server) AddNode(_ context.Context, req entity.AddNodeRequest) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var typeClass ua.NodeClass
	var defaultType ua.NodeID
	switch req.Class {
	case ua.NodeClassVariable, ua.NodeClassVariableType:
		typeClass, defaultType = ua.NodeClassVariableType, ua.BaseDataVariableType
	case ua.NodeClassObject:
		typeClass, defaultType = ua.NodeClassObjectType, ua.BaseObjectType
	case ua.NodeClassObjectType, ua.NodeClassView, ua.NodeClassReferenceType, ua.NodeClassDataType:
	default:
		return ua.StatusBadNodeClassInvalid
	}

	// numeric 0 requests an ID in the given namespace
	id := req.RequestedID
	if id.Type == ua.IDNumeric && id.Numeric == 0 {
		ns := id.Namespace
		if ns == 0 {
			ns = 1
		}
		id = s.assignID(ns)
	} else if _, ok := s.lookup(id); ok {
		return ua.StatusBadNodeIdExists
	}
	parent, ok := s.lookup(req.Parent)
	if !ok {
		return ua.StatusBadParentNodeIdInvalid
	}
	if !s.isClass(req.ReferenceType, ua.NodeClassReferenceType) {
		return ua.StatusBadReferenceTypeIdInvalid
	}
	if req.BrowseName.Name == "" {
		return ua.StatusBadBrowseNameInvalid
	}
	var typeDef *node
	if typeClass != ua.NodeClassUnspecified {
		tid := req.TypeDefinition
		if tid.IsNull() {
			tid = defaultType
		}
		typeDef, ok = s.lookup(tid)
		if !ok || typeDef.class != typeClass {
			return ua.StatusBadTypeDefinitionInvalid
		}
	}

	n := newNode(req.Class, id, req.BrowseName)
	s.insert(n)
	s.link(parent, req.ReferenceType, n)
	if typeDef != nil && req.Class != ua.NodeClassVariableType {
		s.link(n, ua.HasTypeDefinition, typeDef)
	}
	log.Debugf("%s node %v added below %v", req.Class, id, parent.id)
	return nil
}

// AddReference implements entity.Entity.
func (s *Server) AddReference(_ context.Context, src, refType ua.NodeID, target ua.ExpandedNodeID, forward bool) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sn, ok := s.lookup(src)
	if !ok {
		return ua.StatusBadSourceNodeIdInvalid
	}
	if !s.isClass(refType, ua.NodeClassReferenceType) {
		return ua.StatusBadReferenceTypeIdInvalid
	}
	if !target.Local() {
		return ua.StatusBadTargetNodeIdInvalid
	}
	tn, ok := s.lookup(target.NodeID)
	if !ok {
		return ua.StatusBadTargetNodeIdInvalid
	}
	if !sn.addRef(reference{refType: refType, target: ua.ExpandedNodeID{NodeID: tn.id}, forward: forward}) {
		return ua.StatusBadDuplicateReferenceNotAllowed
	}
	tn.addRef(reference{refType: refType, target: ua.ExpandedNodeID{NodeID: sn.id}, forward: !forward})
	return nil
}

// DeleteReference implements entity.Entity.
func (s *Server) DeleteReference(_ context.Context, src, refType ua.NodeID, target ua.ExpandedNodeID, forward, bidirectional bool) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sn, ok := s.lookup(src)
	if !ok {
		return ua.StatusBadSourceNodeIdInvalid
	}
	if !s.isClass(refType, ua.NodeClassReferenceType) {
		return ua.StatusBadReferenceTypeIdInvalid
	}
	if !sn.removeRef(refType, target, forward) {
		return ua.StatusBadNotFound
	}
	if bidirectional && target.Local() {
		if tn, ok := s.lookup(target.NodeID); ok {
			tn.removeRef(refType, ua.ExpandedNodeID{NodeID: sn.id}, !forward)
		}
	}
	return nil
}

// DeleteNode implements entity.Entity. Monitored items of the node are
// deleted as well.
func (s *Server) DeleteNode(_ context.Context, id ua.NodeID, deleteRefs bool) error {
	s.mutex.Lock()
	n, ok := s.lookup(id)
	if !ok {
		s.mutex.Unlock()
		return ua.StatusBadNodeIdUnknown
	}
	delete(s.nodes, id.Key())
	if deleteRefs {
		for _, r := range n.refs {
			if !r.target.Local() {
				continue
			}
			if tn, ok := s.lookup(r.target.NodeID); ok {
				tn.removeRef(r.refType, ua.ExpandedNodeID{NodeID: id}, !r.forward)
			}
		}
	}
	var evs []*proto.Event
	for _, sub := range s.subs {
		for mid, item := range sub.items {
			if item.node.Equal(id) {
				delete(sub.items, mid)
				evs = append(evs, &proto.Event{Kind: proto.MonitoredItemDeleted, SubscriptionID: sub.id, MonitoredID: mid})
			}
		}
	}
	s.mutex.Unlock()

	log.Debugf("Node %v deleted", id)
	s.emit(evs)
	return nil
}
