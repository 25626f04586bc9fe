package memory

import (
	"context"

	"golang.org/x/text/language"

	"github.com/mdzio/go-uaport/entity"
	"github.com/mdzio/go-uaport/proto"
	"github.com/mdzio/go-uaport/ua"
)

var commonAttrs = []ua.AttributeID{
	ua.AttrNodeID, ua.AttrNodeClass, ua.AttrBrowseName, ua.AttrDisplayName,
	ua.AttrDescription, ua.AttrWriteMask, ua.AttrUserWriteMask,
}

// additional attributes per node class
var classAttrs = map[ua.NodeClass][]ua.AttributeID{
	ua.NodeClassObject: {ua.AttrEventNotifier},
	ua.NodeClassVariable: {
		ua.AttrValue, ua.AttrDataType, ua.AttrValueRank, ua.AttrArrayDimensions,
		ua.AttrAccessLevel, ua.AttrUserAccessLevel, ua.AttrMinimumSamplingInterval,
		ua.AttrHistorizing,
	},
	ua.NodeClassMethod:       {ua.AttrExecutable, ua.AttrUserExecutable},
	ua.NodeClassObjectType:   {ua.AttrIsAbstract},
	ua.NodeClassVariableType: {ua.AttrValue, ua.AttrDataType, ua.AttrValueRank, ua.AttrArrayDimensions, ua.AttrIsAbstract},
	ua.NodeClassReferenceType: {
		ua.AttrIsAbstract, ua.AttrSymmetric, ua.AttrInverseName,
	},
	ua.NodeClassDataType: {ua.AttrIsAbstract},
	ua.NodeClassView:     {ua.AttrContainsNoLoops, ua.AttrEventNotifier},
}

func hasAttr(class ua.NodeClass, attr ua.AttributeID) bool {
	for _, a := range commonAttrs {
		if a == attr {
			return true
		}
	}
	for _, a := range classAttrs[class] {
		if a == attr {
			return true
		}
	}
	return false
}

// ReadAttribute implements entity.Entity.
func (s *Server) ReadAttribute(_ context.Context, id ua.NodeID, attr ua.AttributeID) (interface{}, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	n, ok := s.lookup(id)
	if !ok {
		return nil, ua.StatusBadNodeIdUnknown
	}
	if !hasAttr(n.class, attr) {
		return nil, ua.StatusBadAttributeIdInvalid
	}
	switch attr {
	case ua.AttrNodeID:
		return n.id, nil
	case ua.AttrNodeClass:
		return int32(n.class), nil
	case ua.AttrBrowseName:
		return n.browseName, nil
	case ua.AttrDisplayName:
		return n.displayName, nil
	case ua.AttrDescription:
		return n.description, nil
	case ua.AttrWriteMask, ua.AttrUserWriteMask:
		return n.writeMask, nil
	case ua.AttrIsAbstract:
		return n.isAbstract, nil
	case ua.AttrSymmetric:
		return n.symmetric, nil
	case ua.AttrInverseName:
		return n.inverseName, nil
	case ua.AttrContainsNoLoops:
		return n.containsNoLoops, nil
	case ua.AttrEventNotifier:
		return n.eventNotifier, nil
	case ua.AttrValue:
		return n.value, nil
	case ua.AttrDataType:
		return n.dataType, nil
	case ua.AttrValueRank:
		return n.valueRank, nil
	case ua.AttrArrayDimensions:
		dims := make([]uint32, len(n.arrayDimensions))
		copy(dims, n.arrayDimensions)
		return dims, nil
	case ua.AttrAccessLevel, ua.AttrUserAccessLevel:
		return n.accessLevel, nil
	case ua.AttrMinimumSamplingInterval:
		return n.minSamplingInterval, nil
	case ua.AttrHistorizing:
		return n.historizing, nil
	case ua.AttrExecutable, ua.AttrUserExecutable:
		return n.executable, nil
	}
	return nil, ua.StatusBadAttributeIdInvalid
}

// WriteAttribute implements entity.Entity. Value writes are checked against
// the data type and value rank of the node.
func (s *Server) WriteAttribute(ctx context.Context, id ua.NodeID, attr ua.AttributeID, value interface{}) error {
	s.mutex.Lock()
	n, ok := s.lookup(id)
	if !ok {
		s.mutex.Unlock()
		return ua.StatusBadNodeIdUnknown
	}
	if !hasAttr(n.class, attr) {
		s.mutex.Unlock()
		return ua.StatusBadAttributeIdInvalid
	}
	if attr == ua.AttrValue {
		evs, err := s.writeValue(ctx, n, value)
		s.mutex.Unlock()
		if err != nil {
			return err
		}
		s.emit(evs)
		return nil
	}
	err := s.writeAttribute(n, attr, value)
	s.mutex.Unlock()
	return err
}

func (s *Server) writeAttribute(n *node, attr ua.AttributeID, value interface{}) error {
	var ok bool
	switch attr {
	case ua.AttrBrowseName:
		var qn ua.QualifiedName
		if qn, ok = value.(ua.QualifiedName); ok {
			if qn.Name == "" {
				return ua.StatusBadBrowseNameInvalid
			}
			n.browseName = qn
		}
	case ua.AttrDisplayName, ua.AttrDescription, ua.AttrInverseName:
		var lt ua.LocalizedText
		if lt, ok = value.(ua.LocalizedText); ok {
			var err error
			if lt, err = canonicalText(lt); err != nil {
				return err
			}
			switch attr {
			case ua.AttrDisplayName:
				n.displayName = lt
			case ua.AttrDescription:
				n.description = lt
			default:
				n.inverseName = lt
			}
		}
	case ua.AttrWriteMask:
		var m uint32
		if m, ok = value.(uint32); ok {
			n.writeMask = m
		}
	case ua.AttrIsAbstract, ua.AttrSymmetric, ua.AttrContainsNoLoops, ua.AttrHistorizing, ua.AttrExecutable:
		var b bool
		if b, ok = value.(bool); ok {
			*n.flag(attr) = b
		}
	case ua.AttrEventNotifier, ua.AttrAccessLevel:
		var b byte
		if b, ok = value.(byte); ok {
			if attr == ua.AttrEventNotifier {
				n.eventNotifier = b
			} else {
				n.accessLevel = b
			}
		}
	case ua.AttrMinimumSamplingInterval:
		var d float64
		if d, ok = value.(float64); ok {
			if d < 0 {
				return ua.StatusBadOutOfRange
			}
			n.minSamplingInterval = d
		}
	case ua.AttrValueRank:
		var r int32
		if r, ok = value.(int32); ok {
			if r < -3 {
				return ua.StatusBadOutOfRange
			}
			n.valueRank = r
		}
	case ua.AttrArrayDimensions:
		var dims []uint32
		if dims, ok = value.([]uint32); ok {
			n.arrayDimensions = append([]uint32(nil), dims...)
		}
	case ua.AttrDataType:
		var dt ua.NodeID
		if dt, ok = value.(ua.NodeID); ok {
			if !s.isClass(dt, ua.NodeClassDataType) {
				return ua.StatusBadTypeMismatch
			}
			n.dataType = dt
		}
	default:
		return ua.StatusBadNotWritable
	}
	if !ok {
		return ua.StatusBadTypeMismatch
	}
	log.Tracef("Attribute %s of node %v written", attr, n.id)
	return nil
}

func (n *node) flag(attr ua.AttributeID) *bool {
	switch attr {
	case ua.AttrIsAbstract:
		return &n.isAbstract
	case ua.AttrSymmetric:
		return &n.symmetric
	case ua.AttrContainsNoLoops:
		return &n.containsNoLoops
	case ua.AttrHistorizing:
		return &n.historizing
	}
	return &n.executable
}

// canonicalText validates and canonicalizes the locale of a localized text.
func canonicalText(lt ua.LocalizedText) (ua.LocalizedText, error) {
	if lt.Locale == "" {
		return lt, nil
	}
	tag, err := language.Parse(lt.Locale)
	if err != nil {
		log.Debugf("Invalid locale %q: %v", lt.Locale, err)
		return lt, ua.StatusBadNodeAttributesInvalid
	}
	lt.Locale = tag.String()
	return lt, nil
}

func (s *Server) writeValue(ctx context.Context, n *node, value interface{}) ([]*proto.Event, error) {
	v, ok := value.(ua.Variant)
	if !ok {
		return nil, ua.StatusBadTypeMismatch
	}
	if err := s.checkValue(n, v); err != nil {
		return nil, err
	}
	n.value = v

	var evs []*proto.Event
	for _, sub := range s.subs {
		for mid, item := range sub.items {
			if item.node.Equal(n.id) {
				evs = append(evs, &proto.Event{
					Kind:           proto.SubscriptionData,
					SubscriptionID: sub.id,
					MonitoredID:    mid,
					Node:           n.id,
					Payload:        v,
				})
			}
		}
	}
	if !entity.IsInternalWrite(ctx) && n.class == ua.NodeClassVariable {
		evs = append(evs, &proto.Event{Kind: proto.NodeValueChanged, Node: n.id, Payload: v})
	}
	return evs, nil
}

// checkValue checks the data type and the value rank.
func (s *Server) checkValue(n *node, v ua.Variant) error {
	if v.IsEmpty() {
		return nil
	}
	if n.dataType.Namespace == 0 && n.dataType.Type == ua.IDNumeric {
		k := ua.Kind(n.dataType.Numeric)
		if want, ok := ua.DataTypeID(k); ok && want.Equal(n.dataType) && v.Kind() != k {
			return ua.StatusBadTypeMismatch
		}
	}
	switch {
	case n.valueRank == valueRankScalar && v.IsArray():
		return ua.StatusBadTypeMismatch
	case n.valueRank >= 0 && v.IsScalar():
		return ua.StatusBadTypeMismatch
	}
	return nil
}
