package worker

import (
	"context"
	"math"
	"time"

	"github.com/mdzio/go-uaport/entity"
	"github.com/mdzio/go-uaport/proto"
	"github.com/mdzio/go-uaport/term"
	"github.com/mdzio/go-uaport/ua"
)

// max. length of a blank array
const maxBlankArrayLen = 1 << 20

func registerHandlers(d *Dispatcher) {
	// lifecycle
	d.HandleFunc(proto.CmdTest, test)
	d.HandleFunc(proto.CmdGetConfig, getConfig)
	d.HandleFunc(proto.CmdSetConfig, setConfig)
	d.HandleFunc(proto.CmdConnect, connect)
	d.HandleFunc(proto.CmdDisconnect, disconnect)
	d.HandleFunc(proto.CmdFindServers, findServers)
	d.HandleFunc(proto.CmdGetEndpoints, getEndpoints)

	// subscriptions
	d.HandleFunc(proto.CmdAddSubscription, addSubscription)
	d.HandleFunc(proto.CmdDeleteSubscription, deleteSubscription)
	d.HandleFunc(proto.CmdAddMonitoredItem, addMonitoredItem)
	d.HandleFunc(proto.CmdDeleteMonitoredItem, deleteMonitoredItem)

	// node management
	d.Handle(proto.CmdAddVariableNode, addNode(ua.NodeClassVariable))
	d.Handle(proto.CmdAddVariableTypeNode, addNode(ua.NodeClassVariableType))
	d.Handle(proto.CmdAddObjectNode, addNode(ua.NodeClassObject))
	d.Handle(proto.CmdAddObjectTypeNode, addNode(ua.NodeClassObjectType))
	d.Handle(proto.CmdAddViewNode, addNode(ua.NodeClassView))
	d.Handle(proto.CmdAddReferenceTypeNode, addNode(ua.NodeClassReferenceType))
	d.Handle(proto.CmdAddDataTypeNode, addNode(ua.NodeClassDataType))
	d.HandleFunc(proto.CmdAddReference, addReference)
	d.HandleFunc(proto.CmdDeleteReference, deleteReference)
	d.HandleFunc(proto.CmdDeleteNode, deleteNode)

	// attribute writes
	d.Handle(proto.CmdWriteBrowseName, writeAttr(ua.AttrBrowseName, 1, func(a *term.Args) interface{} { return a.QualifiedName() }))
	d.Handle(proto.CmdWriteDisplayName, writeAttr(ua.AttrDisplayName, 2, localizedText))
	d.Handle(proto.CmdWriteDescription, writeAttr(ua.AttrDescription, 2, localizedText))
	d.Handle(proto.CmdWriteInverseName, writeAttr(ua.AttrInverseName, 2, localizedText))
	d.Handle(proto.CmdWriteWriteMask, writeAttr(ua.AttrWriteMask, 1, func(a *term.Args) interface{} { return a.UInt32() }))
	d.Handle(proto.CmdWriteIsAbstract, writeAttr(ua.AttrIsAbstract, 1, boolean))
	d.Handle(proto.CmdWriteSymmetric, writeAttr(ua.AttrSymmetric, 1, boolean))
	d.Handle(proto.CmdWriteContainsNoLoops, writeAttr(ua.AttrContainsNoLoops, 1, boolean))
	d.Handle(proto.CmdWriteHistorizing, writeAttr(ua.AttrHistorizing, 1, boolean))
	d.Handle(proto.CmdWriteExecutable, writeAttr(ua.AttrExecutable, 1, boolean))
	d.Handle(proto.CmdWriteDataType, writeAttr(ua.AttrDataType, 1, func(a *term.Args) interface{} { return a.NodeID() }))
	d.Handle(proto.CmdWriteValueRank, writeAttr(ua.AttrValueRank, 1, func(a *term.Args) interface{} { return a.Int32() }))
	d.Handle(proto.CmdWriteArrayDimensions, writeAttr(ua.AttrArrayDimensions, 1, func(a *term.Args) interface{} { return a.UInt32Array() }))
	d.Handle(proto.CmdWriteAccessLevel, writeAttr(ua.AttrAccessLevel, 1, func(a *term.Args) interface{} { return a.Byte() }))
	d.Handle(proto.CmdWriteEventNotifier, writeAttr(ua.AttrEventNotifier, 1, func(a *term.Args) interface{} { return a.Byte() }))
	d.Handle(proto.CmdWriteMinimumSamplingInterval, writeAttr(ua.AttrMinimumSamplingInterval, 1, func(a *term.Args) interface{} { return a.Double() }))
	d.HandleFunc(proto.CmdWriteValue, writeValue)
	d.HandleFunc(proto.CmdWriteValueArray, writeValueArray)
	d.HandleFunc(proto.CmdWriteBlankArray, writeBlankArray)

	// attribute reads
	d.Handle(proto.CmdReadNodeID, readAttr(ua.AttrNodeID, nil))
	d.Handle(proto.CmdReadNodeClass, readAttr(ua.AttrNodeClass, nodeClassName))
	d.Handle(proto.CmdReadBrowseName, readAttr(ua.AttrBrowseName, nil))
	d.Handle(proto.CmdReadDisplayName, readAttr(ua.AttrDisplayName, nil))
	d.Handle(proto.CmdReadDescription, readAttr(ua.AttrDescription, nil))
	d.Handle(proto.CmdReadInverseName, readAttr(ua.AttrInverseName, nil))
	d.Handle(proto.CmdReadWriteMask, readAttr(ua.AttrWriteMask, toUInt32))
	d.Handle(proto.CmdReadAccessLevel, readAttr(ua.AttrAccessLevel, toUInt32))
	d.Handle(proto.CmdReadEventNotifier, readAttr(ua.AttrEventNotifier, toUInt32))
	d.Handle(proto.CmdReadIsAbstract, readAttr(ua.AttrIsAbstract, nil))
	d.Handle(proto.CmdReadSymmetric, readAttr(ua.AttrSymmetric, nil))
	d.Handle(proto.CmdReadContainsNoLoops, readAttr(ua.AttrContainsNoLoops, nil))
	d.Handle(proto.CmdReadHistorizing, readAttr(ua.AttrHistorizing, nil))
	d.Handle(proto.CmdReadExecutable, readAttr(ua.AttrExecutable, nil))
	d.Handle(proto.CmdReadDataType, readAttr(ua.AttrDataType, nil))
	d.Handle(proto.CmdReadValueRank, readAttr(ua.AttrValueRank, nil))
	d.Handle(proto.CmdReadArrayDimensions, readAttr(ua.AttrArrayDimensions, nil))
	d.Handle(proto.CmdReadMinimumSamplingInterval, readAttr(ua.AttrMinimumSamplingInterval, nil))
	d.HandleFunc(proto.CmdReadValue, readValue)
	d.HandleFunc(proto.CmdReadValueByIndex, readValueByIndex)
	d.HandleFunc(proto.CmdReadValueByKind, readValueByKind)
}

func test(_ context.Context, _ entity.Entity, a *term.Args) (interface{}, error) {
	a.Expect(0)
	return nil, a.Done()
}

func getConfig(_ context.Context, e entity.Entity, a *term.Args) (interface{}, error) {
	a.Expect(0)
	if err := a.Done(); err != nil {
		return nil, err
	}
	return e.Config(), nil
}

func setConfig(_ context.Context, e entity.Entity, a *term.Args) (interface{}, error) {
	a.Expect(1)
	cfg := a.Map()
	if err := a.Done(); err != nil {
		return nil, err
	}
	return nil, e.SetConfig(cfg)
}

func connect(ctx context.Context, e entity.Entity, a *term.Args) (interface{}, error) {
	a.Expect(3)
	url := a.String()
	user := a.String()
	password := a.String()
	if err := a.Done(); err != nil {
		return nil, err
	}
	return nil, e.Connect(ctx, url, user, password)
}

func disconnect(ctx context.Context, e entity.Entity, a *term.Args) (interface{}, error) {
	a.Expect(0)
	if err := a.Done(); err != nil {
		return nil, err
	}
	return nil, e.Disconnect(ctx)
}

func findServers(ctx context.Context, e entity.Entity, a *term.Args) (interface{}, error) {
	a.Expect(1)
	url := a.String()
	if err := a.Done(); err != nil {
		return nil, err
	}
	ds, err := e.FindServers(ctx, url)
	if err != nil {
		return nil, err
	}
	res := make([]interface{}, len(ds))
	for i := range ds {
		res[i] = ds[i].Map()
	}
	return res, nil
}

func getEndpoints(ctx context.Context, e entity.Entity, a *term.Args) (interface{}, error) {
	a.Expect(1)
	url := a.String()
	if err := a.Done(); err != nil {
		return nil, err
	}
	eps, err := e.GetEndpoints(ctx, url)
	if err != nil {
		return nil, err
	}
	res := make([]interface{}, len(eps))
	for i := range eps {
		res[i] = eps[i].Map()
	}
	return res, nil
}

// millis converts an interval in milliseconds.
func millis(ms float64) (time.Duration, error) {
	if math.IsNaN(ms) || ms < 0 || ms > float64(math.MaxInt64/int64(time.Millisecond)) {
		return 0, ua.Errorf(ua.ErrInvalidArgument, "Invalid interval: %g", ms)
	}
	return time.Duration(ms * float64(time.Millisecond)), nil
}

func addSubscription(ctx context.Context, e entity.Entity, a *term.Args) (interface{}, error) {
	a.Expect(1)
	interval := a.Double()
	if err := a.Done(); err != nil {
		return nil, err
	}
	d, err := millis(interval)
	if err != nil {
		return nil, err
	}
	return wrapID(e.AddSubscription(ctx, d))
}

func deleteSubscription(ctx context.Context, e entity.Entity, a *term.Args) (interface{}, error) {
	a.Expect(1)
	subID := a.UInt32()
	if err := a.Done(); err != nil {
		return nil, err
	}
	return nil, e.DeleteSubscription(ctx, subID)
}

func addMonitoredItem(ctx context.Context, e entity.Entity, a *term.Args) (interface{}, error) {
	a.Expect(3)
	subID := a.UInt32()
	node := a.NodeID()
	sampling := a.Double()
	if err := a.Done(); err != nil {
		return nil, err
	}
	d, err := millis(sampling)
	if err != nil {
		return nil, err
	}
	return wrapID(e.AddMonitoredItem(ctx, subID, node, d))
}

func deleteMonitoredItem(ctx context.Context, e entity.Entity, a *term.Args) (interface{}, error) {
	a.Expect(2)
	subID := a.UInt32()
	monID := a.UInt32()
	if err := a.Done(); err != nil {
		return nil, err
	}
	return nil, e.DeleteMonitoredItem(ctx, subID, monID)
}

func wrapID(id uint32, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	return id, nil
}

// addNode creates the handler for a node class. Variables, variable types and
// objects take a type definition as fifth argument.
func addNode(class ua.NodeClass) Handler {
	withType := class == ua.NodeClassVariable || class == ua.NodeClassVariableType || class == ua.NodeClassObject
	return HandlerFunc(func(ctx context.Context, e entity.Entity, a *term.Args) (interface{}, error) {
		if withType {
			a.Expect(5)
		} else {
			a.Expect(4)
		}
		req := entity.AddNodeRequest{
			Class:         class,
			RequestedID:   a.NodeID(),
			Parent:        a.NodeID(),
			ReferenceType: a.NodeID(),
			BrowseName:    a.QualifiedName(),
		}
		if withType {
			req.TypeDefinition = a.NodeID()
		}
		if err := a.Done(); err != nil {
			return nil, err
		}
		return nil, e.AddNode(ctx, req)
	})
}

func addReference(ctx context.Context, e entity.Entity, a *term.Args) (interface{}, error) {
	a.Expect(4)
	src := a.NodeID()
	refType := a.NodeID()
	target := a.ExpandedNodeID()
	forward := a.Bool()
	if err := a.Done(); err != nil {
		return nil, err
	}
	return nil, e.AddReference(ctx, src, refType, target, forward)
}

func deleteReference(ctx context.Context, e entity.Entity, a *term.Args) (interface{}, error) {
	a.Expect(5)
	src := a.NodeID()
	refType := a.NodeID()
	target := a.ExpandedNodeID()
	forward := a.Bool()
	bidirectional := a.Bool()
	if err := a.Done(); err != nil {
		return nil, err
	}
	return nil, e.DeleteReference(ctx, src, refType, target, forward, bidirectional)
}

func deleteNode(ctx context.Context, e entity.Entity, a *term.Args) (interface{}, error) {
	a.Expect(2)
	node := a.NodeID()
	deleteRefs := a.Bool()
	if err := a.Done(); err != nil {
		return nil, err
	}
	return nil, e.DeleteNode(ctx, node, deleteRefs)
}

func localizedText(a *term.Args) interface{} {
	locale := a.String()
	text := a.String()
	return ua.LocalizedText{Locale: locale, Text: text}
}

func boolean(a *term.Args) interface{} {
	return a.Bool()
}

// writeAttr creates a handler writing an attribute. The node ID is followed by
// n arguments read with value.
func writeAttr(attr ua.AttributeID, n int, value func(a *term.Args) interface{}) Handler {
	return HandlerFunc(func(ctx context.Context, e entity.Entity, a *term.Args) (interface{}, error) {
		a.Expect(1 + n)
		node := a.NodeID()
		v := value(a)
		if err := a.Done(); err != nil {
			return nil, err
		}
		return nil, e.WriteAttribute(ctx, node, attr, v)
	})
}

// readAttr creates a handler reading an attribute. The optional conv converts
// the attribute value into the reply.
func readAttr(attr ua.AttributeID, conv func(interface{}) (interface{}, error)) Handler {
	return HandlerFunc(func(ctx context.Context, e entity.Entity, a *term.Args) (interface{}, error) {
		a.Expect(1)
		node := a.NodeID()
		if err := a.Done(); err != nil {
			return nil, err
		}
		v, err := e.ReadAttribute(ctx, node, attr)
		if err != nil {
			return nil, err
		}
		if conv != nil {
			return conv(v)
		}
		return v, nil
	})
}

func nodeClassName(v interface{}) (interface{}, error) {
	c, ok := v.(int32)
	if !ok {
		return nil, ua.StatusBadTypeMismatch
	}
	return ua.NodeClass(c).String(), nil
}

func toUInt32(v interface{}) (interface{}, error) {
	switch i := v.(type) {
	case uint8:
		return uint32(i), nil
	case uint32:
		return i, nil
	}
	return nil, ua.StatusBadTypeMismatch
}

// currentValue reads the value attribute.
func currentValue(ctx context.Context, e entity.Entity, node ua.NodeID) (ua.Variant, error) {
	v, err := e.ReadAttribute(ctx, node, ua.AttrValue)
	if err != nil {
		return ua.Variant{}, err
	}
	vv, ok := v.(ua.Variant)
	if !ok {
		return ua.Variant{}, ua.StatusBadTypeMismatch
	}
	return vv, nil
}

// writeValue replaces a scalar or an element of an array. Index 0 addresses
// the scalar, an empty value becomes a scalar.
func writeValue(ctx context.Context, e entity.Entity, a *term.Args) (interface{}, error) {
	a.Expect(4)
	node := a.NodeID()
	k := a.Kind()
	idx := a.UInt32()
	val := a.Value(k)
	if err := a.Done(); err != nil {
		return nil, err
	}
	cur, err := currentValue(ctx, e, node)
	if err != nil {
		return nil, err
	}
	if cur.IsArray() {
		if int64(idx) >= int64(cur.Len()) {
			return nil, ua.Errorf(ua.ErrOutOfRange, "Index %d out of range (length %d)", idx, cur.Len())
		}
		if cur.Kind() != k {
			return nil, ua.StatusBadTypeMismatch
		}
		if err := cur.Set(int(idx), val); err != nil {
			return nil, err
		}
	} else {
		if idx != 0 {
			return nil, ua.Errorf(ua.ErrOutOfRange, "Index %d out of range for scalar", idx)
		}
		if cur, err = ua.NewScalar(k, val); err != nil {
			return nil, err
		}
	}
	return nil, e.WriteAttribute(entity.WithInternalWrite(ctx), node, ua.AttrValue, cur)
}

func writeValueArray(ctx context.Context, e entity.Entity, a *term.Args) (interface{}, error) {
	a.Expect(3)
	node := a.NodeID()
	k := a.Kind()
	v := a.Variant()
	if err := a.Done(); err != nil {
		return nil, err
	}
	if !v.IsArray() || v.Kind() != k {
		return nil, ua.Errorf(ua.ErrInvalidArgument, "Array of kind %s expected", k)
	}
	return nil, e.WriteAttribute(entity.WithInternalWrite(ctx), node, ua.AttrValue, v)
}

func writeBlankArray(ctx context.Context, e entity.Entity, a *term.Args) (interface{}, error) {
	a.Expect(3)
	node := a.NodeID()
	k := a.Kind()
	n := a.UInt32()
	if err := a.Done(); err != nil {
		return nil, err
	}
	if n > maxBlankArrayLen {
		return nil, ua.Errorf(ua.ErrOutOfRange, "Array length %d exceeds %d", n, maxBlankArrayLen)
	}
	v, err := ua.NewBlankArray(k, int(n))
	if err != nil {
		return nil, err
	}
	return nil, e.WriteAttribute(entity.WithInternalWrite(ctx), node, ua.AttrValue, v)
}

func readValue(ctx context.Context, e entity.Entity, a *term.Args) (interface{}, error) {
	a.Expect(1)
	node := a.NodeID()
	if err := a.Done(); err != nil {
		return nil, err
	}
	return currentValue(ctx, e, node)
}

func readValueByIndex(ctx context.Context, e entity.Entity, a *term.Args) (interface{}, error) {
	a.Expect(2)
	node := a.NodeID()
	idx := a.UInt32()
	if err := a.Done(); err != nil {
		return nil, err
	}
	cur, err := currentValue(ctx, e, node)
	if err != nil {
		return nil, err
	}
	if int64(idx) >= int64(cur.Len()) {
		return nil, ua.Errorf(ua.ErrOutOfRange, "Index %d out of range (length %d)", idx, cur.Len())
	}
	return cur.At(int(idx))
}

func readValueByKind(ctx context.Context, e entity.Entity, a *term.Args) (interface{}, error) {
	a.Expect(2)
	node := a.NodeID()
	k := a.Kind()
	if err := a.Done(); err != nil {
		return nil, err
	}
	cur, err := currentValue(ctx, e, node)
	if err != nil {
		return nil, err
	}
	if cur.IsEmpty() || cur.Kind() != k {
		return nil, ua.StatusBadTypeMismatch
	}
	return cur, nil
}
