package uaclient

import (
	"context"
	"time"

	"github.com/gopcua/opcua"
	gua "github.com/gopcua/opcua/ua"

	"github.com/mdzio/go-uaport/proto"
	"github.com/mdzio/go-uaport/ua"
)

// size of the notification channel of a subscription
const notifyQueueSize = 64

type subscription struct {
	id     uint32
	sub    *opcua.Subscription
	notify chan *opcua.PublishNotificationData
	done   chan struct{}
	// monitored items by client handle
	items map[uint32]*monitoredItem
}

type monitoredItem struct {
	// 0 until the server has created the item
	id   uint32
	node ua.NodeID
	// values received before the item ID was known
	early []*gua.DataValue
}

// AddSubscription implements entity.Entity.
func (c *Client) AddSubscription(ctx context.Context, interval time.Duration) (uint32, error) {
	cl, err := c.connected()
	if err != nil {
		return 0, err
	}
	notify := make(chan *opcua.PublishNotificationData, notifyQueueSize)
	sub, err := cl.Subscribe(ctx, &opcua.SubscriptionParameters{Interval: interval}, notify)
	if err != nil {
		return 0, statusOf(err)
	}
	s := &subscription{
		id:     sub.SubscriptionID,
		sub:    sub,
		notify: notify,
		done:   make(chan struct{}),
		items:  make(map[uint32]*monitoredItem),
	}
	c.mutex.Lock()
	c.subs[s.id] = s
	c.mutex.Unlock()
	go c.forward(s)
	log.Debugf("Subscription %d added, publishing interval %v", s.id, interval)
	return s.id, nil
}

// DeleteSubscription implements entity.Entity.
func (c *Client) DeleteSubscription(ctx context.Context, subID uint32) error {
	c.mutex.Lock()
	s, ok := c.subs[subID]
	if ok {
		delete(c.subs, subID)
	}
	c.mutex.Unlock()
	if !ok {
		return ua.StatusBadSubscriptionIdInvalid
	}
	return c.cancel(ctx, s)
}

// AddMonitoredItem implements entity.Entity. The value attribute of the node
// is monitored.
func (c *Client) AddMonitoredItem(ctx context.Context, subID uint32, node ua.NodeID, sampling time.Duration) (uint32, error) {
	c.mutex.Lock()
	s, ok := c.subs[subID]
	if !ok {
		c.mutex.Unlock()
		return 0, ua.StatusBadSubscriptionIdInvalid
	}
	c.handle++
	handle := c.handle
	mi := &monitoredItem{node: node}
	s.items[handle] = mi
	c.mutex.Unlock()

	req := opcua.NewMonitoredItemCreateRequestWithDefaults(toNodeID(node), gua.AttributeIDValue, handle)
	req.RequestedParameters.SamplingInterval = float64(sampling) / float64(time.Millisecond)
	resp, err := s.sub.Monitor(ctx, gua.TimestampsToReturnBoth, req)
	if err == nil && len(resp.Results) != 1 {
		err = ua.StatusBadUnexpectedError
	}
	if err == nil && resp.Results[0].StatusCode != gua.StatusOK {
		err = resp.Results[0].StatusCode
	}
	if err != nil {
		c.mutex.Lock()
		delete(s.items, handle)
		c.mutex.Unlock()
		return 0, statusOf(err)
	}
	monID := resp.Results[0].MonitoredItemID
	c.created(s, handle, monID)
	log.Debugf("Monitored item %d for node %v added to subscription %d", monID, node, subID)
	return monID, nil
}

// created stores the ID of a monitored item and reports the values received
// before.
func (c *Client) created(s *subscription, handle, monID uint32) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	mi, ok := s.items[handle]
	if !ok {
		return
	}
	mi.id = monID
	for _, dv := range mi.early {
		c.emitData(s, mi, dv)
	}
	mi.early = nil
}

// DeleteMonitoredItem implements entity.Entity.
func (c *Client) DeleteMonitoredItem(ctx context.Context, subID, monID uint32) error {
	c.mutex.Lock()
	s, ok := c.subs[subID]
	if !ok {
		c.mutex.Unlock()
		return ua.StatusBadSubscriptionIdInvalid
	}
	var handle uint32
	for h, mi := range s.items {
		if mi.id != 0 && mi.id == monID {
			handle = h
			break
		}
	}
	c.mutex.Unlock()
	if handle == 0 {
		return ua.StatusBadMonitoredItemIdInvalid
	}

	resp, err := s.sub.Unmonitor(ctx, monID)
	if err != nil {
		return statusOf(err)
	}
	if len(resp.Results) == 1 && resp.Results[0] != gua.StatusOK {
		return ua.StatusCode(resp.Results[0])
	}
	c.mutex.Lock()
	delete(s.items, handle)
	c.mutex.Unlock()
	c.emit(&proto.Event{Kind: proto.MonitoredItemDeleted, SubscriptionID: subID, MonitoredID: monID})
	return nil
}

// takeSubscriptions removes all subscriptions. c.mutex must be held.
func (c *Client) takeSubscriptions() []*subscription {
	subs := make([]*subscription, 0, len(c.subs))
	for id, s := range c.subs {
		subs = append(subs, s)
		delete(c.subs, id)
	}
	return subs
}

func (c *Client) cancelSubscriptions(ctx context.Context, subs []*subscription) {
	for _, s := range subs {
		if err := c.cancel(ctx, s); err != nil {
			log.Warningf("Deleting of subscription %d failed: %v", s.id, err)
		}
	}
}

// cancel deletes the subscription on the server and reports the deletion of
// its monitored items and itself.
func (c *Client) cancel(ctx context.Context, s *subscription) error {
	close(s.done)
	err := s.sub.Cancel(ctx)

	c.mutex.Lock()
	var evs []*proto.Event
	for _, mi := range s.items {
		if mi.id != 0 {
			evs = append(evs, &proto.Event{Kind: proto.MonitoredItemDeleted, SubscriptionID: s.id, MonitoredID: mi.id})
		}
	}
	s.items = make(map[uint32]*monitoredItem)
	c.mutex.Unlock()
	evs = append(evs, &proto.Event{Kind: proto.SubscriptionDeleted, SubscriptionID: s.id})
	c.emit(evs...)

	log.Debugf("Subscription %d deleted", s.id)
	if err != nil {
		return statusOf(err)
	}
	return nil
}

// forward converts the notifications of a subscription into events until the
// subscription is deleted.
func (c *Client) forward(s *subscription) {
	for {
		select {
		case n := <-s.notify:
			c.notification(s, n)
		case <-s.done:
			return
		}
	}
}

func (c *Client) notification(s *subscription, n *opcua.PublishNotificationData) {
	if n.Error != nil {
		log.Warningf("Notification error on subscription %d: %v", s.id, n.Error)
		c.emit(&proto.Event{Kind: proto.SubscriptionTimeout, SubscriptionID: s.id})
		return
	}
	switch v := n.Value.(type) {
	case *gua.DataChangeNotification:
		for _, item := range v.MonitoredItems {
			c.dataChange(s, item)
		}
	case *gua.StatusChangeNotification:
		log.Warningf("Status of subscription %d changed: %v", s.id, ua.StatusCode(v.Status))
		if v.Status != gua.StatusOK {
			c.emit(&proto.Event{Kind: proto.SubscriptionTimeout, SubscriptionID: s.id})
		}
	default:
		log.Tracef("Notification of type %T on subscription %d ignored", n.Value, s.id)
	}
}

// dataChange reports a value of a monitored item. Values arriving before the
// item ID is known are kept until AddMonitoredItem has stored it.
func (c *Client) dataChange(s *subscription, item *gua.MonitoredItemNotification) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	mi, ok := s.items[item.ClientHandle]
	if !ok {
		log.Tracef("Data change for unknown client handle %d ignored", item.ClientHandle)
		return
	}
	if mi.id == 0 {
		mi.early = append(mi.early, item.Value)
		return
	}
	c.emitData(s, mi, item.Value)
}

// emitData converts and reports a value. c.mutex must be held, the sink does
// not block.
func (c *Client) emitData(s *subscription, mi *monitoredItem, dv *gua.DataValue) {
	var gv *gua.Variant
	if dv != nil {
		gv = dv.Value
	}
	v, err := fromVariant(gv)
	if err != nil {
		log.Warningf("Data change of monitored item %d dropped: %v", mi.id, err)
		return
	}
	c.emit(&proto.Event{
		Kind:           proto.SubscriptionData,
		SubscriptionID: s.id,
		MonitoredID:    mi.id,
		Node:           mi.node,
		Payload:        v,
	})
}

func (c *Client) emit(evs ...*proto.Event) {
	if c.sink == nil {
		return
	}
	for _, ev := range evs {
		c.sink.Emit(ev)
	}
}
