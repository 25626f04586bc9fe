package memory

import (
	"context"
	"time"

	"github.com/mdzio/go-uaport/proto"
	"github.com/mdzio/go-uaport/ua"
)

type subscription struct {
	id       uint32
	interval time.Duration
	items    map[uint32]*monitoredItem
}

type monitoredItem struct {
	node     ua.NodeID
	sampling time.Duration
}

// AddSubscription implements entity.Entity. Data changes are published
// immediately, the interval is only recorded.
func (s *Server) AddSubscription(_ context.Context, interval time.Duration) (uint32, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		return 0, ua.StatusBadInvalidState
	}
	s.nextSubID++
	sub := &subscription{id: s.nextSubID, interval: interval, items: make(map[uint32]*monitoredItem)}
	s.subs[sub.id] = sub
	log.Debugf("Subscription %d added, publishing interval %gms", sub.id, durationMillis(interval))
	return sub.id, nil
}

// DeleteSubscription implements entity.Entity. The monitored items are
// deleted first.
func (s *Server) DeleteSubscription(_ context.Context, subID uint32) error {
	s.mutex.Lock()
	sub, ok := s.subs[subID]
	if !ok {
		s.mutex.Unlock()
		return ua.StatusBadSubscriptionIdInvalid
	}
	delete(s.subs, subID)
	var evs []*proto.Event
	for monID := range sub.items {
		evs = append(evs, &proto.Event{Kind: proto.MonitoredItemDeleted, SubscriptionID: subID, MonitoredID: monID})
	}
	evs = append(evs, &proto.Event{Kind: proto.SubscriptionDeleted, SubscriptionID: subID})
	s.mutex.Unlock()

	log.Debugf("Subscription %d deleted", subID)
	s.emit(evs)
	return nil
}

// AddMonitoredItem implements entity.Entity. The current value is published
// right away.
func (s *Server) AddMonitoredItem(_ context.Context, subID uint32, id ua.NodeID, sampling time.Duration) (uint32, error) {
	s.mutex.Lock()
	sub, ok := s.subs[subID]
	if !ok {
		s.mutex.Unlock()
		return 0, ua.StatusBadSubscriptionIdInvalid
	}
	n, ok := s.lookup(id)
	if !ok {
		s.mutex.Unlock()
		return 0, ua.StatusBadNodeIdUnknown
	}
	if !hasAttr(n.class, ua.AttrValue) {
		s.mutex.Unlock()
		return 0, ua.StatusBadAttributeIdInvalid
	}
	s.nextMonID++
	monID := s.nextMonID
	sub.items[monID] = &monitoredItem{node: id, sampling: sampling}
	ev := &proto.Event{
		Kind:           proto.SubscriptionData,
		SubscriptionID: subID,
		MonitoredID:    monID,
		Node:           id,
		Payload:        n.value,
	}
	s.mutex.Unlock()

	log.Debugf("Monitored item %d for node %v added to subscription %d", monID, id, subID)
	s.emit([]*proto.Event{ev})
	return monID, nil
}

// DeleteMonitoredItem implements entity.Entity.
func (s *Server) DeleteMonitoredItem(_ context.Context, subID, monID uint32) error {
	s.mutex.Lock()
	sub, ok := s.subs[subID]
	if !ok {
		s.mutex.Unlock()
		return ua.StatusBadSubscriptionIdInvalid
	}
	if _, ok := sub.items[monID]; !ok {
		s.mutex.Unlock()
		return ua.StatusBadMonitoredItemIdInvalid
	}
	delete(sub.items, monID)
	s.mutex.Unlock()

	s.emit([]*proto.Event{{Kind: proto.MonitoredItemDeleted, SubscriptionID: subID, MonitoredID: monID}})
	return nil
}
