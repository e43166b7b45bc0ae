// Package metrics exposes Prometheus counters for the webhook bridge. The
// provider always sees 200, so these counters are the main place genuine
// failures become visible.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Collector struct {
	messagesReceived    prometheus.Counter
	messagesRejected    prometheus.Counter
	lookupsMatched      prometheus.Counter
	lookupsFallback     prometheus.Counter
	lookupsFailed       prometheus.Counter
	updatesCreated      prometheus.Counter
	updatesFailed       prometheus.Counter
	notificationsSent   prometheus.Counter
	notificationsFailed prometheus.Counter
}

func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		messagesReceived: factory.NewCounter(prometheus.CounterOpts{
			Name: "sms_bridge_messages_received_total",
			Help: "Inbound SMS webhooks that passed payload validation",
		}),
		messagesRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "sms_bridge_messages_rejected_total",
			Help: "Inbound SMS webhooks rejected for missing sender or body",
		}),
		lookupsMatched: factory.NewCounter(prometheus.CounterOpts{
			Name: "sms_bridge_lookups_matched_total",
			Help: "Contact lookups that matched a board item",
		}),
		lookupsFallback: factory.NewCounter(prometheus.CounterOpts{
			Name: "sms_bridge_lookups_fallback_total",
			Help: "Contact lookups that found no match and fell back to the default item",
		}),
		lookupsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "sms_bridge_lookups_failed_total",
			Help: "Contact lookups that failed at the transport or API level",
		}),
		updatesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "sms_bridge_updates_created_total",
			Help: "Updates successfully posted to Monday items",
		}),
		updatesFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "sms_bridge_updates_failed_total",
			Help: "Update mutations that failed",
		}),
		notificationsSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "sms_bridge_notifications_sent_total",
			Help: "User notifications sent for new updates",
		}),
		notificationsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "sms_bridge_notifications_failed_total",
			Help: "User notifications that failed",
		}),
	}
}

func (c *Collector) RecordMessageReceived()    { c.messagesReceived.Inc() }
func (c *Collector) RecordMessageRejected()    { c.messagesRejected.Inc() }
func (c *Collector) RecordLookupMatched()      { c.lookupsMatched.Inc() }
func (c *Collector) RecordLookupFallback()     { c.lookupsFallback.Inc() }
func (c *Collector) RecordLookupFailed()       { c.lookupsFailed.Inc() }
func (c *Collector) RecordUpdateCreated()      { c.updatesCreated.Inc() }
func (c *Collector) RecordUpdateFailed()       { c.updatesFailed.Inc() }
func (c *Collector) RecordNotificationSent()   { c.notificationsSent.Inc() }
func (c *Collector) RecordNotificationFailed() { c.notificationsFailed.Inc() }
