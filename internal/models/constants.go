package models

const (
	OrderStatusNew       = "new"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusOnTheWay  = "on_the_way"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"

	TopicOrderEvents = "pos_order_events"

	EventOrderCreated   = "order_created"
	EventOrderCompleted = "order_completed"
	EventOrderCancelled = "order_cancelled"
)
