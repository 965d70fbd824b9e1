package rabbitmq

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Имена очередей и ключей маршрутизации уведомлений.
const (
	MembershipQueue      = "notifications.membership"
	MembershipRoutingKey = "membership"
)

// GetNotificationQueues возвращает очереди уведомлений сервиса.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: MembershipQueue, RoutingKey: MembershipRoutingKey},
	}
}
