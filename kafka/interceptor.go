package kafka

import (
	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// EventInterceptor stamps every outgoing event with a trace ID header so
// consumers can correlate events with request logs.
type EventInterceptor struct{}

func (i *EventInterceptor) OnSend(msg *sarama.ProducerMessage) {
	msg.Headers = append(msg.Headers, sarama.RecordHeader{
		Key:   []byte("trace-id"),
		Value: []byte(uuid.NewString()),
	})
}

func NewEventInterceptor() *EventInterceptor {
	return &EventInterceptor{}
}
