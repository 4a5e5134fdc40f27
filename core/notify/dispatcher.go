package notify

import (
	"sync"

	"flamtunes/logger"

	"github.com/google/uuid"
)

// Message is one outbound email.
type Message struct {
	ID      string // correlation id for log lines
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a single message. Delivery failures are the sender's to
// report; the dispatcher only logs them.
type Sender interface {
	Send(msg Message) error
}

// Dispatcher is a fire-and-forget outbound mail queue. Dispatch never blocks
// the caller; a worker goroutine drains the queue and delivery failures are
// logged, never propagated.
type Dispatcher struct {
	sender Sender
	queue  chan Message

	closeOnce sync.Once
	done      chan struct{}
}

// NewDispatcher starts a dispatcher with the given queue capacity.
func NewDispatcher(sender Sender, buffer int) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Message, buffer),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

// Dispatch enqueues a message without waiting for delivery. When the queue is
// full the message is dropped with a warning; notifications are best-effort.
func (d *Dispatcher) Dispatch(msg Message) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	select {
	case d.queue <- msg:
	default:
		logger.Warn("Notification queue full, dropping message",
			logger.String("messageId", msg.ID),
			logger.String("to", msg.To),
			logger.String("subject", msg.Subject))
	}
}

// Close stops the worker after the queue drains.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
		<-d.done
	})
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for msg := range d.queue {
		if err := d.sender.Send(msg); err != nil {
			logger.Error("Failed to deliver notification",
				logger.String("messageId", msg.ID),
				logger.String("to", msg.To),
				logger.ErrorField(err))
			continue
		}
		logger.Info("Notification delivered",
			logger.String("messageId", msg.ID),
			logger.String("to", msg.To),
			logger.String("subject", msg.Subject))
	}
}
