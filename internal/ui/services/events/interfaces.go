package events

// EventBus is a simple interface for publishing events
type EventBus interface {
	Publish(event any)
	Subscribe(eventType string, handler func(any))
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (n *NullBus) Publish(event any)                             {}
func (n *NullBus) Subscribe(eventType string, handler func(any)) {}

// Recorder keeps every published event; used by tests
type Recorder struct {
	*Bus
	Events []any
}

// NewRecorder creates a bus that records what it publishes
func NewRecorder() *Recorder {
	return &Recorder{Bus: NewBus()}
}

// Publish records event and delivers it
func (r *Recorder) Publish(event any) {
	r.Events = append(r.Events, event)
	r.Bus.Publish(event)
}
