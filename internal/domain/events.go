package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCatalogChanged EventType = "CatalogChanged"
	EventViewChanged    EventType = "ViewChanged"
	EventItemOpened     EventType = "ItemOpened"
	EventDisplayChanged EventType = "DisplayChanged"
	EventRelatedLoaded  EventType = "RelatedLoaded"
	EventError          EventType = "Error"
	EventConfigLoaded   EventType = "ConfigLoaded"
	EventConfigSaved    EventType = "ConfigSaved"
	EventAppReady       EventType = "AppReady"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ChangeOp describes how a catalog sequence changed
type ChangeOp string

const (
	ChangeAppend  ChangeOp = "append"
	ChangeRemove  ChangeOp = "remove"
	ChangeReplace ChangeOp = "replace"
)

// CatalogChangedEvent is emitted after a mutation of one kind's sequence is committed
type CatalogChangedEvent struct {
	Kind    Kind
	Op      ChangeOp
	IDs     []string
	Version uint64
}

func (e CatalogChangedEvent) Type() EventType { return EventCatalogChanged }

// ViewChangedEvent is emitted after the router completed a transition
type ViewChangedEvent struct {
	From  View
	To    View
	Route string
}

func (e ViewChangedEvent) Type() EventType { return EventViewChanged }

// ItemOpenedEvent is emitted after a composite "open item" transition
type ItemOpenedEvent struct {
	Ref      ItemRef
	View     View
	Selected bool
}

func (e ItemOpenedEvent) Type() EventType { return EventItemOpened }

// DisplayChangedEvent is emitted when the display class changes
type DisplayChangedEvent struct {
	Display Display
}

func (e DisplayChangedEvent) Type() EventType { return EventDisplayChanged }

// RelatedLoadedEvent is emitted when related content for an item was published
type RelatedLoadedEvent struct {
	Ref   ItemRef
	Count int
	Err   error
}

func (e RelatedLoadedEvent) Type() EventType { return EventRelatedLoaded }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// AppReadyEvent is emitted when the app is fully initialized and ready
type AppReadyEvent struct {
	Route string
}

func (e AppReadyEvent) Type() EventType { return EventAppReady }
