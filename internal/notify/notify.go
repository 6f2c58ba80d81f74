package notify

// Severity of a notification.
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityError   = "error"
)

// Notification is the event shape the engine emits for every user-visible
// success and failure outcome. Delivery is up to the sink.
type Notification struct {
	Title       string
	Description string
	Severity    string
}

// Notifier receives notifications from the engine.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a plain function to the Notifier interface.
type Func func(n Notification)

// Notify implements Notifier.
func (f Func) Notify(n Notification) { f(n) }

// Discard drops all notifications.
var Discard Notifier = Func(func(Notification) {})

// Info emits an informational notification.
func Info(n Notifier, title, description string) {
	n.Notify(Notification{Title: title, Description: description, Severity: SeverityInfo})
}

// Success emits a success notification.
func Success(n Notifier, title, description string) {
	n.Notify(Notification{Title: title, Description: description, Severity: SeveritySuccess})
}

// Error emits a failure notification.
func Error(n Notifier, title, description string) {
	n.Notify(Notification{Title: title, Description: description, Severity: SeverityError})
}
