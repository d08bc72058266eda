package locomotion

// NotificationKind identifies a locomotion edge event.
type NotificationKind string

const (
	NotifyLanded  NotificationKind = "landed"
	NotifyCrouch  NotificationKind = "crouch"
	NotifySlide   NotificationKind = "slide"
	NotifyRespawn NotificationKind = "respawn"
)

// Notification is emitted once per state transition. Entering is only
// meaningful for crouch and slide.
type Notification struct {
	Kind     NotificationKind
	Entering bool
}

type Notifications []Notification

// Count returns how many notifications of kind are in the list.
func (n Notifications) Count(kind NotificationKind) int {
	count := 0
	for _, evt := range n {
		if evt.Kind == kind {
			count++
		}
	}
	return count
}

// Emitter dispatches notifications to subscribers synchronously.
type Emitter struct {
	OnLanded  []func()
	OnCrouch  []func(entering bool)
	OnSlide   []func(entering bool)
	OnRespawn []func()
}

// Emit sends n to the handlers registered for its kind.
func (e *Emitter) Emit(n Notification) {
	if e == nil {
		return
	}
	switch n.Kind {
	case NotifyLanded:
		for _, h := range e.OnLanded {
			if h != nil {
				h()
			}
		}
	case NotifyCrouch:
		for _, h := range e.OnCrouch {
			if h != nil {
				h(n.Entering)
			}
		}
	case NotifySlide:
		for _, h := range e.OnSlide {
			if h != nil {
				h(n.Entering)
			}
		}
	case NotifyRespawn:
		for _, h := range e.OnRespawn {
			if h != nil {
				h()
			}
		}
	}
}
