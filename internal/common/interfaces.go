package common

// Observer consumes notification events fanned out by the manager.
type Observer interface {
	Update(event NotificationEvent) error
	Name() string
}

// Subject is the notification fan-out surface the blog service
// publishes into.
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	Notify(event NotificationEvent)
	NotifyAsync(event NotificationEvent)
}

// EmailService sends a single email. Batched subscriber broadcasts
// loop over it and tally successes and failures.
type EmailService interface {
	SendEmail(to, subject, body string) error
}
