package notif

import (
	"context"
	"log"
	"sync"

	"inkwell/internal/common"
)

// Manager fans notification events out to observers through a fixed
// worker pool. NotifyAsync is the detached handoff the publish path
// uses: it never blocks, and a full channel drops the event with a
// log line instead of holding up the caller.
type Manager struct {
	observers    map[string]common.Observer
	eventChannel chan common.NotificationEvent
	workerPool   int
	ctx          context.Context
	cancel       context.CancelFunc
	mu           sync.RWMutex
	wg           sync.WaitGroup
}

func NewManager(workerPoolSize, bufferSize int) *Manager {
	if workerPoolSize <= 0 {
		workerPoolSize = 1
	}
	if bufferSize <= 0 {
		bufferSize = 100
	}
	ctx, cancel := context.WithCancel(context.Background())

	m := &Manager{
		observers:    make(map[string]common.Observer),
		eventChannel: make(chan common.NotificationEvent, bufferSize),
		workerPool:   workerPoolSize,
		ctx:          ctx,
		cancel:       cancel,
	}

	for i := 0; i < workerPoolSize; i++ {
		m.wg.Add(1)
		go m.processEvents()
	}

	return m
}

func (m *Manager) Subscribe(observer common.Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers[observer.Name()] = observer
	log.Printf("Observer %s subscribed", observer.Name())
}

func (m *Manager) Unsubscribe(observer common.Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.observers, observer.Name())
	log.Printf("Observer %s unsubscribed", observer.Name())
}

// Notify delivers the event to every observer synchronously. Observer
// failures are logged and isolated; one failing observer never stops
// the others.
func (m *Manager) Notify(event common.NotificationEvent) {
	m.mu.RLock()
	observers := make([]common.Observer, 0, len(m.observers))
	for _, obs := range m.observers {
		observers = append(observers, obs)
	}
	m.mu.RUnlock()

	for _, observer := range observers {
		if err := observer.Update(event); err != nil {
			log.Printf("Observer %s update failed: %v", observer.Name(), err)
		}
	}
}

func (m *Manager) NotifyAsync(event common.NotificationEvent) {
	select {
	case m.eventChannel <- event:

	case <-m.ctx.Done():
		return
	default:
		log.Printf("Notification channel full, dropping event: %s", event.Type)
	}
}

func (m *Manager) processEvents() {
	defer m.wg.Done()

	for {
		select {
		case event := <-m.eventChannel:
			m.Notify(event)
		case <-m.ctx.Done():
			return
		}
	}
}

func (m *Manager) Shutdown() {
	m.cancel()
	m.wg.Wait()
	log.Println("Notification manager shutdown complete")
}
