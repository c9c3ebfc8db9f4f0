package notif

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"inkwell/internal/common"
	"inkwell/internal/config"
	"inkwell/internal/dbmysql"
)

type MockSubscriberSource struct {
	mock.Mock
}

func (m *MockSubscriberSource) ListActive(ctx context.Context) ([]dbmysql.Subscriber, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dbmysql.Subscriber), args.Error(1)
}

type recordingMailer struct {
	mu     sync.Mutex
	sent   []string
	failTo string
}

func (m *recordingMailer) SendEmail(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if to == m.failTo {
		return errors.New("mailbox unavailable")
	}
	m.sent = append(m.sent, to)
	return nil
}

func (m *recordingMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type countingObserver struct {
	mu     sync.Mutex
	events []common.NotificationEvent
}

func (o *countingObserver) Name() string { return "counting_observer" }

func (o *countingObserver) Update(event common.NotificationEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
	return nil
}

func (o *countingObserver) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.events)
}

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Notification.Workers = 2
	cfg.Notification.ChannelBufferSize = 16
	cfg.Notification.Enabled = true
	return cfg
}

func TestManagerFanOut(t *testing.T) {
	manager := NewManager(2, 16)
	defer manager.Shutdown()

	obs := &countingObserver{}
	manager.Subscribe(obs)

	manager.Notify(common.NotificationEvent{Type: common.PostPublishedType, PostID: 1})
	assert.Equal(t, 1, obs.count())

	manager.NotifyAsync(common.NotificationEvent{Type: common.PostPublishedType, PostID: 2})
	assert.Eventually(t, func() bool { return obs.count() == 2 }, time.Second, 10*time.Millisecond)

	manager.Unsubscribe(obs)
	manager.Notify(common.NotificationEvent{Type: common.PostPublishedType, PostID: 3})
	assert.Equal(t, 2, obs.count())
}

func TestManagerIsolatesObserverFailures(t *testing.T) {
	manager := NewManager(1, 4)
	defer manager.Shutdown()

	failing := &failingObserver{}
	obs := &countingObserver{}
	manager.Subscribe(failing)
	manager.Subscribe(obs)

	manager.Notify(common.NotificationEvent{Type: common.PostPublishedType, PostID: 1})
	assert.Equal(t, 1, obs.count())
}

type failingObserver struct{}

func (failingObserver) Name() string { return "failing_observer" }

func (failingObserver) Update(common.NotificationEvent) error {
	return errors.New("boom")
}

func TestSubscriberEmailObserverBatches(t *testing.T) {
	subs := new(MockSubscriberSource)
	subs.On("ListActive", mock.Anything).Return([]dbmysql.Subscriber{
		{SubscriberID: 1, Email: "a@example.com", Active: true},
		{SubscriberID: 2, Email: "broken@example.com", Active: true},
		{SubscriberID: 3, Email: "c@example.com", Active: true},
	}, nil)

	mailer := &recordingMailer{failTo: "broken@example.com"}
	obs := NewSubscriberEmailObserver(subs, mailer)

	err := obs.Update(common.NotificationEvent{
		Type:       common.PostPublishedType,
		PostID:     9,
		AuthorName: "ada",
		Title:      "Hello",
		Preview:    "World",
	})

	// per-recipient failures never fail the batch
	require.NoError(t, err)
	assert.Equal(t, 2, mailer.sentCount())
}

func TestSubscriberEmailObserverIgnoresOtherEvents(t *testing.T) {
	subs := new(MockSubscriberSource)
	mailer := &recordingMailer{}
	obs := NewSubscriberEmailObserver(subs, mailer)

	require.NoError(t, obs.Update(common.NotificationEvent{Type: common.ContactMessageType}))
	subs.AssertNotCalled(t, "ListActive", mock.Anything)
}

func TestServicePostPublishedIsDetached(t *testing.T) {
	subs := new(MockSubscriberSource)
	subs.On("ListActive", mock.Anything).Return([]dbmysql.Subscriber{
		{SubscriberID: 1, Email: "a@example.com", Active: true},
	}, nil)

	mailer := &recordingMailer{}
	svc := NewService(testConfig(), subs, mailer)
	defer svc.Shutdown()

	// returns immediately even though delivery runs on the pool
	svc.PostPublished(&dbmysql.Post{PostID: 4, Title: "Hello", Document: "not even json"}, "ada")

	assert.Eventually(t, func() bool { return mailer.sentCount() == 1 }, time.Second, 10*time.Millisecond)
}

func TestServiceDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Notification.Enabled = false

	subs := new(MockSubscriberSource)
	mailer := &recordingMailer{}
	svc := NewService(cfg, subs, mailer)
	defer svc.Shutdown()

	svc.PostPublished(&dbmysql.Post{PostID: 4, Title: "Hello"}, "ada")

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, mailer.sentCount())
}
