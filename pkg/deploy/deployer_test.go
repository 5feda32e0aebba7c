package deploy

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/resourced/pkg/descriptor"
	"github.com/marmos91/resourced/pkg/naming"
)

// fakeNaming records publishes and unpublishes and can be told to fail.
type fakeNaming struct {
	mu          sync.Mutex
	bindings    map[string]naming.Entry
	publishErr  error
	failOnNames map[string]bool
}

func newFakeNaming() *fakeNaming {
	return &fakeNaming{
		bindings:    make(map[string]naming.Entry),
		failOnNames: make(map[string]bool),
	}
}

func (f *fakeNaming) Publish(ctx context.Context, info naming.ResourceInfo, payload any, rebind bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil || f.failOnNames[info.Name] {
		if f.publishErr != nil {
			return f.publishErr
		}
		return errors.New("injected publish failure")
	}
	data, err := naming.EncodePayload(payload)
	if err != nil {
		return err
	}
	f.bindings[info.Key()] = naming.Entry{ResourceInfo: info, Payload: data}
	return nil
}

func (f *fakeNaming) Unpublish(ctx context.Context, info naming.ResourceInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bindings[info.Key()]; !ok {
		return naming.ErrNotBound
	}
	delete(f.bindings, info.Key())
	return nil
}

func (f *fakeNaming) Lookup(ctx context.Context, info naming.ResourceInfo) (*naming.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.bindings[info.Key()]
	if !ok {
		return nil, naming.ErrNotBound
	}
	return &e, nil
}

func (f *fakeNaming) List(ctx context.Context) ([]naming.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]naming.Entry, 0, len(f.bindings))
	for _, e := range f.bindings {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeNaming) Close() error { return nil }

func (f *fakeNaming) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bindings)
}

func testApplication() *descriptor.Application {
	return &descriptor.Application{
		Name: "orders",
		Bundles: []*descriptor.Bundle{
			{
				Name: "web",
				MailSessions: []*descriptor.MailSessionDefinition{
					{Name: "java:app/mail/notify", Host: "smtp.example.com"},
					{Name: "java:global/mail/audit", Host: "smtp.example.com"},
				},
				Components: []descriptor.Component{
					{
						Name: "OrderBean",
						Kind: descriptor.ComponentEJB,
						MailSessions: []*descriptor.MailSessionDefinition{
							{Name: "java:app/mail/receipts"},
						},
					},
				},
				Extensions: []*descriptor.Bundle{
					{
						Name: "web-ext",
						MailSessions: []*descriptor.MailSessionDefinition{
							{Name: "java:module/mail/internal"},
							{Name: "mail/unscoped"},
						},
					},
				},
			},
		},
	}
}

func TestRegisterMailSessionsPublishesEligibleScopes(t *testing.T) {
	svc := newFakeNaming()
	d := NewDeployer(svc, nil)
	app := testApplication()

	n := d.RegisterMailSessions(context.Background(), app)

	assert.Equal(t, 3, n)
	assert.Equal(t, 3, svc.count())

	assert.True(t, d.IsDeployed("orders", "java:app/mail/notify"))
	assert.True(t, d.IsDeployed("orders", "java:global/mail/audit"))
	assert.True(t, d.IsDeployed("orders", "java:app/mail/receipts"))

	// Module-scoped and unscoped names are never published.
	assert.False(t, d.IsDeployed("orders", "java:module/mail/internal"))
	assert.False(t, d.IsDeployed("orders", "mail/unscoped"))
}

func TestRegisterStampsResourceIDForAppScope(t *testing.T) {
	svc := newFakeNaming()
	d := NewDeployer(svc, nil)
	app := testApplication()

	d.RegisterMailSessions(context.Background(), app)

	sessions := app.AllMailSessions()
	byName := map[string]*descriptor.MailSessionDefinition{}
	for _, msd := range sessions {
		byName[msd.Name] = msd
	}

	assert.Equal(t, "orders", byName["java:app/mail/notify"].ResourceID)
	assert.Equal(t, "orders", byName["java:app/mail/receipts"].ResourceID)
	assert.Empty(t, byName["java:global/mail/audit"].ResourceID)
}

func TestRegisterIsIdempotent(t *testing.T) {
	svc := newFakeNaming()
	d := NewDeployer(svc, nil)
	app := testApplication()

	first := d.RegisterMailSessions(context.Background(), app)
	second := d.RegisterMailSessions(context.Background(), app)

	assert.Equal(t, 3, first)
	assert.Equal(t, 0, second)
	assert.Equal(t, 3, svc.count())
}

func TestRegisterContinuesPastPublishFailure(t *testing.T) {
	svc := newFakeNaming()
	svc.failOnNames["java:app/mail/notify"] = true
	d := NewDeployer(svc, nil)
	app := testApplication()

	n := d.RegisterMailSessions(context.Background(), app)

	assert.Equal(t, 2, n)
	assert.False(t, d.IsDeployed("orders", "java:app/mail/notify"))
	assert.True(t, d.IsDeployed("orders", "java:global/mail/audit"))

	// The failed definition stays registrable.
	delete(svc.failOnNames, "java:app/mail/notify")
	n = d.RegisterMailSessions(context.Background(), app)
	assert.Equal(t, 1, n)
	assert.True(t, d.IsDeployed("orders", "java:app/mail/notify"))
}

func TestUnregisterRoundTrip(t *testing.T) {
	svc := newFakeNaming()
	d := NewDeployer(svc, nil)
	app := testApplication()

	d.RegisterMailSessions(context.Background(), app)
	require.Equal(t, 3, d.DeployedCount())

	cleared := d.UnregisterMailSessions(context.Background(), app)

	assert.Equal(t, 3, cleared)
	assert.Equal(t, 0, d.DeployedCount())
	assert.Equal(t, 0, svc.count())

	// Unregistering again is a no-op.
	assert.Equal(t, 0, d.UnregisterMailSessions(context.Background(), app))
}

func TestUnregisterClearsFlagOnUnpublishFailure(t *testing.T) {
	svc := newFakeNaming()
	d := NewDeployer(svc, nil)
	app := testApplication()

	d.RegisterMailSessions(context.Background(), app)

	// Drop the bindings behind the deployer's back so Unpublish fails.
	svc.mu.Lock()
	svc.bindings = map[string]naming.Entry{}
	svc.mu.Unlock()

	cleared := d.UnregisterMailSessions(context.Background(), app)
	assert.Equal(t, 3, cleared)
	assert.Equal(t, 0, d.DeployedCount())
}

func TestPublishedPayloadIsMailResource(t *testing.T) {
	svc := newFakeNaming()
	d := NewDeployer(svc, nil)
	app := &descriptor.Application{
		Name: "crm",
		Bundles: []*descriptor.Bundle{{
			Name: "core",
			MailSessions: []*descriptor.MailSessionDefinition{{
				Name:              "java:global/mail/crm",
				StoreProtocol:     "imap",
				TransportProtocol: "smtp",
				Host:              "mail.example.com",
				User:              "crm",
				From:              "crm@example.com",
				Properties: []descriptor.ConfigProperty{
					{Name: "mail.imap.class", Value: "com.example.IMAPStore"},
					{Name: "mail.smtp.class", Value: "com.example.SMTPTransport"},
				},
			}},
		}},
	}

	d.RegisterMailSessions(context.Background(), app)

	entry, err := svc.Lookup(context.Background(), naming.ResourceInfo{
		Name:            "java:global/mail/crm",
		ApplicationName: "crm",
	})
	require.NoError(t, err)

	var res MailResource
	require.NoError(t, entry.Decode(&res))

	assert.Equal(t, "java:global/mail/crm", res.JndiName)
	assert.Equal(t, "com.example.IMAPStore", res.StoreProtocolClass)
	assert.Equal(t, "com.example.SMTPTransport", res.TransportProtocolClass)
	assert.Equal(t, "true", res.Debug)
	assert.Equal(t, "true", res.Enabled)
	assert.Equal(t, "mail.example.com", res.Host)
}

func TestUnsupportedLifecycleOperations(t *testing.T) {
	d := NewDeployer(newFakeNaming(), nil)
	msd := &descriptor.MailSessionDefinition{Name: "java:app/mail/x"}

	assert.ErrorIs(t, d.Redeploy(msd), ErrUnsupported)
	assert.ErrorIs(t, d.Enable(msd), ErrUnsupported)
	assert.ErrorIs(t, d.Disable(msd), ErrUnsupported)

	assert.True(t, d.Handles(msd))
	assert.False(t, d.Handles(descriptor.AdminObject{}))
	assert.True(t, d.CanDeploy(false, msd))
	assert.False(t, d.CanDeploy(true, msd))
	assert.False(t, d.SupportsDynamicReconfiguration())
}

func TestConcurrentRegisterPublishesOnce(t *testing.T) {
	svc := newFakeNaming()
	d := NewDeployer(svc, nil)
	msd := &descriptor.MailSessionDefinition{Name: "java:global/mail/shared"}
	app := &descriptor.Application{
		Name:    "shared",
		Bundles: []*descriptor.Bundle{{Name: "b", MailSessions: []*descriptor.MailSessionDefinition{msd}}},
	}

	var wg sync.WaitGroup
	total := make([]int, 8)
	for i := range total {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			total[i] = d.RegisterMailSessions(context.Background(), app)
		}(i)
	}
	wg.Wait()

	sum := 0
	for _, n := range total {
		sum += n
	}
	assert.Equal(t, 1, sum)
	assert.Equal(t, 1, svc.count())
}
