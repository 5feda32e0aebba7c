package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/marmos91/resourced/pkg/naming"
)

type testPayload struct {
	JndiName string `json:"jndi_name"`
	Host     string `json:"host"`
}

func TestPublishLookupRoundTrip(t *testing.T) {
	svc := New()
	ctx := context.Background()
	info := naming.ResourceInfo{Name: "java:app/mail/notify", ApplicationName: "orders"}

	err := svc.Publish(ctx, info, testPayload{JndiName: info.Name, Host: "mail.example.com"}, false)
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	entry, err := svc.Lookup(ctx, info)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	var got testPayload
	if err := entry.Decode(&got); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got.Host != "mail.example.com" {
		t.Errorf("host = %q", got.Host)
	}
}

func TestPublishRebind(t *testing.T) {
	svc := New()
	ctx := context.Background()
	info := naming.ResourceInfo{Name: "java:global/mail/a"}

	if err := svc.Publish(ctx, info, testPayload{Host: "first"}, false); err != nil {
		t.Fatal(err)
	}

	// Without rebind the second publish fails.
	err := svc.Publish(ctx, info, testPayload{Host: "second"}, false)
	if !errors.Is(err, naming.ErrAlreadyBound) {
		t.Fatalf("got %v, want ErrAlreadyBound", err)
	}

	// With rebind it replaces the binding.
	if err := svc.Publish(ctx, info, testPayload{Host: "second"}, true); err != nil {
		t.Fatalf("rebind failed: %v", err)
	}
	entry, err := svc.Lookup(ctx, info)
	if err != nil {
		t.Fatal(err)
	}
	var got testPayload
	if err := entry.Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Host != "second" {
		t.Errorf("host = %q, want second after rebind", got.Host)
	}
}

func TestUnpublish(t *testing.T) {
	svc := New()
	ctx := context.Background()
	info := naming.ResourceInfo{Name: "java:app/mail/x", ApplicationName: "app"}

	if err := svc.Unpublish(ctx, info); !errors.Is(err, naming.ErrNotBound) {
		t.Fatalf("unpublish of unbound name = %v, want ErrNotBound", err)
	}

	if err := svc.Publish(ctx, info, testPayload{}, false); err != nil {
		t.Fatal(err)
	}
	if err := svc.Unpublish(ctx, info); err != nil {
		t.Fatalf("Unpublish failed: %v", err)
	}
	if _, err := svc.Lookup(ctx, info); !errors.Is(err, naming.ErrNotBound) {
		t.Fatalf("lookup after unpublish = %v, want ErrNotBound", err)
	}
}

func TestListOrdered(t *testing.T) {
	svc := New()
	ctx := context.Background()

	for _, info := range []naming.ResourceInfo{
		{Name: "java:app/mail/z", ApplicationName: "beta"},
		{Name: "java:app/mail/a", ApplicationName: "beta"},
		{Name: "java:global/mail/g", ApplicationName: "alpha"},
	} {
		if err := svc.Publish(ctx, info, testPayload{}, false); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].ApplicationName != "alpha" {
		t.Errorf("first entry app = %q, want alpha", entries[0].ApplicationName)
	}
	if entries[1].Name != "java:app/mail/a" {
		t.Errorf("second entry = %q, want java:app/mail/a", entries[1].Name)
	}
}

func TestSameNameDifferentApplications(t *testing.T) {
	svc := New()
	ctx := context.Background()

	a := naming.ResourceInfo{Name: "java:app/mail/x", ApplicationName: "app-a"}
	b := naming.ResourceInfo{Name: "java:app/mail/x", ApplicationName: "app-b"}

	if err := svc.Publish(ctx, a, testPayload{Host: "a"}, false); err != nil {
		t.Fatal(err)
	}
	if err := svc.Publish(ctx, b, testPayload{Host: "b"}, false); err != nil {
		t.Fatalf("same name under another application must not collide: %v", err)
	}
}
