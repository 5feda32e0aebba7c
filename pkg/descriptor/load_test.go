package descriptor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDescriptor = `
name: orders
bundles:
  - name: orders-web
    admin_objects:
      - interface: jakarta.jms.Queue
        class: com.example.QueueImpl
        properties:
          - name: destination
            value: orders
          - name: password
            value: secret
            confidential: true
    mail_sessions:
      - name: java:app/mail/notify
        store_protocol: imap
        transport_protocol: smtp
        host: mail.example.com
        user: notifier
        from: noreply@example.com
        properties:
          - name: mail.smtp.class
            value: com.example.SMTPTransport
    components:
      - name: OrderProcessor
        kind: ejb
        mail_sessions:
          - name: java:global/mail/audit
            host: audit.example.com
    extensions:
      - name: orders-web-ext
        mail_sessions:
          - name: java:comp/mail/internal
`

func TestParseSampleDescriptor(t *testing.T) {
	app, err := Parse([]byte(sampleDescriptor))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if app.Name != "orders" {
		t.Errorf("app name = %q, want orders", app.Name)
	}
	bundle := app.Bundle("orders-web")
	if bundle == nil {
		t.Fatal("bundle orders-web not found")
	}
	if len(bundle.AdminObjects) != 1 {
		t.Fatalf("got %d admin objects, want 1", len(bundle.AdminObjects))
	}

	ao := bundle.AdminObjects[0]
	if ao.InterfaceName != "jakarta.jms.Queue" {
		t.Errorf("interface = %q", ao.InterfaceName)
	}
	if !ao.Properties[1].Confidential {
		t.Error("password property should be confidential")
	}
}

func TestAllMailSessionsWalksComponentsAndExtensions(t *testing.T) {
	app, err := Parse([]byte(sampleDescriptor))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	sessions := app.AllMailSessions()
	if len(sessions) != 3 {
		t.Fatalf("got %d mail sessions, want 3 (bundle + component + extension)", len(sessions))
	}

	names := make(map[string]bool)
	for _, s := range sessions {
		names[s.Name] = true
	}
	for _, want := range []string{"java:app/mail/notify", "java:global/mail/audit", "java:comp/mail/internal"} {
		if !names[want] {
			t.Errorf("missing mail session %q", want)
		}
	}
}

func TestParseRejectsMissingName(t *testing.T) {
	_, err := Parse([]byte(`bundles: [{name: b1}]`))
	if err == nil {
		t.Fatal("expected validation error for missing application name")
	}
}

func TestParseRejectsDuplicateAdminObjectPair(t *testing.T) {
	doc := `
name: app
bundles:
  - name: b1
    admin_objects:
      - interface: jakarta.jms.Queue
        class: com.example.QueueImpl
      - interface: jakarta.jms.Queue
        class: com.example.QueueImpl
`
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatal("expected error for duplicate (interface, class) pair")
	}
	if !strings.Contains(err.Error(), "duplicate admin object") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseAllowsSameInterfaceDifferentClass(t *testing.T) {
	doc := `
name: app
bundles:
  - name: b1
    admin_objects:
      - interface: jakarta.jms.Queue
        class: com.example.QueueA
      - interface: jakarta.jms.Queue
        class: com.example.QueueB
`
	if _, err := Parse([]byte(doc)); err != nil {
		t.Fatalf("same interface with different classes must be allowed: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	if err := os.WriteFile(path, []byte(sampleDescriptor), 0644); err != nil {
		t.Fatal(err)
	}

	app, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if app.Name != "orders" {
		t.Errorf("app name = %q", app.Name)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestMailSessionProperty(t *testing.T) {
	msd := &MailSessionDefinition{
		Name:          "java:app/mail/x",
		StoreProtocol: "imap",
		Properties: []ConfigProperty{
			{Name: "mail.imap.class", Value: "com.example.IMAPStore"},
		},
	}
	if got := msd.Property("mail.imap.class"); got != "com.example.IMAPStore" {
		t.Errorf("Property = %q", got)
	}
	if got := msd.Property("absent"); got != "" {
		t.Errorf("Property(absent) = %q, want empty", got)
	}
}
