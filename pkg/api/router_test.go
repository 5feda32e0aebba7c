package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/marmos91/resourced/pkg/api/auth"
	"github.com/marmos91/resourced/pkg/api/handlers"
	"github.com/marmos91/resourced/pkg/deploy"
	"github.com/marmos91/resourced/pkg/descriptor"
	"github.com/marmos91/resourced/pkg/naming/memory"
	"github.com/marmos91/resourced/pkg/registry"
)

const testPassword = "correct horse battery staple"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret: "test-secret-key-that-is-at-least-32-characters-long",
		Issuer: "resourced",
	})
	if err != nil {
		t.Fatalf("failed to create JWT service: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	reg := registry.NewRegistry(nil)
	svc := memory.New()
	deployer := deploy.NewDeployer(svc, nil)

	return NewRouter(reg, deployer, svc, jwtService, handlers.Credentials{
		Username:     "admin",
		PasswordHash: string(hash),
	})
}

func login(t *testing.T, router http.Handler, username, password string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", rr.Code, rr.Body.String())
	}

	var resp handlers.LoginResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	return resp.AccessToken
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func testApp() descriptor.Application {
	return descriptor.Application{
		Name: "orders",
		Bundles: []*descriptor.Bundle{{
			Name: "web",
			AdminObjects: []descriptor.AdminObject{
				{
					InterfaceName: "jakarta.jms.Queue",
					ClassName:     "com.example.QueueImpl",
					Properties: []descriptor.ConfigProperty{
						{Name: "maxSize", Value: "100"},
						{Name: "apiKey", Value: "s3cret", Confidential: true},
					},
				},
				{InterfaceName: "jakarta.jms.ConnectionFactory"},
			},
			MailSessions: []*descriptor.MailSessionDefinition{
				{Name: "java:app/mail/notify", Host: "smtp.example.com"},
			},
		}},
	}
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodGet, "/health", "", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("liveness: expected 200, got %d", rr.Code)
	}

	rr = doJSON(t, router, http.MethodGet, "/health/ready", "", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("readiness: expected 200, got %d", rr.Code)
	}
}

func TestLogin(t *testing.T) {
	router := newTestRouter(t)

	t.Run("wrong password", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"username": "admin", "password": "wrong"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"username": "nobody", "password": testPassword})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("valid credentials", func(t *testing.T) {
		token := login(t, router, "admin", testPassword)
		if token == "" {
			t.Fatal("expected non-empty access token")
		}

		rr := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", token, nil)
		if rr.Code != http.StatusOK {
			t.Errorf("me: expected 200, got %d", rr.Code)
		}
	})
}

func TestApplicationsRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodGet, "/api/v1/applications", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}

func TestApplicationLifecycle(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "admin", testPassword)

	// Create
	rr := doJSON(t, router, http.MethodPost, "/api/v1/applications", token, testApp())
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	// List
	rr = doJSON(t, router, http.MethodGet, "/api/v1/applications", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rr.Code)
	}
	var summaries []handlers.ApplicationSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Name != "orders" {
		t.Fatalf("unexpected list response: %+v", summaries)
	}

	// Get
	rr = doJSON(t, router, http.MethodGet, "/api/v1/applications/orders", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rr.Code)
	}

	// Delete
	rr = doJSON(t, router, http.MethodDelete, "/api/v1/applications/orders", token, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rr.Code)
	}

	rr = doJSON(t, router, http.MethodGet, "/api/v1/applications/orders", token, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", rr.Code)
	}
}

func TestApplicationCreateRejectsInvalidDescriptor(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "admin", testPassword)

	// Missing name fails validation.
	rr := doJSON(t, router, http.MethodPost, "/api/v1/applications", token, descriptor.Application{})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestAdminObjectLookups(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "admin", testPassword)

	rr := doJSON(t, router, http.MethodPost, "/api/v1/applications", token, testApp())
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", rr.Code)
	}

	base := "/api/v1/applications/orders/bundles/web/admin-objects"

	t.Run("interfaces", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, base+"/interfaces", token, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var resp struct {
			Interfaces []string `json:"interfaces"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if len(resp.Interfaces) != 2 {
			t.Errorf("expected 2 interfaces, got %v", resp.Interfaces)
		}
	})

	t.Run("classes", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, base+"/classes?interface=jakarta.jms.Queue", token, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var resp struct {
			Classes []string `json:"classes"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if len(resp.Classes) != 1 || resp.Classes[0] != "com.example.QueueImpl" {
			t.Errorf("unexpected classes: %v", resp.Classes)
		}
	})

	t.Run("classes requires interface", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, base+"/classes", token, nil)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rr.Code)
		}
	})

	t.Run("exists", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet,
			base+"/exists?interface=jakarta.jms.Queue&class=com.example.QueueImpl", token, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var resp struct {
			Exists bool `json:"exists"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if !resp.Exists {
			t.Error("expected exists to be true")
		}
	})

	t.Run("exists requires both params", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, base+"/exists?interface=jakarta.jms.Queue", token, nil)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rr.Code)
		}
	})

	t.Run("properties", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, base+"/properties?interface=jakarta.jms.Queue", token, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var resp struct {
			Properties map[string]string `json:"properties"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Properties["maxSize"] != "100" {
			t.Errorf("unexpected properties: %v", resp.Properties)
		}
	})

	t.Run("properties null for classless admin object", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet,
			base+"/properties?interface=jakarta.jms.ConnectionFactory", token, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var resp struct {
			Properties map[string]string `json:"properties"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Properties != nil {
			t.Errorf("expected null properties, got %v", resp.Properties)
		}
	})

	t.Run("properties miss is 404", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, base+"/properties?interface=jakarta.jms.Topic", token, nil)
		if rr.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rr.Code)
		}
	})

	t.Run("confidential", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, base+"/confidential?interface=jakarta.jms.Queue", token, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var resp struct {
			Confidential []string `json:"confidential"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if len(resp.Confidential) != 1 || resp.Confidential[0] != "apiKey" {
			t.Errorf("unexpected confidential names: %v", resp.Confidential)
		}
	})

	t.Run("unknown bundle is 404", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet,
			"/api/v1/applications/orders/bundles/missing/admin-objects/interfaces", token, nil)
		if rr.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rr.Code)
		}
	})
}

func TestSessionDeployment(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "admin", testPassword)

	rr := doJSON(t, router, http.MethodPost, "/api/v1/applications", token, testApp())
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", rr.Code)
	}

	// Deploy
	rr = doJSON(t, router, http.MethodPost, "/api/v1/applications/orders/sessions/deploy", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("deploy: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var result handlers.DeployResult
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.Affected != 1 || result.Deployed != 1 {
		t.Errorf("unexpected deploy result: %+v", result)
	}

	// Deploy again is a no-op
	rr = doJSON(t, router, http.MethodPost, "/api/v1/applications/orders/sessions/deploy", token, nil)
	_ = json.Unmarshal(rr.Body.Bytes(), &result)
	if result.Affected != 0 || result.Deployed != 1 {
		t.Errorf("unexpected second deploy result: %+v", result)
	}

	// Bindings
	rr = doJSON(t, router, http.MethodGet, "/api/v1/bindings", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("bindings: expected 200, got %d", rr.Code)
	}
	var bindings []handlers.BindingResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &bindings); err != nil {
		t.Fatal(err)
	}
	if len(bindings) != 1 || bindings[0].Name != "java:app/mail/notify" {
		t.Errorf("unexpected bindings: %+v", bindings)
	}

	// Undeploy
	rr = doJSON(t, router, http.MethodPost, "/api/v1/applications/orders/sessions/undeploy", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("undeploy: expected 200, got %d", rr.Code)
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &result)
	if result.Affected != 1 || result.Deployed != 0 {
		t.Errorf("unexpected undeploy result: %+v", result)
	}

	t.Run("deploy unknown application is 404", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/api/v1/applications/missing/sessions/deploy", token, nil)
		if rr.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rr.Code)
		}
	})
}
