package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	domainauth "github.com/target/storefront-client/internal/domain/auth"
)

// Paths served by FakeBackend.
const (
	SignUpPath  = "/api/user/signup"
	SignInPath  = "/api/user/signin"
	ProfilePath = "/api/user/me"
)

// RecordedRequest is what FakeBackend saw for one request.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	Body          map[string]any
}

type account struct {
	password string
	resp     domainauth.AuthResponse
}

// FakeBackend is an httptest server implementing the storefront account API.
//   - POST /api/user/signin answers 200 with the account body or 401 {"message": ...}
//   - POST /api/user/signup answers 201 {"id": n} or 409 for a known email
//   - GET  /api/user/me answers 200 for a token it issued, 401 otherwise
type FakeBackend struct {
	Server *httptest.Server

	mu       sync.Mutex
	accounts map[string]account
	tokens   map[string]domainauth.User
	requests []RecordedRequest
	nextID   int
	revoked  bool
}

// NewFakeBackend starts the server; it is closed when the test finishes.
func NewFakeBackend(t TestingTB) *FakeBackend {
	t.Helper()
	b := &FakeBackend{
		accounts: make(map[string]account),
		tokens:   make(map[string]domainauth.User),
		nextID:   100,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+SignInPath, b.handleSignIn)
	mux.HandleFunc("POST "+SignUpPath, b.handleSignUp)
	mux.HandleFunc("GET "+ProfilePath, b.handleProfile)
	b.Server = httptest.NewServer(b.record(mux))
	t.Cleanup(b.Server.Close)
	return b
}

// URL returns the server base URL.
func (b *FakeBackend) URL() string { return b.Server.URL }

// AddAccount registers credentials answered with resp on sign-in.
func (b *FakeBackend) AddAccount(email, password string, resp domainauth.AuthResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accounts[strings.ToLower(email)] = account{password: password, resp: resp}
	if resp.Token != "" {
		b.tokens[resp.Token] = resp.User
	}
}

// RevokeTokens makes every issued token answer 401 from now on.
func (b *FakeBackend) RevokeTokens() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked = true
}

// Requests returns a copy of the recorded requests.
func (b *FakeBackend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

// LastRequest returns the most recent request, or a zero value.
func (b *FakeBackend) LastRequest() RecordedRequest {
	reqs := b.Requests()
	if len(reqs) == 0 {
		return RecordedRequest{}
	}
	return reqs[len(reqs)-1]
}

func (b *FakeBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
		}
		if r.Body != nil && r.Method == http.MethodPost {
			raw, err := io.ReadAll(r.Body)
			if err == nil {
				var body map[string]any
				if json.Unmarshal(raw, &body) == nil {
					rec.Body = body
				}
				r.Body = io.NopCloser(bytes.NewReader(raw))
			}
		}
		b.mu.Lock()
		b.requests = append(b.requests, rec)
		b.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (b *FakeBackend) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid request body"})
		return
	}

	b.mu.Lock()
	acc, ok := b.accounts[strings.ToLower(in.Email)]
	b.mu.Unlock()
	if !ok || acc.password != in.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid email or password"})
		return
	}
	writeJSON(w, http.StatusOK, acc.resp)
}

func (b *FakeBackend) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var in map[string]any
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid request body"})
		return
	}
	email, _ := in["email"].(string)
	if email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Email is required"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.accounts[strings.ToLower(email)]; exists {
		writeJSON(w, http.StatusConflict, map[string]any{"message": "Email already registered"})
		return
	}
	b.nextID++
	first, _ := in["firstName"].(string)
	last, _ := in["lastName"].(string)
	password, _ := in["password"].(string)
	role, _ := in["type"].(string)
	resp := domainauth.AuthResponse{User: domainauth.User{
		ID:        domainauth.UserID(strconv.Itoa(b.nextID)),
		FirstName: first,
		LastName:  last,
		Email:     email,
		Type:      domainauth.Role(role),
	}}
	b.accounts[strings.ToLower(email)] = account{password: password, resp: resp}
	writeJSON(w, http.StatusCreated, map[string]any{"id": b.nextID})
}

func (b *FakeBackend) handleProfile(w http.ResponseWriter, r *http.Request) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	b.mu.Lock()
	user, known := b.tokens[token]
	revoked := b.revoked
	b.mu.Unlock()
	if !ok || !known || revoked {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Token expired"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

