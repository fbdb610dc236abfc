// Package client is a small JSON client for the MissionConnect API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/missionconnect/missionconnect/pkg/agenda"
)

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// User mirrors the server's user shape, password hash excluded.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse is the register/login payload.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Contact mirrors the server's contact shape.
type Contact struct {
	ID              string     `json:"id"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Phone           string     `json:"phone"`
	Address         string     `json:"address"`
	Lat             *float64   `json:"lat,omitempty"`
	Lng             *float64   `json:"lng,omitempty"`
	Age             *int       `json:"age,omitempty"`
	Gender          string     `json:"gender"`
	Language        string     `json:"language"`
	Tags            []string   `json:"tags,omitempty"`
	BaptismDate     *time.Time `json:"baptismDate,omitempty"`
	Progress        int        `json:"progress"`
	NextAppointment *time.Time `json:"nextAppointment,omitempty"`
	NotesSummary    string     `json:"notesSummary,omitempty"`
}

// ContactInput carries the settable fields of a new contact.
type ContactInput struct {
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Address      string   `json:"address,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	Age          *int     `json:"age,omitempty"`
	Gender       string   `json:"gender,omitempty"`
	Language     string   `json:"language,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	BaptismDate  string   `json:"baptismDate,omitempty"`
	Progress     int      `json:"progress,omitempty"`
	NotesSummary string   `json:"notesSummary,omitempty"`
}

// Note mirrors the server's note shape.
type Note struct {
	ID        string    `json:"id"`
	ContactID string    `json:"contact"`
	AuthorID  string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Client talks to one MissionConnect server. The zero HTTPClient falls
// back to a client with a sane timeout.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// New creates a client for the given server base URL, e.g.
// "http://localhost:5000".
func New(baseURL, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Register creates an account and returns the user with a bearer token.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and returns the user with a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Contacts lists the caller's contacts, optionally filtered by a
// case-insensitive name query.
func (c *Client) Contacts(ctx context.Context, query string) ([]Contact, error) {
	path := "/api/contacts"
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}
	var out []Contact
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Contact fetches a single owned contact.
func (c *Client) Contact(ctx context.Context, id string) (*Contact, error) {
	var out Contact
	if err := c.do(ctx, http.MethodGet, "/api/contacts/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateContact creates a contact owned by the caller.
func (c *Client) CreateContact(ctx context.Context, input ContactInput) (*Contact, error) {
	var out Contact
	if err := c.do(ctx, http.MethodPost, "/api/contacts", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteContact removes a contact together with its notes and visits.
func (c *Client) DeleteContact(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/contacts/"+url.PathEscape(id), nil, nil)
}

// Notes lists a contact's notes in creation order.
func (c *Client) Notes(ctx context.Context, contactID string) ([]Note, error) {
	var out []Note
	if err := c.do(ctx, http.MethodGet, "/api/contacts/"+url.PathEscape(contactID)+"/notes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddNote appends a free-text note to a contact.
func (c *Client) AddNote(ctx context.Context, contactID, text string) (*Note, error) {
	body := map[string]string{"text": text}
	var out Note
	if err := c.do(ctx, http.MethodPost, "/api/contacts/"+url.PathEscape(contactID)+"/notes", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteNote removes a single note.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id), nil, nil)
}

// CreateVisit schedules a visit with an owned contact. datetime is an
// ISO datetime or a date plus optional time, as the server accepts.
func (c *Client) CreateVisit(ctx context.Context, contactID, datetime, notes string) (*agenda.RawVisit, error) {
	body := map[string]string{"contact": contactID, "datetime": datetime, "notes": notes}
	var out agenda.RawVisit
	if err := c.do(ctx, http.MethodPost, "/api/visits", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Visits lists the caller's visits ascending by datetime. The raw shape
// is returned so callers normalize exactly once, via agenda.
func (c *Client) Visits(ctx context.Context) ([]agenda.RawVisit, error) {
	var out []agenda.RawVisit
	if err := c.do(ctx, http.MethodGet, "/api/visits", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteVisit removes one of the caller's visits.
func (c *Client) DeleteVisit(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/visits/"+url.PathEscape(id), nil, nil)
}

// DemoInit seeds the demo account with sample data.
func (c *Client) DemoInit(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/demo/init", nil, nil)
}

// DemoClear wipes everything the demo account created.
func (c *Client) DemoClear(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/demo/clear", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: resp.Status}
		_ = json.Unmarshal(data, apiErr)
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}
