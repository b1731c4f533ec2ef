package services

import (
	"context"
	"fmt"
	"time"
)

// ContactStatus defines a public type used by goPortal APIs.
type ContactStatus string

const (
	// ContactNew is an exported constant or variable used by the portal client.
	ContactNew ContactStatus = "NEW"
	// ContactInProgress is an exported constant or variable used by the portal client.
	ContactInProgress ContactStatus = "IN_PROGRESS"
	// ContactResolved is an exported constant or variable used by the portal client.
	ContactResolved ContactStatus = "RESOLVED"
)

// ContactMessage defines a public type used by goPortal APIs.
type ContactMessage struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    ContactStatus `json:"status"`
	Reply     string        `json:"reply,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// ContactRequest defines a public type used by goPortal APIs.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactService defines a public type used by goPortal APIs.
//
// List, Reply, and UpdateStatus are admin-only on the backend; calling them
// without the ADMIN role yields a 403 [goPortal.APIError].
type ContactService struct {
	c *Client
}

// NewContactService describes the newcontactservice operation and its observable behavior.
func NewContactService(c *Client) *ContactService {
	return &ContactService{c: c}
}

// Create submits a contact message. It is the one operation in this package
// that works unauthenticated.
//
// Create may return an error when input validation, dependency calls, or security checks fail.
func (s *ContactService) Create(ctx context.Context, req ContactRequest) (*ContactMessage, error) {
	var out ContactMessage
	if err := s.c.send(ctx, "POST", "/contact", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns contact messages for review.
//
// List may return an error when input validation, dependency calls, or security checks fail.
func (s *ContactService) List(ctx context.Context, page, size int) (*Page[ContactMessage], error) {
	var out Page[ContactMessage]
	if err := s.c.get(ctx, "/contact", pageQuery(page, size), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reply records an admin reply to a contact message.
//
// Reply may return an error when input validation, dependency calls, or security checks fail.
func (s *ContactService) Reply(ctx context.Context, id int64, reply string) (*ContactMessage, error) {
	payload := struct {
		Reply string `json:"reply"`
	}{Reply: reply}

	var out ContactMessage
	if err := s.c.send(ctx, "PUT", fmt.Sprintf("/contact/%d/reply", id), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus moves a contact message through its workflow.
//
// UpdateStatus may return an error when input validation, dependency calls, or security checks fail.
func (s *ContactService) UpdateStatus(ctx context.Context, id int64, status ContactStatus) (*ContactMessage, error) {
	payload := struct {
		Status ContactStatus `json:"status"`
	}{Status: status}

	var out ContactMessage
	if err := s.c.send(ctx, "PUT", fmt.Sprintf("/contact/%d/status", id), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
