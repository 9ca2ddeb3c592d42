package domain

import (
	"strings"
	"time"
)

type Client struct {
	ID               int64
	FirstName        string
	LastName         string
	CompanyName      string
	Email            string
	AddressStreet    *string
	AddressCity      *string
	AddressZip       *string
	PhoneCountryCode *string
	PhoneNumber      *string
	IsArchived       bool
	ArchivedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewClient is the input shape for client creation. Optional fields stay
// nil when omitted and persist as NULL.
type NewClient struct {
	FirstName        string
	LastName         string
	CompanyName      string
	Email            string
	AddressStreet    *string
	AddressCity      *string
	AddressZip       *string
	PhoneCountryCode *string
	PhoneNumber      *string
}

// ClientPatch is a partial update; nil fields are left unchanged.
type ClientPatch struct {
	FirstName        *string
	LastName         *string
	CompanyName      *string
	Email            *string
	AddressStreet    *string
	AddressCity      *string
	AddressZip       *string
	PhoneCountryCode *string
	PhoneNumber      *string
}

// Client builds a Client from the input with fresh bookkeeping fields
func (n NewClient) Client(now time.Time) *Client {
	return &Client{
		FirstName:        strings.TrimSpace(n.FirstName),
		LastName:         strings.TrimSpace(n.LastName),
		CompanyName:      strings.TrimSpace(n.CompanyName),
		Email:            strings.TrimSpace(n.Email),
		AddressStreet:    n.AddressStreet,
		AddressCity:      n.AddressCity,
		AddressZip:       n.AddressZip,
		PhoneCountryCode: n.PhoneCountryCode,
		PhoneNumber:      n.PhoneNumber,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// FullName returns "First Last" for display
func (c *Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// SetArchived marks the client archived at the given time
func (c *Client) SetArchived(at time.Time) {
	c.IsArchived = true
	c.ArchivedAt = &at
	c.UpdatedAt = at
}

// ResetArchived clears the archive flags
func (c *Client) ResetArchived(at time.Time) {
	c.IsArchived = false
	c.ArchivedAt = nil
	c.UpdatedAt = at
}

// Apply copies the set fields of the patch onto the client
func (c *Client) Apply(p ClientPatch, now time.Time) {
	if p.FirstName != nil {
		c.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		c.LastName = *p.LastName
	}
	if p.CompanyName != nil {
		c.CompanyName = *p.CompanyName
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.AddressStreet != nil {
		c.AddressStreet = p.AddressStreet
	}
	if p.AddressCity != nil {
		c.AddressCity = p.AddressCity
	}
	if p.AddressZip != nil {
		c.AddressZip = p.AddressZip
	}
	if p.PhoneCountryCode != nil {
		c.PhoneCountryCode = p.PhoneCountryCode
	}
	if p.PhoneNumber != nil {
		c.PhoneNumber = p.PhoneNumber
	}
	c.UpdatedAt = now
}
