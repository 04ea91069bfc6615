package domain

import (
	"net/mail"
	"strings"
	"time"
)

type IDDocumentType string

const (
	IDDocumentNationalCard   IDDocumentType = "CNI"
	IDDocumentPassport       IDDocumentType = "PASSPORT"
	IDDocumentDrivingLicence IDDocumentType = "DRIVING_LICENCE"
)

func (t IDDocumentType) Valid() bool {
	switch t {
	case IDDocumentNationalCard, IDDocumentPassport, IDDocumentDrivingLicence:
		return true
	}
	return false
}

const DefaultCountry = "Guinée"

type Client struct {
	ID             int64          `json:"id"`
	LastName       string         `json:"last_name"`
	FirstName      string         `json:"first_name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	Address        string         `json:"address"`
	City           string         `json:"city"`
	Country        string         `json:"country"`
	IDDocumentType IDDocumentType `json:"id_document_type"`
	IDNumber       string         `json:"id_number"`
	BirthDate      time.Time      `json:"birth_date"`
	RegisteredAt   time.Time      `json:"registered_at"`
}

func (c Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c *Client) Normalize() {
	c.LastName = strings.TrimSpace(c.LastName)
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)
	c.IDNumber = strings.TrimSpace(c.IDNumber)
	if c.Country == "" {
		c.Country = DefaultCountry
	}
	if !c.BirthDate.IsZero() {
		c.BirthDate = DateOnly(c.BirthDate)
	}
}

func (c Client) Validate() error {
	if c.LastName == "" || c.FirstName == "" {
		return Validationf("first and last name are required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return Validationf("invalid email address %q", c.Email)
	}
	if c.Phone == "" {
		return Validationf("phone is required")
	}
	if !c.IDDocumentType.Valid() {
		return Validationf("invalid ID document type %q", c.IDDocumentType)
	}
	if c.IDNumber == "" {
		return Validationf("ID number is required")
	}
	if c.BirthDate.IsZero() {
		return Validationf("birth date is required")
	}
	return nil
}
