package domain

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errors for participant handling
var (
	ErrDuplicateParticipantEmail = errors.New("participant email already registered for this tour")
	ErrInvalidParticipant        = errors.New("participant requires first name, last name and email")
)

// Participant is a real attendee registered for a tour
type Participant struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TourID    string             `bson:"tourId" json:"tourId"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
	Company   string             `bson:"company,omitempty" json:"company,omitempty"`
	Title     string             `bson:"title,omitempty" json:"title,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// NewParticipant creates a participant, normalizing the email
func NewParticipant(tourID, firstName, lastName, email, company, title string) (*Participant, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.ToLower(strings.TrimSpace(email))

	if firstName == "" || lastName == "" || email == "" {
		return nil, ErrInvalidParticipant
	}

	return &Participant{
		TourID:    tourID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Company:   strings.TrimSpace(company),
		Title:     strings.TrimSpace(title),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// TeamMember is a staff member who can host tours
type TeamMember struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID  string             `bson:"memberId" json:"memberId"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// ExtraCustomer is a pre-seeded filler identity used when real participants
// are fewer than the orders required. The pool is read-only to the core.
type ExtraCustomer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
	Company   string             `bson:"company,omitempty" json:"company,omitempty"`
	Position  int                `bson:"position" json:"position"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// RecipientType classifies where a recipient came from
type RecipientType string

const (
	RecipientParticipant RecipientType = "participant"
	RecipientHost        RecipientType = "host"
	RecipientExtra       RecipientType = "extra"
)

// Recipient is the addressee assigned to one generated order. Derived fresh
// per finalization run, never persisted.
type Recipient struct {
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Email     string        `json:"email"`
	Company   string        `json:"company,omitempty"`
	Type      RecipientType `json:"type"`
}

// FullName returns the recipient's display name
func (r Recipient) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// RecipientFromParticipant converts a participant into a recipient
func RecipientFromParticipant(p *Participant) Recipient {
	return Recipient{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Company:   p.Company,
		Type:      RecipientParticipant,
	}
}

// RecipientFromHost converts a team member into a recipient
func RecipientFromHost(m *TeamMember) Recipient {
	return Recipient{
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Type:      RecipientHost,
	}
}

// DefaultExtraCustomers is the seed pool of filler identities. Positions fix
// the fill order; identities are obviously fake so demo orders are easy to
// spot in the warehouse system.
var DefaultExtraCustomers = []*ExtraCustomer{
	{Position: 1, FirstName: "Avery", LastName: "Demo", Email: "avery.demo@example.com", Company: "Tour Demo Co"},
	{Position: 2, FirstName: "Blake", LastName: "Demo", Email: "blake.demo@example.com", Company: "Tour Demo Co"},
	{Position: 3, FirstName: "Casey", LastName: "Demo", Email: "casey.demo@example.com", Company: "Tour Demo Co"},
	{Position: 4, FirstName: "Drew", LastName: "Demo", Email: "drew.demo@example.com", Company: "Tour Demo Co"},
	{Position: 5, FirstName: "Ellis", LastName: "Demo", Email: "ellis.demo@example.com", Company: "Tour Demo Co"},
	{Position: 6, FirstName: "Finley", LastName: "Demo", Email: "finley.demo@example.com", Company: "Tour Demo Co"},
	{Position: 7, FirstName: "Gray", LastName: "Demo", Email: "gray.demo@example.com", Company: "Tour Demo Co"},
	{Position: 8, FirstName: "Harper", LastName: "Demo", Email: "harper.demo@example.com", Company: "Tour Demo Co"},
	{Position: 9, FirstName: "Indigo", LastName: "Demo", Email: "indigo.demo@example.com", Company: "Tour Demo Co"},
	{Position: 10, FirstName: "Jules", LastName: "Demo", Email: "jules.demo@example.com", Company: "Tour Demo Co"},
}

// RecipientFromExtra converts a filler customer into a recipient
func RecipientFromExtra(e *ExtraCustomer) Recipient {
	return Recipient{
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Company:   e.Company,
		Type:      RecipientExtra,
	}
}
