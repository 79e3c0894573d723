package domain

import "time"

// Account is a registered user. There is no password: the only credential
// is a one-time passcode delivered by email. Email is the DynamoDB
// partition key, so the table itself enforces uniqueness on insert.
type Account struct {
	UserID      string    `json:"id" dynamodbav:"user_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Email       string    `json:"email" dynamodbav:"email"`
	DateOfBirth time.Time `json:"dateOfBirth" dynamodbav:"date_of_birth"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"created_at"`
}

// Identity is the resolved, authenticated representation of a user
// attached to a request after token verification.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Identity returns the read-only view of the account handed to
// downstream collaborators.
func (a *Account) Identity() Identity {
	return Identity{ID: a.UserID, Name: a.Name, Email: a.Email}
}
