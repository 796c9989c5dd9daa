package domain

import (
	"errors"
	"time"
)

var (
	// ErrClientNotFound indicates that the client is not found.
	ErrClientNotFound = errors.New("client non trouvé")
	// ErrIdentityNumberAlreadyExists indicates that a client with the given identity number already exists.
	ErrIdentityNumberAlreadyExists = errors.New("le numéro d'identité existe déjà")
	// ErrEmailAlreadyExists indicates that a client with the given email already exists.
	ErrEmailAlreadyExists = errors.New("l'adresse email existe déjà")
	// ErrUsernameAlreadyExists indicates that the username is already taken.
	ErrUsernameAlreadyExists = errors.New("le nom d'utilisateur existe déjà")
	// ErrWrongPassword indicates the wrong password for the given username.
	ErrWrongPassword = errors.New("mot de passe incorrect")
)

// Client holds an identity-verified bank client together with their
// generated login credentials.
type Client struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	IdentityNumber string    `json:"identity_number"`
	BirthDate      time.Time `json:"birth_date"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateClientParams is the input data to register a client.
type CreateClientParams struct {
	FirstName      string
	LastName       string
	IdentityNumber string
	BirthDate      time.Time
	Email          string
	Address        string
	Username       string
	HashedPassword string
}
