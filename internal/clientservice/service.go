// Package clientservice manages business logic layer of clients.
package clientservice

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/TNT-747/ebank/internal/domain"
	"github.com/TNT-747/ebank/pkg/errorspkg"
	"github.com/TNT-747/ebank/pkg/passpkg"
	"github.com/TNT-747/ebank/pkg/randompkg"
	"github.com/rs/zerolog"
)

const generatedPasswordLength = 10

// Repo provides data access layer interface needed by client service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package clientservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateClientParams) (domain.Client, error)
	GetByIdentityNumber(ctx context.Context, identityNumber string) (domain.Client, error)
	GetByUsername(ctx context.Context, username string) (domain.Client, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByIdentityNumber(ctx context.Context, identityNumber string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]domain.Client, error)
}

// Mailer delivers generated credentials to a newly registered client.
type Mailer interface {
	SendCredentials(to, username, password string) error
}

// CreateClientInput is the input data to register a client.
type CreateClientInput struct {
	FirstName      string
	LastName       string
	IdentityNumber string
	BirthDate      time.Time
	Email          string
	Address        string
}

// Service facilitates client service layer logic.
type Service struct {
	repo   Repo
	mailer Mailer
}

// New returns client service struct to manage client bussines logic.
func New(cr Repo, m Mailer) *Service {
	return &Service{
		repo:   cr,
		mailer: m,
	}
}

// Create registers a client with a generated username and password, stores
// the bcrypt hash and mails the plain credentials to the client.
func (s *Service) Create(ctx context.Context, arg CreateClientInput) (domain.Client, error) {
	l := zerolog.Ctx(ctx)

	taken, err := s.repo.ExistsByIdentityNumber(ctx, arg.IdentityNumber)
	if err != nil {
		return domain.Client{}, err
	}

	if taken {
		return domain.Client{}, domain.ErrIdentityNumberAlreadyExists
	}

	taken, err = s.repo.ExistsByEmail(ctx, arg.Email)
	if err != nil {
		return domain.Client{}, err
	}

	if taken {
		return domain.Client{}, domain.ErrEmailAlreadyExists
	}

	username, err := s.generateUsername(ctx, arg.FirstName, arg.LastName)
	if err != nil {
		return domain.Client{}, err
	}

	password := randompkg.Password(generatedPasswordLength)

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Client{}, errorspkg.ErrInternal
	}

	client, err := s.repo.Create(ctx, domain.CreateClientParams{
		FirstName:      arg.FirstName,
		LastName:       arg.LastName,
		IdentityNumber: arg.IdentityNumber,
		BirthDate:      arg.BirthDate,
		Email:          arg.Email,
		Address:        arg.Address,
		Username:       username,
		HashedPassword: hashedPassword,
	})
	if err != nil {
		return domain.Client{}, err
	}

	// The client is already persisted; a failed delivery is recoverable
	// by support so it does not fail the registration.
	if err := s.mailer.SendCredentials(client.Email, username, password); err != nil {
		l.Error().Err(err).Str("email", client.Email).Msg("credentials delivery failed")
	}

	return client, nil
}

// List returns all registered clients.
func (s *Service) List(ctx context.Context) ([]domain.Client, error) {
	return s.repo.List(ctx)
}

// GetByIdentityNumber returns the client with the given identity number.
func (s *Service) GetByIdentityNumber(ctx context.Context, identityNumber string) (domain.Client, error) {
	return s.repo.GetByIdentityNumber(ctx, identityNumber)
}

// CheckPassword checks if the password is valid for the given username.
func (s *Service) CheckPassword(ctx context.Context, username, password string) (domain.Client, error) {
	l := zerolog.Ctx(ctx)

	client, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return domain.Client{}, err
	}

	if err := passpkg.Check(password, client.HashedPassword); err != nil {
		l.Warn().Err(err).Send()
		return domain.Client{}, domain.ErrWrongPassword
	}

	return client, nil
}

// generateUsername derives a username from the client name: first initial
// plus lowercased last name, with a numeric suffix on collision.
func (s *Service) generateUsername(ctx context.Context, firstName, lastName string) (string, error) {
	initial := ""
	if firstName != "" {
		initial = firstName[:1]
	}

	base := sanitizeUsername(strings.ToLower(initial + lastName))

	username := base
	for counter := 1; ; counter++ {
		taken, err := s.repo.ExistsByUsername(ctx, username)
		if err != nil {
			return "", err
		}

		if !taken {
			return username, nil
		}

		username = base + strconv.Itoa(counter)
	}
}

func sanitizeUsername(s string) string {
	var sb strings.Builder

	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
