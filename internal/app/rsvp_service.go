package app

import (
	"context"
	"log"
	"math/rand"
	"net/mail"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bnxs304/aniarchive-api/internal/clock"
	"github.com/bnxs304/aniarchive-api/internal/domain"
)

type EntrantRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Entrant, error)
	FindByCode(ctx context.Context, code string) (*domain.Entrant, error)
	CreateEntrant(ctx context.Context, entrant domain.Entrant) error
	ListAll(ctx context.Context) ([]domain.Entrant, error)
}

// Notifier sends the post-registration confirmation. Delivery is
// best-effort: a Notify failure never affects the registration result.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Notification carries everything the confirmation message needs.
type Notification struct {
	To           string
	RaffleCode   string
	EventTitle   string
	EventDate    string
	VenueName    string
	VenueAddress string
}

type RSVPService struct {
	repo         EntrantRepository
	clock        clock.Clock
	notifier     Notifier
	event        domain.EventContext
	rngMu        sync.Mutex
	rng          *rand.Rand
	codeAttempts int
	logger       *log.Logger
	sends        sync.WaitGroup
}

const defaultCodeAttempts = 100

func NewRSVPService(repo EntrantRepository, clk clock.Clock, event domain.EventContext, opts ...RSVPServiceOption) *RSVPService {
	svc := &RSVPService{
		repo:         repo,
		clock:        clk,
		event:        event,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		codeAttempts: defaultCodeAttempts,
		logger:       log.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type RSVPServiceOption func(*RSVPService)

// WithNotifier attaches a confirmation dispatcher. Without one,
// registrations succeed silently.
func WithNotifier(n Notifier) RSVPServiceOption {
	return func(s *RSVPService) {
		s.notifier = n
	}
}

// WithRand overrides the code generator's randomness source
// (deterministic in tests).
func WithRand(r *rand.Rand) RSVPServiceOption {
	return func(s *RSVPService) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithCodeAttempts overrides the bound on code generation attempts.
func WithCodeAttempts(n int) RSVPServiceOption {
	return func(s *RSVPService) {
		if n > 0 {
			s.codeAttempts = n
		}
	}
}

// WithLogger overrides the logger used for notification failures.
func WithLogger(l *log.Logger) RSVPServiceOption {
	return func(s *RSVPService) {
		if l != nil {
			s.logger = l
		}
	}
}

type RegisterInput struct {
	Email string
}

func (s *RSVPService) Register(ctx context.Context, in RegisterInput) (domain.Entrant, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return domain.Entrant{}, err
	}

	// The lookups below are advisory fast paths; the unique indexes
	// behind CreateEntrant are what actually enforce both invariants
	// against concurrent registrations.
	if existing, err := s.repo.FindByEmail(ctx, email); err != nil {
		return domain.Entrant{}, err
	} else if existing != nil {
		return domain.Entrant{}, domain.ErrDuplicateEntrant
	}

	now := s.clock.Now()

	// One attempt budget covers both the probe and the insert conflict
	// path: a code that passes FindByCode can still lose the unique
	// index race to a concurrent writer.
	attempts := s.codeAttempts
	for attempts > 0 {
		attempts--

		code := s.randomCode()
		if taken, err := s.repo.FindByCode(ctx, code); err != nil {
			return domain.Entrant{}, err
		} else if taken != nil {
			continue
		}

		entrant := domain.Entrant{
			ID:         newUUID(),
			Email:      email,
			RaffleCode: code,
			EventTitle: s.event.Title,
			EventDate:  s.event.Date,
			CreatedAt:  now,
		}

		if err := s.repo.CreateEntrant(ctx, entrant); err != nil {
			if err == domain.ErrRaffleCodeTaken {
				continue
			}
			return domain.Entrant{}, err
		}

		if s.notifier != nil {
			s.sends.Add(1)
			go func() {
				defer s.sends.Done()
				s.sendConfirmation(entrant)
			}()
		}
		return entrant, nil
	}
	return domain.Entrant{}, domain.ErrCodeSpaceExhausted
}

// Wait blocks until in-flight confirmation sends have finished. Called
// on shutdown so a send is not cut off mid-flight.
func (s *RSVPService) Wait() {
	s.sends.Wait()
}

// ListEntrants returns the full pool for the admin view.
func (s *RSVPService) ListEntrants(ctx context.Context) ([]domain.Entrant, error) {
	return s.repo.ListAll(ctx)
}

func (s *RSVPService) randomCode() string {
	s.rngMu.Lock()
	n := domain.RaffleCodeMin + s.rng.Intn(domain.RaffleCodeMax-domain.RaffleCodeMin+1)
	s.rngMu.Unlock()
	return strconv.Itoa(n)
}

func (s *RSVPService) sendConfirmation(entrant domain.Entrant) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.notifier.Notify(ctx, Notification{
		To:           entrant.Email,
		RaffleCode:   entrant.RaffleCode,
		EventTitle:   s.event.Title,
		EventDate:    s.event.Date,
		VenueName:    s.event.VenueName,
		VenueAddress: s.event.VenueAddress,
	})
	if err != nil {
		s.logger.Printf("WARN: confirmation to %s failed: %v", entrant.Email, err)
	}
}

func normalizeEmail(input string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(input))
	if email == "" {
		return "", domain.ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", domain.ErrInvalidEmail
	}
	return email, nil
}
