package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/domain"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/repository"
)

// memoryAccountRepo is an in-memory port.AccountRepository with the same
// uniqueness semantics as the Postgres implementation.
type memoryAccountRepo struct {
	mu       sync.Mutex
	byID     map[string]domain.Account
	byEmail  map[string]string
	failWith error
}

func newMemoryAccountRepo() *memoryAccountRepo {
	return &memoryAccountRepo{
		byID:    make(map[string]domain.Account),
		byEmail: make(map[string]string),
	}
}

func (r *memoryAccountRepo) Create(_ context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return r.failWith
	}
	if _, exists := r.byEmail[account.Email]; exists {
		return repository.ErrDuplicate
	}

	r.byID[account.ID] = account
	r.byEmail[account.Email] = account.ID
	return nil
}

func (r *memoryAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := account
	return &copied, nil
}

func (r *memoryAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := r.byID[id]
	return &copied, nil
}

func (r *memoryAccountRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *memoryAccountRepo) MarkActivated(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	account.Active = true
	account.EmailVerified = true
	r.byID[id] = account
	return nil
}

type sentMail struct {
	subject    string
	body       string
	recipients []string
}

type stubMailer struct {
	disabled bool
	sendErr  error
	sent     []sentMail
}

func (m *stubMailer) IsEnabled() bool { return !m.disabled }

func (m *stubMailer) Send(subject, body string, recipients []string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{subject: subject, body: body, recipients: recipients})
	return nil
}

type stubPublisher struct {
	registered []domain.AccountRegisteredEvent
	activated  []domain.AccountActivatedEvent
	logins     []domain.AccountLoginEvent
	err        error
}

func (p *stubPublisher) PublishAccountRegistered(_ context.Context, event domain.AccountRegisteredEvent) error {
	if p.err != nil {
		return p.err
	}
	p.registered = append(p.registered, event)
	return nil
}

func (p *stubPublisher) PublishAccountActivated(_ context.Context, event domain.AccountActivatedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.activated = append(p.activated, event)
	return nil
}

func (p *stubPublisher) PublishAccountLogin(_ context.Context, event domain.AccountLoginEvent) error {
	if p.err != nil {
		return p.err
	}
	p.logins = append(p.logins, event)
	return nil
}

type stubTokenIssuer struct {
	pair domain.TokenPair
	err  error
}

func (s *stubTokenIssuer) Issue(domain.Account) (domain.TokenPair, error) {
	if s.err != nil {
		return domain.TokenPair{}, s.err
	}
	return s.pair, nil
}

type memoryNoteRepo struct {
	notes     []domain.Note
	createErr error
}

func (r *memoryNoteRepo) Create(_ context.Context, note domain.Note) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.notes = append(r.notes, note)
	return nil
}

func (r *memoryNoteRepo) ListByAccount(_ context.Context, accountID string) ([]domain.Note, error) {
	var out []domain.Note
	for i := len(r.notes) - 1; i >= 0; i-- {
		if r.notes[i].AccountID == accountID {
			out = append(out, r.notes[i])
		}
	}
	return out, nil
}
