package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Michaelnacaya1234/Accounting-services/internal/mailer"
	"github.com/Michaelnacaya1234/Accounting-services/internal/models"
	"github.com/Michaelnacaya1234/Accounting-services/internal/repository"
	"github.com/Michaelnacaya1234/Accounting-services/internal/resettoken"
)

func ptr[T any](v T) *T { return &v }

type mockUserRepo struct {
	users  map[string]*models.LoginUser
	admins map[string]string
}

func (m *mockUserRepo) GetForLogin(_ context.Context, identity string) (*models.LoginUser, error) {
	u, ok := m.users[identity]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) EnsureAdmin(_ context.Context, username, hash, _ string) (bool, error) {
	if m.admins == nil {
		m.admins = map[string]string{}
	}
	_, existed := m.admins[username]
	m.admins[username] = hash
	return !existed, nil
}

type mockClientRepo struct {
	targets map[int64]*models.ApprovalTarget
	status  map[int64]int
	failSet bool
}

func (m *mockClientRepo) GetApprovalTarget(_ context.Context, userID int64) (*models.ApprovalTarget, error) {
	t, ok := m.targets[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

func (m *mockClientRepo) SetStatus(_ context.Context, clientID int64, status int) error {
	if m.failSet {
		return errors.New("db down")
	}
	if m.status == nil {
		m.status = map[int64]int{}
	}
	m.status[clientID] = status
	return nil
}

func (m *mockClientRepo) Exists(_ context.Context, clientID int64) (bool, error) {
	for _, t := range m.targets {
		if t.ClientID != nil && *t.ClientID == clientID {
			return true, nil
		}
	}
	return false, nil
}

type mockQueue struct {
	mu   sync.Mutex
	msgs []mailer.Message
	err  error
}

func (q *mockQueue) Enqueue(_ context.Context, msg mailer.Message) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.msgs = append(q.msgs, msg)
	return nil
}

type mockSender struct {
	sent []mailer.Message
	err  error
}

func (s *mockSender) Send(_ context.Context, msg mailer.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

type mockEmployeeRepo struct {
	taken   map[string]int64
	created []*models.NewEmployee
	updated []*models.UpdateEmployee
	deleted []int64
	nextID  int64
}

func (m *mockEmployeeRepo) List(context.Context) ([]models.Employee, error) {
	return []models.Employee{{UserID: 1, Username: "jdc", Status: "Pending"}}, nil
}

func (m *mockEmployeeRepo) IsUsernameTaken(_ context.Context, username string, except int64) (bool, error) {
	id, ok := m.taken[username]
	return ok && id != except, nil
}

func (m *mockEmployeeRepo) Create(_ context.Context, e *models.NewEmployee) (int64, error) {
	m.nextID++
	m.created = append(m.created, e)
	return m.nextID, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, e *models.UpdateEmployee) error {
	if _, ok := m.taken[e.Username]; !ok && e.UserID == 404 {
		return repository.ErrNotFound
	}
	m.updated = append(m.updated, e)
	return nil
}

func (m *mockEmployeeRepo) Delete(_ context.Context, id int64) error {
	if id == 404 {
		return repository.ErrNotFound
	}
	m.deleted = append(m.deleted, id)
	return nil
}

type mockFlow struct {
	issued   []string
	verified []resettoken.VerifyRequest
	err      error
}

func (f *mockFlow) Issue(_ context.Context, identity string) (resettoken.IssueResult, error) {
	f.issued = append(f.issued, identity)
	if f.err != nil {
		return resettoken.IssueResult{}, f.err
	}
	return resettoken.IssueResult{Token: "p.s", ExpiresAt: time.Unix(1700000600, 0)}, nil
}

func (f *mockFlow) VerifyAndReset(_ context.Context, req resettoken.VerifyRequest) (int64, error) {
	f.verified = append(f.verified, req)
	if f.err != nil {
		return 0, f.err
	}
	return 7, nil
}

type countingLimiter struct {
	hits  map[string]int
	limit map[string]int
}

func (l *countingLimiter) Allow(_ context.Context, key string, limit int, _ time.Duration) bool {
	if l.hits == nil {
		l.hits = map[string]int{}
		l.limit = map[string]int{}
	}
	l.hits[key]++
	l.limit[key] = limit
	return l.hits[key] <= limit
}
