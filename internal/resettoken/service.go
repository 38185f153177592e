// Package resettoken implements the stateless password reset flow: a
// one-time code is emailed to the user while a signed token carrying the
// code's bcrypt hash travels through the client. Nothing is stored server-side.
package resettoken

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultTTL = 10 * time.Minute
	CodeLength = 6
)

// Account is what the user lookup resolves an email or username to.
type Account struct {
	UserID   int64
	Username string
	Email    string
}

type UserResolver interface {
	// Resolve returns ErrUserNotFound when no account matches identity.
	Resolve(ctx context.Context, identity string) (Account, error)
}

type CredentialStore interface {
	SetPasswordHash(ctx context.Context, userID int64, hash string) error
}

type Notifier interface {
	SendResetCode(ctx context.Context, acc Account, code, link string, ttl time.Duration) error
}

// ConsumedSet makes tokens single-use. Consume must atomically record key
// and report whether this call was the first to do so. Release forgets key
// so a reset that failed after Consume can be retried.
type ConsumedSet interface {
	Consume(ctx context.Context, key string, until time.Time) (bool, error)
	Release(ctx context.Context, key string) error
}

type Config struct {
	Secret string
	TTL    time.Duration
	// LinkBase is the frontend reset page; the token is appended as ?token=.
	LinkBase   string
	BcryptCost int
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithCodeGenerator(gen func() (string, error)) Option {
	return func(s *Service) { s.genCode = gen }
}

func WithConsumedSet(set ConsumedSet) Option {
	return func(s *Service) { s.consumed = set }
}

// WithDecoyDelay pads the unknown-identity branch by a random duration in
// [lo, hi) so it takes roughly as long as a real delivery.
func WithDecoyDelay(lo, hi time.Duration) Option {
	return func(s *Service) {
		if hi <= lo {
			s.decoyDelay = func() time.Duration { return lo }
			return
		}
		s.decoyDelay = func() time.Duration {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(hi-lo)))
			if err != nil {
				return lo
			}
			return lo + time.Duration(n.Int64())
		}
	}
}

type Service struct {
	signer   *Signer
	decoy    *Signer
	ttl      time.Duration
	linkBase string
	cost     int

	users    UserResolver
	creds    CredentialStore
	notifier Notifier
	consumed ConsumedSet

	now        func() time.Time
	genCode    func() (string, error)
	decoyDelay func() time.Duration
}

func New(cfg Config, users UserResolver, creds CredentialStore, notifier Notifier, opts ...Option) *Service {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	decoyKey := make([]byte, 32)
	if _, err := rand.Read(decoyKey); err != nil {
		panic("resettoken: no entropy for decoy key: " + err.Error())
	}

	s := &Service{
		signer:   NewSigner([]byte(cfg.Secret)),
		decoy:    NewSigner(decoyKey),
		ttl:      ttl,
		linkBase: cfg.LinkBase,
		cost:     cost,
		users:    users,
		creds:    creds,
		notifier: notifier,
		now:      time.Now,
		genCode:  GenerateCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) TTL() time.Duration { return s.ttl }

// GenerateCode returns a uniformly random zero-padded 6-digit code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

type IssueResult struct {
	Token     string
	ExpiresAt time.Time
}

// Issue mints a token for identity and delivers the code to the account's
// email address. An unknown identity yields a decoy token of the same shape
// and no delivery, so callers cannot tell the two cases apart.
func (s *Service) Issue(ctx context.Context, identity string) (IssueResult, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return IssueResult{}, fmt.Errorf("%w: email is required", ErrValidation)
	}

	acc, err := s.users.Resolve(ctx, identity)
	if errors.Is(err, ErrUserNotFound) {
		_, token, exp, err := s.mint(s.decoy, 0)
		if err != nil {
			return IssueResult{}, err
		}
		s.padDecoy(ctx)
		return IssueResult{Token: token, ExpiresAt: exp}, nil
	}
	if err != nil {
		return IssueResult{}, fmt.Errorf("resolve identity: %w", err)
	}
	if strings.TrimSpace(acc.Email) == "" {
		return IssueResult{}, ErrNoContact
	}

	code, token, exp, err := s.mint(s.signer, acc.UserID)
	if err != nil {
		return IssueResult{}, err
	}

	if err := s.notifier.SendResetCode(ctx, acc, code, s.Link(token), s.ttl); err != nil {
		return IssueResult{}, fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	return IssueResult{Token: token, ExpiresAt: exp}, nil
}

// padDecoy stands in for the notifier round trip. A cancelled ctx cuts it
// short; the caller is gone and cannot observe the timing.
func (s *Service) padDecoy(ctx context.Context) {
	if s.decoyDelay == nil {
		return
	}
	d := s.decoyDelay()
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (s *Service) mint(signer *Signer, userID int64) (string, string, time.Time, error) {
	code, err := s.genCode()
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("generate code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.cost)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("hash code: %w", err)
	}

	exp := s.now().Add(s.ttl).Truncate(time.Second)
	token, err := signer.Sign(Payload{UserID: userID, ExpiresAt: exp.Unix(), CodeHash: string(hash)})
	if err != nil {
		return "", "", time.Time{}, err
	}
	return code, token, exp, nil
}

// Link builds the frontend reset URL for token.
func (s *Service) Link(token string) string {
	if s.linkBase == "" {
		return ""
	}
	sep := "?"
	if strings.Contains(s.linkBase, "?") {
		sep = "&"
	}
	return s.linkBase + sep + "token=" + url.QueryEscape(token)
}

type VerifyRequest struct {
	Token       string
	Code        string
	NewPassword string
	// IdentityHint is an optional email or username that must resolve to
	// the account the token was issued for.
	IdentityHint string
}

// VerifyAndReset checks the token and code, then overwrites the account's
// password hash. It returns the affected user id. No credential is written
// unless every check passes.
func (s *Service) VerifyAndReset(ctx context.Context, req VerifyRequest) (int64, error) {
	token := strings.TrimSpace(req.Token)
	code := strings.TrimSpace(req.Code)
	if token == "" || code == "" || req.NewPassword == "" {
		return 0, fmt.Errorf("%w: token, code, and new password are required", ErrValidation)
	}
	if !isCode(code) {
		return 0, fmt.Errorf("%w: code must be %d digits", ErrValidation, CodeLength)
	}

	p, sig, err := s.signer.Parse(token)
	if err != nil {
		return 0, err
	}

	if s.now().Unix() >= p.ExpiresAt {
		return 0, ErrExpired
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.CodeHash), []byte(code)); err != nil {
		return 0, ErrInvalidCode
	}

	if hint := strings.TrimSpace(req.IdentityHint); hint != "" {
		acc, err := s.users.Resolve(ctx, hint)
		if errors.Is(err, ErrUserNotFound) {
			return 0, ErrIdentityMismatch
		}
		if err != nil {
			return 0, fmt.Errorf("resolve identity: %w", err)
		}
		if acc.UserID != p.UserID {
			return 0, ErrIdentityMismatch
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	if s.consumed != nil {
		first, err := s.consumed.Consume(ctx, sig, time.Unix(p.ExpiresAt, 0))
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrStore, err)
		}
		if !first {
			return 0, ErrTokenUsed
		}
	}

	if err := s.creds.SetPasswordHash(ctx, p.UserID, string(hash)); err != nil {
		if s.consumed != nil {
			if relErr := s.consumed.Release(context.WithoutCancel(ctx), sig); relErr != nil {
				return 0, fmt.Errorf("%w: %w (release: %v)", ErrStore, err, relErr)
			}
		}
		return 0, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return p.UserID, nil
}

func isCode(s string) bool {
	if len(s) != CodeLength {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
