package admin

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"church-app-go/internal/domain/validation"
	"church-app-go/pkg/email"
	"church-app-go/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	passwordCost      = 12
	resetTokenBytes   = 32
	defaultResetTTL   = time.Hour
	resetEmailSubject = "Password Reset Request"
)

type Options struct {
	ClientURL     string
	ResetTokenTTL time.Duration
}

type Service struct {
	repo     Repository
	tokens   Tokens
	mailer   Mailer
	opts     Options
	log      logger.Logger
	cost     int
	now      func() time.Time
	newToken func() (string, error)
}

func NewService(repo Repository, tokens Tokens, mailer Mailer, opts Options, log logger.Logger) *Service {
	if opts.ResetTokenTTL <= 0 {
		opts.ResetTokenTTL = defaultResetTTL
	}
	opts.ClientURL = strings.TrimRight(opts.ClientURL, "/")
	return &Service{
		repo:     repo,
		tokens:   tokens,
		mailer:   mailer,
		opts:     opts,
		log:      log,
		cost:     passwordCost,
		now:      time.Now,
		newToken: randomToken,
	}
}

func (s *Service) Login(ctx context.Context, emailAddr, password string) (*Session, error) {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || password == "" {
		return nil, validation.New("Please provide email and password")
	}

	account, err := s.repo.GetByEmail(ctx, emailAddr)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !account.IsAdmin() {
		return nil, ErrForbidden
	}

	signed, expiresAt, err := s.tokens.Generate(account.ID, account.Role)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	s.log.Info("auth.login: admin logged in", "account_id", account.ID)
	return &Session{Account: account, Token: signed, ExpiresAt: expiresAt}, nil
}

// Authenticate resolves a session token to an admin account.
func (s *Service) Authenticate(ctx context.Context, raw string) (*Account, error) {
	claims, err := s.tokens.Validate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	account, err := s.repo.GetByID(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !account.IsAdmin() {
		return nil, ErrForbidden
	}
	return account, nil
}

func (s *Service) CreateAdmin(ctx context.Context, input CreateInput) (*Account, error) {
	input.UserName = strings.TrimSpace(input.UserName)
	input.Email = normalizeEmail(input.Email)
	input.Role = strings.ToLower(strings.TrimSpace(input.Role))
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	_, err := s.repo.GetByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, ErrAccountNotFound):
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := Account{
		ID:           uuid.NewString(),
		UserName:     input.UserName,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
	}
	if err := s.repo.Create(ctx, &account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	s.log.Info("auth.create_admin: account created", "account_id", account.ID, "role", account.Role)
	return &account, nil
}

// ForgotPassword stores a hashed single-use token and emails the raw one.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) error {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" {
		return validation.New("Please provide an email address")
	}

	account, err := s.repo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}

	raw, err := s.newToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	hashed := hashToken(raw)
	expires := s.now().Add(s.opts.ResetTokenTTL)
	account.ResetPasswordToken = &hashed
	account.ResetPasswordExpires = &expires
	if err := s.repo.Save(ctx, account); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	link := fmt.Sprintf("%s/auth/reset-password/%s", s.opts.ClientURL, raw)
	msg := email.Message{
		To:      account.Email,
		Subject: resetEmailSubject,
		HTML:    resetEmailBody(link, s.opts.ResetTokenTTL),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	s.log.Info("auth.forgot_password: reset email sent", "account_id", account.ID)
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, raw, newPassword string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || newPassword == "" {
		return validation.New("Token and new password are required")
	}

	account, err := s.repo.GetByResetToken(ctx, hashToken(raw), s.now())
	if errors.Is(err, ErrAccountNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return fmt.Errorf("lookup reset token: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	account.PasswordHash = string(hash)
	account.ResetPasswordToken = nil
	account.ResetPasswordExpires = nil
	if err := s.repo.Save(ctx, account); err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	s.log.Info("auth.reset_password: password reset", "account_id", account.ID)
	return nil
}

// PurgeExpiredResetTokens clears reset tokens past their expiry.
func (s *Service) PurgeExpiredResetTokens(ctx context.Context) (int64, error) {
	return s.repo.ClearExpiredResetTokens(ctx, s.now())
}

// EnsureAdmin creates the bootstrap admin when no account uses its email.
// It returns false when nothing was created.
func (s *Service) EnsureAdmin(ctx context.Context, input CreateInput) (bool, error) {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return false, nil
	}
	if strings.TrimSpace(input.UserName) == "" {
		input.UserName = "admin"
	}
	input.Role = RoleAdmin

	_, err := s.CreateAdmin(ctx, input)
	if errors.Is(err, ErrEmailTaken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func randomToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func resetEmailBody(link string, ttl time.Duration) string {
	return fmt.Sprintf(`<h1>Password Reset Request</h1>
<p>You requested a password reset. Please click the link below to reset your password:</p>
<a href="%s">Reset Password</a>
<p>This link will expire in %s.</p>
<p>If you didn't request this, please ignore this email.</p>`, link, humanDuration(ttl))
}

func humanDuration(d time.Duration) string {
	if d%time.Hour == 0 {
		hours := int(d / time.Hour)
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return fmt.Sprintf("%d minutes", int(d/time.Minute))
}
