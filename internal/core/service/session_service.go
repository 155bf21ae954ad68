package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/softtronics/msw-portal/internal/api/metrics"
	"github.com/softtronics/msw-portal/internal/core/domain"
	"github.com/softtronics/msw-portal/internal/core/ports"
)

const defaultCallTimeout = 5 * time.Second

// SessionService orchestrates OTP login, token refresh, and logout against the
// credential store, the challenge store, and the mailer.
type SessionService struct {
	users       ports.UserRepository
	tokens      ports.TokenRepository
	challenges  ports.ChallengeStore
	mailer      ports.Mailer
	issuer      *TokenIssuer
	log         zerolog.Logger
	callTimeout time.Duration

	now func() time.Time
}

func NewSessionService(
	users ports.UserRepository,
	tokens ports.TokenRepository,
	challenges ports.ChallengeStore,
	mailer ports.Mailer,
	issuer *TokenIssuer,
	callTimeout time.Duration,
	log zerolog.Logger,
) *SessionService {
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	return &SessionService{
		users:       users,
		tokens:      tokens,
		challenges:  challenges,
		mailer:      mailer,
		issuer:      issuer,
		log:         log,
		callTimeout: callTimeout,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// SendOTP issues a one-time code for the account and dispatches it by email.
// Unknown accounts return domain.ErrUserNotFound; the handler masks that as a
// generic success so the endpoint does not confirm account existence.
func (s *SessionService) SendOTP(ctx context.Context, username string) error {
	user, err := s.findUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.OTPDispatchTotal.WithLabelValues("unknown_user").Inc()
		}
		return err
	}

	code, err := s.challenges.Issue(ctx, username)
	if err != nil {
		metrics.OTPDispatchTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("issue otp: %w", err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	if err := s.mailer.Send(sendCtx, user.Email, otpSubject, otpBody(user.Name, code)); err != nil {
		metrics.OTPDispatchTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("username", username).Msg("otp email dispatch failed")
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.ErrTimeout
		}
		return domain.ErrOTPDispatchFailed
	}

	metrics.OTPDispatchTotal.WithLabelValues("sent").Inc()
	s.log.Info().Str("username", username).Msg("otp dispatched")
	return nil
}

// VerifyCredentials checks username/password. It is independent of the OTP
// flow; the client composes both checks before requesting a code.
func (s *SessionService) VerifyCredentials(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return domain.ErrInvalidCredentials
	}

	user, err := s.findUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	if !CompareSecret(password, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// Login validates the submitted OTP and, on match, mints the token pair and
// persists the bcrypt hash of the refresh token. A mismatch mints nothing and
// mutates no stored state.
func (s *SessionService) Login(ctx context.Context, username, otp string) (*ports.LoginResult, error) {
	user, err := s.findUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	ok, err := s.challenges.Verify(ctx, username, otp)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("verify otp: %w", err)
	}
	if !ok {
		metrics.LoginsTotal.WithLabelValues("invalid_otp").Inc()
		return nil, domain.ErrInvalidOTP
	}

	accessToken, err := s.issuer.MintAccess(user)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("mint access token: %w", err)
	}

	refreshToken, err := s.persistNewRefreshToken(ctx, user)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", username).Bool("is_admin", user.IsAdmin()).Msg("login successful")

	return &ports.LoginResult{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiresIn: int(s.issuer.RefreshTTL().Seconds()),
		Name:             user.Name,
		Vendor:           user.Vendor,
		IsAdmin:          user.IsAdmin(),
	}, nil
}

// Refresh validates the cookie-borne refresh token against the latest stored
// record and rotates it on success. The decision points, in order:
//
//  1. signature/expiry of the presented token
//  2. latest record lookup by subject
//  3. stored expiry: lapsed records tear down every session for the owner
//  4. hash comparison: a mismatch fails without deleting records, so a probing
//     attacker cannot force teardown for the legitimate holder
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*ports.RefreshResult, error) {
	userID, err := s.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			metrics.RefreshTotal.WithLabelValues("expired").Inc()
		} else {
			metrics.RefreshTotal.WithLabelValues("malformed").Inc()
		}
		return nil, err
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	record, err := s.tokens.FindLatestByUser(lookupCtx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRefreshTokenNotFound) {
			metrics.RefreshTotal.WithLabelValues("not_found").Inc()
			return nil, domain.ErrRefreshTokenNotFound
		}
		metrics.RefreshTotal.WithLabelValues("error").Inc()
		return nil, storeErr(err)
	}

	if record.Expired(s.now()) {
		// Reuse defense: a lapsed record invalidates every session the owner
		// holds, not just the lapsed one.
		if delErr := s.tokens.DeleteByUser(lookupCtx, userID, ports.DeleteAll); delErr != nil {
			s.log.Error().Err(delErr).Str("user_id", userID).Msg("failed to purge expired refresh tokens")
		}
		metrics.RefreshTotal.WithLabelValues("expired").Inc()
		return nil, domain.ErrSessionExpired
	}

	if !CompareSecret(refreshToken, record.TokenHash) {
		metrics.RefreshTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidRefreshToken
	}

	user, err := s.users.FindByID(lookupCtx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.RefreshTotal.WithLabelValues("not_found").Inc()
			return nil, domain.ErrRefreshTokenNotFound
		}
		metrics.RefreshTotal.WithLabelValues("error").Inc()
		return nil, storeErr(err)
	}

	accessToken, err := s.issuer.MintAccess(user)
	if err != nil {
		metrics.RefreshTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("mint access token: %w", err)
	}

	// Rotate on use: the presented token is invalidated and a fresh one is
	// stored, so a captured refresh token is only good until its first replay.
	if err := s.tokens.DeleteByUser(lookupCtx, userID, ports.DeleteActive); err != nil {
		metrics.RefreshTotal.WithLabelValues("error").Inc()
		return nil, storeErr(err)
	}
	newRefresh, err := s.persistNewRefreshToken(ctx, user)
	if err != nil {
		metrics.RefreshTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.RefreshTotal.WithLabelValues("success").Inc()
	s.log.Debug().Str("user_id", userID).Msg("access token refreshed")

	return &ports.RefreshResult{
		AccessToken:      accessToken,
		RefreshToken:     newRefresh,
		RefreshExpiresIn: int(s.issuer.RefreshTTL().Seconds()),
	}, nil
}

// Logout revokes the presented session. It never fails the caller: cleanup
// problems are logged and swallowed so the client can always terminate its
// session locally.
func (s *SessionService) Logout(ctx context.Context, refreshToken string) error {
	userID, err := s.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		s.log.Debug().Err(err).Msg("logout with unverifiable refresh token")
		return nil
	}

	delCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	if err := s.tokens.DeleteByUser(delCtx, userID, ports.DeleteExpired); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to delete expired refresh tokens on logout")
	}
	if err := s.tokens.DeleteByUser(delCtx, userID, ports.DeleteActive); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to delete active refresh token on logout")
	}

	s.log.Info().Str("user_id", userID).Msg("logged out")
	return nil
}

func (s *SessionService) persistNewRefreshToken(ctx context.Context, user *domain.User) (string, error) {
	refreshToken, err := s.issuer.MintRefresh(user)
	if err != nil {
		return "", fmt.Errorf("mint refresh token: %w", err)
	}

	hash, err := HashSecret(refreshToken)
	if err != nil {
		return "", fmt.Errorf("hash refresh token: %w", err)
	}

	now := s.now()
	record := &domain.RefreshTokenRecord{
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: now.Add(s.issuer.RefreshTTL()),
		CreatedAt: now,
	}

	insertCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	if err := s.tokens.Insert(insertCtx, record); err != nil {
		return "", storeErr(err)
	}
	return refreshToken, nil
}

func (s *SessionService) findUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	user, err := s.users.FindByUsername(lookupCtx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr(err)
	}
	return user, nil
}

// storeErr maps adapter failures onto the error taxonomy: deadline overruns
// become ErrTimeout, everything else degrades the request to ErrStoreUnavailable.
func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrTimeout
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

const otpSubject = "Your OTP Code for MSW Web Portal"

func otpBody(name, code string) string {
	return fmt.Sprintf(`<html>
  <body>
    <p>Dear %s,</p>
    <p>Here is the OTP code for MSW Web Portal: <strong>%s</strong></p>
    <p>Have a Good day!</p>
    <br>
    <p>Best regards,<br>MSW Team</p>
    <p style="color: red; font-weight: bold;">
      ***This is system generated mail - do not reply to this mail***
    </p>
  </body>
</html>`, name, code)
}
