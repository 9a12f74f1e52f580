package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/dtroode/pawconnect-server/internal/apierrors"
	"github.com/dtroode/pawconnect-server/internal/logger"
	"github.com/dtroode/pawconnect-server/internal/model"
)

const (
	MsgAdminCannotBeBanned = "Admin cannot be banned"
	MsgNotOwner            = "Not authorized to update this user"
	MsgTokenRequired       = "Token is required"
	MsgEmailRequired       = "Email is required"
)

// Auth implements the account flows: signup, verification, sign in,
// password reset, profile update and moderation.
type Auth struct {
	users    model.UserStore
	txm      model.TxManager
	tokens   *TokenService
	sessions model.SessionManager
	hasher   model.PasswordHasher
	notifier model.Notifier
	baseURL  string
	logger   *logger.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuth(
	users model.UserStore,
	txm model.TxManager,
	tokens *TokenService,
	sessions model.SessionManager,
	hasher model.PasswordHasher,
	notifier model.Notifier,
	baseURL string,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		users:    users,
		txm:      txm,
		tokens:   tokens,
		sessions: sessions,
		hasher:   hasher,
		notifier: notifier,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
	}
}

func (a *Auth) SignUp(ctx context.Context, in SignUpInput) (model.User, error) {
	in.Email = normalizeEmail(in.Email)
	in.Username = strings.TrimSpace(in.Username)

	if err := validate(in, map[string]any{"email": in.Email, "username": in.Username, "name": in.Name}); err != nil {
		return model.User{}, err
	}

	a.logger.Debug("Auth service: starting user registration",
		"email", in.Email,
		"username", in.Username)

	taken, err := a.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		a.logger.Info("Auth service: email already taken", "email", in.Email)
		return model.User{}, apierrors.NewErrEmailIsTaken()
	}

	taken, err = a.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		a.logger.Info("Auth service: username already taken", "username", in.Username)
		return model.User{}, apierrors.NewErrUsernameIsTaken()
	}

	hash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, err
	}

	var (
		user  model.User
		token string
	)
	err = a.txm.WithinTx(ctx, func(ctx context.Context, s model.Stores) error {
		role, err := s.Roles.GetOrCreate(ctx, model.RoleUser)
		if err != nil {
			return err
		}

		user, err = s.Users.Create(ctx, model.User{
			Email:           in.Email,
			Username:        in.Username,
			PasswordHash:    hash,
			Name:            in.Name,
			Bio:             in.Bio,
			Location:        in.Location,
			ProfileImageRef: in.DP,
			Roles:           []model.Role{role},
		})
		if err != nil {
			return err
		}

		token, err = a.tokens.WithStore(s.Tokens).Issue(ctx, user.ID, model.TokenPurposeVerification)
		return err
	})
	if err != nil {
		if dupErr := duplicateError(err); dupErr != nil {
			a.logger.Info("Auth service: signup lost uniqueness race", "email", in.Email)
			return model.User{}, dupErr
		}
		a.logger.Error("Auth service: failed to create user",
			"email", in.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.notify(ctx, model.Notification{
		Kind: model.NotificationVerification,
		To:   user.Email,
		Name: user.Name,
		Link: a.baseURL + "/verify?token=" + url.QueryEscape(token),
	})

	a.logger.Info("Auth service: user registered",
		"user_id", user.ID,
		"email", user.Email)

	return user, nil
}

func duplicateError(err error) *apierrors.APIError {
	var dup *model.DuplicateError
	if !errors.As(err, &dup) {
		if errors.Is(err, model.ErrDuplicate) {
			return apierrors.NewErrDuplicateIdentity()
		}
		return nil
	}
	switch dup.Field {
	case "email":
		return apierrors.NewErrEmailIsTaken()
	case "username":
		return apierrors.NewErrUsernameIsTaken()
	default:
		return apierrors.NewErrDuplicateIdentity()
	}
}

// Verify consumes a verification token and marks its account verified.
func (a *Auth) Verify(ctx context.Context, token string) error {
	if token == "" {
		return apierrors.NewErrBadRequest(MsgTokenRequired)
	}

	var user model.User
	err := a.txm.WithinTx(ctx, func(ctx context.Context, s model.Stores) error {
		userID, err := a.tokens.WithStore(s.Tokens).Consume(ctx, token, model.TokenPurposeVerification)
		if err != nil {
			return err
		}

		user, err = s.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		user.AccountVerified = true
		user, err = s.Users.Save(ctx, user)
		return err
	})
	if err != nil {
		return a.tokenError("verification", err)
	}

	a.logger.Info("Auth service: account verified", "user_id", user.ID)
	return nil
}

// tokenError hides which token condition failed.
func (a *Auth) tokenError(flow string, err error) error {
	if errors.Is(err, model.ErrInvalidToken) || errors.Is(err, model.ErrExpiredToken) || errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: token rejected",
			"flow", flow,
			"reason", err.Error())
		return apierrors.NewErrInvalidToken()
	}
	a.logger.Error("Auth service: token flow failed",
		"flow", flow,
		"error", err.Error())
	return fmt.Errorf("failed to complete %s: %w", flow, err)
}

func (a *Auth) SignIn(ctx context.Context, in SignInInput) (model.AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validate(in, map[string]any{"email": in.Email}); err != nil {
		return model.AuthResult{}, err
	}

	user, err := a.users.GetByEmail(ctx, in.Email)
	if errors.Is(err, model.ErrNotFound) {
		// Same cost as a real comparison so timing does not reveal the miss.
		a.hasher.Verify(in.Password, a.fakeHash())
		a.logger.Info("Auth service: sign in for unknown email", "email", in.Email)
		return model.AuthResult{}, apierrors.NewErrInvalidCredentials()
	}
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Verify(in.Password, user.PasswordHash) {
		a.logger.Info("Auth service: wrong password", "user_id", user.ID)
		return model.AuthResult{}, apierrors.NewErrInvalidCredentials()
	}
	if user.Banned {
		a.logger.Info("Auth service: banned user tried to sign in", "user_id", user.ID)
		return model.AuthResult{}, apierrors.NewErrInvalidCredentials()
	}

	session, err := a.sessions.Issue(user)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to issue session: %w", err)
	}

	a.logger.Info("Auth service: user signed in", "user_id", user.ID)

	return model.AuthResult{User: user, Token: session}, nil
}

func (a *Auth) fakeHash() string {
	a.dummyOnce.Do(func() {
		h, err := a.hasher.Hash("pawconnect-timing-equalizer")
		if err == nil {
			a.dummyHash = h
		}
	})
	return a.dummyHash
}

// RequestPasswordReset issues a reset token when the email is registered.
// The caller answers identically whether or not it is.
func (a *Auth) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return apierrors.NewErrBadRequest(MsgEmailRequired)
	}

	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: reset requested for unknown email", "email", email)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	token, err := a.tokens.Issue(ctx, user.ID, model.TokenPurposePasswordReset)
	if err != nil {
		a.logger.Error("Auth service: failed to issue reset token",
			"user_id", user.ID,
			"error", err.Error())
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	a.notify(ctx, model.Notification{
		Kind: model.NotificationPasswordReset,
		To:   user.Email,
		Name: user.Name,
		Link: a.baseURL + "/reset/" + url.PathEscape(token),
	})

	a.logger.Info("Auth service: password reset requested", "user_id", user.ID)
	return nil
}

// ResetPassword consumes a reset token and sets the new password.
func (a *Auth) ResetPassword(ctx context.Context, token string, in ResetPasswordInput) error {
	if token == "" {
		return apierrors.NewErrBadRequest(MsgTokenRequired)
	}
	// Validate first so a rejected password does not burn the token.
	if err := validate(in, nil); err != nil {
		return err
	}

	hash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return err
	}

	var user model.User
	err = a.txm.WithinTx(ctx, func(ctx context.Context, s model.Stores) error {
		userID, err := a.tokens.WithStore(s.Tokens).Consume(ctx, token, model.TokenPurposePasswordReset)
		if err != nil {
			return err
		}

		user, err = s.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		user.PasswordHash = hash
		user, err = s.Users.Save(ctx, user)
		return err
	})
	if err != nil {
		return a.tokenError("password reset", err)
	}

	a.notify(ctx, model.Notification{
		Kind: model.NotificationPasswordChanged,
		To:   user.Email,
		Name: user.Name,
	})

	a.logger.Info("Auth service: password reset", "user_id", user.ID)
	return nil
}

// UpdateProfile changes the caller's own profile. A new password replaces
// the hash and yields a fresh session in the result.
func (a *Auth) UpdateProfile(ctx context.Context, session model.Session, id int64, in UpdateProfileInput) (model.AuthResult, error) {
	user, err := a.ownedAccount(ctx, session, id)
	if err != nil {
		return model.AuthResult{}, err
	}

	if err := validate(in, map[string]any{"name": in.Name}); err != nil {
		return model.AuthResult{}, err
	}

	user.Name = in.Name
	user.Bio = in.Bio
	user.Location = in.Location
	user.ProfileImageRef = in.DP

	passwordChanged := in.Password != ""
	if passwordChanged {
		user.PasswordHash, err = a.hasher.Hash(in.Password)
		if err != nil {
			return model.AuthResult{}, err
		}
	}

	user, err = a.users.Save(ctx, user)
	if err != nil {
		a.logger.Error("Auth service: failed to save profile",
			"user_id", id,
			"error", err.Error())
		return model.AuthResult{}, fmt.Errorf("failed to save user: %w", err)
	}

	result := model.AuthResult{User: user}
	if passwordChanged {
		result.Token, err = a.sessions.Issue(user)
		if err != nil {
			return model.AuthResult{}, fmt.Errorf("failed to issue session: %w", err)
		}
		a.notify(ctx, model.Notification{
			Kind: model.NotificationPasswordChanged,
			To:   user.Email,
			Name: user.Name,
		})
	}

	a.logger.Info("Auth service: profile updated",
		"user_id", user.ID,
		"password_changed", passwordChanged)

	return result, nil
}

// normalizeEmail gives the stored form of an address. Accounts are keyed by
// it, so addresses differing only in case name the same account.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ownedAccount loads account id and checks that the session belongs to it.
func (a *Auth) ownedAccount(ctx context.Context, session model.Session, id int64) (model.User, error) {
	user, err := a.users.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierrors.NewErrNotFound("User", "id", id)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if !session.Owns(user) {
		a.logger.Info("Auth service: update of foreign account refused",
			"caller_id", session.UserID,
			"target_id", id)
		return model.User{}, apierrors.NewErrForbidden(MsgNotOwner)
	}
	if user.Banned {
		return model.User{}, apierrors.NewErrInvalidSession()
	}

	return user, nil
}

// Me returns the caller's account.
func (a *Auth) Me(ctx context.Context, session model.Session) (model.User, error) {
	user, err := a.users.GetByID(ctx, session.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierrors.NewErrInvalidSession()
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	if user.Banned || !session.Owns(user) {
		return model.User{}, apierrors.NewErrInvalidSession()
	}
	return user, nil
}

// Ban bans a non-administrator account. The caller must be an administrator.
func (a *Auth) Ban(ctx context.Context, caller model.Session, id int64) (model.User, error) {
	return a.setBanned(ctx, caller, id, true)
}

// Unban lifts a ban. The caller must be an administrator.
func (a *Auth) Unban(ctx context.Context, caller model.Session, id int64) (model.User, error) {
	return a.setBanned(ctx, caller, id, false)
}

// setBanned refuses to ban an administrator before looking at the caller, so
// the refusal holds for every caller.
func (a *Auth) setBanned(ctx context.Context, caller model.Session, id int64, banned bool) (model.User, error) {
	user, err := a.users.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierrors.NewErrNotFound("User", "id", id)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if banned && user.HasRole(model.RoleAdmin) {
		a.logger.Info("Auth service: refused to ban administrator",
			"caller_id", caller.UserID,
			"target_id", id)
		return model.User{}, apierrors.NewErrBadRequest(MsgAdminCannotBeBanned)
	}
	if !caller.HasRole(model.RoleAdmin) {
		return model.User{}, apierrors.NewErrAccessDenied()
	}

	user.Banned = banned
	user, err = a.users.Save(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to save user: %w", err)
	}

	a.logger.Info("Auth service: ban state changed",
		"caller_id", caller.UserID,
		"target_id", id,
		"banned", banned)

	return user, nil
}

// ListUsers returns one page of accounts.
func (a *Auth) ListUsers(ctx context.Context, in ListUsersInput) (model.Page[model.User], error) {
	if err := validate(in, map[string]any{"pageNo": in.PageNo, "pageSize": in.PageSize, "sortBy": in.SortBy, "sortDir": in.SortDir}); err != nil {
		return model.Page[model.User]{}, err
	}

	req := in.PageRequest()
	users, total, err := a.users.List(ctx, req)
	if err != nil {
		return model.Page[model.User]{}, fmt.Errorf("failed to list users: %w", err)
	}

	return model.NewPage(users, req, total), nil
}

// notify delivers n best-effort. Failures are logged and never returned.
func (a *Auth) notify(ctx context.Context, n model.Notification) {
	if a.notifier == nil {
		return
	}
	if err := a.notifier.Notify(ctx, n); err != nil {
		a.logger.Warn("Auth service: notification not delivered",
			"kind", n.Kind,
			"to", n.To,
			"error", err.Error())
	}
}
