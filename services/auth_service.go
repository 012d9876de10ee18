package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"hotel-booking/clock"
	"hotel-booking/models"
	"hotel-booking/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const resetTokenTTL = time.Hour

type AuthService struct {
	DB          *gorm.DB
	Profiles    *ProfileService
	Tokens      *TokenService
	Denylist    Denylist
	Mailer      utils.Mailer
	Clock       clock.Clock
	FrontendURL string
}

type SignUpInput struct {
	Email    string `json:"email" validate:"required,email,max=150"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	FullName string `json:"full_name" validate:"max=255"`
}

type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordInput struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type AccountInput struct {
	FullName string `json:"full_name" validate:"max=255"`
	Email    string `json:"email" validate:"required,email,max=150"`
}

// Session is what the client keeps after sign-in. AccessToken is empty when
// the session is only being refreshed.
type Session struct {
	AccessToken string         `json:"access_token,omitempty"`
	TokenType   string         `json:"token_type,omitempty"`
	ExpiresAt   *time.Time     `json:"expires_at,omitempty"`
	User        models.User    `json:"user"`
	Profile     models.Profile `json:"profile"`
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

func (s *AuthService) link(path, token string) string {
	return fmt.Sprintf("%s%s?token=%s", s.FrontendURL, path, url.QueryEscape(token))
}

func (s *AuthService) findUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.DB.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return u, fmt.Errorf("%w: user", ErrNotFound)
	}
	return u, err
}

func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (Session, error) {
	in.Email = normalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	if err := validateStruct(in); err != nil {
		return Session{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}
	confirm, err := utils.GenerateSecureToken(24)
	if err != nil {
		return Session{}, err
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Password:     string(hash),
		FullName:     in.FullName,
		ConfirmToken: &confirm,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return Session{}, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return Session{}, fmt.Errorf("create user: %w", err)
	}

	profile, err := s.Profiles.Ensure(ctx, user)
	if err != nil {
		return Session{}, err
	}

	s.sendVerification(user, confirm)
	log.Printf("👤 user signed up: %s", utils.MaskEmail(user.Email))
	return Session{User: user, Profile: profile}, nil
}

func (s *AuthService) SignIn(ctx context.Context, in SignInInput) (Session, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return Session{}, err
	}

	user, err := s.findUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, fmt.Errorf("%w: invalid login credentials", ErrUnauthorized)
		}
		return Session{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		return Session{}, fmt.Errorf("%w: invalid login credentials", ErrUnauthorized)
	}

	token, claims, err := s.Tokens.Issue(user)
	if err != nil {
		return Session{}, err
	}
	profile, err := s.Profiles.Ensure(ctx, user)
	if err != nil {
		return Session{}, err
	}
	exp := claims.ExpiresAt.Time
	return Session{AccessToken: token, TokenType: "bearer", ExpiresAt: &exp, User: user, Profile: profile}, nil
}

func (s *AuthService) SignOut(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return s.Denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// Session reloads the user and bootstraps its profile.
func (s *AuthService) Session(ctx context.Context, userID string) (Session, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Session{}, fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
	}
	if err != nil {
		return Session{}, err
	}
	profile, err := s.Profiles.Ensure(ctx, user)
	if err != nil {
		return Session{}, err
	}
	return Session{User: user, Profile: profile}, nil
}

func (s *AuthService) sendVerification(user models.User, token string) {
	subject, body, err := utils.VerificationEmail(user.FullName, s.link("/confirm-email", token))
	if err == nil {
		err = s.Mailer.Send(user.Email, subject, body)
	}
	if err != nil {
		log.Printf("warning: verification email to %s failed: %v", utils.MaskEmail(user.Email), err)
	}
}

// ResendVerification is silent about unknown or already confirmed addresses.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.findUserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if user.EmailConfirmedAt != nil {
		return nil
	}

	token, err := utils.GenerateSecureToken(24)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Model(&user).Update("confirm_token", token).Error; err != nil {
		return err
	}
	s.sendVerification(user, token)
	return nil
}

func (s *AuthService) ConfirmEmail(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}
	var user models.User
	err := s.DB.WithContext(ctx).Where("confirm_token = ?", token).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: invalid confirmation token", ErrNotFound)
	}
	if err != nil {
		return err
	}
	now := s.Clock.Now()
	return s.DB.WithContext(ctx).Model(&user).Updates(map[string]interface{}{
		"email_confirmed_at": now,
		"confirm_token":      nil,
	}).Error
}

// ForgotPassword answers the same way whether or not the address exists.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.findUserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		log.Printf("[FORGOT PASSWORD] unknown address %s", utils.MaskEmail(email))
		return nil
	}
	if err != nil {
		return err
	}

	token, err := utils.GenerateSecureToken(24)
	if err != nil {
		return err
	}
	expires := s.Clock.Now().Add(resetTokenTTL)
	err = s.DB.WithContext(ctx).Model(&user).Updates(map[string]interface{}{
		"reset_token":         token,
		"reset_token_expires": expires,
	}).Error
	if err != nil {
		return err
	}

	subject, body, err := utils.PasswordResetEmail(user.FullName, s.link("/reset-password", token))
	if err == nil {
		err = s.Mailer.Send(user.Email, subject, body)
	}
	if err != nil {
		log.Printf("warning: reset email to %s failed: %v", utils.MaskEmail(user.Email), err)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	in.Token = strings.TrimSpace(in.Token)
	if err := validateStruct(in); err != nil {
		return err
	}

	var user models.User
	err := s.DB.WithContext(ctx).Where("reset_token = ?", in.Token).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: invalid reset token", ErrNotFound)
	}
	if err != nil {
		return err
	}
	if user.ResetTokenExpires == nil || !user.ResetTokenExpires.After(s.Clock.Now()) {
		return fmt.Errorf("%w: reset link expired", ErrTokenExpired)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Model(&user).Updates(map[string]interface{}{
		"password":            string(hash),
		"reset_token":         nil,
		"reset_token_expires": nil,
	}).Error
}

// UpdateAccount upserts the profile name (role and hotel untouched) and
// changes the sign-in email. A new email must be confirmed again.
func (s *AuthService) UpdateAccount(ctx context.Context, userID string, in AccountInput) (Session, error) {
	in.Email = normalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	if err := validateStruct(in); err != nil {
		return Session{}, err
	}

	var user models.User
	var newConfirm string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user", ErrNotFound)
			}
			return err
		}

		var fullName *string
		if in.FullName != "" {
			fullName = &in.FullName
		}
		profile := models.Profile{UserID: userID, Role: models.RoleClient, FullName: fullName}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"full_name", "updated_at"}),
		}).Create(&profile).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"full_name": in.FullName}
		if in.Email != user.Email {
			token, err := utils.GenerateSecureToken(24)
			if err != nil {
				return err
			}
			newConfirm = token
			updates["email"] = in.Email
			updates["email_confirmed_at"] = nil
			updates["confirm_token"] = token
		}
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: email already registered", ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return Session{}, err
	}

	sess, err := s.Session(ctx, userID)
	if err != nil {
		return Session{}, err
	}
	if newConfirm != "" {
		s.sendVerification(sess.User, newConfirm)
	}
	return sess, nil
}
