package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Dias221467/Levelup_Fitness/internal/models"
	"github.com/Dias221467/Levelup_Fitness/internal/progression"
	"github.com/Dias221467/Levelup_Fitness/internal/repository"
	"github.com/Dias221467/Levelup_Fitness/pkg/apierrors"
	"github.com/Dias221467/Levelup_Fitness/pkg/email"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// decorateUser normalizes a stored document and fills the derived fields
// clients render, such as the progress bar percentage.
func decorateUser(u *models.User) {
	u.ApplyDefaults()
	u.XPProgress = progression.ProgressPercent(u.Progression.Level, u.Progression.XP)
}

// UserService encapsulates the business logic for user operations.
type UserService struct {
	repo *repository.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// RegisterUser registers a new user after hashing their password. New users
// start at level 1 with zero XP, no friends and an empty workout history.
func (s *UserService) RegisterUser(ctx context.Context, username, userEmail, password string) (*models.User, error) {
	logrus.Info("Registering new user")

	username = strings.TrimSpace(username)
	if username == "" || userEmail == "" || password == "" {
		logrus.Warn("Missing required fields during registration")
		return nil, apierrors.InvalidInput("username, email and password are required")
	}

	if !emailRegex.MatchString(userEmail) {
		logrus.WithField("email", userEmail).Warn("Invalid email format during registration")
		return nil, apierrors.InvalidInput("invalid email format")
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, apierrors.StoreFailure(err)
	}

	user := &models.User{
		Username:       username,
		Email:          userEmail,
		HashedPassword: string(hashedPwd),
		Progression:    models.Progression{Level: 1},
		Friends:        []models.FriendEntry{},
		RecentWorkouts: []models.Workout{},
		VerifyToken:    uuid.NewString(),
	}

	createdUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logrus.WithError(err).Error("User registration failed")
		return nil, err
	}

	// Verification mail is best-effort: registration must not depend on SMTP.
	if email.Configured() {
		verificationLink := fmt.Sprintf("http://localhost:8080/users/verify?token=%s", user.VerifyToken)
		body := fmt.Sprintf("Welcome to Levelup Fitness!\n\nPlease verify your email by clicking the link below:\n%s", verificationLink)
		if err := email.SendEmail(userEmail, "Email Verification", body); err != nil {
			logrus.WithError(err).Error("Failed to send verification email")
		} else {
			logrus.Infof("Sent verification email to %s", userEmail)
		}
	}

	logrus.WithField("username", createdUser.Username).Info("User registered successfully")
	return createdUser, nil
}

// VerifyEmail marks the account matching the token as verified.
func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.repo.GetUserByVerifyToken(ctx, token)
	if err != nil {
		return apierrors.InvalidInput("invalid or expired verification token")
	}

	_, err = s.repo.UpdateFields(ctx, user.Username, bson.M{
		"is_verified":  true,
		"verify_token": "",
	})
	return err
}

// AuthenticateUser verifies the email and password and returns the user if
// credentials are valid.
func (s *UserService) AuthenticateUser(ctx context.Context, userEmail, password string) (*models.User, error) {
	logrus.WithField("email", userEmail).Info("Authenticating user")

	user, err := s.repo.GetUserByEmail(ctx, userEmail)
	if err != nil {
		logrus.WithField("email", userEmail).Warn("User not found")
		return nil, apierrors.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("email", userEmail).Warn("Invalid credentials")
		return nil, apierrors.Unauthorized("invalid credentials")
	}

	decorateUser(user)
	logrus.WithField("username", user.Username).Info("User authenticated successfully")
	return user, nil
}

// GetUser retrieves a user by username with defaulted fields, ready to be
// served to clients.
func (s *UserService) GetUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	decorateUser(user)
	return user, nil
}

// UpdateProfile applies the editable profile attributes (bio, age, height,
// weight). Only fields present in the update are touched.
func (s *UserService) UpdateProfile(ctx context.Context, username string, update models.ProfileUpdate) (*models.User, error) {
	logrus.WithField("username", username).Info("Updating user profile")

	fields := bson.M{}
	if update.Bio != nil {
		fields["bio"] = *update.Bio
	}
	if update.Age != nil {
		if *update.Age < 0 {
			return nil, apierrors.InvalidInput("age cannot be negative")
		}
		fields["age"] = *update.Age
	}
	if update.Height != nil {
		if *update.Height < 0 {
			return nil, apierrors.InvalidInput("height cannot be negative")
		}
		fields["height"] = *update.Height
	}
	if update.Weight != nil {
		if *update.Weight < 0 {
			return nil, apierrors.InvalidInput("weight cannot be negative")
		}
		fields["weight"] = *update.Weight
	}

	if len(fields) == 0 {
		return nil, apierrors.InvalidInput("no profile fields to update")
	}

	user, err := s.repo.UpdateFields(ctx, username, fields)
	if err != nil {
		return nil, err
	}

	decorateUser(user)
	logrus.WithField("username", username).Info("User profile updated successfully")
	return user, nil
}
