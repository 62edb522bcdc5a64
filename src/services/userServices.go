package services

import (
	"context"
	"errors"
	"time"

	"github.com/ARQAP/museum-insights/src/db"
	"github.com/ARQAP/museum-insights/src/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenLifetime = 12 * time.Hour

// ErrInvalidCredentials hides whether the user or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

type UserService struct {
	opener db.Opener
	secret []byte
}

// NewUserService creates a new instance of UserService
func NewUserService(opener db.Opener, secret string) *UserService {
	return &UserService{opener: opener, secret: []byte(secret)}
}

// EnsureUser creates the user with a hashed password unless the username is
// taken. It reports whether a user was created.
func (s *UserService) EnsureUser(ctx context.Context, username, password string) (bool, error) {
	created := false
	err := db.WithConnection(ctx, s.opener, func(conn *gorm.DB) error {
		var user models.UserModel
		err := conn.Where("username = ?", username).First(&user).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user = models.UserModel{Username: username, Password: string(hashedPassword)}
		if err := conn.Create(&user).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

// AuthenticateUser checks user credentials and returns a JWT token if valid
func (s *UserService) AuthenticateUser(ctx context.Context, username, password string) (string, error) {
	var user models.UserModel
	err := db.WithConnection(ctx, s.opener, func(conn *gorm.DB) error {
		return conn.Where("username = ?", username).First(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	// Compare the provided password with the hashed password in the database
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"id":  user.Id,
		"exp": time.Now().Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
