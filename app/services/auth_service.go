package services

import (
	"errors"

	"github.com/webproformation/LaboutiqueOK-sub001/app/models"
	"github.com/webproformation/LaboutiqueOK-sub001/app/repositories"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/auth"
	"gorm.io/gorm"
)

// ErrInvalidCredentials hides whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// ErrEmailTaken is returned when registering an already-used email.
var ErrEmailTaken = errors.New("auth: email already registered")

// Session is a successful login: the signed token plus the user it names.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
	Role  string      `json:"role"`
}

// AuthService issues sessions against the local user table.
type AuthService struct {
	users *repositories.UserRepository
	roles *repositories.RoleRepository
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		users: repositories.NewUserRepository(db),
		roles: repositories.NewRoleRepository(db),
	}
}

// Login verifies the password and returns a signed session.
func (s *AuthService) Login(email, password string) (Session, error) {
	user, err := s.users.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	if !auth.CheckPassword(user.Password, password) {
		return Session{}, ErrInvalidCredentials
	}

	role, err := s.roles.RoleFor(user.ID)
	if err != nil {
		return Session{}, err
	}

	token, err := auth.GenerateToken(user.ID, role)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: user, Role: role}, nil
}

// Register creates a user with the default role and logs them in.
func (s *AuthService) Register(name, email, password string) (Session, error) {
	if _, err := s.users.FindByEmail(email); err == nil {
		return Session{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Session{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return Session{}, err
	}

	user := models.User{Name: name, Email: email, Password: hash}
	if err := s.users.Create(&user); err != nil {
		return Session{}, err
	}

	token, err := auth.GenerateToken(user.ID, "user")
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: user, Role: "user"}, nil
}

// RoleLookup exposes the role table for the admin gate middleware.
func (s *AuthService) RoleLookup(userID uint) (string, error) {
	return s.roles.RoleFor(userID)
}
