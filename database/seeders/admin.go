package seeders

import (
	"errors"
	"os"

	"github.com/webproformation/LaboutiqueOK-sub001/app/models"
	"github.com/webproformation/LaboutiqueOK-sub001/app/repositories"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("admin", SeedAdmin)
}

// SeedAdmin creates the initial back-office account. The password comes
// from ADMIN_PASSWORD; without it the seeder is a no-op so a production
// seed can never install a known default credential.
func SeedAdmin(db *gorm.DB) error {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		return nil
	}
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@laboutique.local"
	}

	users := repositories.NewUserRepository(db)
	if _, err := users.FindByEmail(email); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{Name: "Admin", Email: email, Password: hash}
	if err := users.Create(&user); err != nil {
		return err
	}
	return repositories.NewRoleRepository(db).Assign(user.ID, "admin")
}
