package auth

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedInstitutionAccounts creates the three institution-wide approver accounts
// when they don't exist yet. Every approval chain terminates in these roles, so
// a fresh deployment is unusable without them.
func SeedInstitutionAccounts(repo Repository) {
	password := os.Getenv("SEED_APPROVER_PASSWORD")
	if password == "" {
		password = "ChangeMe@123"
	}

	seeds := []User{
		{UserID: "U0001", FullName: "Training & Placement Officer", Email: "tpo@institution.edu", Role: RoleTPO, Committee: "none"},
		{UserID: "U0002", FullName: "Vice Principal", Email: "viceprincipal@institution.edu", Role: RoleVicePrincipal, Committee: "none"},
		{UserID: "U0003", FullName: "Principal", Email: "principal@institution.edu", Role: RolePrincipal, Committee: "none"},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("❌ Failed to hash seed password: %v\n", err)
		return
	}

	for _, seed := range seeds {
		_, err := repo.FindByEmail(seed.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("❌ Seed lookup failed for %s: %v\n", seed.Email, err)
			continue
		}

		seed.PasswordHash = string(hash)
		seed.Status = "active"
		if err := repo.Create(&seed); err != nil {
			fmt.Printf("❌ Failed to seed %s account: %v\n", seed.Role, err)
			continue
		}
		fmt.Printf("✅ Seeded %s account (%s)\n", seed.Role, seed.Email)
	}
}
