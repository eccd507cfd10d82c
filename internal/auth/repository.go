package auth

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(user *User) error
	Update(user *User) error
	FindByEmail(email string) (*User, error)
	FindByID(userID uint) (User, error)

	// FindApproverByRoles returns the first active account holding one of the
	// given roles. A non-empty committee scopes the lookup to that committee;
	// an empty committee means institution-wide.
	FindApproverByRoles(roles []string, committee string) (*User, error)

	// FindUsersByRoles returns every active account holding one of the roles.
	FindUsersByRoles(roles ...string) ([]User, error)

	CountUsers() (int64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(user *User) error {
	return r.db.Create(user).Error
}

func (r *repository) Update(user *User) error {
	return r.db.Save(user).Error
}

func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	err := r.db.Where("email = ?", email).First(&u).Error
	return &u, err
}

func (r *repository) FindByID(userID uint) (User, error) {
	var user User
	err := r.db.First(&user, userID).Error
	return user, err
}

func (r *repository) FindApproverByRoles(roles []string, committee string) (*User, error) {
	var u User
	query := r.db.Where("role IN ? AND status = ?", roles, "active")
	if committee != "" {
		query = query.Where("committee = ?", committee)
	}
	err := query.Order("id ASC").First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindUsersByRoles(roles ...string) ([]User, error) {
	var users []User
	err := r.db.Where("role IN ? AND status = ?", roles, "active").Find(&users).Error
	return users, err
}

func (r *repository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&User{}).Count(&count).Error
	return count, err
}
