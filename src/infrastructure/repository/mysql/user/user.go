package user

import (
	"time"

	domainErrors "diet-challenge-api/src/domain/errors"
	domainUser "diet-challenge-api/src/domain/user"
	logger "diet-challenge-api/src/infrastructure/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// User is the database model for admin accounts
type User struct {
	ID           int       `gorm:"primaryKey"`
	UserName     string    `gorm:"column:user_name"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	HashPassword string    `gorm:"column:hash_password"`
	Role         string    `gorm:"column:role"`
	Status       bool      `gorm:"column:status;default:true"`
	CreatedAt    time.Time `gorm:"autoCreateTime:mili"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:mili"`
}

func (User) TableName() string {
	return "users"
}

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	GetByEmail(email string) (*domainUser.User, error)
	GetByID(id int) (*domainUser.User, error)
	Create(userDomain *domainUser.User) (*domainUser.User, error)
}

type UserRepository struct {
	DB     *gorm.DB
	Logger *logger.Logger
}

func NewUserRepository(db *gorm.DB, loggerInstance *logger.Logger) UserRepositoryInterface {
	return &UserRepository{DB: db, Logger: loggerInstance}
}

func (r *UserRepository) GetByEmail(email string) (*domainUser.User, error) {
	var userModel User
	err := r.DB.Where("email = ?", email).First(&userModel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			err = domainErrors.NewAppErrorWithType(domainErrors.NotFound)
		} else {
			r.Logger.Error("Error getting user by email", zap.Error(err), zap.String("email", email))
			err = domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
		}
		return &domainUser.User{}, err
	}
	return userModel.toDomainMapper(), nil
}

func (r *UserRepository) GetByID(id int) (*domainUser.User, error) {
	var userModel User
	err := r.DB.Where("id = ?", id).First(&userModel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			err = domainErrors.NewAppErrorWithType(domainErrors.NotFound)
		} else {
			r.Logger.Error("Error getting user by ID", zap.Error(err), zap.Int("id", id))
			err = domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
		}
		return &domainUser.User{}, err
	}
	return userModel.toDomainMapper(), nil
}

func (r *UserRepository) Create(userDomain *domainUser.User) (*domainUser.User, error) {
	userModel := &User{
		UserName:     userDomain.UserName,
		Email:        userDomain.Email,
		HashPassword: userDomain.HashPassword,
		Role:         userDomain.Role,
		Status:       userDomain.Status,
	}
	if err := r.DB.Create(userModel).Error; err != nil {
		r.Logger.Error("Error creating user", zap.Error(err), zap.String("email", userDomain.Email))
		return &domainUser.User{}, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}
	return userModel.toDomainMapper(), nil
}

func (u *User) toDomainMapper() *domainUser.User {
	return &domainUser.User{
		ID:           u.ID,
		UserName:     u.UserName,
		Email:        u.Email,
		HashPassword: u.HashPassword,
		Role:         u.Role,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
