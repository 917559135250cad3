package domain

import "time"

// Address is a JSON-embedded postal address
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
}

// SocialLinks is a JSON-embedded set of profile links
type SocialLinks struct {
	Github    string `json:"github,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Website   string `json:"website,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// User represents an account
type User struct {
	ID          string       `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Username    string       `gorm:"column:username;type:varchar(30);uniqueIndex" json:"username"`
	Email       string       `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	Password    string       `gorm:"column:password;type:varchar(255)" json:"-"`
	Role        string       `gorm:"column:role;type:enum('user','admin');default:'user'" json:"role"`
	DisplayName string       `gorm:"column:display_name;type:varchar(50)" json:"display_name"`
	Bio         string       `gorm:"column:bio;type:varchar(500)" json:"bio"`
	Avatar      string       `gorm:"column:avatar;type:varchar(500)" json:"avatar"`
	PhoneNumber string       `gorm:"column:phone_number;type:varchar(20)" json:"phone_number,omitempty"`
	DateOfBirth *time.Time   `gorm:"column:date_of_birth" json:"date_of_birth,omitempty"`
	Address     *Address     `gorm:"column:address;type:json;serializer:json" json:"address,omitempty"`
	SocialLinks *SocialLinks `gorm:"column:social_links;type:json;serializer:json" json:"social_links,omitempty"`
	Status      string       `gorm:"column:status;type:enum('active','inactive','banned');default:'active'" json:"status"`
	LastLogin   *time.Time   `gorm:"column:last_login" json:"last_login,omitempty"`
	CreatedAt   time.Time    `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// RegisterRequest is the signup payload
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=30"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required,min=3,max=50"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest is a partial profile update; absent fields are kept
type UpdateProfileRequest struct {
	DisplayName *string      `json:"display_name" binding:"omitempty,min=3,max=50"`
	Bio         *string      `json:"bio" binding:"omitempty,max=500"`
	Avatar      *string      `json:"avatar" binding:"omitempty,url"`
	PhoneNumber *string      `json:"phone_number" binding:"omitempty,len=10,numeric"`
	DateOfBirth *time.Time   `json:"date_of_birth"`
	Address     *Address     `json:"address"`
	SocialLinks *SocialLinks `json:"social_links"`
}

// LoginResponse bundles the user with a token pair
type LoginResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
