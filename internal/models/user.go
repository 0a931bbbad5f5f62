package models

// Role is the coarse authorization level of a profile.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// UserModel materializes an identity-oracle account as a profile document.
// Authentication itself stays with the oracle; the document ID is the
// oracle's stable user identifier.
type UserModel struct {
	Base     `bson:",inline"`
	Name     string `json:"name"      bson:"name"`
	Email    string `json:"email"     bson:"email"`
	Provider string `json:"provider"  bson:"provider"`
	Role     Role   `json:"role"      bson:"role"`
	IsActive bool   `json:"is_active" bson:"isActive"`
}

func (UserModel) CollectionName() string { return "users" }

func (u UserModel) IsAdmin() bool { return u.Role == RoleAdmin }
