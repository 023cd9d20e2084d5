package entity

type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleGuide   UserRole = "GUIDE"
	RoleTourist UserRole = "TOURIST"
)

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Phone        *string  `db:"phone"`
	Picture      *string  `db:"picture"`
	Role         UserRole `db:"role"`
}
