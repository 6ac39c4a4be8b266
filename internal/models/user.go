package models

// User struct matches the document in MongoDB
type User struct {
	Email    string `bson:"email"`
	Name     string `bson:"name"`
	Password string `bson:"password"`
	Role     string `bson:"role"` // superadmin, admin, operator
	Status   string `bson:"status"`
}
