package admin

import "time"

// Role and status assigned to every provisioned city administrator.
const (
	Role   = "admin"
	Status = "active"
)

// Permissions granted to every city administrator.
var Permissions = []string{
	"view_complaints",
	"update_complaints",
	"assign_labour",
	"view_reports",
	"manage_users",
}

// Account is the in-memory form of a provisioned administrator. It carries the
// one-time plaintext password for the credential export only; the persisted
// projection is Document, which has no plaintext field.
type Account struct {
	Name          string
	Username      string
	Email         string
	PasswordHash  string
	PlainPassword string
	City          string
	District      string
	State         string
	Pincode       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Document is the persistable projection of an Account, shaped to match the
// platform's admin collection. The plaintext password is structurally absent,
// so it cannot reach the store even through a marshalling mistake.
type Document struct {
	Name           string     `bson:"name"`
	Email          string     `bson:"email"`
	Password       string     `bson:"password"`
	Phone          string     `bson:"phone"`
	ProfilePicture string     `bson:"profilePicture"`
	Role           string     `bson:"role"`
	Status         string     `bson:"status"`
	LastLogin      *time.Time `bson:"lastLogin"`
	EmailVerified  bool       `bson:"emailVerified"`
	Permissions    []string   `bson:"permissions"`
	AdminSecretKey *string    `bson:"adminSecretKey"`
	City           string     `bson:"city"`
	District       string     `bson:"district"`
	State          string     `bson:"state"`
	Pincode        string     `bson:"pincode"`
	Username       string     `bson:"username"`
	CreatedAt      time.Time  `bson:"createdAt"`
	UpdatedAt      time.Time  `bson:"updatedAt"`
}

// Document returns the account's persistable projection.
func (a Account) Document() Document {
	return Document{
		Name:          a.Name,
		Email:         a.Email,
		Password:      a.PasswordHash,
		Role:          Role,
		Status:        Status,
		EmailVerified: false,
		Permissions:   Permissions,
		City:          a.City,
		District:      a.District,
		State:         a.State,
		Pincode:       a.Pincode,
		Username:      a.Username,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// ExportColumns is the fixed header of the credential export artifacts.
var ExportColumns = []string{
	"City",
	"District",
	"Admin Name",
	"Username",
	"Email",
	"Password",
	"Role",
	"Status",
	"Pincode",
	"State",
	"Created",
}

// ExportRow projects the account, including the one-time plaintext password,
// into the export column order.
func (a Account) ExportRow() []string {
	return []string{
		a.City,
		a.District,
		a.Name,
		a.Username,
		a.Email,
		a.PlainPassword,
		Role,
		Status,
		a.Pincode,
		a.State,
		a.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
