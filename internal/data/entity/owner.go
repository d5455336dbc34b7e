package entity

const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

type Owner struct {
	Base
	FirstName string  `db:"first_name"`
	LastName  string  `db:"last_name"`
	Email     string  `db:"email"`
	Phone     *string `db:"phone"`
	Role      string  `db:"role"`
}

func (o *Owner) FullName() string {
	if o.FirstName == "" {
		return o.LastName
	}
	return o.FirstName + " " + o.LastName
}
