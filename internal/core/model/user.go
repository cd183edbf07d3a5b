package model

type User interface {
	Subject() string
	Provider() string
	Roles() []string
}

type BaseUser struct {
	subject  string
	provider string
	roles    []string
}

// Provider implements User.
func (u *BaseUser) Provider() string {
	return u.provider
}

// Roles implements User.
func (u *BaseUser) Roles() []string {
	return u.roles
}

// Subject implements User.
func (u *BaseUser) Subject() string {
	return u.subject
}

var _ User = &BaseUser{}

func NewUser(provider, subject string, roles ...string) *BaseUser {
	return &BaseUser{
		subject:  subject,
		provider: provider,
		roles:    roles,
	}
}

func UserString(u User) string {
	if u == nil {
		return "anonymous"
	}

	return u.Provider() + "/" + u.Subject()
}
