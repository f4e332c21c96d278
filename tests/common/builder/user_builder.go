//go:build unit || e2e

package builder

import (
	domuser "gearshare/internal/domain/user"
	reqdto "gearshare/internal/handler/dto/request"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID    uuid.UUID
	Name  string
	Email string
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:    uuid.New(),
		Name:  "Olga Owner",
		Email: "olga@example.com",
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) WithName(name string) *UserBuilder {
	u.Name = name
	return u
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) BuildDomain() (*domuser.User, error) {
	return domuser.NewUser(u.Name, u.Email)
}

func (u *UserBuilder) BuildCreateRequestDTO() reqdto.CreateUserRequest {
	return reqdto.CreateUserRequest{
		Name:  u.Name,
		Email: u.Email,
	}
}

func (u *UserBuilder) BuildUpdateRequestDTO() reqdto.UpdateUserRequest {
	name := u.Name
	email := u.Email
	return reqdto.UpdateUserRequest{
		Name:  &name,
		Email: &email,
	}
}

func (u *UserBuilder) BuildView() *queries.UserView {
	return &queries.UserView{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
