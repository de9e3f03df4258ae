package services

import (
	"context"
	"errors"
	"testing"

	"eventbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	users     []*domain.User
	createErr error
	getErr    error
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.users {
		if existing.EmailEquals(u.Email) {
			return domain.ErrDuplicateEmail
		}
	}
	f.users = append(f.users, u)
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.users {
		if u.EmailEquals(email) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	return f.users, nil
}

func TestUserServiceRegister(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		setup   func(*fakeUserRepo)
		inName  string
		inEmail string
		inPhone string
		wantErr error
	}{
		{
			name:    "success",
			setup:   func(f *fakeUserRepo) {},
			inName:  "Alice",
			inEmail: "alice@example.com",
			inPhone: "111",
		},
		{
			name: "duplicate email same case",
			setup: func(f *fakeUserRepo) {
				f.users = append(f.users, domain.NewUser("Alice", "alice@example.com", "111"))
			},
			inName:  "Impostor",
			inEmail: "alice@example.com",
			wantErr: domain.ErrDuplicateEmail,
		},
		{
			name: "duplicate email different case",
			setup: func(f *fakeUserRepo) {
				f.users = append(f.users, domain.NewUser("Alice", "alice@example.com", "111"))
			},
			inName:  "Impostor",
			inEmail: "ALICE@example.COM",
			wantErr: domain.ErrDuplicateEmail,
		},
		{
			name:    "empty name",
			setup:   func(f *fakeUserRepo) {},
			inName:  "   ",
			inEmail: "alice@example.com",
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "empty email",
			setup:   func(f *fakeUserRepo) {},
			inName:  "Alice",
			inEmail: "",
			wantErr: domain.ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeUserRepo{}
			tt.setup(fake)
			before := len(fake.users)
			svc := NewUserService(fake)

			user, err := svc.Register(ctx, tt.inName, tt.inEmail, tt.inPhone)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Len(t, fake.users, before, "failed registration must not change the collection")
				return
			}
			require.NoError(t, err)
			require.NotNil(t, user)
			assert.Equal(t, tt.inName, user.Name)
			assert.Equal(t, tt.inEmail, user.Email)
			assert.Equal(t, tt.inPhone, user.Phone)
			assert.Len(t, fake.users, before+1)
		})
	}
}

func TestUserServiceRegisterWrapsRepoError(t *testing.T) {
	fake := &fakeUserRepo{createErr: errors.New("disk full")}
	svc := NewUserService(fake)

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "111")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestUserServiceLogin(t *testing.T) {
	ctx := context.Background()
	alice := domain.NewUser("Alice", "Alice@Example.com", "111")

	tests := []struct {
		name    string
		email   string
		wantErr error
	}{
		{"exact case", "Alice@Example.com", nil},
		{"lower case", "alice@example.com", nil},
		{"upper case", "ALICE@EXAMPLE.COM", nil},
		{"unknown", "bob@example.com", domain.ErrUserNotFound},
		{"blank", "   ", domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeUserRepo{users: []*domain.User{alice}}
			svc := NewUserService(fake)

			user, err := svc.Login(ctx, tt.email)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Same(t, alice, user)
		})
	}
}
