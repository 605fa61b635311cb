package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	validEmail := "test@example.com"
	hashed := "$2a$10$abcdefghijklmnopqrstuv"

	user, err := NewUser(validEmail, hashed)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Email != validEmail {
		t.Errorf("Expected email %s, got %s", validEmail, user.Email)
	}

	if user.HashedPassword != hashed {
		t.Errorf("Expected hashed password %s, got %s", hashed, user.HashedPassword)
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if _, err = NewUser("", hashed); err != ErrEmptyEmail {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}

	if _, err = NewUser("invalidemail", hashed); err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	if _, err = NewUser(validEmail, ""); err != ErrEmptyHashedPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyHashedPassword, err)
	}
}

func TestUserValidate(t *testing.T) {
	validUser := User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		HashedPassword: "hashedpassword123",
	}

	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalidUser := validUser
	invalidUser.ID = uuid.Nil
	if err := invalidUser.Validate(); err != ErrEmptyUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserID, err)
	}

	invalidUser = validUser
	invalidUser.Email = "Bob <bob@example.com>"
	if err := invalidUser.Validate(); err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		want     error
	}{
		{"", ErrEmptyPassword},
		{"short", ErrPasswordTooShort},
		{strings.Repeat("a", 12), nil},
		{strings.Repeat("a", 72), nil},
		{strings.Repeat("a", 73), ErrPasswordTooLong},
	}

	for _, tt := range tests {
		if got := ValidatePassword(tt.password); got != tt.want {
			t.Errorf("ValidatePassword(len=%d) = %v, want %v", len(tt.password), got, tt.want)
		}
	}
}
