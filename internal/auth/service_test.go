package auth

import "testing"

const testAdminEmail = "admin@site.com"

func TestPasswordIsHashedBeforeSaving(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo, testAdminEmail)

	password := "Password@123"

	_, err := service.Register("Test User", "test@example.com", password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := repo.FindByEmail("test@example.com")
	if err != nil {
		t.Fatalf("user not found: %v", err)
	}
	if user.Password == password {
		t.Fatal("password was stored in plain text")
	}
}

func TestRegisterAssignsRoles(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo, testAdminEmail)

	owner, err := service.Register("Owner", "owner@x.com", "Password@123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owner.Role != RoleOwner {
		t.Fatalf("expected OWNER role, got %q", owner.Role)
	}

	// Case-insensitive match against the configured site admin.
	admin, err := service.Register("Admin", "ADMIN@SITE.COM", "Password@123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin.Role != RoleAdmin {
		t.Fatalf("expected ADMIN role, got %q", admin.Role)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo, testAdminEmail)

	if _, err := service.Register("A", "dup@x.com", "Password@123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.Register("B", "dup@x.com", "Password@123"); err == nil {
		t.Fatal("expected duplicate email to be rejected")
	}
}

func TestLogin(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo, testAdminEmail)

	if _, err := service.Register("Owner", "owner@x.com", "Password@123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := service.Login("owner@x.com", "Password@123"); err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
	if _, err := service.Login("owner@x.com", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := service.Login("nobody@x.com", "Password@123"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
