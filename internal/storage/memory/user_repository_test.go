package memory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/odyostore/backoffice/internal/domain"
	"github.com/odyostore/backoffice/internal/storage/memory"
)

func seedUser(t *testing.T, repo domain.UserRepository, id, email string, role domain.Role, approval domain.Approval) {
	t.Helper()
	now := time.Now().UTC()
	err := repo.Create(domain.User{
		ID:           id,
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
		Approval:     approval,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", id, err)
	}
}

func TestUserRepository_EmailUniqueness(t *testing.T) {
	repo := memory.NewUserRepository()
	seedUser(t, repo, "user-1", "a@example.com", domain.RoleCenter, domain.ApprovalPending)

	err := repo.Create(domain.User{ID: "user-2", Email: "A@Example.com"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	repo := memory.NewUserRepository()
	seedUser(t, repo, "user-1", "a@example.com", domain.RoleCenter, domain.ApprovalApproved)

	user, err := repo.GetByEmail("A@EXAMPLE.COM")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if user.ID != "user-1" {
		t.Fatalf("id = %s, want user-1", user.ID)
	}

	if _, err := repo.GetByEmail("missing@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestUserRepository_ApprovalFlow(t *testing.T) {
	repo := memory.NewUserRepository()
	seedUser(t, repo, "user-1", "a@example.com", domain.RoleCenter, domain.ApprovalPending)

	pending, err := repo.ListByApproval(domain.ApprovalPending)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}

	updated, err := repo.SetApproval("user-1", domain.ApprovalApproved, domain.RoleSupplier)
	if err != nil {
		t.Fatalf("set approval: %v", err)
	}
	if updated.Approval != domain.ApprovalApproved || updated.Role != domain.RoleSupplier {
		t.Fatalf("unexpected user after approval: %+v", updated)
	}

	pending, err = repo.ListByApproval(domain.ApprovalPending)
	if err != nil {
		t.Fatalf("list pending after approval: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending = %d, want 0", len(pending))
	}
}

func TestUserRepository_HasAdmin(t *testing.T) {
	repo := memory.NewUserRepository()

	has, err := repo.HasAdmin()
	if err != nil {
		t.Fatalf("has admin: %v", err)
	}
	if has {
		t.Fatal("empty repository should have no admin")
	}

	seedUser(t, repo, "admin-1", "admin@example.com", domain.RoleAdmin, domain.ApprovalApproved)
	has, err = repo.HasAdmin()
	if err != nil {
		t.Fatalf("has admin: %v", err)
	}
	if !has {
		t.Fatal("admin should be detected")
	}
}

func TestUserRepository_Delete(t *testing.T) {
	repo := memory.NewUserRepository()
	seedUser(t, repo, "user-1", "a@example.com", domain.RoleCenter, domain.ApprovalPending)

	if err := repo.Delete("user-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete("user-1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}
