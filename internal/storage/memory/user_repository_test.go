package memory_test

import (
	"errors"
	"testing"

	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/domain"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/storage/memory"
)

func newUser(name string) domain.User {
	return domain.User{Name: name, Password: "secret", Email: name + "@example.com"}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := memory.NewUserRepository()
	user := newUser("alice")

	if err := repo.Create(user); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stored, err := repo.FindByName("alice")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if stored != user {
		t.Fatalf("expected %+v, got %+v", user, stored)
	}
}

func TestUserRepository_Exists(t *testing.T) {
	repo := memory.NewUserRepository()

	exists, err := repo.Exists("alice")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if exists {
		t.Fatal("expected name to be free")
	}

	if err := repo.Create(newUser("alice")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	exists, err = repo.Exists("alice")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if !exists {
		t.Fatal("expected name to be taken")
	}
}

func TestUserRepository_DuplicateName(t *testing.T) {
	repo := memory.NewUserRepository()
	if err := repo.Create(newUser("bob")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err := repo.Create(newUser("bob"))
	if !errors.Is(err, domain.ErrNameExists) {
		t.Fatalf("expected ErrNameExists, got %v", err)
	}
}

func TestUserRepository_FindUnknown(t *testing.T) {
	repo := memory.NewUserRepository()
	if _, err := repo.FindByName("ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_AllPreservesRegistrationOrder(t *testing.T) {
	repo := memory.NewUserRepository()
	names := []string{"c", "a", "b"}
	for _, name := range names {
		if err := repo.Create(newUser(name)); err != nil {
			t.Fatalf("create %s failed: %v", name, err)
		}
	}

	users, err := repo.All()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != len(names) {
		t.Fatalf("expected %d users, got %d", len(names), len(users))
	}
	for i, name := range names {
		if users[i].Name != name {
			t.Fatalf("expected %s at position %d, got %s", name, i, users[i].Name)
		}
	}
}
