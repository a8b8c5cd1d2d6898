package user

import (
	"context"
	"testing"

	"github.com/craftora/craftora-backend/internal/data/repos/testutil"
	"github.com/craftora/craftora-backend/internal/domain"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, &domain.User{
		Username:  "userrepo",
		Email:     "userrepo@example.com",
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("Create: expected assigned id")
	}

	gotByID, err := repo.GetByID(ctx, tx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if gotByID.Username != "userrepo" {
		t.Fatalf("GetByID: unexpected user %+v", gotByID)
	}

	gotByUsername, err := repo.GetByUsername(ctx, tx, "userrepo")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if gotByUsername.ID != created.ID {
		t.Fatalf("GetByUsername: unexpected user %+v", gotByUsername)
	}

	exists, err := repo.UsernameExists(ctx, tx, "userrepo")
	if err != nil {
		t.Fatalf("UsernameExists: %v", err)
	}
	if !exists {
		t.Fatalf("UsernameExists: expected true")
	}

	exists, err = repo.EmailExists(ctx, tx, "nobody@example.com")
	if err != nil {
		t.Fatalf("EmailExists (missing): %v", err)
	}
	if exists {
		t.Fatalf("EmailExists (missing): expected false")
	}
}

func TestProfileRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewProfileRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "profilerepo", "")

	created, err := repo.Create(ctx, tx, &domain.UserProfile{
		UserID: u.ID,
		Type:   domain.ProfileTypeBusiness,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByUserID(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got.Type != domain.ProfileTypeBusiness {
		t.Fatalf("GetByUserID: unexpected profile %+v", got)
	}

	created.Location = "Berlin"
	if err := repo.Save(ctx, tx, created); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err = repo.GetByUserID(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("GetByUserID after save: %v", err)
	}
	if got.Location != "Berlin" {
		t.Fatalf("Save: location not persisted, got %q", got.Location)
	}

	business, err := repo.ListByType(ctx, tx, domain.ProfileTypeBusiness)
	if err != nil {
		t.Fatalf("ListByType: %v", err)
	}
	if len(business) != 1 {
		t.Fatalf("ListByType: expected 1 business profile, got %d", len(business))
	}

	count, err := repo.CountByType(ctx, tx, domain.ProfileTypeCustomer)
	if err != nil {
		t.Fatalf("CountByType: %v", err)
	}
	if count != 0 {
		t.Fatalf("CountByType: expected 0 customers, got %d", count)
	}
}
