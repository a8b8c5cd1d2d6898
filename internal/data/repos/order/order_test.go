package order

import (
	"context"
	"testing"

	"github.com/craftora/craftora-backend/internal/data/repos/testutil"
	"github.com/craftora/craftora-backend/internal/domain"
)

func TestOrderRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewOrderRepo(db, testutil.Logger(t))
	ctx := context.Background()

	business := testutil.SeedUser(t, ctx, tx, "order-biz", domain.ProfileTypeBusiness)
	customer := testutil.SeedUser(t, ctx, tx, "order-cust", domain.ProfileTypeCustomer)
	bystander := testutil.SeedUser(t, ctx, tx, "order-bystander", domain.ProfileTypeCustomer)

	off := testutil.SeedTieredOffer(t, ctx, tx, business.ID, "Order source", [3]int{100, 200, 300})
	var basic domain.OfferDetail
	if err := tx.WithContext(ctx).Where("offer_id = ? AND offer_type = ?", off.ID, domain.OfferTypeBasic).First(&basic).Error; err != nil {
		t.Fatalf("load basic detail: %v", err)
	}

	created, err := repo.Create(ctx, tx, &domain.Order{
		CustomerUserID:     customer.ID,
		BusinessUserID:     business.ID,
		OfferDetailID:      basic.ID,
		Title:              basic.Title,
		Revisions:          basic.Revisions,
		DeliveryTimeInDays: basic.DeliveryTimeInDays,
		Price:              basic.Price,
		Features:           basic.Features,
		OfferType:          basic.OfferType,
		Status:             domain.OrderStatusInProgress,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Price != 100 || got.Status != domain.OrderStatusInProgress {
		t.Fatalf("GetByID: unexpected order %+v", got)
	}

	forCustomer, err := repo.ListParticipating(ctx, tx, customer.ID)
	if err != nil {
		t.Fatalf("ListParticipating (customer): %v", err)
	}
	if len(forCustomer) != 1 {
		t.Fatalf("ListParticipating (customer): expected 1, got %d", len(forCustomer))
	}

	forBusiness, err := repo.ListParticipating(ctx, tx, business.ID)
	if err != nil {
		t.Fatalf("ListParticipating (business): %v", err)
	}
	if len(forBusiness) != 1 {
		t.Fatalf("ListParticipating (business): expected 1, got %d", len(forBusiness))
	}

	forBystander, err := repo.ListParticipating(ctx, tx, bystander.ID)
	if err != nil {
		t.Fatalf("ListParticipating (bystander): %v", err)
	}
	if len(forBystander) != 0 {
		t.Fatalf("ListParticipating (bystander): expected 0, got %d", len(forBystander))
	}

	created.Status = domain.OrderStatusCompleted
	if err := repo.Save(ctx, tx, created); err != nil {
		t.Fatalf("Save: %v", err)
	}

	completed, err := repo.CountByBusinessAndStatus(ctx, tx, business.ID, domain.OrderStatusCompleted)
	if err != nil {
		t.Fatalf("CountByBusinessAndStatus: %v", err)
	}
	if completed != 1 {
		t.Fatalf("CountByBusinessAndStatus: expected 1 completed, got %d", completed)
	}

	inProgress, err := repo.CountByBusinessAndStatus(ctx, tx, business.ID, domain.OrderStatusInProgress)
	if err != nil {
		t.Fatalf("CountByBusinessAndStatus: %v", err)
	}
	if inProgress != 0 {
		t.Fatalf("CountByBusinessAndStatus: expected 0 in progress, got %d", inProgress)
	}

	if err := repo.Delete(ctx, tx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, tx, created.ID); err == nil {
		t.Fatalf("GetByID after delete: expected error")
	}
}
