package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	offerrepo "github.com/craftora/craftora-backend/internal/data/repos/offer"
	orderrepo "github.com/craftora/craftora-backend/internal/data/repos/order"
	"github.com/craftora/craftora-backend/internal/data/repos/testutil"
	userrepo "github.com/craftora/craftora-backend/internal/data/repos/user"
	"github.com/craftora/craftora-backend/internal/domain"
	"github.com/craftora/craftora-backend/internal/pkg/apperr"
)

func newOrderService(t *testing.T, tx *gorm.DB) OrderService {
	t.Helper()
	log := testutil.Logger(t)
	return NewOrderService(
		tx,
		log,
		orderrepo.NewOrderRepo(tx, log),
		offerrepo.NewOfferDetailRepo(tx, log),
		offerrepo.NewOfferRepo(tx, log),
		userrepo.NewUserRepo(tx, log),
		userrepo.NewProfileRepo(tx, log),
	)
}

func TestOrderCreateSnapshotsDetail(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	svc := newOrderService(t, tx)
	ctx := context.Background()

	business := testutil.SeedUser(t, ctx, tx, "snap-biz", domain.ProfileTypeBusiness)
	customer := testutil.SeedUser(t, ctx, tx, "snap-cust", domain.ProfileTypeCustomer)
	offer := testutil.SeedOffer(t, ctx, tx, business.ID, "Logo design")
	detail := testutil.SeedOfferDetail(t, ctx, tx, offer.ID, domain.OfferTypeBasic, 100, 3)

	order, err := svc.Create(ctxAs(customer.ID, domain.RoleCustomer), OrderCreateInput{OfferDetailID: detail.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if order.CustomerUserID != customer.ID || order.BusinessUserID != business.ID {
		t.Fatalf("wrong parties: customer=%d business=%d", order.CustomerUserID, order.BusinessUserID)
	}
	if order.Status != domain.OrderStatusInProgress {
		t.Fatalf("expected status in_progress, got %q", order.Status)
	}
	if order.Price != 100 || order.DeliveryTimeInDays != 3 || order.OfferType != domain.OfferTypeBasic {
		t.Fatalf("snapshot fields wrong: %+v", order)
	}

	// Edit the detail after ordering. The order keeps the values it was
	// created with.
	detail.Price = 150
	detailRepo := offerrepo.NewOfferDetailRepo(tx, testutil.Logger(t))
	if err := detailRepo.Save(ctx, tx, detail); err != nil {
		t.Fatalf("Save detail: %v", err)
	}

	orderRepo := orderrepo.NewOrderRepo(tx, testutil.Logger(t))
	reloaded, err := orderRepo.GetByID(ctx, tx, order.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if reloaded.Price != 100 {
		t.Fatalf("order price drifted after detail edit: %d", reloaded.Price)
	}
}

func TestOrderCreateUnknownDetail(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	svc := newOrderService(t, tx)
	ctx := context.Background()

	customer := testutil.SeedUser(t, ctx, tx, "nodet-cust", domain.ProfileTypeCustomer)

	_, err := svc.Create(ctxAs(customer.ID, domain.RoleCustomer), OrderCreateInput{OfferDetailID: 424242})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for missing detail, got %v", err)
	}
}

func TestOrderCreateForbiddenForBusiness(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	svc := newOrderService(t, tx)
	ctx := context.Background()

	business := testutil.SeedUser(t, ctx, tx, "selforder-biz", domain.ProfileTypeBusiness)
	offer := testutil.SeedOffer(t, ctx, tx, business.ID, "Self order")
	detail := testutil.SeedOfferDetail(t, ctx, tx, offer.ID, domain.OfferTypeBasic, 100, 3)

	_, err := svc.Create(ctxAs(business.ID, domain.RoleBusiness), OrderCreateInput{OfferDetailID: detail.ID})
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden for business principal, got %v", err)
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	svc := newOrderService(t, tx)
	ctx := context.Background()

	business := testutil.SeedUser(t, ctx, tx, "status-biz", domain.ProfileTypeBusiness)
	customer := testutil.SeedUser(t, ctx, tx, "status-cust", domain.ProfileTypeCustomer)
	offer := testutil.SeedOffer(t, ctx, tx, business.ID, "Status offer")
	detail := testutil.SeedOfferDetail(t, ctx, tx, offer.ID, domain.OfferTypeBasic, 100, 3)

	order, err := svc.Create(ctxAs(customer.ID, domain.RoleCustomer), OrderCreateInput{OfferDetailID: detail.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The customer cannot move the status, only the business side can.
	_, err = svc.UpdateStatus(ctxAs(customer.ID, domain.RoleCustomer), order.ID, OrderUpdateInput{Status: domain.OrderStatusCompleted})
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden for customer status update, got %v", err)
	}

	_, err = svc.UpdateStatus(ctxAs(business.ID, domain.RoleBusiness), order.ID, OrderUpdateInput{Status: "done"})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for bogus status, got %v", err)
	}

	updated, err := svc.UpdateStatus(ctxAs(business.ID, domain.RoleBusiness), order.ID, OrderUpdateInput{Status: domain.OrderStatusCompleted})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != domain.OrderStatusCompleted {
		t.Fatalf("expected completed, got %q", updated.Status)
	}
	// Everything besides the status stays frozen.
	if updated.Price != 100 || updated.Title != detail.Title {
		t.Fatalf("status update touched snapshot fields: %+v", updated)
	}
}

func TestOrderListScopedToParticipants(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	svc := newOrderService(t, tx)
	ctx := context.Background()

	business := testutil.SeedUser(t, ctx, tx, "scope-biz", domain.ProfileTypeBusiness)
	customer := testutil.SeedUser(t, ctx, tx, "scope-cust", domain.ProfileTypeCustomer)
	bystander := testutil.SeedUser(t, ctx, tx, "scope-other", domain.ProfileTypeCustomer)
	offer := testutil.SeedOffer(t, ctx, tx, business.ID, "Scoped offer")
	detail := testutil.SeedOfferDetail(t, ctx, tx, offer.ID, domain.OfferTypeBasic, 100, 3)
	testutil.SeedOrder(t, ctx, tx, customer.ID, business.ID, detail, domain.OrderStatusInProgress)

	for _, tc := range []struct {
		name   string
		userID uint
		role   domain.Role
		want   int
	}{
		{"customer side", customer.ID, domain.RoleCustomer, 1},
		{"business side", business.ID, domain.RoleBusiness, 1},
		{"bystander", bystander.ID, domain.RoleCustomer, 0},
	} {
		orders, err := svc.List(ctxAs(tc.userID, tc.role))
		if err != nil {
			t.Fatalf("%s: List: %v", tc.name, err)
		}
		if len(orders) != tc.want {
			t.Fatalf("%s: expected %d orders, got %d", tc.name, tc.want, len(orders))
		}
	}

	_, err := svc.List(context.Background())
	if !apperr.IsKind(err, apperr.KindAuthenticationRequired) {
		t.Fatalf("anonymous list: expected 401-kind error, got %v", err)
	}
}

func TestOrderDeleteStaffOnly(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	svc := newOrderService(t, tx)
	ctx := context.Background()

	business := testutil.SeedUser(t, ctx, tx, "del-biz", domain.ProfileTypeBusiness)
	customer := testutil.SeedUser(t, ctx, tx, "del-cust", domain.ProfileTypeCustomer)
	offer := testutil.SeedOffer(t, ctx, tx, business.ID, "Deletable offer")
	detail := testutil.SeedOfferDetail(t, ctx, tx, offer.ID, domain.OfferTypeBasic, 100, 3)
	order := testutil.SeedOrder(t, ctx, tx, customer.ID, business.ID, detail, domain.OrderStatusInProgress)

	if err := svc.Delete(ctxAs(business.ID, domain.RoleBusiness), order.ID); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden for non-staff delete, got %v", err)
	}

	if err := svc.Delete(ctxAsStaff(customer.ID), order.ID); err != nil {
		t.Fatalf("staff Delete: %v", err)
	}

	orderRepo := orderrepo.NewOrderRepo(tx, testutil.Logger(t))
	if _, err := orderRepo.GetByID(ctx, tx, order.ID); err == nil {
		t.Fatalf("order still present after staff delete")
	}
}

func TestOrderCountForBusiness(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	svc := newOrderService(t, tx)
	ctx := context.Background()

	business := testutil.SeedUser(t, ctx, tx, "count-biz", domain.ProfileTypeBusiness)
	customer := testutil.SeedUser(t, ctx, tx, "count-cust", domain.ProfileTypeCustomer)
	offer := testutil.SeedOffer(t, ctx, tx, business.ID, "Counted offer")
	detail := testutil.SeedOfferDetail(t, ctx, tx, offer.ID, domain.OfferTypeBasic, 100, 3)
	testutil.SeedOrder(t, ctx, tx, customer.ID, business.ID, detail, domain.OrderStatusInProgress)
	testutil.SeedOrder(t, ctx, tx, customer.ID, business.ID, detail, domain.OrderStatusInProgress)
	testutil.SeedOrder(t, ctx, tx, customer.ID, business.ID, detail, domain.OrderStatusCompleted)

	callerCtx := ctxAs(customer.ID, domain.RoleCustomer)

	inProgress, err := svc.CountForBusiness(callerCtx, business.ID, domain.OrderStatusInProgress)
	if err != nil {
		t.Fatalf("CountForBusiness in_progress: %v", err)
	}
	if inProgress != 2 {
		t.Fatalf("expected 2 in-progress orders, got %d", inProgress)
	}

	completed, err := svc.CountForBusiness(callerCtx, business.ID, domain.OrderStatusCompleted)
	if err != nil {
		t.Fatalf("CountForBusiness completed: %v", err)
	}
	if completed != 1 {
		t.Fatalf("expected 1 completed order, got %d", completed)
	}

	if _, err := svc.CountForBusiness(callerCtx, 424242, domain.OrderStatusInProgress); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}
	if _, err := svc.CountForBusiness(callerCtx, customer.ID, domain.OrderStatusInProgress); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for customer target, got %v", err)
	}
	if _, err := svc.CountForBusiness(context.Background(), business.ID, domain.OrderStatusInProgress); !apperr.IsKind(err, apperr.KindAuthenticationRequired) {
		t.Fatalf("anonymous count: expected 401-kind error, got %v", err)
	}
}
