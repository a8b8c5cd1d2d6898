package permissions

import (
	"testing"

	"github.com/craftora/craftora-backend/internal/domain"
	"github.com/craftora/craftora-backend/internal/pkg/apperr"
	"github.com/craftora/craftora-backend/internal/requestdata"
)

func anon() *requestdata.RequestData {
	return &requestdata.RequestData{Role: domain.RoleAnonymous}
}

func principal(id uint, role domain.Role) *requestdata.RequestData {
	return &requestdata.RequestData{UserID: id, Role: role, Authenticated: true}
}

func staff(id uint) *requestdata.RequestData {
	rd := principal(id, domain.RoleCustomer)
	rd.IsStaff = true
	return rd
}

func expectKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %d, got nil", kind)
	}
	if !apperr.IsKind(err, kind) {
		t.Fatalf("expected kind %d, got %v", kind, err)
	}
}

func TestOfferGate(t *testing.T) {
	offer := &domain.Offer{ID: 1, UserID: 7}

	if err := Check(anon(), ResourceOffer, VerbList, nil); err != nil {
		t.Fatalf("offer list should be public: %v", err)
	}
	if err := Check(nil, ResourceOffer, VerbList, nil); err != nil {
		t.Fatalf("offer list should tolerate nil request data: %v", err)
	}

	expectKind(t, Check(anon(), ResourceOffer, VerbRetrieve, nil), apperr.KindAuthenticationRequired)
	if err := Check(principal(3, domain.RoleNone), ResourceOffer, VerbRetrieve, nil); err != nil {
		t.Fatalf("authenticated retrieve should pass regardless of role: %v", err)
	}

	expectKind(t, Check(principal(3, domain.RoleCustomer), ResourceOffer, VerbCreate, nil), apperr.KindForbidden)
	expectKind(t, Check(principal(3, domain.RoleNone), ResourceOffer, VerbCreate, nil), apperr.KindForbidden)
	if err := Check(principal(3, domain.RoleBusiness), ResourceOffer, VerbCreate, nil); err != nil {
		t.Fatalf("business create should pass: %v", err)
	}

	expectKind(t, Check(principal(3, domain.RoleBusiness), ResourceOffer, VerbUpdate, offer), apperr.KindForbidden)
	if err := Check(principal(7, domain.RoleBusiness), ResourceOffer, VerbUpdate, offer); err != nil {
		t.Fatalf("owner update should pass: %v", err)
	}
	expectKind(t, Check(principal(7, domain.RoleCustomer), ResourceOffer, VerbDelete, offer), apperr.KindForbidden)
}

func TestOrderGate(t *testing.T) {
	order := &domain.Order{ID: 1, CustomerUserID: 2, BusinessUserID: 9}

	expectKind(t, Check(anon(), ResourceOrder, VerbList, nil), apperr.KindAuthenticationRequired)
	if err := Check(principal(2, domain.RoleCustomer), ResourceOrder, VerbList, nil); err != nil {
		t.Fatalf("authenticated list should pass: %v", err)
	}

	expectKind(t, Check(principal(2, domain.RoleBusiness), ResourceOrder, VerbCreate, nil), apperr.KindForbidden)
	if err := Check(principal(2, domain.RoleCustomer), ResourceOrder, VerbCreate, nil); err != nil {
		t.Fatalf("customer create should pass: %v", err)
	}

	// Customer side may never mutate, even as a participant.
	expectKind(t, Check(principal(2, domain.RoleCustomer), ResourceOrder, VerbUpdate, order), apperr.KindForbidden)
	// Business role alone is not enough; the order must belong to them.
	expectKind(t, Check(principal(4, domain.RoleBusiness), ResourceOrder, VerbUpdate, order), apperr.KindForbidden)
	if err := Check(principal(9, domain.RoleBusiness), ResourceOrder, VerbUpdate, order); err != nil {
		t.Fatalf("business owner update should pass: %v", err)
	}

	expectKind(t, Check(principal(9, domain.RoleBusiness), ResourceOrder, VerbDelete, order), apperr.KindForbidden)
	if err := Check(staff(1), ResourceOrder, VerbDelete, order); err != nil {
		t.Fatalf("staff delete should pass: %v", err)
	}

	// Retrieve is 405, not 403, and fires before any auth check.
	expectKind(t, Check(anon(), ResourceOrder, VerbRetrieve, nil), apperr.KindMethodNotAllowed)
	expectKind(t, Check(staff(1), ResourceOrder, VerbRetrieve, order), apperr.KindMethodNotAllowed)
}

func TestReviewAndProfileGate(t *testing.T) {
	review := &domain.Review{ID: 1, ReviewerID: 5, BusinessUserID: 9}
	profile := &domain.UserProfile{UserID: 5}

	expectKind(t, Check(principal(5, domain.RoleBusiness), ResourceReview, VerbCreate, nil), apperr.KindForbidden)
	if err := Check(principal(5, domain.RoleCustomer), ResourceReview, VerbCreate, nil); err != nil {
		t.Fatalf("customer review create should pass: %v", err)
	}
	expectKind(t, Check(principal(9, domain.RoleBusiness), ResourceReview, VerbUpdate, review), apperr.KindForbidden)
	if err := Check(principal(5, domain.RoleCustomer), ResourceReview, VerbDelete, review); err != nil {
		t.Fatalf("reviewer delete should pass: %v", err)
	}

	expectKind(t, Check(principal(6, domain.RoleCustomer), ResourceProfile, VerbUpdate, profile), apperr.KindForbidden)
	if err := Check(principal(5, domain.RoleCustomer), ResourceProfile, VerbUpdate, profile); err != nil {
		t.Fatalf("profile owner update should pass: %v", err)
	}
}
