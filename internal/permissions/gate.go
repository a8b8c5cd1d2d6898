package permissions

import (
	"fmt"

	"github.com/craftora/craftora-backend/internal/domain"
	"github.com/craftora/craftora-backend/internal/pkg/apperr"
	"github.com/craftora/craftora-backend/internal/requestdata"
)

type Resource string

const (
	ResourceOffer       Resource = "offer"
	ResourceOfferDetail Resource = "offerdetail"
	ResourceOrder       Resource = "order"
	ResourceReview      Resource = "review"
	ResourceProfile     Resource = "profile"
)

type Verb string

const (
	VerbList     Verb = "list"
	VerbRetrieve Verb = "retrieve"
	VerbCreate   Verb = "create"
	VerbUpdate   Verb = "update"
	VerbDelete   Verb = "delete"
)

// Owned is implemented by domain records that have a notion of the user who
// may mutate them (offer owner, order business side, review author, profile
// owner).
type Owned interface {
	OwnedBy(userID uint) bool
}

// Rule describes the requirement for a (resource, verb) pair.
type Rule struct {
	// Public allows anonymous access outright.
	Public bool
	// Role is the exact role required. Empty means any authenticated
	// principal, including RoleNone.
	Role domain.Role
	// Staff requires the is_staff flag instead of a role.
	Staff bool
	// OwnerOnly additionally requires target.OwnedBy(principal).
	OwnerOnly bool
	// Deny rejects the verb outright with method-not-allowed.
	Deny bool
}

var table = map[Resource]map[Verb]Rule{
	ResourceOffer: {
		VerbList:     {Public: true},
		VerbRetrieve: {},
		VerbCreate:   {Role: domain.RoleBusiness},
		VerbUpdate:   {Role: domain.RoleBusiness, OwnerOnly: true},
		VerbDelete:   {Role: domain.RoleBusiness, OwnerOnly: true},
	},
	ResourceOfferDetail: {
		VerbRetrieve: {},
	},
	ResourceOrder: {
		// List is authenticated; the query layer additionally scopes rows
		// to orders the principal participates in.
		VerbList:     {},
		VerbRetrieve: {Deny: true},
		VerbCreate:   {Role: domain.RoleCustomer},
		VerbUpdate:   {Role: domain.RoleBusiness, OwnerOnly: true},
		VerbDelete:   {Staff: true},
	},
	ResourceReview: {
		VerbList:   {},
		VerbCreate: {Role: domain.RoleCustomer},
		VerbUpdate: {OwnerOnly: true},
		VerbDelete: {OwnerOnly: true},
	},
	ResourceProfile: {
		VerbList:     {},
		VerbRetrieve: {},
		VerbUpdate:   {OwnerOnly: true},
	},
}

// Check evaluates the rule table for the principal against an optional
// target. It reports authentication failures as 401-kind errors and
// authorization failures as 403-kind errors; the two are never conflated.
func Check(rd *requestdata.RequestData, resource Resource, verb Verb, target Owned) error {
	rules, ok := table[resource]
	if !ok {
		return apperr.Forbidden(fmt.Sprintf("unknown resource %q", resource))
	}
	rule, ok := rules[verb]
	if !ok {
		return apperr.MethodNotAllowed("")
	}
	if rule.Deny {
		return apperr.MethodNotAllowed("")
	}
	if rule.Public {
		return nil
	}
	if rd == nil || !rd.Authenticated || rd.Role == domain.RoleAnonymous {
		return apperr.AuthenticationRequired("")
	}
	if rule.Staff {
		if !rd.IsStaff {
			return apperr.Forbidden("")
		}
	} else if rule.Role != "" && rd.Role != rule.Role {
		return apperr.Forbidden("")
	}
	if rule.OwnerOnly {
		if target == nil || !target.OwnedBy(rd.UserID) {
			return apperr.Forbidden("")
		}
	}
	return nil
}
