package requestdata

import (
	"context"

	"github.com/craftora/craftora-backend/internal/domain"
)

type requestDataKey struct{}

// RequestData is the per-request identity resolved by the auth middleware.
// A nil RequestData (or Authenticated == false) means anonymous.
type RequestData struct {
	TokenString   string
	UserID        uint
	Role          domain.Role
	IsStaff       bool
	Authenticated bool
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey{})
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}

// Current never returns nil: missing request data degrades to the anonymous
// principal so callers can pass it straight into permission checks.
func Current(ctx context.Context) *RequestData {
	if rd := GetRequestData(ctx); rd != nil {
		return rd
	}
	return &RequestData{Role: domain.RoleAnonymous}
}
