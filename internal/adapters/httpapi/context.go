package httpapi

import (
	"context"

	"github.com/need-mission/site-api/internal/app/adminauth"
)

type grantKey struct{}

func WithGrant(ctx context.Context, g adminauth.Grant) context.Context {
	return context.WithValue(ctx, grantKey{}, g)
}

// GrantFromContext returns the grant stored by the admin middleware, or the zero Grant.
func GrantFromContext(ctx context.Context) adminauth.Grant {
	g, _ := ctx.Value(grantKey{}).(adminauth.Grant)
	return g
}
