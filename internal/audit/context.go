package audit

import (
	"context"
	"math"
	"strconv"

	"notas/internal/auth"

	"github.com/golang-jwt/jwt/v5"
)

// Actor is the ambient identity of a mutation. Either field may be nil.
type Actor struct {
	UserID   *uint
	TenantID *uint
}

// ResolveActor reads the claims the authentication layer left on ctx.
// A missing or unusable value yields an empty Actor, never an error.
func ResolveActor(ctx context.Context) Actor {
	switch claims := auth.RawClaims(ctx).(type) {
	case *auth.Claims:
		if claims == nil {
			return Actor{}
		}
		return Actor{UserID: positive(claims.UserID), TenantID: positive(claims.TenantID)}
	case auth.Claims:
		return Actor{UserID: positive(claims.UserID), TenantID: positive(claims.TenantID)}
	case jwt.MapClaims:
		return Actor{UserID: claimID(claims, "user_id"), TenantID: claimID(claims, "tenant_id")}
	default:
		return Actor{}
	}
}

func positive(v uint) *uint {
	if v == 0 {
		return nil
	}
	return &v
}

// claimID accepts the shapes a JSON-decoded claim can take.
func claimID(claims jwt.MapClaims, key string) *uint {
	switch v := claims[key].(type) {
	case float64:
		if v < 1 || v > math.MaxUint32 || v != math.Trunc(v) {
			return nil
		}
		return positive(uint(v))
	case int:
		if v < 1 {
			return nil
		}
		return positive(uint(v))
	case int64:
		if v < 1 {
			return nil
		}
		return positive(uint(v))
	case uint:
		return positive(v)
	case string:
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil
		}
		return positive(uint(n))
	default:
		return nil
	}
}
