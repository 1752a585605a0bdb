package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/shared/apperr"
)

// Identity is injected by the edge proxy after it authenticates the caller.
// X-User-ID carries the subject, X-Admin marks staff. The service trusts
// these headers; it never sees credentials.
const (
	HeaderUserID = "X-User-ID"
	HeaderAdmin  = "X-Admin"

	CtxKeyUserID  = "user_id"
	CtxKeyIsAdmin = "is_admin"
)

func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid := c.GetHeader(HeaderUserID); uid != "" {
			c.Set(CtxKeyUserID, uid)
		}
		if c.GetHeader(HeaderAdmin) == "true" {
			c.Set(CtxKeyIsAdmin, true)
		}
		c.Next()
	}
}

func UserID(c *gin.Context) string {
	if v, ok := c.Get(CtxKeyUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func IsAdmin(c *gin.Context) bool {
	v, ok := c.Get(CtxKeyIsAdmin)
	return ok && v == true
}

// RequireUser guards customer routes.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			Fail(c, apperr.UnauthorizedErr("Sign in to continue."))
			return
		}
		c.Next()
	}
}

// RequireAdmin guards seller and back-office routes.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			Fail(c, apperr.ForbiddenErr("Admin access required."))
			return
		}
		c.Next()
	}
}
