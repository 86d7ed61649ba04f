package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartKeyKey is the gin context key holding the resolved cart key.
const CartKeyKey = "cart_key"

// CartKeyHeader carries the guest cart key between client and server.
const CartKeyHeader = "X-Cart-Key"

// CartKeyMiddleware resolves the cart key for the request. Authenticated
// users get a stable key derived from their user id, so the same cart
// follows them across devices. Guests present their key in X-Cart-Key; a
// guest without one is minted a fresh key, echoed back in the response
// header so the client can persist it.
func CartKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := GetUserID(c); ok {
			c.Set(CartKeyKey, fmt.Sprintf("user:%d", userID))
			c.Next()
			return
		}

		key := c.GetHeader(CartKeyHeader)
		if _, err := uuid.Parse(key); err != nil {
			key = uuid.New().String()
		}

		c.Set(CartKeyKey, "guest:"+key)
		c.Header(CartKeyHeader, key)
		c.Next()
	}
}

// GetCartKey extracts the resolved cart key from context
func GetCartKey(c *gin.Context) string {
	return c.GetString(CartKeyKey)
}
