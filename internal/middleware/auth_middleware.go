package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	autherrors "go-hrm/internal/auth/errors"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		email, ok := claims["sub"].(string)
		if !ok || email == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Subject not found in token", nil)
			c.Abort()
			return
		}

		// JSON numbers decode as float64.
		empIDClaim, ok := claims["emp_id"].(float64)
		if !ok || empIDClaim <= 0 {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Employee ID not found in token", nil)
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)

		c.Set("email", email)
		c.Set("emp_id", int(empIDClaim))
		c.Set("role", role)

		ctx := contextutil.WithEmpID(c.Request.Context(), int(empIDClaim))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
