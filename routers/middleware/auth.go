package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/slpe/agentpay/config"
	u "github.com/slpe/agentpay/utils"
)

// JWTMiddleware resolves the calling agent's credential from the bearer
// token and places the subject identity in the request context. The core
// holds no ambient session state; every downstream call receives the subject
// explicitly from here.
func JWTMiddleware(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		u.APIResponse(ctx, http.StatusUnauthorized, "error", "Invalid or missing credential", nil)
		ctx.Abort()
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	conf := config.AuthConfig()

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(conf.Secret), nil
	})
	if err != nil || !token.Valid {
		u.APIResponse(ctx, http.StatusUnauthorized, "error", "Invalid or missing credential", nil)
		ctx.Abort()
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		u.APIResponse(ctx, http.StatusUnauthorized, "error", "Invalid or missing credential", nil)
		ctx.Abort()
		return
	}

	subjectID, _ := claims["sub"].(string)
	if subjectID == "" {
		u.APIResponse(ctx, http.StatusUnauthorized, "error", "Invalid or missing credential", nil)
		ctx.Abort()
		return
	}

	ctx.Set("subject_id", subjectID)
	if tier, ok := claims["tier"].(float64); ok {
		ctx.Set("tier", int(tier))
	}

	ctx.Next()
}
