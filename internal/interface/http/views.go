package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/opus-favorites/internal/domain/entity"
)

func userView(u *entity.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"created_at": u.CreatedAt,
	}
}

func favoriteView(f entity.Favorite) gin.H {
	return gin.H{
		"id":           f.ID,
		"composer_id":  f.ComposerID,
		"opus_work_id": f.OpusWorkID,
		"title":        f.Title,
		"genre":        f.Genre,
		"epoch":        f.Epoch,
		"created_at":   f.CreatedAt,
	}
}

func favoriteViews(favs []entity.Favorite) []gin.H {
	out := make([]gin.H, 0, len(favs))
	for _, f := range favs {
		out = append(out, favoriteView(f))
	}
	return out
}

// formView describes a form for clients that render their own markup.
func formView(action, method string, fields ...string) gin.H {
	return gin.H{"action": action, "method": method, "fields": fields}
}
