package auth

import (
	"github.com/gofiber/fiber/v2"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Session adalah identitas request yang sudah terverifikasi.
// Diisi oleh AuthMiddleware dari klaim JWT, dibaca komponen lain
// lewat FromContext, tidak ada state global.
type Session struct {
	UserID string
	Name   string
	Email  string
	Role   string
}

func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

const sessionKey = "session"

// FromContext mengambil Session hasil AuthMiddleware.
func FromContext(c *fiber.Ctx) (Session, bool) {
	s, ok := c.Locals(sessionKey).(Session)
	return s, ok
}

func storeSession(c *fiber.Ctx, s Session) {
	c.Locals(sessionKey, s)
	// kompat: beberapa handler lama baca key terpisah
	c.Locals("user_id", s.UserID)
	c.Locals("userRole", s.Role)
}
