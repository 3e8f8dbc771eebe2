// handlers/admin_routes.go
package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"coin-reward-system/middleware"
	"coin-reward-system/services"
)

// SetupAdminRoutes registers the privileged balance mutations and the
// claim log. The shared-secret gate lives in the middleware; the core
// never decides who is an admin.
func SetupAdminRoutes(app *fiber.App, balanceService *services.BalanceService, claimService *services.ClaimService) {
	adminGroup := app.Group("/admin", middleware.AdminAuthMiddleware())

	adminGroup.Post("/coins/set", func(c *fiber.Ctx) error {
		var req struct {
			UserID     string `json:"user_id"`
			NormalCoin *int64 `json:"normal_coin"`
			VipCoin    *int64 `json:"vip_coin"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.UserID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
		}
		if req.NormalCoin == nil && req.VipCoin == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "normal_coin or vip_coin is required"})
		}
		if (req.NormalCoin != nil && *req.NormalCoin < 0) || (req.VipCoin != nil && *req.VipCoin < 0) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "balances cannot be negative"})
		}

		if req.NormalCoin != nil {
			if err := balanceService.SetNormalCoin(req.UserID, *req.NormalCoin); err != nil {
				log.Printf("DB Error setting normal coin: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to set balance"})
			}
		}
		if req.VipCoin != nil {
			if err := balanceService.SetVipCoin(req.UserID, *req.VipCoin); err != nil {
				log.Printf("DB Error setting vip coin: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to set balance"})
			}
		}

		user, err := balanceService.GetUser(req.UserID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user"})
		}
		return c.JSON(fiber.Map{"message": "Balance updated successfully", "user": user})
	})

	adminGroup.Post("/coins/add", func(c *fiber.Ctx) error {
		var req struct {
			UserID string `json:"user_id"`
			Amount int64  `json:"amount"`
			Type   string `json:"type"` // "normal" or "vip"
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.UserID == "" || req.Amount == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id and a non-zero amount are required"})
		}

		var err error
		switch req.Type {
		case "normal":
			err = balanceService.AddNormalCoin(req.UserID, req.Amount)
		case "vip":
			err = balanceService.AddVipCoin(req.UserID, req.Amount)
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "type must be 'normal' or 'vip'"})
		}
		if err != nil {
			log.Printf("DB Error adding coins: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add coins"})
		}

		user, fetchErr := balanceService.GetUser(req.UserID)
		if fetchErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user"})
		}
		return c.JSON(fiber.Map{"message": "Coins added successfully", "user": user})
	})

	adminGroup.Get("/claims", func(c *fiber.Ctx) error {
		claims, err := claimService.ListClaims(services.ClaimFilter{
			UserID:   c.Query("user_id"),
			Platform: c.Query("platform"),
			Status:   c.Query("status"),
			FromDate: c.Query("from"),
			ToDate:   c.Query("to"),
		})
		if err != nil {
			log.Printf("DB Error listing claims: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list claims"})
		}
		return c.JSON(claims)
	})
}
