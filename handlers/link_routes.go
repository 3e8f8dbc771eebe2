// handlers/link_routes.go
package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"coin-reward-system/services"
)

// SetupLinkRoutes registers daily-link issuance plus the user-facing
// balance and callback endpoints.
func SetupLinkRoutes(app *fiber.App, linkService *services.LinkService, claimService *services.ClaimService, balanceService *services.BalanceService) {
	// Issue (or return) today's link for a platform. The estimate is a
	// preview only, the final award is priced when the click lands.
	app.Post("/links/issue", func(c *fiber.Ctx) error {
		var req struct {
			UserID   string `json:"user_id"`
			Platform string `json:"platform"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.UserID == "" || req.Platform == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id and platform are required"})
		}

		now := time.Now()
		entry, err := linkService.IssueDailyLink(req.UserID, req.Platform, now)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUnknownPlatform):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown platform"})
			case errors.Is(err, services.ErrShortenerUnavailable):
				return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "shortener not configured for platform"})
			default:
				log.Printf("DB Error issuing daily link: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to issue link"})
			}
		}

		resp := fiber.Map{
			"link":     entry.Link,
			"date":     entry.Date,
			"platform": entry.Platform,
			"estimate": services.ComputeCoins(req.Platform, now),
		}
		// The link is already issued at this point; a failing quota
		// summary must not hide it from the caller.
		if remaining, err := claimService.RemainingToday(req.UserID, now); err != nil {
			log.Printf("DB Error computing remaining quota: %v", err)
		} else {
			resp["remaining"] = remaining
		}
		return c.JSON(resp)
	})

	// Balance summary with the current multiplier and week/month totals.
	app.Get("/users/:id/balance", func(c *fiber.Ctx) error {
		userID := c.Params("id")
		now := time.Now()

		user, err := balanceService.GetUser(userID)
		if err != nil {
			log.Printf("DB Error fetching user %s: %v", userID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user"})
		}

		weekFrom, weekTo := services.WeekRange(now)
		weekly, err := balanceService.SumAwardedBetween(userID, weekFrom, weekTo)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to sum weekly coins"})
		}
		monthFrom, monthTo := services.MonthRange(now)
		monthly, err := balanceService.SumAwardedBetween(userID, monthFrom, monthTo)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to sum monthly coins"})
		}

		return c.JSON(fiber.Map{
			"user_id":     user.UserID,
			"normal_coin": user.NormalCoin,
			"vip_coin":    user.VipCoin,
			"total":       user.NormalCoin + user.VipCoin,
			"multiplier":  services.MultiplierAt(now),
			"weekly_sum":  weekly,
			"monthly_sum": monthly,
		})
	})

	// External callback: credit normal coins directly.
	app.Post("/api/callback", func(c *fiber.Ctx) error {
		var req struct {
			UserID string `json:"user_id"`
			Coins  int64  `json:"coins"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.UserID == "" || req.Coins <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id and a positive coins amount are required"})
		}

		if err := balanceService.AddNormalCoin(req.UserID, req.Coins); err != nil {
			log.Printf("DB Error crediting callback coins: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to credit coins"})
		}
		return c.JSON(fiber.Map{"success": true, "user_id": req.UserID, "coins": req.Coins})
	})
}
