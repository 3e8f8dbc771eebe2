// handlers/claim_routes.go
package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"coin-reward-system/services"
	"coin-reward-system/workers"
)

// SetupClaimRoutes registers the public claim landing endpoint that the
// shortened links redirect back to.
func SetupClaimRoutes(app *fiber.App, claimService *services.ClaimService, notifier *workers.Notifier) {
	app.Get("/claim", func(c *fiber.Ctx) error {
		platform := c.Query("platform")
		subid := c.Query("subid")
		uid := c.Query("uid")

		ip := c.IP()
		if forwarded := c.IPs(); len(forwarded) > 0 {
			ip = forwarded[0]
		}

		result, err := claimService.Award(platform, subid, uid, ip, time.Now())
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidRequest):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing parameters"})
			case errors.Is(err, services.ErrInvalidOrExpiredLink):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "link is invalid or expired"})
			case errors.Is(err, services.ErrIPAlreadyClaimed):
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "this IP already claimed today for this platform"})
			case errors.Is(err, services.ErrQuotaExceeded):
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "no claims left today for this platform"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to process claim"})
			}
		}

		// Best-effort only: the award is already recorded whatever
		// happens to these.
		if result.Outcome == services.AwardCredited {
			notifier.NotifyAward(uid, platform, result.Coins.Total, ip)
		}

		// Same confirmation for a fresh credit and an idempotent replay.
		return c.SendString("🎉 Claim received! Your coins have been credited. You can close this tab.")
	})
}
