package workers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"coin-reward-system/utils"
)

// Notifier pushes best-effort award notifications: a webhook post for
// the channel and a direct message to the claiming user. Both are
// fire-and-forget: failures are logged and swallowed, never retried,
// and never affect the recorded award.
type Notifier struct {
	WebhookURL string
	DMEndpoint string
	HTTPClient *http.Client
}

func NewNotifier() *Notifier {
	return &Notifier{
		WebhookURL: os.Getenv("DISCORD_WEBHOOK_URL"),
		DMEndpoint: os.Getenv("BOT_DM_ENDPOINT"),
		HTTPClient: utils.HTTPClient,
	}
}

// NotifyAward dispatches both notifications on their own goroutines and
// returns immediately. Runs outside any award critical section.
func (n *Notifier) NotifyAward(userID, platform string, total int64, ip string) {
	if n.WebhookURL != "" {
		go n.postJSON(n.WebhookURL, map[string]interface{}{
			"content": fmt.Sprintf("✅ <@%s> received **%d** coin from **%s** (IP: %s)", userID, total, platform, ip),
		}, "webhook")
	}
	if n.DMEndpoint != "" {
		go n.postJSON(n.DMEndpoint, map[string]interface{}{
			"user_id": userID,
			"content": fmt.Sprintf("You received **%d** coin from **%s**. GG! 🎉", total, platform),
		}, "dm")
	}
}

func (n *Notifier) postJSON(endpoint string, payload map[string]interface{}, kind string) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("❌ [Notify] failed to marshal %s payload: %v", kind, err)
		return
	}

	resp, err := n.HTTPClient.Post(endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("❌ [Notify] %s post failed: %v", kind, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("❌ [Notify] %s post returned status %d", kind, resp.StatusCode)
	}
}
