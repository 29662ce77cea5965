package wishlist

import (
	"encoding/base64"
	"time"

	"github.com/atotto/clipboard"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/noah-isme/toko-client/internal/notify"
)

type sharePayload struct {
	ID       string      `json:"id"`
	SharedAt time.Time   `json:"sharedAt"`
	Items    []shareItem `json:"items"`
}

type shareItem struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	AddedAt   time.Time `json:"addedAt"`
}

// Share encodes the current entries into a shareable link and tries to put
// it on the system clipboard. When no clipboard is reachable (headless
// hosts) the link is surfaced through the sink for manual copying. The link
// is returned in every case; an empty string means encoding failed.
func (s *Service) Share() string {
	if s == nil {
		return ""
	}
	entries := s.Entries()
	payload := sharePayload{
		ID:       uuid.NewString(),
		SharedAt: s.now(),
		Items:    make([]shareItem, 0, len(entries)),
	}
	for _, e := range entries {
		payload.Items = append(payload.Items, shareItem{
			ProductID: e.Product.ID,
			Name:      e.Product.Name,
			AddedAt:   e.AddedAt,
		})
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		s.Log.Error().Err(err).Msg("encode share payload")
		s.notify(notify.KindError, "Sharing failed", "Could not build a share link. Please try again.")
		return ""
	}
	token := base64.RawURLEncoding.EncodeToString(raw)
	link := s.shareBaseURL() + "/wishlist/shared?token=" + token

	if err := clipboard.WriteAll(link); err != nil {
		s.notify(notify.KindInfo, "Copy this link", link)
		return link
	}
	s.notify(notify.KindSuccess, "Link copied", "A share link to your wishlist is on your clipboard")
	return link
}

func (s *Service) shareBaseURL() string {
	if s.ShareBaseURL != "" {
		return s.ShareBaseURL
	}
	return "https://toko.example"
}
