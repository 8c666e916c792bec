package handler

import (
	"context"
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// twiml is the Twilio messaging response envelope.
type twiml struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// WebhookHandler handles POST /webhook/whatsapp (Twilio form posts).
type WebhookHandler struct {
	resolver MessageResolver
	timeout  time.Duration
}

func NewWebhookHandler(res MessageResolver, timeout time.Duration) *WebhookHandler {
	return &WebhookHandler{resolver: res, timeout: timeout}
}

// Receive resolves the incoming message body and replies with TwiML.
// Twilio retries non-2xx responses, so errors still answer 200 with a
// human-readable message.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.reply(w, "Sorry, I couldn't read that message.")
		return
	}

	body := strings.TrimSpace(r.PostFormValue("Body"))
	from := r.PostFormValue("From")
	if body == "" {
		h.reply(w, "Please send a question about IPL players.")
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	res := h.resolver.Resolve(ctx, body)
	log.Info().
		Str("from", from).
		Str("intent", string(res.Intent)).
		Str("source", res.Source).
		Bool("success", res.Success).
		Msg("webhook message resolved")

	h.reply(w, res.Answer)
}

func (h *WebhookHandler) reply(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	xml.NewEncoder(w).Encode(twiml{Message: message})
}
