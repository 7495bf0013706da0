package report

import (
	"fmt"
	"net/url"
	"strings"
)

type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelTelegram Channel = "telegram"
	ChannelSMS      Channel = "sms"
)

// ParseChannel defaults to WhatsApp when raw is empty.
func ParseChannel(raw string) (Channel, error) {
	switch c := Channel(strings.ToLower(strings.TrimSpace(raw))); c {
	case "":
		return ChannelWhatsApp, nil
	case ChannelWhatsApp, ChannelTelegram, ChannelSMS:
		return c, nil
	default:
		return "", fmt.Errorf("unknown share channel %q", raw)
	}
}

// ShareURL builds the link that opens message in the given app. phone is
// optional and reduced to its digits.
func ShareURL(ch Channel, phone string, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	text := escapeComponent(message)

	switch ch {
	case ChannelTelegram:
		return "https://t.me/share/url?url=&text=" + text
	case ChannelSMS:
		return "sms:" + digits + "?body=" + text
	default:
		return "https://wa.me/" + digits + "?text=" + text
	}
}

func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
