package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const cookieName = "medisync_flash"

// Message categories, used as CSS classes by the templates.
const (
	Success = "success"
	Error   = "error"
	Info    = "info"
)

type Message struct {
	Category string `json:"c"`
	Text     string `json:"t"`
}

// Add queues a message for the next page the browser renders. Calls within one response
// accumulate.
func Add(w http.ResponseWriter, r *http.Request, category, text string) {
	msgs := pending(w, r)
	msgs = append(msgs, Message{Category: category, Text: text})
	write(w, msgs)
}

// Pop returns and clears the queued messages.
func Pop(w http.ResponseWriter, r *http.Request) []Message {
	msgs := pending(w, r)
	if len(msgs) > 0 {
		http.SetCookie(w, &http.Cookie{Name: cookieName, Path: "/", MaxAge: -1, HttpOnly: true})
	}
	return msgs
}

// pending reads messages already set on this response first, then the request cookie.
func pending(w http.ResponseWriter, r *http.Request) []Message {
	for _, raw := range w.Header().Values("Set-Cookie") {
		c, err := http.ParseSetCookie(raw)
		if err == nil && c.Name == cookieName && c.MaxAge >= 0 {
			if msgs := decode(c.Value); msgs != nil {
				return msgs
			}
		}
	}
	c, err := r.Cookie(cookieName)
	if err != nil {
		return nil
	}
	return decode(c.Value)
}

func write(w http.ResponseWriter, msgs []Message) {
	data, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	// Replace any flash cookie already queued on this response.
	kept := w.Header().Values("Set-Cookie")
	w.Header().Del("Set-Cookie")
	for _, raw := range kept {
		if c, err := http.ParseSetCookie(raw); err == nil && c.Name == cookieName {
			continue
		}
		w.Header().Add("Set-Cookie", raw)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func decode(value string) []Message {
	data, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var msgs []Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil
	}
	return msgs
}
