package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/sofia-edu/admin-service/internal/services"
	"github.com/sofia-edu/admin-service/internal/utils"
)

// Realtime channel events. Inbound carries the user's text; the three
// outbound events cover replies, connection status and failures.
const (
	eventSendMessage = "enviar_mensagem"
	eventNewMessage  = "nova_mensagem"
	eventStatus      = "status_conexao"
	eventError       = "erro"
)

// wsEnvelope is the wire frame for every realtime message.
type wsEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type sendMessagePayload struct {
	Message string `json:"mensagem"`
}

type newMessagePayload struct {
	Sender string `json:"remetente"`
	Text   string `json:"texto"`
}

type statusPayload struct {
	Data string `json:"data"`
}

type errorPayload struct {
	Error string `json:"erro"`
}

type ChatHandler struct {
	BaseHandler
	registry *services.ChatRegistry
	upgrader websocket.Upgrader
}

func NewChatHandler(registry *services.ChatRegistry, logger utils.Logger, allowedOrigin string) *ChatHandler {
	return &ChatHandler{
		BaseHandler: NewBaseHandler(logger),
		registry:    registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" || allowedOrigin == "*" {
					return true
				}
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowedOrigin
			},
		},
	}
}

// chatConn serializes writes to a websocket connection; gorilla allows at
// most one concurrent writer.
type chatConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (cc *chatConn) send(event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.conn.WriteJSON(wsEnvelope{Event: event, Data: data})
}

// Serve upgrades the request to a websocket and bridges it to the session's
// conversation. The session key travels in a cookie so reconnects reuse the
// same conversation history.
func (h *ChatHandler) Serve(c *gin.Context) {
	// The upgrader hijacks the connection and writes the 101 itself, so a
	// fresh session cookie has to ride the upgrade's response headers.
	var upgradeHeader http.Header
	sessionKey, err := c.Cookie(chatSessionCookie)
	if err != nil || sessionKey == "" {
		sessionKey = uuid.New().String()
		cookie := &http.Cookie{
			Name:     chatSessionCookie,
			Value:    sessionKey,
			Path:     "/",
			HttpOnly: true,
		}
		upgradeHeader = http.Header{"Set-Cookie": {cookie.String()}}
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, upgradeHeader)
	if err != nil {
		h.LogError(c, err, "Websocket upgrade failed")
		return
	}
	defer conn.Close()

	h.LogRequest(c, "Chat connected", "session_key", sessionKey)

	cc := &chatConn{conn: conn}

	if !h.registry.Available() {
		_ = cc.send(eventError, errorPayload{
			Error: "Chat não iniciado. Verifique a configuração da IA.",
		})
		return
	}

	if _, err := h.registry.GetOrCreate(sessionKey); err != nil {
		h.LogError(c, err, "Failed to open conversation", "session_key", sessionKey)
		_ = cc.send(eventError, errorPayload{Error: "Não foi possível iniciar o chat."})
		return
	}

	_ = cc.send(eventNewMessage, newMessagePayload{
		Sender: "bot",
		Text:   h.registry.Greeting(),
	})
	_ = cc.send(eventStatus, statusPayload{Data: "Conectado com sucesso!"})

	defer func() {
		h.registry.Discard(sessionKey)
		h.LogRequest(c, "Chat disconnected", "session_key", sessionKey)
	}()

	for {
		var envelope wsEnvelope
		if err := conn.ReadJSON(&envelope); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.LogError(c, err, "Chat read failed", "session_key", sessionKey)
			}
			return
		}

		if envelope.Event != eventSendMessage {
			_ = cc.send(eventError, errorPayload{Error: "Evento desconhecido."})
			continue
		}

		var payload sendMessagePayload
		if err := json.Unmarshal(envelope.Data, &payload); err != nil {
			_ = cc.send(eventError, errorPayload{Error: "Mensagem inválida."})
			continue
		}

		reply, err := h.registry.Forward(c.Request.Context(), sessionKey, payload.Message)
		if err != nil {
			_ = cc.send(eventError, errorPayload{Error: chatErrorMessage(err)})
			continue
		}

		_ = cc.send(eventNewMessage, newMessagePayload{Sender: "bot", Text: reply})
	}
}

func chatErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrEmptyMessage):
		return "A mensagem não pode ser vazia."
	case errors.Is(err, services.ErrChatUnavailable):
		return "Chat não está disponível no momento."
	default:
		return "Ocorreu um erro ao processar sua mensagem. Tente novamente."
	}
}
