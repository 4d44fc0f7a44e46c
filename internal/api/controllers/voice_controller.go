package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"zenjourney/internal/models/request_models"
	resp "zenjourney/internal/models/response_models"
	"zenjourney/internal/services"
	"zenjourney/internal/web"
	"zenjourney/pkg/middleware"
	"zenjourney/pkg/utils"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
	wsMaxMessage = 64 << 10
	wsOutboxSize = 16
)

type VoiceController struct {
	voiceService services.VoiceServiceInterface
	speaker      services.Synthesizer
	renderer     *web.Renderer
	upgrader     websocket.Upgrader
	newCapture   func(supported bool, send func(any) bool) services.Capture
	log          *zap.Logger
}

func NewVoiceController(
	voiceService services.VoiceServiceInterface,
	speaker services.Synthesizer,
	renderer *web.Renderer,
	allowedOrigins []string,
	log *zap.Logger,
) *VoiceController {
	return &VoiceController{
		voiceService: voiceService,
		speaker:      speaker,
		renderer:     renderer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		newCapture: func(supported bool, send func(any) bool) services.Capture {
			return &wsCapture{supported: supported, send: send}
		},
		log: log,
	}
}

// originChecker accepts same-origin upgrades plus the configured origins.
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := set["*"]; ok {
			return true
		}
		if _, ok := set[origin]; ok {
			return true
		}
		return origin == "http://"+r.Host || origin == "https://"+r.Host
	}
}

func (v *VoiceController) Page(c *gin.Context) {
	v.renderer.Render(c, http.StatusOK, "voice.html", web.PageData{Title: "Voice assistant"})
}

// wsCapture drives the page's speech recognition over the socket.
type wsCapture struct {
	supported bool
	send      func(any) bool
}

func (w *wsCapture) Available() bool { return w.supported }

func (w *wsCapture) Start() error {
	if !w.send(gin.H{"type": "listen"}) {
		return errors.New("connection closed")
	}
	return nil
}

func (w *wsCapture) Stop() { w.send(gin.H{"type": "stop-capture"}) }

// Socket runs one voice session for the lifetime of the websocket.
func (v *VoiceController) Socket(c *gin.Context) {
	conn, err := v.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		v.log.Warn("websocket upgrade failed", zap.String("trace_id", utils.TraceID(c)), zap.Error(err))
		return
	}

	out := newSocketOutbox(wsOutboxSize)
	send := out.send

	go v.writePump(conn, out)

	session := v.voiceService.NewSession(middleware.CurrentIdentity(c), func(snap resp.VoiceSnapshot) {
		send(snap)
	})
	log := v.log.With(zap.String("voice_session", session.ID), zap.String("trace_id", utils.TraceID(c)))
	ctx := services.WithTraceID(c.Request.Context(), utils.TraceID(c))

	defer func() {
		session.Close()
		close(out.done)
		_ = conn.Close()
	}()

	send(session.Snapshot())

	conn.SetReadLimit(wsMaxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		var msg request_models.VoiceClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("voice socket closed", zap.Error(err))
			}
			return
		}
		v.dispatch(ctx, log, session, msg, send)
	}
}

func (v *VoiceController) dispatch(ctx context.Context, log *zap.Logger, session *services.VoiceSession, msg request_models.VoiceClientMessage, send func(any) bool) {
	var err error
	switch msg.Type {
	case "start":
		err = session.Start(v.newCapture(msg.Supported, send))
	case "result":
		err = session.Recognize(services.RecognitionEvent{Results: msg.Results})
	case "error":
		session.Fail(msg.Error)
	case "end":
		session.End()
	case "edit":
		err = session.Edit(msg.Text)
	case "send":
		go func() {
			if err := session.Send(ctx); err != nil {
				log.Info("voice send failed", zap.Error(err))
			}
		}()
	case "redo":
		err = session.Redo()
	case "stop":
		session.Close()
	default:
		log.Debug("unknown voice message", zap.String("type", msg.Type))
	}
	if err != nil {
		log.Debug("voice action rejected", zap.String("type", msg.Type), zap.Error(err))
	}
}

// socketOutbox queues frames for the writer. done is closed by the reader when
// the session ends and stopped by the writer when it exits.
type socketOutbox struct {
	msgs    chan any
	done    chan struct{}
	stopped chan struct{}
}

func newSocketOutbox(size int) *socketOutbox {
	return &socketOutbox{
		msgs:    make(chan any, size),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// send reports false once either side has gone away.
func (o *socketOutbox) send(msg any) bool {
	select {
	case <-o.done:
		return false
	case <-o.stopped:
		return false
	default:
	}
	select {
	case o.msgs <- msg:
		return true
	case <-o.done:
		return false
	case <-o.stopped:
		return false
	}
}

// writePump owns all writes to conn.
func (v *VoiceController) writePump(conn *websocket.Conn, out *socketOutbox) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		close(out.stopped)
	}()

	for {
		select {
		case msg := <-out.msgs:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(msg); err != nil {
				v.log.Debug("voice socket write failed", zap.Error(err))
				_ = conn.Close()
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = conn.Close()
				return
			}
		case <-out.done:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// Speak godoc
// @Summary Synthesize speech
// @Description Returns an MP3 rendition of the text when server-side speech is configured
// @Tags Voice
// @Accept json
// @Produce audio/mpeg
// @Param request body request_models.SpeechRequest true "Text to speak"
// @Success 200 {file} binary
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /voice/speech [post]
func (v *VoiceController) Speak(c *gin.Context) {
	audio, ok := v.speaker.(services.AudioSynthesizer)
	if !ok {
		utils.RespondError(c, http.StatusNotFound, "Server-side speech is not enabled")
		return
	}

	var req request_models.SpeechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request")
		return
	}

	clip, err := audio.Synthesize(c.Request.Context(), req.Text)
	if err != nil {
		v.log.Warn("speech synthesis failed", zap.String("trace_id", utils.TraceID(c)), zap.Error(err))
		utils.RespondError(c, http.StatusBadGateway, "Speech synthesis failed")
		return
	}
	c.Data(http.StatusOK, "audio/mpeg", clip)
}

// Clip serves a reply synthesized during a voice session.
func (v *VoiceController) Clip(c *gin.Context) {
	audio, ok := v.speaker.(services.AudioSynthesizer)
	if !ok {
		utils.RespondError(c, http.StatusNotFound, "Server-side speech is not enabled")
		return
	}
	clip, found := audio.Clip(c.Param("id"))
	if !found {
		utils.RespondError(c, http.StatusNotFound, "Clip not found")
		return
	}
	c.Header("Cache-Control", "private, max-age=300")
	c.Data(http.StatusOK, "audio/mpeg", clip)
}
