package game

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/julienbrg/game-of-go/internal/adapters"
	"github.com/julienbrg/game-of-go/internal/bootstrap"
	"github.com/julienbrg/game-of-go/internal/delivery/auth"
	"github.com/julienbrg/game-of-go/internal/domain/game"
	errs "github.com/julienbrg/game-of-go/internal/errors"
	"github.com/julienbrg/game-of-go/internal/httpresponse"
	repo "github.com/julienbrg/game-of-go/internal/repository"
	gameuc "github.com/julienbrg/game-of-go/internal/usecase/game"
	"github.com/julienbrg/game-of-go/internal/utils"
)

type GameHandler struct {
	cfg         bootstrap.Config
	log         *zap.SugaredLogger
	gameUC      *gameuc.GameUseCase
	authHandler *auth.AuthHandler
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewGameHandler(cfg bootstrap.Config, log *zap.SugaredLogger, mongoAdapter *adapters.AdapterMongo, redisAdapter *adapters.AdapterRedis, authHandler *auth.AuthHandler) *GameHandler {
	return &GameHandler{
		cfg:         cfg,
		log:         log,
		gameUC:      gameuc.NewGameUseCase(repo.NewGameRepository(cfg, log, redisAdapter.GetClient(), mongoAdapter.Database), log),
		authHandler: authHandler,
	}
}

// HandleNewGame godoc
// @Summary Создание новой игры
// @Tags game
// @Accept json
// @Produce json
// @Param body body game.CreateGameRequest true "Параметры игры"
// @Success 200 {object} game.CreateGameResponse
// @Failure 400 {object} httpresponse.ErrorResponse
// @Router /NewGame [post]
func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	userID := g.authHandler.GetUserID(w, r)
	if userID == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusUnauthorized,
			httpresponse.ErrorResponse{ErrorDescription: "not authorized"})
		return
	}

	var req game.CreateGameRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("JSON decode error:", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	resp, err := g.gameUC.CreateGame(r.Context(), req, userID)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	g.log.Info("New game created with key: " + resp.GameKeyPublic)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

// HandleJoinGame godoc
// @Summary Присоединение к игре по публичному ключу
// @Tags game
// @Accept json
// @Produce json
// @Param body body game.JoinGameRequest true "Публичный ключ игры"
// @Success 200 {object} game.Record
// @Failure 400 {object} httpresponse.ErrorResponse
// @Router /JoinGame [post]
func (g *GameHandler) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	userID := g.authHandler.GetUserID(w, r)
	if userID == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusUnauthorized,
			httpresponse.ErrorResponse{ErrorDescription: "not authorized"})
		return
	}

	var req game.JoinGameRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("JSON decode error:", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	rec, err := g.gameUC.JoinGame(r.Context(), req.GameKeyPublic, userID)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, statusForErr(err), err.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, rec)
}

// HandlePlay applies one stone placement. The game is addressed by its
// secret key, known only to the two seated players.
func (g *GameHandler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	userID := g.authHandler.GetUserID(w, r)
	if userID == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusUnauthorized,
			httpresponse.ErrorResponse{ErrorDescription: "not authorized"})
		return
	}

	gameKey := r.URL.Query().Get("game_key")
	if gameKey == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "game_key is required"})
		return
	}

	var req game.PlayRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("JSON decode error:", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	resp, err := g.gameUC.Play(r.Context(), gameKey, userID, req.X, req.Y)
	if err != nil {
		g.log.Infof("rejected move by %s: %v", userID, err)
		httpresponse.WriteResponseWithStatus(w, statusForErr(err), err.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

// HandlePass records a pass for the caller.
func (g *GameHandler) HandlePass(w http.ResponseWriter, r *http.Request) {
	userID := g.authHandler.GetUserID(w, r)
	if userID == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusUnauthorized,
			httpresponse.ErrorResponse{ErrorDescription: "not authorized"})
		return
	}

	gameKey := r.URL.Query().Get("game_key")
	if gameKey == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "game_key is required"})
		return
	}

	resp, err := g.gameUC.Pass(r.Context(), gameKey, userID)
	if err != nil {
		g.log.Infof("rejected pass by %s: %v", userID, err)
		httpresponse.WriteResponseWithStatus(w, statusForErr(err), err.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

// HandleGetState returns the aggregate snapshot plus the SGF record.
func (g *GameHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	gameKey := r.URL.Query().Get("game_key")
	if gameKey == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "game_key is required"})
		return
	}

	resp, err := g.gameUC.State(r.Context(), gameKey)
	if err != nil {
		httpresponse.WriteResponseWithStatus(w, statusForErr(err), err.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

type wsCommand struct {
	Action string `json:"action"` // "play" or "pass"
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

type wsError struct {
	Error string `json:"error"`
}

type wsClient struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	closed bool
}

func (c *wsClient) send(v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if err := c.conn.WriteJSON(v); err != nil {
		c.closed = true
	}
}

func (c *wsClient) close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.conn.Close()
}

// HandleGameSocket upgrades to websocket, pushes every engine event to the
// client and accepts play/pass commands in return.
func (g *GameHandler) HandleGameSocket(w http.ResponseWriter, r *http.Request) {
	userID := g.authHandler.GetUserID(w, r)
	if userID == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusUnauthorized,
			httpresponse.ErrorResponse{ErrorDescription: "not authorized"})
		return
	}

	gameKey := r.URL.Query().Get("game_key")
	if gameKey == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "game_key is required"})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("websocket upgrade failed:", err)
		return
	}

	client := &wsClient{conn: conn}
	defer client.close()

	err = g.gameUC.Subscribe(r.Context(), gameKey, func(ev game.Event) {
		client.send(ev)
	})
	if err != nil {
		g.log.Error(err)
		client.send(wsError{Error: err.Error()})
		return
	}

	for {
		var cmd wsCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			g.log.Info("websocket closed: ", err)
			return
		}

		var resp game.StateResponse
		switch cmd.Action {
		case "play":
			resp, err = g.gameUC.Play(r.Context(), gameKey, userID, cmd.X, cmd.Y)
		case "pass":
			resp, err = g.gameUC.Pass(r.Context(), gameKey, userID)
		default:
			client.send(wsError{Error: "unknown action"})
			continue
		}

		if err != nil {
			client.send(wsError{Error: err.Error()})
			continue
		}
		client.send(resp)
	}
}

// statusForErr maps use case errors to HTTP statuses. Rules violations are
// caller errors.
func statusForErr(err error) int {
	switch {
	case errors.Is(err, errs.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrCallerNotAllowed):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
