package services

import (
	"fmt"
	"math/rand"

	"github.com/gofiber/fiber/v2"

	"rps-frame-server/config"
	"rps-frame-server/logger"
	"rps-frame-server/models"
	"rps-frame-server/monitor"
)

// GameService interprets verified frame actions and answers each one with
// the next screen. Every method below is mounted behind FrameAuth except
// Landing, so handlers can assume a VerifiedAction is present.
type GameService struct {
	Store *MatchStore
	Cfg   *config.Config
	Mon   *monitor.Monitor

	// RandInt draws the bot's move. Swapped for a fixed function in tests.
	RandInt func(n int) int
}

func NewGameService(store *MatchStore, cfg *config.Config, mon *monitor.Monitor) *GameService {
	return &GameService{
		Store:   store,
		Cfg:     cfg,
		Mon:     mon,
		RandInt: rand.Intn,
	}
}

// actionFrom reads the verified action stashed by middleware.FrameAuth.
func actionFrom(c *fiber.Ctx) *models.VerifiedAction {
	return c.Locals("verified_action").(*models.VerifiedAction)
}

// ===== Entry point =====

// Landing serves the home screen to plain GETs. This is the only route
// without signature verification: rendering the entry document must work
// for any client that merely unfurls the URL.
func (s *GameService) Landing(c *fiber.Ctx) error {
	return s.respond(c, s.homeScreen())
}

// ===== Callback targets =====

// HandleHome interprets taps on the home screen.
func (s *GameService) HandleHome(c *fiber.Ctx) error {
	action := actionFrom(c)

	switch action.ButtonIndex {
	case 1:
		return s.respond(c, s.chooseMoveBotScreen())
	case 2:
		record := s.Store.Create(action.FID)
		logger.Log.Infow("⚔️ challenge created", "matchId", record.ID, "initiator", action.FID)
		return s.respond(c, s.lobbyScreen(record.ID))
	case 3:
		return s.respond(c, s.howToPlayScreen())
	case 4:
		return s.respond(c, s.walletScreen())
	default:
		return s.respond(c, s.homeScreen())
	}
}

// HandleBotMove plays one stateless round against the bot. Taps outside
// the move buttons re-render the choose screen unchanged.
func (s *GameService) HandleBotMove(c *fiber.Ctx) error {
	action := actionFrom(c)

	playerMove, ok := models.ParseMove(action.ButtonIndex)
	if !ok {
		return s.respond(c, s.chooseMoveBotScreen())
	}

	botMove := models.Move(s.RandInt(3) + 1)
	return s.respond(c, s.botResultScreen(playerMove, botMove))
}

// HandleBotResult interprets taps on a bot result screen.
func (s *GameService) HandleBotResult(c *fiber.Ctx) error {
	action := actionFrom(c)

	if action.ButtonIndex == 1 {
		return s.respond(c, s.chooseMoveBotScreen())
	}
	return s.respond(c, s.homeScreen())
}

// HandlePvP is the single callback target for every screen of a live
// match. Join, move recording and resolution all run inside one store
// Update, so racing taps on the same match serialize cleanly.
func (s *GameService) HandlePvP(c *fiber.Ctx) error {
	action := actionFrom(c)

	matchID := action.MatchID()
	if matchID == "" {
		return s.respond(c, s.matchGoneScreen())
	}

	move, isMove := models.ParseMove(action.ButtonIndex)

	record, found := s.Store.Update(matchID, func(m *models.MatchRecord) bool {
		// Any action by a second distinct identity claims the opponent
		// slot, a tap on Refresh included.
		if !m.HasOpponent() && m.InitiatorFID != action.FID {
			fid := action.FID
			m.OpponentFID = &fid
		}

		// First write wins per role. Spectators hold no role and record
		// nothing.
		if isMove {
			switch m.RoleOf(action.FID) {
			case models.RoleInitiator:
				if m.InitiatorMove == models.MoveNone {
					m.InitiatorMove = move
				}
			case models.RoleOpponent:
				if m.OpponentMove == models.MoveNone {
					m.OpponentMove = move
				}
			}
		}

		return m.IsComplete()
	})

	if !found {
		logger.Log.Warnw("match not found", "matchId", matchID, "fid", action.FID)
		return s.respond(c, s.matchGoneScreen())
	}

	// A complete record was removed inside the same Update, so this
	// request is the only one that will ever render its result.
	if record.IsComplete() {
		logger.Log.Infow("🏁 match resolved", "matchId", record.ID,
			"initiator", record.InitiatorFID, "opponent", *record.OpponentFID)
		return s.respond(c, s.pvpResultScreen(record))
	}

	if !record.HasOpponent() {
		return s.respond(c, s.waitingForOpponentScreen(record.ID))
	}
	return s.respond(c, s.waitingForMovesScreen(record.ID))
}

// HandlePvPResult interprets taps on a resolved match's result screen.
func (s *GameService) HandlePvPResult(c *fiber.Ctx) error {
	action := actionFrom(c)

	if action.ButtonIndex == 1 {
		record := s.Store.Create(action.FID)
		logger.Log.Infow("⚔️ challenge created", "matchId", record.ID, "initiator", action.FID)
		return s.respond(c, s.lobbyScreen(record.ID))
	}
	return s.respond(c, s.homeScreen())
}

// HandleHowTo sends any tap on the rules screen back home.
func (s *GameService) HandleHowTo(c *fiber.Ctx) error {
	return s.respond(c, s.homeScreen())
}

// HandleWallet sends any posted tap on the wallet screen back home. The
// wallet button itself is a link and never reaches this handler.
func (s *GameService) HandleWallet(c *fiber.Ctx) error {
	return s.respond(c, s.homeScreen())
}

// HandleRestart is the error screen's way out.
func (s *GameService) HandleRestart(c *fiber.Ctx) error {
	return s.respond(c, s.homeScreen())
}

// respond renders a screen document with a 200. Error screens for
// rejected signatures are written by the middleware instead, with 401.
func (s *GameService) respond(c *fiber.Ctx, screen models.ScreenDescriptor) error {
	if s.Mon != nil {
		s.Mon.IncFramesServed()
	}
	c.Type("html")
	return c.SendString(RenderFrameHTML(screen))
}

// ===== Screen construction =====

func (s *GameService) postURL(path string) string {
	return s.Cfg.Server.PublicBaseURL + path
}

func (s *GameService) imageURL(name string) string {
	return s.Cfg.Assets.ImageBaseURL + "/" + name
}

func (s *GameService) homeScreen() models.ScreenDescriptor {
	return models.ScreenDescriptor{
		Title:    "Rock Paper Scissors",
		ImageURL: s.imageURL("home.png"),
		PostURL:  s.postURL("/frames/home"),
		Buttons: []models.ButtonSpec{
			{Label: "Play vs Bot", Action: models.ButtonPost},
			{Label: "Challenge a Friend", Action: models.ButtonPost},
			{Label: "How to Play", Action: models.ButtonPost},
			{Label: "Connect Wallet", Action: models.ButtonPost},
		},
	}
}

func (s *GameService) chooseMoveBotScreen() models.ScreenDescriptor {
	return models.ScreenDescriptor{
		Title:    "Pick your move!",
		ImageURL: s.imageURL("bot-round.png"),
		PostURL:  s.postURL("/frames/bot"),
		Buttons:  moveButtons(),
	}
}

func (s *GameService) botResultScreen(player, bot models.Move) models.ScreenDescriptor {
	var title, image string
	switch models.Resolve(player, bot) {
	case models.OutcomeDraw:
		title = fmt.Sprintf("Draw: both threw %s", player)
		image = "result-draw.png"
	case models.OutcomeFirstWins:
		title = fmt.Sprintf("You win: %s", models.WinPhrase(player, bot))
		image = "result-win.png"
	default:
		title = fmt.Sprintf("The bot wins: %s", models.WinPhrase(bot, player))
		image = "result-lose.png"
	}

	return models.ScreenDescriptor{
		Title:    title,
		ImageURL: s.imageURL(image),
		PostURL:  s.postURL("/frames/bot/result"),
		Buttons: []models.ButtonSpec{
			{Label: "Play Again", Action: models.ButtonPost},
			{Label: "Home", Action: models.ButtonPost},
		},
	}
}

func (s *GameService) lobbyScreen(matchID string) models.ScreenDescriptor {
	return models.ScreenDescriptor{
		Title:    "Challenge created! Pick your move and share this frame.",
		ImageURL: s.imageURL("lobby.png"),
		PostURL:  s.pvpPostURL(matchID),
		Buttons:  pvpButtons(),
	}
}

func (s *GameService) waitingForOpponentScreen(matchID string) models.ScreenDescriptor {
	return models.ScreenDescriptor{
		Title:    "Waiting for an opponent to join. Share this frame!",
		ImageURL: s.imageURL("waiting-opponent.png"),
		PostURL:  s.pvpPostURL(matchID),
		Buttons:  pvpButtons(),
	}
}

func (s *GameService) waitingForMovesScreen(matchID string) models.ScreenDescriptor {
	return models.ScreenDescriptor{
		Title:    "Opponent joined! Waiting for both moves.",
		ImageURL: s.imageURL("waiting-moves.png"),
		PostURL:  s.pvpPostURL(matchID),
		Buttons:  pvpButtons(),
	}
}

func (s *GameService) pvpResultScreen(record models.MatchRecord) models.ScreenDescriptor {
	var title, image string
	switch models.Resolve(record.InitiatorMove, record.OpponentMove) {
	case models.OutcomeDraw:
		title = fmt.Sprintf("It's a draw: both threw %s", record.InitiatorMove)
		image = "result-draw.png"
	case models.OutcomeFirstWins:
		title = fmt.Sprintf("fid %d wins: %s", record.InitiatorFID,
			models.WinPhrase(record.InitiatorMove, record.OpponentMove))
		image = "pvp-result.png"
	default:
		title = fmt.Sprintf("fid %d wins: %s", *record.OpponentFID,
			models.WinPhrase(record.OpponentMove, record.InitiatorMove))
		image = "pvp-result.png"
	}

	return models.ScreenDescriptor{
		Title:    title,
		ImageURL: s.imageURL(image),
		PostURL:  s.postURL("/frames/pvp/result"),
		Buttons: []models.ButtonSpec{
			{Label: "New Challenge", Action: models.ButtonPost},
			{Label: "Home", Action: models.ButtonPost},
		},
	}
}

func (s *GameService) howToPlayScreen() models.ScreenDescriptor {
	return models.ScreenDescriptor{
		Title:    "Rock crushes scissors. Paper wraps rock. Scissors cut paper.",
		ImageURL: s.imageURL("howto.png"),
		PostURL:  s.postURL("/frames/howto"),
		Buttons: []models.ButtonSpec{
			{Label: "Back", Action: models.ButtonPost},
		},
	}
}

func (s *GameService) walletScreen() models.ScreenDescriptor {
	screen := models.ScreenDescriptor{
		Title:    "Connect your wallet",
		ImageURL: s.imageURL("wallet.png"),
		PostURL:  s.postURL("/frames/wallet"),
		Buttons: []models.ButtonSpec{
			{Label: "Back", Action: models.ButtonPost},
		},
	}

	// Without a configured destination the link button is dropped rather
	// than rendered dead.
	if s.Cfg.Wallet.ConnectURL != "" {
		screen.Buttons = append([]models.ButtonSpec{
			{Label: "Open Wallet", Action: models.ButtonLink, Target: s.Cfg.Wallet.ConnectURL},
		}, screen.Buttons...)
	}

	return screen
}

func (s *GameService) matchGoneScreen() models.ScreenDescriptor {
	return s.errorScreen("Match not found. It may have expired or already finished.")
}

// ErrorScreen is the screen rendered for rejected callbacks. Exposed so
// the verification middleware can answer failures itself.
func (s *GameService) ErrorScreen(message string) models.ScreenDescriptor {
	return s.errorScreen(message)
}

func (s *GameService) errorScreen(message string) models.ScreenDescriptor {
	return models.ScreenDescriptor{
		Title:    message,
		ImageURL: s.imageURL("error.png"),
		PostURL:  s.postURL("/frames/restart"),
		Buttons: []models.ButtonSpec{
			{Label: "Back", Action: models.ButtonPost},
		},
	}
}

func (s *GameService) pvpPostURL(matchID string) string {
	return fmt.Sprintf("%s/frames/pvp?matchId=%s", s.Cfg.Server.PublicBaseURL, matchID)
}

func moveButtons() []models.ButtonSpec {
	return []models.ButtonSpec{
		{Label: models.MoveRock.Emoji() + " Rock", Action: models.ButtonPost},
		{Label: models.MovePaper.Emoji() + " Paper", Action: models.ButtonPost},
		{Label: models.MoveScissors.Emoji() + " Scissors", Action: models.ButtonPost},
	}
}

func pvpButtons() []models.ButtonSpec {
	return append(moveButtons(), models.ButtonSpec{Label: "🔄 Refresh", Action: models.ButtonPost})
}
