package session

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kapu/mastermind-cli/internal/gameapi"
	"github.com/kapu/mastermind-cli/internal/msgcat"
)

// GameClient is the remote surface the controller drives. gameapi.Client
// satisfies it; tests substitute a fake.
type GameClient interface {
	CreateGame(ctx context.Context) (string, error)
	SubmitGuess(ctx context.Context, gameID, guess string) (gameapi.Score, error)
	DeleteGame(ctx context.Context, gameID string) error
}

// LineReader yields one line of player input per call.
type LineReader interface {
	ReadLine() (string, error)
}

// Printer is the user-facing text sink.
type Printer interface {
	Println(s string)
}

type phase int

const (
	phaseUninitialized phase = iota
	phaseActive
	phaseTerminated
)

// EndReason reports which trigger ended the session.
type EndReason int

const (
	EndNone EndReason = iota
	EndWin
	EndExhausted
	EndQuit
)

func (r EndReason) String() string {
	switch r {
	case EndWin:
		return "win"
	case EndExhausted:
		return "exhausted"
	case EndQuit:
		return "quit"
	default:
		return "none"
	}
}

type Config struct {
	MaxAttempts int
	ExitKeyword string
}

// Controller owns the session lifecycle: it creates the remote session,
// drives the guess loop one turn at a time, and releases the session on every
// exit path. It is not safe for concurrent use; the loop is strictly
// sequential by design.
type Controller struct {
	client GameClient
	in     LineReader
	out    Printer
	cat    *msgcat.Catalog
	logger *zap.Logger
	cfg    Config

	phase    phase
	gameID   string
	attempts int
	reason   EndReason
}

func NewController(client GameClient, in LineReader, out Printer, cat *msgcat.Catalog, logger *zap.Logger, cfg Config) *Controller {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 10
	}
	if strings.TrimSpace(cfg.ExitKeyword) == "" {
		cfg.ExitKeyword = "exit"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		client: client,
		in:     in,
		out:    out,
		cat:    cat,
		logger: logger,
		cfg:    cfg,
	}
}

// Run drives one full session from creation to teardown. The returned reason
// says which trigger ended the loop; err is non-nil only when the session
// could not be created, which is the one path with nothing to clean up.
func (c *Controller) Run(ctx context.Context) (EndReason, error) {
	id, err := c.client.CreateGame(ctx)
	if err != nil {
		c.out.Println(c.render("game.start_failed", map[string]any{"Error": err.Error()}))
		return EndNone, err
	}
	c.gameID = id
	c.phase = phaseActive
	c.logger.Info("session created", zap.String("game_id", id))
	defer c.teardown(ctx)

	c.out.Println(c.render("game.welcome", map[string]any{
		"Max":  c.cfg.MaxAttempts,
		"Exit": c.cfg.ExitKeyword,
	}))

	for c.phase == phaseActive {
		c.out.Println(c.render("game.prompt", nil))
		line, err := c.in.ReadLine()
		if err != nil {
			// Input source gone (ctrl-D, closed pipe): same as giving up.
			c.terminate(EndQuit)
			break
		}
		c.turn(ctx, line)
	}
	return c.reason, nil
}

// turn handles one Active-state iteration. Attempts are consumed only by
// successfully scored guesses; validation rejects and transport failures
// leave the counter and the session untouched.
func (c *Controller) turn(ctx context.Context, line string) {
	input := strings.TrimSpace(line)
	if strings.EqualFold(input, c.cfg.ExitKeyword) {
		c.out.Println(c.render("game.quit", nil))
		c.terminate(EndQuit)
		return
	}
	if input == "" {
		c.out.Println(c.render("game.usage", map[string]any{"Exit": c.cfg.ExitKeyword}))
		return
	}
	if err := ValidateGuess(input); err != nil {
		c.out.Println(c.render("game.invalid_guess", map[string]any{"Error": err.Error()}))
		return
	}

	score, err := c.client.SubmitGuess(ctx, c.gameID, input)
	if err != nil {
		c.logger.Warn("guess submission failed", zap.String("game_id", c.gameID), zap.Error(err))
		c.out.Println(c.render("game.submit_failed", map[string]any{
			"Error": err.Error(),
			"Exit":  c.cfg.ExitKeyword,
		}))
		return
	}

	c.attempts++
	c.out.Println(c.renderScore(score))

	switch {
	case score.Black == GuessLength:
		c.out.Println(c.render("game.win", map[string]any{"Attempts": c.attempts}))
		c.terminate(EndWin)
	case c.attempts >= c.cfg.MaxAttempts:
		c.out.Println(c.render("game.exhausted", map[string]any{"Max": c.cfg.MaxAttempts}))
		c.terminate(EndExhausted)
	}
}

// terminate flips to Terminated exactly once; later triggers are ignored.
func (c *Controller) terminate(r EndReason) {
	if c.phase == phaseTerminated {
		return
	}
	c.phase = phaseTerminated
	c.reason = r
}

// teardown releases the remote session. Failure here is reported as a warning
// and nothing more: the game outcome already stands.
func (c *Controller) teardown(ctx context.Context) {
	if c.gameID == "" {
		return
	}
	if err := c.client.DeleteGame(ctx, c.gameID); err != nil {
		c.logger.Warn("session cleanup failed", zap.String("game_id", c.gameID), zap.Error(err))
		c.out.Println(c.render("game.cleanup_failed", map[string]any{"Error": err.Error()}))
		return
	}
	c.logger.Info("session deleted", zap.String("game_id", c.gameID), zap.String("reason", c.reason.String()))
	c.out.Println(c.render("game.goodbye", nil))
}

// renderScore builds the peg feedback token: one black marker per exact hit,
// one white marker per value-only hit, or an explicit no-match text.
func (c *Controller) renderScore(s gameapi.Score) string {
	token := strings.Repeat(c.render("score.black_marker", nil), s.Black) +
		strings.Repeat(c.render("score.white_marker", nil), s.White)
	if token == "" {
		token = c.render("score.none", nil)
	}
	return c.render("game.score", map[string]any{
		"Feedback": token,
		"Attempt":  c.attempts,
		"Max":      c.cfg.MaxAttempts,
	})
}

func (c *Controller) render(key string, data map[string]any) string {
	s, err := c.cat.Render(key, data)
	if err != nil {
		c.logger.Warn("message render failed", zap.String("key", key), zap.Error(err))
		return key
	}
	return s
}
