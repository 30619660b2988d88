package session

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kapu/mastermind-cli/internal/gameapi"
	"github.com/kapu/mastermind-cli/internal/msgcat"
)

type scriptReader struct {
	lines []string
	pos   int
}

func (r *scriptReader) ReadLine() (string, error) {
	if r.pos >= len(r.lines) {
		return "", io.EOF
	}
	line := r.lines[r.pos]
	r.pos++
	return line, nil
}

type sinkPrinter struct {
	lines []string
}

func (p *sinkPrinter) Println(s string) { p.lines = append(p.lines, s) }

func (p *sinkPrinter) contains(sub string) bool {
	for _, l := range p.lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

type turnResult struct {
	score gameapi.Score
	err   error
}

type fakeClient struct {
	createID  string
	createErr error
	results   []turnResult
	deleteErr error

	submits []string
	deletes int
}

func (f *fakeClient) CreateGame(ctx context.Context) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	if f.createID == "" {
		f.createID = "game-1"
	}
	return f.createID, nil
}

func (f *fakeClient) SubmitGuess(ctx context.Context, gameID, guess string) (gameapi.Score, error) {
	f.submits = append(f.submits, guess)
	if i := len(f.submits) - 1; i < len(f.results) {
		return f.results[i].score, f.results[i].err
	}
	return gameapi.Score{}, nil
}

func (f *fakeClient) DeleteGame(ctx context.Context, gameID string) error {
	f.deletes++
	return f.deleteErr
}

func testCatalog(t *testing.T) *msgcat.Catalog {
	t.Helper()
	cat, err := msgcat.New("")
	if err != nil {
		t.Fatalf("msgcat.New: %v", err)
	}
	return cat
}

func runController(t *testing.T, fc *fakeClient, lines []string, cfg Config) (EndReason, error, *sinkPrinter) {
	t.Helper()
	out := &sinkPrinter{}
	ctrl := NewController(fc, &scriptReader{lines: lines}, out, testCatalog(t), nil, cfg)
	reason, err := ctrl.Run(context.Background())
	return reason, err, out
}

func TestInvalidGuessConsumesNothing(t *testing.T) {
	fc := &fakeClient{}
	reason, err, out := runController(t, fc, []string{"1267", "123", "12345", "abcd", "exit"}, Config{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(fc.submits) != 0 {
		t.Fatalf("expected no submissions, got %d", len(fc.submits))
	}
	if reason != EndQuit {
		t.Fatalf("expected quit, got %s", reason)
	}
	if fc.deletes != 1 {
		t.Fatalf("expected exactly one delete, got %d", fc.deletes)
	}
	if !out.contains("Invalid guess") {
		t.Fatalf("expected validation feedback, got %v", out.lines)
	}
}

func TestValidGuessScoredOnce(t *testing.T) {
	fc := &fakeClient{results: []turnResult{{score: gameapi.Score{Black: 1, White: 2}}}}
	reason, err, out := runController(t, fc, []string{"1234", "exit"}, Config{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(fc.submits) != 1 || fc.submits[0] != "1234" {
		t.Fatalf("unexpected submissions: %v", fc.submits)
	}
	if reason != EndQuit {
		t.Fatalf("expected quit, got %s", reason)
	}
	if !out.contains("●○○") {
		t.Fatalf("expected peg feedback ●○○, got %v", out.lines)
	}
	if !out.contains("attempt 1/10") {
		t.Fatalf("expected attempt progress, got %v", out.lines)
	}
}

func TestWinTerminatesAndCleansUp(t *testing.T) {
	fc := &fakeClient{results: []turnResult{{score: gameapi.Score{Black: 4}}}}
	reason, err, out := runController(t, fc, []string{"1234"}, Config{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reason != EndWin {
		t.Fatalf("expected win, got %s", reason)
	}
	if fc.deletes != 1 {
		t.Fatalf("expected exactly one delete, got %d", fc.deletes)
	}
	if !out.contains("cracked the code") {
		t.Fatalf("expected win message, got %v", out.lines)
	}
}

func TestExhaustedAfterMaxAttempts(t *testing.T) {
	fc := &fakeClient{}
	for i := 0; i < 10; i++ {
		fc.results = append(fc.results, turnResult{score: gameapi.Score{White: 1}})
	}
	// An 11th line is available but must never be read.
	reader := &scriptReader{lines: []string{
		"1111", "1111", "1111", "1111", "1111",
		"1111", "1111", "1111", "1111", "1111",
		"1111",
	}}
	out := &sinkPrinter{}
	ctrl := NewController(fc, reader, out, testCatalog(t), nil, Config{})
	reason, err := ctrl.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reason != EndExhausted {
		t.Fatalf("expected exhausted, got %s", reason)
	}
	if len(fc.submits) != 10 {
		t.Fatalf("expected 10 submissions, got %d", len(fc.submits))
	}
	if reader.pos != 10 {
		t.Fatalf("expected 10 lines consumed, got %d", reader.pos)
	}
	if fc.deletes != 1 {
		t.Fatalf("expected exactly one delete, got %d", fc.deletes)
	}
}

func TestExitKeywordAnyCasing(t *testing.T) {
	for _, input := range []string{"exit", "EXIT", "  ExIt  ", "\texit\t"} {
		fc := &fakeClient{}
		reason, err, _ := runController(t, fc, []string{input}, Config{})
		if err != nil {
			t.Fatalf("Run(%q): %v", input, err)
		}
		if reason != EndQuit {
			t.Fatalf("input %q: expected quit, got %s", input, reason)
		}
		if len(fc.submits) != 0 {
			t.Fatalf("input %q: expected no submissions, got %v", input, fc.submits)
		}
		if fc.deletes != 1 {
			t.Fatalf("input %q: expected one delete, got %d", input, fc.deletes)
		}
	}
}

func TestSubmitFailureKeepsSession(t *testing.T) {
	fc := &fakeClient{results: []turnResult{
		{err: &gameapi.ServerError{Status: 500, Message: "scoring backend down"}},
		{score: gameapi.Score{Black: 2}},
	}}
	reason, err, out := runController(t, fc, []string{"1234", "1234", "exit"}, Config{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(fc.submits) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(fc.submits))
	}
	if reason != EndQuit {
		t.Fatalf("expected quit, got %s", reason)
	}
	if !out.contains("scoring backend down") {
		t.Fatalf("expected server message surfaced, got %v", out.lines)
	}
	// Only the scored guess consumed an attempt.
	if !out.contains("attempt 1/10") {
		t.Fatalf("expected attempt counter at 1, got %v", out.lines)
	}
}

func TestCleanupFailureIsOnlyAWarning(t *testing.T) {
	fc := &fakeClient{deleteErr: errors.New("connection refused")}
	reason, err, out := runController(t, fc, []string{"exit"}, Config{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reason != EndQuit {
		t.Fatalf("cleanup failure changed the termination path: %s", reason)
	}
	if !out.contains("failed to release") {
		t.Fatalf("expected cleanup warning, got %v", out.lines)
	}
}

func TestCreateFailureIsFatal(t *testing.T) {
	fc := &fakeClient{createErr: &gameapi.ServerError{Status: 503, Message: "no capacity"}}
	reason, err, out := runController(t, fc, []string{"1234"}, Config{})
	if err == nil {
		t.Fatalf("expected error from failed creation")
	}
	if reason != EndNone {
		t.Fatalf("expected no reason, got %s", reason)
	}
	if len(fc.submits) != 0 || fc.deletes != 0 {
		t.Fatalf("no calls expected after failed creation: submits=%d deletes=%d", len(fc.submits), fc.deletes)
	}
	if !out.contains("no capacity") {
		t.Fatalf("expected creation error surfaced, got %v", out.lines)
	}
}

func TestInputEOFTriggersTeardown(t *testing.T) {
	fc := &fakeClient{}
	reason, err, _ := runController(t, fc, nil, Config{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reason != EndQuit {
		t.Fatalf("expected quit on EOF, got %s", reason)
	}
	if fc.deletes != 1 {
		t.Fatalf("expected delete on EOF path, got %d", fc.deletes)
	}
}

func TestNoMatchFeedback(t *testing.T) {
	fc := &fakeClient{results: []turnResult{{score: gameapi.Score{}}}}
	_, _, out := runController(t, fc, []string{"1234", "exit"}, Config{})
	if !out.contains("no matches") {
		t.Fatalf("expected explicit no-match token, got %v", out.lines)
	}
}

func TestCustomLimitsFromConfig(t *testing.T) {
	fc := &fakeClient{results: []turnResult{
		{score: gameapi.Score{White: 1}},
		{score: gameapi.Score{White: 1}},
	}}
	reason, err, _ := runController(t, fc, []string{"1111", "2222"}, Config{MaxAttempts: 2, ExitKeyword: "quit"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reason != EndExhausted {
		t.Fatalf("expected exhausted at 2 attempts, got %s", reason)
	}
	if len(fc.submits) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(fc.submits))
	}
}
