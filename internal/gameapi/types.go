package gameapi

// Score is the server's verdict on a guess. Black counts digits correct in
// both value and position, White counts digits correct in value only.
type Score struct {
	Black int `json:"black"`
	White int `json:"white"`
}

type createGameResponse struct {
	GameID string `json:"game_id"`
}

type guessRequest struct {
	GameID string `json:"game_id"`
	Guess  string `json:"guess"`
}

type errorResponse struct {
	Error string `json:"error"`
}
