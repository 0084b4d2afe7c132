package web

import (
	"net/url"

	"github.com/gorilla/schema"

	"github.com/vovakirdan/gemfall/internal/games/match3/engine"
	"github.com/vovakirdan/gemfall/internal/games/match3/session"
)

// Command types sent by clients over the websocket.
const (
	CmdTap     = "tap"
	CmdShuffle = "shuffle"
	CmdRestart = "restart"
	CmdHint    = "hint"
	CmdStart   = "start"
	CmdNext    = "next"
)

// Command is one client request.
type Command struct {
	Type  string `json:"type"`
	Col   int    `json:"col"`
	Row   int    `json:"row"`
	Level int    `json:"level,omitempty"` // start only
}

// Reply is sent after every command and whenever the clock changes the game.
type Reply struct {
	Game     string           `json:"game"`
	Result   *session.Result  `json:"result,omitempty"`
	Hint     *engine.Move     `json:"hint,omitempty"`
	Error    string           `json:"error,omitempty"`
	Snapshot session.Snapshot `json:"snapshot"`
}

// NewGameParams are the query parameters of POST /api/games.
type NewGameParams struct {
	Level int   `schema:"level"`
	Seed  int64 `schema:"seed"`
}

// RunsParams are the query parameters of GET /api/runs.
type RunsParams struct {
	Game  string `schema:"game"`
	Limit int    `schema:"limit"`
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

func decodeNewGameParams(src url.Values) (NewGameParams, error) {
	var p NewGameParams
	err := decoder.Decode(&p, src)
	if p.Level < 1 {
		p.Level = 1
	}
	return p, err
}

func decodeRunsParams(src url.Values) (RunsParams, error) {
	var p RunsParams
	err := decoder.Decode(&p, src)
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	return p, err
}
