// Package uci implements the Universal Chess Interface text protocol.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/bearchess/bear/internal/board"
	"github.com/bearchess/bear/internal/engine"
	"github.com/bearchess/bear/internal/storage"
)

const (
	engineName   = "Bear"
	engineAuthor = "Bear contributors"
)

// UCI wires the engine to a GUI over the text protocol. Reading and writing
// are injectable so the handler can be driven from tests.
type UCI struct {
	engine   *engine.Engine
	position *board.Position
	store    *storage.Store // optional, nil disables persistence

	in  io.Reader
	out io.Writer

	searchDone chan struct{}
	lastDepth  int
}

// New creates a protocol handler. store may be nil.
func New(eng *engine.Engine, store *storage.Store, in io.Reader, out io.Writer) *UCI {
	return &UCI{
		engine:   eng,
		position: board.NewPosition(),
		store:    store,
		in:       in,
		out:      out,
	}
}

// Run processes commands until quit or end of input. It blocks the caller;
// searches run on their own goroutine so stop can interrupt them.
func (u *UCI) Run() {
	scanner := bufio.NewScanner(u.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.println("readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "setoption":
			u.handleSetOption(args)
		case "quit":
			u.handleStop()
			return
		// Debug commands
		case "d":
			u.println(u.position.String())
		case "perft":
			u.handlePerft(args)
		case "eval":
			_, score := u.engine.RunSearch(u.position.Copy(), engine.SearchLimits{Depth: 1})
			u.println("info string eval " + engine.ScoreToString(score))
		}
	}
}

func (u *UCI) println(s string) {
	fmt.Fprintln(u.out, s)
}

func (u *UCI) handleUCI() {
	u.println("id name " + engineName)
	u.println("id author " + engineAuthor)
	u.println("")
	u.println("option name Hash type spin default 64 min 1 max 4096")
	u.println("uciok")
}

func (u *UCI) handleNewGame() {
	u.waitForSearch()
	u.engine.NewGame()
	u.position = board.NewPosition()
}

// handlePosition sets up the board. Formats:
//
//	position startpos [moves ...]
//	position fen <fen> [moves ...]
//
// Moves that do not parse or are illegal are discarded along with the rest
// of the move list; the position stays at the last valid state.
func (u *UCI) handlePosition(args []string) {
	u.waitForSearch()
	if len(args) == 0 {
		return
	}

	movesIdx := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesIdx = i
			break
		}
	}
	moveStart := movesIdx + 1
	if moveStart > len(args) {
		moveStart = len(args)
	}

	switch args[0] {
	case "startpos":
		u.position = board.NewPosition()
	case "fen":
		u.position = &board.Position{}
		u.position.LoadFEN(strings.Join(args[1:movesIdx], " "))
	default:
		return
	}

	for _, moveStr := range args[moveStart:] {
		m, err := board.ParseMove(moveStr, u.position)
		if err != nil {
			u.println("info string invalid move " + moveStr)
			return
		}
		if _, ok := u.position.MakeMove(m); !ok {
			u.println("info string illegal move " + moveStr)
			return
		}
	}
}

func (u *UCI) handleGo(args []string) {
	u.waitForSearch()

	limits := engine.AllocateTime(parseGoArgs(args), u.position.SideToMove, u.position.HistoryPly)

	u.lastDepth = 0
	u.engine.OnInfo = func(info engine.SearchInfo) {
		u.lastDepth = info.Depth
		u.sendInfo(info)
	}

	pos := u.position.Copy()
	u.searchDone = make(chan struct{})

	go func() {
		defer close(u.searchDone)

		start := time.Now()
		bestMove, _ := u.engine.RunSearch(pos, limits)
		u.recordSearch(start)

		if bestMove == board.NoMove {
			u.println("bestmove 0000")
			return
		}
		u.println("bestmove " + bestMove.String())
	}()
}

func (u *UCI) handleStop() {
	u.engine.Stop()
	u.waitForSearch()
}

// waitForSearch blocks until the running search, if any, has printed its
// best move. Commands that mutate engine or position state must not race it.
func (u *UCI) waitForSearch() {
	if u.searchDone != nil {
		<-u.searchDone
		u.searchDone = nil
	}
}

func (u *UCI) handleSetOption(args []string) {
	// setoption name <id> value <x>
	var name, value string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "name":
			if i+1 < len(args) {
				name = args[i+1]
			}
		case "value":
			if i+1 < len(args) {
				value = args[i+1]
			}
		}
	}

	switch strings.ToLower(name) {
	case "hash":
		mb, err := strconv.Atoi(value)
		if err != nil || mb < 1 {
			u.println("info string invalid Hash value " + value)
			return
		}
		u.waitForSearch()
		u.engine.ResizeTable(mb)
		if u.store != nil {
			opts, _ := u.store.LoadOptions()
			opts.HashSizeMB = mb
			if err := u.store.SaveOptions(opts); err != nil {
				log.Printf("uci: persist options: %v", err)
			}
		}
	}
}

func (u *UCI) handlePerft(args []string) {
	depth := 1
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil && d > 0 {
			depth = d
		}
	}

	start := time.Now()
	var total uint64
	for move, nodes := range board.PerftDivide(u.position, depth) {
		u.println(fmt.Sprintf("%s: %d", move, nodes))
		total += nodes
	}
	u.println(fmt.Sprintf("nodes %d in %v", total, time.Since(start).Round(time.Millisecond)))
}

// recordSearch folds the finished search into the persisted statistics.
func (u *UCI) recordSearch(start time.Time) {
	if u.store == nil {
		return
	}
	stats, err := u.store.LoadStats()
	if err != nil {
		log.Printf("uci: load stats: %v", err)
		return
	}
	stats.Searches++
	stats.Nodes += u.engine.Nodes()
	if u.lastDepth > stats.MaxDepth {
		stats.MaxDepth = u.lastDepth
	}
	stats.TotalTime += time.Since(start)
	if err := u.store.SaveStats(stats); err != nil {
		log.Printf("uci: persist stats: %v", err)
	}
}

func parseGoArgs(args []string) engine.UCILimits {
	limits := engine.UCILimits{}

	ms := func(s string) time.Duration {
		n, _ := strconv.Atoi(s)
		return time.Duration(n) * time.Millisecond
	}

	for i := 0; i < len(args); i++ {
		next := ""
		if i+1 < len(args) {
			next = args[i+1]
		}

		switch args[i] {
		case "depth":
			limits.Depth, _ = strconv.Atoi(next)
			i++
		case "nodes":
			limits.Nodes, _ = strconv.ParseUint(next, 10, 64)
			i++
		case "movetime":
			limits.MoveTime = ms(next)
			i++
		case "wtime":
			limits.Time[board.White] = ms(next)
			i++
		case "btime":
			limits.Time[board.Black] = ms(next)
			i++
		case "winc":
			limits.Inc[board.White] = ms(next)
			i++
		case "binc":
			limits.Inc[board.Black] = ms(next)
			i++
		case "movestogo":
			limits.MovesToGo, _ = strconv.Atoi(next)
			i++
		case "infinite":
			limits.Infinite = true
		}
	}
	return limits
}

// sendInfo prints one UCI info line for a completed iteration.
func (u *UCI) sendInfo(info engine.SearchInfo) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "info depth %d", info.Depth)

	switch {
	case info.Score > engine.MateScore-engine.MaxPly:
		fmt.Fprintf(&sb, " score mate %d", (engine.MateScore-info.Score+1)/2)
	case info.Score < -engine.MateScore+engine.MaxPly:
		fmt.Fprintf(&sb, " score mate %d", -(engine.MateScore+info.Score+1)/2)
	default:
		fmt.Fprintf(&sb, " score cp %d", info.Score)
	}

	fmt.Fprintf(&sb, " nodes %d time %d", info.Nodes, info.Time.Milliseconds())
	if info.Time > 0 {
		fmt.Fprintf(&sb, " nps %d", uint64(float64(info.Nodes)/info.Time.Seconds()))
	}
	fmt.Fprintf(&sb, " hashfull %d", info.HashFull)

	if len(info.PV) > 0 {
		sb.WriteString(" pv")
		for _, m := range info.PV {
			sb.WriteString(" " + m.String())
		}
	}

	u.println(sb.String())
}
