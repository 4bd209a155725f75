// Command chessrules is an interactive console for the rules engine: set up
// positions, list legal moves, apply and undo moves, and save or load games.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/fen"
	"github.com/hailam/chessrules/internal/storage"
)

var (
	startFEN = flag.String("fen", fen.StartingPosition, "initial position in FEN")
	dbDir    = flag.String("db", "", "database directory (default: platform data dir)")
)

func main() {
	flag.Parse()

	c, err := newConsole(*startFEN)
	if err != nil {
		log.Fatal(err)
	}
	defer c.close()

	c.run()
}

// console holds the interactive session state.
type console struct {
	board    *board.Board
	startFEN string
	moves    []string // coordinate notation of applied moves, for saving
	store    *storage.Storage
}

func newConsole(startPos string) (*console, error) {
	b, err := fen.Parse(startPos)
	if err != nil {
		return nil, fmt.Errorf("invalid starting position: %w", err)
	}
	return &console{board: b, startFEN: startPos}, nil
}

func (c *console) close() {
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			log.Printf("closing storage: %v", err)
		}
	}
}

// storage opens the database on first use.
func (c *console) storage() (*storage.Storage, error) {
	if c.store != nil {
		return c.store, nil
	}
	var err error
	if *dbDir != "" {
		c.store, err = storage.Open(*dbDir)
	} else {
		c.store, err = storage.NewStorage()
	}
	return c.store, err
}

func (c *console) run() {
	fmt.Println(c.board)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "new":
			c.setup(fen.StartingPosition)
		case "fen":
			c.setup(strings.Join(args, " "))
		case "d":
			fmt.Println(c.board)
		case "moves":
			c.handleMoves(args)
		case "move":
			c.handleMove(args)
		case "undo":
			c.handleUndo()
		case "save":
			c.handleSave(args)
		case "load":
			c.handleLoad(args)
		case "games":
			c.handleGames()
		case "stats":
			c.handleStats()
		case "help":
			printHelp()
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command %q (try help)\n", cmd)
		}
	}
}

func (c *console) setup(position string) {
	b, err := fen.Parse(position)
	if err != nil {
		fmt.Println(err)
		return
	}
	c.board = b
	c.startFEN = position
	c.moves = nil
	fmt.Println(c.board)
}

// handleMoves lists legal moves, for one square or the whole side to move.
func (c *console) handleMoves(args []string) {
	var moves []*board.Move
	if len(args) > 0 {
		sq, err := board.ParseSquare(args[0])
		if err != nil {
			fmt.Println(err)
			return
		}
		moves = c.board.LegalMoves(c.board.GetTile(sq))
	} else {
		moves = c.board.AllLegalMoves()
	}

	for _, m := range moves {
		fmt.Printf("  %-6s %s\n", m.Coord(), m)
	}
	fmt.Printf("%d legal moves\n", len(moves))
}

func (c *console) handleMove(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: move <from><to>[promotion], e.g. move e2e4 or move e7e8q")
		return
	}

	m, err := findByCoord(c.board, args[0])
	if err != nil {
		fmt.Println(err)
		return
	}

	c.board.MakeMove(m)
	c.moves = append(c.moves, m.Coord())
	fmt.Println(c.board)

	if m.CheckType != board.NoCheck {
		fmt.Printf("%s\n", m.CheckType)
	}
	if m.CheckType.Terminal() {
		c.recordResult(m)
	}
}

func (c *console) handleUndo() {
	if c.board.HistoryLen() == 0 {
		fmt.Println("nothing to undo")
		return
	}
	c.board.UndoLastMove()
	if n := len(c.moves); n > 0 {
		c.moves = c.moves[:n-1]
	}
	fmt.Println(c.board)
}

func (c *console) handleSave(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: save <name>")
		return
	}
	store, err := c.storage()
	if err != nil {
		fmt.Println(err)
		return
	}

	g := &storage.SavedGame{
		Name:     args[0],
		StartFEN: c.startFEN,
		Moves:    append([]string(nil), c.moves...),
	}
	if last := c.board.LastMove(); last != nil && last.CheckType.Terminal() {
		g.Result = last.CheckType.String()
	}
	if err := store.SaveGame(g); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("saved %q (%d moves)\n", g.Name, len(g.Moves))
}

func (c *console) handleLoad(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: load <name>")
		return
	}
	store, err := c.storage()
	if err != nil {
		fmt.Println(err)
		return
	}

	g, err := store.LoadGame(args[0])
	if err != nil {
		fmt.Println(err)
		return
	}

	b, err := fen.Parse(g.StartFEN)
	if err != nil {
		fmt.Printf("saved game %q has a bad position: %v\n", g.Name, err)
		return
	}
	for i, coord := range g.Moves {
		m, err := findByCoord(b, coord)
		if err != nil {
			fmt.Printf("saved game %q broken at move %d: %v\n", g.Name, i+1, err)
			return
		}
		b.MakeMove(m)
	}

	c.board = b
	c.startFEN = g.StartFEN
	c.moves = append([]string(nil), g.Moves...)
	fmt.Println(c.board)
}

func (c *console) handleGames() {
	store, err := c.storage()
	if err != nil {
		fmt.Println(err)
		return
	}
	names, err := store.ListGames()
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, name := range names {
		fmt.Println("  " + name)
	}
	fmt.Printf("%d saved games\n", len(names))
}

func (c *console) handleStats() {
	store, err := c.storage()
	if err != nil {
		fmt.Println(err)
		return
	}
	stats, err := store.LoadStats()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("games: %d  white: %d  black: %d  draws: %d (%.0f%%)\n",
		stats.GamesPlayed, stats.WhiteWins, stats.BlackWins, stats.Draws, stats.DrawRate())
	for term, n := range stats.ByTermination {
		fmt.Printf("  %s: %d\n", term, n)
	}
}

// recordResult updates stored statistics when a game reaches a terminal state.
func (c *console) recordResult(last *board.Move) {
	store, err := c.storage()
	if err != nil {
		log.Printf("stats not recorded: %v", err)
		return
	}

	result := storage.GameResult{
		Termination: last.CheckType.String(),
		Plies:       c.board.HistoryLen(),
	}
	if last.CheckType == board.Checkmate {
		result.Winner = strings.ToLower(last.Piece.Color.String())
	}
	if err := store.RecordGame(result); err != nil {
		log.Printf("stats not recorded: %v", err)
	}
}

// findByCoord resolves coordinate notation ("e2e4", "e7e8q") against the
// board's legal moves.
func findByCoord(b *board.Board, s string) (*board.Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return nil, fmt.Errorf("invalid move: %s", s)
	}
	from, err := board.ParseSquare(s[0:2])
	if err != nil {
		return nil, err
	}
	to, err := board.ParseSquare(s[2:4])
	if err != nil {
		return nil, err
	}

	promo := board.NoPieceType
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = board.Knight
		case 'b':
			promo = board.Bishop
		case 'r':
			promo = board.Rook
		case 'q':
			promo = board.Queen
		default:
			return nil, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
	}

	m := b.FindMove(from, to, promo)
	if m == nil {
		return nil, fmt.Errorf("illegal move: %s", s)
	}
	return m, nil
}

func printHelp() {
	fmt.Print(`commands:
  new              start position
  fen <FEN>        set up a position
  d                display the board
  moves [square]   list legal moves
  move <coord>     apply a move (e2e4, e7e8q)
  undo             take back the last move
  save <name>      save the game
  load <name>      load a saved game
  games            list saved games
  stats            show recorded statistics
  quit             exit
`)
}
