package model

// BoardState is the full rules state of one board: piece placement, both
// pockets, side to move, castling rights and the en-passant target square.
type BoardState struct {
	Board           [8][8]*Piece   `json:"board"`
	WhitePocket     Pocket         `json:"whitePocket"`
	BlackPocket     Pocket         `json:"blackPocket"`
	Turn            Color          `json:"turn"`
	Castling        CastlingRights `json:"castling"`
	EnPassantTarget *Position      `json:"enPassantTarget"`
}

// CastlingRights are monotonically non-increasing: once a flag drops it is
// never set again.
type CastlingRights struct {
	WhiteShort bool `json:"whiteShort"`
	WhiteLong  bool `json:"whiteLong"`
	BlackShort bool `json:"blackShort"`
	BlackLong  bool `json:"blackLong"`
}

type CastleSide string

const (
	CastleShort CastleSide = "short"
	CastleLong  CastleSide = "long"
)

var (
	rookDirs   = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	knightDirs = []Position{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
	kingDirs   = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
)

func NewBoardState() *BoardState {
	bs := &BoardState{
		WhitePocket: NewPocket(),
		BlackPocket: NewPocket(),
		Turn:        White,
		Castling:    CastlingRights{WhiteShort: true, WhiteLong: true, BlackShort: true, BlackLong: true},
	}
	backRow := []PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for x, kind := range backRow {
		bs.Board[0][x] = &Piece{Kind: kind, Color: Black}
		bs.Board[7][x] = &Piece{Kind: kind, Color: White}
	}
	for x := 0; x < 8; x++ {
		bs.Board[1][x] = &Piece{Kind: Pawn, Color: Black}
		bs.Board[6][x] = &Piece{Kind: Pawn, Color: White}
	}
	return bs
}

func backRank(color Color) int {
	if color == White {
		return 7
	}
	return 0
}

func pawnStartRank(color Color) int {
	if color == White {
		return 6
	}
	return 1
}

func pawnDir(color Color) int {
	if color == White {
		return -1
	}
	return 1
}

func (bs *BoardState) pieceAt(pos Position) *Piece {
	return bs.Board[pos.Y][pos.X]
}

func (bs *BoardState) pocket(color Color) Pocket {
	if color == White {
		return bs.WhitePocket
	}
	return bs.BlackPocket
}

// IsLegal dispatches to drop or board-move legality. With premove set the
// relaxed rules for staged moves apply.
func (bs *BoardState) IsLegal(move Move, premove bool) bool {
	if move.IsDrop() {
		return bs.IsLegalDrop(move.To, move.From.Kind, move.From.Color, premove)
	}
	return bs.IsLegalMove(move.From, move.To, premove)
}

// IsLegalMove validates a board move. The strict path checks ownership,
// destination, per-kind movement shape and finally that the mover's own king
// is safe after a tentative execution. The premove path keeps only the shape
// checks: turn ownership, captures of own pieces, sliding paths, pawn-capture
// occupancy and king safety may all change before the premove fires and are
// re-validated then.
func (bs *BoardState) IsLegalMove(from, to Position, premove bool) bool {
	if !from.onBoard() || !to.onBoard() || from.sameSquare(to) {
		return false
	}
	piece := bs.pieceAt(from)
	if piece == nil {
		return false
	}
	if !premove && piece.Color != bs.Turn {
		return false
	}
	if !premove {
		if dest := bs.pieceAt(to); dest != nil && dest.Color == piece.Color {
			return false
		}
	}
	if !bs.matchesShape(*piece, from, to, premove) {
		return false
	}
	if premove {
		return true
	}
	return bs.movePreservesKing(from, to)
}

func (bs *BoardState) matchesShape(piece Piece, from, to Position, premove bool) bool {
	dx := to.X - from.X
	dy := to.Y - from.Y
	switch piece.Kind {
	case Pawn:
		return bs.pawnShape(piece.Color, from, to, premove)
	case Knight:
		return (abs(dx) == 1 && abs(dy) == 2) || (abs(dx) == 2 && abs(dy) == 1)
	case Bishop:
		return abs(dx) == abs(dy) && dx != 0 && (premove || bs.clearPath(from, to))
	case Rook:
		return (dx == 0) != (dy == 0) && (premove || bs.clearPath(from, to))
	case Queen, PromotedQueen:
		diagonal := abs(dx) == abs(dy) && dx != 0
		straight := (dx == 0) != (dy == 0)
		return (diagonal || straight) && (premove || bs.clearPath(from, to))
	case King:
		if abs(dx) <= 1 && abs(dy) <= 1 {
			return true
		}
		if abs(dx) == 2 && dy == 0 {
			side := CastleShort
			if dx < 0 {
				side = CastleLong
			}
			if from.X != 4 || from.Y != backRank(piece.Color) {
				return false
			}
			if premove {
				// check safety and path attacks are re-validated at fire time
				return bs.hasCastlingRight(piece.Color, side)
			}
			return bs.CanCastle(piece.Color, side)
		}
		return false
	}
	return false
}

func (bs *BoardState) pawnShape(color Color, from, to Position, premove bool) bool {
	dir := pawnDir(color)
	dx := to.X - from.X
	dy := to.Y - from.Y
	dest := bs.pieceAt(to)
	if dx == 0 && dy == dir {
		return premove || dest == nil
	}
	if dx == 0 && dy == 2*dir && from.Y == pawnStartRank(color) {
		if premove {
			return true
		}
		return dest == nil && bs.Board[from.Y+dir][from.X] == nil
	}
	if abs(dx) == 1 && dy == dir {
		if premove {
			// assumed future capture; the target may fill up by fire time
			return true
		}
		if dest != nil {
			return true
		}
		return bs.EnPassantTarget != nil && to.sameSquare(*bs.EnPassantTarget)
	}
	return false
}

func (bs *BoardState) clearPath(from, to Position) bool {
	dx := sign(to.X - from.X)
	dy := sign(to.Y - from.Y)
	x, y := from.X+dx, from.Y+dy
	for x != to.X || y != to.Y {
		if bs.Board[y][x] != nil {
			return false
		}
		x += dx
		y += dy
	}
	return true
}

// movePreservesKing tentatively executes the move (including removal of an
// en-passant-captured pawn), tests the mover's own king and restores the
// board exactly as it was.
func (bs *BoardState) movePreservesKing(from, to Position) bool {
	piece := bs.Board[from.Y][from.X]
	captured := bs.Board[to.Y][to.X]
	var epCaptured *Piece
	if piece.Kind == Pawn && captured == nil && from.X != to.X &&
		bs.EnPassantTarget != nil && to.sameSquare(*bs.EnPassantTarget) {
		epCaptured = bs.Board[from.Y][to.X]
		bs.Board[from.Y][to.X] = nil
	}
	bs.Board[to.Y][to.X] = piece
	bs.Board[from.Y][from.X] = nil
	safe := !bs.InCheck(piece.Color)
	bs.Board[from.Y][from.X] = piece
	bs.Board[to.Y][to.X] = captured
	if epCaptured != nil {
		bs.Board[from.Y][to.X] = epCaptured
	}
	return safe
}

// IsLegalDrop validates placing kind from color's pocket onto pos. Pawns may
// never be dropped on either back rank. The premove path keeps only that
// constraint; occupancy, pocket count and king safety are re-checked when
// the premove fires.
func (bs *BoardState) IsLegalDrop(pos Position, kind PieceKind, color Color, premove bool) bool {
	if !pos.onBoard() {
		return false
	}
	if kind == King || kind == PromotedQueen {
		return false
	}
	if kind == Pawn && (pos.Y == 0 || pos.Y == 7) {
		return false
	}
	if premove {
		return true
	}
	if bs.pieceAt(pos) != nil {
		return false
	}
	if bs.Turn != color {
		return false
	}
	if bs.pocket(color).Count(kind) == 0 {
		return false
	}
	bs.Board[pos.Y][pos.X] = &Piece{Kind: kind, Color: color}
	safe := !bs.InCheck(color)
	bs.Board[pos.Y][pos.X] = nil
	return safe
}

// CanCastle reports whether color may castle to side right now: the right is
// still flagged, king and rook sit on their home squares, the path between
// them is empty, and no square the king transits (start included) is
// attacked.
func (bs *BoardState) CanCastle(color Color, side CastleSide) bool {
	if !bs.hasCastlingRight(color, side) {
		return false
	}
	row := backRank(color)
	king := bs.Board[row][4]
	if king == nil || king.Kind != King || king.Color != color {
		return false
	}
	rookX := 7
	between := []int{5, 6}
	transit := []int{4, 5, 6}
	if side == CastleLong {
		rookX = 0
		between = []int{1, 2, 3}
		transit = []int{4, 3, 2}
	}
	rook := bs.Board[row][rookX]
	if rook == nil || rook.Kind != Rook || rook.Color != color {
		return false
	}
	for _, x := range between {
		if bs.Board[row][x] != nil {
			return false
		}
	}
	for _, x := range transit {
		if bs.isSquareAttacked(color.Other(), Sq(x, row)) {
			return false
		}
	}
	return true
}

func (bs *BoardState) hasCastlingRight(color Color, side CastleSide) bool {
	switch {
	case color == White && side == CastleShort:
		return bs.Castling.WhiteShort
	case color == White && side == CastleLong:
		return bs.Castling.WhiteLong
	case color == Black && side == CastleShort:
		return bs.Castling.BlackShort
	default:
		return bs.Castling.BlackLong
	}
}

func (bs *BoardState) clearCastlingRight(color Color, side CastleSide) {
	switch {
	case color == White && side == CastleShort:
		bs.Castling.WhiteShort = false
	case color == White && side == CastleLong:
		bs.Castling.WhiteLong = false
	case color == Black && side == CastleShort:
		bs.Castling.BlackShort = false
	default:
		bs.Castling.BlackLong = false
	}
}

// clearRookRight drops the right matching a rook leaving (or being captured
// on) one of its home squares.
func (bs *BoardState) clearRookRight(color Color, pos Position) {
	if pos.Y != backRank(color) {
		return
	}
	switch pos.X {
	case 7:
		bs.clearCastlingRight(color, CastleShort)
	case 0:
		bs.clearCastlingRight(color, CastleLong)
	}
}

// DoMove executes the move unconditionally; callers must have checked
// legality first. The returned piece is what a capture feeds into a pocket,
// so a captured promoted queen is reported as a pawn of the same color. With
// premove set the turn does not advance.
func (bs *BoardState) DoMove(move Move, premove bool) *Piece {
	if move.IsDrop() {
		bs.pocket(move.From.Color).Remove(move.From.Kind)
		bs.Board[move.To.Y][move.To.X] = &Piece{Kind: move.From.Kind, Color: move.From.Color}
		bs.EnPassantTarget = nil
		if !premove {
			bs.Turn = bs.Turn.Other()
		}
		return nil
	}

	from, to := move.From, move.To
	piece := bs.Board[from.Y][from.X]
	captured := bs.Board[to.Y][to.X]
	// en passant removes the passed pawn, not the target square
	if piece.Kind == Pawn && captured == nil && from.X != to.X &&
		bs.EnPassantTarget != nil && to.sameSquare(*bs.EnPassantTarget) {
		captured = bs.Board[from.Y][to.X]
		bs.Board[from.Y][to.X] = nil
	}
	bs.Board[to.Y][to.X] = piece
	bs.Board[from.Y][from.X] = nil

	if piece.Kind == King && abs(to.X-from.X) == 2 {
		bs.castleRookHop(from.Y, to.X)
	}
	if piece.Kind == Pawn && (to.Y == 0 || to.Y == 7) {
		bs.Board[to.Y][to.X] = &Piece{Kind: PromotedQueen, Color: piece.Color}
	}

	// the target only survives until the very next move or drop
	if piece.Kind == Pawn && abs(to.Y-from.Y) == 2 {
		target := Sq(from.X, (from.Y+to.Y)/2)
		bs.EnPassantTarget = &target
	} else {
		bs.EnPassantTarget = nil
	}

	switch piece.Kind {
	case King:
		bs.clearCastlingRight(piece.Color, CastleShort)
		bs.clearCastlingRight(piece.Color, CastleLong)
	case Rook:
		bs.clearRookRight(piece.Color, from)
	}
	if captured != nil && captured.Kind == Rook {
		bs.clearRookRight(captured.Color, to)
	}

	if !premove {
		bs.Turn = bs.Turn.Other()
	}
	if captured == nil {
		return nil
	}
	return &Piece{Kind: captured.capturedKind(), Color: captured.Color}
}

func (bs *BoardState) castleRookHop(row, kingX int) {
	switch kingX {
	case 6:
		rook := bs.Board[row][7]
		bs.Board[row][7] = nil
		bs.Board[row][5] = rook
	case 2:
		rook := bs.Board[row][0]
		bs.Board[row][0] = nil
		bs.Board[row][3] = rook
	}
}

func (bs *BoardState) InCheck(color Color) bool {
	return bs.isSquareAttacked(color.Other(), bs.kingSquare(color))
}

// kingSquare panics when the king is missing. Every reachable position holds
// exactly one king per color (kings are never captured), so a miss is an
// engine bug, not bad input.
func (bs *BoardState) kingSquare(color Color) Position {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if p := bs.Board[y][x]; p != nil && p.Kind == King && p.Color == color {
				return Sq(x, y)
			}
		}
	}
	panic("model: board has no " + string(color) + " king")
}

func (bs *BoardState) isSquareAttacked(attacker Color, pos Position) bool {
	for _, dir := range rookDirs {
		x, y := pos.X+dir.X, pos.Y+dir.Y
		for x >= 0 && x < 8 && y >= 0 && y < 8 {
			if p := bs.Board[y][x]; p != nil {
				if p.Color == attacker && (p.Kind == Rook || p.Kind == Queen || p.Kind == PromotedQueen) {
					return true
				}
				break
			}
			x += dir.X
			y += dir.Y
		}
	}
	for _, dir := range bishopDirs {
		x, y := pos.X+dir.X, pos.Y+dir.Y
		for x >= 0 && x < 8 && y >= 0 && y < 8 {
			if p := bs.Board[y][x]; p != nil {
				if p.Color == attacker && (p.Kind == Bishop || p.Kind == Queen || p.Kind == PromotedQueen) {
					return true
				}
				break
			}
			x += dir.X
			y += dir.Y
		}
	}
	for _, dir := range knightDirs {
		x, y := pos.X+dir.X, pos.Y+dir.Y
		if x >= 0 && x < 8 && y >= 0 && y < 8 {
			if p := bs.Board[y][x]; p != nil && p.Color == attacker && p.Kind == Knight {
				return true
			}
		}
	}
	for _, dir := range kingDirs {
		x, y := pos.X+dir.X, pos.Y+dir.Y
		if x >= 0 && x < 8 && y >= 0 && y < 8 {
			if p := bs.Board[y][x]; p != nil && p.Color == attacker && p.Kind == King {
				return true
			}
		}
	}
	// a pawn attacks the two squares diagonally ahead of it
	pawnRow := pos.Y - pawnDir(attacker)
	if pawnRow >= 0 && pawnRow < 8 {
		for _, dx := range []int{-1, 1} {
			x := pos.X + dx
			if x >= 0 && x < 8 {
				if p := bs.Board[pawnRow][x]; p != nil && p.Color == attacker && p.Kind == Pawn {
					return true
				}
			}
		}
	}
	return false
}

// IsCheckmate re-derives the answer from scratch each call: the side to move
// is mated only when it is in check and no board move and no pocket drop
// escapes.
func (bs *BoardState) IsCheckmate() bool {
	if !bs.InCheck(bs.Turn) {
		return false
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			piece := bs.Board[y][x]
			if piece == nil || piece.Color != bs.Turn {
				continue
			}
			for ty := 0; ty < 8; ty++ {
				for tx := 0; tx < 8; tx++ {
					if bs.IsLegalMove(Sq(x, y), Sq(tx, ty), false) {
						return false
					}
				}
			}
		}
	}
	for kind := range bs.pocket(bs.Turn) {
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				if bs.IsLegalDrop(Sq(x, y), kind, bs.Turn, false) {
					return false
				}
			}
		}
	}
	return true
}

func (bs *BoardState) Clone() *BoardState {
	clone := &BoardState{
		WhitePocket: bs.WhitePocket.Clone(),
		BlackPocket: bs.BlackPocket.Clone(),
		Turn:        bs.Turn,
		Castling:    bs.Castling,
	}
	for y := range bs.Board {
		for x, piece := range bs.Board[y] {
			if piece != nil {
				p := *piece
				clone.Board[y][x] = &p
			}
		}
	}
	if bs.EnPassantTarget != nil {
		target := *bs.EnPassantTarget
		clone.EnPassantTarget = &target
	}
	return clone
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
