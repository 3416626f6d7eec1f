package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julienbrg/game-of-go/internal/domain/game"
	sgf "github.com/julienbrg/game-of-go/internal/domain/sgf"
)

// PrepareSgfFile builds the root node of a game record.
func PrepareSgfFile(rec game.Record) sgf.SGF {
	return sgf.SGF{
		Root: &sgf.GameTree{
			Nodes: []sgf.Node{
				{
					Properties: map[string][]string{
						"FF": {"4"},
						"GM": {"1"},
						"SZ": {strconv.Itoa(game.BoardSide)},
						"PB": {rec.PlayerBlack},
						"PW": {rec.PlayerWhite},
						"DT": {rec.CreatedAt.Format("2006-01-02")},
						"KM": {strconv.FormatFloat(rec.Komi, 'f', 1, 64)},
						"RU": {"Chinese"},
					},
				},
			},
		},
	}
}

func SerializeSGF(s *sgf.SGF) string {
	var builder strings.Builder
	builder.WriteString("(")
	serializeGameTree(&builder, s.Root)
	builder.WriteString(")")
	return builder.String()
}

func serializeGameTree(builder *strings.Builder, tree *sgf.GameTree) {
	for _, node := range tree.Nodes {
		builder.WriteString(";")

		// фиксированный порядок свойств SGF
		orderedKeys := []string{"FF", "GM", "SZ", "PB", "PW", "DT", "RE", "KM", "RU", "C", "B", "W"}
		used := make(map[string]bool)
		for _, key := range orderedKeys {
			if values, ok := node.Properties[key]; ok {
				used[key] = true
				for _, v := range values {
					builder.WriteString(fmt.Sprintf("%s[%s]", key, v))
				}
			}
		}

		for key, values := range node.Properties {
			if !used[key] {
				for _, v := range values {
					builder.WriteString(fmt.Sprintf("%s[%s]", key, v))
				}
			}
		}
	}

	for _, child := range tree.Children {
		builder.WriteString("(")
		serializeGameTree(builder, child)
		builder.WriteString(")")
	}
}

// CoordsToSgf maps board coordinates to SGF letters, (0,0) -> "aa".
func CoordsToSgf(x, y int) string {
	return string([]byte{byte('a' + x), byte('a' + y)})
}

// SgfToCoords is the inverse of CoordsToSgf. ok is false for a pass (empty
// value) or malformed input.
func SgfToCoords(s string) (x, y int, ok bool) {
	if len(s) != 2 {
		return 0, 0, false
	}
	x = int(s[0] - 'a')
	y = int(s[1] - 'a')
	if game.IsOffBoard(x, y) {
		return 0, 0, false
	}
	return x, y, true
}

// AppendMoveToSgf appends ;B[xy] or ;W[xy] to a serialized record.
func AppendMoveToSgf(sgfText string, colorLetter string, x, y int) string {
	if strings.HasSuffix(sgfText, ")") {
		sgfText = sgfText[:len(sgfText)-1]
	}
	return sgfText + fmt.Sprintf(";%s[%s])", colorLetter, CoordsToSgf(x, y))
}

// AppendPassToSgf appends a pass node, ;B[] or ;W[].
func AppendPassToSgf(sgfText string, colorLetter string) string {
	if strings.HasSuffix(sgfText, ")") {
		sgfText = sgfText[:len(sgfText)-1]
	}
	return sgfText + fmt.Sprintf(";%s[])", colorLetter)
}

// ReplayMovesFromSgf re-applies the move nodes of a serialized record to a
// fresh engine. Only the flat main line our serializer produces is
// understood: move nodes carry a single B or W property.
func ReplayMovesFromSgf(sgfText string, eng *game.Game, black, white string) error {
	for _, node := range strings.Split(sgfText, ";") {
		node = strings.TrimSuffix(strings.TrimSpace(node), ")")

		var caller string
		switch {
		case strings.HasPrefix(node, "B["):
			caller = black
		case strings.HasPrefix(node, "W["):
			caller = white
		default:
			continue
		}

		end := strings.IndexByte(node, ']')
		if end < 0 {
			return fmt.Errorf("malformed sgf node %q", node)
		}
		value := node[2:end]

		if value == "" {
			if err := eng.Pass(caller); err != nil {
				return fmt.Errorf("replay pass: %w", err)
			}
			continue
		}

		x, y, ok := SgfToCoords(value)
		if !ok {
			return fmt.Errorf("malformed sgf coordinates %q", value)
		}
		if err := eng.Play(caller, x, y); err != nil {
			return fmt.Errorf("replay move %q: %w", value, err)
		}
	}
	return nil
}
