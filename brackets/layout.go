package brackets

import "fmt"

const (
	matchWidth    = 200
	matchHeight   = 60
	horizontalGap = 100
	verticalGap   = 20
	canvasMargin  = 100

	originX   = 50
	titleY    = 20
	firstRowY = 60

	// EmptySlotLabel is drawn for slots without a team.
	EmptySlotLabel = "TBD"
)

// Column is the heading drawn above one round.
type Column struct {
	Title string
	X     int
	Y     int
}

// MatchBox is one match placed on the canvas. Winner is 1 or 2 when a slot
// won the match, 0 otherwise.
type MatchBox struct {
	Round  int
	Index  int
	X      int
	Y      int
	Width  int
	Height int
	Top    string
	Bottom string
	Winner int
}

// MidY is the y coordinate of the divider between the two slots.
func (b MatchBox) MidY() int {
	return b.Y + b.Height/2
}

type Segment struct {
	X1, Y1, X2, Y2 int
}

// Layout is the geometry of a single elimination bracket image.
type Layout struct {
	Width   int
	Height  int
	Columns []Column
	Boxes   []MatchBox
	Lines   []Segment
}

// ComputeLayout places every match of a single elimination plan.
//
// Rounds are laid out left to right. In round r the distance between two
// boxes is 2^r times the first-round pitch and the column is shifted down by
// half the extra distance, which centres each box between the two boxes that
// feed it. Sibling matches are joined by a vertical segment halfway between
// the columns and a single horizontal segment enters the parent box.
func ComputeLayout(p *Plan) (*Layout, error) {
	if p == nil || p.Kind != KindSingleElimination {
		kind := Kind("")
		if p != nil {
			kind = p.Kind
		}
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRenderTarget, kind)
	}
	if len(p.Rounds) == 0 {
		return nil, fmt.Errorf("%w: bracket has no rounds", ErrUnsupportedRenderTarget)
	}

	maxMatches := 0
	for _, r := range p.Rounds {
		if len(r.Matches) > maxMatches {
			maxMatches = len(r.Matches)
		}
	}

	const pitch = matchHeight + verticalGap
	l := &Layout{
		Width:  len(p.Rounds)*(matchWidth+horizontalGap) + canvasMargin,
		Height: maxMatches*pitch + canvasMargin,
	}

	x := originX
	for r, round := range p.Rounds {
		l.Columns = append(l.Columns, Column{Title: round.Name, X: x, Y: titleY})

		spacing := pitch << r
		offset := (spacing - pitch) / 2
		last := r == len(p.Rounds)-1
		junctionX := x + matchWidth + horizontalGap/2
		nextX := x + matchWidth + horizontalGap

		for i, m := range round.Matches {
			box := MatchBox{
				Round:  r,
				Index:  i,
				X:      x,
				Y:      firstRowY + offset + i*spacing,
				Width:  matchWidth,
				Height: matchHeight,
				Top:    slotLabel(m.Team1),
				Bottom: slotLabel(m.Team2),
				Winner: winnerSlot(m),
			}
			l.Boxes = append(l.Boxes, box)

			if last {
				continue
			}
			mid := box.MidY()
			l.Lines = append(l.Lines, Segment{X1: x + matchWidth, Y1: mid, X2: junctionX, Y2: mid})
			if i%2 == 1 {
				prevMid := mid - spacing
				parentMid := (prevMid + mid) / 2
				l.Lines = append(l.Lines,
					Segment{X1: junctionX, Y1: prevMid, X2: junctionX, Y2: mid},
					Segment{X1: junctionX, Y1: parentMid, X2: nextX, Y2: parentMid},
				)
			}
		}
		x = nextX
	}
	return l, nil
}

func slotLabel(t *Team) string {
	if t == nil {
		return EmptySlotLabel
	}
	return t.Name
}

func winnerSlot(m Match) int {
	switch {
	case m.Winner == nil:
		return 0
	case m.Team1 != nil && m.Team1.ID == m.Winner.ID:
		return 1
	case m.Team2 != nil && m.Team2.ID == m.Winner.ID:
		return 2
	}
	return 0
}
