package display

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/lox/pokerdraw/internal/estimator"
)

// BatchLine formats one line of batch output: the input echoed back,
// then the hand's classification and the improvement percentage for
// each card in the input's order.
func BatchLine(input string, result estimator.Result) string {
	var b strings.Builder
	b.WriteString(input)
	b.WriteString(" >>>")
	b.WriteString(result.Baseline.Category.String())
	for _, p := range result.Improvements {
		fmt.Fprintf(&b, " %.1f%%", p)
	}
	return b.String()
}

// BatchErrorLine formats a batch line whose input was not a valid hand.
func BatchErrorLine(input string) string {
	return input + " >>>Error"
}

// Report renders a styled analysis of a single hand. The strongest
// improvement is highlighted so the best discard stands out.
func Report(w io.Writer, result estimator.Result) {
	fmt.Fprintf(w, "%s  %s\n\n",
		handStyle.Render(result.Hand.String()),
		categoryStyle.Render(result.Baseline.Category.String()))

	best := -1.0
	for _, p := range result.Improvements {
		if p > best {
			best = p
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n",
		headerStyle.Render("discard"),
		headerStyle.Render("improve"))

	for i, card := range result.Hand.Cards() {
		pct := fmt.Sprintf("%.1f%%", result.Improvements[i])
		style := percentStyle
		if result.Improvements[i] == best && best > 0 {
			style = bestStyle
		}
		fmt.Fprintf(tw, "%s\t%s\n", handStyle.Render(card.String()), style.Render(pct))
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d trials per position in %v\n",
		result.Trials, result.Elapsed.Truncate(time.Millisecond))
}
