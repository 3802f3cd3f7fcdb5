package notify

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kkyungseo/support-project-radar/internal/item"
)

var (
	consoleHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	consoleTitleStyle  = lipgloss.NewStyle().Bold(true)
	consoleMetaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	consoleKwStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Console renders the digest to a terminal. Used for dry runs.
type Console struct {
	out      io.Writer
	maxItems int
}

func NewConsole(out io.Writer, maxItems int) *Console {
	return &Console{out: out, maxItems: maxItems}
}

func (c *Console) Publish(_ context.Context, res item.RunResult) error {
	var b strings.Builder

	header := fmt.Sprintf("Support program radar — %d new announcement(s), %s",
		res.TotalCount, res.GeneratedAt.Format("2006-01-02"))
	b.WriteString(consoleHeaderStyle.Render(header))
	b.WriteString("\n")

	shown, more := digest(res, c.maxItems)
	for i, it := range shown {
		b.WriteString(fmt.Sprintf("%2d. %s\n", i+1, consoleTitleStyle.Render(it.Title)))
		b.WriteString("    " + consoleMetaStyle.Render(fmt.Sprintf("%s · apply %s", it.Source, applyWindow(it))) + "\n")
		b.WriteString("    " + consoleMetaStyle.Render(it.Link) + "\n")
		if len(it.Keywords) > 0 {
			b.WriteString("    " + consoleKwStyle.Render("matched: "+strings.Join(it.Keywords, ", ")) + "\n")
		}
	}
	if more > 0 {
		b.WriteString(consoleMetaStyle.Render(fmt.Sprintf("…and %d more in the run report", more)) + "\n")
	}

	_, err := fmt.Fprint(c.out, b.String())
	return err
}
