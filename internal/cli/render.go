package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/tgup-cli/tgup/pkg/filectx"
	"github.com/tgup-cli/tgup/pkg/plan"
)

var (
	destStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	accountStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	albumStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	fileStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	sizeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	totalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// renderPlan prints the delivery plan, one batch per block.
func renderPlan(batches []plan.Batch) {
	var files int
	var bytes int64
	for i, b := range batches {
		header := destStyle.Render(b.Dest)
		if b.Account != "" {
			header += " " + accountStyle.Render("via "+b.Account)
		}
		if b.Album {
			header += " " + albumStyle.Render(fmt.Sprintf("[album of %d]", len(b.Files)))
		}
		fmt.Fprintf(os.Stdout, "%2d. %s\n", i+1, header)
		for _, f := range b.Files {
			fmt.Fprintf(os.Stdout, "      %s %s\n",
				fileStyle.Render(f.Name),
				sizeStyle.Render(filectx.FormatSize(f.Size)),
			)
			files++
			bytes += f.Size
		}
	}
	fmt.Fprintln(os.Stdout, totalStyle.Render(
		fmt.Sprintf("%d batches, %d files, %s", len(batches), files, filectx.FormatSize(bytes))))
}
