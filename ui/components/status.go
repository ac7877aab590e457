package components

import (
	"github.com/mindslayer001/tracebug/ui/styles"
)

const keyHelp = "ctrl+s send · tab indent · ctrl+o open · ctrl+l clear · ctrl+n/p block · ctrl+y copy · ctrl+c quit"

func RenderStatus(status string, notice string, width int) string {
	statusStyle := styles.StatusStyle(width)

	statusContent := status
	if notice != "" {
		statusContent += "  " + styles.NoticeStyle().Render(notice)
	}

	return statusStyle.Render(statusContent) + "\n" + statusStyle.Render(keyHelp)
}
