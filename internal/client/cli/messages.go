package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

func formatDate(unix int) string {
	if unix == 0 {
		return "-"
	}
	return time.Unix(int64(unix), 0).Format("2006-01-02 15:04")
}

func kindOf(isUser, isGroup, isChannel bool) string {
	switch {
	case isUser:
		return "user"
	case isChannel && isGroup:
		return "supergroup"
	case isChannel:
		return "channel"
	case isGroup:
		return "group"
	}
	return "?"
}

func (a *App) Dialogs(ctx context.Context) error {
	if a.sessionID == "" {
		return errNotLoggedIn
	}

	callCtx, cancel := a.withTimeout(ctx)
	dialogs, err := a.api.Dialogs(callCtx, a.sessionID)
	cancel()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tNAME\tUNREAD\tDATE\tLAST MESSAGE")
	for _, d := range dialogs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			d.ID, kindOf(d.IsUser, d.IsGroup, d.IsChannel), d.Name, d.UnreadCount, formatDate(d.Date), oneLine(d.LastMessage, 40))
	}
	return tw.Flush()
}

func (a *App) Messages(ctx context.Context, args []string) error {
	if a.sessionID == "" {
		return errNotLoggedIn
	}
	if len(args) == 0 {
		return errors.New("usage: messages <peer> [limit]")
	}

	limit := 20
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid limit %q", args[1])
		}
		limit = n
	}

	callCtx, cancel := a.withTimeout(ctx)
	msgs, err := a.api.Messages(callCtx, a.sessionID, args[0], limit)
	cancel()
	if err != nil {
		return err
	}

	// the server returns newest first; print in reading order
	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		dir := "<"
		if m.Out {
			dir = ">"
		}
		fmt.Fprintf(a.out, "[%s] #%d %s %s\n", formatDate(m.Date), m.ID, dir, m.Text)
	}
	return nil
}

func (a *App) Send(ctx context.Context, args []string) error {
	if a.sessionID == "" {
		return errNotLoggedIn
	}
	if len(args) == 0 {
		return errors.New("usage: send <peer>")
	}

	text, err := GetMultiline(a.reader, "Message text", a.out)
	if err != nil {
		return err
	}
	if text == "" {
		return errors.New("empty message, nothing sent")
	}

	callCtx, cancel := a.withTimeout(ctx)
	sent, err := a.api.SendMessage(callCtx, a.sessionID, args[0], text)
	cancel()
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Sent message #%d at %s\n", sent.MessageID, formatDate(sent.Date))
	return nil
}

func oneLine(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}
