package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/Pratik-Gohel/Viva-management/internal/store"
)

const (
	clerkHelp = `Available commands:
/examname - Show the current exam session
/exams - List recorded exam sessions
/help - Show this message`

	adminHelp = `Available commands:
/examname - Show the current exam session
/exams - List recorded exam sessions
/setexam <name> - Switch the current exam session
/total <exam name> - Payment total for an exam (ALL for everything)
/token <clerk> - Issue or fetch an API token for a clerk
/revoke <clerk> - Revoke a clerk's API token
/help - Show this message

Examples:
/setexam WINTER 2024
/total WINTER 2024
/token front.desk`
)

type commandHandler func(*tgbotapi.Message) error

func (b *Bot) routeClerkCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"start":    b.handleStart,
		"examname": b.handleExamName,
		"exams":    b.handleExams,
		"help":     b.handleHelp,
	}
	handler, found := commands[cmd]
	return handler, found
}

func (b *Bot) routeAdminCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"setexam": b.handleSetExam,
		"total":   b.handleTotal,
		"token":   b.handleToken,
		"revoke":  b.handleRevoke,
	}
	handler, found := commands[cmd]
	return handler, found
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		b.sendHelp(msg.Chat.ID)
		return
	}

	cmd := msg.Command()

	if handler, ok := b.routeClerkCommands(cmd); ok {
		if err := handler(msg); err != nil {
			logger.Error.Printf("Command error: %v", err)
			b.sendMessage(msg.Chat.ID, fmt.Sprintf("Error: %v", err))
		}
		return
	}

	if b.admins[msg.From.ID] {
		if handler, ok := b.routeAdminCommands(cmd); ok {
			if err := handler(msg); err != nil {
				logger.Error.Printf("Command error: %v", err)
				b.sendMessage(msg.Chat.ID, fmt.Sprintf("Error: %v", err))
			}
		}
		return
	}

	b.sendHelp(msg.Chat.ID)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	var text string
	if b.admins[msg.From.ID] {
		text = adminHelp
	} else {
		text = clerkHelp
	}

	return b.sendMessage(msg.Chat.ID, text)
}

func (b *Bot) sendHelp(chatID int64) error {
	return b.sendMessage(chatID, "Send /help for the list of commands.")
}

func (b *Bot) handleStart(msg *tgbotapi.Message) error {
	text := "Hello! I track the viva remuneration records.\n\n"
	if b.admins[msg.From.ID] {
		text += "You are an admin. Use /help for the full command list."
	} else {
		text += "Use /examname to see which exam session is being entered."
	}

	return b.sendMessage(msg.Chat.ID, text)
}

func (b *Bot) handleExamName(msg *tgbotapi.Message) error {
	name, err := b.examName.Get()
	if err != nil {
		return fmt.Errorf("failed to read current exam name: %v", err)
	}
	if name == "" {
		return b.sendMessage(msg.Chat.ID, "No exam session is set yet.")
	}
	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("Current exam session: %s", name))
}

func (b *Bot) handleExams(msg *tgbotapi.Message) error {
	names, err := b.store.DistinctExamNames()
	if err != nil {
		return fmt.Errorf("failed to list exams: %v", err)
	}

	if len(names) == 0 {
		return b.sendMessage(msg.Chat.ID, "No entries recorded yet.")
	}

	var out strings.Builder
	out.WriteString("Recorded exam sessions:\n\n")
	for _, name := range names {
		out.WriteString(fmt.Sprintf("📝 %s\n", name))
	}

	return b.sendMessage(msg.Chat.ID, out.String())
}

func (b *Bot) handleSetExam(msg *tgbotapi.Message) error {
	name := strings.TrimSpace(msg.CommandArguments())
	if name == "" {
		return fmt.Errorf("usage: /setexam WINTER 2024")
	}

	if err := b.examName.Set(name); err != nil {
		return fmt.Errorf("failed to set exam name: %v", err)
	}

	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ Current exam session is now %q", name))
}

func (b *Bot) handleTotal(msg *tgbotapi.Message) error {
	examName := strings.TrimSpace(msg.CommandArguments())
	if examName == "" {
		return fmt.Errorf("usage: /total WINTER 2024 (or /total ALL)")
	}

	rows, err := b.store.ListEntries(store.EntryFilter{ExamName: examName})
	if err != nil {
		return fmt.Errorf("failed to fetch entries: %v", err)
	}

	if len(rows) == 0 {
		return b.sendMessage(msg.Chat.ID, fmt.Sprintf("No entries for %q", examName))
	}

	var total float64
	for _, r := range rows {
		total += r.BillAmount
	}

	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("💰 %s: %d entries, total ₹%.2f", examName, len(rows), total))
}

func (b *Bot) handleToken(msg *tgbotapi.Message) error {
	if b.tokens == nil {
		return fmt.Errorf("token management is disabled, configure redis first")
	}

	clerk := strings.TrimSpace(msg.CommandArguments())
	if clerk == "" {
		return fmt.Errorf("usage: /token front.desk")
	}

	info, created, err := b.tokens.FetchOrCreateClerkToken(context.Background(), clerk)
	if err != nil {
		return fmt.Errorf("failed to issue token: %v", err)
	}

	state := "existing"
	if created {
		state = "new"
	}

	return b.sendMessage(msg.Chat.ID, fmt.Sprintf(
		"🔑 %s token for %s:\n%s\nRequests so far: %d",
		state, clerk, info.Token, info.RequestCount,
	))
}

func (b *Bot) handleRevoke(msg *tgbotapi.Message) error {
	if b.tokens == nil {
		return fmt.Errorf("token management is disabled, configure redis first")
	}

	clerk := strings.TrimSpace(msg.CommandArguments())
	if clerk == "" {
		return fmt.Errorf("usage: /revoke front.desk")
	}

	if err := b.tokens.RevokeClerkToken(context.Background(), clerk); err != nil {
		return fmt.Errorf("failed to revoke token: %v", err)
	}

	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("🗑 Token for %s revoked", clerk))
}

func (b *Bot) sendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	return err
}
