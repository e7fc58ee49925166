// Package view рендерит состояние админки и печенья в сообщения Telegram.
package view

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/internal/domain/service/fortune"
	"fortune_cookie/internal/domain/service/phraselist"
)

// Данные callback-кнопок. Telegram ограничивает их 64 байтами.
const (
	DataPrev    = "pg:prev"
	DataNext    = "pg:next"
	DataAdd     = "add"
	DataDismiss = "dismiss"
	DataCancel  = "cancel"
	DataYes     = "del:yes"
	DataNo      = "del:no"
	DataCookie  = "cookie"
	DataNoop    = "noop"

	PrefixEdit   = "edit:"
	PrefixRemove = "rm:"
)

const (
	StartMessage = "🥠 <b>Galleta de la Fortuna</b>\n\n" +
		"/phrases — administrar frases\n" +
		"/cookie — abrir una galleta\n" +
		"/cancel — cerrar el formulario"

	BusyNotice  = "⏳ Espera un momento…"
	StaleNotice = "La frase ya no está en la lista"

	labelPrev    = "⬅️"
	labelNext    = "➡️"
	labelAdd     = "➕ " + phraselist.LabelCreate
	labelDismiss = "✖️ Cerrar aviso"
	labelYes     = "Sí"
	labelNo      = "No"
)

// ItemMaxRunes: длиннее фраза в списке обрезается, целиком она видна в форме
// редактирования.
const ItemMaxRunes = 150

// Screen — одно сообщение бота: текст в HTML и инлайн-клавиатура.
type Screen struct {
	Text     string
	Keyboard *telego.InlineKeyboardMarkup
}

func List(v phraselist.View) Screen {
	var sb strings.Builder

	sb.WriteString("<b>" + html.EscapeString(phraselist.PageHeading) + "</b>")
	if v.Paged {
		fmt.Fprintf(&sb, " · %d", v.Page)
	}
	sb.WriteString("\n")

	if v.Message != nil {
		sb.WriteString("\n" + messageLine(*v.Message) + "\n")
	}

	sb.WriteString("\n")

	if len(v.Items) == 0 {
		sb.WriteString("<i>" + html.EscapeString(phraselist.EmptyStateLabel) + "</i>")
	}

	offset := 0
	if v.Paged {
		offset = (v.Page - 1) * v.PageSize
	}

	for i, p := range v.Items {
		fmt.Fprintf(&sb, "%d. %s\n", offset+i+1, html.EscapeString(clip(p.Text)))
	}

	return Screen{
		Text:     strings.TrimRight(sb.String(), "\n"),
		Keyboard: listKeyboard(v, offset),
	}
}

func listKeyboard(v phraselist.View, offset int) *telego.InlineKeyboardMarkup {
	rows := make([][]telego.InlineKeyboardButton, 0, len(v.Items)+3)

	for i, p := range v.Items {
		n := strconv.Itoa(offset + i + 1)
		rows = append(rows, tu.InlineKeyboardRow(
			tu.InlineKeyboardButton("✏️ "+n).WithCallbackData(PrefixEdit+p.ID.String()),
			tu.InlineKeyboardButton("🗑 "+n).WithCallbackData(PrefixRemove+p.ID.String()),
		))
	}

	if v.CanPrev || v.CanNext {
		var nav []telego.InlineKeyboardButton
		if v.CanPrev {
			nav = append(nav, tu.InlineKeyboardButton(labelPrev).WithCallbackData(DataPrev))
		}
		if v.CanNext {
			nav = append(nav, tu.InlineKeyboardButton(labelNext).WithCallbackData(DataNext))
		}
		rows = append(rows, tu.InlineKeyboardRow(nav...))
	}

	rows = append(rows, tu.InlineKeyboardRow(tu.InlineKeyboardButton(labelAdd).WithCallbackData(DataAdd)))

	if v.Message != nil {
		rows = append(rows, tu.InlineKeyboardRow(tu.InlineKeyboardButton(labelDismiss).WithCallbackData(DataDismiss)))
	}

	return tu.InlineKeyboard(rows...)
}

func Form(f phraselist.Form) Screen {
	var sb strings.Builder

	sb.WriteString("<b>" + html.EscapeString(f.Title()) + "</b>\n\n")

	if f.IsEdit() {
		sb.WriteString("<code>" + html.EscapeString(f.InitialText()) + "</code>\n\n")
	}

	fmt.Fprintf(&sb, "<i>%s</i> · %s", html.EscapeString(phraselist.InputPlaceholder), html.EscapeString(f.ConfirmLabel()))

	return Screen{
		Text: sb.String(),
		Keyboard: tu.InlineKeyboard(tu.InlineKeyboardRow(
			tu.InlineKeyboardButton(phraselist.LabelCancel).WithCallbackData(DataCancel),
		)),
	}
}

func ConfirmRemove(p entity.Phrase) Screen {
	return Screen{
		Text: "<b>" + html.EscapeString(phraselist.ConfirmRemoveText) + "</b>\n\n" + html.EscapeString(p.Text),
		Keyboard: tu.InlineKeyboard(tu.InlineKeyboardRow(
			tu.InlineKeyboardButton(labelYes).WithCallbackData(DataYes),
			tu.InlineKeyboardButton(labelNo).WithCallbackData(DataNo),
		)),
	}
}

func Fortune(v fortune.WidgetView) Screen {
	var sb strings.Builder

	sb.WriteString("🥠")

	if v.Phrase != "" {
		sb.WriteString(" <i>" + html.EscapeString(v.Phrase) + "</i>")
	}

	if v.LuckyNumber != "" {
		sb.WriteString("\n\n🍀 <code>" + v.LuckyNumber + "</code>")
	}

	label, data := v.ButtonLabel, DataCookie
	if v.Loading {
		label, data = BusyNotice, DataNoop
	}

	return Screen{
		Text: sb.String(),
		Keyboard: tu.InlineKeyboard(tu.InlineKeyboardRow(
			tu.InlineKeyboardButton(label).WithCallbackData(data),
		)),
	}
}

func clip(s string) string {
	if utf8.RuneCountInString(s) <= ItemMaxRunes {
		return s
	}

	return string([]rune(s)[:ItemMaxRunes-1]) + "…"
}

func messageLine(m phraselist.Message) string {
	icon := "✅"
	if m.Kind == phraselist.MessageError {
		icon = "❌"
	}

	return icon + " " + html.EscapeString(m.Text)
}
