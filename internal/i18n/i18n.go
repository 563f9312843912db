// Package i18n holds the Portuguese and English UI strings and the
// locale-aware formatting of task metadata.
package i18n

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/nhle/pending/internal/model"
)

// Key identifies a translatable UI string.
type Key string

const (
	Brand            Key = "brand"
	AddTask          Key = "addTask"
	Today            Key = "today"
	Favorites        Key = "favorites"
	Tasks            Key = "tasks"
	Assigned         Key = "assigned"
	Trash            Key = "trash"
	Labels           Key = "labels"
	Low              Key = "low"
	Medium           Key = "medium"
	High             Key = "high"
	Update           Key = "update"
	ThemeKey         Key = "theme"
	NewTask          Key = "newTask"
	Title            Key = "title"
	Date             Key = "date"
	Time             Key = "time"
	PriorityKey      Key = "priority"
	Label            Key = "label"
	Assignee         Key = "assignee"
	Description      Key = "description"
	SelectPriority   Key = "selectPriority"
	SelectMember     Key = "selectMember"
	Cancel           Key = "cancel"
	NoTasksTitle     Key = "noTasksTitle"
	NoTasksSub       Key = "noTasksSub"
	ConfirmTitle     Key = "confirmTitle"
	ConfirmSub       Key = "confirmSub"
	YesDelete        Key = "yesDelete"
	No               Key = "no"
	Due              Key = "due"
	TodayViewTitle   Key = "todayViewTitle"
	FavoritesTitle   Key = "favoritesViewTitle"
	InboxViewTitle   Key = "inboxViewTitle"
	AssignedTitle    Key = "assignedViewTitle"
	TrashViewTitle   Key = "trashViewTitle"
	SearchHint       Key = "searchPlaceholder"
	TitleRequired    Key = "titleRequired"
	InvalidDate      Key = "invalidDate"
	InvalidTime      Key = "invalidTime"
	NotSaved         Key = "notSaved"
	Untitled         Key = "untitled"
)

var tags = map[model.Language]language.Tag{
	model.LanguagePortuguese: language.MustParse("pt-PT"),
	model.LanguageEnglish:    language.MustParse("en-GB"),
}

var dictionaries = map[model.Language]map[Key]string{
	model.LanguagePortuguese: {
		Brand:          "Pendência",
		AddTask:        "Adicionar Tarefa",
		Today:          "Meu Dia",
		Favorites:      "Favoritos",
		Tasks:          "Tarefas",
		Assigned:       "Atribuído",
		Trash:          "Excluídos",
		Labels:         "Etiquetas",
		Low:            "Baixo",
		Medium:         "Médio",
		High:           "Alto",
		Update:         "Atualizar",
		ThemeKey:       "Tema",
		NewTask:        "Adicionar Nova Tarefa",
		Title:          "Título",
		Date:           "Data",
		Time:           "Hora",
		PriorityKey:    "Prioridade",
		Label:          "Etiqueta",
		Assignee:       "Atribuído a",
		Description:    "Descrição",
		SelectPriority: "Selecione prioridade",
		SelectMember:   "Selecione um membro",
		Cancel:         "Cancelar",
		NoTasksTitle:   "Nada por aqui",
		NoTasksSub:     "Adicione uma nova tarefa para começar.",
		ConfirmTitle:   "Tens a certeza?",
		ConfirmSub:     "Esta tarefa irá para os Excluídos. Podes recuperar depois.",
		YesDelete:      "Sim, excluir",
		No:             "Não",
		Due:            "Vence",
		TodayViewTitle: "Meu Dia",
		FavoritesTitle: "Favoritos",
		InboxViewTitle: "Tarefas",
		AssignedTitle:  "Atribuído",
		TrashViewTitle: "Excluídos",
		SearchHint:     "Pesquisar tarefas...",
		TitleRequired:  "O título é obrigatório",
		InvalidDate:    "Data inválida, use AAAA-MM-DD",
		InvalidTime:    "Hora inválida, use HH:MM",
		NotSaved:       "Alteração não guardada",
		Untitled:       "(sem título)",
	},
	model.LanguageEnglish: {
		Brand:          "Pending",
		AddTask:        "Add Task",
		Today:          "My Day",
		Favorites:      "Favorites",
		Tasks:          "Tasks",
		Assigned:       "Assigned",
		Trash:          "Trash",
		Labels:         "Labels",
		Low:            "Low",
		Medium:         "Medium",
		High:           "High",
		Update:         "Update",
		ThemeKey:       "Theme",
		NewTask:        "Add New Task",
		Title:          "Title",
		Date:           "Date",
		Time:           "Time",
		PriorityKey:    "Priority",
		Label:          "Label",
		Assignee:       "Assignee",
		Description:    "Description",
		SelectPriority: "Select priority",
		SelectMember:   "Select a member",
		Cancel:         "Cancel",
		NoTasksTitle:   "Nothing here",
		NoTasksSub:     "Add a new task to get started.",
		ConfirmTitle:   "Are you sure?",
		ConfirmSub:     "This task will move to Trash. You can restore it later.",
		YesDelete:      "Yes, delete",
		No:             "No",
		Due:            "Due",
		TodayViewTitle: "My Day",
		FavoritesTitle: "Favorites",
		InboxViewTitle: "Tasks",
		AssignedTitle:  "Assigned",
		TrashViewTitle: "Trash",
		SearchHint:     "Search tasks...",
		TitleRequired:  "Title is required",
		InvalidDate:    "Invalid date, use YYYY-MM-DD",
		InvalidTime:    "Invalid time, use HH:MM",
		NotSaved:       "Change not saved",
		Untitled:       "(untitled)",
	},
}

var cat = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(tags[model.LanguageEnglish]))
	for lang, dict := range dictionaries {
		for key, msg := range dict {
			if err := b.SetString(tags[lang], string(key), msg); err != nil {
				panic(fmt.Sprintf("i18n: registering %s/%s: %v", lang, key, err))
			}
		}
	}
	return b
}

// Translator renders UI strings in one language.
type Translator struct {
	lang    model.Language
	printer *message.Printer
}

// New returns a Translator for lang. Unknown languages use the default.
func New(lang model.Language) *Translator {
	if !lang.Valid() {
		lang = model.DefaultLanguage
	}
	return &Translator{
		lang:    lang,
		printer: message.NewPrinter(tags[lang], message.Catalog(cat)),
	}
}

// Language returns the language strings are rendered in.
func (t *Translator) Language() model.Language { return t.lang }

// T returns the translation of key, or the key itself when missing.
func (t *Translator) T(key Key) string {
	return t.printer.Sprintf(message.Key(string(key), string(key)))
}

// ViewTitle returns the heading shown for view v.
func (t *Translator) ViewTitle(v model.View) string {
	switch v {
	case model.ViewFavorites:
		return t.T(FavoritesTitle)
	case model.ViewInbox:
		return t.T(InboxViewTitle)
	case model.ViewAssigned:
		return t.T(AssignedTitle)
	case model.ViewTrash:
		return t.T(TrashViewTitle)
	default:
		return t.T(TodayViewTitle)
	}
}

// PriorityLabel returns the badge text for p. A task without a priority
// shows the neutral "update" badge.
func (t *Translator) PriorityLabel(p *model.Priority) string {
	if p == nil {
		return t.T(Update)
	}
	switch *p {
	case model.PriorityLow:
		return t.T(Low)
	case model.PriorityMedium:
		return t.T(Medium)
	case model.PriorityHigh:
		return t.T(High)
	default:
		return t.T(Update)
	}
}

// Meta renders the secondary line of a task:
// "Due: 18/10/2026 09:30 • #label • @assignee".
func (t *Translator) Meta(task model.Task) string {
	var parts []string
	if task.Date != nil && *task.Date != "" {
		due := t.T(Due) + ": " + FormatDate(*task.Date)
		if task.Time != nil && *task.Time != "" {
			due += " " + *task.Time
		}
		parts = append(parts, due)
	}
	if task.Label != nil && *task.Label != "" {
		parts = append(parts, "#"+*task.Label)
	}
	if task.Assignee != nil && *task.Assignee != "" {
		parts = append(parts, "@"+*task.Assignee)
	}
	return strings.Join(parts, " • ")
}

// FormatDate turns an ISO date into the day/month/year form used by both
// pt-PT and en-GB. Unparseable input is returned unchanged.
func FormatDate(iso string) string {
	d, err := time.Parse(model.DateLayout, iso)
	if err != nil {
		return iso
	}
	return d.Format("02/01/2006")
}
