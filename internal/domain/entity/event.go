package entity

type PhraseEventKind string

const (
	PhraseCreated PhraseEventKind = "created"
	PhraseUpdated PhraseEventKind = "updated"
	PhraseDeleted PhraseEventKind = "deleted"
)

// PhraseEvent публикуется после успешной мутации в хранилище.
// ActorID — Telegram id автора правки, 0 для HTTP API и CLI.
type PhraseEvent struct {
	Kind    PhraseEventKind `json:"kind"`
	Phrase  Phrase          `json:"phrase"`
	ActorID int64           `json:"actorId,omitempty"`
}
