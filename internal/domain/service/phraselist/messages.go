package phraselist

// Тексты интерфейса админки; локаль фиксированная.
const (
	TitleCreate       = "Agregar nueva frase"
	TitleEdit         = "Editar frase"
	LabelCreate       = "Agregar"
	LabelEdit         = "Editar"
	LabelCancel       = "Cancelar"
	InputPlaceholder  = "Escribe la frase aquí"
	ConfirmRemoveText = "¿Eliminar esta frase?"
	EmptyStateLabel   = "No hay frases"
	PageHeading       = "Frases para Galleta de la Fortuna"
	MsgLoadFailed     = "Error al cargar las frases"
	MsgCreated        = "Registro creado correctamente"
	MsgUpdated        = "Frase editada correctamente"
	MsgSaveFailed     = "Error al guardar la frase"
	MsgDeleted        = "Frase eliminada"
	MsgDeleteFailed   = "Error al eliminar la frase"
)

type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Message — уведомление поверх списка. Живёт до явного DismissMessage.
type Message struct {
	Kind MessageKind
	Text string
}
